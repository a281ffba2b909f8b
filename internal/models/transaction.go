// Package models defines the data structures shared across the import pipeline.
package models

import (
	"github.com/shopspring/decimal"
)

// Source identifies the statement format a transaction was parsed from.
type Source string

const (
	SourceOFX Source = "ofx"
	SourceCSV Source = "csv"
)

// RawTransaction is one parsed statement line. It is created once by a
// parser and immutable thereafter; everything downstream is derived.
type RawTransaction struct {
	// ID is a stable synthetic key, format-prefixed ordinal ("ofx-3", "csv-3").
	ID string `json:"id"`
	// Date is the posting date in ISO YYYY-MM-DD form.
	Date string `json:"date"`
	// Amount is signed; negative means outflow.
	Amount decimal.Decimal `json:"amount"`
	// Description is the statement's free-text name, non-empty after trimming.
	Description string `json:"description"`
	// Memo is optional free text.
	Memo string `json:"memo,omitempty"`
	// Source is the format the transaction came from.
	Source Source `json:"source"`
}

// BaseType is the coarse income/expense polarity derived from the amount sign.
type BaseType string

const (
	BaseIncome  BaseType = "income"
	BaseExpense BaseType = "expense"
)

// BaseTypeOf returns the base type for a signed amount. Zero counts as income,
// matching the sign rule "non-negative means income".
func BaseTypeOf(amount decimal.Decimal) BaseType {
	if amount.IsNegative() {
		return BaseExpense
	}
	return BaseIncome
}

// SemanticType is the classifier's inferred category of a transaction.
type SemanticType string

const (
	TypeIncome           SemanticType = "income"
	TypeExpense          SemanticType = "expense"
	TypeTransferIn       SemanticType = "transfer_in"
	TypeTransferOut      SemanticType = "transfer_out"
	TypeInvestmentOut    SemanticType = "investment_out"
	TypeInvestmentIncome SemanticType = "investment_income"
	TypeMarketOut        SemanticType = "market_out"
	TypeMarketIncome     SemanticType = "market_income"
)

// IsTransfer reports whether the type is an internal transfer in either direction.
func (t SemanticType) IsTransfer() bool {
	return t == TypeTransferIn || t == TypeTransferOut
}

// IsIncomeLike reports whether a row of this type commits to income storage.
// Investment and market outflows are excluded; they commit to the reserve store.
func (t SemanticType) IsIncomeLike() bool {
	switch t {
	case TypeIncome, TypeTransferIn, TypeInvestmentIncome, TypeMarketIncome:
		return true
	}
	return false
}

// IsReserveOut reports whether a row of this type commits to the
// reserve/investment store.
func (t SemanticType) IsReserveOut() bool {
	return t == TypeInvestmentOut || t == TypeMarketOut
}

// ReserveKind maps an outflow semantic type to the reserve record type.
// Only meaningful when IsReserveOut is true.
func (t SemanticType) ReserveKind() string {
	if t == TypeMarketOut {
		return "market"
	}
	return "investment"
}

// ClassifiedRow is a RawTransaction plus fields derived by the classification
// pipeline. Rows are never stored; they are recomputed whenever any input
// (transactions, overlay, flags, categories) changes.
type ClassifiedRow struct {
	Tx RawTransaction

	SemanticType SemanticType
	BaseType     BaseType
	Transfer     bool
	Skipped      bool

	// EffectiveDescription is the overlay override when present, else the original.
	EffectiveDescription string

	// SuggestedCategoryID is the suggester's non-binding guess, nil when no rule matched.
	SuggestedCategoryID *string
	// CategoryID is the category the importer will commit: the overlay override
	// when set, else the suggestion.
	CategoryID *string
}
