package csvparser

import (
	"fmt"
	"strings"

	"poupafin/extrato/internal/dateutils"
	"poupafin/extrato/internal/models"
	"poupafin/extrato/internal/moneyutils"

	"github.com/sirupsen/logrus"
)

// ColumnMapping assigns transaction roles to header names of the source
// file. Date, Amount and Description are required; Memo and Type are
// optional. An empty string means the role is not mapped.
type ColumnMapping struct {
	Date        string
	Amount      string
	Description string
	Memo        string
	Type        string
}

// Complete reports whether all required roles are mapped. Lifting with an
// incomplete mapping yields an empty result by contract.
func (m ColumnMapping) Complete() bool {
	return m.Date != "" && m.Amount != "" && m.Description != ""
}

// Header keyword lists per role, matched case-insensitively as substrings.
// Bilingual on purpose: Brazilian bank exports mix Portuguese and English.
var roleKeywords = map[string][]string{
	"date":        {"data", "date", "dt"},
	"amount":      {"valor", "amount", "value", "vlr"},
	"description": {"descricao", "description", "historico", "nome", "name"},
	"memo":        {"memo", "obs", "detalhe", "details"},
	"type":        {"tipo", "type", "debito", "credito"},
}

// DetectMapping guesses a column mapping from the file's headers. The first
// header containing a role keyword wins; unmatched roles stay unmapped.
// Re-running the guess fully replaces any previous choices.
func DetectMapping(headers []string) ColumnMapping {
	normalized := make([]string, len(headers))
	for i, h := range headers {
		normalized[i] = strings.ToLower(h)
	}

	guess := func(role string) string {
		for i, header := range normalized {
			for _, keyword := range roleKeywords[role] {
				if strings.Contains(header, keyword) {
					return headers[i]
				}
			}
		}
		return ""
	}

	mapping := ColumnMapping{
		Date:        guess("date"),
		Amount:      guess("amount"),
		Description: guess("description"),
		Memo:        guess("memo"),
		Type:        guess("type"),
	}

	log.WithFields(logrus.Fields{
		"date":        mapping.Date,
		"amount":      mapping.Amount,
		"description": mapping.Description,
	}).Debug("Detected CSV column mapping")

	return mapping
}

// LiftResult holds the lifted transactions plus the count of rows dropped
// for missing or malformed values.
type LiftResult struct {
	Transactions []models.RawTransaction
	Dropped      int
}

// typeHint is the sign signal read from an optional type column.
type typeHint int

const (
	hintNone typeHint = iota
	hintDebit
	hintCredit
)

// inferTypeHint recognizes debit/expense and credit/income markers in a
// type column value. Unrecognized values give no hint.
func inferTypeHint(value string) typeHint {
	text := strings.ToLower(strings.TrimSpace(value))
	if text == "" {
		return hintNone
	}
	if strings.Contains(text, "deb") || strings.Contains(text, "desp") || text == "d" {
		return hintDebit
	}
	if strings.Contains(text, "cred") || strings.Contains(text, "rec") || text == "c" {
		return hintCredit
	}
	return hintNone
}

// Lift turns tokenized rows into RawTransactions using the given mapping.
// With any required role unmapped it returns an empty result: import is
// impossible, surfaced as an empty preview rather than an error. Rows with
// an unparsable date or amount, or an empty description, are dropped and
// counted, matching the OFX parser's silent-drop policy.
//
// Amount sign resolution, in priority order: a debit type hint forces
// negative, a credit hint forces positive, a raw leading minus forces
// negative, else the parsed sign stands.
func Lift(doc Document, mapping ColumnMapping) LiftResult {
	if !mapping.Complete() {
		log.Debug("CSV column mapping incomplete, yielding no transactions")
		return LiftResult{}
	}

	index := func(header string) int {
		for i, h := range doc.Headers {
			if h == header {
				return i
			}
		}
		return -1
	}

	dateIdx := index(mapping.Date)
	amountIdx := index(mapping.Amount)
	descIdx := index(mapping.Description)
	memoIdx := -1
	if mapping.Memo != "" {
		memoIdx = index(mapping.Memo)
	}
	typeIdx := -1
	if mapping.Type != "" {
		typeIdx = index(mapping.Type)
	}

	cell := func(row []string, idx int) string {
		if idx < 0 || idx >= len(row) {
			return ""
		}
		return row[idx]
	}

	var result LiftResult
	for i, row := range doc.Rows {
		rawDate := cell(row, dateIdx)
		rawAmount := cell(row, amountIdx)
		description := strings.TrimSpace(cell(row, descIdx))
		memo := strings.TrimSpace(cell(row, memoIdx))

		date, err := dateutils.NormalizeStatementDate(rawDate)
		if err != nil {
			log.WithField("row", i).Debug("Dropping CSV row with unparsable date")
			result.Dropped++
			continue
		}

		amount, err := moneyutils.ParseAmount(rawAmount)
		if err != nil {
			log.WithField("row", i).Debug("Dropping CSV row with unparsable amount")
			result.Dropped++
			continue
		}

		if description == "" {
			log.WithField("row", i).Debug("Dropping CSV row with empty description")
			result.Dropped++
			continue
		}

		switch inferTypeHint(cell(row, typeIdx)) {
		case hintDebit:
			amount = amount.Abs().Neg()
		case hintCredit:
			amount = amount.Abs()
		default:
			if moneyutils.IsNegativePrefix(rawAmount) {
				amount = amount.Abs().Neg()
			}
		}

		result.Transactions = append(result.Transactions, models.RawTransaction{
			ID:          fmt.Sprintf("csv-%d", i),
			Date:        date,
			Amount:      amount,
			Description: description,
			Memo:        memo,
			Source:      models.SourceCSV,
		})
	}

	log.WithFields(logrus.Fields{
		"count":   len(result.Transactions),
		"dropped": result.Dropped,
	}).Info("Lifted CSV rows into transactions")

	return result
}
