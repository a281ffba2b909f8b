package importer

import (
	"context"

	"poupafin/extrato/internal/models"

	"github.com/shopspring/decimal"
)

// PeriodService resolves the accounting period owning a row, creating it
// when absent. Exactly one period exists per (user, month, year); the store
// enforces that uniqueness, and implementations must tolerate a concurrent
// create by re-querying on conflict.
type PeriodService interface {
	EnsurePeriod(ctx context.Context, userID string, key models.PeriodKey) (string, error)
}

// IncomeRecord is one committed income row.
type IncomeRecord struct {
	UserID     string
	PeriodID   string
	Name       string
	Value      decimal.Decimal
	Date       string
	CategoryID *string
}

// ExpenseRecord is one committed expense row. Value is the absolute outflow.
type ExpenseRecord struct {
	UserID        string
	PeriodID      string
	Name          string
	Value         decimal.Decimal
	Date          string
	CategoryID    *string
	PaymentMethod string
	IsEssential   bool
}

// ReserveRecord is one committed reserve/investment row. Reserves are not
// owned by a period; Kind is "investment" or "market".
type ReserveRecord struct {
	UserID string
	Name   string
	Value  decimal.Decimal
	Date   string
	Kind   string
}

// RecordService persists committed rows into the external store.
type RecordService interface {
	InsertIncome(ctx context.Context, record IncomeRecord) error
	InsertExpense(ctx context.Context, record ExpenseRecord) error
	InsertReserve(ctx context.Context, record ReserveRecord) error
}
