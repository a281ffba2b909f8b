// Package importer commits accepted statement rows into the external store.
// Each non-skipped row resolves its owning period and produces exactly one
// accounting record; rows fail independently and the run always continues
// to the end of the accepted set.
package importer

import (
	"context"
	"strings"

	"poupafin/extrato/internal/classifier"
	"poupafin/extrato/internal/logging"
	"poupafin/extrato/internal/models"
	"poupafin/extrato/internal/parsererror"
)

// RowStatus is the terminal state of one row after a run.
type RowStatus string

const (
	StatusSkipped   RowStatus = "skipped"
	StatusCommitted RowStatus = "committed"
	StatusFailed    RowStatus = "failed"
)

// RowResult records the outcome of one row, with failure detail kept for
// diagnostics. End users only ever see the aggregate counts.
type RowResult struct {
	RowID  string
	Status RowStatus
	Err    error
}

// Outcome summarizes a whole run.
type Outcome string

const (
	// OutcomeCompleted means every accepted row committed.
	OutcomeCompleted Outcome = "completed"
	// OutcomePartial means at least one row failed; the rest committed.
	OutcomePartial Outcome = "partial"
	// OutcomeNothingToImport means no rows were accepted at all. This is a
	// distinct empty-input condition, not a failure.
	OutcomeNothingToImport Outcome = "nothing_to_import"
)

// Result is the aggregate report of one import run.
type Result struct {
	Committed int
	Failed    int
	Skipped   int
	Outcome   Outcome
	Rows      []RowResult
}

// Importer wires the two external capabilities the engine depends on.
type Importer struct {
	periods PeriodService
	records RecordService
	logger  logging.Logger

	// defaultPaymentMethod is carried on expense rows that resolved no
	// specific payment channel.
	defaultPaymentMethod string
}

// New creates an Importer over the given period and record services.
func New(periods PeriodService, records RecordService, defaultPaymentMethod string, logger logging.Logger) *Importer {
	if logger == nil {
		logger = logging.NewLogrusAdapter("info", "text")
	}
	if defaultPaymentMethod == "" {
		defaultPaymentMethod = "debit"
	}
	return &Importer{
		periods:              periods,
		records:              records,
		logger:               logger,
		defaultPaymentMethod: defaultPaymentMethod,
	}
}

// Run commits the accepted rows sequentially, in input order. An empty or
// unauthenticated user id is fatal for the whole run; everything else is
// recovered at row granularity. Period resolution is memoized per distinct
// (year, month) key so each period is resolved exactly once per run.
func (imp *Importer) Run(ctx context.Context, userID string, rows []models.ClassifiedRow) (Result, error) {
	if strings.TrimSpace(userID) == "" {
		return Result{}, &parsererror.AuthError{Reason: "import requires a signed-in user"}
	}

	result := Result{}
	periodCache := make(map[models.PeriodKey]string)

	for _, row := range rows {
		if row.Skipped {
			result.Skipped++
			result.Rows = append(result.Rows, RowResult{RowID: row.Tx.ID, Status: StatusSkipped})
			continue
		}

		if err := imp.commitRow(ctx, userID, row, periodCache); err != nil {
			imp.logger.WithError(err).Warn("Row commit failed",
				logging.F("row", row.Tx.ID),
				logging.F("date", row.Tx.Date))
			result.Failed++
			result.Rows = append(result.Rows, RowResult{RowID: row.Tx.ID, Status: StatusFailed, Err: err})
			continue
		}

		result.Committed++
		result.Rows = append(result.Rows, RowResult{RowID: row.Tx.ID, Status: StatusCommitted})
	}

	switch {
	case result.Committed == 0 && result.Failed == 0:
		result.Outcome = OutcomeNothingToImport
	case result.Failed > 0:
		result.Outcome = OutcomePartial
	default:
		result.Outcome = OutcomeCompleted
	}

	imp.logger.Info("Import run finished",
		logging.F("committed", result.Committed),
		logging.F("failed", result.Failed),
		logging.F("skipped", result.Skipped),
		logging.F("outcome", string(result.Outcome)))

	return result, nil
}

// commitRow resolves the row's period and writes exactly one record.
func (imp *Importer) commitRow(ctx context.Context, userID string, row models.ClassifiedRow, periodCache map[models.PeriodKey]string) error {
	key, err := models.PeriodKeyFromDate(row.Tx.Date)
	if err != nil {
		return &parsererror.CommitError{RowID: row.Tx.ID, Operation: "resolve period key", Err: err}
	}

	// Every accepted row resolves its owning period, reserve rows included.
	// Reserve records just do not reference the period id afterwards.
	periodID, ok := periodCache[key]
	if !ok {
		periodID, err = imp.periods.EnsurePeriod(ctx, userID, key)
		if err != nil {
			return &parsererror.CommitError{RowID: row.Tx.ID, Operation: "ensure period", Err: err}
		}
		periodCache[key] = periodID
	}

	if row.SemanticType.IsReserveOut() {
		err = imp.records.InsertReserve(ctx, ReserveRecord{
			UserID: userID,
			Name:   row.EffectiveDescription,
			Value:  row.Tx.Amount.Abs(),
			Date:   row.Tx.Date,
			Kind:   row.SemanticType.ReserveKind(),
		})
		if err != nil {
			return &parsererror.CommitError{RowID: row.Tx.ID, Operation: "insert reserve", Err: err}
		}
		return nil
	}

	if row.SemanticType.IsIncomeLike() {
		err = imp.records.InsertIncome(ctx, IncomeRecord{
			UserID:     userID,
			PeriodID:   periodID,
			Name:       row.EffectiveDescription,
			Value:      row.Tx.Amount,
			Date:       row.Tx.Date,
			CategoryID: row.CategoryID,
		})
		if err != nil {
			return &parsererror.CommitError{RowID: row.Tx.ID, Operation: "insert income", Err: err}
		}
		return nil
	}

	err = imp.records.InsertExpense(ctx, ExpenseRecord{
		UserID:        userID,
		PeriodID:      periodID,
		Name:          row.EffectiveDescription,
		Value:         row.Tx.Amount.Abs(),
		Date:          row.Tx.Date,
		CategoryID:    row.CategoryID,
		PaymentMethod: classifier.ResolvePaymentMethod(row.EffectiveDescription, row.Tx.Memo, row.SemanticType, imp.defaultPaymentMethod),
		IsEssential:   false,
	})
	if err != nil {
		return &parsererror.CommitError{RowID: row.Tx.ID, Operation: "insert expense", Err: err}
	}
	return nil
}
