// Package derive recomputes the classified view of a loaded statement.
// Callers invoke Rows whenever any input changes; nothing derived is
// cached anywhere.
package derive

import (
	"poupafin/extrato/internal/classifier"
	"poupafin/extrato/internal/models"
	"poupafin/extrato/internal/review"
	"poupafin/extrato/internal/suggester"

	"github.com/shopspring/decimal"
)

// Options are the import-session switches that feed classification.
type Options struct {
	// AutoDetectInvestments enables the keyword taxonomy; off means pure sign rule.
	AutoDetectInvestments bool
	// IgnoreTransfers skips every row classified as an internal transfer.
	IgnoreTransfers bool
}

// Rows derives the full classified view from the parsed transactions, the
// review overlay, the session options and the user's categories. Output is
// a pure function of its inputs; callers re-invoke it on every change.
func Rows(txs []models.RawTransaction, overlay *review.Overlay, opts Options, categories []models.Category) []models.ClassifiedRow {
	sug := suggester.New(categories)

	rows := make([]models.ClassifiedRow, 0, len(txs))
	for _, tx := range txs {
		description := tx.Description
		if overlay != nil {
			description = overlay.EffectiveDescription(tx.ID, tx.Description)
		}

		semanticType := classifier.Classify(description, tx.Memo, tx.Amount, opts.AutoDetectInvestments)
		baseType := models.BaseTypeOf(tx.Amount)
		transfer := semanticType.IsTransfer()

		skipped := opts.IgnoreTransfers && transfer
		if overlay != nil && overlay.Ignored(tx.ID) {
			skipped = true
		}

		categoryID := sug.Suggest(tx, baseType, semanticType)
		suggested := categoryID
		if overlay != nil {
			if override := overlay.Category(tx.ID); override != nil {
				categoryID = override
			}
		}

		rows = append(rows, models.ClassifiedRow{
			Tx:                   tx,
			SemanticType:         semanticType,
			BaseType:             baseType,
			Transfer:             transfer,
			Skipped:              skipped,
			EffectiveDescription: description,
			SuggestedCategoryID:  suggested,
			CategoryID:           categoryID,
		})
	}

	return rows
}

// Summary aggregates the absolute amounts of a derived row set per bucket.
// Skipped rows count only toward Skipped; everything else lands in exactly
// one income/expense bucket plus its specific counter.
type Summary struct {
	Income           decimal.Decimal
	Expense          decimal.Decimal
	Investment       decimal.Decimal
	Market           decimal.Decimal
	TransferIn       decimal.Decimal
	TransferOut      decimal.Decimal
	InvestmentIncome decimal.Decimal
	Skipped          int
	Total            int
}

// Summarize computes the preview totals for a derived row set.
func Summarize(rows []models.ClassifiedRow) Summary {
	summary := Summary{Total: len(rows)}
	for _, row := range rows {
		if row.Skipped {
			summary.Skipped++
			continue
		}

		amount := row.Tx.Amount.Abs()
		switch row.SemanticType {
		case models.TypeInvestmentOut:
			summary.Investment = summary.Investment.Add(amount)
		case models.TypeMarketOut:
			summary.Market = summary.Market.Add(amount)
		case models.TypeInvestmentIncome, models.TypeMarketIncome:
			summary.Income = summary.Income.Add(amount)
			summary.InvestmentIncome = summary.InvestmentIncome.Add(amount)
		case models.TypeTransferIn:
			summary.Income = summary.Income.Add(amount)
			summary.TransferIn = summary.TransferIn.Add(amount)
		case models.TypeTransferOut:
			summary.Expense = summary.Expense.Add(amount)
			summary.TransferOut = summary.TransferOut.Add(amount)
		case models.TypeIncome:
			summary.Income = summary.Income.Add(amount)
		default:
			summary.Expense = summary.Expense.Add(amount)
		}
	}
	return summary
}
