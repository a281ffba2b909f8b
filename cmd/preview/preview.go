// Package preview handles the statement preview command
package preview

import (
	"fmt"
	"os"
	"text/tabwriter"

	"poupafin/extrato/cmd/common"
	"poupafin/extrato/cmd/root"
	"poupafin/extrato/internal/derive"
	"poupafin/extrato/internal/models"

	"github.com/spf13/cobra"
)

// Cmd represents the preview command
var Cmd = &cobra.Command{
	Use:   "preview",
	Short: "Preview a statement file without importing",
	Long: `Preview parses an OFX or CSV statement, classifies every transaction
and prints the rows with their suggested categories plus the totals,
without writing anything to the backend.`,
	Run: previewFunc,
}

func previewFunc(cmd *cobra.Command, args []string) {
	root.Log.Infof("Previewing statement file: %s", root.SharedFlags.Input)

	txs, dropped, err := common.LoadStatement(root.SharedFlags.Input, common.MappingOverrides(root.Mapping), root.Log)
	if err != nil {
		root.Log.Fatalf("Error parsing statement: %v", err)
	}
	if dropped > 0 {
		root.Log.Warnf("Dropped %d malformed rows", dropped)
	}

	rows, categories, err := common.DeriveRows(txs, root.SharedFlags.Categories, root.AppConfig)
	if err != nil {
		root.Log.Fatalf("Error deriving transactions: %v", err)
	}

	printRows(rows, categories)
	printSummary(derive.Summarize(rows))
}

func printRows(rows []models.ClassifiedRow, categories []models.Category) {
	names := make(map[string]string, len(categories))
	for _, c := range categories {
		names[c.ID] = c.Name
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tDATE\tAMOUNT\tTYPE\tDESCRIPTION\tCATEGORY")
	for _, row := range rows {
		category := ""
		if row.CategoryID != nil {
			category = names[*row.CategoryID]
			if category == "" {
				category = *row.CategoryID
			}
		}
		semantic := string(row.SemanticType)
		if row.Skipped {
			semantic += " (skipped)"
		}
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\t%s\n",
			row.Tx.ID, row.Tx.Date, row.Tx.Amount.StringFixed(2), semantic,
			row.EffectiveDescription, category)
	}
	if err := w.Flush(); err != nil {
		root.Log.Warnf("Failed to flush output: %v", err)
	}
}

func printSummary(summary derive.Summary) {
	fmt.Println()
	fmt.Printf("Transactions: %d (%d skipped)\n", summary.Total, summary.Skipped)
	fmt.Printf("Income:       %s\n", summary.Income.StringFixed(2))
	fmt.Printf("Expense:      %s\n", summary.Expense.StringFixed(2))
	fmt.Printf("Investment:   %s\n", summary.Investment.StringFixed(2))
	fmt.Printf("Market:       %s\n", summary.Market.StringFixed(2))
	if !summary.TransferIn.IsZero() || !summary.TransferOut.IsZero() {
		fmt.Printf("Transfers:    +%s / -%s\n", summary.TransferIn.StringFixed(2), summary.TransferOut.StringFixed(2))
	}
	if !summary.InvestmentIncome.IsZero() {
		fmt.Printf("Inv. income:  %s\n", summary.InvestmentIncome.StringFixed(2))
	}
}
