// Package importfile handles the statement import command
package importfile

import (
	"context"
	"errors"
	"fmt"

	"poupafin/extrato/cmd/common"
	"poupafin/extrato/cmd/root"
	"poupafin/extrato/internal/importer"
	"poupafin/extrato/internal/logging"
	"poupafin/extrato/internal/parsererror"
	"poupafin/extrato/internal/store"
	"poupafin/extrato/internal/supabase"

	"github.com/spf13/cobra"
)

// Cmd represents the import command
var Cmd = &cobra.Command{
	Use:   "import",
	Short: "Import a statement file into the backend",
	Long: `Import parses an OFX or CSV statement, classifies every transaction and
writes the result into the PoupaFin backend: incomes and expenses under
their financial period, investments and market buys as reserves.
Rows that fail are reported and skipped; the rest still commit.`,
	Run: importFunc,
}

func init() {
	Cmd.Flags().StringVarP(&root.UserID, "user", "u", "", "Id of the user owning the imported rows")
	Cmd.Flags().BoolVar(&root.DryRun, "dry-run", false, "Run the import against an in-memory store")
}

func importFunc(cmd *cobra.Command, args []string) {
	root.Log.Infof("Importing statement file: %s", root.SharedFlags.Input)

	txs, dropped, err := common.LoadStatement(root.SharedFlags.Input, common.MappingOverrides(root.Mapping), root.Log)
	if err != nil {
		root.Log.Fatalf("Error parsing statement: %v", err)
	}
	if dropped > 0 {
		root.Log.Warnf("Dropped %d malformed rows", dropped)
	}

	rows, _, err := common.DeriveRows(txs, root.SharedFlags.Categories, root.AppConfig)
	if err != nil {
		root.Log.Fatalf("Error deriving transactions: %v", err)
	}

	logger := logging.NewLogrusAdapterFromLogger(root.Log)

	var periods importer.PeriodService
	var records importer.RecordService
	if root.DryRun {
		memory := store.NewMemoryStore()
		periods, records = memory, memory
	} else {
		client, err := supabase.NewClient(supabase.Config{
			URL:         root.AppConfig.Supabase.URL,
			AnonKey:     root.AppConfig.Supabase.AnonKey,
			AccessToken: root.AppConfig.Supabase.AccessToken,
		}, logger)
		if err != nil {
			root.Log.Fatalf("Error connecting to backend: %v", err)
		}
		periods, records = client, client
	}

	imp := importer.New(periods, records, root.AppConfig.Import.DefaultPaymentMethod, logger)
	result, err := imp.Run(context.Background(), root.UserID, rows)
	if err != nil {
		var authErr *parsererror.AuthError
		if errors.As(err, &authErr) {
			root.Log.Fatalf("Not signed in: %v", err)
		}
		root.Log.Fatalf("Import failed: %v", err)
	}

	for _, rowResult := range result.Rows {
		if rowResult.Status == importer.StatusFailed {
			root.Log.WithError(rowResult.Err).Warnf("Row %s failed", rowResult.RowID)
		}
	}

	if result.Outcome == importer.OutcomeNothingToImport {
		root.Log.Warn("Nothing to import: every row was skipped or the file had no transactions")
	}
	fmt.Printf("Committed: %d  Failed: %d  Skipped: %d  (%s)\n",
		result.Committed, result.Failed, result.Skipped, result.Outcome)
	if root.DryRun {
		root.Log.Info("Dry run, nothing was written to the backend")
	}
}
