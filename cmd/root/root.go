// Package root contains the root command for the application
package root

import (
	"poupafin/extrato/internal/config"
	"poupafin/extrato/internal/csvparser"
	"poupafin/extrato/internal/ofxparser"
	"poupafin/extrato/internal/store"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

// CommonFlags represents the flags that are common to multiple commands
type CommonFlags struct {
	Input      string
	Categories string
}

// MappingFlags override the detected CSV column mapping role by role.
type MappingFlags struct {
	Date        string
	Amount      string
	Description string
	Memo        string
	Type        string
}

var (
	// Log is the shared logger instance for commands
	Log = logrus.New()

	// AppConfig holds the loaded application configuration
	AppConfig *config.Config

	// Cmd is the root command
	Cmd = &cobra.Command{
		Use:   "extrato",
		Short: "A CLI tool to import OFX and CSV bank statements into PoupaFin.",
		Long: `extrato parses OFX and CSV bank statements, classifies each transaction
(income, expense, transfer, investment) from its description, and imports
the result into the PoupaFin backend under the right financial period.`,
		Run: func(cmd *cobra.Command, args []string) {
			Log.Info("Welcome to extrato!")
			Log.Info("Use --help to see available commands")
		},
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			config.LoadEnv()

			cfg, err := config.InitializeConfig()
			if err != nil {
				Log.Fatalf("Failed to initialize configuration: %v", err)
			}
			AppConfig = cfg
			Log = config.ConfigureLoggingFromConfig(cfg)

			// Set the configured logger for all parsers
			ofxparser.SetLogger(Log)
			csvparser.SetLogger(Log)
			store.SetLogger(Log)
		},
	}

	// Common flags accessible to all commands
	SharedFlags = CommonFlags{}

	// CSV mapping override flags
	Mapping = MappingFlags{}

	// Specific import command flags
	UserID string
	DryRun bool
)

// Init initializes the root command and all flags
func Init() {
	Cmd.PersistentFlags().StringVarP(&SharedFlags.Input, "input", "i", "", "Input statement file (.ofx or .csv)")
	Cmd.PersistentFlags().StringVarP(&SharedFlags.Categories, "categories", "c", "", "Categories file (YAML or CSV)")

	Cmd.PersistentFlags().StringVar(&Mapping.Date, "map-date", "", "Header of the date column (overrides detection)")
	Cmd.PersistentFlags().StringVar(&Mapping.Amount, "map-amount", "", "Header of the amount column (overrides detection)")
	Cmd.PersistentFlags().StringVar(&Mapping.Description, "map-description", "", "Header of the description column (overrides detection)")
	Cmd.PersistentFlags().StringVar(&Mapping.Memo, "map-memo", "", "Header of the memo column (overrides detection)")
	Cmd.PersistentFlags().StringVar(&Mapping.Type, "map-type", "", "Header of the debit/credit column (overrides detection)")
}
