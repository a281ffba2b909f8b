// Package categories handles the category list command
package categories

import (
	"fmt"
	"os"
	"text/tabwriter"

	"poupafin/extrato/cmd/root"
	"poupafin/extrato/internal/store"

	"github.com/spf13/cobra"
)

// Cmd represents the categories command
var Cmd = &cobra.Command{
	Use:   "categories",
	Short: "List the configured categories",
	Long: `Categories loads the user's category file (YAML or CSV), validates it and
prints the resolved list. Suggestions during preview and import resolve
against exactly this list.`,
	Run: categoriesFunc,
}

var categoriesFile string

func init() {
	Cmd.Flags().StringVarP(&categoriesFile, "file", "f", "", "Categories file (YAML or CSV)")
}

func categoriesFunc(cmd *cobra.Command, args []string) {
	file := categoriesFile
	if file == "" {
		file = root.SharedFlags.Categories
	}
	if file == "" {
		file = root.AppConfig.Categories.File
	}

	categories, err := store.NewCategoryStore(file).LoadCategories()
	if err != nil {
		root.Log.Fatalf("Error loading categories: %v", err)
	}
	if len(categories) == 0 {
		root.Log.Warn("No categories configured, suggestions will stay empty")
		return
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tNAME\tTYPE")
	for _, c := range categories {
		fmt.Fprintf(w, "%s\t%s\t%s\n", c.ID, c.Name, c.Type)
	}
	if err := w.Flush(); err != nil {
		root.Log.Warnf("Failed to flush output: %v", err)
	}
	fmt.Printf("\n%d categories loaded\n", len(categories))
}
