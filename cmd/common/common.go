// Package common contains shared functionality for command handlers
package common

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"poupafin/extrato/internal/config"
	"poupafin/extrato/internal/csvparser"
	"poupafin/extrato/internal/derive"
	"poupafin/extrato/internal/models"
	"poupafin/extrato/internal/ofxparser"
	"poupafin/extrato/internal/parsererror"
	"poupafin/extrato/internal/review"
	"poupafin/extrato/internal/store"

	"github.com/sirupsen/logrus"
)

// MappingOverrides carries the per-role header names given on the command
// line. Empty fields leave the detected mapping alone.
type MappingOverrides struct {
	Date        string
	Amount      string
	Description string
	Memo        string
	Type        string
}

func (o MappingOverrides) apply(mapping csvparser.ColumnMapping) csvparser.ColumnMapping {
	if o.Date != "" {
		mapping.Date = o.Date
	}
	if o.Amount != "" {
		mapping.Amount = o.Amount
	}
	if o.Description != "" {
		mapping.Description = o.Description
	}
	if o.Memo != "" {
		mapping.Memo = o.Memo
	}
	if o.Type != "" {
		mapping.Type = o.Type
	}
	return mapping
}

// validate rejects overrides that name a header the file does not have.
func (o MappingOverrides) validate(headers []string) error {
	exists := func(header string) bool {
		for _, h := range headers {
			if h == header {
				return true
			}
		}
		return false
	}
	for role, header := range map[string]string{
		"date":        o.Date,
		"amount":      o.Amount,
		"description": o.Description,
		"memo":        o.Memo,
		"type":        o.Type,
	} {
		if header != "" && !exists(header) {
			return &parsererror.MappingError{Role: role, Header: header}
		}
	}
	return nil
}

// LoadStatement parses the statement file at path, picking the parser from
// the file extension. It returns the surviving transactions and the count
// of rows dropped as malformed.
func LoadStatement(path string, overrides MappingOverrides, log *logrus.Logger) ([]models.RawTransaction, int, error) {
	if path == "" {
		return nil, 0, fmt.Errorf("no input file given")
	}

	file, err := os.Open(path)
	if err != nil {
		return nil, 0, fmt.Errorf("error opening statement file: %w", err)
	}
	defer func() {
		if err := file.Close(); err != nil {
			log.WithError(err).Warn("Failed to close file")
		}
	}()

	switch strings.ToLower(filepath.Ext(path)) {
	case ".ofx", ".qfx":
		result, err := ofxparser.Parse(file)
		if err != nil {
			return nil, 0, err
		}
		return result.Transactions, result.Dropped, nil
	case ".csv":
		doc, err := csvparser.ParseDocument(file)
		if err != nil {
			return nil, 0, err
		}
		if err := overrides.validate(doc.Headers); err != nil {
			return nil, 0, err
		}
		mapping := overrides.apply(csvparser.DetectMapping(doc.Headers))
		if !mapping.Complete() {
			log.WithFields(logrus.Fields{
				"date":        mapping.Date,
				"amount":      mapping.Amount,
				"description": mapping.Description,
			}).Warn("Column mapping is incomplete, no transactions lifted")
		}
		result := csvparser.Lift(doc, mapping)
		return result.Transactions, result.Dropped, nil
	default:
		return nil, 0, fmt.Errorf("unsupported statement format: %s", filepath.Ext(path))
	}
}

// DeriveRows classifies the transactions and attaches category suggestions
// from the user's category list.
func DeriveRows(txs []models.RawTransaction, categoriesFile string, cfg *config.Config) ([]models.ClassifiedRow, []models.Category, error) {
	if categoriesFile == "" {
		categoriesFile = cfg.Categories.File
	}
	categories, err := store.NewCategoryStore(categoriesFile).LoadCategories()
	if err != nil {
		return nil, nil, err
	}

	opts := derive.Options{
		AutoDetectInvestments: cfg.Import.AutoDetectInvestments,
		IgnoreTransfers:       cfg.Import.IgnoreTransfers,
	}
	rows := derive.Rows(txs, review.NewOverlay(), opts, categories)
	return rows, categories, nil
}
