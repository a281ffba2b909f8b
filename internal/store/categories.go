// Package store loads and persists user data that lives outside the
// statement files, currently the category list.
package store

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"poupafin/extrato/internal/models"

	"github.com/gocarina/gocsv"
	"github.com/sirupsen/logrus"
	"gopkg.in/yaml.v3"
)

var log = logrus.New()

// SetLogger allows setting a configured logger
func SetLogger(logger *logrus.Logger) {
	if logger != nil {
		log = logger
	}
}

// CategoryStore loads the user's category list from a YAML or CSV file.
type CategoryStore struct {
	CategoriesFile string
}

// NewCategoryStore creates a store backed by the given file. An empty
// filename falls back to categories.yaml resolved from the usual locations.
func NewCategoryStore(categoriesFile string) *CategoryStore {
	return &CategoryStore{CategoriesFile: categoriesFile}
}

// categoriesDocument is the preferred YAML shape with a top-level key.
type categoriesDocument struct {
	Categories []models.Category `yaml:"categories"`
}

// FindConfigFile looks for a data file in standard locations.
func (s *CategoryStore) FindConfigFile(filename string) (string, error) {
	if filepath.IsAbs(filename) {
		if _, err := os.Stat(filename); err == nil {
			return filename, nil
		}
		return "", os.ErrNotExist
	}

	locations := []string{
		filename,
		filepath.Join("config", filename),
	}
	for _, location := range locations {
		if _, err := os.Stat(location); err == nil {
			return location, nil
		}
	}

	homeDir, err := os.UserHomeDir()
	if err == nil {
		configPath := filepath.Join(homeDir, ".config", "extrato", filename)
		if _, err := os.Stat(configPath); err == nil {
			return configPath, nil
		}
	}

	return "", os.ErrNotExist
}

// LoadCategories loads the category list. A missing file is not an error;
// the app runs fine without categories, suggestions simply stay empty.
func (s *CategoryStore) LoadCategories() ([]models.Category, error) {
	filename := s.CategoriesFile
	if filename == "" {
		filename = "categories.yaml"
	}

	filePath, err := s.FindConfigFile(filename)
	if err != nil {
		log.Warnf("Categories file not found: %s", filename)
		return []models.Category{}, nil
	}

	if strings.EqualFold(filepath.Ext(filePath), ".csv") {
		return s.loadCategoriesCSV(filePath)
	}
	return s.loadCategoriesYAML(filePath)
}

func (s *CategoryStore) loadCategoriesYAML(filePath string) ([]models.Category, error) {
	data, err := os.ReadFile(filePath)
	if err != nil {
		return nil, fmt.Errorf("error reading categories file: %w", err)
	}

	// Preferred shape: a document with a top-level "categories:" key.
	var doc categoriesDocument
	if err := yaml.Unmarshal(data, &doc); err == nil && len(doc.Categories) > 0 {
		log.Debugf("Loaded %d categories from %s", len(doc.Categories), filePath)
		return fillCategoryIDs(doc.Categories), nil
	}

	// Fallback: the file is a bare list.
	var categories []models.Category
	if err := yaml.Unmarshal(data, &categories); err != nil {
		return nil, fmt.Errorf("error parsing categories file: %w", err)
	}
	log.Debugf("Loaded %d categories from %s (bare list)", len(categories), filePath)
	return fillCategoryIDs(categories), nil
}

func (s *CategoryStore) loadCategoriesCSV(filePath string) ([]models.Category, error) {
	log.WithField("file", filePath).Info("Reading categories CSV file")

	file, err := os.Open(filePath)
	if err != nil {
		return nil, fmt.Errorf("error opening categories file: %w", err)
	}
	defer func() {
		if err := file.Close(); err != nil {
			log.WithError(err).Warn("Failed to close file")
		}
	}()

	var categories []models.Category
	if err := gocsv.UnmarshalFile(file, &categories); err != nil {
		return nil, fmt.Errorf("error parsing categories file: %w", err)
	}
	return fillCategoryIDs(categories), nil
}

// fillCategoryIDs gives an id to entries that omit one. The id only has to
// be stable within a single run, so the lowercased name is enough.
func fillCategoryIDs(categories []models.Category) []models.Category {
	for i := range categories {
		if categories[i].ID == "" {
			categories[i].ID = strings.ToLower(strings.TrimSpace(categories[i].Name))
		}
	}
	return categories
}
