package estimator

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/shopspring/decimal"
	"gopkg.in/yaml.v2"
)

type catalogFileEntry struct {
	Key           string  `yaml:"key"`
	KgCO2PerKg    float64 `yaml:"kg_co2_per_kg"`
	DefaultWeight float64 `yaml:"default_weight"`
	Category      string  `yaml:"category"`
}

type catalogFile struct {
	Entries []catalogFileEntry `yaml:"entries"`
}

// LoadCatalogFile parses extra carbon catalog entries from a YAML file.
func LoadCatalogFile(catalogPath string) ([]CatalogEntry, error) {
	if !filepath.IsAbs(catalogPath) {
		wd, err := os.Getwd()
		if err != nil {
			return nil, fmt.Errorf("failed to get working directory: %w", err)
		}
		catalogPath = filepath.Join(wd, catalogPath)
	}

	data, err := os.ReadFile(catalogPath)
	if err != nil {
		return nil, fmt.Errorf("unable to read %s: %w", catalogPath, err)
	}

	var file catalogFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("unable to parse %s: %w", catalogPath, err)
	}

	entries := make([]CatalogEntry, 0, len(file.Entries))
	for i, e := range file.Entries {
		if e.Key == "" {
			return nil, fmt.Errorf("catalog entry at index %d missing key", i)
		}
		if e.KgCO2PerKg <= 0 {
			return nil, fmt.Errorf("catalog entry %q has non-positive kg_co2_per_kg", e.Key)
		}
		if e.DefaultWeight <= 0 {
			return nil, fmt.Errorf("catalog entry %q has non-positive default_weight", e.Key)
		}
		category := e.Category
		if category == "" {
			category = "Unknown"
		}
		entries = append(entries, CatalogEntry{
			Key:           e.Key,
			KgCO2PerKg:    decimal.NewFromFloat(e.KgCO2PerKg),
			DefaultWeight: decimal.NewFromFloat(e.DefaultWeight),
			Category:      category,
		})
	}

	return entries, nil
}

// ExtendCatalog appends extra entries to the built-in catalog. Call once at
// process start, before serving; the catalog is immutable afterwards.
func ExtendCatalog(entries []CatalogEntry) {
	carbonCatalog = append(carbonCatalog, entries...)
}
