package estimator

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

// Confidence tiers for carbon estimates
const (
	ConfidenceHigh   = "high"
	ConfidenceMedium = "medium"
	ConfidenceLow    = "low"
)

// Estimate is a heuristic carbon footprint for one product.
type Estimate struct {
	CarbonFootprint decimal.Decimal `json:"carbonFootprint"`
	Category        string          `json:"category"`
	Confidence      string          `json:"confidence"`
	Calculation     string          `json:"calculation"`
}

// CatalogEntry maps a canonical food keyword to an emission rate. Footprint
// is KgCO2PerKg × DefaultWeight, rounded to two decimals.
type CatalogEntry struct {
	Key           string
	KgCO2PerKg    decimal.Decimal
	DefaultWeight decimal.Decimal
	Category      string
}

func entry(key string, kgCO2PerKg, defaultWeight float64, category string) CatalogEntry {
	return CatalogEntry{
		Key:           key,
		KgCO2PerKg:    decimal.NewFromFloat(kgCO2PerKg),
		DefaultWeight: decimal.NewFromFloat(defaultWeight),
		Category:      category,
	}
}

// carbonCatalog holds per-kg footprints from published lifecycle studies.
// Declaration order matters: the first key that is a substring of the
// product name wins.
var carbonCatalog = []CatalogEntry{
	// Meat & Fish
	entry("beef", 27.0, 0.5, "Meat & Fish"),
	entry("lamb", 24.5, 0.5, "Meat & Fish"),
	entry("cheese", 13.5, 0.2, "Dairy"),
	entry("pork", 12.1, 0.5, "Meat & Fish"),
	entry("chicken", 6.9, 0.5, "Meat & Fish"),
	entry("fish", 6.1, 0.3, "Meat & Fish"),

	// Dairy
	entry("milk", 3.2, 1.0, "Dairy"),
	entry("yogurt", 2.2, 0.5, "Dairy"),
	entry("butter", 23.8, 0.25, "Dairy"),

	// Beverages
	entry("coffee", 16.9, 0.25, "Beverages"),
	entry("tea", 6.8, 0.1, "Beverages"),
	entry("beer", 0.89, 0.5, "Beverages"),
	entry("wine", 1.79, 0.75, "Beverages"),
	entry("soft drink", 0.39, 0.5, "Beverages"),
	entry("water", 0.0001, 1.0, "Beverages"),

	// Grains & Cereals
	entry("rice", 2.7, 1.0, "Grains & Cereals"),
	entry("wheat", 1.4, 1.0, "Grains & Cereals"),
	entry("oats", 2.5, 0.5, "Grains & Cereals"),
	entry("bread", 0.98, 0.5, "Grains & Cereals"),
	entry("pasta", 1.4, 0.5, "Grains & Cereals"),

	// Fruits & Vegetables
	entry("apple", 0.42, 1.0, "Fruits & Vegetables"),
	entry("banana", 0.86, 1.0, "Fruits & Vegetables"),
	entry("orange", 0.31, 1.0, "Fruits & Vegetables"),
	entry("tomato", 2.1, 1.0, "Fruits & Vegetables"),
	entry("potato", 0.46, 1.0, "Fruits & Vegetables"),
	entry("carrot", 0.35, 1.0, "Fruits & Vegetables"),
	entry("lettuce", 0.73, 0.5, "Fruits & Vegetables"),

	// Nuts & Legumes
	entry("almonds", 14.3, 0.2, "Nuts & Legumes"),
	entry("peanuts", 3.2, 0.2, "Nuts & Legumes"),
	entry("beans", 2.0, 0.5, "Nuts & Legumes"),
	entry("lentils", 0.9, 0.5, "Nuts & Legumes"),

	// Snacks & Sweets
	entry("chocolate", 18.7, 0.1, "Snacks & Sweets"),
	entry("cookies", 3.2, 0.3, "Snacks & Sweets"),
	entry("chips", 4.6, 0.15, "Snacks & Sweets"),

	// Oils & Condiments
	entry("olive oil", 5.4, 0.5, "Oils & Condiments"),
	entry("vegetable oil", 3.3, 0.5, "Oils & Condiments"),
	entry("sugar", 3.2, 1.0, "Oils & Condiments"),
}

// keywordAliases maps loose product terms to a canonical catalog key.
// Matches here carry medium confidence.
var keywordAliases = []struct {
	Canonical string
	Keywords  []string
}{
	{"beef", []string{"beef", "steak", "burger", "ground beef"}},
	{"chicken", []string{"chicken", "poultry", "wing", "breast"}},
	{"milk", []string{"milk", "dairy milk"}},
	{"bread", []string{"bread", "loaf", "baguette"}},
	{"cheese", []string{"cheese", "cheddar", "mozzarella", "swiss"}},
	{"chocolate", []string{"chocolate", "cocoa", "candy bar"}},
	{"coffee", []string{"coffee", "espresso", "cappuccino"}},
	{"apple", []string{"apple", "red apple", "green apple"}},
	{"banana", []string{"banana", "plantain"}},
	{"rice", []string{"rice", "basmati", "jasmine rice"}},
	{"pasta", []string{"pasta", "spaghetti", "macaroni", "noodles"}},
	{"potato", []string{"potato", "spud", "russet"}},
	{"tomato", []string{"tomato", "cherry tomato"}},
}

// categoryEstimates are coarse per-category constants for the last fallback
// before the default.
var categoryEstimates = []struct {
	Keyword  string
	Estimate decimal.Decimal
}{
	{"meat", decimal.NewFromFloat(15.0)},
	{"dairy", decimal.NewFromFloat(5.0)},
	{"beverage", decimal.NewFromFloat(1.0)},
	{"snack", decimal.NewFromFloat(3.0)},
	{"grain", decimal.NewFromFloat(1.5)},
	{"fruit", decimal.NewFromFloat(0.5)},
	{"vegetable", decimal.NewFromFloat(0.8)},
	{"processed", decimal.NewFromFloat(4.0)},
}

var defaultEstimate = decimal.NewFromFloat(2.5)

// CalculateCarbonFootprint estimates the footprint for a product name. It is
// total over any string, including empty: the estimate only degrades in
// confidence, it never errors. The brand is accepted for interface parity
// with the product lookup but does not affect the estimate.
func CalculateCarbonFootprint(productName, brand string) Estimate {
	normalized := strings.ToLower(productName)

	// Direct catalog match, first entry in declaration order wins.
	for _, e := range carbonCatalog {
		if strings.Contains(normalized, e.Key) {
			return catalogEstimate(e, ConfidenceHigh, "")
		}
	}

	// Loose keyword aliases.
	for _, alias := range keywordAliases {
		for _, keyword := range alias.Keywords {
			if strings.Contains(normalized, keyword) {
				if e, ok := findEntry(alias.Canonical); ok {
					return catalogEstimate(e, ConfidenceMedium, " (estimated)")
				}
			}
		}
	}

	// Coarse category keyword.
	for _, ce := range categoryEstimates {
		if strings.Contains(normalized, ce.Keyword) {
			return Estimate{
				CarbonFootprint: ce.Estimate,
				Category:        "Unknown",
				Confidence:      ConfidenceLow,
				Calculation:     fmt.Sprintf("Category-based estimate: %s kg CO₂", ce.Estimate.String()),
			}
		}
	}

	// Average processed food.
	return Estimate{
		CarbonFootprint: defaultEstimate,
		Category:        "Unknown",
		Confidence:      ConfidenceLow,
		Calculation:     "Default estimate for processed food: 2.5 kg CO₂",
	}
}

func catalogEstimate(e CatalogEntry, confidence, suffix string) Estimate {
	footprint := e.KgCO2PerKg.Mul(e.DefaultWeight).Round(2)
	return Estimate{
		CarbonFootprint: footprint,
		Category:        e.Category,
		Confidence:      confidence,
		Calculation: fmt.Sprintf("%s kg CO₂/kg × %s kg = %s kg CO₂%s",
			e.KgCO2PerKg.String(), e.DefaultWeight.String(), footprint.String(), suffix),
	}
}

func findEntry(key string) (CatalogEntry, bool) {
	for _, e := range carbonCatalog {
		if e.Key == key {
			return e, true
		}
	}
	return CatalogEntry{}, false
}
