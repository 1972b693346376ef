package estimator

import (
	"testing"

	"github.com/shopspring/decimal"
)

func TestCalculateCarbonFootprint_DirectMatch(t *testing.T) {
	estimate := CalculateCarbonFootprint("Organic Beef Mince", "FarmFresh")

	// 27.0 kg/kg × 0.5 kg
	expected := decimal.NewFromFloat(13.5)
	if !estimate.CarbonFootprint.Equal(expected) {
		t.Errorf("Expected %s kg, got %s", expected, estimate.CarbonFootprint)
	}
	if estimate.Confidence != ConfidenceHigh {
		t.Errorf("Expected high confidence, got %s", estimate.Confidence)
	}
	if estimate.Category != "Meat & Fish" {
		t.Errorf("Expected Meat & Fish, got %s", estimate.Category)
	}
	if estimate.Calculation != "27 kg CO₂/kg × 0.5 kg = 13.5 kg CO₂" {
		t.Errorf("Unexpected calculation string: %q", estimate.Calculation)
	}
}

func TestCalculateCarbonFootprint_KeywordAlias(t *testing.T) {
	estimate := CalculateCarbonFootprint("Flame-Grilled Burger 500g", "GrillCo")

	// Alias routes to the beef entry with medium confidence.
	expected := decimal.NewFromFloat(13.5)
	if !estimate.CarbonFootprint.Equal(expected) {
		t.Errorf("Expected %s kg via beef alias, got %s", expected, estimate.CarbonFootprint)
	}
	if estimate.Confidence != ConfidenceMedium {
		t.Errorf("Expected medium confidence, got %s", estimate.Confidence)
	}
	if estimate.Calculation != "27 kg CO₂/kg × 0.5 kg = 13.5 kg CO₂ (estimated)" {
		t.Errorf("Unexpected calculation string: %q", estimate.Calculation)
	}
}

func TestCalculateCarbonFootprint_DeclarationOrderWins(t *testing.T) {
	// Contains both "beef" and "cheese"; beef is declared first.
	estimate := CalculateCarbonFootprint("Beef and Cheese Pie", "")
	if estimate.Category != "Meat & Fish" {
		t.Errorf("Expected the beef entry to win, got category %s", estimate.Category)
	}
}

func TestCalculateCarbonFootprint_CategoryFallback(t *testing.T) {
	estimate := CalculateCarbonFootprint("Assorted meaty platter", "")

	if !estimate.CarbonFootprint.Equal(decimal.NewFromFloat(15.0)) {
		t.Errorf("Expected 15 kg category estimate, got %s", estimate.CarbonFootprint)
	}
	if estimate.Confidence != ConfidenceLow {
		t.Errorf("Expected low confidence, got %s", estimate.Confidence)
	}
	if estimate.Category != "Unknown" {
		t.Errorf("Expected Unknown category, got %s", estimate.Category)
	}
}

func TestCalculateCarbonFootprint_Default(t *testing.T) {
	estimate := CalculateCarbonFootprint("", "")

	if !estimate.CarbonFootprint.Equal(decimal.NewFromFloat(2.5)) {
		t.Errorf("Expected default 2.5 kg, got %s", estimate.CarbonFootprint)
	}
	if estimate.Confidence != ConfidenceLow {
		t.Errorf("Expected low confidence, got %s", estimate.Confidence)
	}
	if estimate.Calculation != "Default estimate for processed food: 2.5 kg CO₂" {
		t.Errorf("Unexpected calculation string: %q", estimate.Calculation)
	}
}

func TestCalculateCarbonFootprint_CaseInsensitive(t *testing.T) {
	upper := CalculateCarbonFootprint("GREEK YOGURT", "")
	lower := CalculateCarbonFootprint("greek yogurt", "")

	if !upper.CarbonFootprint.Equal(lower.CarbonFootprint) {
		t.Errorf("Expected case-insensitive matching: %s vs %s",
			upper.CarbonFootprint, lower.CarbonFootprint)
	}
	// 2.2 × 0.5
	if !upper.CarbonFootprint.Equal(decimal.NewFromFloat(1.1)) {
		t.Errorf("Expected 1.1 kg for yogurt, got %s", upper.CarbonFootprint)
	}
}
