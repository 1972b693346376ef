package rewards

import (
	"strings"
	"testing"

	"github.com/shopspring/decimal"
)

func TestCalculateScanPoints_FirstScanVeryLowCarbon(t *testing.T) {
	result := CalculateScanPoints(decimal.NewFromFloat(0.3), true, 1, 0)

	expected := FirstScanPoints + VeryLowCarbonPoints
	if result.Points != expected {
		t.Errorf("Expected %d points, got %d", expected, result.Points)
	}
	if !result.IsConfirmed {
		t.Error("Expected first scan points to be confirmed immediately")
	}
	if len(result.Reasons) != 2 {
		t.Fatalf("Expected 2 reasons, got %d: %v", len(result.Reasons), result.Reasons)
	}
	if result.Reasons[0] != "First scan bonus: +50 points" {
		t.Errorf("Unexpected first reason: %q", result.Reasons[0])
	}
	if result.Reasons[1] != "Very low carbon product (<0.5kg): +25 points" {
		t.Errorf("Unexpected second reason: %q", result.Reasons[1])
	}
}

func TestCalculateScanPoints_SecondScanUnconfirmed(t *testing.T) {
	result := CalculateScanPoints(decimal.NewFromFloat(2.0), false, 1, 1)

	if result.Points != DailyScanPoints {
		t.Errorf("Expected %d points, got %d", DailyScanPoints, result.Points)
	}
	if result.IsConfirmed {
		t.Error("Expected points to be unconfirmed below the auto-confirmation scan count")
	}
}

func TestCalculateScanPoints_SecondScanWithStreak(t *testing.T) {
	result := CalculateScanPoints(decimal.NewFromFloat(5.0), false, 2, 1)

	// Daily 10 + streak 2*5, no carbon bonus.
	if result.Points != 20 {
		t.Errorf("Expected 20 points, got %d", result.Points)
	}
	if result.IsConfirmed {
		t.Error("Expected unconfirmed points")
	}
}

func TestCalculateScanPoints_AutoConfirmationThreshold(t *testing.T) {
	below := CalculateScanPoints(decimal.NewFromFloat(2.0), false, 1, MinScansForAutoConfirmation-1)
	if below.IsConfirmed {
		t.Error("Expected unconfirmed just below the threshold")
	}

	at := CalculateScanPoints(decimal.NewFromFloat(2.0), false, 1, MinScansForAutoConfirmation)
	if !at.IsConfirmed {
		t.Error("Expected confirmed at the threshold")
	}
}

func TestCalculateScanPoints_SevenDayStreak(t *testing.T) {
	result := CalculateScanPoints(decimal.NewFromFloat(2.5), false, 7, 9)

	// Daily 10 + streak 7*5 + weekly milestone 100.
	expected := DailyScanPoints + 7*StreakBonusPerDay + WeeklyGoalPoints
	if result.Points != expected {
		t.Errorf("Expected %d points, got %d", expected, result.Points)
	}
	foundMilestone := false
	for _, reason := range result.Reasons {
		if strings.Contains(reason, "Weekly milestone") {
			foundMilestone = true
		}
	}
	if !foundMilestone {
		t.Errorf("Expected weekly milestone reason, got %v", result.Reasons)
	}
}

func TestCalculateScanPoints_WeeklyMilestoneOnlyAtSeven(t *testing.T) {
	for _, streak := range []int{6, 8, 14} {
		result := CalculateScanPoints(decimal.NewFromFloat(2.5), false, streak, 10)
		for _, reason := range result.Reasons {
			if strings.Contains(reason, "Weekly milestone") {
				t.Errorf("Streak %d should not earn the weekly milestone", streak)
			}
		}
	}
}

func TestCalculateScanPoints_StreakBonusCapped(t *testing.T) {
	result := CalculateScanPoints(decimal.NewFromFloat(2.5), false, 50, 100)

	expected := DailyScanPoints + StreakBonusCap
	if result.Points != expected {
		t.Errorf("Expected capped bonus total %d, got %d", expected, result.Points)
	}
}

func TestCalculateScanPoints_LowCarbonBoundaries(t *testing.T) {
	tests := []struct {
		carbon   float64
		expected int
	}{
		{0.49, DailyScanPoints + VeryLowCarbonPoints},
		{0.5, DailyScanPoints + LowCarbonPoints},
		{0.99, DailyScanPoints + LowCarbonPoints},
		{1.0, DailyScanPoints},
	}

	for _, test := range tests {
		result := CalculateScanPoints(decimal.NewFromFloat(test.carbon), false, 1, 10)
		if result.Points != test.expected {
			t.Errorf("Carbon %.2f: expected %d points, got %d", test.carbon, test.expected, result.Points)
		}
	}
}
