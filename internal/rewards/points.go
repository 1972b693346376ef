package rewards

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// Carbon thresholds used by point bonuses, achievements and tiers.
var (
	halfKg   = decimal.NewFromFloat(0.5)
	oneKg    = decimal.NewFromInt(1)
	tenKg    = decimal.NewFromInt(10)
	twentyKg = decimal.NewFromInt(20)
	thirtyKg = decimal.NewFromInt(30)
	fortyKg  = decimal.NewFromInt(40)
)

// PointsResult is the outcome of scoring one scan event.
type PointsResult struct {
	Points      int
	Reasons     []string
	IsConfirmed bool
}

// CalculateScanPoints scores a single scan. It is a pure function; the caller
// persists the transaction and increments the matching point bucket.
//
// Points are confirmed immediately for a first scan or once the user has
// reached the auto-confirmation scan count; otherwise they mature for
// ConfirmationDelayHours before a sweep confirms them.
func CalculateScanPoints(carbonEstimate decimal.Decimal, isFirstScan bool, streakCount, userTotalScans int) PointsResult {
	var points int
	var reasons []string

	isConfirmed := isFirstScan || userTotalScans >= MinScansForAutoConfirmation

	if isFirstScan {
		points += FirstScanPoints
		reasons = append(reasons, fmt.Sprintf("First scan bonus: +%d points", FirstScanPoints))
	} else {
		points += DailyScanPoints
		reasons = append(reasons, fmt.Sprintf("Daily scan: +%d points", DailyScanPoints))
	}

	if carbonEstimate.LessThan(halfKg) {
		points += VeryLowCarbonPoints
		reasons = append(reasons, fmt.Sprintf("Very low carbon product (<0.5kg): +%d points", VeryLowCarbonPoints))
	} else if carbonEstimate.LessThan(oneKg) {
		points += LowCarbonPoints
		reasons = append(reasons, fmt.Sprintf("Low carbon product (<1kg): +%d points", LowCarbonPoints))
	}

	// Streak bonus, capped so long streaks don't run away.
	if streakCount > 1 {
		streakBonus := streakCount * StreakBonusPerDay
		if streakBonus > StreakBonusCap {
			streakBonus = StreakBonusCap
		}
		points += streakBonus
		reasons = append(reasons, fmt.Sprintf("%d-day streak bonus: +%d points", streakCount, streakBonus))
	}

	// Milestone fires at exactly seven days, once per streak cycle.
	if streakCount == 7 {
		points += WeeklyGoalPoints
		reasons = append(reasons, fmt.Sprintf("Weekly milestone bonus: +%d points", WeeklyGoalPoints))
	}

	return PointsResult{Points: points, Reasons: reasons, IsConfirmed: isConfirmed}
}
