package rewards

import (
	"time"

	"ecoscan-rewards-go/internal/models"

	"github.com/shopspring/decimal"
)

// MonthlyBonus is a once-per-calendar-month confirmed point award.
type MonthlyBonus struct {
	Points int    `json:"points"`
	Reason string `json:"reason"`
}

// CalculateMonthlyBonus returns the bonus the user currently qualifies for,
// most generous first, or nil. Eligibility (one award per calendar month) is
// checked separately via MonthlyBonusEligible.
func CalculateMonthlyBonus(p *models.UserProfile) *MonthlyBonus {
	if p.MonthlyCarbon.LessThan(twentyKg) && p.TotalScanned >= 10 {
		return &MonthlyBonus{
			Points: EcoChampionPoints,
			Reason: "Eco Champion - Monthly carbon under 20kg",
		}
	}
	if p.MonthlyCarbon.LessThan(thirtyKg) && p.TotalScanned >= 5 {
		return &MonthlyBonus{
			Points: MonthlyGoalPoints,
			Reason: "Monthly Goal - Carbon under 30kg",
		}
	}
	return nil
}

// MonthlyBonusEligible reports whether a bonus may be awarded: no prior check
// this calendar month. Crossing a month boundary resets eligibility even if
// fewer than 30 days have elapsed.
func MonthlyBonusEligible(lastCheck *time.Time, now time.Time) bool {
	if lastCheck == nil {
		return true
	}
	return lastCheck.Year() != now.Year() || lastCheck.Month() != now.Month()
}

// SustainabilityTier is a cosmetic classification independent of points.
type SustainabilityTier struct {
	Tier        string `json:"tier"`
	Description string `json:"description"`
}

// GetSustainabilityTier classifies a user by monthly carbon and scan volume.
// Evaluated top to bottom, first match wins.
func GetSustainabilityTier(monthlyCarbon decimal.Decimal, totalScanned int) SustainabilityTier {
	switch {
	case monthlyCarbon.LessThan(tenKg) && totalScanned >= 15:
		return SustainabilityTier{Tier: "Platinum", Description: "Ultimate eco-warrior"}
	case monthlyCarbon.LessThan(twentyKg) && totalScanned >= 10:
		return SustainabilityTier{Tier: "Gold", Description: "Exceptional sustainability"}
	case monthlyCarbon.LessThan(thirtyKg) && totalScanned >= 5:
		return SustainabilityTier{Tier: "Silver", Description: "Great progress"}
	case monthlyCarbon.LessThan(fortyKg):
		return SustainabilityTier{Tier: "Bronze", Description: "Getting started"}
	default:
		return SustainabilityTier{Tier: "Beginner", Description: "Room for improvement"}
	}
}
