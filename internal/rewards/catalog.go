package rewards

import "ecoscan-rewards-go/internal/models"

// Point confirmation policy
const (
	// ConfirmationDelayHours is how long unconfirmed points mature before
	// a sweep flips them to confirmed (7 days).
	ConfirmationDelayHours = 24 * 7

	// MinScansForAutoConfirmation is the scan count at which new points
	// skip the maturation window.
	MinScansForAutoConfirmation = 3
)

// Earning reasons that are always confirmed immediately, regardless of the
// user's scan count.
var immediateConfirmationReasons = []string{
	"first_scan",
	"achievement",
	"level_up",
}

// Points earning rules
const (
	FirstScanPoints     = 50
	DailyScanPoints     = 10
	LowCarbonPoints     = 15 // products under 1 kg CO2
	VeryLowCarbonPoints = 25 // products under 0.5 kg CO2
	StreakBonusPerDay   = 5
	StreakBonusCap      = 100
	WeeklyGoalPoints    = 100 // scanning 7 days in a row
	MonthlyGoalPoints   = 500  // monthly carbon under 30 kg
	EcoChampionPoints   = 1000 // monthly carbon under 20 kg
)

// LevelThresholds holds the cumulative points needed for each level.
// Index i is the threshold for level i+1; the table is strictly increasing.
var LevelThresholds = []int{
	0,     // Level 1
	100,   // Level 2
	250,   // Level 3
	500,   // Level 4
	1000,  // Level 5
	2000,  // Level 6
	3500,  // Level 7
	5500,  // Level 8
	8000,  // Level 9
	12000, // Level 10
	18000, // Level 11
	25000, // Level 12
	35000, // Level 13
	50000, // Level 14
	75000, // Level 15 (max)
}

// MaxLevel is the top of the level table.
var MaxLevel = len(LevelThresholds)

// Shop item categories
const (
	CategoryBadge    = "badge"
	CategoryFeature  = "feature"
	CategoryCosmetic = "cosmetic"
)

// ShopItem is one entry in the fixed reward shop catalog.
type ShopItem struct {
	Id          string
	Name        string
	Description string
	Cost        int
	Icon        string
	Category    string
	Available   bool
}

// ShopItems is the process-wide immutable reward shop catalog.
var ShopItems = []ShopItem{
	{
		Id:          "eco_hero_badge",
		Name:        "Eco Hero Badge",
		Description: "Show your commitment to sustainability with this special badge",
		Cost:        500,
		Icon:        "🎖️",
		Category:    CategoryBadge,
		Available:   true,
	},
	{
		Id:          "carbon_warrior_badge",
		Name:        "Carbon Warrior Badge",
		Description: "Elite status for the most dedicated eco-warriors",
		Cost:        1000,
		Icon:        "⚔️",
		Category:    CategoryBadge,
		Available:   true,
	},
	{
		Id:          "custom_avatar",
		Name:        "Custom Avatar",
		Description: "Personalize your profile with a custom avatar",
		Cost:        300,
		Icon:        "👤",
		Category:    CategoryCosmetic,
		Available:   true,
	},
	{
		Id:          "advanced_analytics",
		Name:        "Advanced Analytics",
		Description: "Unlock detailed carbon footprint analytics and insights",
		Cost:        750,
		Icon:        "📊",
		Category:    CategoryFeature,
		Available:   true,
	},
	{
		Id:          "streak_protector",
		Name:        "Streak Protector",
		Description: "Protect your scanning streak for one missed day",
		Cost:        200,
		Icon:        "🛡️",
		Category:    CategoryFeature,
		Available:   true,
	},
	{
		Id:          "double_points",
		Name:        "Double Points Day",
		Description: "Earn 2x points for one full day of scanning",
		Cost:        400,
		Icon:        "⚡",
		Category:    CategoryFeature,
		Available:   true,
	},
}

// Achievement is one entry in the fixed achievement catalog. Condition is a
// pure predicate over the user aggregate.
type Achievement struct {
	Id          string
	Name        string
	Description string
	Condition   func(p *models.UserProfile) bool
	Points      int
	Icon        string
}

// Achievements is the process-wide immutable achievement catalog.
var Achievements = []Achievement{
	{
		Id:          "first_scan",
		Name:        "First Steps",
		Description: "Scan your first product",
		Condition:   func(p *models.UserProfile) bool { return p.TotalScanned >= 1 },
		Points:      50,
		Icon:        "🎯",
	},
	{
		Id:          "ten_scans",
		Name:        "Getting Started",
		Description: "Scan 10 products",
		Condition:   func(p *models.UserProfile) bool { return p.TotalScanned >= 10 },
		Points:      100,
		Icon:        "📱",
	},
	{
		Id:          "fifty_scans",
		Name:        "Scanner Pro",
		Description: "Scan 50 products",
		Condition:   func(p *models.UserProfile) bool { return p.TotalScanned >= 50 },
		Points:      250,
		Icon:        "🏆",
	},
	{
		Id:          "hundred_scans",
		Name:        "Scan Master",
		Description: "Scan 100 products",
		Condition:   func(p *models.UserProfile) bool { return p.TotalScanned >= 100 },
		Points:      500,
		Icon:        "👑",
	},
	{
		Id:          "five_hundred_scans",
		Name:        "Scan Legend",
		Description: "Scan 500 products",
		Condition:   func(p *models.UserProfile) bool { return p.TotalScanned >= 500 },
		Points:      1500,
		Icon:        "🌟",
	},
	{
		Id:          "week_streak",
		Name:        "Week Warrior",
		Description: "Maintain a 7-day scanning streak",
		Condition:   func(p *models.UserProfile) bool { return p.StreakCount >= 7 },
		Points:      150,
		Icon:        "🔥",
	},
	{
		Id:          "month_streak",
		Name:        "Consistency King",
		Description: "Maintain a 30-day scanning streak",
		Condition:   func(p *models.UserProfile) bool { return p.StreakCount >= 30 },
		Points:      1000,
		Icon:        "👑",
	},
	{
		Id:          "hundred_day_streak",
		Name:        "Streak Master",
		Description: "Maintain a 100-day scanning streak",
		Condition:   func(p *models.UserProfile) bool { return p.StreakCount >= 100 },
		Points:      3000,
		Icon:        "💎",
	},
	{
		Id:          "eco_warrior",
		Name:        "Eco Warrior",
		Description: "Keep monthly carbon footprint under 20kg",
		Condition: func(p *models.UserProfile) bool {
			return p.MonthlyCarbon.LessThan(twentyKg) && p.TotalScanned >= 10
		},
		Points: 300,
		Icon:   "🌱",
	},
	{
		Id:          "carbon_conscious",
		Name:        "Carbon Conscious",
		Description: "Keep monthly carbon footprint under 30kg",
		Condition: func(p *models.UserProfile) bool {
			return p.MonthlyCarbon.LessThan(thirtyKg) && p.TotalScanned >= 5
		},
		Points: 150,
		Icon:   "🌿",
	},
	{
		Id:          "zero_waste_hero",
		Name:        "Zero Waste Hero",
		Description: "Keep monthly carbon footprint under 10kg",
		Condition: func(p *models.UserProfile) bool {
			return p.MonthlyCarbon.LessThan(tenKg) && p.TotalScanned >= 15
		},
		Points: 500,
		Icon:   "🌍",
	},
	{
		Id:          "low_carbon_specialist",
		Name:        "Low Carbon Specialist",
		Description: "Scan 25 products with less than 1kg CO2",
		Condition:   func(p *models.UserProfile) bool { return p.LowCarbonScans >= 25 },
		Points:      400,
		Icon:        "♻️",
	},
	{
		Id:          "level_5",
		Name:        "Rising Star",
		Description: "Reach Level 5",
		Condition:   func(p *models.UserProfile) bool { return p.Level >= 5 },
		Points:      500,
		Icon:        "⭐",
	},
	{
		Id:          "level_10",
		Name:        "Sustainability Champion",
		Description: "Reach Level 10",
		Condition:   func(p *models.UserProfile) bool { return p.Level >= 10 },
		Points:      1000,
		Icon:        "🏅",
	},
	{
		Id:          "level_15",
		Name:        "Eco Legend",
		Description: "Reach the maximum Level 15",
		Condition:   func(p *models.UserProfile) bool { return p.Level >= 15 },
		Points:      2500,
		Icon:        "🌟",
	},
	{
		Id:          "points_millionaire",
		Name:        "Points Millionaire",
		Description: "Earn 10,000 total points",
		Condition:   func(p *models.UserProfile) bool { return p.TotalPointsEarned >= 10000 },
		Points:      1000,
		Icon:        "💰",
	},
	{
		Id:          "early_adopter",
		Name:        "Early Adopter",
		Description: "One of the first 100 users to join",
		// Registration order is not tracked yet, so nobody qualifies.
		Condition: func(p *models.UserProfile) bool { return false },
		Points:    200,
		Icon:      "🏃",
	},
}

// ShouldConfirmImmediately reports whether points for the given earning
// reason skip the maturation window.
func ShouldConfirmImmediately(reason string) bool {
	for _, r := range immediateConfirmationReasons {
		if r == reason {
			return true
		}
	}
	return false
}

// FindShopItem returns the catalog entry for the item id, or nil.
func FindShopItem(itemId string) *ShopItem {
	for i := range ShopItems {
		if ShopItems[i].Id == itemId {
			return &ShopItems[i]
		}
	}
	return nil
}
