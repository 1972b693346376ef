package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// User represents an account in the system
type User struct {
	Id        string    `db:"id"`
	Name      string    `db:"name"`
	Email     string    `db:"email"`
	CreatedAt time.Time `db:"created_at"`
	UpdatedAt time.Time `db:"updated_at"`
}

// Transaction types
const (
	TransactionEarned   = "earned"
	TransactionRedeemed = "redeemed"
)

// Point confirmation states
const (
	PointsConfirmed   = "confirmed"
	PointsUnconfirmed = "unconfirmed"
)

// RewardTransaction is one entry in a user's point ledger. Earned entries
// carry a confirmation state; redeemed entries never do.
type RewardTransaction struct {
	Id          string     `db:"id"`
	UserId      string     `db:"user_id"`
	Type        string     `db:"type"`
	Points      int        `db:"points"`
	PointsType  string     `db:"points_type"`
	Reason      string     `db:"reason"`
	Description string     `db:"description"`
	Date        time.Time  `db:"date"`
	ConfirmedAt *time.Time `db:"confirmed_at"`
}

// EarnedAchievement is an achievement a user has unlocked. An achievement id
// can be earned at most once per user.
type EarnedAchievement struct {
	UserId        string    `db:"user_id"`
	AchievementId string    `db:"achievement_id"`
	Name          string    `db:"name"`
	Description   string    `db:"description"`
	Points        int       `db:"points"`
	EarnedAt      time.Time `db:"earned_at"`
}

// PurchasedItem records a reward-shop purchase. At most one purchase per item id.
type PurchasedItem struct {
	UserId      string    `db:"user_id"`
	ItemId      string    `db:"item_id"`
	Name        string    `db:"name"`
	Cost        int       `db:"cost"`
	Category    string    `db:"category"`
	PurchasedAt time.Time `db:"purchased_at"`
	Active      bool      `db:"active"`
}

// Scan is one product scan event in a user's history
type Scan struct {
	Id             string          `db:"id"`
	UserId         string          `db:"user_id"`
	Barcode        string          `db:"barcode"`
	ProductName    string          `db:"product_name"`
	Category       string          `db:"category"`
	Confidence     string          `db:"confidence"`
	CarbonEstimate decimal.Decimal `db:"carbon_estimate"`
	Date           time.Time       `db:"date"`
}

// UserProfile is the per-user rewards aggregate. It is mutated by every
// scan, purchase, confirmation sweep and monthly bonus award, always inside
// a single database transaction guarded by the Version column.
type UserProfile struct {
	UserId                string           `db:"user_id"`
	ConfirmedPoints       int              `db:"confirmed_points"`
	UnconfirmedPoints     int              `db:"unconfirmed_points"`
	TotalPointsEarned     int              `db:"total_points_earned"`
	Level                 int              `db:"level"`
	StreakCount           int              `db:"streak_count"`
	BestStreakCount       int              `db:"best_streak_count"`
	TotalScanned          int              `db:"total_scanned"`
	MonthlyCarbon         decimal.Decimal  `db:"monthly_carbon"`
	LastScanDate          *time.Time       `db:"last_scan_date"`
	LastMonthlyBonusCheck *time.Time       `db:"last_monthly_bonus_check"`
	MonthlyBonusesEarned  int              `db:"monthly_bonuses_earned"`
	StreakProtectors      int              `db:"streak_protectors"`
	DoublePointsDays      int              `db:"double_points_days"`
	HasAdvancedAnalytics  bool             `db:"has_advanced_analytics"`
	CustomAvatar          string           `db:"custom_avatar"`
	Version               int64            `db:"version"`
	UpdatedAt             time.Time        `db:"updated_at"`

	// Count of scans under 1 kg CO2, derived from scan history on load.
	LowCarbonScans int

	ActiveBadges       []string
	Achievements       []EarnedAchievement
	PurchasedItems     []PurchasedItem
	RewardTransactions []RewardTransaction
}

// TotalPoints is the legacy display balance: confirmed plus unconfirmed.
// Note TotalPointsEarned is lifetime earnings and is never reduced by
// redemptions, so it is not a spendable balance.
func (p *UserProfile) TotalPoints() int {
	return p.ConfirmedPoints + p.UnconfirmedPoints
}

// HasAchievement reports whether the achievement id is already earned.
func (p *UserProfile) HasAchievement(id string) bool {
	for _, a := range p.Achievements {
		if a.AchievementId == id {
			return true
		}
	}
	return false
}

// HasPurchased reports whether the shop item id was already bought.
func (p *UserProfile) HasPurchased(itemId string) bool {
	for _, item := range p.PurchasedItems {
		if item.ItemId == itemId {
			return true
		}
	}
	return false
}
