package store

import (
	"context"
	"errors"
	"fmt"
	"time"

	"ecoscan-rewards-go/internal/models"

	"github.com/shopspring/decimal"
)

// Sentinel errors shared across all backend implementations.
var (
	ErrUserNotFound           = errors.New("user not found")
	ErrProductNotFound        = errors.New("product not found")
	ErrItemNotFound           = errors.New("shop item not found")
	ErrItemUnavailable        = errors.New("shop item not available")
	ErrAlreadyPurchased       = errors.New("shop item already purchased")
	ErrInsufficientPoints     = errors.New("insufficient confirmed points")
	ErrConcurrentModification = errors.New("concurrent modification detected")
)

// InsufficientPointsError reports a failed purchase with the balances the
// caller needs to explain "available soon" messaging. Only confirmed points
// are spendable; unconfirmed points mature after the confirmation delay.
type InsufficientPointsError struct {
	Required    int
	Confirmed   int
	Unconfirmed int
}

func (e *InsufficientPointsError) Error() string {
	return fmt.Sprintf("insufficient confirmed points: required %d, confirmed %d, unconfirmed %d",
		e.Required, e.Confirmed, e.Unconfirmed)
}

// Is makes errors.Is(err, ErrInsufficientPoints) match.
func (e *InsufficientPointsError) Is(target error) bool {
	return target == ErrInsufficientPoints
}

// ApplyScanParams carries one scan event's full effect on the user aggregate.
// The points engine computes the values; the store persists them atomically.
type ApplyScanParams struct {
	UserId         string
	Barcode        string
	ProductName    string
	Category       string
	Confidence     string
	CarbonEstimate decimal.Decimal

	PointsEarned    int
	PointsConfirmed bool
	Reasons         []string

	StreakCount         int
	BestStreakCount     int
	StreakProtectorUsed bool

	NewLevel int

	// Achievements newly unlocked by this scan. Their points are credited
	// as immediately confirmed earned transactions.
	NewAchievements []models.EarnedAchievement

	ScannedAt time.Time
}

// PurchaseParams identifies a validated shop item to redeem.
type PurchaseParams struct {
	UserId   string
	ItemId   string
	Name     string
	Cost     int
	Category string
}

// SweepResult reports the effect of one pending-confirmation sweep.
type SweepResult struct {
	ConfirmedPoints       int
	TransactionsConfirmed int
}

// MonthlyAward reports the outcome of a monthly bonus check.
type MonthlyAward struct {
	Awarded bool
	Points  int
	Reason  string
}

// LeaderboardRow is one ranked entry in the read-only leaderboard.
type LeaderboardRow struct {
	UserId            string
	Name              string
	Email             string
	TotalPointsEarned int
	ConfirmedPoints   int
	UnconfirmedPoints int
	Level             int
	TotalScanned      int
	StreakCount       int
	MonthlyCarbon     decimal.Decimal
	AchievementCount  int
	ActiveBadges      []string
}

// ProfileStore defines the contract the persistence collaborator must satisfy.
// Every mutating call runs as a single atomic operation on one user aggregate;
// concurrent writers are detected via an optimistic version check and surface
// ErrConcurrentModification instead of losing updates.
type ProfileStore interface {
	// --- Users ---
	GetUsers(ctx context.Context) ([]models.User, error)
	GetUserById(ctx context.Context, userId string) (*models.User, error)
	GetUserByEmail(ctx context.Context, email string) (*models.User, error)
	CreateUser(ctx context.Context, userId, name, email string) (*models.User, error)

	// --- Aggregate ---
	GetProfile(ctx context.Context, userId string) (*models.UserProfile, error)
	ApplyScan(ctx context.Context, params ApplyScanParams) (*models.UserProfile, error)
	Purchase(ctx context.Context, params PurchaseParams) (*models.PurchasedItem, error)
	SweepConfirmations(ctx context.Context, userId string, now time.Time) (*SweepResult, error)
	AwardMonthlyBonus(ctx context.Context, userId string, now time.Time) (*MonthlyAward, error)

	// --- Read-only views ---
	Leaderboard(ctx context.Context, limit int) ([]LeaderboardRow, error)

	// --- Lifecycle ---
	Close()
}
