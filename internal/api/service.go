package api

import (
	"context"
	"errors"
	"fmt"
	"time"

	"ecoscan-rewards-go/internal/estimator"
	"ecoscan-rewards-go/internal/models"
	"ecoscan-rewards-go/internal/packaging"
	"ecoscan-rewards-go/internal/rewards"
	"ecoscan-rewards-go/internal/store"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// Optimistic version conflicts are retried this many times before giving up.
const maxApplyRetries = 3

// ProductSource resolves barcodes to product details.
type ProductSource interface {
	GetProduct(ctx context.Context, barcode string) (*models.Product, error)
}

// RewardsService orchestrates the scan pipeline and the rewards read models
// on top of the persistence and product lookup collaborators.
type RewardsService struct {
	db               store.ProfileStore
	products         ProductSource
	leaderboardLimit int

	// now is swapped out in tests.
	now func() time.Time
}

func NewRewardsService(db store.ProfileStore, products ProductSource, leaderboardLimit int) *RewardsService {
	return &RewardsService{
		db:               db,
		products:         products,
		leaderboardLimit: leaderboardLimit,
		now:              time.Now,
	}
}

// ScanProduct is the product half of a scan response.
type ScanProduct struct {
	Barcode        string             `json:"barcode"`
	Name           string             `json:"name"`
	Brand          string             `json:"brand"`
	CarbonEstimate estimator.Estimate `json:"carbonEstimate"`
	Packaging      packaging.Info     `json:"packaging"`
}

// StreakInfo is the streak state after a scan.
type StreakInfo struct {
	Count         int  `json:"count"`
	Best          int  `json:"best"`
	ProtectorUsed bool `json:"protectorUsed"`
}

// AchievementInfo is a display copy of a catalog achievement.
type AchievementInfo struct {
	Id          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
	Points      int    `json:"points"`
	Icon        string `json:"icon"`
}

// ScanRewards is the rewards half of a scan response.
type ScanRewards struct {
	PointsEarned    int                   `json:"pointsEarned"`
	PointsConfirmed bool                  `json:"pointsConfirmed"`
	Reasons         []string              `json:"reasons"`
	Points          rewards.PointsSummary `json:"points"`
	Level           int                   `json:"level"`
	LevelUp         bool                  `json:"levelUp"`
	NextLevelPoints int                   `json:"nextLevelPoints"`
	LevelProgress   float64               `json:"levelProgress"`
	Streak          StreakInfo            `json:"streak"`
	NewAchievements []AchievementInfo     `json:"newAchievements"`
}

// ScanResult is the full response to one processed scan.
type ScanResult struct {
	Product ScanProduct `json:"product"`
	Rewards ScanRewards `json:"rewards"`
}

// ProcessScan runs the whole scan pipeline: product lookup, carbon estimate,
// packaging inference, streak roll, point scoring, achievement checks and a
// single atomic persistence step. A version conflict with a concurrent writer
// recomputes against the fresh aggregate and retries.
func (s *RewardsService) ProcessScan(ctx context.Context, barcode, email string) (*ScanResult, error) {
	product, err := s.products.GetProduct(ctx, barcode)
	if err != nil {
		return nil, err
	}

	user, err := s.db.GetUserByEmail(ctx, email)
	if err != nil {
		return nil, err
	}

	estimate := estimator.CalculateCarbonFootprint(product.Name, product.Brand)
	pack := packaging.Infer(product.Categories)
	now := s.now()

	var (
		updated         *models.UserProfile
		points          rewards.PointsResult
		streak          rewards.StreakUpdate
		unlocked        []rewards.Achievement
		levelBefore     int
		pointsConfirmed bool
	)

	for attempt := 0; ; attempt++ {
		profile, err := s.db.GetProfile(ctx, user.Id)
		if err != nil {
			return nil, err
		}

		isFirstScan := profile.TotalScanned == 0
		streak = rewards.RollStreak(profile, now)
		points = rewards.CalculateScanPoints(estimate.CarbonFootprint, isFirstScan, streak.StreakCount, profile.TotalScanned)
		pointsConfirmed = points.IsConfirmed

		// Project the post-scan aggregate so achievement predicates and
		// the level table see the state this scan produces.
		candidate := *profile
		candidate.TotalScanned++
		candidate.TotalPointsEarned += points.Points
		candidate.StreakCount = streak.StreakCount
		candidate.BestStreakCount = streak.BestStreakCount
		candidate.MonthlyCarbon = profile.MonthlyCarbon.Add(estimate.CarbonFootprint)
		if estimate.CarbonFootprint.LessThan(decimal.NewFromInt(1)) {
			candidate.LowCarbonScans++
		}
		candidate.Level = rewards.CalculateLevel(candidate.TotalPointsEarned).Level

		unlocked = rewards.CheckAchievements(&candidate)
		newAchievements := make([]models.EarnedAchievement, 0, len(unlocked))
		for _, a := range unlocked {
			candidate.TotalPointsEarned += a.Points
			newAchievements = append(newAchievements, models.EarnedAchievement{
				UserId:        user.Id,
				AchievementId: a.Id,
				Name:          a.Name,
				Description:   a.Description,
				Points:        a.Points,
				EarnedAt:      now,
			})
		}

		levelBefore = profile.Level
		newLevel := rewards.CalculateLevel(candidate.TotalPointsEarned).Level

		updated, err = s.db.ApplyScan(ctx, store.ApplyScanParams{
			UserId:              user.Id,
			Barcode:             barcode,
			ProductName:         product.Name,
			Category:            estimate.Category,
			Confidence:          estimate.Confidence,
			CarbonEstimate:      estimate.CarbonFootprint,
			PointsEarned:        points.Points,
			PointsConfirmed:     points.IsConfirmed,
			Reasons:             points.Reasons,
			StreakCount:         streak.StreakCount,
			BestStreakCount:     streak.BestStreakCount,
			StreakProtectorUsed: streak.ProtectorUsed,
			NewLevel:            newLevel,
			NewAchievements:     newAchievements,
			ScannedAt:           now,
		})
		if err == nil {
			break
		}
		if !errors.Is(err, store.ErrConcurrentModification) || attempt >= maxApplyRetries {
			return nil, err
		}
		zap.L().Warn("Scan apply conflicted, retrying",
			zap.String("user_id", user.Id),
			zap.Int("attempt", attempt+1))
	}

	level := rewards.CalculateLevel(updated.TotalPointsEarned)

	achievementInfos := make([]AchievementInfo, 0, len(unlocked))
	for _, a := range unlocked {
		achievementInfos = append(achievementInfos, AchievementInfo{
			Id: a.Id, Name: a.Name, Description: a.Description,
			Points: a.Points, Icon: a.Icon,
		})
	}

	zap.L().Info("Scan processed",
		zap.String("user_id", user.Id),
		zap.String("barcode", barcode),
		zap.String("product", product.Name),
		zap.String("carbon_estimate", estimate.CarbonFootprint.String()),
		zap.Int("points_earned", points.Points),
		zap.Bool("points_confirmed", pointsConfirmed))

	return &ScanResult{
		Product: ScanProduct{
			Barcode:        barcode,
			Name:           product.Name,
			Brand:          product.Brand,
			CarbonEstimate: estimate,
			Packaging:      pack,
		},
		Rewards: ScanRewards{
			PointsEarned:    points.Points,
			PointsConfirmed: pointsConfirmed,
			Reasons:         points.Reasons,
			Points:          rewards.SummarizePoints(updated, now),
			Level:           updated.Level,
			LevelUp:         updated.Level > levelBefore,
			NextLevelPoints: level.NextLevelPoints,
			LevelProgress:   level.ProgressToNext,
			Streak: StreakInfo{
				Count:         updated.StreakCount,
				Best:          updated.BestStreakCount,
				ProtectorUsed: streak.ProtectorUsed,
			},
			NewAchievements: achievementInfos,
		},
	}, nil
}

// RewardsOverview is the full rewards dashboard for one user.
type RewardsOverview struct {
	UserId                string                     `json:"userId"`
	Name                  string                     `json:"name"`
	Email                 string                     `json:"email"`
	Points                rewards.PointsSummary      `json:"points"`
	TotalPointsEarned     int                        `json:"totalPointsEarned"`
	Level                 int                        `json:"level"`
	LevelTier             string                     `json:"levelTier"`
	NextLevelPoints       int                        `json:"nextLevelPoints"`
	LevelProgress         float64                    `json:"levelProgress"`
	Streak                StreakInfo                 `json:"streak"`
	StreakProtectors      int                        `json:"streakProtectors"`
	TotalScanned          int                        `json:"totalScanned"`
	MonthlyCarbon         decimal.Decimal            `json:"monthlyCarbon"`
	SustainabilityTier    rewards.SustainabilityTier `json:"sustainabilityTier"`
	Achievements          []models.EarnedAchievement `json:"achievements"`
	AvailableAchievements []AchievementInfo          `json:"availableAchievements"`
	ShopItems             []rewards.ShopItem         `json:"shopItems"`
	PurchasedItems        []models.PurchasedItem     `json:"purchasedItems"`
	ActiveBadges          []string                   `json:"activeBadges"`
	RecentTransactions    []models.RewardTransaction `json:"recentTransactions"`
}

// GetRewards sweeps matured confirmations and returns the user's rewards
// dashboard. The sweep-on-read keeps balances fresh even if the background
// sweeper is behind.
func (s *RewardsService) GetRewards(ctx context.Context, email string) (*RewardsOverview, error) {
	user, err := s.db.GetUserByEmail(ctx, email)
	if err != nil {
		return nil, err
	}

	now := s.now()
	if _, err := s.db.SweepConfirmations(ctx, user.Id, now); err != nil {
		return nil, fmt.Errorf("confirmation sweep failed: %w", err)
	}

	profile, err := s.db.GetProfile(ctx, user.Id)
	if err != nil {
		return nil, err
	}

	level := rewards.CalculateLevel(profile.TotalPointsEarned)

	available := rewards.AvailableAchievements(profile)
	availableInfos := make([]AchievementInfo, 0, len(available))
	for _, a := range available {
		availableInfos = append(availableInfos, AchievementInfo{
			Id: a.Id, Name: a.Name, Description: a.Description,
			Points: a.Points, Icon: a.Icon,
		})
	}

	return &RewardsOverview{
		UserId:             user.Id,
		Name:               user.Name,
		Email:              user.Email,
		Points:             rewards.SummarizePoints(profile, now),
		TotalPointsEarned:  profile.TotalPointsEarned,
		Level:              profile.Level,
		LevelTier:          rewards.LevelTier(profile.Level),
		NextLevelPoints:    level.NextLevelPoints,
		LevelProgress:      level.ProgressToNext,
		Streak:             StreakInfo{Count: profile.StreakCount, Best: profile.BestStreakCount},
		StreakProtectors:   profile.StreakProtectors,
		TotalScanned:       profile.TotalScanned,
		MonthlyCarbon:      profile.MonthlyCarbon,
		SustainabilityTier: rewards.GetSustainabilityTier(profile.MonthlyCarbon, profile.TotalScanned),
		Achievements:       profile.Achievements,

		AvailableAchievements: availableInfos,
		ShopItems:             rewards.AvailableShopItems(profile),
		PurchasedItems:        profile.PurchasedItems,
		ActiveBadges:          profile.ActiveBadges,
		RecentTransactions:    recentTransactions(profile.RewardTransactions, recentTransactionLimit),
	}, nil
}

// recentTransactionLimit caps the dashboard's activity feed.
const recentTransactionLimit = 20

// recentTransactions returns up to limit ledger entries, newest first. The
// ledger is loaded oldest first, so the display copy walks it backwards.
func recentTransactions(ledger []models.RewardTransaction, limit int) []models.RewardTransaction {
	if limit > len(ledger) {
		limit = len(ledger)
	}
	recent := make([]models.RewardTransaction, 0, limit)
	for i := len(ledger) - 1; i >= 0 && len(recent) < limit; i-- {
		recent = append(recent, ledger[i])
	}
	return recent
}

// RedeemResult reports a completed purchase and the balances it left behind.
type RedeemResult struct {
	Item   models.PurchasedItem  `json:"item"`
	Points rewards.PointsSummary `json:"points"`
}

// Redeem validates the purchase against the catalog and the live aggregate,
// then spends the confirmed points atomically.
func (s *RewardsService) Redeem(ctx context.Context, email, itemId string) (*RedeemResult, error) {
	user, err := s.db.GetUserByEmail(ctx, email)
	if err != nil {
		return nil, err
	}

	now := s.now()
	if _, err := s.db.SweepConfirmations(ctx, user.Id, now); err != nil {
		return nil, fmt.Errorf("confirmation sweep failed: %w", err)
	}

	profile, err := s.db.GetProfile(ctx, user.Id)
	if err != nil {
		return nil, err
	}

	item, err := rewards.ValidatePurchase(profile, itemId)
	if err != nil {
		return nil, err
	}

	purchased, err := s.db.Purchase(ctx, store.PurchaseParams{
		UserId:   user.Id,
		ItemId:   item.Id,
		Name:     item.Name,
		Cost:     item.Cost,
		Category: item.Category,
	})
	if err != nil {
		return nil, err
	}

	updated, err := s.db.GetProfile(ctx, user.Id)
	if err != nil {
		return nil, err
	}

	zap.L().Info("Shop item redeemed",
		zap.String("user_id", user.Id),
		zap.String("item_id", item.Id),
		zap.Int("cost", item.Cost))

	return &RedeemResult{
		Item:   *purchased,
		Points: rewards.SummarizePoints(updated, now),
	}, nil
}

// MonthlyCheckResult reports the outcome of a monthly bonus evaluation.
type MonthlyCheckResult struct {
	Awarded bool                  `json:"awarded"`
	Points  int                   `json:"points"`
	Reason  string                `json:"reason,omitempty"`
	Balance rewards.PointsSummary `json:"balance"`
}

// MonthlyCheck evaluates and, at most once per calendar month, awards the
// monthly sustainability bonus.
func (s *RewardsService) MonthlyCheck(ctx context.Context, email string) (*MonthlyCheckResult, error) {
	user, err := s.db.GetUserByEmail(ctx, email)
	if err != nil {
		return nil, err
	}

	now := s.now()
	award, err := s.db.AwardMonthlyBonus(ctx, user.Id, now)
	if err != nil {
		return nil, err
	}

	profile, err := s.db.GetProfile(ctx, user.Id)
	if err != nil {
		return nil, err
	}

	return &MonthlyCheckResult{
		Awarded: award.Awarded,
		Points:  award.Points,
		Reason:  award.Reason,
		Balance: rewards.SummarizePoints(profile, now),
	}, nil
}

// MonthlyStatus is the read-only view of the current month's bonus standing.
type MonthlyStatus struct {
	Eligible           bool                       `json:"eligible"`
	QualifyingBonus    *rewards.MonthlyBonus      `json:"qualifyingBonus"`
	MonthlyCarbon      decimal.Decimal            `json:"monthlyCarbon"`
	TotalScanned       int                        `json:"totalScanned"`
	SustainabilityTier rewards.SustainabilityTier `json:"sustainabilityTier"`
}

// GetMonthlyStatus reports what the user would receive from a monthly check
// right now, without awarding anything.
func (s *RewardsService) GetMonthlyStatus(ctx context.Context, email string) (*MonthlyStatus, error) {
	user, err := s.db.GetUserByEmail(ctx, email)
	if err != nil {
		return nil, err
	}

	profile, err := s.db.GetProfile(ctx, user.Id)
	if err != nil {
		return nil, err
	}

	return &MonthlyStatus{
		Eligible:           rewards.MonthlyBonusEligible(profile.LastMonthlyBonusCheck, s.now()),
		QualifyingBonus:    rewards.CalculateMonthlyBonus(profile),
		MonthlyCarbon:      profile.MonthlyCarbon,
		TotalScanned:       profile.TotalScanned,
		SustainabilityTier: rewards.GetSustainabilityTier(profile.MonthlyCarbon, profile.TotalScanned),
	}, nil
}

// LeaderboardEntry is one ranked row in the public leaderboard.
type LeaderboardEntry struct {
	Rank              int             `json:"rank"`
	Name              string          `json:"name"`
	TotalPointsEarned int             `json:"totalPointsEarned"`
	Level             int             `json:"level"`
	LevelTier         string          `json:"levelTier"`
	StreakCount       int             `json:"streakCount"`
	TotalScanned      int             `json:"totalScanned"`
	MonthlyCarbon     decimal.Decimal `json:"monthlyCarbon"`
	AchievementCount  int             `json:"achievementCount"`
	ActiveBadges      []string        `json:"activeBadges"`
}

// Leaderboard returns users ranked by lifetime points earned.
func (s *RewardsService) Leaderboard(ctx context.Context) ([]LeaderboardEntry, error) {
	rows, err := s.db.Leaderboard(ctx, s.leaderboardLimit)
	if err != nil {
		return nil, err
	}

	entries := make([]LeaderboardEntry, 0, len(rows))
	for i, row := range rows {
		entries = append(entries, LeaderboardEntry{
			Rank:              i + 1,
			Name:              row.Name,
			TotalPointsEarned: row.TotalPointsEarned,
			Level:             row.Level,
			LevelTier:         rewards.LevelTier(row.Level),
			StreakCount:       row.StreakCount,
			TotalScanned:      row.TotalScanned,
			MonthlyCarbon:     row.MonthlyCarbon,
			AchievementCount:  row.AchievementCount,
			ActiveBadges:      row.ActiveBadges,
		})
	}
	return entries, nil
}
