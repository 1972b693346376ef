package database

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"ecoscan-rewards-go/internal/models"
	"ecoscan-rewards-go/internal/store"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// querier lets profile loaders run against the pool or an open transaction.
type querier interface {
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

// GetProfile loads the full user aggregate: counters, badges, achievements,
// purchases and the complete transaction ledger.
func (s *Service) GetProfile(ctx context.Context, userId string) (*models.UserProfile, error) {
	zap.L().Debug("Loading profile", zap.String("user_id", userId))

	profile, err := loadProfileRow(ctx, s.db, userId)
	if err != nil {
		return nil, err
	}

	if profile.ActiveBadges, err = loadBadges(ctx, s.db, userId); err != nil {
		return nil, err
	}
	if profile.Achievements, err = loadAchievements(ctx, s.db, userId); err != nil {
		return nil, err
	}
	if profile.PurchasedItems, err = loadPurchasedItems(ctx, s.db, userId); err != nil {
		return nil, err
	}
	if profile.RewardTransactions, err = loadTransactions(ctx, s.db, userId); err != nil {
		return nil, err
	}

	if err := s.db.QueryRowContext(ctx, queryCountLowCarbonScans, userId).Scan(&profile.LowCarbonScans); err != nil {
		return nil, fmt.Errorf("unable to count low carbon scans: %w", err)
	}

	return profile, nil
}

func loadProfileRow(ctx context.Context, q querier, userId string) (*models.UserProfile, error) {
	var (
		profile          models.UserProfile
		monthlyCarbonStr string
		lastScan         sql.NullTime
		lastBonusCheck   sql.NullTime
	)

	err := q.QueryRowContext(ctx, queryGetProfile, userId).Scan(
		&profile.UserId, &profile.ConfirmedPoints, &profile.UnconfirmedPoints,
		&profile.TotalPointsEarned, &profile.Level, &profile.StreakCount,
		&profile.BestStreakCount, &profile.TotalScanned, &monthlyCarbonStr,
		&lastScan, &lastBonusCheck, &profile.MonthlyBonusesEarned,
		&profile.StreakProtectors, &profile.DoublePointsDays,
		&profile.HasAdvancedAnalytics, &profile.CustomAvatar,
		&profile.Version, &profile.UpdatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("%w: no profile for %s", store.ErrUserNotFound, userId)
		}
		return nil, fmt.Errorf("unable to load profile: %w", err)
	}

	profile.MonthlyCarbon, err = decimal.NewFromString(monthlyCarbonStr)
	if err != nil {
		return nil, fmt.Errorf("unable to parse monthly carbon %q: %w", monthlyCarbonStr, err)
	}
	if lastScan.Valid {
		t := lastScan.Time
		profile.LastScanDate = &t
	}
	if lastBonusCheck.Valid {
		t := lastBonusCheck.Time
		profile.LastMonthlyBonusCheck = &t
	}

	return &profile, nil
}

func loadBadges(ctx context.Context, q querier, userId string) ([]string, error) {
	rows, err := q.QueryContext(ctx, queryGetBadges, userId)
	if err != nil {
		return nil, fmt.Errorf("unable to query badges: %w", err)
	}
	defer closeRows(rows)

	var badges []string
	for rows.Next() {
		var badgeId string
		if err := rows.Scan(&badgeId); err != nil {
			return nil, fmt.Errorf("unable to scan badge row: %w", err)
		}
		badges = append(badges, badgeId)
	}
	return badges, rows.Err()
}

func loadAchievements(ctx context.Context, q querier, userId string) ([]models.EarnedAchievement, error) {
	rows, err := q.QueryContext(ctx, queryGetAchievements, userId)
	if err != nil {
		return nil, fmt.Errorf("unable to query achievements: %w", err)
	}
	defer closeRows(rows)

	var achievements []models.EarnedAchievement
	for rows.Next() {
		var a models.EarnedAchievement
		if err := rows.Scan(&a.UserId, &a.AchievementId, &a.Name, &a.Description, &a.Points, &a.EarnedAt); err != nil {
			return nil, fmt.Errorf("unable to scan achievement row: %w", err)
		}
		achievements = append(achievements, a)
	}
	return achievements, rows.Err()
}

func loadPurchasedItems(ctx context.Context, q querier, userId string) ([]models.PurchasedItem, error) {
	rows, err := q.QueryContext(ctx, queryGetPurchasedItems, userId)
	if err != nil {
		return nil, fmt.Errorf("unable to query purchased items: %w", err)
	}
	defer closeRows(rows)

	var items []models.PurchasedItem
	for rows.Next() {
		var item models.PurchasedItem
		if err := rows.Scan(&item.UserId, &item.ItemId, &item.Name, &item.Cost, &item.Category, &item.PurchasedAt, &item.Active); err != nil {
			return nil, fmt.Errorf("unable to scan purchased item row: %w", err)
		}
		items = append(items, item)
	}
	return items, rows.Err()
}

func loadTransactions(ctx context.Context, q querier, userId string) ([]models.RewardTransaction, error) {
	rows, err := q.QueryContext(ctx, queryGetTransactions, userId)
	if err != nil {
		return nil, fmt.Errorf("unable to query transactions: %w", err)
	}
	defer closeRows(rows)

	var transactions []models.RewardTransaction
	for rows.Next() {
		var (
			tx          models.RewardTransaction
			pointsType  sql.NullString
			confirmedAt sql.NullTime
		)
		if err := rows.Scan(&tx.Id, &tx.UserId, &tx.Type, &tx.Points, &pointsType, &tx.Reason, &tx.Description, &tx.Date, &confirmedAt); err != nil {
			return nil, fmt.Errorf("unable to scan transaction row: %w", err)
		}
		if pointsType.Valid {
			tx.PointsType = pointsType.String
		}
		if confirmedAt.Valid {
			t := confirmedAt.Time
			tx.ConfirmedAt = &t
		}
		transactions = append(transactions, tx)
	}
	return transactions, rows.Err()
}

func closeRows(rows *sql.Rows) {
	if err := rows.Close(); err != nil {
		zap.L().Warn("Failed to close rows", zap.Error(err))
	}
}
