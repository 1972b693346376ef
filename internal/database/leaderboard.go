package database

import (
	"context"
	"fmt"

	"ecoscan-rewards-go/internal/store"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// Leaderboard returns users ranked by lifetime points, then level, then scan
// count. Read-only; this is the only cross-user view in the system.
func (s *Service) Leaderboard(ctx context.Context, limit int) ([]store.LeaderboardRow, error) {
	zap.L().Debug("Querying leaderboard", zap.Int("limit", limit))

	rows, err := s.db.QueryContext(ctx, queryLeaderboard, limit)
	if err != nil {
		zap.L().Error("Failed to query leaderboard", zap.Error(err))
		return nil, fmt.Errorf("unable to query leaderboard: %w", err)
	}
	defer closeRows(rows)

	var entries []store.LeaderboardRow
	for rows.Next() {
		var (
			entry            store.LeaderboardRow
			monthlyCarbonStr string
		)
		err := rows.Scan(&entry.UserId, &entry.Name, &entry.Email,
			&entry.TotalPointsEarned, &entry.ConfirmedPoints, &entry.UnconfirmedPoints,
			&entry.Level, &entry.TotalScanned, &entry.StreakCount,
			&monthlyCarbonStr, &entry.AchievementCount)
		if err != nil {
			return nil, fmt.Errorf("unable to scan leaderboard row: %w", err)
		}
		entry.MonthlyCarbon, err = decimal.NewFromString(monthlyCarbonStr)
		if err != nil {
			return nil, fmt.Errorf("unable to parse monthly carbon %q: %w", monthlyCarbonStr, err)
		}
		entries = append(entries, entry)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating leaderboard rows: %w", err)
	}

	for i := range entries {
		badges, err := loadBadges(ctx, s.db, entries[i].UserId)
		if err != nil {
			return nil, err
		}
		entries[i].ActiveBadges = badges
	}

	zap.L().Debug("Retrieved leaderboard", zap.Int("count", len(entries)))
	return entries, nil
}
