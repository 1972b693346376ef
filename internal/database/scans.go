package database

import (
	"context"
	"fmt"
	"strings"

	"ecoscan-rewards-go/internal/models"
	"ecoscan-rewards-go/internal/rewards"
	"ecoscan-rewards-go/internal/store"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// ApplyScan persists one scan event's full effect on the user aggregate in a
// single database transaction: scan history row, earned ledger entry, point
// bucket increments, streak and level updates, and any achievement grants
// (credited as immediately confirmed). The profile's version column guards
// against concurrent writers; a lost race surfaces ErrConcurrentModification
// and nothing is applied.
func (s *Service) ApplyScan(ctx context.Context, params store.ApplyScanParams) (*models.UserProfile, error) {
	zap.L().Info("Applying scan",
		zap.String("user_id", params.UserId),
		zap.String("product", params.ProductName),
		zap.String("carbon_estimate", params.CarbonEstimate.String()),
		zap.Int("points", params.PointsEarned),
		zap.Bool("confirmed", params.PointsConfirmed))

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	profile, err := loadProfileRow(ctx, tx, params.UserId)
	if err != nil {
		return nil, err
	}

	// Scan history row.
	scanId := uuid.New().String()
	_, err = tx.ExecContext(ctx, queryInsertScan,
		scanId, params.UserId, params.Barcode, params.ProductName,
		params.Category, params.Confidence, params.CarbonEstimate.String(), params.ScannedAt)
	if err != nil {
		return nil, fmt.Errorf("failed to insert scan: %w", err)
	}

	// Earned ledger entry for the scan points. The reason-based policy can
	// only widen confirmation, never narrow it.
	reason := "scan"
	if profile.TotalScanned == 0 {
		reason = "first_scan"
	}
	confirmed := params.PointsConfirmed || rewards.ShouldConfirmImmediately(reason)
	pointsType := models.PointsUnconfirmed
	var confirmedAt any
	if confirmed {
		pointsType = models.PointsConfirmed
		confirmedAt = params.ScannedAt
	}
	_, err = tx.ExecContext(ctx, queryInsertTransaction,
		uuid.New().String(), params.UserId, models.TransactionEarned,
		params.PointsEarned, pointsType, reason,
		strings.Join(params.Reasons, "; "), params.ScannedAt, confirmedAt)
	if err != nil {
		return nil, fmt.Errorf("failed to insert transaction: %w", err)
	}

	confirmedDelta := 0
	unconfirmedDelta := 0
	if confirmed {
		confirmedDelta = params.PointsEarned
	} else {
		unconfirmedDelta = params.PointsEarned
	}
	totalEarnedDelta := params.PointsEarned

	// Achievement grants. The unique index keeps each id at most once; a
	// grant that lost an earlier race is skipped without crediting points.
	achievementPointsType := models.PointsUnconfirmed
	if rewards.ShouldConfirmImmediately("achievement") {
		achievementPointsType = models.PointsConfirmed
	}
	for _, achievement := range params.NewAchievements {
		result, err := tx.ExecContext(ctx, queryInsertAchievement,
			params.UserId, achievement.AchievementId, achievement.Name,
			achievement.Description, achievement.Points, achievement.EarnedAt)
		if err != nil {
			return nil, fmt.Errorf("failed to insert achievement: %w", err)
		}
		inserted, err := result.RowsAffected()
		if err != nil {
			return nil, fmt.Errorf("failed to check achievement insert: %w", err)
		}
		if inserted == 0 {
			zap.L().Warn("Achievement already earned, skipping",
				zap.String("user_id", params.UserId),
				zap.String("achievement_id", achievement.AchievementId))
			continue
		}

		var achievementConfirmedAt any
		if achievementPointsType == models.PointsConfirmed {
			achievementConfirmedAt = achievement.EarnedAt
		}
		_, err = tx.ExecContext(ctx, queryInsertTransaction,
			uuid.New().String(), params.UserId, models.TransactionEarned,
			achievement.Points, achievementPointsType, "achievement",
			fmt.Sprintf("Achievement unlocked: %s", achievement.Name),
			achievement.EarnedAt, achievementConfirmedAt)
		if err != nil {
			return nil, fmt.Errorf("failed to insert achievement transaction: %w", err)
		}

		if achievementPointsType == models.PointsConfirmed {
			confirmedDelta += achievement.Points
		} else {
			unconfirmedDelta += achievement.Points
		}
		totalEarnedDelta += achievement.Points
	}

	streakProtectors := profile.StreakProtectors
	if params.StreakProtectorUsed {
		streakProtectors--
	}

	newMonthlyCarbon := profile.MonthlyCarbon.Add(params.CarbonEstimate)

	result, err := tx.ExecContext(ctx, queryUpdateProfileScan,
		profile.ConfirmedPoints+confirmedDelta,
		profile.UnconfirmedPoints+unconfirmedDelta,
		profile.TotalPointsEarned+totalEarnedDelta,
		params.NewLevel,
		params.StreakCount,
		params.BestStreakCount,
		profile.TotalScanned+1,
		newMonthlyCarbon.String(),
		params.ScannedAt,
		streakProtectors,
		params.UserId, profile.Version)
	if err != nil {
		return nil, fmt.Errorf("failed to update profile: %w", err)
	}
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return nil, fmt.Errorf("failed to check rows affected: %w", err)
	}
	if rowsAffected == 0 {
		return nil, fmt.Errorf("profile update failed - %w", store.ErrConcurrentModification)
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit transaction: %w", err)
	}

	zap.L().Info("Scan applied successfully",
		zap.String("user_id", params.UserId),
		zap.Int("points_earned", params.PointsEarned),
		zap.Int("achievements_unlocked", len(params.NewAchievements)),
		zap.Int("streak", params.StreakCount))

	return s.GetProfile(ctx, params.UserId)
}
