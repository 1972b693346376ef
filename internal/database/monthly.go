package database

import (
	"context"
	"fmt"
	"time"

	"ecoscan-rewards-go/internal/models"
	"ecoscan-rewards-go/internal/rewards"
	"ecoscan-rewards-go/internal/store"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// AwardMonthlyBonus checks and awards the once-per-calendar-month bonus.
// Bonus points are always confirmed immediately. The idempotency marker
// (last_monthly_bonus_check) is only advanced when a bonus was actually
// awarded, matching the award logic's most-generous-first evaluation.
func (s *Service) AwardMonthlyBonus(ctx context.Context, userId string, now time.Time) (*store.MonthlyAward, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	profile, err := loadProfileRow(ctx, tx, userId)
	if err != nil {
		return nil, err
	}

	if !rewards.MonthlyBonusEligible(profile.LastMonthlyBonusCheck, now) {
		return &store.MonthlyAward{}, tx.Commit()
	}

	bonus := rewards.CalculateMonthlyBonus(profile)
	if bonus == nil {
		return &store.MonthlyAward{}, tx.Commit()
	}

	_, err = tx.ExecContext(ctx, queryInsertTransaction,
		uuid.New().String(), userId, models.TransactionEarned,
		bonus.Points, models.PointsConfirmed, "monthly_bonus",
		bonus.Reason, now, now)
	if err != nil {
		return nil, fmt.Errorf("failed to insert bonus transaction: %w", err)
	}

	result, err := tx.ExecContext(ctx, queryUpdateProfileMonthlyBonus,
		profile.ConfirmedPoints+bonus.Points,
		profile.TotalPointsEarned+bonus.Points,
		now,
		profile.MonthlyBonusesEarned+1,
		userId, profile.Version)
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

	zap.L().Info("Monthly bonus awarded",
		zap.String("user_id", userId),
		zap.Int("points", bonus.Points),
		zap.String("reason", bonus.Reason))

	return &store.MonthlyAward{Awarded: true, Points: bonus.Points, Reason: bonus.Reason}, nil
}
