package database

import (
	"context"
	"fmt"
	"time"

	"ecoscan-rewards-go/internal/models"
	"ecoscan-rewards-go/internal/rewards"
	"ecoscan-rewards-go/internal/store"

	"go.uber.org/zap"
)

// SweepConfirmations confirms every matured unconfirmed earned transaction
// for the user and moves the confirmed amount from the unconfirmed bucket to
// the confirmed bucket, all in one transaction. Repeated invocation is a
// no-op once everything eligible has been flipped.
func (s *Service) SweepConfirmations(ctx context.Context, userId string, now time.Time) (*store.SweepResult, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	profile, err := loadProfileRow(ctx, tx, userId)
	if err != nil {
		return nil, err
	}

	transactions, err := loadTransactions(ctx, tx, userId)
	if err != nil {
		return nil, err
	}

	sweep := rewards.ConfirmPendingPoints(transactions, now)
	if sweep.ConfirmedPoints == 0 {
		return &store.SweepResult{}, tx.Commit()
	}

	for _, confirmed := range sweep.Confirmed {
		result, err := tx.ExecContext(ctx, queryConfirmTransaction,
			models.PointsConfirmed, now, confirmed.Id, models.PointsUnconfirmed)
		if err != nil {
			return nil, fmt.Errorf("failed to confirm transaction %s: %w", confirmed.Id, err)
		}
		flipped, err := result.RowsAffected()
		if err != nil {
			return nil, fmt.Errorf("failed to check confirmation update: %w", err)
		}
		if flipped == 0 {
			// Another sweep got here first.
			return nil, fmt.Errorf("confirmation sweep raced - %w", store.ErrConcurrentModification)
		}
	}

	newUnconfirmed := profile.UnconfirmedPoints - sweep.ConfirmedPoints
	if newUnconfirmed < 0 {
		newUnconfirmed = 0
	}

	result, err := tx.ExecContext(ctx, queryUpdateProfileSweep,
		profile.ConfirmedPoints+sweep.ConfirmedPoints, newUnconfirmed,
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

	zap.L().Info("Confirmation sweep applied",
		zap.String("user_id", userId),
		zap.Int("points_confirmed", sweep.ConfirmedPoints),
		zap.Int("transactions_confirmed", len(sweep.Confirmed)))

	return &store.SweepResult{
		ConfirmedPoints:       sweep.ConfirmedPoints,
		TransactionsConfirmed: len(sweep.Confirmed),
	}, nil
}
