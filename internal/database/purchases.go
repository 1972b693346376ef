package database

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"ecoscan-rewards-go/internal/models"
	"ecoscan-rewards-go/internal/store"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Purchase redeems a shop item against the user's confirmed points. The
// already-purchased and balance checks run inside the same transaction that
// applies the purchase, so a failed purchase leaves the aggregate untouched
// and a raced duplicate cannot slip through. Unconfirmed points are never
// spendable.
func (s *Service) Purchase(ctx context.Context, params store.PurchaseParams) (*models.PurchasedItem, error) {
	zap.L().Info("Processing purchase",
		zap.String("user_id", params.UserId),
		zap.String("item_id", params.ItemId),
		zap.Int("cost", params.Cost))

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	profile, err := loadProfileRow(ctx, tx, params.UserId)
	if err != nil {
		return nil, err
	}

	var exists int
	err = tx.QueryRowContext(ctx, queryHasPurchasedItem, params.UserId, params.ItemId).Scan(&exists)
	if err == nil {
		return nil, fmt.Errorf("%w: %s", store.ErrAlreadyPurchased, params.ItemId)
	}
	if !errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("failed to check purchased items: %w", err)
	}

	if profile.ConfirmedPoints < params.Cost {
		return nil, &store.InsufficientPointsError{
			Required:    params.Cost,
			Confirmed:   profile.ConfirmedPoints,
			Unconfirmed: profile.UnconfirmedPoints,
		}
	}

	now := time.Now().UTC()
	item := models.PurchasedItem{
		UserId:      params.UserId,
		ItemId:      params.ItemId,
		Name:        params.Name,
		Cost:        params.Cost,
		Category:    params.Category,
		PurchasedAt: now,
		Active:      true,
	}

	result, err := tx.ExecContext(ctx, queryInsertPurchasedItem,
		item.UserId, item.ItemId, item.Name, item.Cost, item.Category, item.PurchasedAt)
	if err != nil {
		return nil, fmt.Errorf("failed to insert purchased item: %w", err)
	}
	inserted, err := result.RowsAffected()
	if err != nil {
		return nil, fmt.Errorf("failed to check purchase insert: %w", err)
	}
	if inserted == 0 {
		return nil, fmt.Errorf("%w: %s", store.ErrAlreadyPurchased, params.ItemId)
	}

	// Redemption ledger entry. Redeemed entries carry no confirmation state.
	_, err = tx.ExecContext(ctx, queryInsertTransaction,
		uuid.New().String(), params.UserId, models.TransactionRedeemed,
		params.Cost, nil, "item_purchase",
		fmt.Sprintf("Purchased %s", params.Name), now, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to insert redemption transaction: %w", err)
	}

	// Category- and item-specific side effects.
	streakProtectors := profile.StreakProtectors
	doublePointsDays := profile.DoublePointsDays
	hasAdvancedAnalytics := profile.HasAdvancedAnalytics
	switch params.ItemId {
	case "eco_hero_badge", "carbon_warrior_badge":
		if _, err := tx.ExecContext(ctx, queryInsertBadge, params.UserId, params.ItemId, now); err != nil {
			return nil, fmt.Errorf("failed to insert badge: %w", err)
		}
	case "advanced_analytics":
		hasAdvancedAnalytics = true
	case "streak_protector":
		streakProtectors++
	case "double_points":
		doublePointsDays++
	case "custom_avatar":
		// Avatar assignment is handled by a separate endpoint.
	}

	updateResult, err := tx.ExecContext(ctx, queryUpdateProfilePurchase,
		profile.ConfirmedPoints-params.Cost,
		streakProtectors, doublePointsDays, hasAdvancedAnalytics,
		params.UserId, profile.Version)
	if err != nil {
		return nil, fmt.Errorf("failed to update profile: %w", err)
	}
	rowsAffected, err := updateResult.RowsAffected()
	if err != nil {
		return nil, fmt.Errorf("failed to check rows affected: %w", err)
	}
	if rowsAffected == 0 {
		return nil, fmt.Errorf("profile update failed - %w", store.ErrConcurrentModification)
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit transaction: %w", err)
	}

	zap.L().Info("Purchase processed successfully",
		zap.String("user_id", params.UserId),
		zap.String("item_id", params.ItemId),
		zap.Int("cost", params.Cost),
		zap.Int("remaining_confirmed", profile.ConfirmedPoints-params.Cost))

	return &item, nil
}
