package database

import (
	"context"
	"database/sql"
	"errors"
	"testing"
	"time"

	"ecoscan-rewards-go/internal/models"
	"ecoscan-rewards-go/internal/store"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

func setupTestDB(t *testing.T) (*Service, func()) {
	db, err := sql.Open("sqlite3", ":memory:")
	if err != nil {
		t.Fatalf("Failed to open in-memory database: %v", err)
	}
	// A single connection keeps every query on the same in-memory database.
	db.SetMaxOpenConns(1)

	service := &Service{db: db}
	if err := service.initSchema(false); err != nil {
		t.Fatalf("Failed to create schema: %v", err)
	}

	if _, err := db.Exec(queryInsertUser, "user1", "Test User", "test@example.com"); err != nil {
		t.Fatalf("Failed to insert test user: %v", err)
	}
	if _, err := db.Exec(queryInsertProfile, "user1"); err != nil {
		t.Fatalf("Failed to insert test profile: %v", err)
	}

	cleanup := func() {
		db.Close()
	}

	return service, cleanup
}

func seedProfile(t *testing.T, service *Service, confirmed, unconfirmed, totalScanned int, monthlyCarbon string) {
	_, err := service.db.Exec(`
		UPDATE profiles
		SET confirmed_points = ?, unconfirmed_points = ?,
		    total_points_earned = ?, total_scanned = ?, monthly_carbon = ?
		WHERE user_id = ?`,
		confirmed, unconfirmed, confirmed+unconfirmed, totalScanned, monthlyCarbon, "user1")
	if err != nil {
		t.Fatalf("Failed to seed profile: %v", err)
	}
}

func TestGetUserByEmail_NotFound(t *testing.T) {
	service, cleanup := setupTestDB(t)
	defer cleanup()

	_, err := service.GetUserByEmail(context.Background(), "nobody@example.com")
	if !errors.Is(err, store.ErrUserNotFound) {
		t.Errorf("Expected ErrUserNotFound, got %v", err)
	}
}

func TestApplyScan_FirstScanConfirmed(t *testing.T) {
	service, cleanup := setupTestDB(t)
	defer cleanup()

	ctx := context.Background()
	now := time.Now().UTC()

	profile, err := service.ApplyScan(ctx, store.ApplyScanParams{
		UserId:          "user1",
		Barcode:         "1234567890",
		ProductName:     "Organic Apples",
		Category:        "Fruits & Vegetables",
		Confidence:      "high",
		CarbonEstimate:  decimal.NewFromFloat(0.42),
		PointsEarned:    75,
		PointsConfirmed: true,
		Reasons:         []string{"First scan bonus: +50 points", "Very low carbon product (<0.5kg): +25 points"},
		StreakCount:     1,
		BestStreakCount: 1,
		NewLevel:        2,
		NewAchievements: []models.EarnedAchievement{
			{UserId: "user1", AchievementId: "first_scan", Name: "First Steps", Description: "Scan your first product", Points: 50, EarnedAt: now},
		},
		ScannedAt: now,
	})
	if err != nil {
		t.Fatalf("ApplyScan failed: %v", err)
	}

	// Scan points plus achievement points, all confirmed.
	if profile.ConfirmedPoints != 125 {
		t.Errorf("Expected 125 confirmed points, got %d", profile.ConfirmedPoints)
	}
	if profile.UnconfirmedPoints != 0 {
		t.Errorf("Expected 0 unconfirmed points, got %d", profile.UnconfirmedPoints)
	}
	if profile.TotalPointsEarned != 125 {
		t.Errorf("Expected 125 total points earned, got %d", profile.TotalPointsEarned)
	}
	if profile.TotalScanned != 1 {
		t.Errorf("Expected 1 scan, got %d", profile.TotalScanned)
	}
	if profile.Level != 2 {
		t.Errorf("Expected level 2, got %d", profile.Level)
	}
	if len(profile.Achievements) != 1 || profile.Achievements[0].AchievementId != "first_scan" {
		t.Errorf("Expected first_scan achievement, got %+v", profile.Achievements)
	}
	if len(profile.RewardTransactions) != 2 {
		t.Errorf("Expected scan + achievement transactions, got %d", len(profile.RewardTransactions))
	}
	if profile.LowCarbonScans != 1 {
		t.Errorf("Expected 1 low-carbon scan, got %d", profile.LowCarbonScans)
	}
	if !profile.MonthlyCarbon.Equal(decimal.NewFromFloat(0.42)) {
		t.Errorf("Expected monthly carbon 0.42, got %s", profile.MonthlyCarbon)
	}
}

func TestApplyScan_UnconfirmedBucket(t *testing.T) {
	service, cleanup := setupTestDB(t)
	defer cleanup()

	ctx := context.Background()
	seedProfile(t, service, 75, 0, 1, "0.42")

	profile, err := service.ApplyScan(ctx, store.ApplyScanParams{
		UserId:          "user1",
		Barcode:         "555",
		ProductName:     "Frozen Pizza",
		Category:        "Unknown",
		Confidence:      "low",
		CarbonEstimate:  decimal.NewFromFloat(2.5),
		PointsEarned:    10,
		PointsConfirmed: false,
		Reasons:         []string{"Daily scan: +10 points"},
		StreakCount:     1,
		BestStreakCount: 1,
		NewLevel:        1,
		ScannedAt:       time.Now().UTC(),
	})
	if err != nil {
		t.Fatalf("ApplyScan failed: %v", err)
	}

	if profile.ConfirmedPoints != 75 {
		t.Errorf("Expected confirmed bucket untouched at 75, got %d", profile.ConfirmedPoints)
	}
	if profile.UnconfirmedPoints != 10 {
		t.Errorf("Expected 10 unconfirmed points, got %d", profile.UnconfirmedPoints)
	}
}

func TestApplyScan_FirstScanConfirmedByReasonPolicy(t *testing.T) {
	service, cleanup := setupTestDB(t)
	defer cleanup()

	ctx := context.Background()
	now := time.Now().UTC()

	// The caller marks the points unconfirmed; the first_scan reason and the
	// achievement reason still confirm both ledger entries immediately.
	profile, err := service.ApplyScan(ctx, store.ApplyScanParams{
		UserId:          "user1",
		Barcode:         "999",
		ProductName:     "Oat Milk",
		Category:        "Dairy & Eggs",
		Confidence:      "high",
		CarbonEstimate:  decimal.NewFromFloat(0.9),
		PointsEarned:    60,
		PointsConfirmed: false,
		Reasons:         []string{"First scan bonus: +50 points", "Low carbon product (<1kg): +10 points"},
		StreakCount:     1,
		BestStreakCount: 1,
		NewLevel:        1,
		NewAchievements: []models.EarnedAchievement{
			{UserId: "user1", AchievementId: "first_scan", Name: "First Steps", Description: "Scan your first product", Points: 50, EarnedAt: now},
		},
		ScannedAt: now,
	})
	if err != nil {
		t.Fatalf("ApplyScan failed: %v", err)
	}

	if profile.ConfirmedPoints != 110 {
		t.Errorf("Expected 110 confirmed points, got %d", profile.ConfirmedPoints)
	}
	if profile.UnconfirmedPoints != 0 {
		t.Errorf("Expected 0 unconfirmed points, got %d", profile.UnconfirmedPoints)
	}
	if len(profile.RewardTransactions) != 2 {
		t.Fatalf("Expected scan + achievement transactions, got %d", len(profile.RewardTransactions))
	}
	for _, tx := range profile.RewardTransactions {
		if tx.PointsType != models.PointsConfirmed {
			t.Errorf("Expected %s transaction confirmed, got %s", tx.Reason, tx.PointsType)
		}
		if tx.ConfirmedAt == nil {
			t.Errorf("Expected confirmed_at set on %s transaction", tx.Reason)
		}
	}
}

func TestApplyScan_AchievementAtMostOnce(t *testing.T) {
	service, cleanup := setupTestDB(t)
	defer cleanup()

	ctx := context.Background()
	now := time.Now().UTC()

	params := store.ApplyScanParams{
		UserId:          "user1",
		Barcode:         "777",
		ProductName:     "Bananas",
		Category:        "Fruits & Vegetables",
		Confidence:      "high",
		CarbonEstimate:  decimal.NewFromFloat(0.86),
		PointsEarned:    10,
		PointsConfirmed: true,
		Reasons:         []string{"Daily scan: +10 points"},
		StreakCount:     1,
		BestStreakCount: 1,
		NewLevel:        1,
		NewAchievements: []models.EarnedAchievement{
			{UserId: "user1", AchievementId: "ten_scans", Name: "Getting Started", Description: "Scan 10 products", Points: 100, EarnedAt: now},
		},
		ScannedAt: now,
	}

	first, err := service.ApplyScan(ctx, params)
	if err != nil {
		t.Fatalf("First ApplyScan failed: %v", err)
	}
	if first.ConfirmedPoints != 110 {
		t.Fatalf("Expected 110 confirmed after first apply, got %d", first.ConfirmedPoints)
	}

	second, err := service.ApplyScan(ctx, params)
	if err != nil {
		t.Fatalf("Second ApplyScan failed: %v", err)
	}

	// Only scan points credited the second time; the achievement grant and
	// its 100 points are skipped.
	if second.ConfirmedPoints != 120 {
		t.Errorf("Expected 120 confirmed after duplicate grant, got %d", second.ConfirmedPoints)
	}
	if len(second.Achievements) != 1 {
		t.Errorf("Expected achievement recorded once, got %d", len(second.Achievements))
	}
}

func TestApplyScan_StreakProtectorConsumed(t *testing.T) {
	service, cleanup := setupTestDB(t)
	defer cleanup()

	ctx := context.Background()
	if _, err := service.db.Exec(
		`UPDATE profiles SET streak_protectors = 2, streak_count = 5 WHERE user_id = ?`, "user1"); err != nil {
		t.Fatalf("Failed to seed protectors: %v", err)
	}

	profile, err := service.ApplyScan(ctx, store.ApplyScanParams{
		UserId:              "user1",
		Barcode:             "888",
		ProductName:         "Lentil Soup",
		Category:            "Nuts & Legumes",
		Confidence:          "high",
		CarbonEstimate:      decimal.NewFromFloat(0.45),
		PointsEarned:        65,
		PointsConfirmed:     true,
		Reasons:             []string{"Daily scan: +10 points"},
		StreakCount:         6,
		BestStreakCount:     6,
		StreakProtectorUsed: true,
		NewLevel:            1,
		ScannedAt:           time.Now().UTC(),
	})
	if err != nil {
		t.Fatalf("ApplyScan failed: %v", err)
	}

	if profile.StreakProtectors != 1 {
		t.Errorf("Expected 1 protector left, got %d", profile.StreakProtectors)
	}
	if profile.StreakCount != 6 {
		t.Errorf("Expected streak 6, got %d", profile.StreakCount)
	}
}

func TestPurchase_SpendsConfirmedPointsAtomically(t *testing.T) {
	service, cleanup := setupTestDB(t)
	defer cleanup()

	ctx := context.Background()
	seedProfile(t, service, 500, 300, 10, "5")

	item, err := service.Purchase(ctx, store.PurchaseParams{
		UserId:   "user1",
		ItemId:   "eco_hero_badge",
		Name:     "Eco Hero Badge",
		Cost:     500,
		Category: "badge",
	})
	if err != nil {
		t.Fatalf("Purchase failed: %v", err)
	}
	if item.ItemId != "eco_hero_badge" || item.Cost != 500 {
		t.Errorf("Unexpected purchased item: %+v", item)
	}

	profile, err := service.GetProfile(ctx, "user1")
	if err != nil {
		t.Fatalf("GetProfile failed: %v", err)
	}
	if profile.ConfirmedPoints != 0 {
		t.Errorf("Expected 0 confirmed points, got %d", profile.ConfirmedPoints)
	}
	if profile.UnconfirmedPoints != 300 {
		t.Errorf("Unconfirmed bucket must be untouched, got %d", profile.UnconfirmedPoints)
	}
	if len(profile.ActiveBadges) != 1 || profile.ActiveBadges[0] != "eco_hero_badge" {
		t.Errorf("Expected active badge, got %v", profile.ActiveBadges)
	}
	if len(profile.RewardTransactions) != 1 || profile.RewardTransactions[0].Type != models.TransactionRedeemed {
		t.Errorf("Expected one redeemed transaction, got %+v", profile.RewardTransactions)
	}

	// The remaining 300 unconfirmed points cannot buy a 300-point item.
	_, err = service.Purchase(ctx, store.PurchaseParams{
		UserId:   "user1",
		ItemId:   "custom_avatar",
		Name:     "Custom Avatar",
		Cost:     300,
		Category: "cosmetic",
	})
	var insufficient *store.InsufficientPointsError
	if !errors.As(err, &insufficient) {
		t.Fatalf("Expected insufficient points error, got %v", err)
	}
	if insufficient.Required != 300 || insufficient.Confirmed != 0 || insufficient.Unconfirmed != 300 {
		t.Errorf("Unexpected balances in error: %+v", insufficient)
	}
}

func TestPurchase_DuplicateRejected(t *testing.T) {
	service, cleanup := setupTestDB(t)
	defer cleanup()

	ctx := context.Background()
	seedProfile(t, service, 1000, 0, 10, "5")

	params := store.PurchaseParams{
		UserId:   "user1",
		ItemId:   "streak_protector",
		Name:     "Streak Protector",
		Cost:     200,
		Category: "feature",
	}

	if _, err := service.Purchase(ctx, params); err != nil {
		t.Fatalf("First purchase failed: %v", err)
	}
	_, err := service.Purchase(ctx, params)
	if !errors.Is(err, store.ErrAlreadyPurchased) {
		t.Errorf("Expected ErrAlreadyPurchased, got %v", err)
	}

	profile, err := service.GetProfile(ctx, "user1")
	if err != nil {
		t.Fatalf("GetProfile failed: %v", err)
	}
	if profile.ConfirmedPoints != 800 {
		t.Errorf("Duplicate purchase must not spend points, got %d confirmed", profile.ConfirmedPoints)
	}
	if profile.StreakProtectors != 1 {
		t.Errorf("Expected 1 streak protector, got %d", profile.StreakProtectors)
	}
}

func TestSweepConfirmations_MovesMaturedPoints(t *testing.T) {
	service, cleanup := setupTestDB(t)
	defer cleanup()

	ctx := context.Background()
	now := time.Now().UTC()
	seedProfile(t, service, 50, 35, 5, "3")

	// One matured, one still maturing.
	insertTestTransaction(t, service, 10, models.PointsUnconfirmed, now.Add(-200*time.Hour))
	insertTestTransaction(t, service, 25, models.PointsUnconfirmed, now.Add(-24*time.Hour))

	result, err := service.SweepConfirmations(ctx, "user1", now)
	if err != nil {
		t.Fatalf("SweepConfirmations failed: %v", err)
	}
	if result.ConfirmedPoints != 10 || result.TransactionsConfirmed != 1 {
		t.Errorf("Expected 10 points / 1 transaction confirmed, got %+v", result)
	}

	profile, err := service.GetProfile(ctx, "user1")
	if err != nil {
		t.Fatalf("GetProfile failed: %v", err)
	}
	if profile.ConfirmedPoints != 60 {
		t.Errorf("Expected 60 confirmed points, got %d", profile.ConfirmedPoints)
	}
	if profile.UnconfirmedPoints != 25 {
		t.Errorf("Expected 25 unconfirmed points, got %d", profile.UnconfirmedPoints)
	}

	// Second sweep is a no-op.
	again, err := service.SweepConfirmations(ctx, "user1", now.Add(time.Minute))
	if err != nil {
		t.Fatalf("Second sweep failed: %v", err)
	}
	if again.ConfirmedPoints != 0 || again.TransactionsConfirmed != 0 {
		t.Errorf("Expected idempotent sweep, got %+v", again)
	}
}

func TestAwardMonthlyBonus_OncePerMonth(t *testing.T) {
	service, cleanup := setupTestDB(t)
	defer cleanup()

	ctx := context.Background()
	now := time.Date(2026, time.August, 20, 12, 0, 0, 0, time.UTC)
	seedProfile(t, service, 0, 0, 12, "15.5")

	award, err := service.AwardMonthlyBonus(ctx, "user1", now)
	if err != nil {
		t.Fatalf("AwardMonthlyBonus failed: %v", err)
	}
	if !award.Awarded || award.Points != 1000 {
		t.Fatalf("Expected 1000-point Eco Champion bonus, got %+v", award)
	}

	second, err := service.AwardMonthlyBonus(ctx, "user1", now.Add(48*time.Hour))
	if err != nil {
		t.Fatalf("Second check failed: %v", err)
	}
	if second.Awarded {
		t.Errorf("Expected no second award in the same month, got %+v", second)
	}

	nextMonth := time.Date(2026, time.September, 2, 12, 0, 0, 0, time.UTC)
	third, err := service.AwardMonthlyBonus(ctx, "user1", nextMonth)
	if err != nil {
		t.Fatalf("Next-month check failed: %v", err)
	}
	if !third.Awarded {
		t.Error("Expected eligibility to reset across the month boundary")
	}

	profile, err := service.GetProfile(ctx, "user1")
	if err != nil {
		t.Fatalf("GetProfile failed: %v", err)
	}
	if profile.MonthlyBonusesEarned != 2 {
		t.Errorf("Expected 2 bonuses earned, got %d", profile.MonthlyBonusesEarned)
	}
}

func TestLeaderboard_Ordering(t *testing.T) {
	service, cleanup := setupTestDB(t)
	defer cleanup()

	ctx := context.Background()

	if _, err := service.db.Exec(queryInsertUser, "user2", "Second User", "second@example.com"); err != nil {
		t.Fatalf("Failed to insert second user: %v", err)
	}
	if _, err := service.db.Exec(queryInsertProfile, "user2"); err != nil {
		t.Fatalf("Failed to insert second profile: %v", err)
	}

	if _, err := service.db.Exec(
		`UPDATE profiles SET total_points_earned = 100 WHERE user_id = ?`, "user1"); err != nil {
		t.Fatalf("Failed to seed user1: %v", err)
	}
	if _, err := service.db.Exec(
		`UPDATE profiles SET total_points_earned = 5000, level = 8 WHERE user_id = ?`, "user2"); err != nil {
		t.Fatalf("Failed to seed user2: %v", err)
	}

	entries, err := service.Leaderboard(ctx, 10)
	if err != nil {
		t.Fatalf("Leaderboard failed: %v", err)
	}
	if len(entries) != 2 {
		t.Fatalf("Expected 2 entries, got %d", len(entries))
	}
	if entries[0].UserId != "user2" || entries[1].UserId != "user1" {
		t.Errorf("Expected user2 ranked first, got %s then %s", entries[0].UserId, entries[1].UserId)
	}
	if entries[0].TotalPointsEarned != 5000 {
		t.Errorf("Unexpected top score: %d", entries[0].TotalPointsEarned)
	}
}

func insertTestTransaction(t *testing.T, service *Service, points int, pointsType string, date time.Time) {
	t.Helper()
	_, err := service.db.Exec(queryInsertTransaction,
		uuid.New().String(), "user1", models.TransactionEarned,
		points, pointsType, "scan", "Daily scan", date, nil)
	if err != nil {
		t.Fatalf("Failed to insert transaction: %v", err)
	}
}
