package api

import (
	"fmt"
	"testing"
	"time"

	"ecoscan-rewards-go/internal/models"
)

func TestRecentTransactions_NewestFirst(t *testing.T) {
	base := time.Date(2026, time.August, 1, 12, 0, 0, 0, time.UTC)
	var ledger []models.RewardTransaction
	for i := 0; i < 25; i++ {
		ledger = append(ledger, models.RewardTransaction{
			Id:     fmt.Sprintf("tx%02d", i),
			Type:   models.TransactionEarned,
			Points: 10,
			Reason: "scan",
			Date:   base.Add(time.Duration(i) * time.Hour),
		})
	}

	recent := recentTransactions(ledger, 20)

	if len(recent) != 20 {
		t.Fatalf("Expected 20 entries, got %d", len(recent))
	}
	if recent[0].Id != "tx24" {
		t.Errorf("Expected the newest entry first, got %s", recent[0].Id)
	}
	if recent[19].Id != "tx05" {
		t.Errorf("Expected the cut to drop the oldest entries, got %s last", recent[19].Id)
	}
	for _, tx := range recent {
		if tx.Id == "tx00" || tx.Id == "tx04" {
			t.Errorf("Old entry %s should not appear in the recent feed", tx.Id)
		}
	}
}

func TestRecentTransactions_ShortLedger(t *testing.T) {
	base := time.Date(2026, time.August, 1, 12, 0, 0, 0, time.UTC)
	ledger := []models.RewardTransaction{
		{Id: "tx0", Date: base},
		{Id: "tx1", Date: base.Add(time.Hour)},
	}

	recent := recentTransactions(ledger, 20)

	if len(recent) != 2 {
		t.Fatalf("Expected both entries, got %d", len(recent))
	}
	if recent[0].Id != "tx1" || recent[1].Id != "tx0" {
		t.Errorf("Expected newest-first order, got %s then %s", recent[0].Id, recent[1].Id)
	}
}

func TestRecentTransactions_Empty(t *testing.T) {
	if recent := recentTransactions(nil, 20); len(recent) != 0 {
		t.Errorf("Expected empty feed, got %d entries", len(recent))
	}
}
