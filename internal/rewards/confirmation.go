package rewards

import (
	"time"

	"ecoscan-rewards-go/internal/models"
)

// ConfirmationResult reports the effect of one pending-confirmation sweep.
type ConfirmationResult struct {
	ConfirmedPoints int
	// Confirmed holds post-flip copies of every transaction the sweep
	// confirmed, in ledger order.
	Confirmed []models.RewardTransaction
}

// ConfirmPendingPoints flips every matured unconfirmed earned transaction to
// confirmed, stamping ConfirmedAt with now. The slice elements are mutated in
// place; the caller must move the returned point total from the unconfirmed
// bucket to the confirmed bucket.
//
// The sweep is idempotent: already-confirmed and redeemed transactions are
// skipped, so repeated invocation confirms nothing further.
func ConfirmPendingPoints(transactions []models.RewardTransaction, now time.Time) ConfirmationResult {
	var result ConfirmationResult

	for i := range transactions {
		tx := &transactions[i]
		if tx.PointsType == models.PointsConfirmed || tx.Type == models.TransactionRedeemed {
			continue
		}

		hoursElapsed := now.Sub(tx.Date).Hours()
		if hoursElapsed < ConfirmationDelayHours {
			continue
		}

		tx.PointsType = models.PointsConfirmed
		confirmedAt := now
		tx.ConfirmedAt = &confirmedAt
		result.ConfirmedPoints += tx.Points
		result.Confirmed = append(result.Confirmed, *tx)
	}

	return result
}

// PointsSummary is a snapshot of a user's point buckets.
type PointsSummary struct {
	Confirmed   int `json:"confirmed"`
	Unconfirmed int `json:"unconfirmed"`
	Total       int `json:"total"`
	// PendingConfirmation is the portion of unconfirmed points that will
	// mature within the next 24 hours.
	PendingConfirmation int `json:"pendingConfirmation"`
}

// SummarizePoints builds the display summary for a user's point buckets.
func SummarizePoints(p *models.UserProfile, now time.Time) PointsSummary {
	summary := PointsSummary{
		Confirmed:   p.ConfirmedPoints,
		Unconfirmed: p.UnconfirmedPoints,
		Total:       p.ConfirmedPoints + p.UnconfirmedPoints,
	}

	for _, tx := range p.RewardTransactions {
		if tx.PointsType != models.PointsUnconfirmed || tx.Type != models.TransactionEarned {
			continue
		}
		hoursRemaining := ConfirmationDelayHours - now.Sub(tx.Date).Hours()
		if hoursRemaining > 0 && hoursRemaining <= 24 {
			summary.PendingConfirmation += tx.Points
		}
	}

	return summary
}
