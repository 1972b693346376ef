package rewards

import (
	"time"

	"ecoscan-rewards-go/internal/models"
)

// StreakUpdate is the streak state a scan at the given time produces.
type StreakUpdate struct {
	StreakCount     int
	BestStreakCount int
	ProtectorUsed   bool
}

// RollStreak computes the user's streak after a scan at now. A second scan on
// the same calendar day leaves the streak unchanged; a scan on the following
// day extends it; a single missed day consumes a streak protector when the
// user owns one; any other gap resets the streak to 1.
func RollStreak(p *models.UserProfile, now time.Time) StreakUpdate {
	update := StreakUpdate{BestStreakCount: p.BestStreakCount}

	switch {
	case p.LastScanDate == nil:
		update.StreakCount = 1
	default:
		gap := daysBetween(*p.LastScanDate, now)
		switch {
		case gap <= 0:
			if p.StreakCount > 0 {
				update.StreakCount = p.StreakCount
			} else {
				update.StreakCount = 1
			}
		case gap == 1:
			update.StreakCount = p.StreakCount + 1
		case gap == 2 && p.StreakProtectors > 0:
			update.StreakCount = p.StreakCount + 1
			update.ProtectorUsed = true
		default:
			update.StreakCount = 1
		}
	}

	if update.StreakCount > update.BestStreakCount {
		update.BestStreakCount = update.StreakCount
	}
	return update
}

// daysBetween counts calendar-day boundaries crossed between a and b,
// in b's location.
func daysBetween(a, b time.Time) int {
	ay, am, ad := a.In(b.Location()).Date()
	by, bm, bd := b.Date()
	start := time.Date(ay, am, ad, 0, 0, 0, 0, b.Location())
	end := time.Date(by, bm, bd, 0, 0, 0, 0, b.Location())
	return int(end.Sub(start).Hours() / 24)
}
