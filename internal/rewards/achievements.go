package rewards

import "ecoscan-rewards-go/internal/models"

// CheckAchievements returns every catalog achievement whose id the user has
// not yet earned and whose predicate holds against the current aggregate.
// The caller appends the results with earnedAt stamped and credits their
// points as immediately confirmed.
func CheckAchievements(p *models.UserProfile) []Achievement {
	var unlocked []Achievement
	for _, achievement := range Achievements {
		if p.HasAchievement(achievement.Id) {
			continue
		}
		if achievement.Condition(p) {
			unlocked = append(unlocked, achievement)
		}
	}
	return unlocked
}

// AvailableAchievements returns the catalog entries the user has not earned yet.
func AvailableAchievements(p *models.UserProfile) []Achievement {
	var available []Achievement
	for _, achievement := range Achievements {
		if !p.HasAchievement(achievement.Id) {
			available = append(available, achievement)
		}
	}
	return available
}
