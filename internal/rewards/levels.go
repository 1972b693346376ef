package rewards

// LevelResult describes where a point total sits in the level table.
type LevelResult struct {
	Level           int
	NextLevelPoints int
	ProgressToNext  float64
}

// CalculateLevel maps lifetime earned points onto the level table. Level is
// the 1-based index of the highest threshold not exceeding totalPoints,
// capped at MaxLevel. ProgressToNext is a percentage clamped to 100 and
// pinned at 100 once the max level is reached.
func CalculateLevel(totalPoints int) LevelResult {
	level := 1
	for i := len(LevelThresholds) - 1; i >= 0; i-- {
		if totalPoints >= LevelThresholds[i] {
			level = i + 1
			break
		}
	}

	nextLevelPoints := LevelThresholds[len(LevelThresholds)-1]
	if level < len(LevelThresholds) {
		nextLevelPoints = LevelThresholds[level]
	}
	currentLevelPoints := LevelThresholds[level-1]

	var progress float64
	if level >= MaxLevel {
		progress = 100
	} else {
		progress = float64(totalPoints-currentLevelPoints) / float64(nextLevelPoints-currentLevelPoints) * 100
		if progress > 100 {
			progress = 100
		}
	}

	return LevelResult{
		Level:           level,
		NextLevelPoints: nextLevelPoints,
		ProgressToNext:  progress,
	}
}

// LevelTier labels a level for leaderboard display.
func LevelTier(level int) string {
	switch {
	case level >= 15:
		return "Legendary"
	case level >= 10:
		return "Master"
	case level >= 7:
		return "Expert"
	case level >= 5:
		return "Advanced"
	case level >= 3:
		return "Intermediate"
	default:
		return "Beginner"
	}
}
