package rewards

import "testing"

func TestCalculateLevel_Thresholds(t *testing.T) {
	tests := []struct {
		points   int
		expected int
	}{
		{0, 1},
		{99, 1},
		{100, 2},
		{249, 2},
		{250, 3},
		{1000, 5},
		{74999, 14},
		{75000, 15},
		{200000, 15},
	}

	for _, test := range tests {
		result := CalculateLevel(test.points)
		if result.Level != test.expected {
			t.Errorf("Points %d: expected level %d, got %d", test.points, test.expected, result.Level)
		}
	}
}

func TestCalculateLevel_Monotonic(t *testing.T) {
	previous := 0
	for points := 0; points <= 80000; points += 50 {
		level := CalculateLevel(points).Level
		if level < previous {
			t.Fatalf("Level decreased from %d to %d at %d points", previous, level, points)
		}
		previous = level
	}
}

func TestCalculateLevel_Progress(t *testing.T) {
	// Halfway between level 1 (0) and level 2 (100).
	result := CalculateLevel(50)
	if result.ProgressToNext != 50 {
		t.Errorf("Expected 50%% progress, got %f", result.ProgressToNext)
	}
	if result.NextLevelPoints != 100 {
		t.Errorf("Expected next level at 100 points, got %d", result.NextLevelPoints)
	}

	maxed := CalculateLevel(100000)
	if maxed.ProgressToNext != 100 {
		t.Errorf("Expected progress pinned at 100 at max level, got %f", maxed.ProgressToNext)
	}
}

func TestLevelTier(t *testing.T) {
	tests := []struct {
		level    int
		expected string
	}{
		{1, "Beginner"},
		{3, "Intermediate"},
		{5, "Advanced"},
		{7, "Expert"},
		{10, "Master"},
		{15, "Legendary"},
	}

	for _, test := range tests {
		if tier := LevelTier(test.level); tier != test.expected {
			t.Errorf("Level %d: expected tier %s, got %s", test.level, test.expected, tier)
		}
	}
}
