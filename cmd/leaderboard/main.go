package main

import (
	"context"
	"flag"
	"fmt"
	"strings"

	"ecoscan-rewards-go/internal/common"
	"ecoscan-rewards-go/internal/config"
	"ecoscan-rewards-go/internal/rewards"
	"ecoscan-rewards-go/internal/store"

	"go.uber.org/zap"
)

func formatBadges(badges []string) string {
	if len(badges) == 0 {
		return "none"
	}
	return strings.Join(badges, ", ")
}

func printEntry(rank int, entry store.LeaderboardRow, isLast bool) {
	symbol := common.BoxPrefix(isLast)
	detail := common.BoxDetailPrefix(isLast)

	fmt.Printf("%s #%-3d %-25s %8d pts  (level %d %s)\n",
		symbol, rank, entry.Name, entry.TotalPointsEarned,
		entry.Level, rewards.LevelTier(entry.Level))
	fmt.Printf("%s      scans: %d, streak: %d, achievements: %d, monthly carbon: %s kg\n",
		detail, entry.TotalScanned, entry.StreakCount,
		entry.AchievementCount, entry.MonthlyCarbon.StringFixed(2))
	fmt.Printf("%s      badges: %s\n", detail, formatBadges(entry.ActiveBadges))
}

func main() {
	ctx := context.Background()

	logger, loggerCleanup := common.InitializeLogger()
	defer loggerCleanup()

	limitFlag := flag.Int("limit", 0, "Maximum number of entries to show (default: configured leaderboard limit)")
	flag.Parse()

	logger.Info("Starting leaderboard query")

	cfg, err := config.Load()
	if err != nil {
		logger.Fatal("Failed to load config", zap.Error(err))
	}

	limit := cfg.Server.LeaderboardLimit
	if *limitFlag > 0 {
		limit = *limitFlag
	}

	logger.Info("Connecting to database", zap.String("path", cfg.Database.Path))
	dbService, err := common.InitializeDatabaseOnly(ctx, cfg)
	if err != nil {
		logger.Fatal("Failed to initialize database", zap.Error(err))
	}
	defer dbService.Close()

	entries, err := dbService.Leaderboard(ctx, limit)
	if err != nil {
		logger.Fatal("Failed to query leaderboard", zap.Error(err))
	}

	common.PrintHeader("🌱 EcoScan Leaderboard", common.DefaultWidth)

	if len(entries) == 0 {
		fmt.Println("No users have scanned anything yet.")
	}
	for i, entry := range entries {
		printEntry(i+1, entry, i == len(entries)-1)
	}

	common.PrintFooter(fmt.Sprintf("Showing %d of up to %d entries", len(entries), limit), common.DefaultWidth)
}
