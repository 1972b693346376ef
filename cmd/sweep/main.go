package main

import (
	"context"
	"flag"
	"os"
	"os/signal"
	"syscall"
	"time"

	"ecoscan-rewards-go/internal/common"
	"ecoscan-rewards-go/internal/config"
	"ecoscan-rewards-go/internal/store"

	"go.uber.org/zap"
)

// Background confirmation sweeper. Periodically flips every matured
// unconfirmed transaction to confirmed for every user. Run with -once for a
// single pass (e.g. from cron).
func main() {
	emailFilter := flag.String("email", "", "Optional email to sweep a single user (default: all users)")
	once := flag.Bool("once", false, "Run a single sweep pass and exit")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		_, _ = zap.NewProduction()
		zap.L().Fatal("Failed to load configuration", zap.Error(err))
	}

	logger, loggerCleanup := common.InitializeLogger()
	defer loggerCleanup()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	dbService, err := common.InitializeDatabaseOnly(ctx, cfg)
	if err != nil {
		zap.L().Fatal("Failed to initialize database", zap.Error(err))
	}
	defer dbService.Close()

	if *once {
		sweepAllUsers(ctx, dbService, *emailFilter, logger)
		return
	}

	zap.L().Info("Starting confirmation sweeper",
		zap.Duration("interval", cfg.Sweep.Interval))

	ticker := time.NewTicker(cfg.Sweep.Interval)
	defer ticker.Stop()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	sweepAllUsers(ctx, dbService, *emailFilter, logger)
	for {
		select {
		case <-ticker.C:
			sweepAllUsers(ctx, dbService, *emailFilter, logger)
		case sig := <-sigChan:
			zap.L().Info("Shutting down sweeper", zap.String("signal", sig.String()))
			return
		}
	}
}

func sweepAllUsers(ctx context.Context, dbService store.ProfileStore, emailFilter string, logger *zap.Logger) {
	users, err := common.InitializeUsers(ctx, dbService, emailFilter, logger)
	if err != nil {
		zap.L().Error("Failed to load users for sweep", zap.Error(err))
		return
	}

	now := time.Now()
	var totalPoints, totalTransactions int
	for _, user := range users {
		result, err := dbService.SweepConfirmations(ctx, user.Id, now)
		if err != nil {
			zap.L().Error("Sweep failed for user",
				zap.String("user_id", user.Id),
				zap.Error(err))
			continue
		}
		totalPoints += result.ConfirmedPoints
		totalTransactions += result.TransactionsConfirmed
	}

	zap.L().Info("Sweep pass complete",
		zap.Int("users", len(users)),
		zap.Int("points_confirmed", totalPoints),
		zap.Int("transactions_confirmed", totalTransactions))
}
