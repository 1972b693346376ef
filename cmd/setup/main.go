package main

import (
	"context"

	"ecoscan-rewards-go/internal/common"
	"ecoscan-rewards-go/internal/config"

	"go.uber.org/zap"
)

// Initializes the SQLite database, creating the schema and optional demo
// users, then exits.
func main() {
	cfg, err := config.Load()
	if err != nil {
		_, _ = zap.NewProduction()
		zap.L().Fatal("Failed to load configuration", zap.Error(err))
	}

	_, loggerCleanup := common.InitializeLogger()
	defer loggerCleanup()

	ctx := context.Background()

	zap.L().Info("Setting up database", zap.String("path", cfg.Database.Path))

	dbService, err := common.InitializeDatabaseOnly(ctx, cfg)
	if err != nil {
		zap.L().Fatal("Failed to initialize database", zap.Error(err))
	}
	defer dbService.Close()

	users, err := dbService.GetUsers(ctx)
	if err != nil {
		zap.L().Fatal("Failed to list users", zap.Error(err))
	}

	zap.L().Info("Database setup complete",
		zap.String("path", cfg.Database.Path),
		zap.Int("users", len(users)))
}
