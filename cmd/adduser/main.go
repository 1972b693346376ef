package main

import (
	"context"
	"flag"

	"ecoscan-rewards-go/internal/common"
	"ecoscan-rewards-go/internal/config"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

func main() {
	name := flag.String("name", "", "Full name of the user to create")
	email := flag.String("email", "", "Email address of the user to create")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		_, _ = zap.NewProduction()
		zap.L().Fatal("Failed to load configuration", zap.Error(err))
	}

	_, loggerCleanup := common.InitializeLogger()
	defer loggerCleanup()

	if *name == "" || *email == "" {
		zap.L().Fatal("Both -name and -email are required")
	}

	ctx := context.Background()

	dbService, err := common.InitializeDatabaseOnly(ctx, cfg)
	if err != nil {
		zap.L().Fatal("Failed to initialize database", zap.Error(err))
	}
	defer dbService.Close()

	user, err := dbService.CreateUser(ctx, uuid.New().String(), *name, *email)
	if err != nil {
		zap.L().Fatal("Failed to create user", zap.Error(err))
	}

	zap.L().Info("User created",
		zap.String("id", user.Id),
		zap.String("name", user.Name),
		zap.String("email", user.Email))
}
