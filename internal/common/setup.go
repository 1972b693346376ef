package common

import (
	"context"
	"log"
	"strings"

	"ecoscan-rewards-go/internal/database"
	"ecoscan-rewards-go/internal/estimator"
	"ecoscan-rewards-go/internal/lookup"
	"ecoscan-rewards-go/internal/models"

	"github.com/joho/godotenv"
	"go.uber.org/zap"
)

// init loads environment variables from .env file if it exists
func init() {
	// Try to load .env file - if it doesn't exist, that's okay
	// Environment variables can be set via other means (shell export, docker, etc.)
	if err := godotenv.Load(); err != nil {
		log.Printf("Note: No .env file found or unable to load it: %v\n", err)
	} else {
		log.Println("✓ Loaded environment variables from .env file")
	}
}

type Services struct {
	DbService     *database.Service
	LookupService *lookup.Service
}

func InitializeLogger() (*zap.Logger, func()) {
	logger, err := zap.NewProduction()
	if err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}

	zap.ReplaceGlobals(logger)

	cleanup := func() {
		if err := logger.Sync(); err != nil {
			if !isIgnorableSyncError(err) {
				log.Printf("Failed to sync logger: %v\n", err)
			}
		}
	}

	return logger, cleanup
}

func InitializeServices(ctx context.Context, cfg *models.Config) (*Services, error) {
	dbService, err := database.NewService(ctx, cfg.Database)
	if err != nil {
		return nil, err
	}

	if cfg.Catalog.CarbonCatalogFile != "" {
		zap.L().Info("Extending carbon catalog",
			zap.String("file", cfg.Catalog.CarbonCatalogFile))
		entries, err := estimator.LoadCatalogFile(cfg.Catalog.CarbonCatalogFile)
		if err != nil {
			dbService.Close()
			return nil, err
		}
		estimator.ExtendCatalog(entries)
		zap.L().Info("Carbon catalog extended", zap.Int("entries", len(entries)))
	}

	return &Services{
		DbService:     dbService,
		LookupService: lookup.NewService(cfg.Lookup),
	}, nil
}

// InitializeDatabaseOnly initializes just the database service without the
// product lookup client. Useful for offline utilities like the sweeper.
func InitializeDatabaseOnly(ctx context.Context, cfg *models.Config) (*database.Service, error) {
	dbService, err := database.NewService(ctx, cfg.Database)
	if err != nil {
		return nil, err
	}
	return dbService, nil
}

func (cs *Services) Close() {
	if cs.DbService != nil {
		cs.DbService.Close()
	}
}

func isIgnorableSyncError(err error) bool {
	msg := err.Error()
	return strings.Contains(msg, "sync /dev/stderr: inappropriate ioctl for device") ||
		strings.Contains(msg, "sync /dev/stdout: inappropriate ioctl for device")
}
