package database

import (
	"context"
	"database/sql"
	"fmt"

	"ecoscan-rewards-go/internal/models"
	"ecoscan-rewards-go/internal/store"

	"github.com/google/uuid"
	_ "github.com/mattn/go-sqlite3"
	"go.uber.org/zap"
)

// Compile-time check: *Service must satisfy store.ProfileStore.
var _ store.ProfileStore = (*Service)(nil)

type Service struct {
	db *sql.DB
}

func NewService(ctx context.Context, cfg models.DatabaseConfig) (*Service, error) {
	// Validate configuration
	if cfg.Path == "" {
		return nil, fmt.Errorf("database path cannot be empty")
	}
	if cfg.MaxOpenConns <= 0 {
		return nil, fmt.Errorf("max open connections must be positive, got %d", cfg.MaxOpenConns)
	}
	if cfg.MaxIdleConns < 0 {
		return nil, fmt.Errorf("max idle connections cannot be negative, got %d", cfg.MaxIdleConns)
	}
	if cfg.PingTimeout <= 0 {
		return nil, fmt.Errorf("ping timeout must be positive, got %v", cfg.PingTimeout)
	}

	zap.L().Info("Opening SQLite database", zap.String("file", cfg.Path))
	db, err := sql.Open("sqlite3", cfg.Path+"?_journal_mode=WAL&_synchronous=NORMAL&_cache_size=1000")
	if err != nil {
		return nil, fmt.Errorf("unable to open database: %w", err)
	}

	db.SetMaxOpenConns(cfg.MaxOpenConns)
	db.SetMaxIdleConns(cfg.MaxIdleConns)
	db.SetConnMaxLifetime(cfg.ConnMaxLifetime)
	db.SetConnMaxIdleTime(cfg.ConnMaxIdleTime)

	pingCtx, cancel := context.WithTimeout(ctx, cfg.PingTimeout)
	defer cancel()
	if err := db.PingContext(pingCtx); err != nil {
		if closeErr := db.Close(); closeErr != nil {
			return nil, closeErr
		}
		return nil, fmt.Errorf("unable to ping database: %w", err)
	}

	service := &Service{db: db}
	if err := service.initSchema(cfg.CreateDemoUsers); err != nil {
		if closeErr := db.Close(); closeErr != nil {
			return nil, closeErr
		}
		return nil, fmt.Errorf("unable to initialize schema: %w", err)
	}

	zap.L().Info("Database service initialized successfully")
	return service, nil
}

func (s *Service) Close() {
	if err := s.db.Close(); err != nil {
		zap.L().Warn("Failed to close database connection", zap.Error(err))
	}
}

func (s *Service) initSchema(createDemoUsers bool) error {
	schema := `
	-- Accounts
	CREATE TABLE IF NOT EXISTS users (
		id TEXT PRIMARY KEY,
		name TEXT NOT NULL,
		email TEXT NOT NULL UNIQUE,
		active BOOLEAN NOT NULL DEFAULT 1,
		created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP,
		updated_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
	);

	CREATE INDEX IF NOT EXISTS idx_users_email ON users(email);
	CREATE INDEX IF NOT EXISTS idx_users_active ON users(active);

	-- Per-user rewards aggregate (hot data). The version column guards every
	-- mutation against concurrent writers.
	CREATE TABLE IF NOT EXISTS profiles (
		user_id TEXT PRIMARY KEY REFERENCES users(id) ON DELETE CASCADE,
		confirmed_points INTEGER NOT NULL DEFAULT 0,
		unconfirmed_points INTEGER NOT NULL DEFAULT 0,
		total_points_earned INTEGER NOT NULL DEFAULT 0,
		level INTEGER NOT NULL DEFAULT 1,
		streak_count INTEGER NOT NULL DEFAULT 0,
		best_streak_count INTEGER NOT NULL DEFAULT 0,
		total_scanned INTEGER NOT NULL DEFAULT 0,
		monthly_carbon TEXT NOT NULL DEFAULT '0',
		last_scan_date TIMESTAMP,
		last_monthly_bonus_check TIMESTAMP,
		monthly_bonuses_earned INTEGER NOT NULL DEFAULT 0,
		streak_protectors INTEGER NOT NULL DEFAULT 0,
		double_points_days INTEGER NOT NULL DEFAULT 0,
		has_advanced_analytics BOOLEAN NOT NULL DEFAULT 0,
		custom_avatar TEXT NOT NULL DEFAULT '',
		version INTEGER NOT NULL DEFAULT 1,
		updated_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
	);

	-- Point ledger (append-only, except confirmation flips)
	CREATE TABLE IF NOT EXISTS reward_transactions (
		id TEXT PRIMARY KEY,
		user_id TEXT NOT NULL,
		type TEXT NOT NULL,
		points INTEGER NOT NULL,
		points_type TEXT,
		reason TEXT NOT NULL,
		description TEXT NOT NULL,
		date TIMESTAMP NOT NULL,
		confirmed_at TIMESTAMP
	);

	CREATE INDEX IF NOT EXISTS idx_transactions_user_id ON reward_transactions(user_id);
	CREATE INDEX IF NOT EXISTS idx_transactions_user_pending ON reward_transactions(user_id, type, points_type);
	CREATE INDEX IF NOT EXISTS idx_transactions_date ON reward_transactions(date);

	-- Earned achievements, at most once per id per user
	CREATE TABLE IF NOT EXISTS earned_achievements (
		user_id TEXT NOT NULL,
		achievement_id TEXT NOT NULL,
		name TEXT NOT NULL,
		description TEXT NOT NULL,
		points INTEGER NOT NULL,
		earned_at TIMESTAMP NOT NULL,
		UNIQUE(user_id, achievement_id)
	);

	CREATE INDEX IF NOT EXISTS idx_achievements_user_id ON earned_achievements(user_id);

	-- Reward shop purchases, at most once per item per user
	CREATE TABLE IF NOT EXISTS purchased_items (
		user_id TEXT NOT NULL,
		item_id TEXT NOT NULL,
		name TEXT NOT NULL,
		cost INTEGER NOT NULL,
		category TEXT NOT NULL,
		purchased_at TIMESTAMP NOT NULL,
		active BOOLEAN NOT NULL DEFAULT 1,
		UNIQUE(user_id, item_id)
	);

	CREATE INDEX IF NOT EXISTS idx_purchased_items_user_id ON purchased_items(user_id);

	-- Active badges pushed by badge purchases
	CREATE TABLE IF NOT EXISTS badges (
		user_id TEXT NOT NULL,
		badge_id TEXT NOT NULL,
		activated_at TIMESTAMP NOT NULL,
		UNIQUE(user_id, badge_id)
	);

	-- Scan history
	CREATE TABLE IF NOT EXISTS scans (
		id TEXT PRIMARY KEY,
		user_id TEXT NOT NULL,
		barcode TEXT NOT NULL,
		product_name TEXT NOT NULL,
		category TEXT NOT NULL,
		confidence TEXT NOT NULL,
		carbon_estimate TEXT NOT NULL,
		date TIMESTAMP NOT NULL
	);

	CREATE INDEX IF NOT EXISTS idx_scans_user_id ON scans(user_id);
	CREATE INDEX IF NOT EXISTS idx_scans_date ON scans(date);
	`

	_, err := s.db.Exec(schema)
	if err != nil {
		return err
	}

	if createDemoUsers {
		users := []struct {
			id    string
			name  string
			email string
		}{
			{uuid.New().String(), "Alice Johnson", "alice.johnson@example.com"},
			{uuid.New().String(), "Bob Smith", "bob.smith@example.com"},
			{uuid.New().String(), "Carol Williams", "carol.williams@example.com"},
		}

		for _, user := range users {
			if _, err := s.db.Exec(queryInsertUser, user.id, user.name, user.email); err != nil {
				zap.L().Error("Failed to insert demo user", zap.String("name", user.name), zap.Error(err))
				continue
			}
			if _, err := s.db.Exec(queryInsertProfile, user.id); err != nil {
				zap.L().Error("Failed to insert demo profile", zap.String("name", user.name), zap.Error(err))
				continue
			}
			zap.L().Info("Demo user created", zap.String("id", user.id), zap.String("name", user.name))
		}
	} else {
		zap.L().Info("Skipping demo user creation (CREATE_DEMO_USERS=false)")
	}

	return nil
}
