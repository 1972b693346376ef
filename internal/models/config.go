package models

import "time"

// Config represents the application configuration
type Config struct {
	Database DatabaseConfig
	Server   ServerConfig
	Lookup   LookupConfig
	Sweep    SweepConfig
	Catalog  CatalogConfig
}

// DatabaseConfig holds database connection settings
type DatabaseConfig struct {
	Path            string
	MaxOpenConns    int
	MaxIdleConns    int
	ConnMaxLifetime time.Duration
	ConnMaxIdleTime time.Duration
	PingTimeout     time.Duration
	CreateDemoUsers bool
}

// ServerConfig holds HTTP API server settings
type ServerConfig struct {
	Host             string
	Port             int
	ReadTimeout      time.Duration
	WriteTimeout     time.Duration
	IdleTimeout      time.Duration
	LeaderboardLimit int
}

// LookupConfig holds product lookup collaborator settings
type LookupConfig struct {
	BaseUrl string
	Timeout time.Duration
}

// SweepConfig holds confirmation sweeper settings
type SweepConfig struct {
	Interval time.Duration
}

// CatalogConfig holds optional catalog extension files
type CatalogConfig struct {
	CarbonCatalogFile string
}
