// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package config handles application-wide settings and environment parsing.

It leverages 'caarlos0/env' to map OS environment variables into a strongly-typed
Go struct, providing early validation and default values. A local '.env' file,
when present, is loaded first with 'joho/godotenv' so developers do not need to
export variables by hand.

Usage:

	cfg, err := config.Load()
	if err != nil {
	    log.Fatal(err)
	}

Architecture:

  - Immutability: Once loaded, configuration is read-only.
  - DI-Friendly: Passed to core components (DB, Redis) via constructors.
  - Zero Hidden State: No global variables are used to store config.
*/
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"net"
	"net/url"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

// # Configuration Schema

// Config holds all runtime configuration for the catalog API server.
type Config struct {

	// Server settings
	ServerPort  string `env:"SERVER_PORT"`
	Port        string `env:"PORT"         envDefault:"3000"`
	Environment string `env:"ENVIRONMENT"  envDefault:"development"`
	Debug       bool   `env:"DEBUG"        envDefault:"false"`

	// Relational Database (PostgreSQL). DatabaseURL wins over the discrete parts.
	DatabaseURL string `env:"DATABASE_URL"`
	DBHost      string `env:"DB_HOST"      envDefault:"localhost"`
	DBPort      string `env:"DB_PORT"      envDefault:"5432"`
	DBUser      string `env:"DB_USER"`
	DBPassword  string `env:"DB_PASS"`
	DBName      string `env:"DB_NAME"`
	DBSSLMode   string `env:"DB_SSLMODE"   envDefault:"disable"`

	// MigrationPath is the filesystem path to the SQL migrations directory.
	MigrationPath string `env:"MIGRATION_PATH" envDefault:"./data/migrations"`

	// Key-Value store (Redis). Optional: enables the distributed name lock.
	RedisURL      string        `env:"REDIS_URL"`
	NameLockTTL   time.Duration `env:"NAME_LOCK_TTL" envDefault:"5s"`
	NameLockRetry time.Duration `env:"NAME_LOCK_RETRY" envDefault:"50ms"`

	// LogFile, when set, duplicates the JSON log stream into a rotating file.
	LogFile string `env:"LOG_FILE"`

	// Pagination
	DefaultPageSize int `env:"DEFAULT_PAGE_SIZE" envDefault:"20"`
	MaxPageSize     int `env:"MAX_PAGE_SIZE"     envDefault:"100"`

	// Per-IP rate limiting
	RateLimitRPS   float64 `env:"RATE_LIMIT_RPS"   envDefault:"100"`
	RateLimitBurst int     `env:"RATE_LIMIT_BURST" envDefault:"150"`

	// Cross-Origin Resource Sharing
	AllowedOriginSuffix string `env:"ALLOWED_ORIGIN_SUFFIX"`
}

// # Configuration Loading

// Load reads an optional .env file and parses environment variables into a [Config].
func Load() (*Config, error) {

	// A missing .env file is normal outside local development
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("config: failed to read .env file: %w", err)
	}

	return Parse()
}

// Parse maps the current process environment into a [Config] and derives
// the values that depend on more than one variable.
func Parse() (*Config, error) {

	// Initialize an empty config struct
	cfg := &Config{}

	// Use the 'env' package to map environment variables to struct fields.
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("config: failed to parse environment variables: %w", err)
	}

	if cfg.ServerPort == "" {
		cfg.ServerPort = cfg.Port
	}

	if cfg.DatabaseURL == "" {
		if cfg.DBUser == "" || cfg.DBName == "" {
			return nil, errors.New("config: DATABASE_URL or DB_USER and DB_NAME must be set")
		}
		cfg.DatabaseURL = cfg.buildDatabaseURL()
	}

	if cfg.DefaultPageSize < 1 || cfg.MaxPageSize < cfg.DefaultPageSize {
		return nil, fmt.Errorf("config: invalid page sizes (default %d, max %d)", cfg.DefaultPageSize, cfg.MaxPageSize)
	}

	return cfg, nil
}

// buildDatabaseURL assembles a postgres:// URL from the discrete DB_* variables.
func (c *Config) buildDatabaseURL() string {
	dsn := url.URL{
		Scheme:   "postgres",
		User:     url.UserPassword(c.DBUser, c.DBPassword),
		Host:     net.JoinHostPort(c.DBHost, c.DBPort),
		Path:     "/" + c.DBName,
		RawQuery: url.Values{"sslmode": []string{c.DBSSLMode}}.Encode(),
	}
	return dsn.String()
}

// IsDevelopment reports whether the server is running in development mode.
func (c *Config) IsDevelopment() bool {
	return c.Environment == "development"
}

// IsProduction reports whether the server is running in production mode.
func (c *Config) IsProduction() bool {
	return c.Environment == "production"
}

// HasRedis reports whether a Redis URL was configured.
func (c *Config) HasRedis() bool {
	return c.RedisURL != ""
}
