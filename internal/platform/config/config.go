// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package config handles application-wide settings and environment parsing.

It leverages 'caarlos0/env' to map OS environment variables into a strongly-typed
Go struct, providing early validation and default values.

Usage:

	cfg, err := config.Load()
	if err != nil {
	    log.Fatal(err)
	}

Once loaded, configuration is read-only and passed to components via constructors.
*/
package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"
)

// Catalog sources understood by [Config.CatalogSource].
const (
	CatalogEmbedded = "embedded"
	CatalogFile     = "file"
	CatalogPostgres = "postgres"
	CatalogSQLite   = "sqlite"
)

// minProductionSecret is the shortest HS256 secret accepted in production.
const minProductionSecret = 32

// Session stores understood by [Config.SessionStore].
const (
	SessionMemory = "memory"
	SessionRedis  = "redis"
)

// # Configuration Schema

// Config holds all runtime configuration for the atlas API server.
type Config struct {

	// Server settings
	ServerPort  string `env:"SERVER_PORT"  envDefault:"8080"`
	Environment string `env:"ENVIRONMENT"  envDefault:"development"`
	Debug       bool   `env:"DEBUG"        envDefault:"false"`

	// Catalog source. The catalog is read once at startup and never reloaded.
	CatalogSource string `env:"CATALOG_SOURCE" envDefault:"embedded"`
	CatalogFile   string `env:"CATALOG_FILE"`

	// Relational Database (PostgreSQL), used when CatalogSource is "postgres".
	DatabaseURL   string `env:"DATABASE_URL"`
	MigrationPath string `env:"MIGRATION_PATH" envDefault:"./data/migrations"`

	// SQLite bundle, used when CatalogSource is "sqlite".
	SQLitePath string `env:"SQLITE_PATH" envDefault:"./data/atlas.db"`

	// Navigation sessions
	SessionStore  string        `env:"SESSION_STORE"  envDefault:"memory"`
	SessionSecret string        `env:"SESSION_SECRET,required,notEmpty"`
	SessionTTL    time.Duration `env:"SESSION_TTL"    envDefault:"2h"`
	RedisURL      string        `env:"REDIS_URL"`

	// Spatial layout
	LayoutRadius float64 `env:"LAYOUT_RADIUS" envDefault:"15"`

	// Cross-Origin Resource Sharing
	ExtraOrigins string `env:"EXTRA_ORIGINS"`
}

// # Configuration Loading

// Load parses environment variables into a [Config] struct and validates
// the cross-field rules that struct tags cannot express.
func Load() (*Config, error) {
	cfg := &Config{}

	// This will fail if any field marked with 'required' is missing.
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("config: failed to parse environment variables: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Validate checks that the selected backends have the settings they need.
func (c *Config) Validate() error {
	var errs []error

	switch c.CatalogSource {
	case CatalogEmbedded:
	case CatalogFile:
		if c.CatalogFile == "" {
			errs = append(errs, errors.New("CATALOG_FILE is required when CATALOG_SOURCE=file"))
		}
	case CatalogPostgres:
		if c.DatabaseURL == "" {
			errs = append(errs, errors.New("DATABASE_URL is required when CATALOG_SOURCE=postgres"))
		}
	case CatalogSQLite:
		if c.SQLitePath == "" {
			errs = append(errs, errors.New("SQLITE_PATH is required when CATALOG_SOURCE=sqlite"))
		}
	default:
		errs = append(errs, fmt.Errorf("unknown CATALOG_SOURCE %q", c.CatalogSource))
	}

	switch c.SessionStore {
	case SessionMemory:
	case SessionRedis:
		if c.RedisURL == "" {
			errs = append(errs, errors.New("REDIS_URL is required when SESSION_STORE=redis"))
		}
	default:
		errs = append(errs, fmt.Errorf("unknown SESSION_STORE %q", c.SessionStore))
	}

	if c.SessionTTL <= 0 {
		errs = append(errs, errors.New("SESSION_TTL must be positive"))
	}
	if c.IsProduction() && len(c.SessionSecret) < minProductionSecret {
		errs = append(errs, fmt.Errorf("SESSION_SECRET must be at least %d bytes in production", minProductionSecret))
	}
	if c.LayoutRadius <= 0 {
		errs = append(errs, errors.New("LAYOUT_RADIUS must be positive"))
	}

	if len(errs) > 0 {
		return fmt.Errorf("config: %w", errors.Join(errs...))
	}
	return nil
}

// IsDevelopment reports whether the server is running in development mode.
func (c *Config) IsDevelopment() bool {
	return c.Environment == "development"
}

// Port returns the TCP port the HTTP server listens on.
func (c *Config) Port() string {
	return c.ServerPort
}

// IsProduction reports whether the server is running in production mode.
func (c *Config) IsProduction() bool {
	return c.Environment == "production"
}

// AllowedOrigins returns the trimmed, non-empty entries of EXTRA_ORIGINS.
func (c *Config) AllowedOrigins() []string {
	var origins []string
	for _, origin := range strings.Split(c.ExtraOrigins, ",") {
		if origin = strings.TrimSpace(origin); origin != "" {
			origins = append(origins, origin)
		}
	}
	return origins
}
