package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"
)

// Config holds the application configuration.
type Config struct {
	Environment     string
	DatabaseURL     string
	InventoryDBPath string
	ReconcileGrace  time.Duration
}

// Load loads configuration from environment variables.
func Load() (*Config, error) {
	cfg := &Config{
		Environment:     os.Getenv("APP_ENV"),
		DatabaseURL:     os.Getenv("DATABASE_URL"),
		InventoryDBPath: os.Getenv("INVENTORY_DB_PATH"),
	}
	if cfg.InventoryDBPath == "" {
		cfg.InventoryDBPath = "inventory.db"
	}

	if raw := os.Getenv("RECONCILE_GRACE"); raw != "" {
		grace, err := time.ParseDuration(raw)
		if err != nil {
			return nil, fmt.Errorf("invalid RECONCILE_GRACE %q: %w", raw, err)
		}
		cfg.ReconcileGrace = grace
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks that the configuration is valid.
func (c *Config) Validate() error {
	var missing []string

	if c.Environment == "" {
		missing = append(missing, "APP_ENV")
	}
	if c.DatabaseURL == "" {
		missing = append(missing, "DATABASE_URL")
	}
	if len(missing) > 0 {
		return errors.New("missing required environment variables: " + strings.Join(missing, ", "))
	}

	if c.ReconcileGrace < 0 {
		return errors.New("RECONCILE_GRACE must not be negative")
	}
	return nil
}
