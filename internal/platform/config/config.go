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

Architecture:

  - Immutability: Once loaded, configuration is read-only.
  - DI-Friendly: Passed to core components (DB, Redis) via constructors.
  - Zero Hidden State: No global variables are used to store config.

This ensures the tool is Twelve-Factor compliant by storing config in the env.
*/
package config

import (
	"fmt"

	"github.com/caarlos0/env/v11"
)

// # Configuration Schema

// Config holds all runtime configuration for a copy run.
type Config struct {

	// Environment settings
	Environment string `env:"ENVIRONMENT"  envDefault:"development"`
	Debug       bool   `env:"DEBUG"        envDefault:"false"`

	// Source and target relational databases (PostgreSQL).
	SourceDatabaseURL string `env:"SOURCE_DATABASE_URL,required"`
	TargetDatabaseURL string `env:"TARGET_DATABASE_URL,required"`

	// Schema is the source schema reflected and copied.
	Schema string `env:"SCHEMA" envDefault:"public"`

	// MigrationPath, if set, is the filesystem path to SQL migrations
	// applied to the target database before any metadata is read.
	MigrationPath string `env:"MIGRATION_PATH"`

	// Streaming/batching tuning.
	FetchSize int `env:"FETCH_SIZE" envDefault:"1000"`
	BatchSize int `env:"BATCH_SIZE" envDefault:"1000"`

	// InsertRateLimit caps INSERT batches per second against the target;
	// zero (the default) disables throttling.
	InsertRateLimit int `env:"INSERT_RATE_LIMIT" envDefault:"0"`

	// RedisURL, if set, backs the distributed run lock. Locking is
	// skipped (with a logged warning) when unset.
	RedisURL string `env:"REDIS_URL"`

	// Manifest signing keys. Signing is enabled when the private key path
	// is set; unset, the manifest is still built and returned unsigned.
	// The public key path is loaded here but not read by the copy run.
	ManifestPrivKeyPath string `env:"MANIFEST_PRIVATE_KEY_PATH"`
	ManifestPubKeyPath  string `env:"MANIFEST_PUBLIC_KEY_PATH"`

	// OpsPort, if set, starts the ops-facing /healthz, /readyz, /status
	// HTTP surface on this port. Unset disables it — a one-shot CLI run
	// has no one listening.
	OpsPort string `env:"OPS_PORT"`
}

// # Configuration Loading

// Load parses environment variables into a [Config] struct.
func Load() (*Config, error) {

	// Initialize an empty config struct
	cfg := &Config{}

	// Use the 'env' package to map environment variables to struct fields.
	// This will fail if any field marked with 'required' is missing.
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("config: failed to parse environment variables: %w", err)
	}

	return cfg, nil
}

// IsDevelopment reports whether the server is running in development mode.
func (c *Config) IsDevelopment() bool {
	return c.Environment == "development"
}

// IsProduction reports whether the server is running in production mode.
func (c *Config) IsProduction() bool {
	return c.Environment == "production"
}
