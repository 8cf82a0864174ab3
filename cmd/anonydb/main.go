// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Anonydb is the entry point for running one anonymized copy from a source
PostgreSQL database to a target PostgreSQL database.

Usage:

	go run ./cmd/anonydb

The environment variables are:

	SOURCE_DATABASE_URL    Source Postgres connection string (required)
	TARGET_DATABASE_URL    Target Postgres connection string (required)
	SCHEMA                 Source schema to copy (default: public)
	MIGRATION_PATH         SQL migrations applied to target before copying
	FETCH_SIZE             Recorded source fetch size; rows are streamed by one query, not a cursor (default: 1000)
	BATCH_SIZE             Target INSERT batch size (default: 1000)
	INSERT_RATE_LIMIT      Target INSERT batches/sec, 0 disables (default: 0)
	REDIS_URL              Backs the distributed run lock, optional
	MANIFEST_PRIVATE_KEY_PATH, MANIFEST_PUBLIC_KEY_PATH
	                       RSA keypair signing the run manifest, optional
	OPS_PORT               Ops HTTP surface port, unset disables it

Startup Sequence:

 1. Logger: Initialize structured JSON logging (slog).
 2. Config: Load and validate environment variables.
 3. Storage: Open the source and target Postgres pools, and Redis if
    a run lock is configured.
 4. Orchestrator: Wire the orchestrator's tuning, lock, and signer options.
 5. Ops: Optionally serve /healthz, /readyz, /status for the run's
    duration.
 6. Run: Build the table-by-table anonymization plan (see plan.go) and
    drive the orchestrator through one complete copy.

No anonymization logic lives here — that is the orchestrator's job. This
file is strictly for wiring.
*/
package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/redis/go-redis/v9"
	"golang.org/x/time/rate"

	"github.com/taibuivan/anonydb/internal/api"
	"github.com/taibuivan/anonydb/internal/orchestrator"
	"github.com/taibuivan/anonydb/internal/platform/config"
	"github.com/taibuivan/anonydb/internal/platform/constants"
	"github.com/taibuivan/anonydb/internal/platform/dbconn"
	"github.com/taibuivan/anonydb/internal/platform/manifest"
	pgstore "github.com/taibuivan/anonydb/internal/platform/postgres"
	redisstore "github.com/taibuivan/anonydb/internal/platform/redis"
)

func main() {
	if err := run(); err != nil {
		slog.Error("copy_run_failed", slog.Any("error", err))
		os.Exit(1)
	}
}

func run() error {
	// # 1. Logger
	rawLog := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	}))
	log := rawLog.With(slog.String("app", constants.AppName))
	slog.SetDefault(log)

	log.Info("anonydb_initializing")

	// # 2. Configuration
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("load configuration: %w", err)
	}

	if cfg.Debug {
		debugLog := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
			Level: slog.LevelDebug,
		}))
		log = debugLog.With(slog.String("app", constants.AppName))
		slog.SetDefault(log)
		log.Debug("debug_logging_enabled")
	}

	log.Info("configuration_loaded",
		slog.String("environment", cfg.Environment),
		slog.String("schema", cfg.Schema),
	)

	startupCtx, startupCancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer startupCancel()

	// # 3. Storage
	pools, err := dbconn.Open(startupCtx, cfg.SourceDatabaseURL, cfg.TargetDatabaseURL, log)
	if err != nil {
		return fmt.Errorf("open database pools: %w", err)
	}
	defer func() {
		log.Info("closing database pools")
		pools.Close()
	}()

	var rdb *redis.Client
	if cfg.RedisURL != "" {
		rdb, err = redisstore.NewClient(startupCtx, cfg.RedisURL, log)
		if err != nil {
			return fmt.Errorf("connect to redis: %w", err)
		}
		defer func() {
			if cerr := rdb.Close(); cerr != nil {
				log.Error("redis close error", slog.Any("error", cerr))
			}
		}()
	}

	var signer *manifest.Signer
	if cfg.ManifestPrivKeyPath != "" {
		signer, err = manifest.NewSigner(cfg.ManifestPrivKeyPath)
		if err != nil {
			return fmt.Errorf("load manifest signing key: %w", err)
		}
	}

	// # 4. Orchestrator wiring
	opts := []orchestrator.Option{
		orchestrator.WithFetchSize(cfg.FetchSize),
		orchestrator.WithBatchSize(cfg.BatchSize),
	}
	if cfg.MigrationPath != "" {
		opts = append(opts, orchestrator.WithMigrationPath(cfg.MigrationPath))
	}
	if rdb != nil {
		opts = append(opts, orchestrator.WithRunLock(rdb))
	}
	if signer != nil {
		opts = append(opts, orchestrator.WithManifestSigner(signer))
	}
	if cfg.InsertRateLimit > 0 {
		opts = append(opts, orchestrator.WithRateLimiter(rate.NewLimiter(rate.Limit(cfg.InsertRateLimit), cfg.InsertRateLimit)))
	}

	copier := orchestrator.New(pools.Source, pools.Target, log, opts...)

	lastRun := &api.LastRun{}

	// # 5. Ops surface
	var server *api.Server
	if cfg.OpsPort != "" {
		liveness, readiness := api.NewHealthHandlers(api.HealthDependencies{
			CheckSource:  func() error { return pgstore.Ping(context.Background(), pools.Source) },
			CheckTarget:  func() error { return pgstore.Ping(context.Background(), pools.Target) },
			CheckRunLock: redisCheck(rdb),
		}, log)

		server = api.NewServer(cfg.OpsPort, log, api.Handlers{
			Liveness:  liveness,
			Readiness: readiness,
			LastRun:   lastRun,
		})

		go func() {
			if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				log.Error("ops_server_crash", slog.Any("error", err))
			}
		}()
	}

	// # 6. Run the copy
	runCtx, runCancel := context.WithCancel(context.Background())
	defer runCancel()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGTERM, syscall.SIGINT)
	go func() {
		sig := <-quit
		log.Info("shutdown_signal_received", slog.String("signal", sig.String()))
		runCancel()
	}()

	log.Info("copy_run_starting", slog.String("schema", cfg.Schema))

	counts, signed, err := copier.Run(runCtx, cfg.Schema, buildPlan())
	if err != nil {
		return fmt.Errorf("copy run failed: %w", err)
	}
	lastRun.Set(signed)

	var totalRows int64
	for table, n := range counts {
		totalRows += n
		log.Info("table_copied", slog.String("table", table), slog.Int64("rows", n))
	}
	log.Info("copy_run_complete",
		slog.Int("tables", len(counts)),
		slog.Int64("total_rows", totalRows),
	)

	if server != nil {
		log.Info("ops_server_shutting_down", slog.Duration("timeout", constants.ShutdownTimeout))
		if err := server.Shutdown(constants.ShutdownTimeout); err != nil {
			return fmt.Errorf("ops_server_shutdown_failed: %w", err)
		}
	}

	return nil
}

// redisCheck returns nil when no run-lock client is configured, so
// readiness simply omits the check rather than reporting a false failure.
func redisCheck(rdb *redis.Client) func() error {
	if rdb == nil {
		return nil
	}
	return func() error { return redisstore.Ping(context.Background(), rdb) }
}
