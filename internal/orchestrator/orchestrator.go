// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package orchestrator wires every other component into one end-to-end copy
run: it reads schema metadata once, validates the user's spec map,
computes dependency levels and effective filters, then drives the copier
table by table in dependency order.

Architecture:

  - DBCopier: the single entry point, holding the source/target pools and
    the tuning knobs passed down to [copier.Copier].
  - Run lock: an optional Redis mutex acquired before any work starts, so
    two operators cannot race against the same target database.
  - Manifest: a read-only audit record built after the run completes,
    optionally signed into a JWT receipt.

None of this participates in the copy algebra itself (4.A-4.J) — it is
pure sequencing and bookkeeping around it.
*/
package orchestrator

import (
	stdctx "context"
	"errors"
	"log/slog"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"
	"golang.org/x/time/rate"

	"github.com/taibuivan/anonydb/internal/catalog"
	"github.com/taibuivan/anonydb/internal/columnspec"
	"github.com/taibuivan/anonydb/internal/copier"
	"github.com/taibuivan/anonydb/internal/coverage"
	"github.com/taibuivan/anonydb/internal/filterprop"
	"github.com/taibuivan/anonydb/internal/platform/apperr"
	"github.com/taibuivan/anonydb/internal/platform/manifest"
	"github.com/taibuivan/anonydb/internal/platform/migration"
	"github.com/taibuivan/anonydb/internal/platform/runlock"
	"github.com/taibuivan/anonydb/internal/toposort"
	"github.com/taibuivan/anonydb/pkg/slice"
)

// defaultLockTTL bounds how long a run may hold the distributed run lock
// before a crashed process releases it automatically.
const defaultLockTTL = 2 * time.Hour

// TableRequest is one user-addressed table: its spec and whether it is
// skipped entirely (counted as 0, never coverage-validated).
type TableRequest struct {
	Table   catalog.TableIdentity
	Spec    columnspec.TableSpec
	Skipped bool
}

// DBCopier drives one complete copy run from a source database to a
// target database.
type DBCopier struct {
	source *pgxpool.Pool
	target *pgxpool.Pool
	redis  *redis.Client
	logger *slog.Logger

	migrationPath  string
	manifestSigner *manifest.Signer
	copierOpts     []copier.Option
}

// Option configures a DBCopier.
type Option func(*DBCopier)

// WithMigrationPath runs golang-migrate's RunUp against the target
// database before any metadata is read.
func WithMigrationPath(path string) Option {
	return func(d *DBCopier) { d.migrationPath = path }
}

// WithRunLock backs the distributed run lock with client. A nil client
// (no Redis configured) leaves locking disabled.
func WithRunLock(client *redis.Client) Option {
	return func(d *DBCopier) { d.redis = client }
}

// WithManifestSigner signs the run's manifest into a JWT receipt. Without
// this option the manifest is still built, just left unsigned.
func WithManifestSigner(signer *manifest.Signer) Option {
	return func(d *DBCopier) { d.manifestSigner = signer }
}

// WithFetchSize and WithBatchSize and WithRateLimiter forward tuning to
// every per-table [copier.Copier].
func WithFetchSize(n int) Option {
	return func(d *DBCopier) { d.copierOpts = append(d.copierOpts, copier.WithFetchSize(n)) }
}

func WithBatchSize(n int) Option {
	return func(d *DBCopier) { d.copierOpts = append(d.copierOpts, copier.WithBatchSize(n)) }
}

func WithRateLimiter(l *rate.Limiter) Option {
	return func(d *DBCopier) { d.copierOpts = append(d.copierOpts, copier.WithRateLimiter(l)) }
}

// New returns a DBCopier reading schema and rows from source and writing
// into target.
func New(source, target *pgxpool.Pool, logger *slog.Logger, opts ...Option) *DBCopier {
	d := &DBCopier{source: source, target: target, logger: logger}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

// Run executes one complete copy following spec.md §4.K's six steps, plus
// the ambient migration/lock/manifest steps layered around them. It
// returns the per-table row count map, the run's (possibly unsigned)
// manifest, and any error.
func (d *DBCopier) Run(ctx stdctx.Context, schema string, requests []TableRequest) (map[string]int64, *manifest.SignedManifest, error) {
	startedAt := time.Now()

	targetDB := d.target.Config().ConnConfig.Database
	lock, err := runlock.AcquireOptional(ctx, d.redis, targetDB, defaultLockTTL, d.logger)
	if err != nil {
		return nil, nil, err
	}
	defer func() {
		if lock != nil {
			if releaseErr := lock.Release(ctx); releaseErr != nil {
				d.logger.Error("orchestrator: failed to release run lock", slog.Any("error", releaseErr))
			}
		}
	}()

	if d.migrationPath != "" {
		dsn := d.target.Config().ConnConfig.ConnString()
		if err := migration.RunUp(dsn, d.migrationPath, d.logger); err != nil {
			return nil, nil, apperr.DriverError(targetDB, err)
		}
	}

	reflector := catalog.New(d.source)

	// Step 1: read metadata once.
	tables, err := reflector.GetTables(ctx, schema)
	if err != nil {
		return nil, nil, apperr.DriverError(schema, err)
	}
	fks, err := reflector.GetForeignKeys(ctx, schema)
	if err != nil {
		return nil, nil, apperr.DriverError(schema, err)
	}

	metadata := make(map[catalog.TableIdentity]coverage.TableMetadata, len(tables))
	for _, t := range tables {
		cols, err := reflector.GetColumns(ctx, t)
		if err != nil {
			return nil, nil, apperr.DriverError(t.String(), err)
		}
		pk, err := reflector.GetPrimaryKey(ctx, t)
		if err != nil {
			return nil, nil, apperr.DriverError(t.String(), err)
		}

		var tableFKs []catalog.ForeignKey
		for _, fk := range fks {
			if fk.Child == t {
				tableFKs = append(tableFKs, fk)
			}
		}

		metadata[t] = coverage.TableMetadata{Columns: cols, PrimaryKey: pk, ForeignKeys: tableFKs}
	}

	specs := make(map[catalog.TableIdentity]columnspec.TableSpec, len(requests))
	skipped := make(map[catalog.TableIdentity]bool, len(requests))
	rawFilters := make(filterprop.RawFilters, len(requests))
	for _, req := range requests {
		if req.Skipped {
			skipped[req.Table] = true
			continue
		}
		specs[req.Table] = req.Spec
		if req.Spec.HasWhere {
			rawFilters[req.Table] = req.Spec.WhereClause
		}
	}

	// Step 2: validate coverage before any DB write.
	if err := coverage.Validate(tables, metadata, specs, skipped); err != nil {
		return nil, nil, err
	}

	// Step 3: dependency levels over the full non-skipped table set.
	var activeTables []catalog.TableIdentity
	for _, t := range tables {
		if !skipped[t] {
			activeTables = append(activeTables, t)
		}
	}
	levels, err := toposort.Levels(activeTables, fks)
	if err != nil {
		var cycleErr *toposort.CycleError
		if errors.As(err, &cycleErr) {
			names := slice.Map(cycleErr.Tables, func(t catalog.TableIdentity) string { return t.String() })
			return nil, nil, apperr.CycleDetected(names)
		}
		return nil, nil, err
	}

	// Step 4: effective filters across the full set.
	effective := filterprop.Compute(levels, fks, rawFilters)

	// Step 5/6: copy in level order, lexicographic within a level.
	tableCopier := copier.New(d.source, d.target, d.copierOpts...)
	counts := make(map[string]int64, len(tables))

	for _, level := range levels {
		for _, t := range level {
			m := metadata[t]
			n, err := tableCopier.Copy(ctx, t, specs[t], effective[t], m.Columns, m.PrimaryKey, m.ForeignKeys)
			if err != nil {
				return counts, nil, err
			}
			counts[t.String()] = n
		}
	}
	for t := range skipped {
		counts[t.String()] = 0
	}

	finishedAt := time.Now()
	rm := manifest.New(schema, schema, startedAt, finishedAt, counts)

	if d.manifestSigner == nil {
		return counts, &manifest.SignedManifest{RunManifest: rm}, nil
	}

	signed, err := d.manifestSigner.Sign(rm)
	if err != nil {
		return counts, nil, err
	}
	return counts, signed, nil
}
