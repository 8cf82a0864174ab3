// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package dbconn opens the source and target connection pools a copy run
needs.

A copy run is the one place in the system that talks to two separate
PostgreSQL databases at once, so it wraps [postgres.NewPool] twice rather
than duplicating pool-tuning logic at the call site.
*/
package dbconn

import (
	stdctx "context"
	"fmt"
	"log/slog"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/taibuivan/anonydb/internal/platform/postgres"
)

// Pair holds the source and target pools for one run. Close releases both.
type Pair struct {
	Source *pgxpool.Pool
	Target *pgxpool.Pool
}

// Open establishes both the source and target pools. If the target pool
// fails to open, the already-opened source pool is closed before
// returning, so a caller never leaks a pool on a partial failure.
func Open(ctx stdctx.Context, sourceDSN, targetDSN string, logger *slog.Logger) (*Pair, error) {
	source, err := postgres.NewPool(ctx, sourceDSN, logger)
	if err != nil {
		return nil, fmt.Errorf("dbconn: source: %w", err)
	}

	target, err := postgres.NewPool(ctx, targetDSN, logger)
	if err != nil {
		source.Close()
		return nil, fmt.Errorf("dbconn: target: %w", err)
	}

	return &Pair{Source: source, Target: target}, nil
}

// Close releases both pools.
func (p *Pair) Close() {
	p.Source.Close()
	p.Target.Close()
}
