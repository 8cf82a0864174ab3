// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package copier

import (
	stdctx "context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"golang.org/x/sync/errgroup"
	"golang.org/x/time/rate"

	"github.com/taibuivan/anonydb/internal/catalog"
	"github.com/taibuivan/anonydb/internal/columnspec"
	"github.com/taibuivan/anonydb/internal/platform/apperr"
)

const (
	defaultFetchSize = 1000
	defaultBatchSize = 1000
)

// destRow is one destination row's values, already stringified per
// column, with a nil entry meaning SQL NULL.
type destRow []*string

// Copier streams rows from one table in the source database, applies
// the column-spec algebra, and writes batched INSERTs into the target.
// A single Copier instance is reused across tables within a run; it
// holds no per-table state between calls to Copy.
type Copier struct {
	source *pgxpool.Pool
	target *pgxpool.Pool

	fetchSize int
	batchSize int
	limiter   *rate.Limiter
}

// Option configures a Copier.
type Option func(*Copier)

// WithFetchSize overrides the recorded fetch size (default 1000 rows). The
// source rows are read through a single streamed Query rather than a
// server-side cursor, so this value does not change how rows are fetched.
func WithFetchSize(n int) Option { return func(c *Copier) { c.fetchSize = n } }

// WithBatchSize overrides the default INSERT batch size (1000 rows).
func WithBatchSize(n int) Option { return func(c *Copier) { c.batchSize = n } }

// WithRateLimiter throttles batch INSERTs against the target, taking one
// limiter token per batch — an operational safety valve, not a semantic
// behavior. Unlimited by default.
func WithRateLimiter(l *rate.Limiter) Option { return func(c *Copier) { c.limiter = l } }

// New returns a Copier reading from source and writing to target.
func New(source, target *pgxpool.Pool, opts ...Option) *Copier {
	c := &Copier{source: source, target: target, fetchSize: defaultFetchSize, batchSize: defaultBatchSize}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Copy streams table per the table-copier design, applying spec and
// effectiveFilter, and returns the count of rows consumed from the
// source — not necessarily the count inserted, which may be fewer under
// a DoNothing conflict policy.
func (c *Copier) Copy(
	ctx stdctx.Context,
	table catalog.TableIdentity,
	spec columnspec.TableSpec,
	effectiveFilter string,
	columns []catalog.ColumnInfo,
	pk catalog.PrimaryKey,
	fks []catalog.ForeignKey,
) (int64, error) {
	outputs, err := ResolveOutputs(table.String(), spec.Outputs, columns, pk, fks)
	if err != nil {
		return 0, err
	}

	sourceCols := SourceColumns(outputs, columns)
	selectQuery := BuildSelectQuery(table, sourceCols, effectiveFilter)

	destColumns := make([]string, len(outputs))
	for i, oc := range outputs {
		destColumns[i] = oc.Name
	}
	conflictSuffix := ConflictSuffix(spec.Conflict, pk, destColumns)

	selfReferencing := hasSelfFK(table, fks)

	writer, closeWriter, err := c.beginWriter(ctx, selfReferencing)
	if err != nil {
		return 0, apperr.DriverError(table.String(), err)
	}

	batches := make(chan []destRow, 2)
	g, gctx := errgroup.WithContext(ctx)

	var consumed int64
	g.Go(func() error {
		defer close(batches)
		n, err := c.fetch(gctx, table, selectQuery, outputs, columns, batches)
		consumed = n
		return err
	})

	g.Go(func() error {
		return c.write(gctx, writer, table, destColumns, conflictSuffix, batches)
	})

	if err := g.Wait(); err != nil {
		closeWriter(err)
		return consumed, err
	}

	if err := closeWriter(nil); err != nil {
		return consumed, apperr.DriverError(table.String(), err)
	}

	return consumed, nil
}

func hasSelfFK(table catalog.TableIdentity, fks []catalog.ForeignKey) bool {
	for _, fk := range fks {
		if fk.SelfReferencing && fk.Child == table {
			return true
		}
	}
	return false
}

// execer is the subset of *pgxpool.Pool / pgx.Tx the writer needs.
type execer interface {
	Exec(ctx stdctx.Context, sql string, args ...any) (pgconnCommandTag, error)
}

// pgconnCommandTag avoids importing pgconn just for its return type;
// both *pgxpool.Pool.Exec and pgx.Tx.Exec return pgconn.CommandTag,
// which this package never inspects.
type pgconnCommandTag = interface{}

// beginWriter opens a self-FK deferred-constraint transaction when
// selfReferencing, or returns the target pool directly otherwise. The
// returned close function commits (nil cause) or rolls back (non-nil
// cause) the transaction; it is a no-op when no transaction was opened.
func (c *Copier) beginWriter(ctx stdctx.Context, selfReferencing bool) (execer, func(cause error) error, error) {
	if !selfReferencing {
		return poolExecer{c.target}, func(error) error { return nil }, nil
	}

	tx, err := c.target.Begin(ctx)
	if err != nil {
		return nil, nil, err
	}

	if _, err := tx.Exec(ctx, "SET CONSTRAINTS ALL DEFERRED"); err != nil {
		_ = tx.Rollback(ctx)
		return nil, nil, err
	}

	closeFn := func(cause error) error {
		if cause != nil {
			return tx.Rollback(ctx)
		}
		return tx.Commit(ctx)
	}

	return txExecer{tx}, closeFn, nil
}

type poolExecer struct{ pool *pgxpool.Pool }

func (p poolExecer) Exec(ctx stdctx.Context, sql string, args ...any) (pgconnCommandTag, error) {
	return p.pool.Exec(ctx, sql, args...)
}

type txExecer struct{ tx pgx.Tx }

func (t txExecer) Exec(ctx stdctx.Context, sql string, args ...any) (pgconnCommandTag, error) {
	return t.tx.Exec(ctx, sql, args...)
}

// fetch streams table rows from the source through one simple-protocol
// Query whose rows are read as they arrive (no server-side cursor, so
// fetchSize is not applied), evaluates the column-spec algebra per row,
// and sends batchSize-sized destination-row batches to batches.
func (c *Copier) fetch(
	ctx stdctx.Context,
	table catalog.TableIdentity,
	selectQuery string,
	outputs []columnspec.OutputColumn,
	columns []catalog.ColumnInfo,
	batches chan<- []destRow,
) (int64, error) {
	rows, err := c.source.Query(ctx, selectQuery, pgx.QueryExecModeSimpleProtocol)
	if err != nil {
		return 0, apperr.DriverError(table.String(), err)
	}
	defer rows.Close()

	fields := rows.FieldDescriptions()

	var consumed int64
	batch := make([]destRow, 0, c.batchSize)

	for rows.Next() {
		// Simple-protocol results are always in text format, so the raw
		// bytes are each value's text form; nil marks SQL NULL.
		rawText := rows.RawValues()
		raw := make([]any, len(rawText))
		for i, b := range rawText {
			if b != nil {
				raw[i] = string(b)
			}
		}

		adapter := newRowAdapter(fields, raw, columns)
		dr := make(destRow, len(outputs))
		for i, oc := range outputs {
			_, value, err := columnspec.Evaluate(oc, adapter)
			if err != nil {
				if oc.Kind == columnspec.KindJSONRewrite {
					return consumed, apperr.JSONMalformed(table.String(), oc.Name, err)
				}
				return consumed, apperr.DriverError(table.String(), err)
			}
			dr[i] = value
		}

		batch = append(batch, dr)
		consumed++

		if len(batch) >= c.batchSize {
			select {
			case batches <- batch:
			case <-ctx.Done():
				return consumed, ctx.Err()
			}
			batch = make([]destRow, 0, c.batchSize)
		}
	}
	if err := rows.Err(); err != nil {
		return consumed, apperr.DriverError(table.String(), err)
	}

	if len(batch) > 0 {
		select {
		case batches <- batch:
		case <-ctx.Done():
			return consumed, ctx.Err()
		}
	}

	return consumed, nil
}

// write drains batches and issues one multi-VALUES INSERT per batch.
func (c *Copier) write(
	ctx stdctx.Context,
	writer execer,
	table catalog.TableIdentity,
	destColumns []string,
	conflictSuffix string,
	batches <-chan []destRow,
) error {
	for batch := range batches {
		if c.limiter != nil {
			if err := c.limiter.Wait(ctx); err != nil {
				return err
			}
		}

		query := BuildInsertQuery(table, destColumns, len(batch), conflictSuffix)
		args := flatten(batch)

		if _, err := writer.Exec(ctx, query, args...); err != nil {
			return apperr.DriverError(table.String(), err)
		}
	}
	return nil
}

func flatten(batch []destRow) []any {
	args := make([]any, 0, len(batch)*len(batch[0]))
	for _, row := range batch {
		for _, v := range row {
			if v == nil {
				args = append(args, nil)
			} else {
				args = append(args, *v)
			}
		}
	}
	return args
}
