// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package catalog

import (
	stdctx "context"
	"fmt"

	"github.com/jackc/pgx/v5"
)

// Querier is the slice of *pgxpool.Pool the reflector needs. Accepting
// an interface rather than a concrete pool lets tests exercise the
// query-building and row-scanning logic against a pgx-compatible fake
// without a live database.
type Querier interface {
	Query(ctx stdctx.Context, sql string, args ...any) (pgx.Rows, error)
}

// Reflector reads schema metadata from pg_catalog. It holds no state
// across calls.
type Reflector struct {
	db Querier
}

// New returns a Reflector reading from db.
func New(db Querier) *Reflector {
	return &Reflector{db: db}
}

const tablesQuery = `
SELECT n.nspname, c.relname
FROM pg_class c
  JOIN pg_namespace n ON n.oid = c.relnamespace
WHERE c.relkind IN ('r', 'p')
  AND n.nspname = $1
ORDER BY c.relname`

// GetTables returns every ordinary (and partitioned-parent) table in
// schema, sorted by name.
func (r *Reflector) GetTables(ctx stdctx.Context, schema string) ([]TableIdentity, error) {
	rows, err := r.db.Query(ctx, tablesQuery, schema)
	if err != nil {
		return nil, fmt.Errorf("catalog: querying tables: %w", err)
	}
	defer rows.Close()

	var tables []TableIdentity
	for rows.Next() {
		var t TableIdentity
		if err := rows.Scan(&t.Schema, &t.Name); err != nil {
			return nil, fmt.Errorf("catalog: scanning table: %w", err)
		}
		tables = append(tables, t)
	}
	return tables, rows.Err()
}

const columnsQuery = `
SELECT a.attname,
       format_type(a.atttypid, a.atttypmod) AS column_type,
       NOT a.attnotnull AS is_nullable,
       a.attnum
FROM pg_attribute a
  JOIN pg_class c ON c.oid = a.attrelid
  JOIN pg_namespace n ON n.oid = c.relnamespace
WHERE n.nspname = $1
  AND c.relname = $2
  AND a.attnum > 0
  AND NOT a.attisdropped
ORDER BY a.attnum`

// GetColumns returns table's columns in ordinal order.
func (r *Reflector) GetColumns(ctx stdctx.Context, table TableIdentity) ([]ColumnInfo, error) {
	rows, err := r.db.Query(ctx, columnsQuery, table.Schema, table.Name)
	if err != nil {
		return nil, fmt.Errorf("catalog: querying columns of %s: %w", table, err)
	}
	defer rows.Close()

	var cols []ColumnInfo
	for rows.Next() {
		var c ColumnInfo
		if err := rows.Scan(&c.Name, &c.SQLType, &c.Nullable, &c.Ordinal); err != nil {
			return nil, fmt.Errorf("catalog: scanning column of %s: %w", table, err)
		}
		cols = append(cols, c)
	}
	return cols, rows.Err()
}

const primaryKeyQuery = `
SELECT a.attname
FROM pg_constraint cn
  JOIN pg_class c ON c.oid = cn.conrelid
  JOIN pg_namespace n ON n.oid = c.relnamespace
  JOIN unnest(cn.conkey) WITH ORDINALITY AS ord(attnum, n) ON true
  JOIN pg_attribute a ON a.attrelid = cn.conrelid AND a.attnum = ord.attnum
WHERE cn.contype = 'p'
  AND n.nspname = $1
  AND c.relname = $2
ORDER BY ord.n`

// GetPrimaryKey returns table's primary-key columns in key order. The
// result is empty, not an error, for a table with no primary key.
func (r *Reflector) GetPrimaryKey(ctx stdctx.Context, table TableIdentity) (PrimaryKey, error) {
	rows, err := r.db.Query(ctx, primaryKeyQuery, table.Schema, table.Name)
	if err != nil {
		return PrimaryKey{}, fmt.Errorf("catalog: querying primary key of %s: %w", table, err)
	}
	defer rows.Close()

	var pk PrimaryKey
	for rows.Next() {
		var col string
		if err := rows.Scan(&col); err != nil {
			return PrimaryKey{}, fmt.Errorf("catalog: scanning primary key column of %s: %w", table, err)
		}
		pk.Columns = append(pk.Columns, col)
	}
	return pk, rows.Err()
}

const foreignKeysQuery = `
SELECT cn.conname,
       n.nspname, c.relname,
       (SELECT array_agg(a.attname ORDER BY ord.n)
        FROM unnest(cn.conkey) WITH ORDINALITY AS ord(attnum, n)
        JOIN pg_attribute a ON a.attrelid = cn.conrelid AND a.attnum = ord.attnum
       ) AS child_columns,
       pn.nspname, pc.relname,
       (SELECT array_agg(a.attname ORDER BY ord.n)
        FROM unnest(cn.confkey) WITH ORDINALITY AS ord(attnum, n)
        JOIN pg_attribute a ON a.attrelid = cn.confrelid AND a.attnum = ord.attnum
       ) AS parent_columns
FROM pg_constraint cn
  JOIN pg_class c ON c.oid = cn.conrelid
  JOIN pg_namespace n ON n.oid = c.relnamespace
  JOIN pg_class pc ON pc.oid = cn.confrelid
  JOIN pg_namespace pn ON pn.oid = pc.relnamespace
WHERE cn.contype = 'f'
  AND n.nspname = $1
ORDER BY c.relname, cn.conname`

// GetForeignKeys returns every foreign key whose child table lives in
// schema, including self-referencing ones (flagged via
// [ForeignKey.SelfReferencing], never filtered out).
func (r *Reflector) GetForeignKeys(ctx stdctx.Context, schema string) ([]ForeignKey, error) {
	rows, err := r.db.Query(ctx, foreignKeysQuery, schema)
	if err != nil {
		return nil, fmt.Errorf("catalog: querying foreign keys: %w", err)
	}
	defer rows.Close()

	var fks []ForeignKey
	for rows.Next() {
		var fk ForeignKey
		if err := rows.Scan(
			&fk.ConstraintName,
			&fk.Child.Schema, &fk.Child.Name, &fk.ChildColumns,
			&fk.Parent.Schema, &fk.Parent.Name, &fk.ParentColumns,
		); err != nil {
			return nil, fmt.Errorf("catalog: scanning foreign key: %w", err)
		}
		fk.SelfReferencing = fk.Child == fk.Parent
		fks = append(fks, fk)
	}
	return fks, rows.Err()
}
