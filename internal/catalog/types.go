// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package catalog reflects live PostgreSQL schema metadata — tables,
columns, primary keys, and foreign keys — directly from pg_catalog
rather than information_schema, to get composite-key ordinals and type
OIDs cheaply in a single pass. It never caches across calls: every Get*
method issues a fresh query against the live connection, since the
orchestrator reads metadata exactly once per run and the schema must
reflect whatever state the source database is in at that moment.
*/
package catalog

import "strings"

// TableIdentity names a table by schema and unquoted name. Equality is
// case-sensitive, matching PostgreSQL's quoted-identifier semantics.
type TableIdentity struct {
	Schema string
	Name   string
}

// String renders the qualified name for diagnostics and map keys —
// unquoted, never safe to interpolate into generated SQL. Use [Quoted]
// for that.
func (t TableIdentity) String() string {
	return t.Schema + "." + t.Name
}

// Quoted renders the qualified name with both identifiers double-quoted,
// as required everywhere this name is interpolated into generated SQL —
// the source SELECT, the target INSERT, and any propagated-filter
// subquery referencing the table.
func (t TableIdentity) Quoted() string {
	return QuoteIdent(t.Schema) + "." + QuoteIdent(t.Name)
}

// QuoteIdent double-quotes a SQL identifier, escaping any embedded double
// quote. Identifiers come from reflected schema metadata or user-declared
// constants, never from the values being copied, so this is identifier
// quoting, not value escaping.
func QuoteIdent(ident string) string {
	return `"` + strings.ReplaceAll(ident, `"`, `""`) + `"`
}

// QuoteIdents quotes every identifier in cols, preserving order.
func QuoteIdents(cols []string) []string {
	quoted := make([]string, len(cols))
	for i, c := range cols {
		quoted[i] = QuoteIdent(c)
	}
	return quoted
}

// ColumnInfo describes one column of a reflected table. Primary-key
// membership and foreign-key role are carried separately, in
// [PrimaryKey] and [ForeignKey].
type ColumnInfo struct {
	Name     string
	SQLType  string
	Nullable bool
	Ordinal  int
}

// PrimaryKey is the ordered list of a table's primary-key columns. It is
// empty for a heap table with no declared primary key.
type PrimaryKey struct {
	Columns []string
}

// ForeignKey is a directed edge from a child table's columns to a
// parent table's columns. Composite keys are represented as
// same-length, order-corresponding column lists. SelfReferencing is set
// when Child and Parent name the same table.
type ForeignKey struct {
	ConstraintName string

	Child        TableIdentity
	ChildColumns []string

	Parent        TableIdentity
	ParentColumns []string

	SelfReferencing bool
}
