// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package columnspec implements the column-spec algebra and the table-spec
DSL: a small, tagged-union description of how each destination column is
derived from its source row, and a fluent builder that records those
descriptions in user-visible order.

Nothing here touches a database connection or a live row; [Row] is the
abstract, typed, nullable row shape the algebra is evaluated against, so
the algebra can be unit-tested without a driver.
*/
package columnspec

import "github.com/taibuivan/anonydb/internal/jsonlens"

// Kind discriminates the OutputColumn variants.
type Kind int

const (
	// KindSource emits the source column value unchanged.
	KindSource Kind = iota
	// KindTransformed applies fn to the source value as a string; NULL
	// propagates without invoking fn.
	KindTransformed
	// KindTransformedOpt applies fn to an optional string; it is invoked
	// even when the source value is NULL.
	KindTransformedOpt
	// KindFixed emits a constant value of a declared SQL type.
	KindFixed
	// KindJSONRewrite parses the source value as JSON, rewrites via a
	// jsonlens.Rewriter, and re-serializes; NULL propagates without
	// invoking the rewrite.
	KindJSONRewrite
)

// StringFunc transforms a non-NULL source value.
type StringFunc func(string) string

// OptStringFunc transforms a possibly-absent source value.
type OptStringFunc func(*string) *string

// OutputColumn is one destination column's derivation rule. It names the
// source column it reads from (except for KindFixed, which has no source)
// and carries exactly the fields its Kind uses.
//
// OutputColumn values are immutable once constructed; use the
// constructor functions ([Source], [Transformed], [TransformedOpt],
// [Fixed], [JSONRewrite]) rather than building the struct literal
// directly.
type OutputColumn struct {
	Kind Kind

	// Name is the destination column name, and — for every kind except
	// KindFixed — also the source column it is derived from.
	Name string

	StringFn    StringFunc
	OptStringFn OptStringFunc

	// FixedValue and FixedSQLType back KindFixed; FixedValue == nil means
	// a SQL NULL constant.
	FixedValue   *string
	FixedSQLType string

	// JSONRewriter backs KindJSONRewrite.
	JSONRewriter jsonlens.Rewriter
}

// Source emits the named source column's value unchanged, preserving its
// native SQL type.
func Source(name string) OutputColumn {
	return OutputColumn{Kind: KindSource, Name: name}
}

// Transformed applies fn to the named source column's value. If the
// source value is SQL NULL, the output is SQL NULL of the source column's
// type and fn is never invoked; otherwise the output is typed TEXT.
func Transformed(name string, fn StringFunc) OutputColumn {
	return OutputColumn{Kind: KindTransformed, Name: name, StringFn: fn}
}

// TransformedOpt applies fn to the named source column's value,
// including when it is SQL NULL (represented as a nil *string). The
// output is always typed TEXT.
func TransformedOpt(name string, fn OptStringFunc) OutputColumn {
	return OutputColumn{Kind: KindTransformedOpt, Name: name, OptStringFn: fn}
}

// Fixed emits a constant value of the given declared SQL type. value ==
// nil emits SQL NULL. name is the destination column the constant is
// written to (and what the coverage validator counts as addressed);
// Fixed columns have no source column to read.
func Fixed(name string, value *string, sqlType string) OutputColumn {
	return OutputColumn{Kind: KindFixed, Name: name, FixedValue: value, FixedSQLType: sqlType}
}

// JSONRewrite parses the named source column as JSON, applies rewriter,
// and re-serializes. If the source value is SQL NULL, the output is SQL
// NULL and the rewrite is never attempted. The output is always typed
// JSONB.
func JSONRewrite(name string, rewriter jsonlens.Rewriter) OutputColumn {
	return OutputColumn{Kind: KindJSONRewrite, Name: name, JSONRewriter: rewriter}
}
