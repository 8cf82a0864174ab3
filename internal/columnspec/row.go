// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package columnspec

import "fmt"

// Row is the abstract source row the algebra evaluates against: ordered,
// typed, nullable column values addressed by name. The table copier
// (component J) adapts a pgx.Rows scan into this shape; the algebra
// itself never touches a driver.
type Row interface {
	// SQLType returns the declared SQL type of column, as reported by
	// the metadata reflector.
	SQLType(column string) string
	// String returns column's value as a string and whether it is SQL
	// NULL. When isNull is true, value is the zero string and must be
	// ignored.
	String(column string) (value string, isNull bool)
}

// Evaluate derives one destination column's (sqlType, value) pair from
// oc and row, per the column-spec algebra in spec.md §4.D. A nil value
// with a non-empty sqlType means SQL NULL of that type.
func Evaluate(oc OutputColumn, row Row) (sqlType string, value *string, err error) {
	switch oc.Kind {
	case KindSource:
		t := row.SQLType(oc.Name)
		v, isNull := row.String(oc.Name)
		if isNull {
			return t, nil, nil
		}
		return t, &v, nil

	case KindTransformed:
		if oc.StringFn == nil {
			return "", nil, fmt.Errorf("columnspec: Transformed column %q has no transform function", oc.Name)
		}
		t := row.SQLType(oc.Name)
		v, isNull := row.String(oc.Name)
		if isNull {
			return t, nil, nil
		}
		out := oc.StringFn(v)
		return "TEXT", &out, nil

	case KindTransformedOpt:
		if oc.OptStringFn == nil {
			return "", nil, fmt.Errorf("columnspec: TransformedOpt column %q has no transform function", oc.Name)
		}
		v, isNull := row.String(oc.Name)
		var in *string
		if !isNull {
			in = &v
		}
		out := oc.OptStringFn(in)
		return "TEXT", out, nil

	case KindFixed:
		return oc.FixedSQLType, oc.FixedValue, nil

	case KindJSONRewrite:
		v, isNull := row.String(oc.Name)
		if isNull {
			return "JSONB", nil, nil
		}
		rewritten, rewriteErr := oc.JSONRewriter.Rewrite([]byte(v))
		if rewriteErr != nil {
			return "", nil, fmt.Errorf("columnspec: json rewrite column %q: %w", oc.Name, rewriteErr)
		}
		out := string(rewritten)
		return "JSONB", &out, nil

	default:
		return "", nil, fmt.Errorf("columnspec: unknown output column kind %d for %q", oc.Kind, oc.Name)
	}
}
