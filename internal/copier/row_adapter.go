// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package copier

import (
	"fmt"

	"github.com/jackc/pgx/v5/pgconn"

	"github.com/taibuivan/anonydb/internal/catalog"
)

// rowAdapter presents one fetched pgx row as a [columnspec.Row]: the
// algebra only ever needs a column's text representation and its
// declared SQL type, never the driver's native Go value, so every value
// is captured as the text form the server sent — the source query runs
// under the simple protocol, whose results are always text, so numeric,
// jsonb, array, and timestamp columns arrive without a Go-side decode,
// which is what makes the round trip back through a parameterized INSERT
// safe.
type rowAdapter struct {
	values map[string]*string
	types  map[string]string
}

func newRowAdapter(fields []pgconn.FieldDescription, raw []any, columns []catalog.ColumnInfo) *rowAdapter {
	sqlType := make(map[string]string, len(columns))
	for _, c := range columns {
		sqlType[c.Name] = c.SQLType
	}

	a := &rowAdapter{
		values: make(map[string]*string, len(fields)),
		types:  make(map[string]string, len(fields)),
	}

	for i, f := range fields {
		name := string(f.Name)
		a.types[name] = sqlType[name]

		v := raw[i]
		if v == nil {
			a.values[name] = nil
			continue
		}

		s := stringify(v)
		a.values[name] = &s
	}

	return a
}

func stringify(v any) string {
	switch t := v.(type) {
	case []byte:
		return string(t)
	case string:
		return t
	case fmt.Stringer:
		return t.String()
	default:
		return fmt.Sprint(t)
	}
}

func (a *rowAdapter) SQLType(column string) string {
	return a.types[column]
}

func (a *rowAdapter) String(column string) (string, bool) {
	v, ok := a.values[column]
	if !ok || v == nil {
		return "", true
	}
	return *v, false
}
