// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package copier streams rows from a source table, applies the column-spec
algebra, and writes batched multi-VALUES INSERTs into the target,
honoring ON CONFLICT policy and self-referencing-FK deferred-constraint
semantics.
*/
package copier

import (
	"sort"

	"github.com/taibuivan/anonydb/internal/catalog"
	"github.com/taibuivan/anonydb/internal/columnspec"
	"github.com/taibuivan/anonydb/internal/platform/apperr"
)

// ResolveOutputs appends an implicit Source passthrough, in schema
// ordinal order, for every primary-key or foreign-key column of table
// not already named by userOutputs. Columns the user already named keep
// their user-declared position and behavior (a user output for a PK/FK
// column overrides the implicit passthrough). Duplicate names within
// userOutputs are a hard error.
func ResolveOutputs(
	table string,
	userOutputs []columnspec.OutputColumn,
	columns []catalog.ColumnInfo,
	pk catalog.PrimaryKey,
	fks []catalog.ForeignKey,
) ([]columnspec.OutputColumn, error) {
	named := make(map[string]bool, len(userOutputs))
	for _, oc := range userOutputs {
		if named[oc.Name] {
			return nil, apperr.SpecDuplicate(table, oc.Name)
		}
		named[oc.Name] = true
	}

	keyMember := make(map[string]bool)
	for _, col := range pk.Columns {
		keyMember[col] = true
	}
	for _, fk := range fks {
		for _, col := range fk.ChildColumns {
			keyMember[col] = true
		}
	}

	resolved := make([]columnspec.OutputColumn, len(userOutputs))
	copy(resolved, userOutputs)

	ordered := make([]catalog.ColumnInfo, len(columns))
	copy(ordered, columns)
	sort.Slice(ordered, func(i, j int) bool { return ordered[i].Ordinal < ordered[j].Ordinal })

	for _, col := range ordered {
		if !keyMember[col.Name] || named[col.Name] {
			continue
		}
		resolved = append(resolved, columnspec.Source(col.Name))
	}

	return resolved, nil
}

// SourceColumns returns the deduplicated, ordinal-sorted set of source
// column names that outputs depend on. Every OutputColumn kind except
// KindFixed names exactly one source column.
func SourceColumns(outputs []columnspec.OutputColumn, columns []catalog.ColumnInfo) []string {
	ordinal := make(map[string]int, len(columns))
	for _, col := range columns {
		ordinal[col.Name] = col.Ordinal
	}

	seen := make(map[string]bool)
	var names []string
	for _, oc := range outputs {
		if oc.Kind == columnspec.KindFixed {
			continue
		}
		if seen[oc.Name] {
			continue
		}
		seen[oc.Name] = true
		names = append(names, oc.Name)
	}

	sort.Slice(names, func(i, j int) bool { return ordinal[names[i]] < ordinal[names[j]] })
	return names
}
