// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package coverage validates that a user's spec map fully addresses the
reflected schema before any row is copied: every non-skipped table must
have a TableSpec, and every TableSpec must address every one of its
table's "data columns" — source columns that are neither primary-key nor
foreign-key members — at least once. Both diagnostics are collected and
reported together; neither short-circuits the other.
*/
package coverage

import (
	"fmt"
	"sort"
	"strings"

	"github.com/taibuivan/anonydb/internal/catalog"
	"github.com/taibuivan/anonydb/internal/columnspec"
	"github.com/taibuivan/anonydb/internal/platform/apperr"
)

// TableMetadata bundles the reflected shape of one table, enough to
// compute its data columns.
type TableMetadata struct {
	Columns     []catalog.ColumnInfo
	PrimaryKey  catalog.PrimaryKey
	ForeignKeys []catalog.ForeignKey
}

// DataColumns returns m's columns that are neither primary-key nor
// foreign-key members, in schema ordinal order.
func (m TableMetadata) DataColumns() []string {
	excluded := make(map[string]bool)
	for _, col := range m.PrimaryKey.Columns {
		excluded[col] = true
	}
	for _, fk := range m.ForeignKeys {
		for _, col := range fk.ChildColumns {
			excluded[col] = true
		}
	}

	var data []string
	for _, col := range m.Columns {
		if !excluded[col.Name] {
			data = append(data, col.Name)
		}
	}
	return data
}

// Validate checks every table in metadata (keyed by qualified table
// identity) against specs and skipped, and returns a single
// *apperr.AppError describing every missing table and every missing
// column, or nil if the spec map is complete.
func Validate(
	tables []catalog.TableIdentity,
	metadata map[catalog.TableIdentity]TableMetadata,
	specs map[catalog.TableIdentity]columnspec.TableSpec,
	skipped map[catalog.TableIdentity]bool,
) error {
	sortedTables := make([]catalog.TableIdentity, len(tables))
	copy(sortedTables, tables)
	sort.Slice(sortedTables, func(i, j int) bool {
		if sortedTables[i].Schema != sortedTables[j].Schema {
			return sortedTables[i].Schema < sortedTables[j].Schema
		}
		return sortedTables[i].Name < sortedTables[j].Name
	})

	var missingTables []catalog.TableIdentity
	missingColumns := make(map[catalog.TableIdentity][]string)

	for _, table := range sortedTables {
		if skipped[table] {
			continue
		}

		spec, ok := specs[table]
		if !ok {
			missingTables = append(missingTables, table)
			continue
		}

		addressed := make(map[string]bool, len(spec.Outputs))
		for _, name := range spec.ColumnNames() {
			addressed[name] = true
		}

		for _, col := range metadata[table].DataColumns() {
			if !addressed[col] {
				missingColumns[table] = append(missingColumns[table], col)
			}
		}
	}

	if len(missingTables) == 0 && len(missingColumns) == 0 {
		return nil
	}

	return buildError(missingTables, missingColumns, metadata)
}

func buildError(missingTables []catalog.TableIdentity, missingColumns map[catalog.TableIdentity][]string, metadata map[catalog.TableIdentity]TableMetadata) error {
	var b strings.Builder
	var allTableNames []string
	var allColumnNames []string

	if len(missingTables) > 0 {
		b.WriteString("Missing table specs:\n")
		for _, table := range missingTables {
			allTableNames = append(allTableNames, table.String())
			b.WriteString(snippet(table, metadata[table].DataColumns()))
			b.WriteString("\n")
		}
	}

	if len(missingColumns) > 0 {
		tablesWithMissingColumns := make([]catalog.TableIdentity, 0, len(missingColumns))
		for table := range missingColumns {
			tablesWithMissingColumns = append(tablesWithMissingColumns, table)
		}
		sort.Slice(tablesWithMissingColumns, func(i, j int) bool {
			return tablesWithMissingColumns[i].String() < tablesWithMissingColumns[j].String()
		})

		b.WriteString("Missing column coverage:\n")
		for _, table := range tablesWithMissingColumns {
			cols := missingColumns[table]
			allTableNames = append(allTableNames, table.String())
			allColumnNames = append(allColumnNames, cols...)
			fmt.Fprintf(&b, "%q is missing: %s\n", table.String(), strings.Join(cols, ", "))
		}
	}

	return apperr.SpecMissing(allTableNames, allColumnNames, b.String())
}

// snippet renders the copy-pastable suggestion for one missing table:
// `"<name>" -> TableSpec.select { row => Seq(<one line per data column>) }`.
func snippet(table catalog.TableIdentity, dataColumns []string) string {
	lines := make([]string, len(dataColumns))
	for i, col := range dataColumns {
		lines[i] = fmt.Sprintf("row.%s.mapString(???)", col)
	}

	return fmt.Sprintf("%q -> TableSpec.select { row => Seq(\n    %s\n  ) }",
		table.String(), strings.Join(lines, ",\n    "))
}
