// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package filterprop computes each table's effective WHERE filter by
AND-combining its own declared filter with correlated subqueries pushed
down from parent tables through foreign keys. Propagation is downward
only: a child's filter never reaches back up into a parent's effective
filter (see DESIGN.md for this Open Question's resolution).
*/
package filterprop

import (
	"fmt"
	"strings"

	"github.com/taibuivan/anonydb/internal/catalog"
)

// RawFilters maps a table to its own declared WHERE clause (absent
// tables, or tables mapped to an empty string, have no filter of their
// own).
type RawFilters map[catalog.TableIdentity]string

// Compute derives the effective filter for every table in levels, given
// each table's own raw filter and the FK graph. levels must be in
// topological order, as produced by [toposort.Levels] — propagation
// depends on every parent's effective filter having already been
// computed before its children are visited.
func Compute(levels [][]catalog.TableIdentity, fks []catalog.ForeignKey, raw RawFilters) map[catalog.TableIdentity]string {
	parentsOf := make(map[catalog.TableIdentity][]catalog.ForeignKey)
	for _, fk := range fks {
		if fk.SelfReferencing {
			continue
		}
		parentsOf[fk.Child] = append(parentsOf[fk.Child], fk)
	}

	effective := make(map[catalog.TableIdentity]string)

	for _, level := range levels {
		for _, table := range level {
			effective[table] = computeOne(table, raw[table], parentsOf[table], effective)
		}
	}

	return effective
}

func computeOne(table catalog.TableIdentity, own string, parentFKs []catalog.ForeignKey, effective map[catalog.TableIdentity]string) string {
	clauses := make([]string, 0, len(parentFKs)+1)
	if own != "" {
		clauses = append(clauses, own)
	}

	for _, fk := range parentFKs {
		parentFilter := effective[fk.Parent]
		if parentFilter == "" {
			continue
		}
		clauses = append(clauses, subquery(fk, parentFilter))
	}

	return strings.Join(clauses, " AND ")
}

func subquery(fk catalog.ForeignKey, parentFilter string) string {
	childCols := parenthesizedList(catalog.QuoteIdents(fk.ChildColumns))
	parentCols := strings.Join(catalog.QuoteIdents(fk.ParentColumns), ", ")

	return fmt.Sprintf(
		"%s IN (SELECT %s FROM %s WHERE %s)",
		childCols, parentCols, fk.Parent.Quoted(), parentFilter,
	)
}

func parenthesizedList(quotedCols []string) string {
	if len(quotedCols) == 1 {
		return quotedCols[0]
	}
	return "(" + strings.Join(quotedCols, ", ") + ")"
}
