// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package toposort groups tables into dependency levels from their foreign
keys, using a Kahn-style algorithm: level 0 holds tables with no inbound
non-self foreign key, and level k holds tables whose non-self foreign
keys are all satisfied by levels 0..k-1. Self-referencing foreign keys
are ignored for level assignment — they are handled at copy time by
deferred-constraint semantics instead.
*/
package toposort

import (
	"fmt"
	"sort"

	"github.com/taibuivan/anonydb/internal/catalog"
)

// CycleError reports a dependency cycle among distinct tables that
// cannot be resolved by ignoring self-referencing foreign keys.
type CycleError struct {
	Tables []catalog.TableIdentity
}

func (e *CycleError) Error() string {
	return fmt.Sprintf("toposort: cycle detected among tables: %v", e.Tables)
}

// Levels computes an ordered partition [L0, L1, ..., Ld] of tables such
// that every non-self foreign key from a table in Lk points into
// L0 ∪ ... ∪ L{k-1}. Within a level, tables are sorted lexicographically
// by name so runs are reproducible.
func Levels(tables []catalog.TableIdentity, fks []catalog.ForeignKey) ([][]catalog.TableIdentity, error) {
	inDegree := make(map[catalog.TableIdentity]int, len(tables))
	dependents := make(map[catalog.TableIdentity][]catalog.TableIdentity)
	known := make(map[catalog.TableIdentity]bool, len(tables))

	for _, t := range tables {
		inDegree[t] = 0
		known[t] = true
	}

	for _, fk := range fks {
		if fk.SelfReferencing {
			continue
		}
		if !known[fk.Child] || !known[fk.Parent] {
			continue
		}
		inDegree[fk.Child]++
		dependents[fk.Parent] = append(dependents[fk.Parent], fk.Child)
	}

	remaining := make(map[catalog.TableIdentity]int, len(inDegree))
	for t, d := range inDegree {
		remaining[t] = d
	}

	var levels [][]catalog.TableIdentity
	placed := 0

	for placed < len(tables) {
		var level []catalog.TableIdentity
		for t, d := range remaining {
			if d == 0 {
				level = append(level, t)
			}
		}

		if len(level) == 0 {
			return nil, &CycleError{Tables: cyclicTables(remaining)}
		}

		sort.Slice(level, func(i, j int) bool { return level[i].Name < level[j].Name })
		levels = append(levels, level)

		for _, t := range level {
			delete(remaining, t)
			placed++
		}
		for _, t := range level {
			for _, child := range dependents[t] {
				if _, ok := remaining[child]; ok {
					remaining[child]--
				}
			}
		}
	}

	return levels, nil
}

// cyclicTables returns the tables still unplaced when the algorithm
// stalls, sorted for a deterministic error message.
func cyclicTables(remaining map[catalog.TableIdentity]int) []catalog.TableIdentity {
	tables := make([]catalog.TableIdentity, 0, len(remaining))
	for t := range remaining {
		tables = append(tables, t)
	}
	sort.Slice(tables, func(i, j int) bool {
		if tables[i].Schema != tables[j].Schema {
			return tables[i].Schema < tables[j].Schema
		}
		return tables[i].Name < tables[j].Name
	})
	return tables
}
