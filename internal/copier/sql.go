// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package copier

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/taibuivan/anonydb/internal/catalog"
	"github.com/taibuivan/anonydb/internal/columnspec"
)

// quoteIdent double-quotes a SQL identifier. Table and column names come
// from reflected schema metadata or user-declared constants, never from
// the values being copied, so this is identifier quoting, not value
// escaping.
func quoteIdent(ident string) string {
	return catalog.QuoteIdent(ident)
}

// BuildSelectQuery builds the streaming source query for table, reading
// sourceColumns and applying whereClause verbatim (the user's WHERE
// clause, and any propagated FK subquery, is trusted text).
func BuildSelectQuery(table catalog.TableIdentity, sourceColumns []string, whereClause string) string {
	quoted := catalog.QuoteIdents(sourceColumns)

	query := fmt.Sprintf("SELECT %s FROM %s",
		strings.Join(quoted, ", "), table.Quoted())

	if whereClause != "" {
		query += " WHERE " + whereClause
	}

	return query
}

// ConflictSuffix renders the ON CONFLICT clause for policy, resolving a
// PrimaryKeyAuto target against pk.
func ConflictSuffix(policy columnspec.ConflictPolicy, pk catalog.PrimaryKey, destColumns []string) string {
	switch policy.Kind {
	case columnspec.ConflictNone:
		return ""

	case columnspec.ConflictDoNothing:
		if target := conflictTarget(policy.Target, pk); target != "" {
			return "ON CONFLICT " + target + " DO NOTHING"
		}
		return "ON CONFLICT DO NOTHING"

	case columnspec.ConflictDoUpdate:
		updateSet := make([]string, len(policy.UpdateColumns))
		for i, c := range policy.UpdateColumns {
			updateSet[i] = fmt.Sprintf("%s = EXCLUDED.%s", quoteIdent(c), quoteIdent(c))
		}
		return fmt.Sprintf("ON CONFLICT %s DO UPDATE SET %s", conflictTarget(policy.Target, pk), strings.Join(updateSet, ", "))

	default:
		return ""
	}
}

func conflictTarget(target columnspec.ConflictTarget, pk catalog.PrimaryKey) string {
	switch target.Kind {
	case columnspec.TargetPrimaryKeyAuto:
		if len(pk.Columns) == 0 {
			return ""
		}
		return "(" + quotedList(pk.Columns) + ")"

	case columnspec.TargetExplicitColumns:
		return "(" + quotedList(target.Columns) + ")"

	case columnspec.TargetNamedConstraint:
		return "ON CONSTRAINT " + quoteIdent(target.ConstraintName)

	default:
		return ""
	}
}

func quotedList(cols []string) string {
	return strings.Join(catalog.QuoteIdents(cols), ", ")
}

// BuildInsertQuery builds a single multi-VALUES INSERT for the given
// destination table, column list, and row count, followed by
// conflictSuffix (empty for a plain INSERT). Parameter placeholders are
// $1.. in row-major order, matching the flattened argument slice a
// caller must pass to Exec.
func BuildInsertQuery(table catalog.TableIdentity, destColumns []string, rowCount int, conflictSuffix string) string {
	quoted := catalog.QuoteIdents(destColumns)

	var values strings.Builder
	paramIdx := 1
	for row := 0; row < rowCount; row++ {
		if row > 0 {
			values.WriteString(", ")
		}
		values.WriteByte('(')
		for col := 0; col < len(destColumns); col++ {
			if col > 0 {
				values.WriteString(", ")
			}
			values.WriteByte('$')
			values.WriteString(strconv.Itoa(paramIdx))
			paramIdx++
		}
		values.WriteByte(')')
	}

	query := fmt.Sprintf("INSERT INTO %s (%s) VALUES %s",
		table.Quoted(), strings.Join(quoted, ", "), values.String())

	if conflictSuffix != "" {
		query += " " + conflictSuffix
	}

	return query
}
