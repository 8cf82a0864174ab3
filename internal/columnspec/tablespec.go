// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package columnspec

import (
	"fmt"

	"github.com/taibuivan/anonydb/internal/jsonlens"
	"github.com/taibuivan/anonydb/pkg/pointer"
	"github.com/taibuivan/anonydb/pkg/slice"
)

// TableSpec is the immutable, user-built description of how one table's
// destination rows are derived: its output columns in user-visible
// order, an optional WHERE clause, and a conflict policy.
type TableSpec struct {
	Outputs     []OutputColumn
	WhereClause string
	HasWhere    bool
	Conflict    ConflictPolicy
}

// ColumnNames returns the destination column names in declared order,
// for coverage-validator and copier bookkeeping.
func (s TableSpec) ColumnNames() []string {
	return slice.Map(s.Outputs, func(oc OutputColumn) string { return oc.Name })
}

// Builder records OutputColumns in the order they are declared, then
// attaches an optional WHERE clause and conflict policy. Build a
// TableSpec by chaining Column(...) calls and finishing with Build.
type Builder struct {
	outputs  []OutputColumn
	where    string
	hasWhere bool
	conflict ConflictPolicy
}

// New starts a TableSpec builder with no outputs, no filter, and plain
// INSERT conflict handling.
func New() *Builder {
	return &Builder{conflict: NoConflictHandling()}
}

// Column returns a cursor over the named source column. Exactly one of
// the ColumnRef's terminal methods must be called to record an output
// for it.
func (b *Builder) Column(name string) *ColumnRef {
	return &ColumnRef{name: name, builder: b}
}

func (b *Builder) push(oc OutputColumn) *Builder {
	b.outputs = append(b.outputs, oc)
	return b
}

// Where attaches a WHERE clause, combined by the filter propagator with
// any filters pushed down from parent tables via foreign keys.
func (b *Builder) Where(clause string) *Builder {
	b.where = clause
	b.hasWhere = true
	return b
}

// OnConflict attaches a conflict policy for the generated INSERT.
func (b *Builder) OnConflict(policy ConflictPolicy) *Builder {
	b.conflict = policy
	return b
}

// Build finalizes the TableSpec. It is an error for two outputs to share
// a destination column name.
func (b *Builder) Build() (TableSpec, error) {
	seen := make(map[string]bool, len(b.outputs))
	for _, oc := range b.outputs {
		if seen[oc.Name] {
			return TableSpec{}, fmt.Errorf("columnspec: duplicate output column %q", oc.Name)
		}
		seen[oc.Name] = true
	}

	outputs := make([]OutputColumn, len(b.outputs))
	copy(outputs, b.outputs)

	return TableSpec{
		Outputs:     outputs,
		WhereClause: b.where,
		HasWhere:    b.hasWhere,
		Conflict:    b.conflict,
	}, nil
}

// ColumnRef is a cursor over one named source column, returned by
// [Builder.Column]. Its terminal methods each record one OutputColumn
// variant and return the parent builder so calls can be chained:
//
//	spec, err := columnspec.New().
//		Column("id").AsIs().
//		Column("email").MapString(anonymize.Email).
//		Column("last_login").Nulled("TIMESTAMPTZ").
//		Build()
type ColumnRef struct {
	name    string
	builder *Builder
}

// AsIs emits the column's source value unchanged, preserving its native
// SQL type. Primary-key and foreign-key columns get this behavior
// automatically from the copier; AsIs is for explicitly passing through
// a data column without anonymizing it.
func (c *ColumnRef) AsIs() *Builder {
	return c.builder.push(Source(c.name))
}

// MapString applies fn to the column's value, skipping SQL NULL.
func (c *ColumnRef) MapString(fn StringFunc) *Builder {
	return c.builder.push(Transformed(c.name, fn))
}

// MapOptString applies fn to the column's value, including when it is
// SQL NULL (represented as a nil *string).
func (c *ColumnRef) MapOptString(fn OptStringFunc) *Builder {
	return c.builder.push(TransformedOpt(c.name, fn))
}

// Nulled emits a constant SQL NULL of the given declared type.
func (c *ColumnRef) Nulled(sqlType string) *Builder {
	return c.builder.push(Fixed(c.name, nil, sqlType))
}

// Set emits a constant value of the given declared type, ignoring the
// source value entirely.
func (c *ColumnRef) Set(value, sqlType string) *Builder {
	return c.builder.push(Fixed(c.name, pointer.To(value), sqlType))
}

// MapJsonArray treats the column's value as a JSON array and applies the
// per-element rewriter built by buildLens, starting from [jsonlens.Root]
// positioned at one array element.
func (c *ColumnRef) MapJsonArray(buildLens func(jsonlens.Lens) jsonlens.Rewriter) *Builder {
	perElement := buildLens(jsonlens.Root())
	return c.builder.push(JSONRewrite(c.name, jsonlens.Array(perElement)))
}
