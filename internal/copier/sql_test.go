package copier_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/taibuivan/anonydb/internal/catalog"
	"github.com/taibuivan/anonydb/internal/columnspec"
	"github.com/taibuivan/anonydb/internal/copier"
)

func TestBuildSelectQuery_WithWhereClause(t *testing.T) {
	q := copier.BuildSelectQuery(tbl("orders"), []string{"id", "total"}, "status = 'paid'")
	assert.Equal(t, `SELECT "id", "total" FROM "public"."orders" WHERE status = 'paid'`, q)
}

func TestBuildSelectQuery_NoWhereClause(t *testing.T) {
	q := copier.BuildSelectQuery(tbl("orders"), []string{"id"}, "")
	assert.Equal(t, `SELECT "id" FROM "public"."orders"`, q)
}

func TestBuildInsertQuery_MultiRowPlaceholders(t *testing.T) {
	q := copier.BuildInsertQuery(tbl("orders"), []string{"id", "total"}, 2, "")
	assert.Equal(t, `INSERT INTO "public"."orders" ("id", "total") VALUES ($1, $2), ($3, $4)`, q)
}

func TestBuildInsertQuery_WithConflictSuffix(t *testing.T) {
	q := copier.BuildInsertQuery(tbl("orders"), []string{"id"}, 1, "ON CONFLICT (\"id\") DO NOTHING")
	assert.Equal(t, `INSERT INTO "public"."orders" ("id") VALUES ($1) ON CONFLICT ("id") DO NOTHING`, q)
}

func TestConflictSuffix_None(t *testing.T) {
	s := copier.ConflictSuffix(columnspec.NoConflictHandling(), catalog.PrimaryKey{}, nil)
	assert.Empty(t, s)
}

func TestConflictSuffix_DoNothingPrimaryKeyAuto(t *testing.T) {
	s := copier.ConflictSuffix(columnspec.DoNothing(columnspec.PrimaryKeyAuto()), catalog.PrimaryKey{Columns: []string{"id"}}, nil)
	assert.Equal(t, `ON CONFLICT ("id") DO NOTHING`, s)
}

func TestConflictSuffix_DoNothingPrimaryKeyAuto_EmptyPK(t *testing.T) {
	s := copier.ConflictSuffix(columnspec.DoNothing(columnspec.PrimaryKeyAuto()), catalog.PrimaryKey{}, nil)
	assert.Equal(t, `ON CONFLICT DO NOTHING`, s)
}

func TestConflictSuffix_DoNothingExplicitColumns(t *testing.T) {
	s := copier.ConflictSuffix(columnspec.DoNothing(columnspec.ExplicitColumns("tenant_id", "email")), catalog.PrimaryKey{}, nil)
	assert.Equal(t, `ON CONFLICT ("tenant_id", "email") DO NOTHING`, s)
}

func TestConflictSuffix_DoNothingNamedConstraint(t *testing.T) {
	s := copier.ConflictSuffix(columnspec.DoNothing(columnspec.NamedConstraint("customers_email_key")), catalog.PrimaryKey{}, nil)
	assert.Equal(t, `ON CONFLICT ON CONSTRAINT "customers_email_key" DO NOTHING`, s)
}

func TestConflictSuffix_DoUpdate(t *testing.T) {
	s := copier.ConflictSuffix(
		columnspec.DoUpdate(columnspec.PrimaryKeyAuto(), []string{"email", "updated_at"}),
		catalog.PrimaryKey{Columns: []string{"id"}},
		nil,
	)
	assert.Equal(t, `ON CONFLICT ("id") DO UPDATE SET "email" = EXCLUDED."email", "updated_at" = EXCLUDED."updated_at"`, s)
}
