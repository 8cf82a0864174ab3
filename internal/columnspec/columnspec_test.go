package columnspec_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taibuivan/anonydb/internal/columnspec"
	"github.com/taibuivan/anonydb/internal/jsonlens"
)

// fakeRow is a minimal columnspec.Row for algebra tests.
type fakeRow struct {
	types  map[string]string
	values map[string]string
	nulls  map[string]bool
}

func (r fakeRow) SQLType(column string) string { return r.types[column] }
func (r fakeRow) String(column string) (string, bool) {
	return r.values[column], r.nulls[column]
}

func TestEvaluate_Source(t *testing.T) {
	row := fakeRow{
		types:  map[string]string{"id": "UUID"},
		values: map[string]string{"id": "abc-123"},
	}
	sqlType, value, err := columnspec.Evaluate(columnspec.Source("id"), row)
	require.NoError(t, err)
	assert.Equal(t, "UUID", sqlType)
	require.NotNil(t, value)
	assert.Equal(t, "abc-123", *value)
}

func TestEvaluate_Source_Null(t *testing.T) {
	row := fakeRow{
		types: map[string]string{"middle_name": "TEXT"},
		nulls: map[string]bool{"middle_name": true},
	}
	sqlType, value, err := columnspec.Evaluate(columnspec.Source("middle_name"), row)
	require.NoError(t, err)
	assert.Equal(t, "TEXT", sqlType)
	assert.Nil(t, value)
}

func TestEvaluate_Transformed_NullPropagatesWithoutInvokingFn(t *testing.T) {
	row := fakeRow{
		types: map[string]string{"email": "TEXT"},
		nulls: map[string]bool{"email": true},
	}
	called := false
	fn := func(s string) string { called = true; return s }

	sqlType, value, err := columnspec.Evaluate(columnspec.Transformed("email", fn), row)
	require.NoError(t, err)
	assert.Equal(t, "TEXT", sqlType)
	assert.Nil(t, value)
	assert.False(t, called, "fn must not be invoked for a NULL source value")
}

func TestEvaluate_Transformed_AppliesFn(t *testing.T) {
	row := fakeRow{
		values: map[string]string{"email": "alice@example.com"},
	}
	sqlType, value, err := columnspec.Evaluate(columnspec.Transformed("email", strings.ToUpper), row)
	require.NoError(t, err)
	assert.Equal(t, "TEXT", sqlType)
	require.NotNil(t, value)
	assert.Equal(t, "ALICE@EXAMPLE.COM", *value)
}

func TestEvaluate_TransformedOpt_InvokedEvenWhenNull(t *testing.T) {
	row := fakeRow{
		nulls: map[string]bool{"bio": true},
	}
	called := false
	fn := func(s *string) *string {
		called = true
		assert.Nil(t, s)
		return nil
	}

	sqlType, value, err := columnspec.Evaluate(columnspec.TransformedOpt("bio", fn), row)
	require.NoError(t, err)
	assert.Equal(t, "TEXT", sqlType)
	assert.Nil(t, value)
	assert.True(t, called, "fn must be invoked even for a NULL source value")
}

func TestEvaluate_Fixed(t *testing.T) {
	v := "system"
	sqlType, value, err := columnspec.Evaluate(columnspec.Fixed("created_by", &v, "TEXT"), fakeRow{})
	require.NoError(t, err)
	assert.Equal(t, "TEXT", sqlType)
	require.NotNil(t, value)
	assert.Equal(t, "system", *value)
}

func TestEvaluate_Fixed_Null(t *testing.T) {
	sqlType, value, err := columnspec.Evaluate(columnspec.Fixed("deleted_at", nil, "TIMESTAMPTZ"), fakeRow{})
	require.NoError(t, err)
	assert.Equal(t, "TIMESTAMPTZ", sqlType)
	assert.Nil(t, value)
}

func TestEvaluate_JSONRewrite_NullPropagates(t *testing.T) {
	row := fakeRow{
		nulls: map[string]bool{"phones": true},
	}
	rewriter := jsonlens.Root().Field("number").MapString(strings.ToUpper)

	sqlType, value, err := columnspec.Evaluate(columnspec.JSONRewrite("phones", rewriter), row)
	require.NoError(t, err)
	assert.Equal(t, "JSONB", sqlType)
	assert.Nil(t, value)
}

func TestEvaluate_JSONRewrite_RewritesAndSerializes(t *testing.T) {
	row := fakeRow{
		values: map[string]string{"phones": `[{"type":"mobile","number":"555-0101"}]`},
	}
	rewriter := jsonlens.Array(jsonlens.Root().Field("number").MapString(func(string) string { return "***" }))

	sqlType, value, err := columnspec.Evaluate(columnspec.JSONRewrite("phones", rewriter), row)
	require.NoError(t, err)
	assert.Equal(t, "JSONB", sqlType)
	require.NotNil(t, value)
	assert.Contains(t, *value, `"type":"mobile"`)
	assert.NotContains(t, *value, "555-0101")
}

func TestBuilder_RecordsOutputsInDeclaredOrder(t *testing.T) {
	spec, err := columnspec.New().
		Column("id").AsIs().
		Column("email").MapString(strings.ToUpper).
		Column("last_login").Nulled("TIMESTAMPTZ").
		Build()
	require.NoError(t, err)

	assert.Equal(t, []string{"id", "email", "last_login"}, spec.ColumnNames())
}

func TestBuilder_DuplicateColumnNameIsAnError(t *testing.T) {
	_, err := columnspec.New().
		Column("email").AsIs().
		Column("email").MapString(strings.ToUpper).
		Build()
	assert.Error(t, err)
}

func TestBuilder_WhereAndConflict(t *testing.T) {
	spec, err := columnspec.New().
		Column("id").AsIs().
		Where("active = true").
		OnConflict(columnspec.DoNothing(columnspec.PrimaryKeyAuto())).
		Build()
	require.NoError(t, err)

	assert.True(t, spec.HasWhere)
	assert.Equal(t, "active = true", spec.WhereClause)
	assert.Equal(t, columnspec.ConflictDoNothing, spec.Conflict.Kind)
	assert.Equal(t, columnspec.TargetPrimaryKeyAuto, spec.Conflict.Target.Kind)
}

func TestBuilder_MapJsonArray(t *testing.T) {
	spec, err := columnspec.New().
		Column("phones").MapJsonArray(func(l jsonlens.Lens) jsonlens.Rewriter {
		return l.Field("number").MapString(func(string) string { return "REDACTED" })
	}).
		Build()
	require.NoError(t, err)
	require.Len(t, spec.Outputs, 1)
	assert.Equal(t, columnspec.KindJSONRewrite, spec.Outputs[0].Kind)

	out, err := spec.Outputs[0].JSONRewriter.Rewrite([]byte(`[{"number":"555-0101"}]`))
	require.NoError(t, err)
	assert.Contains(t, string(out), "REDACTED")
}
