package catalog_test

import (
	stdctx "context"
	"fmt"
	"strings"
	"testing"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taibuivan/anonydb/internal/catalog"
)

// fakeRows is a minimal pgx.Rows stand-in over an in-memory row set, so
// the reflector's query-building and scanning logic can be exercised
// without a live database.
type fakeRows struct {
	data [][]any
	idx  int
}

func (f *fakeRows) Next() bool {
	f.idx++
	return f.idx <= len(f.data)
}

func (f *fakeRows) Scan(dest ...any) error {
	row := f.data[f.idx-1]
	if len(dest) != len(row) {
		return fmt.Errorf("fakeRows: column count mismatch: dest=%d row=%d", len(dest), len(row))
	}
	for i, d := range dest {
		switch v := d.(type) {
		case *string:
			*v = row[i].(string)
		case *bool:
			*v = row[i].(bool)
		case *int:
			*v = row[i].(int)
		case *[]string:
			*v = row[i].([]string)
		default:
			return fmt.Errorf("fakeRows: unsupported dest type %T", d)
		}
	}
	return nil
}

func (f *fakeRows) Err() error                                   { return nil }
func (f *fakeRows) Close()                                       {}
func (f *fakeRows) CommandTag() pgconn.CommandTag                { return pgconn.CommandTag{} }
func (f *fakeRows) FieldDescriptions() []pgconn.FieldDescription { return nil }
func (f *fakeRows) Values() ([]any, error)                       { return nil, nil }
func (f *fakeRows) RawValues() [][]byte                          { return nil }
func (f *fakeRows) Conn() *pgx.Conn                               { return nil }

// fakeQuerier dispatches to one of several canned row sets based on a
// distinguishing substring of the issued SQL.
type fakeQuerier struct {
	byMarker map[string][][]any
}

func (f *fakeQuerier) Query(_ stdctx.Context, sql string, _ ...any) (pgx.Rows, error) {
	for marker, data := range f.byMarker {
		if strings.Contains(sql, marker) {
			return &fakeRows{data: data}, nil
		}
	}
	return nil, fmt.Errorf("fakeQuerier: no canned response for query: %s", sql)
}

func TestGetTables(t *testing.T) {
	q := &fakeQuerier{byMarker: map[string][][]any{
		"c.relkind IN": {
			{"public", "customers"},
			{"public", "orders"},
		},
	}}
	tables, err := catalog.New(q).GetTables(stdctx.Background(), "public")
	require.NoError(t, err)
	assert.Equal(t, []catalog.TableIdentity{
		{Schema: "public", Name: "customers"},
		{Schema: "public", Name: "orders"},
	}, tables)
}

func TestGetColumns(t *testing.T) {
	q := &fakeQuerier{byMarker: map[string][][]any{
		"a.attnotnull": {
			{"id", "uuid", false, 1},
			{"email", "text", true, 2},
		},
	}}
	cols, err := catalog.New(q).GetColumns(stdctx.Background(), catalog.TableIdentity{Schema: "public", Name: "customers"})
	require.NoError(t, err)
	require.Len(t, cols, 2)
	assert.Equal(t, catalog.ColumnInfo{Name: "id", SQLType: "uuid", Nullable: false, Ordinal: 1}, cols[0])
	assert.Equal(t, catalog.ColumnInfo{Name: "email", SQLType: "text", Nullable: true, Ordinal: 2}, cols[1])
}

func TestGetPrimaryKey(t *testing.T) {
	q := &fakeQuerier{byMarker: map[string][][]any{
		"contype = 'p'": {
			{"tenant_id"},
			{"id"},
		},
	}}
	pk, err := catalog.New(q).GetPrimaryKey(stdctx.Background(), catalog.TableIdentity{Schema: "public", Name: "customers"})
	require.NoError(t, err)
	assert.Equal(t, []string{"tenant_id", "id"}, pk.Columns)
}

func TestGetPrimaryKey_EmptyForHeapTable(t *testing.T) {
	q := &fakeQuerier{byMarker: map[string][][]any{
		"contype = 'p'": {},
	}}
	pk, err := catalog.New(q).GetPrimaryKey(stdctx.Background(), catalog.TableIdentity{Schema: "public", Name: "log_events"})
	require.NoError(t, err)
	assert.Empty(t, pk.Columns)
}

func TestGetForeignKeys_FlagsSelfReferencing(t *testing.T) {
	q := &fakeQuerier{byMarker: map[string][][]any{
		"contype = 'f'": {
			{"fk_orders_customer", "public", "orders", []string{"customer_id"}, "public", "customers", []string{"id"}},
			{"fk_employees_manager", "public", "employees", []string{"manager_id"}, "public", "employees", []string{"id"}},
		},
	}}
	fks, err := catalog.New(q).GetForeignKeys(stdctx.Background(), "public")
	require.NoError(t, err)
	require.Len(t, fks, 2)

	assert.False(t, fks[0].SelfReferencing)
	assert.Equal(t, catalog.TableIdentity{Schema: "public", Name: "orders"}, fks[0].Child)
	assert.Equal(t, catalog.TableIdentity{Schema: "public", Name: "customers"}, fks[0].Parent)

	assert.True(t, fks[1].SelfReferencing)
	assert.Equal(t, fks[1].Child, fks[1].Parent)
}
