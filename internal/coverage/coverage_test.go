package coverage_test

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taibuivan/anonydb/internal/catalog"
	"github.com/taibuivan/anonydb/internal/columnspec"
	"github.com/taibuivan/anonydb/internal/coverage"
	"github.com/taibuivan/anonydb/internal/platform/apperr"
)

func tbl(name string) catalog.TableIdentity {
	return catalog.TableIdentity{Schema: "public", Name: name}
}

func TestDataColumns_ExcludesPKAndFKMembers(t *testing.T) {
	m := coverage.TableMetadata{
		Columns: []catalog.ColumnInfo{
			{Name: "id"}, {Name: "customer_id"}, {Name: "email"}, {Name: "total"},
		},
		PrimaryKey:  catalog.PrimaryKey{Columns: []string{"id"}},
		ForeignKeys: []catalog.ForeignKey{{ChildColumns: []string{"customer_id"}}},
	}

	assert.Equal(t, []string{"email", "total"}, m.DataColumns())
}

func TestValidate_CompleteSpecPasses(t *testing.T) {
	tables := []catalog.TableIdentity{tbl("customers")}
	metadata := map[catalog.TableIdentity]coverage.TableMetadata{
		tbl("customers"): {
			Columns:    []catalog.ColumnInfo{{Name: "id"}, {Name: "email"}},
			PrimaryKey: catalog.PrimaryKey{Columns: []string{"id"}},
		},
	}
	spec, err := columnspec.New().Column("email").AsIs().Build()
	require.NoError(t, err)
	specs := map[catalog.TableIdentity]columnspec.TableSpec{tbl("customers"): spec}

	err = coverage.Validate(tables, metadata, specs, nil)
	assert.NoError(t, err)
}

func TestValidate_MissingTableReported(t *testing.T) {
	tables := []catalog.TableIdentity{tbl("customers"), tbl("orders")}
	metadata := map[catalog.TableIdentity]coverage.TableMetadata{
		tbl("customers"): {Columns: []catalog.ColumnInfo{{Name: "id"}, {Name: "email"}}, PrimaryKey: catalog.PrimaryKey{Columns: []string{"id"}}},
		tbl("orders"):    {Columns: []catalog.ColumnInfo{{Name: "id"}, {Name: "total"}}, PrimaryKey: catalog.PrimaryKey{Columns: []string{"id"}}},
	}
	spec, err := columnspec.New().Column("email").AsIs().Build()
	require.NoError(t, err)
	specs := map[catalog.TableIdentity]columnspec.TableSpec{tbl("customers"): spec}

	err = coverage.Validate(tables, metadata, specs, nil)
	require.Error(t, err)

	var ae *apperr.AppError
	require.True(t, errors.As(err, &ae))
	assert.Equal(t, "SPEC_MISSING", ae.Code)
	assert.Contains(t, ae.Message, "Missing table specs")
	assert.Contains(t, ae.Message, `"public.orders" -> TableSpec.select`)
	assert.Contains(t, ae.Message, "row.total.mapString(???)")
	assert.Equal(t, []string{"public.orders"}, ae.Tables)
}

func TestValidate_SkippedTableNeverReported(t *testing.T) {
	tables := []catalog.TableIdentity{tbl("audit_log")}
	metadata := map[catalog.TableIdentity]coverage.TableMetadata{
		tbl("audit_log"): {Columns: []catalog.ColumnInfo{{Name: "id"}}},
	}

	err := coverage.Validate(tables, metadata, nil, map[catalog.TableIdentity]bool{tbl("audit_log"): true})
	assert.NoError(t, err)
}

func TestValidate_MissingColumnReported(t *testing.T) {
	tables := []catalog.TableIdentity{tbl("customers")}
	metadata := map[catalog.TableIdentity]coverage.TableMetadata{
		tbl("customers"): {
			Columns:    []catalog.ColumnInfo{{Name: "id"}, {Name: "email"}, {Name: "phone"}},
			PrimaryKey: catalog.PrimaryKey{Columns: []string{"id"}},
		},
	}
	spec, err := columnspec.New().Column("email").AsIs().Build()
	require.NoError(t, err)
	specs := map[catalog.TableIdentity]columnspec.TableSpec{tbl("customers"): spec}

	err = coverage.Validate(tables, metadata, specs, nil)
	require.Error(t, err)

	var ae *apperr.AppError
	require.True(t, errors.As(err, &ae))
	assert.Contains(t, ae.Message, "Missing column coverage")
	assert.Contains(t, ae.Message, "phone")
	assert.Equal(t, []string{"phone"}, ae.Columns)
}

func TestValidate_DoesNotShortCircuit(t *testing.T) {
	tables := []catalog.TableIdentity{tbl("customers"), tbl("orders")}
	metadata := map[catalog.TableIdentity]coverage.TableMetadata{
		tbl("customers"): {Columns: []catalog.ColumnInfo{{Name: "id"}, {Name: "email"}}, PrimaryKey: catalog.PrimaryKey{Columns: []string{"id"}}},
		tbl("orders"):    {Columns: []catalog.ColumnInfo{{Name: "id"}, {Name: "total"}}, PrimaryKey: catalog.PrimaryKey{Columns: []string{"id"}}},
	}
	// customers has no spec at all (missing table); orders has an
	// incomplete spec (missing column) -- both must surface together.
	spec, err := columnspec.New().Column("id").AsIs().Build()
	require.NoError(t, err)
	specs := map[catalog.TableIdentity]columnspec.TableSpec{tbl("orders"): spec}

	err = coverage.Validate(tables, metadata, specs, nil)
	require.Error(t, err)

	var ae *apperr.AppError
	require.True(t, errors.As(err, &ae))
	assert.Contains(t, ae.Message, "Missing table specs")
	assert.Contains(t, ae.Message, "Missing column coverage")
	assert.Equal(t, []string{"public.customers", "public.orders"}, ae.Tables)
	assert.Equal(t, []string{"total"}, ae.Columns)
}
