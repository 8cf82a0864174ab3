package toposort_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taibuivan/anonydb/internal/catalog"
	"github.com/taibuivan/anonydb/internal/toposort"
)

func tbl(name string) catalog.TableIdentity {
	return catalog.TableIdentity{Schema: "public", Name: name}
}

func TestLevels_LinearChain(t *testing.T) {
	tables := []catalog.TableIdentity{tbl("order_items"), tbl("orders"), tbl("customers")}
	fks := []catalog.ForeignKey{
		{Child: tbl("orders"), Parent: tbl("customers"), ChildColumns: []string{"customer_id"}, ParentColumns: []string{"id"}},
		{Child: tbl("order_items"), Parent: tbl("orders"), ChildColumns: []string{"order_id"}, ParentColumns: []string{"id"}},
	}

	levels, err := toposort.Levels(tables, fks)
	require.NoError(t, err)
	require.Len(t, levels, 3)
	assert.Equal(t, []catalog.TableIdentity{tbl("customers")}, levels[0])
	assert.Equal(t, []catalog.TableIdentity{tbl("orders")}, levels[1])
	assert.Equal(t, []catalog.TableIdentity{tbl("order_items")}, levels[2])
}

func TestLevels_IndependentTablesShareLevelZero(t *testing.T) {
	tables := []catalog.TableIdentity{tbl("widgets"), tbl("gadgets")}

	levels, err := toposort.Levels(tables, nil)
	require.NoError(t, err)
	require.Len(t, levels, 1)
	assert.Equal(t, []catalog.TableIdentity{tbl("gadgets"), tbl("widgets")}, levels[0], "tie-break is lexicographic by name")
}

func TestLevels_SelfReferencingFKIgnoredForLeveling(t *testing.T) {
	tables := []catalog.TableIdentity{tbl("employees")}
	fks := []catalog.ForeignKey{
		{Child: tbl("employees"), Parent: tbl("employees"), SelfReferencing: true, ChildColumns: []string{"manager_id"}, ParentColumns: []string{"id"}},
	}

	levels, err := toposort.Levels(tables, fks)
	require.NoError(t, err)
	require.Len(t, levels, 1)
	assert.Equal(t, []catalog.TableIdentity{tbl("employees")}, levels[0])
}

func TestLevels_CycleAmongDistinctTablesIsAnError(t *testing.T) {
	tables := []catalog.TableIdentity{tbl("a"), tbl("b")}
	fks := []catalog.ForeignKey{
		{Child: tbl("a"), Parent: tbl("b"), ChildColumns: []string{"b_id"}, ParentColumns: []string{"id"}},
		{Child: tbl("b"), Parent: tbl("a"), ChildColumns: []string{"a_id"}, ParentColumns: []string{"id"}},
	}

	_, err := toposort.Levels(tables, fks)
	require.Error(t, err)

	var cycleErr *toposort.CycleError
	require.ErrorAs(t, err, &cycleErr)
	assert.ElementsMatch(t, []catalog.TableIdentity{tbl("a"), tbl("b")}, cycleErr.Tables)
}

func TestLevels_DiamondDependency(t *testing.T) {
	tables := []catalog.TableIdentity{tbl("root"), tbl("left"), tbl("right"), tbl("leaf")}
	fks := []catalog.ForeignKey{
		{Child: tbl("left"), Parent: tbl("root"), ChildColumns: []string{"root_id"}, ParentColumns: []string{"id"}},
		{Child: tbl("right"), Parent: tbl("root"), ChildColumns: []string{"root_id"}, ParentColumns: []string{"id"}},
		{Child: tbl("leaf"), Parent: tbl("left"), ChildColumns: []string{"left_id"}, ParentColumns: []string{"id"}},
		{Child: tbl("leaf"), Parent: tbl("right"), ChildColumns: []string{"right_id"}, ParentColumns: []string{"id"}},
	}

	levels, err := toposort.Levels(tables, fks)
	require.NoError(t, err)
	require.Len(t, levels, 3)
	assert.Equal(t, []catalog.TableIdentity{tbl("root")}, levels[0])
	assert.Equal(t, []catalog.TableIdentity{tbl("left"), tbl("right")}, levels[1])
	assert.Equal(t, []catalog.TableIdentity{tbl("leaf")}, levels[2])
}
