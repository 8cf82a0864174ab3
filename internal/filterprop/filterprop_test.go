package filterprop_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/taibuivan/anonydb/internal/catalog"
	"github.com/taibuivan/anonydb/internal/filterprop"
)

func tbl(name string) catalog.TableIdentity {
	return catalog.TableIdentity{Schema: "public", Name: name}
}

func TestCompute_PropagatesThroughFKChain(t *testing.T) {
	levels := [][]catalog.TableIdentity{
		{tbl("customers")},
		{tbl("orders")},
		{tbl("order_items")},
	}
	fks := []catalog.ForeignKey{
		{Child: tbl("orders"), Parent: tbl("customers"), ChildColumns: []string{"customer_id"}, ParentColumns: []string{"id"}},
		{Child: tbl("order_items"), Parent: tbl("orders"), ChildColumns: []string{"order_id"}, ParentColumns: []string{"id"}},
	}
	raw := filterprop.RawFilters{
		tbl("customers"): "active = true",
	}

	effective := filterprop.Compute(levels, fks, raw)

	assert.Equal(t, "active = true", effective[tbl("customers")])
	assert.Equal(t,
		`"customer_id" IN (SELECT "id" FROM "public"."customers" WHERE active = true)`,
		effective[tbl("orders")])
	assert.Equal(t,
		`"order_id" IN (SELECT "id" FROM "public"."orders" WHERE "customer_id" IN (SELECT "id" FROM "public"."customers" WHERE active = true))`,
		effective[tbl("order_items")])
}

func TestCompute_ParentWithNoFilterContributesNothing(t *testing.T) {
	levels := [][]catalog.TableIdentity{
		{tbl("customers")},
		{tbl("orders")},
	}
	fks := []catalog.ForeignKey{
		{Child: tbl("orders"), Parent: tbl("customers"), ChildColumns: []string{"customer_id"}, ParentColumns: []string{"id"}},
	}

	effective := filterprop.Compute(levels, fks, filterprop.RawFilters{})

	assert.Empty(t, effective[tbl("customers")])
	assert.Empty(t, effective[tbl("orders")])
}

func TestCompute_OwnFilterCombinedWithPropagated(t *testing.T) {
	levels := [][]catalog.TableIdentity{
		{tbl("customers")},
		{tbl("orders")},
	}
	fks := []catalog.ForeignKey{
		{Child: tbl("orders"), Parent: tbl("customers"), ChildColumns: []string{"customer_id"}, ParentColumns: []string{"id"}},
	}
	raw := filterprop.RawFilters{
		tbl("customers"): "active = true",
		tbl("orders"):    "status <> 'cancelled'",
	}

	effective := filterprop.Compute(levels, fks, raw)

	assert.Equal(t,
		`status <> 'cancelled' AND "customer_id" IN (SELECT "id" FROM "public"."customers" WHERE active = true)`,
		effective[tbl("orders")])
}

func TestCompute_CompositeForeignKey(t *testing.T) {
	levels := [][]catalog.TableIdentity{
		{tbl("tenants")},
		{tbl("subscriptions")},
	}
	fks := []catalog.ForeignKey{
		{
			Child: tbl("subscriptions"), Parent: tbl("tenants"),
			ChildColumns:  []string{"tenant_region", "tenant_id"},
			ParentColumns: []string{"region", "id"},
		},
	}
	raw := filterprop.RawFilters{tbl("tenants"): "region = 'us'"}

	effective := filterprop.Compute(levels, fks, raw)

	assert.Equal(t,
		`("tenant_region", "tenant_id") IN (SELECT "region", "id" FROM "public"."tenants" WHERE region = 'us')`,
		effective[tbl("subscriptions")])
}

func TestCompute_SelfReferencingFKNeverPropagates(t *testing.T) {
	levels := [][]catalog.TableIdentity{{tbl("employees")}}
	fks := []catalog.ForeignKey{
		{Child: tbl("employees"), Parent: tbl("employees"), SelfReferencing: true, ChildColumns: []string{"manager_id"}, ParentColumns: []string{"id"}},
	}
	raw := filterprop.RawFilters{tbl("employees"): "active = true"}

	effective := filterprop.Compute(levels, fks, raw)

	assert.Equal(t, "active = true", effective[tbl("employees")])
}
