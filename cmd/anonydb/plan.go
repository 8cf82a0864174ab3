// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package main

import (
	"github.com/taibuivan/anonydb/internal/anonymize"
	"github.com/taibuivan/anonydb/internal/catalog"
	"github.com/taibuivan/anonydb/internal/columnspec"
	"github.com/taibuivan/anonydb/internal/orchestrator"
)

// buildPlan returns the table-by-table anonymization policy for one copy
// run. This is the one place that names a deployment's actual schema —
// every other package in this module is schema-agnostic. Operators
// building their own anonydb binary replace this function with their own
// table list.
//
// Data columns not named in a table's spec are rejected by the coverage
// validator (internal/coverage): every non-skipped table's spec must
// account for every column that is neither a primary-key nor a
// foreign-key member, so a forgotten column fails the run rather than
// leaking through unanonymized. Key columns left out are passed through
// unchanged by the copier.
func buildPlan() []orchestrator.TableRequest {
	users, err := columnspec.New().
		Column("id").AsIs().
		Column("email").MapString(anonymize.Email).
		Column("first_name").MapString(anonymize.FirstName).
		Column("last_name").MapString(anonymize.LastName).
		Column("phone").MapString(anonymize.PhoneNumber).
		Column("password_hash").MapString(anonymize.HashedPassword).
		Column("created_at").AsIs().
		Build()
	if err != nil {
		panic(err)
	}

	orders, err := columnspec.New().
		Column("id").AsIs().
		Column("user_id").AsIs().
		Column("shipping_address").MapString(anonymize.StreetAddress).
		Column("shipping_city").MapString(anonymize.City).
		Column("shipping_zip").MapString(anonymize.ZipCode).
		Column("total_cents").AsIs().
		Column("created_at").AsIs().
		Build()
	if err != nil {
		panic(err)
	}

	return []orchestrator.TableRequest{
		{Table: catalog.TableIdentity{Schema: "public", Name: "users"}, Spec: users},
		{Table: catalog.TableIdentity{Schema: "public", Name: "orders"}, Spec: orders},

		// audit_log carries no anonymization value and is excluded from
		// the replica entirely; its rows never leave the source.
		{Table: catalog.TableIdentity{Schema: "public", Name: "audit_log"}, Skipped: true},
	}
}
