// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package anonymize is the named-transform registry: a set of pure, total
`string -> string` functions that deterministically select a realistic
fake value from a finite pool (or algorithmically redact/synthesize one).

Every function here is safe to call concurrently and never allocates
package-level mutable state; pools are read-only after [pkg/fakedata]'s
package init. Determinism is load-bearing: [hashpool.Index] guarantees
that the same input, against the same pool, always lands on the same
element — across processes, across runs, across independent target
databases — which is what lets the copier anonymize parent and child
tables independently while keeping foreign keys pointing at the right
(also-anonymized) row.
*/
package anonymize

import (
	"fmt"

	"github.com/taibuivan/anonydb/internal/anonymize/hashpool"
	"github.com/taibuivan/anonydb/internal/platform/textnorm"
	"github.com/taibuivan/anonydb/pkg/fakedata"
)

// Func is a named transform: pure, total, deterministic for a given input.
type Func func(string) string

// role labels salt fan-out sub-draws so a composite value (e.g. Email)
// never reuses the same sample stream for two different components.
const (
	roleFirstName    = "first_name"
	roleMaleFirst    = "male_first_name"
	roleFemaleFirst  = "female_first_name"
	roleLastName     = "last_name"
	roleEmailDomain  = "email_domain"
	rolePhoneDigitFn = "phone_digit_%d"
	roleStreetNumber = "street_number"
	roleStreetSuffix = "street_suffix"
	roleCity         = "city"
	roleState        = "state"
	roleStateAbbr    = "state_abbr"
	roleZipCode      = "zip_code"
	roleCountry      = "country"
	rolePassword     = "password"
)

// Registry maps a stable name to its transform, so callers that store
// transform selection as data (config, generated code suggestions) can
// resolve a name back to a [Func].
var Registry = map[string]Func{
	"FirstName":       FirstName,
	"MaleFirstName":   MaleFirstName,
	"FemaleFirstName": FemaleFirstName,
	"LastName":        LastName,
	"FullName":        FullName,
	"Email":           Email,
	"PhoneNumber":     PhoneNumber,
	"StreetAddress":   StreetAddress,
	"City":            City,
	"State":           State,
	"StateAbbr":       StateAbbr,
	"ZipCode":         ZipCode,
	"Country":         Country,
	"Redact":          Redact,
	"LoremText":       LoremText,
	"HashedPassword":  HashedPassword,
}

// Lookup resolves a registered transform by name. ok is false for an
// unregistered name (PartialRedact and Fixed are constructed, not looked
// up, since they carry parameters).
func Lookup(name string) (fn Func, ok bool) {
	fn, ok = Registry[name]
	return fn, ok
}

func draw(role, input string, pool []string) string {
	return hashpool.SaltedPick(role, []byte(input), pool)
}

func phoneDigit(position int, input string) byte {
	role := fmt.Sprintf(rolePhoneDigitFn, position)
	idx := hashpool.SaltedIndex(role, []byte(input), 10)
	return byte('0' + idx)
}
