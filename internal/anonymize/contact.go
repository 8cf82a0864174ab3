// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package anonymize

import (
	"fmt"

	"github.com/taibuivan/anonydb/internal/platform/textnorm"
	"github.com/taibuivan/anonydb/pkg/fakedata"
)

// Email composes "first.last@domain" from three independently salted
// draws: first name, last name, and email domain. The local-part is
// case-folded so two differently-cased source values that hash to the
// same pool entries still produce byte-identical emails.
func Email(input string) string {
	first := textnorm.Fold(FirstName(input))
	last := textnorm.Fold(LastName(input))
	domain := draw(roleEmailDomain, input, fakedata.EmailDomains)

	return first + "." + last + "@" + domain
}

// PhoneNumber formats a deterministic US-style number: "(ddd) ddd-dddd".
// Each of the ten digits is an independently salted draw so the number
// does not trivially encode the input's length or digit sum.
func PhoneNumber(input string) string {
	digits := make([]byte, 10)
	for i := range digits {
		digits[i] = phoneDigit(i, input)
	}

	return fmt.Sprintf("(%s) %s-%s", digits[0:3], digits[3:6], digits[6:10])
}
