// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package anonymize

import (
	"strconv"

	"github.com/taibuivan/anonydb/internal/anonymize/hashpool"
	"github.com/taibuivan/anonydb/pkg/fakedata"
)

// StreetAddress composes "<number> <LastName> <Suffix>" from three
// independently salted draws.
func StreetAddress(input string) string {
	number := 1 + hashpool.SaltedIndex(roleStreetNumber, []byte(input), 9999)
	suffix := draw(roleStreetSuffix, input, fakedata.StreetSuffixes)

	return strconv.Itoa(number) + " " + LastName(input) + " " + suffix
}

// City draws a city name from the city pool.
func City(input string) string {
	return draw(roleCity, input, fakedata.Cities)
}

// State draws a state name from the state pool.
func State(input string) string {
	return draw(roleState, input, fakedata.States)
}

// StateAbbr draws a state abbreviation, sampled independently of [State]
// (it is not guaranteed to match the same state — spec.md treats State
// and StateAbbr as separately-sampled pools).
func StateAbbr(input string) string {
	return draw(roleStateAbbr, input, fakedata.StateAbbreviations)
}

// ZipCode draws a ZIP code from the ZIP pool.
func ZipCode(input string) string {
	return draw(roleZipCode, input, fakedata.ZipCodes)
}

// Country draws a country name from the country pool.
func Country(input string) string {
	return draw(roleCountry, input, fakedata.Countries)
}
