// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package anonymize

import "github.com/taibuivan/anonydb/pkg/fakedata"

// FirstName draws a first name from the combined male/female pool.
func FirstName(input string) string {
	return draw(roleFirstName, input, fakedata.FirstNames)
}

// MaleFirstName draws a first name from the male-only pool.
func MaleFirstName(input string) string {
	return draw(roleMaleFirst, input, fakedata.MaleFirstNames)
}

// FemaleFirstName draws a first name from the female-only pool.
func FemaleFirstName(input string) string {
	return draw(roleFemaleFirst, input, fakedata.FemaleFirstNames)
}

// LastName draws a surname from the last-name pool.
func LastName(input string) string {
	return draw(roleLastName, input, fakedata.LastNames)
}

// FullName composes two independently salted draws: "First Last".
func FullName(input string) string {
	return FirstName(input) + " " + LastName(input)
}
