// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package textnorm provides Unicode-aware case folding used when joining
sampled pool values into composite anonymized output (e.g. an email
address built from a first and last name draw).

It wraps golang.org/x/text/cases instead of strings.ToLower/ToUpper so that
non-ASCII names (e.g. "É", "İ") fold the way a real mailbox-normalizing
system would, rather than leaving non-ASCII bytes untouched.
*/
package textnorm

import (
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

var (
	lowerCaser = cases.Lower(language.Und)
	titleCaser = cases.Title(language.Und)
)

// Fold lower-cases s using Unicode case-folding rules, suitable for
// building email local-parts and other case-insensitive identifiers.
func Fold(s string) string {
	return lowerCaser.String(s)
}

// TitleCase renders s in title case. No anonymizer in this module calls
// it; the pool entries are stored title-cased already.
func TitleCase(s string) string {
	return titleCaser.String(s)
}
