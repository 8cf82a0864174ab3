// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package anonymize

import (
	"strconv"
	"strings"

	"github.com/taibuivan/anonydb/pkg/fakedata"
)

// roleLorem salts the word-index draws that build LoremText's output.
const roleLorem = "lorem_word"

// LoremText concatenates space-separated words from the lorem pool, each
// an independently salted draw, until the output reaches the input's
// length. Words are never truncated. Drawing stops at the first word that
// would make the output more than one character longer than the input;
// that word is dropped, so the output can then be shorter than the input
// by more than one character. The first word is always kept, so an input
// shorter than that word yields a longer output.
func LoremText(input string) string {
	target := len([]rune(input))
	if target == 0 {
		return ""
	}

	var b strings.Builder
	wordIndex := 0
	for b.Len() < target {
		role := roleLorem + strconv.Itoa(wordIndex)
		word := draw(role, input, fakedata.LoremWords)
		wordIndex++

		next := b.Len()
		if next > 0 {
			next++ // account for the separating space
		}
		next += len(word)

		if next > target+1 && b.Len() > 0 {
			break
		}

		if b.Len() > 0 {
			b.WriteByte(' ')
		}
		b.WriteString(word)
	}

	return b.String()
}
