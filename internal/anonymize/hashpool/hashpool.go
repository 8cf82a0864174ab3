// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package hashpool deterministically maps an input byte buffer onto an index
into a finite pool.

It is the single piece of machinery that the rest of the anonymization
engine's referential-integrity guarantee depends on: two independent calls
with the same input bytes, against a pool of the same size, must always
land on the same index — in this process, in a different process, or in a
process written in a different language entirely.

# Algorithm

The index is `uint64(MD5(input)[:8]) mod N`, reading the first eight bytes
of the digest as a big-endian unsigned integer. MD5 is not used for any
security property here — only for its uniform, stable distribution — so a
cryptographically broken collision resistance does not matter.
*/
package hashpool

import (
	"crypto/md5"
	"encoding/binary"
	"fmt"
)

// roleSeparator disambiguates salted sub-draws from the draw's own input.
// 0x1F (ASCII Unit Separator) cannot appear in a role label or typical
// input text, so "role"+sep+"input" never collides with a different
// (role, input) pair that happens to concatenate to the same bytes.
const roleSeparator = 0x1F

// Index returns a deterministic position in [0, poolSize) for input.
//
// It panics if poolSize <= 0: every caller owns a non-empty, compile-time
// known pool, so a zero-size pool is a programming error, not recoverable
// input.
func Index(input []byte, poolSize int) int {
	if poolSize <= 0 {
		panic(fmt.Sprintf("hashpool: pool size must be positive, got %d", poolSize))
	}

	sum := md5.Sum(input)
	value := binary.BigEndian.Uint64(sum[:8])

	return int(value % uint64(poolSize))
}

// SaltedIndex is Index for a fan-out sub-draw: it salts input with a role
// label so that, e.g., the "first name" and "last name" draws used to
// build an Email never pick the same underlying random stream.
func SaltedIndex(role string, input []byte, poolSize int) int {
	buf := make([]byte, 0, len(role)+1+len(input))
	buf = append(buf, role...)
	buf = append(buf, roleSeparator)
	buf = append(buf, input...)

	return Index(buf, poolSize)
}

// Pick returns pool[Index(input, len(pool))]. It panics if pool is empty.
func Pick(input []byte, pool []string) string {
	return pool[Index(input, len(pool))]
}

// SaltedPick returns pool[SaltedIndex(role, input, len(pool))].
func SaltedPick(role string, input []byte, pool []string) string {
	return pool[SaltedIndex(role, input, len(pool))]
}
