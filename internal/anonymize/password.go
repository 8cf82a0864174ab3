// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package anonymize

import (
	"log/slog"

	"github.com/taibuivan/anonydb/internal/platform/sec"
	"github.com/taibuivan/anonydb/pkg/fakedata"
)

// fallbackPassphraseHash is returned, already bcrypt-encoded, on the
// unreachable error path in HashedPassword below — a fixed sentinel
// rather than a panic mid-copy over an anonymizer.
const fallbackPassphraseHash = "$2a$10$CwTycUXWue0Thq9StjUM0uJ8o0.LYsU4oA8Jk4HT1v3Ck3x3p3x3u"

// HashedPassword replaces a stored password hash with a bcrypt hash of a
// deterministic synthetic passphrase. Unlike the pool-backed transforms,
// this one is not reversible even in principle — bcrypt is designed that
// way. The passphrase is deterministic per input, but bcrypt salts every
// hash randomly, so the returned string differs from call to call (each
// one verifies against the same passphrase); it is the one registered
// transform whose output is not deterministic.
//
// bcrypt hashing is comparatively expensive (tens of milliseconds); this
// transform should only be bound to columns that are actually password
// hashes, never to bulk text columns.
func HashedPassword(input string) string {
	passphrase := draw(rolePassword, input, fakedata.LoremWords) + "-" + LastName(input)

	hashed, err := sec.HashPassword(passphrase)
	if err != nil {
		// bcrypt only fails on a too-long input or bad cost constant, neither
		// of which can happen here.
		slog.Error("anonymize: bcrypt hashing failed", slog.Any("error", err))
		return fallbackPassphraseHash
	}

	return hashed
}
