// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package runlock provides a distributed mutex guarding a single database
from concurrent copy runs.

Two operators (or a human and a scheduled job) launching a copy against the
same target at once would interleave INSERT batches from
unrelated runs against the same tables. The lock turns that race into a
clean rejection: whoever acquires the Redis key first proceeds, the other
fails fast with [ErrLocked].

Architecture:

  - Redis SET NX PX: a single atomic command both creates the lock and
    bounds its lifetime, so a crashed run never wedges the target forever.
  - Optional: when no Redis URL is configured the caller skips locking
    entirely and logs a warning — a lone-operator workflow should not be
    forced to stand up Redis just to run a copy once.
  - Token ownership: Release only clears the key if it still holds the
    token this instance set, so a lock that already expired and was
    reacquired by another run is never torn down from under it.
*/
package runlock

import (
	stdctx "context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

// ErrLocked is returned by Acquire when another run already holds the lock.
var ErrLocked = errors.New("runlock: another copy run holds the lock")

// releaseScript deletes key only if its value still matches token,
// preventing a release from clearing a lock acquired by a later run after
// this one's lease expired.
const releaseScript = `
if redis.call("get", KEYS[1]) == ARGV[1] then
	return redis.call("del", KEYS[1])
else
	return 0
end
`

// keyPrefix namespaces run-lock keys within a shared Redis instance.
const keyPrefix = "anonydb:runlock:"

// Lock is a held distributed mutex. The zero value is not held and Release
// on it is a no-op, which lets a caller defer Release unconditionally even
// along an error path where Acquire never ran.
type Lock struct {
	client *redis.Client
	key    string
	token  string
}

// Acquire attempts to take the run lock for database, holding it for at
// most ttl. It returns [ErrLocked] if another run already holds it.
func Acquire(ctx stdctx.Context, client *redis.Client, database string, ttl time.Duration) (*Lock, error) {
	key := keyPrefix + database
	token := uuid.NewString()

	ok, err := client.SetNX(ctx, key, token, ttl).Result()
	if err != nil {
		return nil, fmt.Errorf("runlock: acquire failed: %w", err)
	}
	if !ok {
		return nil, ErrLocked
	}

	return &Lock{client: client, key: key, token: token}, nil
}

// Release clears the lock if it is still held by this instance. It is safe
// to call on a zero-value Lock or to call more than once.
func (l *Lock) Release(ctx stdctx.Context) error {
	if l == nil || l.client == nil {
		return nil
	}

	if err := l.client.Eval(ctx, releaseScript, []string{l.key}, l.token).Err(); err != nil {
		return fmt.Errorf("runlock: release failed: %w", err)
	}

	return nil
}

// AcquireOptional behaves like [Acquire], except a nil client (no Redis
// configured) skips locking entirely and logs a warning rather than
// failing — a copy run with no coordination backend still proceeds, just
// without protection against a concurrent second run.
func AcquireOptional(ctx stdctx.Context, client *redis.Client, database string, ttl time.Duration, logger *slog.Logger) (*Lock, error) {
	if client == nil {
		logger.Warn("runlock: no redis configured, skipping distributed run lock",
			slog.String("database", database))
		return nil, nil
	}

	return Acquire(ctx, client, database, ttl)
}
