package sessions

import (
	"context"
	"time"
)

// Store persists sessions by session key. Implementations must make Get and Set
// atomic per key; the client does no locking of its own.
type Store interface {
	// Get returns the session stored under key. A missing or expired key yields
	// an empty session, not an error.
	Get(ctx context.Context, key string) (*Session, error)

	// Set stores the session under key. A ttl of zero or less means no expiry.
	Set(ctx context.Context, key string, session *Session, ttl time.Duration) error
}
