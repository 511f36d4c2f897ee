// Package cache implements the read-through cache layer used in front of
// the authoritative store: a minimal key-value Store abstraction, a typed
// Facade with entity invalidation, and the TTL policy table.
//
// The cache is an optimization, never a correctness dependency. Every store
// failure degrades to the no-cache path: reads fall through to the database,
// writes are logged and dropped. Staleness after a lost invalidation is
// bounded by the entry's TTL.
package cache

import (
	"context"
	"errors"
	"time"
)

// ErrNotFound indicates the requested key is absent or expired.
var ErrNotFound = errors.New("cache: key not found")

// Store is the minimal contract the facade needs from a key-value backend.
// Implementations must be safe for concurrent use; a single Get/Set/Delete is
// atomic but no multi-key transaction is ever assumed (last write wins).
type Store interface {
	// Get returns the raw value for key, or ErrNotFound when the key is
	// absent or expired. Any other error means the backend is unhealthy.
	Get(ctx context.Context, key string) ([]byte, error)

	// Set stores value under key, overwriting any existing entry. The
	// backend auto-expires the entry after ttl, which must be positive.
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error

	// Delete removes the given keys. Deleting an absent key is not an
	// error. A call with no keys is a no-op.
	Delete(ctx context.Context, keys ...string) error

	// Scan returns all live keys beginning with prefix. Used for
	// entity-wide invalidation.
	Scan(ctx context.Context, prefix string) ([]string, error)
}
