// Package cache stores computed routes so repeated queries skip the search.
//
// Three backends implement [Cache]:
//   - [FileCache] for the CLI, one JSON file per entry under the user cache dir
//   - [RedisCache] for the HTTP server, shared between replicas
//   - [NullCache] when caching is disabled (--no-cache)
//
// Keys are produced by a [Keyer] so that every backend agrees on them. A key
// is derived from a hash of the star map document plus the query, so editing
// the map invalidates its routes without explicit eviction.
package cache

import (
	"context"
	"time"
)

// Default lifetimes for cached entries.
const (
	TTLRoute = 7 * 24 * time.Hour
	TTLMap   = time.Hour
)

// Cache is a byte-oriented key/value store with per-entry expiry.
type Cache interface {
	// Get returns the stored value and true, or false on a miss.
	// Expired entries are misses.
	Get(ctx context.Context, key string) ([]byte, bool, error)

	// Set stores data under key. A ttl of zero never expires.
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error

	// Delete removes key. Deleting a missing key is not an error.
	Delete(ctx context.Context, key string) error

	// Close releases the backend's resources.
	Close() error
}
