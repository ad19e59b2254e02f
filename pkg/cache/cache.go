// Package cache stores computed layouts and rendered artifacts.
//
// A [Cache] is a byte store with per-entry TTLs. Three backends exist:
// [NullCache] (disabled), [FileCache] (CLI, under the user cache dir) and
// [RedisCache] (shared by server replicas). A [Keyer] derives the keys, so
// every backend sees the same key space:
//
//	layout:<sha256 of dataset hash and layout options>
//	artifact:<sha256 of layout hash and render options>
//
// A [ScopedKeyer] prefixes both so datasets can share one Redis.
package cache

import (
	"context"
	"time"
)

// Cache is a key/value byte store.
type Cache interface {
	// Get returns the data for key and whether it was present and unexpired.
	Get(ctx context.Context, key string) ([]byte, bool, error)
	// Set stores data under key. A ttl <= 0 never expires.
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error
	Delete(ctx context.Context, key string) error
	Close() error
}

// Default lifetimes of cached entries.
const (
	TTLLayout   = 7 * 24 * time.Hour
	TTLArtifact = 30 * 24 * time.Hour
)
