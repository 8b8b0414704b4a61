// Package cache stores computed chart geometry and rendered artifacts.
//
// Entries are opaque byte slices addressed by string keys. Keys are built by
// a [Keyer] from a hash of the input data plus every option that influences
// the output, so two runs over the same file with the same settings share
// entries while any change to data, size, title or config misses.
//
// Two implementations are provided: [FileCache] for CLI use and [NullCache]
// when caching is disabled.
package cache

import (
	"context"
	"time"
)

// Time-to-live values for the cached stages.
const (
	// TTLLayout is how long resolved chart geometry is kept.
	TTLLayout = 7 * 24 * time.Hour

	// TTLArtifact is how long rendered SVG/PNG/PDF/JSON output is kept.
	TTLArtifact = 7 * 24 * time.Hour
)

// Cache is a byte-oriented key/value store with per-entry expiry.
type Cache interface {
	// Get returns the stored value and whether it was found. Expired or
	// corrupt entries report a miss, not an error.
	Get(ctx context.Context, key string) ([]byte, bool, error)

	// Set stores data under key. A ttl of zero means no expiry.
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error

	// Delete removes key. Deleting a missing key is not an error.
	Delete(ctx context.Context, key string) error

	// Close releases resources held by the cache.
	Close() error
}

// Clearer is implemented by caches that can drop every entry at once.
type Clearer interface {
	// Clear removes all entries and returns how many were removed.
	Clear(ctx context.Context) (int, error)
}
