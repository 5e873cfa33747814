// Package cache provides response caching for processed visualizations.
//
// Processing is deterministic, so a response can be cached by the content
// hash of its request. Three backends are provided: a file cache for CLI
// usage, a Redis cache for the service deployment, and a null cache that
// disables caching entirely.
package cache

import (
	"context"
	"errors"
	"time"
)

// Cache TTLs per entry kind.
const (
	// TTLVisualization is how long processed responses stay cached.
	TTLVisualization = 24 * time.Hour

	// TTLPreview is how long rendered SVG previews stay cached.
	TTLPreview = time.Hour
)

// Sentinel errors for caching operations.
var (
	// ErrCacheMiss is returned when an item is not found in cache.
	ErrCacheMiss = errors.New("cache miss")
)

// Cache stores and retrieves byte payloads by key.
type Cache interface {
	// Get retrieves a value. The second return reports whether it was found.
	Get(ctx context.Context, key string) ([]byte, bool, error)

	// Set stores a value with the given TTL. A zero TTL means no expiry.
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error

	// Delete removes a value. Deleting a missing key is not an error.
	Delete(ctx context.Context, key string) error

	// Close releases any resources held by the cache.
	Close() error
}
