package cache

import (
	"context"
	"time"
)

// NullCache satisfies Cache without storing anything: every Get misses and
// every Set is discarded. It is what the CLI's --no-cache flag plugs in,
// and what the Runner falls back to when given a nil cache.
type NullCache struct{}

// NewNullCache creates a cache that never caches.
func NewNullCache() Cache {
	return &NullCache{}
}

func (c *NullCache) Get(ctx context.Context, key string) ([]byte, bool, error) {
	return nil, false, nil
}

func (c *NullCache) Set(ctx context.Context, key string, data []byte, ttl time.Duration) error {
	return nil
}

func (c *NullCache) Delete(ctx context.Context, key string) error {
	return nil
}

func (c *NullCache) Close() error {
	return nil
}

var _ Cache = (*NullCache)(nil)
