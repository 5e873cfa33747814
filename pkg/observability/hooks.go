// Package observability provides hooks for metrics, tracing, and logging.
//
// This package enables optional instrumentation without adding hard dependencies
// on specific observability backends. Consumers can register hooks at startup
// to receive events about scene processing and cache operations.
//
// # Usage
//
// Register hooks at application startup:
//
//	func main() {
//	    observability.SetProcessingHooks(&myProcessingHooks{})
//	    observability.SetCacheHooks(&myCacheHooks{})
//	    // ... run application
//	}
//
// Libraries call hooks to emit events:
//
//	observability.Processing().OnSceneComplete(ctx, idx, shapeCount, warningCount, err)
package observability

import (
	"context"
	"sync"
	"time"
)

// =============================================================================
// Processing Hooks
// =============================================================================

// ProcessingHooks receives events from the scene processing pipeline.
type ProcessingHooks interface {
	// OnProcessStart fires before a batch of raw scenes is processed.
	OnProcessStart(ctx context.Context, sceneCount int)

	// OnSceneComplete fires after each scene, including failed ones.
	OnSceneComplete(ctx context.Context, sceneIdx, shapeCount, warningCount int, err error)

	// OnProcessComplete fires when the whole batch is assembled.
	OnProcessComplete(ctx context.Context, validScenes int, duration time.Duration, err error)
}

// =============================================================================
// Cache Hooks
// =============================================================================

// CacheHooks receives events from cache operations.
type CacheHooks interface {
	// OnCacheHit records a cache hit.
	OnCacheHit(ctx context.Context, keyType string)

	// OnCacheMiss records a cache miss.
	OnCacheMiss(ctx context.Context, keyType string)

	// OnCacheSet records a cache write.
	OnCacheSet(ctx context.Context, keyType string, size int)
}

// =============================================================================
// No-op Implementations
// =============================================================================

// NoopProcessingHooks is a no-op implementation of ProcessingHooks.
type NoopProcessingHooks struct{}

func (NoopProcessingHooks) OnProcessStart(context.Context, int)                          {}
func (NoopProcessingHooks) OnSceneComplete(context.Context, int, int, int, error)        {}
func (NoopProcessingHooks) OnProcessComplete(context.Context, int, time.Duration, error) {}

// NoopCacheHooks is a no-op implementation of CacheHooks.
type NoopCacheHooks struct{}

func (NoopCacheHooks) OnCacheHit(context.Context, string)      {}
func (NoopCacheHooks) OnCacheMiss(context.Context, string)     {}
func (NoopCacheHooks) OnCacheSet(context.Context, string, int) {}

// =============================================================================
// Global Hook Registry
// =============================================================================

var (
	processingHooks ProcessingHooks = NoopProcessingHooks{}
	cacheHooks      CacheHooks      = NoopCacheHooks{}
	hooksMu         sync.RWMutex
)

// SetProcessingHooks registers custom processing hooks.
// This should be called once at application startup before any processing.
func SetProcessingHooks(h ProcessingHooks) {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	if h != nil {
		processingHooks = h
	}
}

// SetCacheHooks registers custom cache hooks.
// This should be called once at application startup before any cache operations.
func SetCacheHooks(h CacheHooks) {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	if h != nil {
		cacheHooks = h
	}
}

// Processing returns the registered processing hooks.
func Processing() ProcessingHooks {
	hooksMu.RLock()
	defer hooksMu.RUnlock()
	return processingHooks
}

// Cache returns the registered cache hooks.
func Cache() CacheHooks {
	hooksMu.RLock()
	defer hooksMu.RUnlock()
	return cacheHooks
}

// Reset restores all hooks to their no-op defaults.
// This is primarily useful for testing.
func Reset() {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	processingHooks = NoopProcessingHooks{}
	cacheHooks = NoopCacheHooks{}
}
