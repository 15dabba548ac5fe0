// Package observability provides hooks for metrics, tracing, and logging.
//
// Consumers register hooks at startup to receive events about cache
// operations, wiki resolution tiers, per-plugin generation and outgoing HTTP
// calls. Libraries only ever call the registered hooks; the defaults are
// no-ops, so nothing here depends on a metrics backend.
//
// # Usage
//
//	func main() {
//	    observability.SetCacheHooks(&myCacheHooks{})
//	    observability.SetResolverHooks(&myResolverHooks{})
//	    // ... run application
//	}
//
// Libraries call hooks to emit events:
//
//	observability.Resolver().OnTier(ctx, "override", artifactID, true, nil)
package observability

import (
	"context"
	"sync"
	"time"
)

// =============================================================================
// Cache Hooks
// =============================================================================

// CacheHooks receives events from cache operations. kind is the cache entry
// kind ("page", "link", ...).
type CacheHooks interface {
	// OnCacheHit records a fresh entry being served.
	OnCacheHit(ctx context.Context, kind string)

	// OnCacheMiss records an absent or expired entry.
	OnCacheMiss(ctx context.Context, kind string)

	// OnCacheSet records a cache write.
	OnCacheSet(ctx context.Context, kind string, size int)

	// OnCacheCorrupt records an unreadable entry that was treated as a miss.
	OnCacheCorrupt(ctx context.Context, kind, key string)
}

// =============================================================================
// Resolver Hooks
// =============================================================================

// ResolverHooks receives events from wiki page resolution.
type ResolverHooks interface {
	// OnTier records the outcome of one resolution tier for a plugin.
	OnTier(ctx context.Context, tier, artifactID string, found bool, err error)
}

// =============================================================================
// Generator Hooks
// =============================================================================

// GeneratorHooks receives events from the batch generator.
type GeneratorHooks interface {
	OnPluginStart(ctx context.Context, artifactID string)
	OnPluginComplete(ctx context.Context, artifactID string, duration time.Duration, err error)
}

// =============================================================================
// HTTP Hooks
// =============================================================================

// HTTPHooks receives events from HTTP client operations.
type HTTPHooks interface {
	// OnRequest records an outgoing HTTP request.
	OnRequest(ctx context.Context, method, host, path string)

	// OnResponse records an HTTP response.
	OnResponse(ctx context.Context, method, host, path string, statusCode int, duration time.Duration)

	// OnError records an HTTP error (network failure, timeout).
	OnError(ctx context.Context, method, host, path string, err error)
}

// =============================================================================
// No-op Implementations
// =============================================================================

// NoopCacheHooks is a no-op implementation of CacheHooks.
type NoopCacheHooks struct{}

func (NoopCacheHooks) OnCacheHit(context.Context, string)             {}
func (NoopCacheHooks) OnCacheMiss(context.Context, string)            {}
func (NoopCacheHooks) OnCacheSet(context.Context, string, int)        {}
func (NoopCacheHooks) OnCacheCorrupt(context.Context, string, string) {}

// NoopResolverHooks is a no-op implementation of ResolverHooks.
type NoopResolverHooks struct{}

func (NoopResolverHooks) OnTier(context.Context, string, string, bool, error) {}

// NoopGeneratorHooks is a no-op implementation of GeneratorHooks.
type NoopGeneratorHooks struct{}

func (NoopGeneratorHooks) OnPluginStart(context.Context, string)                          {}
func (NoopGeneratorHooks) OnPluginComplete(context.Context, string, time.Duration, error) {}

// NoopHTTPHooks is a no-op implementation of HTTPHooks.
type NoopHTTPHooks struct{}

func (NoopHTTPHooks) OnRequest(context.Context, string, string, string)                      {}
func (NoopHTTPHooks) OnResponse(context.Context, string, string, string, int, time.Duration) {}
func (NoopHTTPHooks) OnError(context.Context, string, string, string, error)                 {}

// =============================================================================
// Global Hook Registry
// =============================================================================

var (
	cacheHooks     CacheHooks     = NoopCacheHooks{}
	resolverHooks  ResolverHooks  = NoopResolverHooks{}
	generatorHooks GeneratorHooks = NoopGeneratorHooks{}
	httpHooks      HTTPHooks      = NoopHTTPHooks{}
	hooksMu        sync.RWMutex
)

// SetCacheHooks registers custom cache hooks.
// This should be called once at application startup before any cache operations.
func SetCacheHooks(h CacheHooks) {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	if h != nil {
		cacheHooks = h
	}
}

// SetResolverHooks registers custom resolver hooks.
func SetResolverHooks(h ResolverHooks) {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	if h != nil {
		resolverHooks = h
	}
}

// SetGeneratorHooks registers custom generator hooks.
func SetGeneratorHooks(h GeneratorHooks) {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	if h != nil {
		generatorHooks = h
	}
}

// SetHTTPHooks registers custom HTTP hooks.
// This should be called once at application startup before any HTTP operations.
func SetHTTPHooks(h HTTPHooks) {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	if h != nil {
		httpHooks = h
	}
}

// Cache returns the registered cache hooks.
func Cache() CacheHooks {
	hooksMu.RLock()
	defer hooksMu.RUnlock()
	return cacheHooks
}

// Resolver returns the registered resolver hooks.
func Resolver() ResolverHooks {
	hooksMu.RLock()
	defer hooksMu.RUnlock()
	return resolverHooks
}

// Generator returns the registered generator hooks.
func Generator() GeneratorHooks {
	hooksMu.RLock()
	defer hooksMu.RUnlock()
	return generatorHooks
}

// HTTP returns the registered HTTP hooks.
func HTTP() HTTPHooks {
	hooksMu.RLock()
	defer hooksMu.RUnlock()
	return httpHooks
}

// Reset restores all hooks to their no-op defaults.
// This is primarily useful for testing.
func Reset() {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	cacheHooks = NoopCacheHooks{}
	resolverHooks = NoopResolverHooks{}
	generatorHooks = NoopGeneratorHooks{}
	httpHooks = NoopHTTPHooks{}
}
