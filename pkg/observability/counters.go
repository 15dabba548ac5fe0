package observability

import (
	"context"
	"sort"
	"sync"
	"time"
)

// Counters tallies cache, resolver and HTTP events. It is safe for
// concurrent use.
type Counters struct {
	NoopCacheHooks
	NoopResolverHooks
	NoopHTTPHooks

	mu     sync.Mutex
	counts map[string]int
}

// NewCounters returns an empty counter set.
func NewCounters() *Counters {
	return &Counters{counts: make(map[string]int)}
}

func (c *Counters) inc(name string) {
	c.mu.Lock()
	c.counts[name]++
	c.mu.Unlock()
}

func (c *Counters) OnCacheHit(_ context.Context, kind string)  { c.inc("cache." + kind + ".hit") }
func (c *Counters) OnCacheMiss(_ context.Context, kind string) { c.inc("cache." + kind + ".miss") }
func (c *Counters) OnCacheSet(_ context.Context, kind string, _ int) {
	c.inc("cache." + kind + ".set")
}
func (c *Counters) OnCacheCorrupt(_ context.Context, kind, _ string) {
	c.inc("cache." + kind + ".corrupt")
}

func (c *Counters) OnTier(_ context.Context, tier, _ string, found bool, err error) {
	switch {
	case err != nil:
		c.inc("tier." + tier + ".error")
	case found:
		c.inc("tier." + tier + ".found")
	default:
		c.inc("tier." + tier + ".absent")
	}
}

func (c *Counters) OnRequest(_ context.Context, _, host, _ string) {
	c.inc("http." + host + ".requests")
}

func (c *Counters) OnResponse(_ context.Context, _, host, _ string, status int, _ time.Duration) {
	if status >= 400 {
		c.inc("http." + host + ".errors")
	}
}

func (c *Counters) OnError(_ context.Context, _, host, _ string, _ error) {
	c.inc("http." + host + ".errors")
}

// Get returns the count for name, e.g. "cache.page.hit" or "tier.override.found".
func (c *Counters) Get(name string) int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.counts[name]
}

// Names returns the recorded counter names in sorted order.
func (c *Counters) Names() []string {
	c.mu.Lock()
	defer c.mu.Unlock()
	names := make([]string, 0, len(c.counts))
	for n := range c.counts {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}

var (
	_ CacheHooks    = (*Counters)(nil)
	_ ResolverHooks = (*Counters)(nil)
	_ HTTPHooks     = (*Counters)(nil)
)
