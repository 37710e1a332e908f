// Package cache holds the short-lived listing result cache. The
// invalidation policy is deliberately coarse: every catalog mutation clears
// the whole cache. Fingerprints are cheap to recompute and the catalog is
// read-heavy, so correctness wins over retention.
package cache

import (
	"sync"
	"time"

	"github.com/light-bringer/catalog-service/internal/app/catalog/contracts"
	"github.com/light-bringer/catalog-service/internal/metrics"
	"github.com/light-bringer/catalog-service/internal/pkg/clock"
)

// DefaultTTL bounds staleness for entries that survive between mutations.
const DefaultTTL = 5 * time.Minute

type cachedPage struct {
	page     *contracts.ListResult
	storedAt time.Time
}

// ResultCache maps query fingerprints to previously computed result pages.
// It owns its map exclusively; all access goes through Lookup, Store and
// InvalidateAll, which are safe for concurrent use.
type ResultCache struct {
	mu      sync.RWMutex
	entries map[string]cachedPage
	ttl     time.Duration
	clock   clock.Clock
}

// New creates a ResultCache with the given TTL. A non-positive ttl falls
// back to DefaultTTL.
func New(ttl time.Duration, clk clock.Clock) *ResultCache {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return &ResultCache{
		entries: make(map[string]cachedPage),
		ttl:     ttl,
		clock:   clk,
	}
}

// Lookup returns the cached page for a fingerprint if present and younger
// than the TTL. Expired entries are dropped on access.
func (c *ResultCache) Lookup(fingerprint string) (*contracts.ListResult, bool) {
	c.mu.RLock()
	cached, ok := c.entries[fingerprint]
	c.mu.RUnlock()

	if !ok {
		metrics.CacheMisses.Inc()
		return nil, false
	}

	if c.clock.Now().Sub(cached.storedAt) >= c.ttl {
		c.mu.Lock()
		// Re-check under the write lock; another goroutine may have
		// refreshed the entry meanwhile.
		if current, still := c.entries[fingerprint]; still && current.storedAt.Equal(cached.storedAt) {
			delete(c.entries, fingerprint)
		}
		c.mu.Unlock()
		metrics.CacheMisses.Inc()
		return nil, false
	}

	metrics.CacheHits.Inc()
	return cached.page, true
}

// Store records a result page for a fingerprint at the current time.
func (c *ResultCache) Store(fingerprint string, page *contracts.ListResult) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries[fingerprint] = cachedPage{page: page, storedAt: c.clock.Now()}
}

// InvalidateAll unconditionally clears every entry. Called synchronously on
// the mutation success path, before the HTTP response is written.
func (c *ResultCache) InvalidateAll() {
	c.mu.Lock()
	c.entries = make(map[string]cachedPage)
	c.mu.Unlock()
	metrics.CacheInvalidations.Inc()
}

// Len returns the number of cached pages.
func (c *ResultCache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.entries)
}
