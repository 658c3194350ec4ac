package cache

import (
	"fmt"
	"sync"
	"time"

	"quote-service/models"
)

const (
	// DefaultTTL is how long a computed offer list may be served from cache.
	DefaultTTL = 5 * time.Minute

	// DefaultMaxEntries is the high-water mark that triggers a bulk sweep
	// of expired entries on write.
	DefaultMaxEntries = 1000
)

type entry struct {
	offers     []models.CarrierOffer
	computedAt time.Time
}

// QuoteCache is a bounded, TTL-based in-process store of computed offer
// lists. Expiry is lazy: a stale entry is ignored on read and overwritten on
// the next put for its key. When the map grows past maxEntries, a put also
// sweeps every expired entry in one pass. A cold cache is a correct cache;
// nothing here survives the process.
type QuoteCache struct {
	mu         sync.RWMutex
	entries    map[string]entry
	ttl        time.Duration
	maxEntries int
	now        func() time.Time
}

// New creates a QuoteCache with the given TTL and sweep threshold.
// Non-positive arguments fall back to the defaults.
func New(ttl time.Duration, maxEntries int) *QuoteCache {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	if maxEntries <= 0 {
		maxEntries = DefaultMaxEntries
	}
	return &QuoteCache{
		entries:    make(map[string]entry),
		ttl:        ttl,
		maxEntries: maxEntries,
		now:        time.Now,
	}
}

// Key derives the cache key for a normalized request. Only the first three
// digits of the postal code participate, trading rate precision at ZIP
// boundaries for a much higher hit rate.
func Key(weightOz float64, state, postalCode string) string {
	prefix := postalCode
	if len(prefix) > 3 {
		prefix = prefix[:3]
	}
	return fmt.Sprintf("%v-%s-%s", weightOz, state, prefix)
}

// Get returns the cached offers for key, or ok=false on a miss. An entry
// past its TTL counts as a miss and is left in place for the next Put to
// overwrite.
func (c *QuoteCache) Get(key string) ([]models.CarrierOffer, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	e, ok := c.entries[key]
	if !ok {
		return nil, false
	}
	if c.now().Sub(e.computedAt) >= c.ttl {
		return nil, false
	}
	return e.offers, true
}

// Put stores offers for key, replacing any prior entry. If the map has
// grown past the high-water mark, every expired entry is purged in the same
// critical section.
func (c *QuoteCache) Put(key string, offers []models.CarrierOffer) {
	c.mu.Lock()
	defer c.mu.Unlock()

	now := c.now()
	c.entries[key] = entry{offers: offers, computedAt: now}

	if len(c.entries) > c.maxEntries {
		for k, e := range c.entries {
			if now.Sub(e.computedAt) >= c.ttl {
				delete(c.entries, k)
			}
		}
	}
}

// Len reports the current entry count, expired entries included.
func (c *QuoteCache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.entries)
}

// Close releases the cache. It exists so callers can treat the cache as a
// lifecycle-managed resource; the in-memory implementation has nothing to
// release.
func (c *QuoteCache) Close() error {
	return nil
}
