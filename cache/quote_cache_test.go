package cache

import (
	"fmt"
	"sync"
	"testing"
	"time"

	"quote-service/models"

	"github.com/stretchr/testify/assert"
)

func testOffers(price float64) []models.CarrierOffer {
	return []models.CarrierOffer{
		{ID: "usps-priority", Carrier: "USPS", Service: "Priority Mail", Price: price, EstimatedDays: "2-3 business days"},
	}
}

func TestKey_UsesPostalPrefix(t *testing.T) {
	assert.Equal(t, "10-MD-212", Key(10, "MD", "21201"))

	// Same first three digits hit the same entry.
	assert.Equal(t, Key(10, "MD", "21201"), Key(10, "MD", "21299"))
	// ZIP+4 coarsens to the same prefix too.
	assert.Equal(t, Key(10, "MD", "21201"), Key(10, "MD", "21201-1234"))

	assert.NotEqual(t, Key(10, "MD", "21201"), Key(10, "MD", "90210"))
	assert.NotEqual(t, Key(10, "MD", "21201"), Key(11, "MD", "21201"))
	assert.NotEqual(t, Key(10, "MD", "21201"), Key(10, "VA", "21201"))
}

func TestKey_FractionalWeight(t *testing.T) {
	assert.Equal(t, "10.5-CA-902", Key(10.5, "CA", "90210"))
}

func TestGetPut_RoundTrip(t *testing.T) {
	c := New(DefaultTTL, DefaultMaxEntries)
	key := Key(10, "MD", "21201")

	_, ok := c.Get(key)
	assert.False(t, ok)

	offers := testOffers(18.00)
	c.Put(key, offers)

	got, ok := c.Get(key)
	assert.True(t, ok)
	assert.Equal(t, offers, got)
}

func TestPut_OverwritesExistingEntry(t *testing.T) {
	c := New(DefaultTTL, DefaultMaxEntries)
	key := Key(10, "MD", "21201")

	c.Put(key, testOffers(18.00))
	c.Put(key, testOffers(22.00))

	got, ok := c.Get(key)
	assert.True(t, ok)
	assert.Equal(t, 22.00, got[0].Price)
	assert.Equal(t, 1, c.Len())
}

func TestGet_ExpiredEntryIsAMiss(t *testing.T) {
	c := New(DefaultTTL, DefaultMaxEntries)
	now := time.Now()
	c.now = func() time.Time { return now }

	key := Key(10, "MD", "21201")
	c.Put(key, testOffers(18.00))

	// Just inside the TTL: still a hit.
	now = now.Add(DefaultTTL - time.Second)
	_, ok := c.Get(key)
	assert.True(t, ok)

	// At the TTL boundary: a miss, but the stale entry stays in place.
	now = now.Add(time.Second)
	_, ok = c.Get(key)
	assert.False(t, ok)
	assert.Equal(t, 1, c.Len())

	// The next put for the key simply replaces the stale entry.
	c.Put(key, testOffers(22.00))
	got, ok := c.Get(key)
	assert.True(t, ok)
	assert.Equal(t, 22.00, got[0].Price)
	assert.Equal(t, 1, c.Len())
}

func TestPut_SweepsExpiredPastHighWaterMark(t *testing.T) {
	c := New(DefaultTTL, 3)
	now := time.Now()
	c.now = func() time.Time { return now }

	for i := 0; i < 3; i++ {
		c.Put(fmt.Sprintf("old-%d", i), testOffers(18.00))
	}
	assert.Equal(t, 3, c.Len())

	// All three age out; the next put pushes the count past the mark and
	// triggers the bulk sweep.
	now = now.Add(DefaultTTL + time.Second)
	c.Put("fresh", testOffers(22.00))
	assert.Equal(t, 1, c.Len())

	_, ok := c.Get("fresh")
	assert.True(t, ok)
}

func TestPut_SweepKeepsLiveEntries(t *testing.T) {
	c := New(DefaultTTL, 2)
	now := time.Now()
	c.now = func() time.Time { return now }

	c.Put("old", testOffers(18.00))
	now = now.Add(DefaultTTL + time.Second)
	c.Put("live-1", testOffers(22.00))
	c.Put("live-2", testOffers(26.00))

	// "old" is gone, the two live entries survive the sweep.
	assert.Equal(t, 2, c.Len())
	_, ok := c.Get("live-1")
	assert.True(t, ok)
	_, ok = c.Get("live-2")
	assert.True(t, ok)
}

func TestQuoteCache_ConcurrentAccess(t *testing.T) {
	c := New(DefaultTTL, 100)

	var wg sync.WaitGroup
	for i := 0; i < 16; i++ {
		wg.Add(1)
		go func(n int) {
			defer wg.Done()
			for j := 0; j < 200; j++ {
				key := Key(float64(j%10), "MD", "21201")
				c.Put(key, testOffers(float64(j)))
				c.Get(key)
				c.Len()
			}
		}(i)
	}
	wg.Wait()

	assert.LessOrEqual(t, c.Len(), 10)
}

func TestNew_DefaultsOnNonPositiveArgs(t *testing.T) {
	c := New(0, 0)
	assert.Equal(t, DefaultTTL, c.ttl)
	assert.Equal(t, DefaultMaxEntries, c.maxEntries)
	assert.NoError(t, c.Close())
}
