package quotes

import (
	"fmt"
	"math/big"
	"testing"
	"time"

	"github.com/RaghavSood/swaprouter/swaps"
)

func cachedQuote(validFor time.Duration, now time.Time) swaps.Quote {
	return swaps.Quote{
		Provider:   "test",
		ToAmount:   big.NewInt(100),
		ValidUntil: now.Add(validFor),
	}
}

func newTestCache(ttl time.Duration, capacity int) (*Cache, *time.Time) {
	c := NewCache(ttl, capacity)
	now := time.Now()
	c.now = func() time.Time { return now }
	return c, &now
}

func TestCacheHitWithinTTL(t *testing.T) {
	c, now := newTestCache(30*time.Second, 100)

	c.Put("k", cachedQuote(30*time.Second, *now))

	*now = now.Add(29 * time.Second)
	if _, ok := c.Get("k"); !ok {
		t.Error("expected hit just inside the TTL")
	}
}

func TestCacheMissAfterTTL(t *testing.T) {
	c, now := newTestCache(30*time.Second, 100)

	// quote itself valid for longer than the TTL
	c.Put("k", cachedQuote(5*time.Minute, *now))

	*now = now.Add(31 * time.Second)
	if _, ok := c.Get("k"); ok {
		t.Error("expected miss after TTL elapsed")
	}
	if c.Stats().Entries != 0 {
		t.Error("dead entry not evicted on read")
	}
}

func TestCacheMissAfterQuoteExpiry(t *testing.T) {
	c, now := newTestCache(30*time.Second, 100)

	// quote expires before the cache TTL does
	c.Put("k", cachedQuote(10*time.Second, *now))

	*now = now.Add(11 * time.Second)
	if _, ok := c.Get("k"); ok {
		t.Error("expected miss once the quote's validity window passed")
	}
}

func TestCacheLastWriterWins(t *testing.T) {
	c, now := newTestCache(30*time.Second, 100)

	first := cachedQuote(30*time.Second, *now)
	first.ToAmount = big.NewInt(1)
	second := cachedQuote(30*time.Second, *now)
	second.ToAmount = big.NewInt(2)

	c.Put("k", first)
	c.Put("k", second)

	got, ok := c.Get("k")
	if !ok {
		t.Fatal("expected hit")
	}
	if got.ToAmount.Int64() != 2 {
		t.Errorf("got amount %s, want 2", got.ToAmount)
	}
}

func TestCacheCapacitySweep(t *testing.T) {
	c, now := newTestCache(30*time.Second, 10)

	// Fill past capacity with entries that are already stale...
	for i := 0; i < 10; i++ {
		c.Put(fmt.Sprintf("stale-%d", i), cachedQuote(-time.Second, *now))
	}
	// ...then one more live entry to trip the sweep.
	c.Put("live", cachedQuote(30*time.Second, *now))

	stats := c.Stats()
	if stats.Entries != 1 {
		t.Errorf("entries = %d after sweep, want 1", stats.Entries)
	}
	if _, ok := c.Get("live"); !ok {
		t.Error("live entry swept")
	}
}

func TestCacheClearAndStats(t *testing.T) {
	c, now := newTestCache(30*time.Second, 100)

	c.Put("k", cachedQuote(30*time.Second, *now))
	c.Get("k")
	c.Get("missing")

	stats := c.Stats()
	if stats.Hits != 1 || stats.Misses != 1 {
		t.Errorf("hits/misses = %d/%d, want 1/1", stats.Hits, stats.Misses)
	}

	c.Clear()
	if c.Stats().Entries != 0 {
		t.Error("entries remain after Clear")
	}
}
