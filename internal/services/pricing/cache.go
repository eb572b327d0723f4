package pricing

import (
	"sync"
	"time"

	"github.com/StealthyScripter/TradingSystem-sub000/internal/models"
)

// Cache is a keyed store of last-known prices with a staleness predicate.
// Staleness only changes which branch of the resolver is taken — the cache
// never evicts, so a stale entry stays available as the final fallback
// before estimation.
type Cache struct {
	mu      sync.RWMutex
	entries map[string]models.PriceQuote
	maxAge  time.Duration

	now func() time.Time // injectable clock for testing
}

// NewCache creates a cache whose entries go stale after maxAge.
func NewCache(maxAge time.Duration) *Cache {
	return &Cache{
		entries: make(map[string]models.PriceQuote),
		maxAge:  maxAge,
		now:     time.Now,
	}
}

// Get retrieves the cached quote for a symbol.
func (c *Cache) Get(symbol string) (models.PriceQuote, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	q, ok := c.entries[models.NormalizeSymbol(symbol)]
	return q, ok
}

// Put stores a quote and returns it. Non-finite or non-positive prices are
// dropped — they are fetch failures, not observations.
func (c *Cache) Put(symbol string, price float64, source models.QuoteSource) (models.PriceQuote, bool) {
	q := models.PriceQuote{
		Symbol:    models.NormalizeSymbol(symbol),
		Price:     price,
		FetchedAt: c.now(),
		Source:    source,
	}
	if !q.Valid() {
		return models.PriceQuote{}, false
	}
	c.mu.Lock()
	c.entries[q.Symbol] = q
	c.mu.Unlock()
	return q, true
}

// IsStale reports whether a quote is older than the cache's max age.
func (c *Cache) IsStale(q models.PriceQuote) bool {
	if q.FetchedAt.IsZero() {
		return true
	}
	return c.now().Sub(q.FetchedAt) >= c.maxAge
}

// Warm seeds the cache with previously persisted quotes. Invalid entries
// are skipped. Timestamps are preserved so staleness carries across restarts.
func (c *Cache) Warm(quotes []*models.PriceQuote) {
	c.mu.Lock()
	defer c.mu.Unlock()
	for _, q := range quotes {
		if q == nil || !q.Valid() {
			continue
		}
		entry := *q
		entry.Symbol = models.NormalizeSymbol(entry.Symbol)
		c.entries[entry.Symbol] = entry
	}
}

// Entries returns a snapshot of all cached quotes.
func (c *Cache) Entries() []models.PriceQuote {
	c.mu.RLock()
	defer c.mu.RUnlock()
	out := make([]models.PriceQuote, 0, len(c.entries))
	for _, q := range c.entries {
		out = append(out, q)
	}
	return out
}
