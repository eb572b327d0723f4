package pricing

import (
	"context"
	"time"

	"github.com/StealthyScripter/TradingSystem-sub000/internal/common"
	"github.com/StealthyScripter/TradingSystem-sub000/internal/interfaces"
	"github.com/StealthyScripter/TradingSystem-sub000/internal/models"
)

// Resolver composes the quote client, limiter, cache and estimator into a
// single price-resolution operation. Live fetches within one batch run
// sequentially — the limiter's pacing state is shared across symbols.
type Resolver struct {
	client  interfaces.QuoteClient
	limiter *Limiter
	cache   *Cache
	logger  *common.Logger
	now     func() time.Time // injectable clock for testing
}

// NewResolver creates a price resolver. The limiter is injected rather than
// shared module state so concurrent refresh cycles can own separate pacing.
func NewResolver(client interfaces.QuoteClient, limiter *Limiter, cache *Cache, logger *common.Logger) *Resolver {
	return &Resolver{
		client:  client,
		limiter: limiter,
		cache:   cache,
		logger:  logger,
		now:     time.Now,
	}
}

// Cache exposes the resolver's cache so callers can warm it from persisted
// quotes and persist it after a pass.
func (r *Resolver) Cache() *Cache {
	return r.cache
}

// ResolvePrices resolves every symbol in the batch, in preference order:
// fresh cache, live fetch, stale cache, estimate. It always returns an entry
// per symbol; the Source tag distinguishes quality. Throttling aborts the
// live-fetch pass for the whole batch and starts the cooldown; cancellation
// between fetch attempts sends the remaining symbols down the fallback chain.
func (r *Resolver) ResolvePrices(ctx context.Context, symbols []string) map[string]models.PriceQuote {
	resolved := make(map[string]models.PriceQuote, len(symbols))

	// Partition into fresh-cached and needs-resolution
	var pending []string
	seen := make(map[string]bool, len(symbols))
	for _, raw := range symbols {
		symbol := models.NormalizeSymbol(raw)
		if symbol == "" || seen[symbol] {
			continue
		}
		seen[symbol] = true

		if q, ok := r.cache.Get(symbol); ok && !r.cache.IsStale(q) {
			resolved[symbol] = q
			continue
		}
		pending = append(pending, symbol)
	}

	// Live-fetch pass, skipped entirely while in cooldown
	if len(pending) > 0 && !r.limiter.InCooldown() {
		remaining := pending
		pending = pending[:0]

		for i, symbol := range remaining {
			if ctx.Err() != nil {
				pending = append(pending, remaining[i:]...)
				break
			}
			if err := r.limiter.Throttle(ctx); err != nil {
				pending = append(pending, remaining[i:]...)
				break
			}

			price, err := r.client.FetchPrice(ctx, symbol)
			if err == nil {
				if q, ok := r.cache.Put(symbol, price, models.SourceLive); ok {
					resolved[symbol] = q
					continue
				}
				// Provider returned a non-finite price; fall through.
				pending = append(pending, symbol)
				continue
			}

			if interfaces.IsThrottled(err) {
				r.limiter.RecordThrottled()
				r.logger.Warn().
					Str("symbol", symbol).
					Int("skipped", len(remaining)-i).
					Msg("Provider throttled; aborting live fetches for batch")
				pending = append(pending, remaining[i:]...)
				break
			}

			r.logger.Debug().Err(err).Str("symbol", symbol).Msg("Quote fetch failed")
			pending = append(pending, symbol)
		}
	}

	// Fallbacks: stale cache first, then estimate. Estimates are not cached —
	// they are synthetic, and the next pass should retry a live fetch.
	for _, symbol := range pending {
		if q, ok := r.cache.Get(symbol); ok {
			q.Source = models.SourceStaleCache
			resolved[symbol] = q
			continue
		}
		resolved[symbol] = models.PriceQuote{
			Symbol:    symbol,
			Price:     Estimate(symbol),
			FetchedAt: r.now(),
			Source:    models.SourceEstimate,
		}
	}

	return resolved
}

// Ensure Resolver implements PriceResolver
var _ interfaces.PriceResolver = (*Resolver)(nil)
