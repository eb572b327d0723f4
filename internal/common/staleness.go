// Package common provides shared utilities for the tracking engine
package common

import "time"

// Freshness TTLs and pacing windows for price resolution
const (
	// FreshnessQuote is the age beyond which a cached price is stale and a
	// live fetch is attempted. Stale entries are kept — they remain the
	// fallback of last resort before estimation.
	FreshnessQuote = 5 * time.Minute

	// ThrottleCooldown is how long live fetches stay suspended after a
	// provider rate-limit signal.
	ThrottleCooldown = 60 * time.Second

	// MinFetchDelay and MaxFetchDelay bound the pacing between consecutive
	// live fetches. The gap between them is filled with jitter so refresh
	// cycles from restarts don't line up into synchronized bursts.
	MinFetchDelay = 200 * time.Millisecond
	MaxFetchDelay = 600 * time.Millisecond
)

// IsFresh returns true if the given timestamp is within the TTL
func IsFresh(updated time.Time, ttl time.Duration) bool {
	if updated.IsZero() {
		return false
	}
	return time.Since(updated) < ttl
}
