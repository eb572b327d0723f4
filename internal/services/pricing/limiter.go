// Package pricing resolves current prices for symbol batches through a
// fallback chain: fresh cache, live fetch, stale cache, estimate.
package pricing

import (
	"context"
	"math/rand"
	"sync"
	"time"
)

// Limiter paces outbound quote requests and tracks the post-throttle
// cooldown window. All mutable state is guarded by the mutex; a single
// resolver owns one instance but callers from multiple goroutines are safe.
type Limiter struct {
	mu            sync.Mutex
	minDelay      time.Duration
	maxDelay      time.Duration
	cooldown      time.Duration
	lastRequest   time.Time
	lastThrottled time.Time

	now func() time.Time // injectable clock for testing
	rng *rand.Rand
}

// NewLimiter creates a limiter that enforces at least minDelay between
// requests, with jitter up to maxDelay, and suspends requests for cooldown
// after a throttling signal.
func NewLimiter(minDelay, maxDelay, cooldown time.Duration) *Limiter {
	if maxDelay < minDelay {
		maxDelay = minDelay
	}
	return &Limiter{
		minDelay: minDelay,
		maxDelay: maxDelay,
		cooldown: cooldown,
		now:      time.Now,
		rng:      rand.New(rand.NewSource(time.Now().UnixNano())),
	}
}

// Throttle blocks until at least minDelay plus jitter has elapsed since the
// previous call. It returns early with the context error if the caller is
// cancelled while waiting.
func (l *Limiter) Throttle(ctx context.Context) error {
	l.mu.Lock()
	now := l.now()
	delay := l.minDelay
	if spread := l.maxDelay - l.minDelay; spread > 0 {
		delay += time.Duration(l.rng.Int63n(int64(spread)))
	}
	wait := time.Duration(0)
	if !l.lastRequest.IsZero() {
		if elapsed := now.Sub(l.lastRequest); elapsed < delay {
			wait = delay - elapsed
		}
	}
	l.lastRequest = now.Add(wait)
	l.mu.Unlock()

	if wait <= 0 {
		return nil
	}

	timer := time.NewTimer(wait)
	defer timer.Stop()
	select {
	case <-timer.C:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// RecordThrottled starts the cooldown window.
func (l *Limiter) RecordThrottled() {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.lastThrottled = l.now()
}

// InCooldown reports whether the cooldown window from the last throttling
// signal is still active.
func (l *Limiter) InCooldown() bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.lastThrottled.IsZero() {
		return false
	}
	return l.now().Sub(l.lastThrottled) < l.cooldown
}
