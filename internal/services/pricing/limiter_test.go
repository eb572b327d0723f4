package pricing

import (
	"context"
	"testing"
	"time"
)

func TestThrottle_FirstCallImmediate(t *testing.T) {
	l := NewLimiter(50*time.Millisecond, 50*time.Millisecond, time.Minute)

	start := time.Now()
	if err := l.Throttle(context.Background()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if elapsed := time.Since(start); elapsed > 20*time.Millisecond {
		t.Errorf("first throttle call should not block, took %v", elapsed)
	}
}

func TestThrottle_EnforcesMinDelay(t *testing.T) {
	l := NewLimiter(50*time.Millisecond, 50*time.Millisecond, time.Minute)

	if err := l.Throttle(context.Background()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	start := time.Now()
	if err := l.Throttle(context.Background()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if elapsed := time.Since(start); elapsed < 40*time.Millisecond {
		t.Errorf("second throttle call returned after %v, want >= ~50ms", elapsed)
	}
}

func TestThrottle_CancelledContext(t *testing.T) {
	l := NewLimiter(time.Hour, time.Hour, time.Minute)

	ctx, cancel := context.WithCancel(context.Background())
	if err := l.Throttle(ctx); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	cancel()

	start := time.Now()
	err := l.Throttle(ctx)
	if err == nil {
		t.Fatal("expected context error from throttle while cancelled")
	}
	if elapsed := time.Since(start); elapsed > 100*time.Millisecond {
		t.Errorf("cancelled throttle should return promptly, took %v", elapsed)
	}
}

func TestCooldown(t *testing.T) {
	now := time.Date(2026, 3, 2, 10, 0, 0, 0, time.UTC)
	l := NewLimiter(0, 0, 60*time.Second)
	l.now = func() time.Time { return now }

	if l.InCooldown() {
		t.Fatal("limiter should not start in cooldown")
	}

	l.RecordThrottled()
	if !l.InCooldown() {
		t.Fatal("expected cooldown immediately after RecordThrottled")
	}

	now = now.Add(59 * time.Second)
	if !l.InCooldown() {
		t.Error("cooldown should still be active at 59s")
	}

	now = now.Add(2 * time.Second)
	if l.InCooldown() {
		t.Error("cooldown should have expired after 61s")
	}
}

func TestNewLimiter_MaxBelowMin(t *testing.T) {
	l := NewLimiter(100*time.Millisecond, 10*time.Millisecond, time.Minute)
	if l.maxDelay != l.minDelay {
		t.Errorf("maxDelay should be clamped to minDelay, got %v", l.maxDelay)
	}
}
