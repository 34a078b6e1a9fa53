package worker

import (
	"context"
	"testing"
	"time"
)

func TestLimiter_Wait(t *testing.T) {
	limiter := NewLimiter(100, 5)

	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()

	if err := limiter.Wait(ctx, "https://example.com/page"); err != nil {
		t.Errorf("Expected no error within burst, got %v", err)
	}
}

func TestLimiter_Wait_InvalidURL(t *testing.T) {
	limiter := NewLimiter(100, 5)
	if err := limiter.Wait(context.Background(), "://bad"); err == nil {
		t.Error("Expected error for unparseable URL, got nil")
	}
}

func TestLimiter_PerDomainIsolation(t *testing.T) {
	// Burst 1 at a very slow refill: the second request to the same
	// domain would block, a different domain must not
	limiter := NewLimiter(0.001, 1)

	ctx := context.Background()
	if err := limiter.Wait(ctx, "https://a.example.com/one"); err != nil {
		t.Fatalf("First request failed: %v", err)
	}

	ctx2, cancel := context.WithTimeout(context.Background(), 100*time.Millisecond)
	defer cancel()
	if err := limiter.Wait(ctx2, "https://b.example.com/one"); err != nil {
		t.Errorf("Expected separate domain unthrottled, got %v", err)
	}

	ctx3, cancel3 := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel3()
	if err := limiter.Wait(ctx3, "https://a.example.com/two"); err == nil {
		t.Error("Expected same-domain request to hit the limit")
	}
}

func TestLimiter_WaitWithDelay(t *testing.T) {
	limiter := NewLimiter(100, 5)

	start := time.Now()
	if err := limiter.WaitWithDelay(context.Background(), "https://example.com/", 30*time.Millisecond); err != nil {
		t.Fatalf("WaitWithDelay failed: %v", err)
	}
	if elapsed := time.Since(start); elapsed < 30*time.Millisecond {
		t.Errorf("Expected at least the extra delay, got %s", elapsed)
	}
}

func TestLimiter_WaitWithDelay_CancelledDuringDelay(t *testing.T) {
	limiter := NewLimiter(100, 5)

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Millisecond)
	defer cancel()

	if err := limiter.WaitWithDelay(ctx, "https://example.com/", time.Second); err == nil {
		t.Error("Expected context error when cancelled during delay")
	}
}
