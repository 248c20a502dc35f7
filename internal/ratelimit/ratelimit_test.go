package ratelimit

import (
	"context"
	"testing"
	"time"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()
	if cfg.RequestsPerSecond <= 0 {
		t.Error("RequestsPerSecond should be > 0")
	}
	if cfg.BurstSize <= 0 {
		t.Error("BurstSize should be > 0")
	}
}

func TestNewLimiterZeroConfigUsesDefaults(t *testing.T) {
	l := NewLimiter(Config{})
	if l.config.RequestsPerSecond != 10 {
		t.Errorf("RequestsPerSecond = %v, want 10 (default)", l.config.RequestsPerSecond)
	}
}

func TestLimiterAllowBurst(t *testing.T) {
	l := NewLimiter(Config{RequestsPerSecond: 1, BurstSize: 3})

	allowed := 0
	for i := 0; i < 10; i++ {
		if l.Allow("model-a") {
			allowed++
		}
	}
	if allowed != 3 {
		t.Errorf("allowed = %d, want burst of 3", allowed)
	}

	// A different model has its own bucket.
	if !l.Allow("model-b") {
		t.Error("model-b should not share model-a's bucket")
	}
}

func TestLimiterWaitHonorsCancellation(t *testing.T) {
	l := NewLimiter(Config{RequestsPerSecond: 0.001, BurstSize: 1})
	l.Allow("m") // drain the bucket

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()

	if err := l.Wait(ctx, "m"); err == nil {
		t.Error("Wait should fail when the context expires first")
	}
}

func TestModelCount(t *testing.T) {
	l := NewLimiter(Config{})
	l.Allow("a")
	l.Allow("b")
	l.Allow("a")
	if got := l.ModelCount(); got != 2 {
		t.Errorf("ModelCount = %d, want 2", got)
	}
}
