// Package ratelimit provides per-model rate limiting for the provider adapter.
package ratelimit

import (
	"context"
	"sync"

	"golang.org/x/time/rate"
)

// Limiter applies a token-bucket limit per model id, so one chatty model
// cannot starve the others at the gateway.
type Limiter struct {
	mu       sync.Mutex
	limiters map[string]*rate.Limiter
	config   Config
}

// Config configures the limiter.
type Config struct {
	RequestsPerSecond float64 // Max requests per second per model
	BurstSize         int     // Max burst size (tokens)
}

// DefaultConfig returns sensible defaults.
func DefaultConfig() Config {
	return Config{
		RequestsPerSecond: 10,
		BurstSize:         20,
	}
}

// NewLimiter creates a per-model rate limiter.
func NewLimiter(cfg Config) *Limiter {
	if cfg.RequestsPerSecond <= 0 {
		cfg.RequestsPerSecond = DefaultConfig().RequestsPerSecond
	}
	if cfg.BurstSize <= 0 {
		cfg.BurstSize = DefaultConfig().BurstSize
	}
	return &Limiter{
		limiters: make(map[string]*rate.Limiter),
		config:   cfg,
	}
}

// Wait blocks until a request for the given model is allowed or the context
// is cancelled.
func (l *Limiter) Wait(ctx context.Context, model string) error {
	return l.get(model).Wait(ctx)
}

// Allow reports whether a request for the given model may proceed now.
func (l *Limiter) Allow(model string) bool {
	return l.get(model).Allow()
}

func (l *Limiter) get(model string) *rate.Limiter {
	l.mu.Lock()
	defer l.mu.Unlock()
	lim, ok := l.limiters[model]
	if !ok {
		lim = rate.NewLimiter(rate.Limit(l.config.RequestsPerSecond), l.config.BurstSize)
		l.limiters[model] = lim
	}
	return lim
}

// ModelCount returns the number of models seen so far.
func (l *Limiter) ModelCount() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.limiters)
}
