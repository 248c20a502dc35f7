package providers

import (
	"time"

	"github.com/neves/zen-council/internal/circuit"
	"github.com/neves/zen-council/internal/ratelimit"
)

// Config holds configuration for the gateway provider adapter.
type Config struct {
	APIKey         string
	BaseURL        string // Optional custom base URL
	RequestTimeout time.Duration
	MaxInFlight    int // Concurrent request cap across all models
	RateLimit      ratelimit.Config
	Circuit        circuit.Config
}
