// Package circuit implements a circuit breaker for model health at the
// provider adapter. A model that keeps failing is skipped for a cooldown
// period instead of burning gateway calls.
package circuit

import (
	"errors"
	"sync"
	"time"
)

// State represents the circuit breaker state
type State string

const (
	StateClosed   State = "closed"    // Normal operation
	StateOpen     State = "open"      // Failing, skip model
	StateHalfOpen State = "half_open" // Testing recovery
)

// ErrOpen is returned when the breaker refuses a call.
var ErrOpen = errors.New("circuit open")

// Config for circuit breaker
type Config struct {
	FailureThreshold  int           // Consecutive failures to trip
	CooldownDuration  time.Duration // Wait before a half-open probe
	HalfOpenSuccesses int           // Successes needed to close again
}

// DefaultConfig returns sensible defaults
func DefaultConfig() Config {
	return Config{
		FailureThreshold:  5,
		CooldownDuration:  30 * time.Second,
		HalfOpenSuccesses: 2,
	}
}

// Breaker tracks one model's health.
type Breaker struct {
	mu sync.Mutex

	cfg           Config
	state         State
	failures      int
	successes     int
	lastStateTime time.Time
}

// NewBreaker creates a circuit breaker
func NewBreaker(cfg Config) *Breaker {
	if cfg.FailureThreshold <= 0 {
		cfg = DefaultConfig()
	}
	return &Breaker{
		cfg:           cfg,
		state:         StateClosed,
		lastStateTime: time.Now(),
	}
}

// Allow reports whether a call may proceed. An open breaker whose cooldown
// elapsed transitions to half-open and admits probe calls.
func (b *Breaker) Allow() error {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.state == StateOpen {
		if time.Since(b.lastStateTime) < b.cfg.CooldownDuration {
			return ErrOpen
		}
		b.state = StateHalfOpen
		b.successes = 0
		b.lastStateTime = time.Now()
	}
	return nil
}

// Record feeds a call outcome back into the breaker.
func (b *Breaker) Record(err error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	if err != nil {
		b.failures++
		if b.state == StateHalfOpen || b.failures >= b.cfg.FailureThreshold {
			b.state = StateOpen
			b.lastStateTime = time.Now()
		}
		return
	}

	b.failures = 0
	if b.state == StateHalfOpen {
		b.successes++
		if b.successes >= b.cfg.HalfOpenSuccesses {
			b.state = StateClosed
			b.lastStateTime = time.Now()
		}
	}
}

// GetState returns current state
func (b *Breaker) GetState() State {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.state
}

// Manager holds one breaker per model.
type Manager struct {
	mu       sync.Mutex
	cfg      Config
	breakers map[string]*Breaker
}

// NewManager creates a breaker manager.
func NewManager(cfg Config) *Manager {
	return &Manager{
		cfg:      cfg,
		breakers: make(map[string]*Breaker),
	}
}

// Get returns the breaker for a model, creating it on first use.
func (m *Manager) Get(model string) *Breaker {
	m.mu.Lock()
	defer m.mu.Unlock()
	br, ok := m.breakers[model]
	if !ok {
		br = NewBreaker(m.cfg)
		m.breakers[model] = br
	}
	return br
}
