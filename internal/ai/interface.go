package ai

import (
	"context"
	"time"
)

// SamplingParams controls model sampling for a single completion.
type SamplingParams struct {
	Temperature      float64 `json:"temperature,omitempty"`
	TopP             float64 `json:"top_p,omitempty"`
	MaxTokens        int     `json:"max_tokens,omitempty"`
	FrequencyPenalty float64 `json:"frequency_penalty,omitempty"`
	PresencePenalty  float64 `json:"presence_penalty,omitempty"`
}

// CompletionRequest is one chat-style completion: a model, an optional system
// message, and a user message.
type CompletionRequest struct {
	Model    string         `json:"model"`
	System   string         `json:"system,omitempty"`
	User     string         `json:"user"`
	Sampling SamplingParams `json:"sampling,omitempty"`
}

// CompletionResponse holds the completion text plus whatever usage data the
// provider reported. Tokens is 0 when the provider did not report usage.
type CompletionResponse struct {
	Text    string        `json:"text"`
	Tokens  int           `json:"tokens,omitempty"`
	Latency time.Duration `json:"latency,omitempty"`
}

// Provider is the single capability the engine needs from an LLM backend.
// Implementations must be safe for concurrent use.
type Provider interface {
	Name() string
	Complete(ctx context.Context, req CompletionRequest) (*CompletionResponse, error)
	// Close releases pooled connections. Safe to call more than once.
	Close() error
}
