package providers

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/sashabaranov/go-openai"

	"github.com/neves/zen-council/internal/ai"
	"github.com/neves/zen-council/internal/circuit"
	"github.com/neves/zen-council/internal/ratelimit"
)

const (
	// DefaultBaseURL points at an OpenAI-compatible aggregator gateway.
	DefaultBaseURL = "https://openrouter.ai/api/v1"

	defaultRequestTimeout = 120 * time.Second
	defaultMaxInFlight    = 32
)

// GatewayProvider speaks the chat-completions wire format to a remote
// aggregator gateway. It is the only place that format appears. Concurrency
// is capped by a semaphore; each model additionally gets a token-bucket rate
// limit and a circuit breaker.
type GatewayProvider struct {
	client     *openai.Client
	httpClient *http.Client
	limiter    *ratelimit.Limiter
	breakers   *circuit.Manager
	sem        chan struct{}
	timeout    time.Duration
}

// NewGatewayProvider creates the default provider adapter.
func NewGatewayProvider(cfg Config) (*GatewayProvider, error) {
	if cfg.APIKey == "" {
		return nil, fmt.Errorf("API key required for gateway provider")
	}
	if cfg.BaseURL == "" {
		cfg.BaseURL = DefaultBaseURL
	}
	if cfg.RequestTimeout <= 0 {
		cfg.RequestTimeout = defaultRequestTimeout
	}
	if cfg.MaxInFlight <= 0 {
		cfg.MaxInFlight = defaultMaxInFlight
	}

	httpClient := &http.Client{}
	clientConfig := openai.DefaultConfig(cfg.APIKey)
	clientConfig.BaseURL = cfg.BaseURL
	clientConfig.HTTPClient = httpClient

	return &GatewayProvider{
		client:     openai.NewClientWithConfig(clientConfig),
		httpClient: httpClient,
		limiter:    ratelimit.NewLimiter(cfg.RateLimit),
		breakers:   circuit.NewManager(cfg.Circuit),
		sem:        make(chan struct{}, cfg.MaxInFlight),
		timeout:    cfg.RequestTimeout,
	}, nil
}

func (p *GatewayProvider) Name() string { return "gateway" }

// Complete issues one chat completion. It blocks while the in-flight cap or
// the model's rate limit holds the request back, honoring cancellation.
func (p *GatewayProvider) Complete(ctx context.Context, req ai.CompletionRequest) (*ai.CompletionResponse, error) {
	select {
	case p.sem <- struct{}{}:
		defer func() { <-p.sem }()
	case <-ctx.Done():
		return nil, ctx.Err()
	}

	if err := p.limiter.Wait(ctx, req.Model); err != nil {
		return nil, err
	}

	breaker := p.breakers.Get(req.Model)
	if err := breaker.Allow(); err != nil {
		return nil, fmt.Errorf("model %s: %w", req.Model, err)
	}

	ctx, cancel := context.WithTimeout(ctx, p.timeout)
	defer cancel()

	var messages []openai.ChatCompletionMessage
	if req.System != "" {
		messages = append(messages, openai.ChatCompletionMessage{
			Role:    openai.ChatMessageRoleSystem,
			Content: req.System,
		})
	}
	messages = append(messages, openai.ChatCompletionMessage{
		Role:    openai.ChatMessageRoleUser,
		Content: req.User,
	})

	completionReq := openai.ChatCompletionRequest{
		Model:    req.Model,
		Messages: messages,
	}
	s := req.Sampling
	if s.Temperature > 0 {
		completionReq.Temperature = float32(s.Temperature)
	}
	if s.TopP > 0 {
		completionReq.TopP = float32(s.TopP)
	}
	if s.MaxTokens > 0 {
		completionReq.MaxTokens = s.MaxTokens
	}
	if s.FrequencyPenalty != 0 {
		completionReq.FrequencyPenalty = float32(s.FrequencyPenalty)
	}
	if s.PresencePenalty != 0 {
		completionReq.PresencePenalty = float32(s.PresencePenalty)
	}

	start := time.Now()
	resp, err := p.client.CreateChatCompletion(ctx, completionReq)
	breaker.Record(err)
	if err != nil {
		return nil, fmt.Errorf("gateway API error: %w", err)
	}
	if len(resp.Choices) == 0 {
		return nil, fmt.Errorf("gateway returned no choices for model %s", req.Model)
	}

	return &ai.CompletionResponse{
		Text:    resp.Choices[0].Message.Content,
		Tokens:  resp.Usage.TotalTokens,
		Latency: time.Since(start),
	}, nil
}

// Close releases pooled connections.
func (p *GatewayProvider) Close() error {
	p.httpClient.CloseIdleConnections()
	return nil
}
