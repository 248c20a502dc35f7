package providers

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"github.com/neves/zen-council/internal/ai"
)

// ScriptedRule matches a completion request and supplies a canned reply.
// Model matches exactly when set; Contains matches a substring of the user
// message when set. Err, when non-nil, fails the call instead.
type ScriptedRule struct {
	Model    string
	Contains string
	Reply    string
	Tokens   int
	Err      error
}

// ScriptedProvider returns canned text per (model, prompt). It substitutes
// the gateway in tests and dry runs; rules are checked in order, first match
// wins.
type ScriptedProvider struct {
	mu    sync.Mutex
	rules []ScriptedRule
	calls []ai.CompletionRequest
}

// NewScriptedProvider creates a scripted provider with the given rules.
func NewScriptedProvider(rules ...ScriptedRule) *ScriptedProvider {
	return &ScriptedProvider{rules: rules}
}

func (p *ScriptedProvider) Name() string { return "scripted" }

func (p *ScriptedProvider) Complete(ctx context.Context, req ai.CompletionRequest) (*ai.CompletionResponse, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	p.mu.Lock()
	p.calls = append(p.calls, req)
	rules := p.rules
	p.mu.Unlock()

	for _, r := range rules {
		if r.Model != "" && r.Model != req.Model {
			continue
		}
		if r.Contains != "" && !strings.Contains(req.User, r.Contains) {
			continue
		}
		if r.Err != nil {
			return nil, r.Err
		}
		return &ai.CompletionResponse{Text: r.Reply, Tokens: r.Tokens}, nil
	}
	return nil, fmt.Errorf("scripted provider: no rule for model %s", req.Model)
}

func (p *ScriptedProvider) Close() error { return nil }

// Calls returns a copy of every request seen so far.
func (p *ScriptedProvider) Calls() []ai.CompletionRequest {
	p.mu.Lock()
	defer p.mu.Unlock()
	out := make([]ai.CompletionRequest, len(p.calls))
	copy(out, p.calls)
	return out
}
