package providers

import (
	"context"
	"errors"
	"testing"

	"github.com/neves/zen-council/internal/ai"
)

func TestScriptedProviderMatching(t *testing.T) {
	boom := errors.New("boom")
	p := NewScriptedProvider(
		ScriptedRule{Model: "m1", Contains: "judge", Reply: "[[A>B]]"},
		ScriptedRule{Model: "m1", Reply: "answer one", Tokens: 5},
		ScriptedRule{Model: "m2", Err: boom},
	)

	t.Run("model and substring", func(t *testing.T) {
		resp, err := p.Complete(context.Background(), ai.CompletionRequest{Model: "m1", User: "please judge this"})
		if err != nil {
			t.Fatal(err)
		}
		if resp.Text != "[[A>B]]" {
			t.Errorf("text = %q", resp.Text)
		}
	})

	t.Run("model only", func(t *testing.T) {
		resp, err := p.Complete(context.Background(), ai.CompletionRequest{Model: "m1", User: "anything else"})
		if err != nil {
			t.Fatal(err)
		}
		if resp.Text != "answer one" || resp.Tokens != 5 {
			t.Errorf("resp = %+v", resp)
		}
	})

	t.Run("scripted error", func(t *testing.T) {
		_, err := p.Complete(context.Background(), ai.CompletionRequest{Model: "m2", User: "x"})
		if !errors.Is(err, boom) {
			t.Errorf("err = %v, want boom", err)
		}
	})

	t.Run("no rule", func(t *testing.T) {
		if _, err := p.Complete(context.Background(), ai.CompletionRequest{Model: "m9", User: "x"}); err == nil {
			t.Error("expected an error for unmatched model")
		}
	})

	t.Run("records calls", func(t *testing.T) {
		if got := len(p.Calls()); got != 4 {
			t.Errorf("calls = %d, want 4", got)
		}
	})
}

func TestScriptedProviderCancelled(t *testing.T) {
	p := NewScriptedProvider(ScriptedRule{Reply: "hi"})
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, err := p.Complete(ctx, ai.CompletionRequest{Model: "m"}); !errors.Is(err, context.Canceled) {
		t.Errorf("err = %v, want context.Canceled", err)
	}
}

func TestNewGatewayProviderRequiresKey(t *testing.T) {
	if _, err := NewGatewayProvider(Config{}); err == nil {
		t.Error("expected an error without an API key")
	}
}

func TestNewGatewayProviderDefaults(t *testing.T) {
	p, err := NewGatewayProvider(Config{APIKey: "k"})
	if err != nil {
		t.Fatal(err)
	}
	defer p.Close()

	if p.timeout != defaultRequestTimeout {
		t.Errorf("timeout = %v, want %v", p.timeout, defaultRequestTimeout)
	}
	if cap(p.sem) != defaultMaxInFlight {
		t.Errorf("in-flight cap = %d, want %d", cap(p.sem), defaultMaxInFlight)
	}
}
