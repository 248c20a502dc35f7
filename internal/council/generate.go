package council

import (
	"context"
	"sync"
	"time"

	"github.com/neves/zen-council/internal/ai"
)

// generate fans out one completion per role and returns one Answer per role
// in input order. Individual failures become failed Answers; the stage itself
// never fails.
func (e *Engine) generate(ctx context.Context, task string, roles []Role, events EventSink) []Answer {
	answers := make([]Answer, len(roles))
	var wg sync.WaitGroup

	events.emit(Event{Type: EventGenerationStarted, Total: len(roles)})

	for i, role := range roles {
		wg.Add(1)
		go func(idx int, r Role) {
			defer wg.Done()
			start := time.Now()

			resp, err := e.provider.Complete(ctx, ai.CompletionRequest{
				Model:    r.Model,
				System:   r.SystemPrompt,
				User:     task,
				Sampling: r.Sampling,
			})

			a := Answer{Role: r.Name, Model: r.Model, Latency: time.Since(start)}
			switch {
			case err != nil:
				a.Error = string(ClassifyProviderError(err)) + ": " + err.Error()
				e.log.Error("[Council] Role %s (%s) failed: %v", r.Name, r.Model, err)
			case resp.Text == "":
				a.Error = "empty response"
			default:
				a.OK = true
				a.Text = resp.Text
				a.Tokens = resp.Tokens
				if resp.Latency > 0 {
					a.Latency = resp.Latency
				}
				e.log.Debug("[Council] Role %s completed in %v (%d chars)",
					r.Name, time.Since(start).Round(time.Millisecond), len(resp.Text))
			}
			answers[idx] = a

			events.emit(Event{Type: EventGenerationCompleted, Role: r.Name})
		}(i, role)
	}

	wg.Wait()
	return answers
}
