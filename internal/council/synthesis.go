package council

import (
	"context"
	"fmt"

	"github.com/neves/zen-council/internal/ai"
	"github.com/neves/zen-council/internal/rank"
)

// synthesize asks the chairman model for the final answer. Candidates are
// shown under the same labels peer review used. A failed call yields an empty
// synthesis; the rest of the output is unaffected.
func (e *Engine) synthesize(ctx context.Context, task string, candidates []Answer, scores map[string]rank.Scores, chairman string, anonymize bool) (string, error) {
	labels := make([]string, len(candidates))
	names := make([]string, len(candidates))
	labelOf := make(map[string]string, len(candidates))
	for i, c := range candidates {
		if anonymize {
			labels[i] = fmt.Sprintf("A%d", i+1)
		} else {
			labels[i] = c.Role
		}
		names[i] = c.Role
		labelOf[c.Role] = labels[i]
	}

	resp, err := e.provider.Complete(ctx, ai.CompletionRequest{
		Model:  chairman,
		System: chairmanSystem,
		User:   buildSynthesisPrompt(task, candidates, labels, scores, names, labelOf),
	})
	if err != nil {
		return "", err
	}
	return resp.Text, nil
}
