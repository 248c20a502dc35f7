package council

import (
	"context"
	"fmt"
	"sync"

	"github.com/neves/zen-council/internal/ai"
)

// reviewResult is the peer-review stage output: verdicts in canonical order
// (judge index, then pair index) plus failure counts for the metadata record.
type reviewResult struct {
	verdicts    []Verdict
	unparseable int
	failed      int
}

// review issues one judge call per (judge, unordered candidate pair) and
// parses each reply into a Verdict. A failed call or an unparseable reply
// drops that one verdict; the rest are unaffected. Verdicts are reassembled
// into canonical order regardless of completion order.
func (e *Engine) review(ctx context.Context, task string, candidates []Answer, judges []Role, anonymize bool, events EventSink) reviewResult {
	k := len(candidates)
	pairs := make([][2]int, 0, k*(k-1)/2)
	for i := 0; i < k; i++ {
		for l := i + 1; l < k; l++ {
			pairs = append(pairs, [2]int{i, l})
		}
	}

	labels := make([]string, k)
	for i := range candidates {
		if anonymize {
			labels[i] = fmt.Sprintf("A%d", i+1)
		} else {
			labels[i] = candidates[i].Role
		}
	}

	total := len(judges) * len(pairs)
	slots := make([]*Verdict, total)

	var (
		wg          sync.WaitGroup
		mu          sync.Mutex
		done        int
		unparseable int
		failed      int
	)

	for j, judge := range judges {
		for p, pair := range pairs {
			wg.Add(1)
			go func(slot int, judge Role, i, l int) {
				defer wg.Done()

				a, b := candidates[i], candidates[l]
				prompt := buildJudgePrompt(task, labels[i], a.Text, labels[l], b.Text)

				resp, err := e.provider.Complete(ctx, ai.CompletionRequest{
					Model:    judge.Model,
					User:     prompt,
					Sampling: ai.SamplingParams{Temperature: e.judgeTemperature},
				})

				mu.Lock()
				defer mu.Unlock()
				done++
				events.emit(Event{Type: EventReviewProgress, Done: done, Total: total})

				if err != nil {
					failed++
					e.log.Debug("[Council] Judge %s failed on (%s,%s): %v", judge.Name, a.Role, b.Role, err)
					return
				}
				margin, ok := ParseVerdict(resp.Text)
				if !ok {
					unparseable++
					return
				}
				slots[slot] = &Verdict{
					Judge:  judge.Name,
					CandA:  a.Role,
					CandB:  b.Role,
					Margin: margin,
					Raw:    resp.Text,
				}
			}(j*len(pairs)+p, judge, pair[0], pair[1])
		}
	}

	wg.Wait()

	verdicts := make([]Verdict, 0, total)
	for _, v := range slots {
		if v != nil {
			verdicts = append(verdicts, *v)
		}
	}
	return reviewResult{verdicts: verdicts, unparseable: unparseable, failed: failed}
}
