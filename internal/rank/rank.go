// Package rank converts pairwise verdicts into per-candidate scores.
// Three independent methods are provided: Borda counts, Bradley–Terry
// maximum-likelihood strengths, and ELO ratings with bootstrap confidence
// intervals. All three are pure functions of the canonical verdict list and
// never read judge identity.
package rank

import "sort"

// Verdict is the judge-blind form of one pairwise judgment: an unordered
// candidate pair and a margin in [-2, +2] where positive favors A.
type Verdict struct {
	A      string
	B      string
	Margin int
}

// Interval is a 95% confidence interval.
type Interval struct {
	Low  float64 `json:"low"`
	High float64 `json:"high"`
}

// Scores is one method's output: a score per candidate, optional confidence
// intervals, and the candidates (if any) the method could not score from the
// data it was given.
type Scores struct {
	Scores              map[string]float64  `json:"scores"`
	ConfidenceIntervals map[string]Interval `json:"confidence_intervals,omitempty"`
	Unscored            []string            `json:"-"`
}

// Aggregator scores a candidate set from a verdict list. The returned score
// map's key set equals the candidate set exactly.
type Aggregator interface {
	Name() string
	Score(verdicts []Verdict, candidates []string) Scores
}

// Methods returns the three aggregators in their reporting order.
func Methods() []Aggregator {
	return []Aggregator{Borda{}, BradleyTerry{}, NewELO()}
}

// Ranking orders candidates by descending score; ties keep candidate index
// order (generation order).
func Ranking(scores map[string]float64, candidates []string) []string {
	ranked := make([]string, len(candidates))
	copy(ranked, candidates)
	sort.SliceStable(ranked, func(a, b int) bool {
		return scores[ranked[a]] > scores[ranked[b]]
	})
	return ranked
}
