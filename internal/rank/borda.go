package rank

// Borda scores candidates by weighted pairwise points: a strong win is worth
// 3, a win 1, and a tie splits one point between both sides. Scores are raw
// sums, no normalization.
type Borda struct{}

func (Borda) Name() string { return "borda" }

func (Borda) Score(verdicts []Verdict, candidates []string) Scores {
	scores := make(map[string]float64, len(candidates))
	for _, c := range candidates {
		scores[c] = 0
	}

	for _, v := range verdicts {
		winner, margin := v.A, v.Margin
		if margin < 0 {
			winner, margin = v.B, -margin
		}
		switch margin {
		case 2:
			scores[winner] += 3
		case 1:
			scores[winner] += 1
		case 0:
			scores[v.A] += 0.5
			scores[v.B] += 0.5
		}
	}

	return Scores{Scores: scores}
}
