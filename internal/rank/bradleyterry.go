package rank

import "math"

const (
	btTolerance     = 1e-6
	btMaxIterations = 1000
	btFloor         = 1e-6
)

// BradleyTerry fits maximum-likelihood strengths under the model
// P(i beats j) = s_i / (s_i + s_j), using the standard MM iteration.
// Each verdict contributes win weight: a strong win counts 2, a win 1, and a
// tie 0.5 to each side. Strengths are normalized to geometric mean 1.
type BradleyTerry struct{}

func (BradleyTerry) Name() string { return "bradley_terry" }

func (BradleyTerry) Score(verdicts []Verdict, candidates []string) Scores {
	n := len(candidates)
	index := make(map[string]int, n)
	for i, c := range candidates {
		index[c] = i
	}

	// wins[i][j] = accumulated win weight of i over j.
	wins := make([][]float64, n)
	for i := range wins {
		wins[i] = make([]float64, n)
	}
	for _, v := range verdicts {
		a, okA := index[v.A]
		b, okB := index[v.B]
		if !okA || !okB {
			continue
		}
		switch v.Margin {
		case 2:
			wins[a][b] += 2
		case 1:
			wins[a][b] += 1
		case 0:
			wins[a][b] += 0.5
			wins[b][a] += 0.5
		case -1:
			wins[b][a] += 1
		case -2:
			wins[b][a] += 2
		}
	}

	// Candidates with no contested weight at all cannot be placed by the
	// model; they are assigned the mean of the fitted strengths afterwards.
	contested := make([]bool, n)
	for i := 0; i < n; i++ {
		for j := 0; j < n; j++ {
			if wins[i][j] > 0 || wins[j][i] > 0 {
				contested[i] = true
				break
			}
		}
	}

	s := make([]float64, n)
	for i := range s {
		s[i] = 1
	}

	for iter := 0; iter < btMaxIterations; iter++ {
		maxRel := 0.0
		next := make([]float64, n)
		for i := 0; i < n; i++ {
			if !contested[i] {
				next[i] = s[i]
				continue
			}
			var num, den float64
			for j := 0; j < n; j++ {
				if j == i {
					continue
				}
				total := wins[i][j] + wins[j][i]
				if total == 0 {
					continue
				}
				num += wins[i][j]
				den += total / (s[i] + s[j])
			}
			if den == 0 {
				next[i] = s[i]
				continue
			}
			next[i] = num / den
			if next[i] < btFloor {
				next[i] = btFloor
			}
			if rel := math.Abs(next[i]-s[i]) / s[i]; rel > maxRel {
				maxRel = rel
			}
		}
		s = next
		if maxRel < btTolerance {
			break
		}
	}

	// Normalize contested strengths to geometric mean 1.
	var logSum float64
	contestedCount := 0
	for i := 0; i < n; i++ {
		if contested[i] {
			logSum += math.Log(s[i])
			contestedCount++
		}
	}
	if contestedCount > 0 {
		gm := math.Exp(logSum / float64(contestedCount))
		for i := 0; i < n; i++ {
			if contested[i] {
				s[i] /= gm
			}
		}
	}

	// Uncontested candidates take the mean of the others and are flagged.
	var mean float64
	if contestedCount > 0 {
		for i := 0; i < n; i++ {
			if contested[i] {
				mean += s[i]
			}
		}
		mean /= float64(contestedCount)
	} else {
		mean = 1
	}

	out := Scores{Scores: make(map[string]float64, n)}
	for i, c := range candidates {
		if contested[i] {
			out.Scores[c] = s[i]
		} else {
			out.Scores[c] = mean
			out.Unscored = append(out.Unscored, c)
		}
	}
	return out
}
