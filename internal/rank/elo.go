package rank

import (
	"math"
	"math/rand"
	"sort"
)

const (
	eloK          = 32
	eloInitial    = 1000
	eloResamples  = 1000
	eloBootSeed   = 1
	eloCILow      = 0.025
	eloCIHigh     = 0.975
)

// ELO treats the verdict list as a match sequence and applies the standard
// ELO update (K=32, initial rating 1000). A verdict's outcome score for the
// first candidate is 0.5 + margin/4. The point estimate runs over the
// canonical verdict order; 95% confidence intervals come from bootstrap
// resampling of the verdict list.
//
// The bootstrap RNG is seeded with a fixed constant per Score call, so the
// full output is deterministic on a fixed verdict list.
type ELO struct {
	resamples int
}

// NewELO returns the ELO aggregator with the default bootstrap size.
func NewELO() ELO {
	return ELO{resamples: eloResamples}
}

func (ELO) Name() string { return "elo" }

func (e ELO) Score(verdicts []Verdict, candidates []string) Scores {
	resamples := e.resamples
	if resamples <= 0 {
		resamples = eloResamples
	}

	point := runELO(verdicts, candidates)

	out := Scores{
		Scores:              point,
		ConfidenceIntervals: make(map[string]Interval, len(candidates)),
	}

	if len(verdicts) == 0 {
		for _, c := range candidates {
			out.ConfidenceIntervals[c] = Interval{Low: eloInitial, High: eloInitial}
		}
		return out
	}

	rng := rand.New(rand.NewSource(eloBootSeed))
	samples := make(map[string][]float64, len(candidates))
	for _, c := range candidates {
		samples[c] = make([]float64, 0, resamples)
	}

	resample := make([]Verdict, len(verdicts))
	for r := 0; r < resamples; r++ {
		for i := range resample {
			resample[i] = verdicts[rng.Intn(len(verdicts))]
		}
		ratings := runELO(resample, candidates)
		for _, c := range candidates {
			samples[c] = append(samples[c], ratings[c])
		}
	}

	for _, c := range candidates {
		sort.Float64s(samples[c])
		out.ConfidenceIntervals[c] = Interval{
			Low:  percentile(samples[c], eloCILow),
			High: percentile(samples[c], eloCIHigh),
		}
	}
	return out
}

// runELO plays the verdicts in order and returns final ratings.
func runELO(verdicts []Verdict, candidates []string) map[string]float64 {
	ratings := make(map[string]float64, len(candidates))
	for _, c := range candidates {
		ratings[c] = eloInitial
	}

	for _, v := range verdicts {
		ra, okA := ratings[v.A]
		rb, okB := ratings[v.B]
		if !okA || !okB {
			continue
		}
		outcomeA := 0.5 + float64(v.Margin)/4
		expectedA := 1 / (1 + math.Pow(10, (rb-ra)/400))
		ratings[v.A] = ra + eloK*(outcomeA-expectedA)
		ratings[v.B] = rb + eloK*((1-outcomeA)-(1-expectedA))
	}
	return ratings
}

// percentile interpolates linearly between closest ranks of sorted values.
func percentile(sorted []float64, p float64) float64 {
	if len(sorted) == 0 {
		return 0
	}
	pos := p * float64(len(sorted)-1)
	lo := int(math.Floor(pos))
	hi := int(math.Ceil(pos))
	if lo == hi {
		return sorted[lo]
	}
	frac := pos - float64(lo)
	return sorted[lo]*(1-frac) + sorted[hi]*frac
}
