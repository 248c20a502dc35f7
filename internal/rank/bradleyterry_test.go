package rank

import (
	"math"
	"testing"
)

func TestBradleyTerrySingleStrongWin(t *testing.T) {
	verdicts := []Verdict{{A: "R1", B: "R2", Margin: 2}}
	s := BradleyTerry{}.Score(verdicts, []string{"R1", "R2"})

	if s.Scores["R1"] <= s.Scores["R2"] {
		t.Errorf("s(R1)=%v not above s(R2)=%v", s.Scores["R1"], s.Scores["R2"])
	}
}

func TestBradleyTerryAllTiesEqual(t *testing.T) {
	candidates := []string{"R1", "R2", "R3"}
	verdicts := []Verdict{
		{A: "R1", B: "R2", Margin: 0},
		{A: "R1", B: "R3", Margin: 0},
		{A: "R2", B: "R3", Margin: 0},
	}
	s := BradleyTerry{}.Score(verdicts, candidates)
	for _, c := range candidates[1:] {
		if math.Abs(s.Scores[c]-s.Scores["R1"]) > 1e-5 {
			t.Errorf("score %s = %v, want ~%v", c, s.Scores[c], s.Scores["R1"])
		}
	}
}

func TestBradleyTerryDominantCandidateIsMax(t *testing.T) {
	verdicts := []Verdict{
		{A: "R1", B: "R2", Margin: 2},
		{A: "R1", B: "R3", Margin: 2},
		{A: "R2", B: "R3", Margin: 1},
	}
	s := BradleyTerry{}.Score(verdicts, []string{"R1", "R2", "R3"})
	for _, c := range []string{"R2", "R3"} {
		if s.Scores[c] >= s.Scores["R1"] {
			t.Errorf("dominant R1 (%v) not above %s (%v)", s.Scores["R1"], c, s.Scores[c])
		}
	}
}

func TestBradleyTerryGeometricMeanOne(t *testing.T) {
	verdicts := []Verdict{
		{A: "R1", B: "R2", Margin: 1},
		{A: "R2", B: "R3", Margin: 1},
		{A: "R1", B: "R3", Margin: 1},
	}
	s := BradleyTerry{}.Score(verdicts, []string{"R1", "R2", "R3"})

	var logSum float64
	for _, v := range s.Scores {
		logSum += math.Log(v)
	}
	if math.Abs(logSum) > 1e-6 {
		t.Errorf("sum of log strengths = %v, want 0", logSum)
	}
}

func TestBradleyTerryUncontestedGetsMean(t *testing.T) {
	// R3 appears in no verdict.
	verdicts := []Verdict{{A: "R1", B: "R2", Margin: 1}}
	s := BradleyTerry{}.Score(verdicts, []string{"R1", "R2", "R3"})

	want := (s.Scores["R1"] + s.Scores["R2"]) / 2
	if math.Abs(s.Scores["R3"]-want) > 1e-9 {
		t.Errorf("uncontested R3 = %v, want mean %v", s.Scores["R3"], want)
	}
	if len(s.Unscored) != 1 || s.Unscored[0] != "R3" {
		t.Errorf("Unscored = %v, want [R3]", s.Unscored)
	}
}

func TestBradleyTerryDeterministic(t *testing.T) {
	verdicts := []Verdict{
		{A: "R1", B: "R2", Margin: 1},
		{A: "R1", B: "R3", Margin: -1},
		{A: "R2", B: "R3", Margin: 2},
		{A: "R1", B: "R2", Margin: 0},
	}
	candidates := []string{"R1", "R2", "R3"}
	first := BradleyTerry{}.Score(verdicts, candidates)
	second := BradleyTerry{}.Score(verdicts, candidates)
	for _, c := range candidates {
		rel := math.Abs(first.Scores[c]-second.Scores[c]) / first.Scores[c]
		if rel > 1e-6 {
			t.Errorf("score %s differs across runs: %v vs %v", c, first.Scores[c], second.Scores[c])
		}
	}
}
