package rank

import "testing"

func TestBordaSingleStrongWin(t *testing.T) {
	verdicts := []Verdict{{A: "R1", B: "R2", Margin: 2}}
	s := Borda{}.Score(verdicts, []string{"R1", "R2"})

	if got := s.Scores["R1"]; got != 3 {
		t.Errorf("R1 = %v, want 3", got)
	}
	if got := s.Scores["R2"]; got != 0 {
		t.Errorf("R2 = %v, want 0", got)
	}
}

func TestBordaPoints(t *testing.T) {
	tests := []struct {
		name   string
		margin int
		wantA  float64
		wantB  float64
	}{
		{"strong win A", 2, 3, 0},
		{"win A", 1, 1, 0},
		{"tie", 0, 0.5, 0.5},
		{"win B", -1, 0, 1},
		{"strong win B", -2, 0, 3},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := Borda{}.Score([]Verdict{{A: "a", B: "b", Margin: tt.margin}}, []string{"a", "b"})
			if s.Scores["a"] != tt.wantA || s.Scores["b"] != tt.wantB {
				t.Errorf("got a=%v b=%v, want a=%v b=%v", s.Scores["a"], s.Scores["b"], tt.wantA, tt.wantB)
			}
		})
	}
}

func TestBordaAllTiesEqual(t *testing.T) {
	candidates := []string{"R1", "R2", "R3"}
	var verdicts []Verdict
	// Three judges, each tying every pair.
	for j := 0; j < 3; j++ {
		verdicts = append(verdicts,
			Verdict{A: "R1", B: "R2", Margin: 0},
			Verdict{A: "R1", B: "R3", Margin: 0},
			Verdict{A: "R2", B: "R3", Margin: 0},
		)
	}

	s := Borda{}.Score(verdicts, candidates)
	for _, c := range candidates[1:] {
		if s.Scores[c] != s.Scores["R1"] {
			t.Errorf("score %s = %v, want %v", c, s.Scores[c], s.Scores["R1"])
		}
	}
}

func TestBordaDominantCandidateIsMax(t *testing.T) {
	verdicts := []Verdict{
		{A: "R1", B: "R2", Margin: 2},
		{A: "R1", B: "R3", Margin: 2},
		{A: "R2", B: "R3", Margin: 1},
	}
	s := Borda{}.Score(verdicts, []string{"R1", "R2", "R3"})
	for _, c := range []string{"R2", "R3"} {
		if s.Scores[c] >= s.Scores["R1"] {
			t.Errorf("dominant R1 (%v) not above %s (%v)", s.Scores["R1"], c, s.Scores[c])
		}
	}
}

func TestBordaDeterministic(t *testing.T) {
	verdicts := []Verdict{
		{A: "R1", B: "R2", Margin: 1},
		{A: "R1", B: "R3", Margin: -2},
		{A: "R2", B: "R3", Margin: 0},
	}
	candidates := []string{"R1", "R2", "R3"}
	first := Borda{}.Score(verdicts, candidates)
	second := Borda{}.Score(verdicts, candidates)
	for _, c := range candidates {
		if first.Scores[c] != second.Scores[c] {
			t.Errorf("score %s differs across runs: %v vs %v", c, first.Scores[c], second.Scores[c])
		}
	}
}

func TestBordaRelabelingSymmetry(t *testing.T) {
	verdicts := []Verdict{
		{A: "R1", B: "R2", Margin: 2},
		{A: "R2", B: "R3", Margin: -1},
	}
	s := Borda{}.Score(verdicts, []string{"R1", "R2", "R3"})

	renamed := []Verdict{
		{A: "X", B: "R2", Margin: 2},
		{A: "R2", B: "R3", Margin: -1},
	}
	rs := Borda{}.Score(renamed, []string{"X", "R2", "R3"})

	if rs.Scores["X"] != s.Scores["R1"] {
		t.Errorf("renamed X = %v, want %v", rs.Scores["X"], s.Scores["R1"])
	}
	if rs.Scores["R2"] != s.Scores["R2"] || rs.Scores["R3"] != s.Scores["R3"] {
		t.Error("renaming changed an unrelated score")
	}
}

func TestBordaKeySetMatchesCandidates(t *testing.T) {
	s := Borda{}.Score(nil, []string{"a", "b", "c"})
	if len(s.Scores) != 3 {
		t.Fatalf("key count = %d, want 3", len(s.Scores))
	}
	for _, c := range []string{"a", "b", "c"} {
		if _, ok := s.Scores[c]; !ok {
			t.Errorf("missing key %s", c)
		}
	}
}

func TestRankingTiesKeepIndexOrder(t *testing.T) {
	scores := map[string]float64{"a": 1, "b": 1, "c": 2}
	ranked := Ranking(scores, []string{"a", "b", "c"})
	want := []string{"c", "a", "b"}
	for i := range want {
		if ranked[i] != want[i] {
			t.Fatalf("ranked = %v, want %v", ranked, want)
		}
	}
}
