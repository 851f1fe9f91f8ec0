package logic

import "testing"

func TestEloEqualRatings(t *testing.T) {
	deltaA, deltaB := Elo(1000, 1000, ScoreWin, 32)
	if deltaA != 16 || deltaB != -16 {
		t.Errorf("Elo(1000, 1000, win) = (%d, %d), want (16, -16)", deltaA, deltaB)
	}
}

func TestEloZeroSum(t *testing.T) {
	tests := []struct {
		name    string
		ratingA int
		ratingB int
		scoreA  float64
	}{
		{"equal win", 1000, 1000, ScoreWin},
		{"underdog win", 1000, 1200, ScoreWin},
		{"favorite win", 1200, 1000, ScoreWin},
		{"draw with gap", 900, 1500, ScoreDraw},
		{"underdog loss", 1000, 1600, ScoreLoss},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			deltaA, deltaB := Elo(tt.ratingA, tt.ratingB, tt.scoreA, 32)
			if deltaA+deltaB != 0 {
				t.Errorf("deltas (%d, %d) do not sum to zero", deltaA, deltaB)
			}
		})
	}
}

func TestEloUnderdog(t *testing.T) {
	deltaA, deltaB := Elo(1000, 1200, ScoreWin, 32)
	if deltaA <= 16 {
		t.Errorf("underdog winner gained %d, want more than 16", deltaA)
	}
	if deltaB != -deltaA {
		t.Errorf("loser delta = %d, want %d", deltaB, -deltaA)
	}

	deltaA, _ = Elo(1200, 1000, ScoreWin, 32)
	if deltaA >= 16 {
		t.Errorf("favorite winner gained %d, want less than 16", deltaA)
	}
}

func TestEloDrawFavorsUnderdog(t *testing.T) {
	deltaA, deltaB := Elo(1000, 1200, ScoreDraw, 32)
	if deltaA <= 0 {
		t.Errorf("underdog draw delta = %d, want positive", deltaA)
	}
	if deltaB >= 0 {
		t.Errorf("favorite draw delta = %d, want negative", deltaB)
	}
}

func TestRankLabel(t *testing.T) {
	tests := []struct {
		rating int
		want   string
	}{
		{0, "Beginner"},
		{899, "Beginner"},
		{900, "Newbie"},
		{1000, "Newbie"},
		{1099, "Newbie"},
		{1100, "Pupil"},
		{1299, "Pupil"},
		{1300, "Specialist"},
		{1500, "Expert"},
		{1700, "Candidate Master"},
		{1900, "Master"},
		{2099, "Master"},
		{2100, "Grandmaster"},
		{3000, "Grandmaster"},
	}
	for _, tt := range tests {
		if got := RankLabel(tt.rating); got != tt.want {
			t.Errorf("RankLabel(%d) = %q, want %q", tt.rating, got, tt.want)
		}
	}
}

func TestNewRatingPolicy(t *testing.T) {
	fixed := NewRatingPolicy("fixed")
	if got := fixed.K(0); got != 32 {
		t.Errorf("fixed K = %v, want 32", got)
	}
	if got := fixed.K(100); got != 32 {
		t.Errorf("fixed K after 100 games = %v, want 32", got)
	}

	provisional := NewRatingPolicy("provisional")
	if got := provisional.K(0); got != 40 {
		t.Errorf("provisional K for new player = %v, want 40", got)
	}
	if got := provisional.K(29); got != 40 {
		t.Errorf("provisional K at 29 games = %v, want 40", got)
	}
	if got := provisional.K(30); got != 20 {
		t.Errorf("provisional K at 30 games = %v, want 20", got)
	}

	unknown := NewRatingPolicy("whatever")
	if got := unknown.K(0); got != 32 {
		t.Errorf("unknown policy K = %v, want fallback 32", got)
	}
}

func TestEloExpectedSymmetry(t *testing.T) {
	ea := EloExpected(1000, 1400)
	eb := EloExpected(1400, 1000)
	if diff := ea + eb - 1; diff > 1e-9 || diff < -1e-9 {
		t.Errorf("expected scores %v + %v != 1", ea, eb)
	}
	if ea >= 0.5 {
		t.Errorf("underdog expected score %v, want below 0.5", ea)
	}
}
