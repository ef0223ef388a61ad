package app_test

import (
	"testing"

	"trivia-engine/internal/app"
	"trivia-engine/internal/domain"
)

func TestComputeMaxWagerRuleTable(t *testing.T) {
	cases := []struct {
		name      string
		mode      domain.Mode
		lightning bool
		score     int
		index     int
		total     int
		want      int
	}{
		{"teams normal", domain.ModeTeamsAlternating, false, 0, 1, 10, 20},
		{"teams lightning", domain.ModeTeamsAlternating, true, 0, 5, 10, 40},
		{"solo low score floors at 20", domain.ModeSolo, false, 10, 1, 10, 20},
		{"solo quarter of score", domain.ModeSolo, false, 120, 1, 10, 30},
		{"solo ceiling at 50", domain.ModeSolo, false, 400, 1, 10, 50},
		{"solo past midpoint gets 1.5x", domain.ModeSolo, false, 120, 6, 10, 45},
		{"solo lightning floors at 40", domain.ModeSolo, true, 10, 5, 10, 40},
		{"solo lightning half of score", domain.ModeSolo, true, 120, 5, 10, 60},
		{"solo lightning ceiling at 100", domain.ModeSolo, true, 400, 5, 10, 100},
	}
	for _, tc := range cases {
		got := app.ComputeMaxWager(tc.mode, tc.lightning, tc.score, tc.index, tc.total)
		if got != tc.want {
			t.Errorf("%s: expected %d, got %d", tc.name, tc.want, got)
		}
	}
}

func TestSetWagerAlwaysWithinBounds(t *testing.T) {
	w := app.NewWagerManager()
	modes := []domain.Mode{domain.ModeSolo, domain.ModeTeamsAlternating}
	scores := []int{0, 40, 200, 1000}

	for _, mode := range modes {
		for _, lightning := range []bool{false, true} {
			for _, score := range scores {
				w.Recompute(mode, lightning, score, 3, 10)
				for _, v := range []int{-5, 0, 1, 7, 50, 9999} {
					w.Set(v)
					if w.Value() < app.WagerMin || w.Value() > w.Max() {
						t.Fatalf("wager %d outside [%d,%d] (mode=%s lightning=%v score=%d)",
							w.Value(), app.WagerMin, w.Max(), mode, lightning, score)
					}
				}
			}
		}
	}
}

func TestSetRawCoercesGarbageToMinimum(t *testing.T) {
	w := app.NewWagerManager()
	w.Set(10)

	w.SetRaw("")
	if w.Value() != app.WagerMin {
		t.Fatalf("empty input: expected %d, got %d", app.WagerMin, w.Value())
	}
	w.SetRaw("banana")
	if w.Value() != app.WagerMin {
		t.Fatalf("non-numeric input: expected %d, got %d", app.WagerMin, w.Value())
	}
	w.SetRaw("15")
	if w.Value() != 15 {
		t.Fatalf("numeric input: expected 15, got %d", w.Value())
	}
}

func TestApplyDayBonus(t *testing.T) {
	if got := app.ApplyDayBonus(7, true); got != 14 {
		t.Fatalf("friday: expected 14, got %d", got)
	}
	if got := app.ApplyDayBonus(7, false); got != 7 {
		t.Fatalf("weekday: expected 7, got %d", got)
	}
}

func TestClassifyRisk(t *testing.T) {
	cases := []struct {
		value, max int
		want       domain.RiskTier
	}{
		{5, 20, domain.RiskLow},
		{10, 20, domain.RiskModerate},
		{15, 20, domain.RiskHigh},
		{20, 20, domain.RiskExtreme},
		{1, 100, domain.RiskLow},
	}
	for _, tc := range cases {
		if got := app.ClassifyRisk(tc.value, tc.max); got != tc.want {
			t.Errorf("%d/%d: expected %s, got %s", tc.value, tc.max, tc.want, got)
		}
	}
}
