package app

import (
	"strconv"

	"trivia-engine/internal/domain"
)

// Wager bounds.
const (
	WagerMin           = 1
	teamsWagerMax      = 20
	teamsLightningMax  = 40
	soloWagerFloor     = 20
	soloWagerCeil      = 50
	soloLightningFloor = 40
	soloLightningCeil  = 100
)

// WagerManager tracks the bounded stake for the current question. The
// invariant WagerMin <= value <= max holds after every mutation; max is
// recomputed whenever a new question becomes active.
type WagerManager struct {
	value int
	max   int
}

func NewWagerManager() *WagerManager {
	return &WagerManager{value: WagerMin, max: teamsWagerMax}
}

func (w *WagerManager) Value() int { return w.value }
func (w *WagerManager) Max() int   { return w.max }

// Recompute applies the ceiling rule table for the upcoming question and
// re-clamps the stored stake against the new ceiling.
func (w *WagerManager) Recompute(mode domain.Mode, lightning bool, soloScore, questionIndex, totalQuestions int) {
	w.max = ComputeMaxWager(mode, lightning, soloScore, questionIndex, totalQuestions)
	w.value = clamp(w.value, WagerMin, w.max)
}

// ComputeMaxWager is the deterministic ceiling rule table.
func ComputeMaxWager(mode domain.Mode, lightning bool, soloScore, questionIndex, totalQuestions int) int {
	if mode != domain.ModeSolo {
		if lightning {
			return teamsLightningMax
		}
		return teamsWagerMax
	}
	if lightning {
		return clamp(soloScore/2, soloLightningFloor, soloLightningCeil)
	}
	max := clamp(soloScore/4, soloWagerFloor, soloWagerCeil)
	if totalQuestions > 0 && questionIndex > totalQuestions/2 {
		max = max * 3 / 2
	}
	return max
}

// Set clamps the stake into [WagerMin, max].
func (w *WagerManager) Set(value int) {
	w.value = clamp(value, WagerMin, w.max)
}

// SetRaw parses free-form input; non-numeric or empty input coerces to the
// minimum stake.
func (w *WagerManager) SetRaw(raw string) {
	v, err := strconv.Atoi(raw)
	if err != nil {
		v = WagerMin
	}
	w.Set(v)
}

// ApplyDayBonus doubles the amount used for scoring on Fridays. The stored
// stake is never changed; only the scored delta gets the bonus.
func ApplyDayBonus(wager int, isFriday bool) int {
	if isFriday {
		return wager * 2
	}
	return wager
}

// ClassifyRisk maps a stake to its tier relative to the ceiling.
func ClassifyRisk(value, max int) domain.RiskTier {
	if max <= 0 {
		return domain.RiskLow
	}
	pct := value * 100 / max
	switch {
	case pct <= 25:
		return domain.RiskLow
	case pct <= 50:
		return domain.RiskModerate
	case pct <= 75:
		return domain.RiskHigh
	default:
		return domain.RiskExtreme
	}
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
