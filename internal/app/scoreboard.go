package app

import "trivia-engine/internal/domain"

// ScoreBoard is the active ledger for a session: either a solo score with
// streak tracking or a pair of team scores. Exactly one kind is live,
// chosen by mode at session start. Scores never go negative.
type ScoreBoard struct {
	mode domain.Mode

	points        int
	streak        int
	longestStreak int
	correctCount  int

	teams map[domain.Team]int
}

func NewScoreBoard(mode domain.Mode) *ScoreBoard {
	sb := &ScoreBoard{mode: mode}
	if mode != domain.ModeSolo {
		sb.teams = map[domain.Team]int{domain.TeamBlue: 0, domain.TeamBlack: 0}
	}
	return sb
}

func (sb *ScoreBoard) Mode() domain.Mode  { return sb.mode }
func (sb *ScoreBoard) Points() int        { return sb.points }
func (sb *ScoreBoard) Streak() int        { return sb.streak }
func (sb *ScoreBoard) LongestStreak() int { return sb.longestStreak }
func (sb *ScoreBoard) CorrectCount() int  { return sb.correctCount }

// TeamPoints returns the score for one team slot.
func (sb *ScoreBoard) TeamPoints(team domain.Team) int {
	return sb.teams[team]
}

// ApplySolo resolves one solo answer: correct adds the delta and extends the
// streak, incorrect subtracts it (floored at zero) and resets the streak.
func (sb *ScoreBoard) ApplySolo(correct bool, delta int) int {
	if correct {
		sb.points += delta
		sb.streak++
		sb.correctCount++
		if sb.streak > sb.longestStreak {
			sb.longestStreak = sb.streak
		}
		return delta
	}
	sb.streak = 0
	applied := delta
	if sb.points-applied < 0 {
		applied = sb.points
	}
	sb.points -= applied
	return -applied
}

// ApplyTeam resolves one team answer against the given slot.
func (sb *ScoreBoard) ApplyTeam(team domain.Team, correct bool, delta int) int {
	if correct {
		sb.teams[team] += delta
		sb.correctCount++
		return delta
	}
	applied := delta
	if sb.teams[team]-applied < 0 {
		applied = sb.teams[team]
	}
	sb.teams[team] -= applied
	return -applied
}

// Winner returns the leading team, or empty on a tie or in solo mode.
func (sb *ScoreBoard) Winner() domain.Team {
	if sb.mode == domain.ModeSolo {
		return ""
	}
	blue, black := sb.teams[domain.TeamBlue], sb.teams[domain.TeamBlack]
	switch {
	case blue > black:
		return domain.TeamBlue
	case black > blue:
		return domain.TeamBlack
	default:
		return ""
	}
}

// TotalPoints is the score used for leaderboard entries: solo points, or
// the winning side's points in team play.
func (sb *ScoreBoard) TotalPoints() int {
	if sb.mode == domain.ModeSolo {
		return sb.points
	}
	blue, black := sb.teams[domain.TeamBlue], sb.teams[domain.TeamBlack]
	if black > blue {
		return black
	}
	return blue
}
