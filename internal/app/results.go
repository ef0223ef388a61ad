package app

import (
	"fmt"
	"math"
	"sort"
	"time"

	"trivia-engine/internal/domain"
)

// LeaderboardSize is the retention cap per question-count bucket.
const LeaderboardSize = 10

// FinalStats is the snapshot the evaluator sees once a session finishes.
type FinalStats struct {
	Completed      bool
	Score          int
	CorrectAnswers int
	TotalQuestions int
	LongestStreak  int
	AvgAnswerTime  float64 // seconds
	PowerUpsUsed   int
	TokensEarned   int
	HadComeback    bool
	Elapsed        time.Duration
	Winner         domain.Team
}

// achievementRule pairs an identifier with its predicate. Every rule is
// evaluated against the final snapshot; multiple matches are allowed and
// all are returned (showing only the first is a display decision).
type achievementRule struct {
	id    string
	match func(FinalStats) bool
}

var achievementRules = []achievementRule{
	{"perfect_game", func(s FinalStats) bool {
		return s.TotalQuestions > 0 && s.CorrectAnswers == s.TotalQuestions
	}},
	{"accuracy_ace", func(s FinalStats) bool { return correctPct(s) >= 90 }},
	{"streak_master", func(s FinalStats) bool { return s.LongestStreak >= 10 }},
	{"on_fire", func(s FinalStats) bool { return s.LongestStreak >= 5 }},
	{"quick_thinker", func(s FinalStats) bool { return s.Completed && s.AvgAnswerTime > 0 && s.AvgAnswerTime <= 5 }},
	{"faithful_steward", func(s FinalStats) bool { return s.TokensEarned >= 3 }},
	{"power_player", func(s FinalStats) bool { return s.PowerUpsUsed >= 2 }},
	{"comeback_kid", func(s FinalStats) bool { return s.HadComeback }},
	{"finisher", func(s FinalStats) bool { return s.Completed }},
}

// Evaluate builds the end-of-game summary from the final stats snapshot.
func Evaluate(playerName string, stats FinalStats, now time.Time) domain.ResultSummary {
	pct := correctPct(stats)
	elapsed := int(stats.Elapsed.Seconds())

	matched := make([]string, 0, len(achievementRules))
	for _, rule := range achievementRules {
		if rule.match(stats) {
			matched = append(matched, rule.id)
		}
	}

	return domain.ResultSummary{
		CorrectPct:     pct,
		Stars:          starRating(pct),
		Achievements:   matched,
		ElapsedSeconds: elapsed,
		Winner:         stats.Winner,
		Entry: domain.LeaderboardEntry{
			PlayerName:     playerName,
			Score:          stats.Score,
			CorrectAnswers: stats.CorrectAnswers,
			TotalQuestions: stats.TotalQuestions,
			Timestamp:      now,
			ElapsedSeconds: elapsed,
			Bucket:         BucketKey(stats.TotalQuestions),
		},
	}
}

func correctPct(s FinalStats) int {
	if s.TotalQuestions == 0 {
		return 0
	}
	return int(math.Round(float64(s.CorrectAnswers) / float64(s.TotalQuestions) * 100))
}

func starRating(pct int) int {
	switch {
	case pct < 50:
		return 1
	case pct < 70:
		return 2
	case pct < 85:
		return 3
	case pct < 95:
		return 4
	default:
		return 5
	}
}

// BucketKey groups leaderboards by round length.
func BucketKey(totalQuestions int) string {
	return fmt.Sprintf("q%d", totalQuestions)
}

// MergeLeaderboard inserts an entry into the persisted list and keeps the
// top entries by descending score. The sort is stable; ties keep their
// existing order.
func MergeLeaderboard(existing []domain.LeaderboardEntry, entry domain.LeaderboardEntry) []domain.LeaderboardEntry {
	merged := make([]domain.LeaderboardEntry, 0, len(existing)+1)
	merged = append(merged, existing...)
	merged = append(merged, entry)
	sort.SliceStable(merged, func(i, j int) bool {
		return merged[i].Score > merged[j].Score
	})
	if len(merged) > LeaderboardSize {
		merged = merged[:LeaderboardSize]
	}
	return merged
}
