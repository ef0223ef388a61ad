package domain

import "time"

// Mode selects the competitive variant for a session.
type Mode string

const (
	ModeSolo             Mode = "solo"
	ModeTeamsAlternating Mode = "teams"
	// ModeTeamsSequential is the time-bounded variant: blue plays a full
	// round-timer-bounded set before black plays a disjoint one.
	ModeTeamsSequential Mode = "teams-sequential"
)

// Team identifies one of the two fixed team slots.
type Team string

const (
	TeamBlue  Team = "blue"
	TeamBlack Team = "black"
)

// CategoryAll is the implicit wildcard matching every category.
const CategoryAll = "All"

// Question is an immutable trivia record. Options hold the display values;
// Answer is the correct option value verbatim.
type Question struct {
	ID          string   `json:"id"`
	Category    string   `json:"category"`
	Prompt      string   `json:"prompt"`
	Options     []string `json:"options"`
	Answer      string   `json:"answer"`
	Explanation string   `json:"explanation,omitempty"`
}

// QuestionPack is a named collection of questions loaded as one unit.
type QuestionPack struct {
	ID        string     `json:"id"`
	Questions []Question `json:"questions"`
}

// RiskTier classifies a wager relative to its current ceiling.
type RiskTier string

const (
	RiskLow      RiskTier = "Low"
	RiskModerate RiskTier = "Moderate"
	RiskHigh     RiskTier = "High"
	RiskExtreme  RiskTier = "Extreme"
)

// LeaderboardEntry is the persisted shape of one finished game.
type LeaderboardEntry struct {
	PlayerName     string    `json:"playerName"`
	Score          int       `json:"score"`
	CorrectAnswers int       `json:"correctAnswers"`
	TotalQuestions int       `json:"totalQuestions"`
	Timestamp      time.Time `json:"timestamp"`
	ElapsedSeconds int       `json:"elapsedSeconds"`
	// Bucket keys leaderboards by round length so 5-question and
	// 20-question games never compete on the same board.
	Bucket string `json:"questionCountBucket"`
}

// ResultSummary is the read-only snapshot computed once at session finish.
type ResultSummary struct {
	CorrectPct     int              `json:"correctPct"`
	Stars          int              `json:"stars"`
	Achievements   []string         `json:"achievements"`
	ElapsedSeconds int              `json:"elapsedSeconds"`
	Entry          LeaderboardEntry `json:"entry"`
	Winner         Team             `json:"winner,omitempty"`
}
