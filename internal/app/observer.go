package app

import "trivia-engine/internal/domain"

// Cue is a discrete audio/visual notification. Observers receive cues as
// pure signals; no return value is expected.
type Cue string

const (
	CueCorrect         Cue = "correct"
	CueIncorrect       Cue = "incorrect"
	CueTimeUp          Cue = "timeUp"
	CueRoundTransition Cue = "roundTransition"
	// CueLightning marks the transition into a lightning question.
	CueLightning Cue = "roundTransition:lightning"
	// CueStreakPrefix is followed by the streak level, e.g. "streakLevel:3".
	CueStreakPrefix = "streakLevel:"
)

// QuestionShownEvent is what the rendering layer needs per active question.
type QuestionShownEvent struct {
	Index           int         `json:"index"`
	Total           int         `json:"total"`
	Prompt          string      `json:"prompt"`
	Category        string      `json:"category"`
	ShuffledOptions []string    `json:"options"`
	WagerMax        int         `json:"wagerMax"`
	Lightning       bool        `json:"lightning"`
	Turn            domain.Team `json:"turn,omitempty"`
}

// AnswerScoredEvent is emitted once per answer resolution, including the
// auto-incorrect on timer expiry.
type AnswerScoredEvent struct {
	Correct       bool   `json:"correct"`
	CorrectAnswer string `json:"correctAnswer"`
	ScoreDelta    int    `json:"scoreDelta"`
	Explanation   string `json:"explanation,omitempty"`
	Streak        int    `json:"streak"`
	TimedOut      bool   `json:"timedOut"`
}

// SessionObserver hooks the session lifecycle. Observers are invoked
// synchronously in registration order.
type SessionObserver interface {
	QuestionShown(e QuestionShownEvent)
	AnswerScored(e AnswerScoredEvent)
	RoundAdvanced(nextIndex int)
	TimeRemaining(kind TimerKind, seconds int)
	CueTriggered(cue Cue)
	Finished(summary domain.ResultSummary)
}

// ObserverFuncs adapts free functions to SessionObserver; nil fields are
// skipped.
type ObserverFuncs struct {
	OnQuestionShown func(QuestionShownEvent)
	OnAnswerScored  func(AnswerScoredEvent)
	OnRoundAdvanced func(int)
	OnTimeRemaining func(TimerKind, int)
	OnCue           func(Cue)
	OnFinished      func(domain.ResultSummary)
}

func (o ObserverFuncs) QuestionShown(e QuestionShownEvent) {
	if o.OnQuestionShown != nil {
		o.OnQuestionShown(e)
	}
}

func (o ObserverFuncs) AnswerScored(e AnswerScoredEvent) {
	if o.OnAnswerScored != nil {
		o.OnAnswerScored(e)
	}
}

func (o ObserverFuncs) RoundAdvanced(nextIndex int) {
	if o.OnRoundAdvanced != nil {
		o.OnRoundAdvanced(nextIndex)
	}
}

func (o ObserverFuncs) TimeRemaining(kind TimerKind, seconds int) {
	if o.OnTimeRemaining != nil {
		o.OnTimeRemaining(kind, seconds)
	}
}

func (o ObserverFuncs) CueTriggered(cue Cue) {
	if o.OnCue != nil {
		o.OnCue(cue)
	}
}

func (o ObserverFuncs) Finished(summary domain.ResultSummary) {
	if o.OnFinished != nil {
		o.OnFinished(summary)
	}
}
