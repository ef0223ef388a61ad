package app

import (
	"fmt"
	"time"

	"trivia-engine/internal/domain"
)

// Phase is the session lifecycle.
type Phase int

const (
	PhaseIdle Phase = iota
	PhaseActive
	PhaseAnswered
	PhaseRoundBoundary
	PhaseFinished
)

// DefaultRoundSize is the lightning-round cadence: every roundSize-th
// question carries elevated wager ceilings.
const DefaultRoundSize = 5

// GameSession is the orchestrating state machine. It owns one draw, one
// score ledger, one wager state, one power-up balance, and the timers.
// All transitions run on discrete external triggers; callers serialize
// them, so the session itself holds no lock.
type GameSession struct {
	bank       *QuestionBank
	board      *ScoreBoard
	wager      *WagerManager
	powerups   *PowerUpEconomy
	qTimer     *TimerController
	rTimer     *TimerController
	observers  []SessionObserver
	now        func() time.Time
	playerName string
	roundSize  int

	mode          domain.Mode
	category      string
	questionCount int
	phase         Phase
	draw          []domain.Question
	index         int
	turn          domain.Team

	startedAt       time.Time
	questionShownAt time.Time
	totalLatency    time.Duration
	resolvedCount   int
	wrongRun        int
	wrongRunPeak    int
	usedIDs         map[string]struct{}
	summary         domain.ResultSummary
}

func NewGameSession(bank *QuestionBank, playerName string) *GameSession {
	return NewGameSessionWithClock(bank, playerName, time.Now)
}

// NewGameSessionWithClock is test-only for deterministic time.
func NewGameSessionWithClock(bank *QuestionBank, playerName string, now func() time.Time) *GameSession {
	return &GameSession{
		bank:       bank,
		wager:      NewWagerManager(),
		powerups:   NewPowerUpEconomy(),
		qTimer:     NewTimerController(TimerPerQuestion),
		rTimer:     NewTimerController(TimerWholeRound),
		now:        now,
		playerName: playerName,
		roundSize:  DefaultRoundSize,
	}
}

// Register appends a lifecycle observer; observers fire synchronously in
// registration order.
func (g *GameSession) Register(obs SessionObserver) {
	g.observers = append(g.observers, obs)
}

// SetRoundSize overrides the lightning cadence; values below 2 are ignored.
func (g *GameSession) SetRoundSize(n int) {
	if n >= 2 {
		g.roundSize = n
	}
}

// PowerUps exposes the economy for scheduler injection in tests.
func (g *GameSession) PowerUps() *PowerUpEconomy { return g.powerups }

// TimerRemaining reports the active timer's remaining seconds.
func (g *GameSession) TimerRemaining() int { return g.activeTimer().Remaining() }

func (g *GameSession) Phase() Phase           { return g.phase }
func (g *GameSession) Mode() domain.Mode      { return g.mode }
func (g *GameSession) Turn() domain.Team      { return g.turn }
func (g *GameSession) Index() int             { return g.index }
func (g *GameSession) Board() *ScoreBoard     { return g.board }
func (g *GameSession) Wager() *WagerManager   { return g.wager }
func (g *GameSession) DrawLen() int           { return len(g.draw) }

// Start resets every sub-component, draws the round's question set, and
// enters Active at index 0. A failed draw fails the whole start.
func (g *GameSession) Start(mode domain.Mode, category string, questionCount int) error {
	draw, err := g.bank.Draw(category, questionCount)
	if err != nil {
		return err
	}

	g.mode = mode
	g.category = category
	g.questionCount = questionCount
	g.draw = draw
	g.index = 0
	g.turn = domain.TeamBlue
	g.board = NewScoreBoard(mode)
	g.wager = NewWagerManager()
	g.powerups.Reset()
	g.qTimer.Stop()
	g.rTimer.Stop()
	g.startedAt = g.now()
	g.totalLatency = 0
	g.resolvedCount = 0
	g.wrongRun = 0
	g.wrongRunPeak = 0
	g.usedIDs = nil
	g.summary = domain.ResultSummary{}

	if mode == domain.ModeTeamsSequential {
		g.rTimer.Start(WholeRoundTimeLimit)
	}
	g.phase = PhaseActive
	g.showQuestion()
	return nil
}

// CurrentQuestion returns the question awaiting an answer.
func (g *GameSession) CurrentQuestion() (domain.Question, error) {
	if g.phase != PhaseActive && g.phase != PhaseAnswered {
		return domain.Question{}, domain.ErrInvalidState
	}
	return g.draw[g.index], nil
}

// Lightning reports whether the current question is a lightning round.
func (g *GameSession) Lightning() bool {
	return g.index > 0 && g.index%g.roundSize == 0
}

// ActingTeam is the team slot the current answer scores against. In
// alternating mode the slot follows question parity; in sequential mode it
// is fixed until the round boundary.
func (g *GameSession) ActingTeam() domain.Team {
	if g.mode == domain.ModeTeamsAlternating {
		if g.index%2 == 0 {
			return domain.TeamBlue
		}
		return domain.TeamBlack
	}
	return g.turn
}

// SetWager clamps the stake into the current bounds.
func (g *GameSession) SetWager(value int) error {
	if g.phase != PhaseActive {
		return domain.ErrInvalidState
	}
	g.wager.Set(value)
	return nil
}

// SetWagerRaw accepts free-form input, coercing garbage to the minimum.
func (g *GameSession) SetWagerRaw(raw string) error {
	if g.phase != PhaseActive {
		return domain.ErrInvalidState
	}
	g.wager.SetRaw(raw)
	return nil
}

// ActivateDoublePoints arms the double-points effect for the next scored
// answer.
func (g *GameSession) ActivateDoublePoints() error {
	if g.phase != PhaseActive {
		return domain.ErrInvalidState
	}
	return g.powerups.ActivateDoublePoints()
}

// ActivateFreeze pauses the active timer for the freeze duration. The
// timer state is untouched when activation fails.
func (g *GameSession) ActivateFreeze() error {
	if g.phase != PhaseActive {
		return domain.ErrInvalidState
	}
	timer := g.activeTimer()
	return g.powerups.ActivateFreeze(timer.Pause, timer.Resume, FreezeDuration)
}

// SubmitAnswer scores the pending question against the selected option.
func (g *GameSession) SubmitAnswer(selected string) (AnswerScoredEvent, error) {
	if g.phase != PhaseActive {
		return AnswerScoredEvent{}, domain.ErrInvalidState
	}
	question := g.draw[g.index]
	return g.resolve(selected == question.Answer, false), nil
}

// Tick advances the active timer by one second. The transport calls this
// once per real second; tests call it directly.
func (g *GameSession) Tick() {
	if g.phase != PhaseActive && g.phase != PhaseAnswered {
		return
	}
	timer := g.activeTimer()
	if timer.Phase() != TimerRunning && timer.Phase() != TimerPaused {
		return
	}
	expired := timer.Tick()
	for _, obs := range g.observers {
		obs.TimeRemaining(timer.Kind(), timer.Remaining())
	}
	if !expired {
		return
	}
	if timer.Kind() == TimerPerQuestion {
		if g.phase == PhaseActive {
			g.notifyCue(CueTimeUp)
			g.resolve(false, true)
		}
		return
	}
	// Whole-round expiry ends the current team's turn outright; a pending
	// question is abandoned unscored.
	g.notifyCue(CueTimeUp)
	g.endRound()
}

// Advance moves past a scored question: next question, round boundary, or
// finish.
func (g *GameSession) Advance() error {
	if g.phase != PhaseAnswered {
		return domain.ErrInvalidState
	}
	g.index++
	if g.index >= len(g.draw) {
		g.endRound()
		return nil
	}
	g.phase = PhaseActive
	g.showQuestion()
	for _, obs := range g.observers {
		obs.RoundAdvanced(g.index)
	}
	return nil
}

// ConfirmHandoff draws the second team's exclusion-filtered set after the
// boundary and re-enters Active. On a failed draw the session stays at the
// boundary so the failure can be surfaced.
func (g *GameSession) ConfirmHandoff() error {
	if g.phase != PhaseRoundBoundary {
		return domain.ErrInvalidState
	}
	draw, err := g.bank.DrawExcluding(g.category, g.questionCount, g.usedIDs)
	if err != nil {
		return err
	}
	g.draw = draw
	g.index = 0
	g.turn = domain.TeamBlack
	g.rTimer.Start(WholeRoundTimeLimit)
	g.phase = PhaseActive
	g.notifyCue(CueRoundTransition)
	g.showQuestion()
	return nil
}

// Exit aborts the session from any non-idle state. Nothing is persisted.
func (g *GameSession) Exit() error {
	if g.phase == PhaseIdle {
		return domain.ErrInvalidState
	}
	g.qTimer.Stop()
	g.rTimer.Stop()
	g.draw = nil
	g.index = 0
	g.board = nil
	g.powerups.Reset()
	g.phase = PhaseIdle
	return nil
}

// Summary returns the result snapshot once the session has finished.
func (g *GameSession) Summary() (domain.ResultSummary, error) {
	if g.phase != PhaseFinished {
		return domain.ResultSummary{}, domain.ErrInvalidState
	}
	return g.summary, nil
}

func (g *GameSession) activeTimer() *TimerController {
	if g.mode == domain.ModeTeamsSequential {
		return g.rTimer
	}
	return g.qTimer
}

func (g *GameSession) showQuestion() {
	question := g.draw[g.index]
	soloScore := 0
	if g.mode == domain.ModeSolo {
		soloScore = g.board.Points()
	}
	g.wager.Recompute(g.mode, g.Lightning(), soloScore, g.index, len(g.draw))
	g.questionShownAt = g.now()

	if g.mode != domain.ModeTeamsSequential {
		g.qTimer.Start(QuestionTimeLimit)
	}
	if g.Lightning() {
		g.notifyCue(CueLightning)
	}

	event := QuestionShownEvent{
		Index:           g.index,
		Total:           len(g.draw),
		Prompt:          question.Prompt,
		Category:        question.Category,
		ShuffledOptions: g.bank.ShuffleOptions(question),
		WagerMax:        g.wager.Max(),
		Lightning:       g.Lightning(),
		Turn:            g.ActingTeam(),
	}
	for _, obs := range g.observers {
		obs.QuestionShown(event)
	}
}

func (g *GameSession) resolve(correct, timedOut bool) AnswerScoredEvent {
	question := g.draw[g.index]

	stake := ApplyDayBonus(g.wager.Value(), g.now().Weekday() == time.Friday)
	if g.powerups.ConsumeDouble() {
		stake *= 2
	}

	var delta int
	if g.mode == domain.ModeSolo {
		delta = g.board.ApplySolo(correct, stake)
		if correct && g.board.Streak()%StreakPerToken == 0 {
			g.powerups.EarnToken()
		}
	} else {
		delta = g.board.ApplyTeam(g.ActingTeam(), correct, stake)
	}

	g.totalLatency += g.now().Sub(g.questionShownAt)
	g.resolvedCount++
	if correct {
		g.wrongRun = 0
	} else {
		g.wrongRun++
		if g.wrongRun > g.wrongRunPeak {
			g.wrongRunPeak = g.wrongRun
		}
	}

	if g.mode != domain.ModeTeamsSequential {
		g.qTimer.Stop()
	}
	g.phase = PhaseAnswered

	event := AnswerScoredEvent{
		Correct:       correct,
		CorrectAnswer: question.Answer,
		ScoreDelta:    delta,
		Explanation:   question.Explanation,
		Streak:        g.board.Streak(),
		TimedOut:      timedOut,
	}
	for _, obs := range g.observers {
		obs.AnswerScored(event)
	}
	if correct {
		g.notifyCue(CueCorrect)
		if g.mode == domain.ModeSolo && g.board.Streak() > 1 {
			g.notifyCue(Cue(fmt.Sprintf("%s%d", CueStreakPrefix, g.board.Streak())))
		}
	} else if !timedOut {
		g.notifyCue(CueIncorrect)
	}
	return event
}

func (g *GameSession) endRound() {
	if g.mode == domain.ModeTeamsSequential && g.turn == domain.TeamBlue {
		g.usedIDs = make(map[string]struct{}, len(g.draw))
		for _, q := range g.draw {
			g.usedIDs[q.ID] = struct{}{}
		}
		g.rTimer.Stop()
		g.phase = PhaseRoundBoundary
		g.notifyCue(CueRoundTransition)
		return
	}
	g.finish()
}

func (g *GameSession) finish() {
	g.qTimer.Stop()
	g.rTimer.Stop()

	stats := FinalStats{
		Completed:      true,
		Score:          g.board.TotalPoints(),
		CorrectAnswers: g.board.CorrectCount(),
		TotalQuestions: g.resolvedCount,
		LongestStreak:  g.board.LongestStreak(),
		PowerUpsUsed:   g.powerups.Used(),
		TokensEarned:   g.powerups.TokensEarned(),
		Elapsed:        g.now().Sub(g.startedAt),
		Winner:         g.board.Winner(),
	}
	if g.resolvedCount > 0 {
		stats.AvgAnswerTime = g.totalLatency.Seconds() / float64(g.resolvedCount)
	}
	pct := correctPct(stats)
	stats.HadComeback = g.wrongRunPeak >= 3 && pct >= 80

	g.summary = Evaluate(g.playerName, stats, g.now())
	g.phase = PhaseFinished
	for _, obs := range g.observers {
		obs.Finished(g.summary)
	}
}

func (g *GameSession) notifyCue(cue Cue) {
	for _, obs := range g.observers {
		obs.CueTriggered(cue)
	}
}
