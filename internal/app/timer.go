package app

// TimerKind distinguishes the two countdown instances a session may run.
type TimerKind string

const (
	TimerPerQuestion TimerKind = "question"
	TimerWholeRound  TimerKind = "round"
)

// Default limits in seconds.
const (
	QuestionTimeLimit   = 20
	WholeRoundTimeLimit = 180
)

// TimerPhase is the countdown lifecycle.
type TimerPhase int

const (
	TimerStopped TimerPhase = iota
	TimerRunning
	TimerPaused
	TimerExpired
)

// TimerController is a pure countdown state machine. It holds no clock of
// its own; the transport (or a test) advances it one second per Tick call.
// Pausing preserves the exact remaining time, which the freeze power-up
// depends on.
type TimerController struct {
	kind      TimerKind
	phase     TimerPhase
	limit     int
	remaining int
}

func NewTimerController(kind TimerKind) *TimerController {
	return &TimerController{kind: kind}
}

func (t *TimerController) Kind() TimerKind   { return t.kind }
func (t *TimerController) Phase() TimerPhase { return t.phase }
func (t *TimerController) Remaining() int    { return t.remaining }
func (t *TimerController) Limit() int        { return t.limit }

// Start resets remaining to the limit and begins running.
func (t *TimerController) Start(limitSeconds int) {
	t.limit = limitSeconds
	t.remaining = limitSeconds
	t.phase = TimerRunning
}

// Stop returns the timer to its initial state.
func (t *TimerController) Stop() {
	t.phase = TimerStopped
	t.remaining = 0
}

// Pause freezes the countdown without losing remaining time.
func (t *TimerController) Pause() {
	if t.phase == TimerRunning {
		t.phase = TimerPaused
	}
}

// Resume restarts the countdown from the preserved remaining time.
func (t *TimerController) Resume() {
	if t.phase == TimerPaused {
		t.phase = TimerRunning
	}
}

// Tick advances the countdown by one second. It reports true exactly once,
// on the tick that crosses zero; an expired timer ignores further ticks.
func (t *TimerController) Tick() bool {
	if t.phase != TimerRunning {
		return false
	}
	t.remaining--
	if t.remaining <= 0 {
		t.remaining = 0
		t.phase = TimerExpired
		return true
	}
	return false
}
