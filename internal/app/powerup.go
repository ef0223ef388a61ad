package app

import (
	"time"

	"trivia-engine/internal/domain"
)

// FreezeDuration is how long the freeze power-up pauses the active timer.
const FreezeDuration = 5 * time.Second

// StreakPerToken is the solo streak cadence that earns a faith token.
const StreakPerToken = 3

// PowerUpEconomy tracks the faith-token balance and the two spendable
// effects. Each activation consumes exactly one token and is single-use:
// double points is consumed at the next scored answer, freeze auto-expires
// after FreezeDuration.
type PowerUpEconomy struct {
	tokens       int
	doubleActive bool
	freezeActive bool
	tokensEarned int
	usedCount    int

	// after schedules the freeze resume; tests replace it to fire manually.
	after func(d time.Duration, fn func())
}

func NewPowerUpEconomy() *PowerUpEconomy {
	return &PowerUpEconomy{
		after: func(d time.Duration, fn func()) { time.AfterFunc(d, fn) },
	}
}

// NewPowerUpEconomyWithScheduler is test-only for deterministic freezes.
func NewPowerUpEconomyWithScheduler(after func(time.Duration, func())) *PowerUpEconomy {
	return &PowerUpEconomy{after: after}
}

// SetScheduler swaps the freeze scheduler; used by tests that reach the
// economy through a session.
func (p *PowerUpEconomy) SetScheduler(after func(time.Duration, func())) {
	p.after = after
}

func (p *PowerUpEconomy) Tokens() int          { return p.tokens }
func (p *PowerUpEconomy) TokensEarned() int    { return p.tokensEarned }
func (p *PowerUpEconomy) Used() int            { return p.usedCount }
func (p *PowerUpEconomy) DoubleActive() bool   { return p.doubleActive }
func (p *PowerUpEconomy) FreezeActive() bool   { return p.freezeActive }

// EarnToken credits one token; the session calls this on every third
// consecutive correct solo answer.
func (p *PowerUpEconomy) EarnToken() {
	p.tokens++
	p.tokensEarned++
}

// ActivateDoublePoints spends a token to double the next scored answer.
// Re-activation while already armed is rejected.
func (p *PowerUpEconomy) ActivateDoublePoints() error {
	if p.doubleActive {
		return domain.ErrInvalidState
	}
	if p.tokens < 1 {
		return domain.ErrInsufficientTokens
	}
	p.tokens--
	p.usedCount++
	p.doubleActive = true
	return nil
}

// ConsumeDouble reports and clears the armed multiplier. It is called at
// every answer resolution regardless of correctness, so the effect is spent
// exactly once.
func (p *PowerUpEconomy) ConsumeDouble() bool {
	active := p.doubleActive
	p.doubleActive = false
	return active
}

// ActivateFreeze spends a token, pauses the timer via pauseFn, and schedules
// resumeFn after the freeze duration. Only one freeze may be in flight.
func (p *PowerUpEconomy) ActivateFreeze(pauseFn, resumeFn func(), duration time.Duration) error {
	if p.freezeActive {
		return domain.ErrInvalidState
	}
	if p.tokens < 1 {
		return domain.ErrInsufficientTokens
	}
	p.tokens--
	p.usedCount++
	p.freezeActive = true
	pauseFn()
	p.after(duration, func() {
		p.freezeActive = false
		resumeFn()
	})
	return nil
}

// Reset clears all balances and flags at session start.
func (p *PowerUpEconomy) Reset() {
	p.tokens = 0
	p.tokensEarned = 0
	p.usedCount = 0
	p.doubleActive = false
	p.freezeActive = false
}
