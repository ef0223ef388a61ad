package domain

import "errors"

var (
	// ErrInsufficientQuestions is returned when the filtered pool cannot
	// supply a round; the session does not start (or does not hand off).
	ErrInsufficientQuestions = errors.New("not enough questions for the round")
	// ErrInsufficientTokens is returned when a power-up is activated
	// without balance. Recoverable; callers disable the control.
	ErrInsufficientTokens = errors.New("not enough faith tokens")
	// ErrInvalidState is returned for triggers that do not apply to the
	// current lifecycle phase. Never fatal; treated as a logged no-op.
	ErrInvalidState = errors.New("operation not valid in current session state")
	// ErrPackNotFound indicates the question pack could not be loaded.
	ErrPackNotFound = errors.New("question pack not found")
)
