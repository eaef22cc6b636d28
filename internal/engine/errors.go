package engine

import "errors"

// Sentinel errors returned by engine operations. Handlers map these to
// user-visible rejection messages; none of them leaves persisted state
// mutated.
var (
	ErrInvalidXP       = errors.New("xp must be a positive number")
	ErrTaskNotFound    = errors.New("task not found")
	ErrTaskAlreadyDone = errors.New("task already completed")

	ErrTimerNotFound = errors.New("timer not found")
	ErrInvalidTime   = errors.New("time must be in YYYY-MM-DD HH:MM format")
	ErrPastTime      = errors.New("time must be in the future")
)

// errAlreadyRan short-circuits RunDaily's store update when the daily post
// already happened today; it never escapes the package.
var errAlreadyRan = errors.New("daily tasks already ran today")
