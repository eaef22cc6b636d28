// Package engine implements the gamified task and timer logic: XP accrual
// and leveling, task completion history, scheduled event timers with
// threshold notifications, and the once-per-day task injection.
package engine

import (
	"log/slog"
	"time"

	"github.com/halvard/questbot/internal/store"
)

// DailyTask is one template appended to every profile by the daily run.
type DailyTask struct {
	Text string
	XP   int
}

// Service carries the dependencies shared by all engine operations. The
// clock is injectable so tests can drive timer and daily behavior without
// waiting on wall time.
type Service struct {
	store  store.Store
	logger *slog.Logger
	loc    *time.Location
	daily  []DailyTask
	now    func() time.Time
}

// NewService creates the engine service. loc is the timezone used for
// timer parsing and daily date keys; dailyTasks are the templates posted
// each day.
func NewService(st store.Store, logger *slog.Logger, loc *time.Location, dailyTasks []DailyTask) *Service {
	if logger == nil {
		logger = slog.Default()
	}
	if loc == nil {
		loc = time.UTC
	}
	return &Service{
		store:  st,
		logger: logger.With("component", "engine"),
		loc:    loc,
		daily:  dailyTasks,
		now:    time.Now,
	}
}

// WithClock overrides the service clock. Intended for tests.
func (s *Service) WithClock(now func() time.Time) *Service {
	s.now = now
	return s
}
