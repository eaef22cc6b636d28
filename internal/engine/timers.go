package engine

import (
	"context"
	"time"

	"github.com/halvard/questbot/internal/store"
)

// TimeLayout is the accepted input format for timer targets, interpreted
// in the service's configured timezone.
const TimeLayout = "2006-01-02 15:04"

// Notification thresholds and the grace period after which an expired
// timer is removed.
const (
	warn12h     = 12 * time.Hour
	warn30m     = 30 * time.Minute
	expiryGrace = 60 * time.Second
)

// NotificationKind identifies which threshold a notification belongs to.
type NotificationKind int

const (
	Notify12h NotificationKind = iota
	Notify30m
	NotifyNow
)

// Notification is one pending delivery produced by a sweep. The timer
// value is a snapshot taken at fire time.
type Notification struct {
	Kind  NotificationKind
	Timer store.Timer
}

// AddTimer parses timeStr in the configured timezone and schedules a new
// timer owned by userID. Unparseable input fails with ErrInvalidTime and
// a target at or before now fails with ErrPastTime. Thresholds that are
// already inside their warning range at creation are pre-marked so the
// sweep only fires on a genuine threshold crossing.
func (s *Service) AddTimer(ctx context.Context, userID, name, timeStr, description string) (store.Timer, error) {
	target, err := time.ParseInLocation(TimeLayout, timeStr, s.loc)
	if err != nil {
		return store.Timer{}, ErrInvalidTime
	}

	now := s.now()
	if !target.After(now) {
		return store.Timer{}, ErrPastTime
	}

	remaining := target.Sub(now)
	timer := &store.Timer{
		Name:        name,
		Description: description,
		Timestamp:   target,
		UserID:      userID,
		Notified12h: remaining <= warn12h,
		Notified30m: remaining <= warn30m,
	}

	err = s.store.Update(ctx, func(doc *store.Document) error {
		timer.ID = doc.Meta.NextTimerID()
		doc.Meta.Timers = append(doc.Meta.Timers, timer)
		return nil
	})
	if err != nil {
		return store.Timer{}, err
	}

	s.logger.InfoContext(ctx, "Timer added", "user_id", userID, "timer_id", timer.ID, "target", target)
	return *timer, nil
}

// Timers returns all timers owned by userID in list order, regardless of
// notification state.
func (s *Service) Timers(ctx context.Context, userID string) ([]store.Timer, error) {
	var owned []store.Timer
	err := s.store.View(ctx, func(doc *store.Document) error {
		for _, t := range doc.Meta.Timers {
			if t.UserID == userID {
				owned = append(owned, *t)
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return owned, nil
}

// DeleteTimer removes the timer with the given id if it is owned by
// userID. A non-owner gets ErrTimerNotFound even when the id exists.
func (s *Service) DeleteTimer(ctx context.Context, userID string, timerID int) error {
	err := s.store.Update(ctx, func(doc *store.Document) error {
		for i, t := range doc.Meta.Timers {
			if t.ID == timerID && t.UserID == userID {
				doc.Meta.Timers = append(doc.Meta.Timers[:i], doc.Meta.Timers[i+1:]...)
				return nil
			}
		}
		return ErrTimerNotFound
	})
	if err != nil {
		return err
	}

	s.logger.InfoContext(ctx, "Timer deleted", "user_id", userID, "timer_id", timerID)
	return nil
}

// SweepTimers advances the per-timer notification state machine. Each
// threshold fires at most once: a notification is produced when the flag
// is still unset and the remaining time is at or below the threshold.
// Timers more than expiryGrace past their target are removed regardless
// of flag state. Flag mutations persist even if the caller later fails to
// deliver a notification, so delivery is never retried.
func (s *Service) SweepTimers(ctx context.Context) ([]Notification, error) {
	now := s.now()

	var pending []Notification
	err := s.store.Update(ctx, func(doc *store.Document) error {
		pending = pending[:0]
		kept := doc.Meta.Timers[:0]

		for _, t := range doc.Meta.Timers {
			sinceTarget := now.Sub(t.Timestamp)
			if sinceTarget > expiryGrace {
				continue
			}

			remaining := -sinceTarget
			if !t.Notified12h && remaining <= warn12h {
				t.Notified12h = true
				pending = append(pending, Notification{Kind: Notify12h, Timer: *t})
			}
			if !t.Notified30m && remaining <= warn30m {
				t.Notified30m = true
				pending = append(pending, Notification{Kind: Notify30m, Timer: *t})
			}
			if !t.NotifiedExact && remaining <= 0 {
				t.NotifiedExact = true
				pending = append(pending, Notification{Kind: NotifyNow, Timer: *t})
			}

			kept = append(kept, t)
		}

		doc.Meta.Timers = kept
		return nil
	})
	if err != nil {
		return nil, err
	}

	if len(pending) > 0 {
		s.logger.InfoContext(ctx, "Timer sweep produced notifications", "count", len(pending))
	}
	return pending, nil
}
