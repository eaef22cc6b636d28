package engine

import (
	"context"
	"errors"

	"github.com/halvard/questbot/internal/store"
)

// DateLayout is the calendar-date key stored in meta.lastDailyDate,
// computed in the configured timezone.
const DateLayout = "2006-01-02"

// DailyRun reports the outcome of a daily injection that actually ran.
type DailyRun struct {
	Date     string
	Tasks    []DailyTask
	Profiles int
}

// TodayKey returns today's calendar date in the configured timezone.
func (s *Service) TodayKey() string {
	return s.now().In(s.loc).Format(DateLayout)
}

// RunDaily injects one task per daily template into every existing
// profile and records today's date key. It returns nil when the daily
// post already ran for the current calendar day, making the operation
// idempotent within a day. The caller is responsible for announcing the
// returned run; announcement failures do not roll anything back.
func (s *Service) RunDaily(ctx context.Context) (*DailyRun, error) {
	today := s.TodayKey()

	var run *DailyRun
	err := s.store.Update(ctx, func(doc *store.Document) error {
		if doc.Meta.LastDailyDate == today {
			return errAlreadyRan
		}
		doc.Meta.LastDailyDate = today

		for _, profile := range doc.Users {
			nextID := profile.NextTaskID()
			for i, tmpl := range s.daily {
				profile.Tasks = append(profile.Tasks, &store.Task{
					ID:    nextID + i,
					Text:  tmpl.Text,
					XP:    tmpl.XP,
					Daily: true,
					Date:  today,
				})
			}
		}

		run = &DailyRun{Date: today, Tasks: s.daily, Profiles: len(doc.Users)}
		return nil
	})
	if err != nil {
		if errors.Is(err, errAlreadyRan) {
			s.logger.DebugContext(ctx, "Daily tasks already posted today", "date", today)
			return nil, nil
		}
		return nil, err
	}

	s.logger.InfoContext(ctx, "Daily tasks injected", "date", today, "profiles", run.Profiles, "templates", len(run.Tasks))
	return run, nil
}
