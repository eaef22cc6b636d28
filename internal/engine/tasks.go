package engine

import (
	"context"

	"github.com/halvard/questbot/internal/store"
)

// HistoryLimit caps the per-profile completion history; the oldest entry
// is evicted once the cap is exceeded.
const HistoryLimit = 100

// Completion describes the outcome of completing a task.
type Completion struct {
	Task  store.Task
	XP    int
	Level int
}

// Status is the pure status-panel computation for one profile.
type Status struct {
	Level       int
	XP          int
	NextLevelXP int
	Bar         string
	DoneTasks   int
	TotalTasks  int
}

// AddTask appends a new task to the user's list and persists. The XP
// reward must be positive; the task id is max(existing)+1 within the
// profile and is never reused.
func (s *Service) AddTask(ctx context.Context, userID, text string, xp int) (store.Task, error) {
	if xp <= 0 {
		return store.Task{}, ErrInvalidXP
	}

	var created store.Task
	err := s.store.Update(ctx, func(doc *store.Document) error {
		profile := doc.Profile(userID)
		task := &store.Task{
			ID:   profile.NextTaskID(),
			Text: text,
			XP:   xp,
		}
		profile.Tasks = append(profile.Tasks, task)
		created = *task
		return nil
	})
	if err != nil {
		return store.Task{}, err
	}

	s.logger.InfoContext(ctx, "Task added", "user_id", userID, "task_id", created.ID, "xp", created.XP)
	return created, nil
}

// ActiveTasks returns the user's incomplete tasks in list order. An empty
// result is a normal outcome, not an error.
func (s *Service) ActiveTasks(ctx context.Context, userID string) ([]store.Task, error) {
	var active []store.Task
	err := s.store.View(ctx, func(doc *store.Document) error {
		for _, t := range doc.Profile(userID).Tasks {
			if !t.Done {
				active = append(active, *t)
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return active, nil
}

// CompleteTask marks the task done, credits its XP exactly once,
// recomputes the level, and prepends a history snapshot. Completing an
// unknown id fails with ErrTaskNotFound; completing a finished task fails
// with ErrTaskAlreadyDone. Neither failure mutates state.
func (s *Service) CompleteTask(ctx context.Context, userID string, taskID int) (Completion, error) {
	var result Completion
	err := s.store.Update(ctx, func(doc *store.Document) error {
		profile := doc.Profile(userID)

		var task *store.Task
		for _, t := range profile.Tasks {
			if t.ID == taskID {
				task = t
				break
			}
		}
		if task == nil {
			return ErrTaskNotFound
		}
		if task.Done {
			return ErrTaskAlreadyDone
		}

		task.Done = true
		profile.XP += task.XP
		profile.Level = LevelForXP(profile.XP)

		entry := &store.HistoryEntry{
			ID:          task.ID,
			Text:        task.Text,
			XP:          task.XP,
			CompletedAt: s.now(),
		}
		profile.History = append([]*store.HistoryEntry{entry}, profile.History...)
		if len(profile.History) > HistoryLimit {
			profile.History = profile.History[:HistoryLimit]
		}

		result = Completion{Task: *task, XP: profile.XP, Level: profile.Level}
		return nil
	})
	if err != nil {
		return Completion{}, err
	}

	s.logger.InfoContext(ctx, "Task completed", "user_id", userID, "task_id", taskID, "xp", result.XP, "level", result.Level)
	return result, nil
}

// History returns the user's completion history, most recent first,
// bounded by HistoryLimit.
func (s *Service) History(ctx context.Context, userID string) ([]store.HistoryEntry, error) {
	var entries []store.HistoryEntry
	err := s.store.View(ctx, func(doc *store.Document) error {
		history := doc.Profile(userID).History
		if len(history) > HistoryLimit {
			history = history[:HistoryLimit]
		}
		for _, e := range history {
			entries = append(entries, *e)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return entries, nil
}

// Status computes the status panel for the user without mutating anything.
func (s *Service) Status(ctx context.Context, userID string) (Status, error) {
	var st Status
	err := s.store.View(ctx, func(doc *store.Document) error {
		profile := doc.Profile(userID)

		done := 0
		for _, t := range profile.Tasks {
			if t.Done {
				done++
			}
		}

		st = Status{
			Level:       profile.Level,
			XP:          profile.XP,
			NextLevelXP: profile.Level * XPPerLevel,
			Bar:         ProgressBar(profile.XP, profile.Level),
			DoneTasks:   done,
			TotalTasks:  len(profile.Tasks),
		}
		return nil
	})
	if err != nil {
		return Status{}, err
	}
	return st, nil
}
