package engine_test

import (
	"context"
	"io"
	"log/slog"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/halvard/questbot/internal/engine"
	"github.com/halvard/questbot/internal/store"
)

// fakeClock is a settable clock for driving timer and daily behavior.
type fakeClock struct {
	mu sync.Mutex
	t  time.Time
}

func (c *fakeClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.t
}

func (c *fakeClock) Set(t time.Time) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.t = t
}

func (c *fakeClock) Advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.t = c.t.Add(d)
}

func newTestService(t *testing.T, daily []engine.DailyTask) (*engine.Service, *fakeClock) {
	t.Helper()

	log := slog.New(slog.NewTextHandler(io.Discard, nil))
	st := store.NewFileStore(filepath.Join(t.TempDir(), "data.json"), log)

	clock := &fakeClock{t: time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)}
	svc := engine.NewService(st, log, time.UTC, daily).WithClock(clock.Now)
	return svc, clock
}

func TestAddAndCompleteTask(t *testing.T) {
	svc, _ := newTestService(t, nil)
	ctx := context.Background()

	task, err := svc.AddTask(ctx, "u1", "wash dishes", 20)
	if err != nil {
		t.Fatalf("AddTask: %v", err)
	}
	if task.ID != 1 {
		t.Fatalf("first task id = %d, want 1", task.ID)
	}

	result, err := svc.CompleteTask(ctx, "u1", task.ID)
	if err != nil {
		t.Fatalf("CompleteTask: %v", err)
	}
	if result.XP != 20 {
		t.Errorf("xp = %d, want 20", result.XP)
	}
	if result.Level != 1 {
		t.Errorf("level = %d, want 1", result.Level)
	}

	history, err := svc.History(ctx, "u1")
	if err != nil {
		t.Fatalf("History: %v", err)
	}
	if len(history) != 1 {
		t.Fatalf("history length = %d, want 1", len(history))
	}
	if history[0].Text != "wash dishes" || history[0].XP != 20 {
		t.Errorf("history entry = %+v", history[0])
	}
}

func TestAddTaskRejectsNonPositiveXP(t *testing.T) {
	svc, _ := newTestService(t, nil)
	ctx := context.Background()

	for _, xp := range []int{0, -5} {
		if _, err := svc.AddTask(ctx, "u1", "bad", xp); err != engine.ErrInvalidXP {
			t.Errorf("AddTask(xp=%d) error = %v, want ErrInvalidXP", xp, err)
		}
	}

	tasks, err := svc.ActiveTasks(ctx, "u1")
	if err != nil {
		t.Fatalf("ActiveTasks: %v", err)
	}
	if len(tasks) != 0 {
		t.Errorf("rejected add mutated state: %d tasks", len(tasks))
	}
}

func TestCompleteTaskFailures(t *testing.T) {
	svc, _ := newTestService(t, nil)
	ctx := context.Background()

	task, err := svc.AddTask(ctx, "u1", "once", 10)
	if err != nil {
		t.Fatalf("AddTask: %v", err)
	}

	if _, err := svc.CompleteTask(ctx, "u1", 99); err != engine.ErrTaskNotFound {
		t.Errorf("unknown id error = %v, want ErrTaskNotFound", err)
	}

	if _, err := svc.CompleteTask(ctx, "u1", task.ID); err != nil {
		t.Fatalf("first completion: %v", err)
	}
	if _, err := svc.CompleteTask(ctx, "u1", task.ID); err != engine.ErrTaskAlreadyDone {
		t.Errorf("second completion error = %v, want ErrTaskAlreadyDone", err)
	}

	status, err := svc.Status(ctx, "u1")
	if err != nil {
		t.Fatalf("Status: %v", err)
	}
	if status.XP != 10 {
		t.Errorf("xp after double completion = %d, want 10 (credited once)", status.XP)
	}
}

func TestLevelProgression(t *testing.T) {
	svc, _ := newTestService(t, nil)
	ctx := context.Background()

	// /add "wash dishes" 20 -> /done -> xp=20 level=1,
	// then /add "x" 150 -> /done -> xp=170 level=2.
	t1, _ := svc.AddTask(ctx, "u1", "wash dishes", 20)
	if _, err := svc.CompleteTask(ctx, "u1", t1.ID); err != nil {
		t.Fatalf("complete #1: %v", err)
	}

	t2, err := svc.AddTask(ctx, "u1", "x", 150)
	if err != nil {
		t.Fatalf("AddTask #2: %v", err)
	}
	if t2.ID != 2 {
		t.Errorf("second task id = %d, want 2", t2.ID)
	}

	result, err := svc.CompleteTask(ctx, "u1", t2.ID)
	if err != nil {
		t.Fatalf("complete #2: %v", err)
	}
	if result.XP != 170 {
		t.Errorf("xp = %d, want 170", result.XP)
	}
	if result.Level != 2 {
		t.Errorf("level = %d, want 2", result.Level)
	}
}

func TestTaskIDsNeverReused(t *testing.T) {
	svc, _ := newTestService(t, nil)
	ctx := context.Background()

	t1, _ := svc.AddTask(ctx, "u1", "a", 10)
	t2, _ := svc.AddTask(ctx, "u1", "b", 10)
	if t1.ID != 1 || t2.ID != 2 {
		t.Fatalf("ids = %d, %d, want 1, 2", t1.ID, t2.ID)
	}

	// Completing the max-id task must not free its id.
	if _, err := svc.CompleteTask(ctx, "u1", t2.ID); err != nil {
		t.Fatalf("CompleteTask: %v", err)
	}
	t3, _ := svc.AddTask(ctx, "u1", "c", 10)
	if t3.ID != 3 {
		t.Errorf("id after completing max = %d, want 3", t3.ID)
	}
}

func TestHistoryCap(t *testing.T) {
	svc, _ := newTestService(t, nil)
	ctx := context.Background()

	for n := 1; n <= engine.HistoryLimit+1; n++ {
		task, err := svc.AddTask(ctx, "u1", "task", 1)
		if err != nil {
			t.Fatalf("AddTask #%d: %v", n, err)
		}
		if _, err := svc.CompleteTask(ctx, "u1", task.ID); err != nil {
			t.Fatalf("CompleteTask #%d: %v", n, err)
		}
	}

	history, err := svc.History(ctx, "u1")
	if err != nil {
		t.Fatalf("History: %v", err)
	}
	if len(history) != engine.HistoryLimit {
		t.Fatalf("history length = %d, want %d", len(history), engine.HistoryLimit)
	}
	if history[0].ID != engine.HistoryLimit+1 {
		t.Errorf("newest entry id = %d, want %d", history[0].ID, engine.HistoryLimit+1)
	}
	// The oldest completion (task id 1) must have been evicted.
	for _, e := range history {
		if e.ID == 1 {
			t.Errorf("oldest entry still present after cap")
		}
	}
}

func TestStatus(t *testing.T) {
	svc, _ := newTestService(t, nil)
	ctx := context.Background()

	task, _ := svc.AddTask(ctx, "u1", "a", 50)
	if _, err := svc.CompleteTask(ctx, "u1", task.ID); err != nil {
		t.Fatalf("CompleteTask: %v", err)
	}
	svc.AddTask(ctx, "u1", "b", 10)

	status, err := svc.Status(ctx, "u1")
	if err != nil {
		t.Fatalf("Status: %v", err)
	}
	if status.Level != 1 || status.XP != 50 || status.NextLevelXP != 100 {
		t.Errorf("status = %+v", status)
	}
	if status.DoneTasks != 1 || status.TotalTasks != 2 {
		t.Errorf("task counts = %d/%d, want 1/2", status.DoneTasks, status.TotalTasks)
	}
	if status.Bar != "█████░░░░░" {
		t.Errorf("bar = %q", status.Bar)
	}
}
