package tasks_test

import (
	"context"
	"io"
	"log/slog"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/halvard/questbot/internal/bot/tasks"
	"github.com/halvard/questbot/internal/config"
	"github.com/halvard/questbot/internal/engine"
	"github.com/halvard/questbot/internal/store"
)

// fakeNotifier records deliveries and can fail on demand.
type fakeNotifier struct {
	dms       []string
	announces []string
	fail      error
}

func (f *fakeNotifier) DirectMessage(userID, content string) error {
	if f.fail != nil {
		return f.fail
	}
	f.dms = append(f.dms, userID+": "+content)
	return nil
}

func (f *fakeNotifier) Announce(channelID, content, roleID string) error {
	if f.fail != nil {
		return f.fail
	}
	f.announces = append(f.announces, channelID+": "+content)
	return nil
}

func newTestDeps(t *testing.T, channelID string) (tasks.TaskDeps, *fakeNotifier, func(time.Duration)) {
	t.Helper()

	log := slog.New(slog.NewTextHandler(io.Discard, nil))
	st := store.NewFileStore(filepath.Join(t.TempDir(), "data.json"), log)
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	eng := engine.NewService(st, log, time.UTC, []engine.DailyTask{{Text: "Gacha Dailies", XP: 5}}).
		WithClock(func() time.Time { return now })
	advance := func(d time.Duration) { now = now.Add(d) }

	notifier := &fakeNotifier{}
	deps := tasks.TaskDeps{
		Logger: log,
		Config: &config.Config{
			Discord: config.DiscordConfig{DailyChannelID: channelID},
		},
		Engine:   eng,
		Notifier: notifier,
	}
	return deps, notifier, advance
}

func TestDailyPostAnnounces(t *testing.T) {
	deps, notifier, _ := newTestDeps(t, "chan1")
	ctx := context.Background()

	// One existing profile so the injection has something to touch.
	if _, err := deps.Engine.AddTask(ctx, "u1", "seed", 10); err != nil {
		t.Fatalf("AddTask: %v", err)
	}

	task := tasks.RegisterAllTasks(deps)["daily_post"]
	if err := task(ctx); err != nil {
		t.Fatalf("daily_post: %v", err)
	}

	if len(notifier.announces) != 1 {
		t.Fatalf("announcements = %d, want 1", len(notifier.announces))
	}
	if !strings.Contains(notifier.announces[0], "Daily tasks are live!") ||
		!strings.Contains(notifier.announces[0], "• Gacha Dailies (5 XP)") {
		t.Errorf("announcement = %q", notifier.announces[0])
	}

	// Same day again: no second announcement.
	if err := task(ctx); err != nil {
		t.Fatalf("second daily_post: %v", err)
	}
	if len(notifier.announces) != 1 {
		t.Errorf("announcements after rerun = %d, want 1", len(notifier.announces))
	}
}

func TestDailyPostSkipsWithoutChannel(t *testing.T) {
	deps, notifier, _ := newTestDeps(t, "")
	ctx := context.Background()

	task := tasks.RegisterAllTasks(deps)["daily_post"]
	if err := task(ctx); err != nil {
		t.Fatalf("daily_post: %v", err)
	}
	if len(notifier.announces) != 0 {
		t.Errorf("announced without a configured channel")
	}
}

func TestTimerSweepDeliversDMs(t *testing.T) {
	deps, notifier, advance := newTestDeps(t, "chan1")
	ctx := context.Background()

	// Created 45m out, swept at T-30m: the 30m threshold fires.
	if _, err := deps.Engine.AddTimer(ctx, "u1", "raid", "2025-06-01 12:45", "bring snacks"); err != nil {
		t.Fatalf("AddTimer: %v", err)
	}
	advance(15 * time.Minute)

	task := tasks.RegisterAllTasks(deps)["timer_sweep"]
	if err := task(ctx); err != nil {
		t.Fatalf("timer_sweep: %v", err)
	}

	if len(notifier.dms) != 1 {
		t.Fatalf("dms = %d, want 1", len(notifier.dms))
	}
	if !strings.Contains(notifier.dms[0], "u1:") ||
		!strings.Contains(notifier.dms[0], "raid") ||
		!strings.Contains(notifier.dms[0], "30 minutes") ||
		!strings.Contains(notifier.dms[0], "bring snacks") {
		t.Errorf("dm = %q", notifier.dms[0])
	}
}

func TestTimerSweepSwallowsDeliveryFailure(t *testing.T) {
	deps, notifier, advance := newTestDeps(t, "chan1")
	ctx := context.Background()

	if _, err := deps.Engine.AddTimer(ctx, "u1", "raid", "2025-06-01 12:45", ""); err != nil {
		t.Fatalf("AddTimer: %v", err)
	}
	advance(15 * time.Minute)

	notifier.fail = context.DeadlineExceeded
	task := tasks.RegisterAllTasks(deps)["timer_sweep"]
	if err := task(ctx); err != nil {
		t.Fatalf("timer_sweep returned delivery error: %v", err)
	}

	// The flag was persisted before delivery, so a retry never happens.
	notifier.fail = nil
	if err := task(ctx); err != nil {
		t.Fatalf("second timer_sweep: %v", err)
	}
	if len(notifier.dms) != 0 {
		t.Errorf("failed notification was retried: %v", notifier.dms)
	}
}

func TestRenderNotification(t *testing.T) {
	timer := store.Timer{Name: "raid"}

	testCases := []struct {
		kind engine.NotificationKind
		want string
	}{
		{kind: engine.Notify12h, want: "12 hours"},
		{kind: engine.Notify30m, want: "30 minutes"},
		{kind: engine.NotifyNow, want: "starting now"},
	}
	for _, tc := range testCases {
		got := tasks.RenderNotification(engine.Notification{Kind: tc.kind, Timer: timer})
		if !strings.Contains(got, tc.want) || !strings.Contains(got, "raid") {
			t.Errorf("RenderNotification(%v) = %q", tc.kind, got)
		}
	}
}
