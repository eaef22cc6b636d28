package tasks

import (
	"context"
	"fmt"

	"github.com/halvard/questbot/internal/engine"
)

// newTimerSweepTask creates the scheduled task that advances timer
// notification state and delivers the resulting direct messages.
func newTimerSweepTask(deps TaskDeps) ScheduledTaskFunc {
	log := deps.Logger.With("task", "timer_sweep")

	return func(ctx context.Context) error {
		notifications, err := deps.Engine.SweepTimers(ctx)
		if err != nil {
			return fmt.Errorf("timer sweep failed: %w", err)
		}

		for _, n := range notifications {
			// Flags are already persisted; a failed DM is logged and the
			// notification is dropped rather than retried.
			if err := deps.Notifier.DirectMessage(n.Timer.UserID, RenderNotification(n)); err != nil {
				log.WarnContext(ctx, "Failed to deliver timer notification",
					"error", err, "user_id", n.Timer.UserID, "timer_id", n.Timer.ID)
			}
		}
		return nil
	}
}

// RenderNotification formats the DM body for one timer notification.
func RenderNotification(n engine.Notification) string {
	var body string
	switch n.Kind {
	case engine.Notify12h:
		body = fmt.Sprintf("⏰ **%s** starts in 12 hours.", n.Timer.Name)
	case engine.Notify30m:
		body = fmt.Sprintf("⏰ **%s** starts in 30 minutes.", n.Timer.Name)
	case engine.NotifyNow:
		body = fmt.Sprintf("🔔 **%s** is starting now!", n.Timer.Name)
	}
	if n.Timer.Description != "" {
		body += "\n" + n.Timer.Description
	}
	return body
}
