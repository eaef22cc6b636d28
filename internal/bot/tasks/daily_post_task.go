package tasks

import (
	"context"
	"fmt"
	"strings"

	"github.com/halvard/questbot/internal/engine"
)

// newDailyPostTask creates the scheduled task that injects the daily
// tasks into every profile and announces them in the configured channel.
func newDailyPostTask(deps TaskDeps) ScheduledTaskFunc {
	log := deps.Logger.With("task", "daily_post")

	return func(ctx context.Context) error {
		if deps.Config.Discord.DailyChannelID == "" {
			log.InfoContext(ctx, "No daily channel configured, skipping daily task post")
			return nil
		}

		run, err := deps.Engine.RunDaily(ctx)
		if err != nil {
			return fmt.Errorf("daily task injection failed: %w", err)
		}
		if run == nil {
			// Already posted today.
			return nil
		}

		// The injection is already persisted; a failed announcement is
		// logged and not retried, and does not roll the tasks back.
		announcement := RenderDailyAnnouncement(run)
		if err := deps.Notifier.Announce(deps.Config.Discord.DailyChannelID, announcement, deps.Config.Discord.PingRoleID); err != nil {
			log.ErrorContext(ctx, "Failed to post daily task announcement", "error", err, "channel_id", deps.Config.Discord.DailyChannelID)
			return nil
		}

		log.InfoContext(ctx, "Posted daily tasks", "date", run.Date, "profiles", run.Profiles)
		return nil
	}
}

// RenderDailyAnnouncement formats the channel announcement body for a
// daily run. The mention prefix is added by the notifier.
func RenderDailyAnnouncement(run *engine.DailyRun) string {
	var b strings.Builder
	b.WriteString("Daily tasks are live!")
	for _, t := range run.Tasks {
		fmt.Fprintf(&b, "\n• %s (%d XP)", t.Text, t.XP)
	}
	return b.String()
}
