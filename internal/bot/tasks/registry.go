package tasks

import "context"

// ScheduledTaskFunc is the standard signature for scheduled tasks. The
// scheduler's context should be respected for cancellation; a returned
// error is logged by the scheduler, never retried.
type ScheduledTaskFunc func(ctx context.Context) error

// RegisterAllTasks initializes and returns the map of scheduled tasks.
// Keys match the task names in the scheduler configuration.
func RegisterAllTasks(deps TaskDeps) map[string]ScheduledTaskFunc {
	tasks := make(map[string]ScheduledTaskFunc)

	tasks["daily_post"] = newDailyPostTask(deps)
	tasks["timer_sweep"] = newTimerSweepTask(deps)

	deps.Logger.Info("Initialized scheduled tasks", "count", len(tasks))
	return tasks
}
