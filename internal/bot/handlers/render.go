package handlers

import (
	"fmt"
	"strings"

	"github.com/halvard/questbot/internal/engine"
	"github.com/halvard/questbot/internal/store"
)

// RenderTaskList formats the incomplete-task listing. The empty case is a
// distinct, user-visible message rather than an error.
func RenderTaskList(tasks []store.Task) string {
	if len(tasks) == 0 {
		return "No tasks yet. Add one with /add."
	}

	var b strings.Builder
	b.WriteString("**Your Tasks**")
	for _, t := range tasks {
		fmt.Fprintf(&b, "\n🟡 #%d • %s (%d XP)", t.ID, t.Text, t.XP)
	}
	return b.String()
}

// RenderHistory formats the completion history, most recent first.
func RenderHistory(entries []store.HistoryEntry) string {
	if len(entries) == 0 {
		return "No completed tasks yet."
	}

	var b strings.Builder
	fmt.Fprintf(&b, "**Completed Tasks (last %d)**", len(entries))
	for idx, e := range entries {
		fmt.Fprintf(&b, "\n#%d • %s (%d XP)", idx+1, e.Text, e.XP)
	}
	return b.String()
}

// RenderTimerList formats the caller's timers in list order.
func RenderTimerList(timers []store.Timer) string {
	if len(timers) == 0 {
		return "No timers yet. Add one with /timer add."
	}

	var b strings.Builder
	b.WriteString("**Your Timers**")
	for _, t := range timers {
		fmt.Fprintf(&b, "\n⏳ #%d • %s — %s", t.ID, t.Name, t.Timestamp.Format(engine.TimeLayout))
		if t.Description != "" {
			fmt.Fprintf(&b, " (%s)", t.Description)
		}
	}
	return b.String()
}

// RenderStatus formats the fixed-width status panel.
func RenderStatus(username string, st engine.Status) string {
	return strings.Join([]string{
		"```",
		fmt.Sprintf("Player: %s", username),
		fmt.Sprintf("Level:  %d", st.Level),
		fmt.Sprintf("XP:     %d / %d", st.XP, st.NextLevelXP),
		fmt.Sprintf("Progress: [%s]", st.Bar),
		fmt.Sprintf("Tasks:  %d/%d complete", st.DoneTasks, st.TotalTasks),
		"```",
	}, "\n")
}
