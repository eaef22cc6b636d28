package handlers

import (
	"context"
	"strings"

	"github.com/bwmarrin/discordgo"
)

// NewHelpHandler returns a handler for the /help command.
func NewHelpHandler(deps HandlerDeps) HandlerFunc {
	return helpHandler{deps}.Handle
}

type helpHandler struct {
	deps HandlerDeps
}

func (h helpHandler) Handle(ctx context.Context, s *discordgo.Session, i *discordgo.InteractionCreate) {
	log := h.deps.Logger.With("handler", "help")

	help := strings.Join([]string{
		"**Commands**",
		"/add <description> <xp>       → add a task (xp optional, default 10)",
		"/list                         → list tasks",
		"/done <id>                    → complete a task and gain XP",
		"/history                      → show last 100 completed tasks",
		"/timer add <name> <time>      → schedule an event timer",
		"/timer list                   → list your timers",
		"/timer delete <id>            → delete one of your timers",
		"/status                       → show your status screen",
		"/help                         → show this help",
		"/hello                        → hello world",
	}, "\n")

	respond(ctx, log, s, i, help)
}
