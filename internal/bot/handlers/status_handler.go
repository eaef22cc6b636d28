package handlers

import (
	"context"

	"github.com/bwmarrin/discordgo"
)

// NewStatusHandler returns a handler for the /status command.
func NewStatusHandler(deps HandlerDeps) HandlerFunc {
	return statusHandler{deps}.Handle
}

type statusHandler struct {
	deps HandlerDeps
}

func (h statusHandler) Handle(ctx context.Context, s *discordgo.Session, i *discordgo.InteractionCreate) {
	log := h.deps.Logger.With("handler", "status")

	user := caller(i)
	if user == nil {
		log.WarnContext(ctx, "Status handler could not resolve caller")
		return
	}

	status, err := h.deps.Engine.Status(ctx, user.ID)
	if err != nil {
		log.ErrorContext(ctx, "Failed to compute status", "error", err, "user_id", user.ID)
		respond(ctx, log, s, i, "Something went wrong. Please try again.")
		return
	}

	respond(ctx, log, s, i, RenderStatus(user.Username, status))
}
