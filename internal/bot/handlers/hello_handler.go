package handlers

import (
	"context"

	"github.com/bwmarrin/discordgo"
)

// NewHelloHandler returns a handler for the /hello command.
func NewHelloHandler(deps HandlerDeps) HandlerFunc {
	return helloHandler{deps}.Handle
}

type helloHandler struct {
	deps HandlerDeps
}

func (h helloHandler) Handle(ctx context.Context, s *discordgo.Session, i *discordgo.InteractionCreate) {
	log := h.deps.Logger.With("handler", "hello")
	respond(ctx, log, s, i, "World!")
}
