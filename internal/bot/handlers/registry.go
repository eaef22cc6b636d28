package handlers

import (
	"context"

	"github.com/bwmarrin/discordgo"
)

// HandlerFunc is the uniform signature for slash-command handlers. The
// caller and arguments come from the interaction; the reply goes back
// through the session.
type HandlerFunc func(ctx context.Context, s *discordgo.Session, i *discordgo.InteractionCreate)

// RegisterAllCommands initializes and returns the dispatch table mapping
// command names to handlers. Subcommand routing (for /timer) happens
// inside the command's own handler.
func RegisterAllCommands(deps HandlerDeps) map[string]HandlerFunc {
	handlers := make(map[string]HandlerFunc)

	handlers["hello"] = NewHelloHandler(deps)
	handlers["add"] = NewAddHandler(deps)
	handlers["list"] = NewListHandler(deps)
	handlers["done"] = NewDoneHandler(deps)
	handlers["history"] = NewHistoryHandler(deps)
	handlers["timer"] = NewTimerHandler(deps)
	handlers["status"] = NewStatusHandler(deps)
	handlers["help"] = NewHelpHandler(deps)

	deps.Logger.Info("Initialized command handlers", "count", len(handlers))
	return handlers
}

// NewDispatcher returns the gateway InteractionCreate handler. It routes
// application commands to the registry and ignores everything else.
func NewDispatcher(ctx context.Context, deps HandlerDeps, registry map[string]HandlerFunc) func(*discordgo.Session, *discordgo.InteractionCreate) {
	log := deps.Logger.With("component", "dispatcher")

	return func(s *discordgo.Session, i *discordgo.InteractionCreate) {
		if i.Type != discordgo.InteractionApplicationCommand {
			return
		}

		name := i.ApplicationCommandData().Name
		handler, ok := registry[name]
		if !ok {
			log.Warn("Received unknown command", "command", name)
			return
		}

		log.Debug("Dispatching command", "command", name, "user_id", callerID(i))
		handler(ctx, s, i)
	}
}
