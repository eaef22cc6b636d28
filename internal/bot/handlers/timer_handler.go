package handlers

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/bwmarrin/discordgo"

	"github.com/halvard/questbot/internal/engine"
)

// NewTimerHandler returns a handler for the /timer command group. It
// routes the add, list, and delete subcommands.
func NewTimerHandler(deps HandlerDeps) HandlerFunc {
	return timerHandler{deps}.Handle
}

type timerHandler struct {
	deps HandlerDeps
}

func (h timerHandler) Handle(ctx context.Context, s *discordgo.Session, i *discordgo.InteractionCreate) {
	log := h.deps.Logger.With("handler", "timer")

	data := i.ApplicationCommandData()
	if len(data.Options) == 0 {
		log.WarnContext(ctx, "Timer command received without subcommand", "user_id", callerID(i))
		return
	}
	sub := data.Options[0]

	switch sub.Name {
	case "add":
		h.handleAdd(ctx, log, s, i, sub)
	case "list":
		h.handleList(ctx, log, s, i)
	case "delete":
		h.handleDelete(ctx, log, s, i, sub)
	default:
		log.WarnContext(ctx, "Unknown timer subcommand", "subcommand", sub.Name, "user_id", callerID(i))
	}
}

func (h timerHandler) handleAdd(ctx context.Context, log *slog.Logger, s *discordgo.Session, i *discordgo.InteractionCreate, sub *discordgo.ApplicationCommandInteractionDataOption) {
	opts := optionMap(sub.Options)

	name := opts["name"].StringValue()
	timeStr := opts["time"].StringValue()
	description := ""
	if opt, ok := opts["description"]; ok {
		description = opt.StringValue()
	}

	timer, err := h.deps.Engine.AddTimer(ctx, callerID(i), name, timeStr, description)
	if err != nil {
		switch {
		case errors.Is(err, engine.ErrInvalidTime):
			respond(ctx, log, s, i, "Invalid time. Use YYYY-MM-DD HH:MM.")
		case errors.Is(err, engine.ErrPastTime):
			respond(ctx, log, s, i, "That time is in the past.")
		default:
			log.ErrorContext(ctx, "Failed to add timer", "error", err, "user_id", callerID(i))
			respond(ctx, log, s, i, "Something went wrong. Please try again.")
		}
		return
	}

	respond(ctx, log, s, i, fmt.Sprintf("Timer #%d set: **%s** at %s.", timer.ID, timer.Name, timer.Timestamp.Format(engine.TimeLayout)))
}

func (h timerHandler) handleList(ctx context.Context, log *slog.Logger, s *discordgo.Session, i *discordgo.InteractionCreate) {
	timers, err := h.deps.Engine.Timers(ctx, callerID(i))
	if err != nil {
		log.ErrorContext(ctx, "Failed to list timers", "error", err, "user_id", callerID(i))
		respond(ctx, log, s, i, "Something went wrong. Please try again.")
		return
	}

	respond(ctx, log, s, i, RenderTimerList(timers))
}

func (h timerHandler) handleDelete(ctx context.Context, log *slog.Logger, s *discordgo.Session, i *discordgo.InteractionCreate, sub *discordgo.ApplicationCommandInteractionDataOption) {
	opts := optionMap(sub.Options)
	timerID := int(opts["id"].IntValue())

	if err := h.deps.Engine.DeleteTimer(ctx, callerID(i), timerID); err != nil {
		if errors.Is(err, engine.ErrTimerNotFound) {
			respond(ctx, log, s, i, "Timer not found.")
			return
		}
		log.ErrorContext(ctx, "Failed to delete timer", "error", err, "user_id", callerID(i), "timer_id", timerID)
		respond(ctx, log, s, i, "Something went wrong. Please try again.")
		return
	}

	respond(ctx, log, s, i, fmt.Sprintf("Deleted timer #%d.", timerID))
}
