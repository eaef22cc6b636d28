package handlers

import (
	"context"
	"errors"
	"fmt"

	"github.com/bwmarrin/discordgo"

	"github.com/halvard/questbot/internal/engine"
)

// DefaultTaskXP is the XP reward used when /add omits the xp option.
const DefaultTaskXP = 10

// NewAddHandler returns a handler for the /add command.
func NewAddHandler(deps HandlerDeps) HandlerFunc {
	return addHandler{deps}.Handle
}

type addHandler struct {
	deps HandlerDeps
}

func (h addHandler) Handle(ctx context.Context, s *discordgo.Session, i *discordgo.InteractionCreate) {
	log := h.deps.Logger.With("handler", "add")
	opts := optionMap(i.ApplicationCommandData().Options)

	description := opts["description"].StringValue()
	xp := DefaultTaskXP
	if opt, ok := opts["xp"]; ok {
		xp = int(opt.IntValue())
	}

	task, err := h.deps.Engine.AddTask(ctx, callerID(i), description, xp)
	if err != nil {
		if errors.Is(err, engine.ErrInvalidXP) {
			respond(ctx, log, s, i, "XP must be a positive number.")
			return
		}
		log.ErrorContext(ctx, "Failed to add task", "error", err, "user_id", callerID(i))
		respond(ctx, log, s, i, "Something went wrong. Please try again.")
		return
	}

	respond(ctx, log, s, i, fmt.Sprintf("Added task #%d for %d XP.", task.ID, task.XP))
}

// NewListHandler returns a handler for the /list command.
func NewListHandler(deps HandlerDeps) HandlerFunc {
	return listHandler{deps}.Handle
}

type listHandler struct {
	deps HandlerDeps
}

func (h listHandler) Handle(ctx context.Context, s *discordgo.Session, i *discordgo.InteractionCreate) {
	log := h.deps.Logger.With("handler", "list")

	tasks, err := h.deps.Engine.ActiveTasks(ctx, callerID(i))
	if err != nil {
		log.ErrorContext(ctx, "Failed to list tasks", "error", err, "user_id", callerID(i))
		respond(ctx, log, s, i, "Something went wrong. Please try again.")
		return
	}

	respond(ctx, log, s, i, RenderTaskList(tasks))
}

// NewDoneHandler returns a handler for the /done command.
func NewDoneHandler(deps HandlerDeps) HandlerFunc {
	return doneHandler{deps}.Handle
}

type doneHandler struct {
	deps HandlerDeps
}

func (h doneHandler) Handle(ctx context.Context, s *discordgo.Session, i *discordgo.InteractionCreate) {
	log := h.deps.Logger.With("handler", "done")
	opts := optionMap(i.ApplicationCommandData().Options)

	taskID := int(opts["id"].IntValue())

	result, err := h.deps.Engine.CompleteTask(ctx, callerID(i), taskID)
	if err != nil {
		switch {
		case errors.Is(err, engine.ErrTaskNotFound):
			respond(ctx, log, s, i, "Task not found.")
		case errors.Is(err, engine.ErrTaskAlreadyDone):
			respond(ctx, log, s, i, "That task is already completed.")
		default:
			log.ErrorContext(ctx, "Failed to complete task", "error", err, "user_id", callerID(i), "task_id", taskID)
			respond(ctx, log, s, i, "Something went wrong. Please try again.")
		}
		return
	}

	respond(ctx, log, s, i, fmt.Sprintf("Completed task #%d! You earned %d XP.", result.Task.ID, result.Task.XP))
}

// NewHistoryHandler returns a handler for the /history command.
func NewHistoryHandler(deps HandlerDeps) HandlerFunc {
	return historyHandler{deps}.Handle
}

type historyHandler struct {
	deps HandlerDeps
}

func (h historyHandler) Handle(ctx context.Context, s *discordgo.Session, i *discordgo.InteractionCreate) {
	log := h.deps.Logger.With("handler", "history")

	entries, err := h.deps.Engine.History(ctx, callerID(i))
	if err != nil {
		log.ErrorContext(ctx, "Failed to load history", "error", err, "user_id", callerID(i))
		respond(ctx, log, s, i, "Something went wrong. Please try again.")
		return
	}

	respond(ctx, log, s, i, RenderHistory(entries))
}
