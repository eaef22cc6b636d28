// Package handlers contains the Discord slash-command handlers, their
// dispatch registry, and reply rendering.
package handlers

import (
	"log/slog"

	"github.com/halvard/questbot/internal/config"
	"github.com/halvard/questbot/internal/engine"
)

// HandlerDeps provides dependencies for slash-command handlers.
type HandlerDeps struct {
	Logger *slog.Logger
	Config *config.Config
	Engine *engine.Service
}
