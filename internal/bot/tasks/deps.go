// Package tasks implements the scheduled background tasks: the daily
// task post and the per-minute timer sweep.
package tasks

import (
	"log/slog"

	"github.com/halvard/questbot/internal/config"
	"github.com/halvard/questbot/internal/engine"
)

// Notifier delivers the outbound messages scheduled tasks produce.
// Satisfied by discord.Notifier; faked in tests.
type Notifier interface {
	DirectMessage(userID, content string) error
	Announce(channelID, content, roleID string) error
}

// TaskDeps contains the dependencies required by scheduled tasks.
type TaskDeps struct {
	Logger   *slog.Logger
	Config   *config.Config
	Engine   *engine.Service
	Notifier Notifier
}
