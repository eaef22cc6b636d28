// Package discord handles the Discord gateway session, slash-command
// registration, and outbound message delivery.
package discord

import (
	"fmt"
	"log/slog"

	"github.com/bwmarrin/discordgo"
)

// NewSession creates a Discord gateway session with the guilds intent.
// The session is not opened; the caller controls its lifecycle.
func NewSession(token string, logger *slog.Logger) (*discordgo.Session, error) {
	if token == "" {
		return nil, fmt.Errorf("discord bot token cannot be empty")
	}
	if logger == nil {
		logger = slog.Default()
	}
	log := logger.With("component", "discord")

	session, err := discordgo.New("Bot " + token)
	if err != nil {
		log.Error("Failed to create Discord session", "error", err)
		return nil, fmt.Errorf("failed to create discord session: %w", err)
	}
	session.Identify.Intents = discordgo.IntentsGuilds

	log.Info("Discord session created")
	return session, nil
}

// RegisterCommands overwrites the application's slash commands. With a
// guild id the commands are guild-scoped (instantly visible); without one
// they are registered globally.
func RegisterCommands(session *discordgo.Session, logger *slog.Logger, appID, guildID string) error {
	if logger == nil {
		logger = slog.Default()
	}
	log := logger.With("component", "discord")

	if appID == "" {
		log.Warn("No application id configured, slash commands were not registered")
		return nil
	}

	_, err := session.ApplicationCommandBulkOverwrite(appID, guildID, Commands())
	if err != nil {
		return fmt.Errorf("failed to register slash commands: %w", err)
	}

	if guildID != "" {
		log.Info("Registered guild slash commands", "guild_id", guildID)
	} else {
		log.Info("Registered global slash commands")
	}
	return nil
}
