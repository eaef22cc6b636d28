package handlers

import (
	"context"
	"log/slog"

	"github.com/bwmarrin/discordgo"
)

// caller returns the invoking user, which lives under Member for guild
// interactions and directly under User for DM interactions.
func caller(i *discordgo.InteractionCreate) *discordgo.User {
	if i.Member != nil && i.Member.User != nil {
		return i.Member.User
	}
	return i.User
}

// callerID returns the invoking user's id, or "" when absent.
func callerID(i *discordgo.InteractionCreate) string {
	if u := caller(i); u != nil {
		return u.ID
	}
	return ""
}

// optionMap indexes interaction options by name.
func optionMap(opts []*discordgo.ApplicationCommandInteractionDataOption) map[string]*discordgo.ApplicationCommandInteractionDataOption {
	m := make(map[string]*discordgo.ApplicationCommandInteractionDataOption, len(opts))
	for _, opt := range opts {
		m[opt.Name] = opt
	}
	return m
}

// respond sends the interaction reply. Send failures are logged and
// swallowed; the command's state mutation already happened and is not
// rolled back.
func respond(ctx context.Context, log *slog.Logger, s *discordgo.Session, i *discordgo.InteractionCreate, content string) {
	err := s.InteractionRespond(i.Interaction, &discordgo.InteractionResponse{
		Type: discordgo.InteractionResponseChannelMessageWithSource,
		Data: &discordgo.InteractionResponseData{Content: content},
	})
	if err != nil {
		log.ErrorContext(ctx, "Failed to send interaction reply", "error", err, "user_id", callerID(i))
	}
}
