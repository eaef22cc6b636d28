package discord

import (
	"fmt"
	"log/slog"

	"github.com/bwmarrin/discordgo"
)

// Notifier delivers outbound messages that are not interaction replies:
// direct messages for timer notifications and channel announcements for
// the daily post.
type Notifier struct {
	session *discordgo.Session
	logger  *slog.Logger
}

// NewNotifier creates a Notifier bound to an open session.
func NewNotifier(session *discordgo.Session, logger *slog.Logger) *Notifier {
	if logger == nil {
		logger = slog.Default()
	}
	return &Notifier{
		session: session,
		logger:  logger.With("component", "notifier"),
	}
}

// DirectMessage sends a DM to the given user. Errors (closed DMs,
// unknown user) are returned for the caller to log; the caller must not
// treat them as fatal.
func (n *Notifier) DirectMessage(userID, content string) error {
	channel, err := n.session.UserChannelCreate(userID)
	if err != nil {
		return fmt.Errorf("failed to open DM channel: %w", err)
	}
	if _, err := n.session.ChannelMessageSend(channel.ID, content); err != nil {
		return fmt.Errorf("failed to send DM: %w", err)
	}
	return nil
}

// Announce posts to a channel, mentioning the given role, or @everyone
// when no role is configured. Allowed mentions are scoped so only the
// intended audience is pinged.
func (n *Notifier) Announce(channelID, content, roleID string) error {
	mention := "@everyone"
	allowed := &discordgo.MessageAllowedMentions{
		Parse: []discordgo.AllowedMentionType{discordgo.AllowedMentionTypeEveryone},
	}
	if roleID != "" {
		mention = fmt.Sprintf("<@&%s>", roleID)
		allowed = &discordgo.MessageAllowedMentions{Roles: []string{roleID}}
	}

	_, err := n.session.ChannelMessageSendComplex(channelID, &discordgo.MessageSend{
		Content:         mention + " " + content,
		AllowedMentions: allowed,
	})
	if err != nil {
		return fmt.Errorf("failed to send channel announcement: %w", err)
	}
	return nil
}

// Greet sends a plain message to a channel, used for the ready greeting.
func (n *Notifier) Greet(channelID, content string) error {
	if _, err := n.session.ChannelMessageSend(channelID, content); err != nil {
		return fmt.Errorf("failed to send greeting: %w", err)
	}
	return nil
}
