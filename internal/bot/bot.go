// Package bot implements the core bot lifecycle: the Discord gateway
// connection, the scheduler, and their orchestration.
package bot

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/bwmarrin/discordgo"
	"golang.org/x/sync/errgroup"

	"github.com/halvard/questbot/internal/bot/tasks"
	"github.com/halvard/questbot/internal/config"
	"github.com/halvard/questbot/internal/discord"
)

// ReadyGreeting is sent to the daily channel when the gateway connects.
const ReadyGreeting = "Welcome back, Doctor"

// Bot owns the gateway session and the scheduler and runs them together.
type Bot struct {
	logger    *slog.Logger
	cfg       *config.Config
	session   *discordgo.Session
	notifier  *discord.Notifier
	scheduler *Scheduler
	startup   []tasks.ScheduledTaskFunc
}

// NewBot creates the bot orchestrator. startupTasks run once right after
// the gateway is ready, before the scheduler takes over the periodic
// cadence (the daily post runs at startup, not only at its cron tick).
func NewBot(
	logger *slog.Logger,
	cfg *config.Config,
	session *discordgo.Session,
	notifier *discord.Notifier,
	scheduler *Scheduler,
	startupTasks []tasks.ScheduledTaskFunc,
) *Bot {
	return &Bot{
		logger:    logger.With("component", "bot"),
		cfg:       cfg,
		session:   session,
		notifier:  notifier,
		scheduler: scheduler,
		startup:   startupTasks,
	}
}

// Run opens the gateway connection, starts the scheduler, and blocks
// until the context is cancelled or a component fails.
func (b *Bot) Run(ctx context.Context) error {
	ready := make(chan struct{})
	b.session.AddHandlerOnce(func(s *discordgo.Session, r *discordgo.Ready) {
		b.logger.Info("Logged in", "username", r.User.Username, "user_id", r.User.ID)
		close(ready)
	})

	if err := b.session.Open(); err != nil {
		return fmt.Errorf("failed to open gateway connection: %w", err)
	}
	defer func() {
		if err := b.session.Close(); err != nil {
			b.logger.Error("Error closing gateway connection", "error", err)
		}
	}()

	select {
	case <-ready:
	case <-ctx.Done():
		return ctx.Err()
	}

	// Command registration failure leaves the old commands in place; the
	// bot keeps running either way.
	if err := discord.RegisterCommands(b.session, b.logger, b.appID(), b.cfg.Discord.GuildID); err != nil {
		b.logger.Error("Failed to register slash commands", "error", err)
	}

	if b.cfg.Discord.DailyChannelID != "" {
		if err := b.notifier.Greet(b.cfg.Discord.DailyChannelID, ReadyGreeting); err != nil {
			b.logger.Error("Failed to send ready greeting", "error", err)
		}
	}

	for _, task := range b.startup {
		if err := task(ctx); err != nil {
			b.logger.Error("Startup task failed", "error", err)
		}
	}

	g, gCtx := errgroup.WithContext(ctx)

	g.Go(func() error {
		if err := b.scheduler.Start(); err != nil {
			return fmt.Errorf("failed to start scheduler: %w", err)
		}

		<-gCtx.Done()
		b.logger.Info("Shutdown signal received, stopping scheduler...")
		if err := b.scheduler.Stop(); err != nil {
			b.logger.Error("Error stopping scheduler", "error", err)
		}
		return nil
	})

	b.logger.Info("Bot running. Waiting for shutdown signal...")
	err := g.Wait()

	if err != nil && !errors.Is(err, context.Canceled) {
		return err
	}
	return nil
}

// appID is the configured application id, defaulting to the logged-in
// bot's own id when unset.
func (b *Bot) appID() string {
	if b.cfg.Discord.AppID != "" {
		return b.cfg.Discord.AppID
	}
	if b.session.State != nil && b.session.State.User != nil {
		return b.session.State.User.ID
	}
	return ""
}
