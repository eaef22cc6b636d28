// Package main contains the entrypoint for the QuestBot Discord bot.
package main

import (
	"context"
	"errors"
	"flag"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"

	"github.com/halvard/questbot/internal/bot"
	"github.com/halvard/questbot/internal/bot/handlers"
	"github.com/halvard/questbot/internal/bot/tasks"
	"github.com/halvard/questbot/internal/config"
	"github.com/halvard/questbot/internal/discord"
	"github.com/halvard/questbot/internal/engine"
	"github.com/halvard/questbot/internal/logger"
	"github.com/halvard/questbot/internal/store"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	exitCode := run(ctx)
	stop()
	os.Exit(exitCode)
}

// run initializes all components (config, logger, store, engine, Discord
// session, handlers, scheduler), starts the bot, and returns an exit code.
func run(ctx context.Context) int {
	configPath := flag.String("config", "./config.yaml", "Path to configuration file")
	flag.Parse()

	if err := godotenv.Load(); err != nil {
		slog.Debug("No .env file found, using process environment")
	}

	cfg, err := config.Load(*configPath)
	if err != nil {
		slog.Error("Failed to load configuration", "path", *configPath, "error", err)
		return 1
	}

	log := logger.NewLogger(cfg.Log.Level, cfg.Log.JSON)
	log.Info("Logger initialized", "level", cfg.Log.Level, "json", cfg.Log.JSON)

	loc, err := cfg.Location()
	if err != nil {
		log.Error("Failed to resolve timezone", "timezone", cfg.Timezone, "error", err)
		return 1
	}

	st := store.NewFileStore(cfg.Data.Path, log)

	dailyTasks := make([]engine.DailyTask, 0, len(cfg.Daily.Tasks))
	for _, t := range cfg.Daily.Tasks {
		dailyTasks = append(dailyTasks, engine.DailyTask{Text: t.Text, XP: t.XP})
	}
	eng := engine.NewService(st, log, loc, dailyTasks)

	session, err := discord.NewSession(cfg.Discord.Token, log)
	if err != nil {
		log.Error("Failed to create Discord session", "error", err)
		return 1
	}
	notifier := discord.NewNotifier(session, log)

	hDeps := handlers.HandlerDeps{
		Logger: log,
		Config: cfg,
		Engine: eng,
	}
	registry := handlers.RegisterAllCommands(hDeps)
	session.AddHandler(handlers.NewDispatcher(ctx, hDeps, registry))

	tDeps := tasks.TaskDeps{
		Logger:   log,
		Config:   cfg,
		Engine:   eng,
		Notifier: notifier,
	}
	taskMap := tasks.RegisterAllTasks(tDeps)

	sched, err := bot.NewScheduler(log, &cfg.Scheduler, loc, taskMap)
	if err != nil {
		log.Error("Failed to create scheduler", "error", err)
		return 1
	}

	startup := []tasks.ScheduledTaskFunc{taskMap["daily_post"]}
	app := bot.NewBot(log, cfg, session, notifier, sched, startup)

	log.Info("Starting bot...")
	runErr := app.Run(ctx)

	if runErr != nil && !errors.Is(runErr, context.Canceled) {
		log.Error("Bot stopped due to error", "error", runErr)
		return 1
	}

	log.Info("Bot stopped gracefully.")
	return 0
}
