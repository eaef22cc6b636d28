package discord

import "github.com/bwmarrin/discordgo"

// Commands returns the slash-command definitions for the bot.
func Commands() []*discordgo.ApplicationCommand {
	return []*discordgo.ApplicationCommand{
		{
			Name:        "hello",
			Description: "Say hello",
		},
		{
			Name:        "add",
			Description: "Add a task",
			Options: []*discordgo.ApplicationCommandOption{
				{
					Type:        discordgo.ApplicationCommandOptionString,
					Name:        "description",
					Description: "Task description",
					Required:    true,
				},
				{
					Type:        discordgo.ApplicationCommandOptionInteger,
					Name:        "xp",
					Description: "XP awarded (default 10)",
					Required:    false,
				},
			},
		},
		{
			Name:        "list",
			Description: "List your tasks",
		},
		{
			Name:        "done",
			Description: "Complete a task",
			Options: []*discordgo.ApplicationCommandOption{
				{
					Type:        discordgo.ApplicationCommandOptionInteger,
					Name:        "id",
					Description: "Task ID",
					Required:    true,
				},
			},
		},
		{
			Name:        "history",
			Description: "Show your last 100 completed tasks",
		},
		{
			Name:        "timer",
			Description: "Manage event timers",
			Options: []*discordgo.ApplicationCommandOption{
				{
					Type:        discordgo.ApplicationCommandOptionSubCommand,
					Name:        "add",
					Description: "Schedule an event timer",
					Options: []*discordgo.ApplicationCommandOption{
						{
							Type:        discordgo.ApplicationCommandOptionString,
							Name:        "name",
							Description: "Event name",
							Required:    true,
						},
						{
							Type:        discordgo.ApplicationCommandOptionString,
							Name:        "time",
							Description: "Event time (YYYY-MM-DD HH:MM)",
							Required:    true,
						},
						{
							Type:        discordgo.ApplicationCommandOptionString,
							Name:        "description",
							Description: "Event description",
							Required:    false,
						},
					},
				},
				{
					Type:        discordgo.ApplicationCommandOptionSubCommand,
					Name:        "list",
					Description: "List your timers",
				},
				{
					Type:        discordgo.ApplicationCommandOptionSubCommand,
					Name:        "delete",
					Description: "Delete one of your timers",
					Options: []*discordgo.ApplicationCommandOption{
						{
							Type:        discordgo.ApplicationCommandOptionInteger,
							Name:        "id",
							Description: "Timer ID",
							Required:    true,
						},
					},
				},
			},
		},
		{
			Name:        "status",
			Description: "Show your status screen",
		},
		{
			Name:        "help",
			Description: "Show available commands",
		},
	}
}
