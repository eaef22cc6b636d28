// Package config provides configuration loading, validation, and defaults
// for the QuestBot application. Values come from defaults, an optional
// config.yaml, and BOT_* environment variables, in increasing precedence.
package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/spf13/viper"
)

// Config defines the application configuration parameters for all
// components of QuestBot: logging, Discord connectivity, the data store,
// daily task templates, and the scheduler.
type Config struct {
	Log       LogConfig       `mapstructure:"log"`
	Discord   DiscordConfig   `mapstructure:"discord"`
	Timezone  string          `mapstructure:"timezone" validate:"required"`
	Data      DataConfig      `mapstructure:"data"`
	Daily     DailyConfig     `mapstructure:"daily"`
	Scheduler SchedulerConfig `mapstructure:"scheduler"`
}

// LogConfig controls structured logging output.
type LogConfig struct {
	Level string `mapstructure:"level" validate:"oneof=debug info warn error"`
	JSON  bool   `mapstructure:"json"`
}

// DiscordConfig holds Discord credentials and target identifiers.
// Only the token is required; the optional fields degrade gracefully:
// without AppID slash commands are not registered, without DailyChannelID
// the daily announcement and ready greeting are skipped, and without
// PingRoleID the daily announcement falls back to @everyone.
type DiscordConfig struct {
	Token          string `mapstructure:"token" validate:"required"`
	AppID          string `mapstructure:"app_id"`
	GuildID        string `mapstructure:"guild_id"`
	DailyChannelID string `mapstructure:"daily_channel_id"`
	PingRoleID     string `mapstructure:"ping_role_id"`
}

// DataConfig locates the JSON document store on disk.
type DataConfig struct {
	Path string `mapstructure:"path" validate:"required"`
}

// DailyTask is one template injected into every profile by the daily post.
type DailyTask struct {
	Text string `mapstructure:"text" validate:"required"`
	XP   int    `mapstructure:"xp"   validate:"gt=0"`
}

// DailyConfig lists the task templates posted each day.
type DailyConfig struct {
	Tasks []DailyTask `mapstructure:"tasks" validate:"dive"`
}

// TaskConfig configures a single scheduled task.
type TaskConfig struct {
	Schedule string `mapstructure:"schedule"`
	Enabled  bool   `mapstructure:"enabled"`
}

// SchedulerConfig maps task names to their schedules.
type SchedulerConfig struct {
	Tasks map[string]TaskConfig `mapstructure:"tasks"`
}

// Location resolves the configured timezone name.
func (c *Config) Location() (*time.Location, error) {
	loc, err := time.LoadLocation(c.Timezone)
	if err != nil {
		return nil, fmt.Errorf("invalid timezone %q: %w", c.Timezone, err)
	}
	return loc, nil
}

// Load reads configuration from defaults, an optional config file, and
// environment variables, then validates the result.
func Load(configPath string) (*Config, error) {
	v := viper.New()

	setDefaults(v)

	v.SetConfigFile(configPath)
	v.SetConfigType("yaml")

	v.SetEnvPrefix("BOT")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) && !os.IsNotExist(err) {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
		// Missing config file is fine, defaults plus env cover everything.
	}

	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("failed to parse configuration: %w", err)
	}

	if err := validator.New().Struct(cfg); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	if _, err := cfg.Location(); err != nil {
		return nil, err
	}

	return cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("log.level", "info")
	v.SetDefault("log.json", false)

	// Register every discord key so environment-only values survive
	// unmarshalling.
	v.SetDefault("discord.token", "")
	v.SetDefault("discord.app_id", "")
	v.SetDefault("discord.guild_id", "")
	v.SetDefault("discord.daily_channel_id", "")
	v.SetDefault("discord.ping_role_id", "")

	v.SetDefault("timezone", "UTC")
	v.SetDefault("data.path", "data.json")

	v.SetDefault("daily.tasks", []map[string]any{
		{"text": "Gacha Dailies", "xp": 5},
	})

	v.SetDefault("scheduler.tasks.daily_post.schedule", "0 4 * * *")
	v.SetDefault("scheduler.tasks.daily_post.enabled", true)
	v.SetDefault("scheduler.tasks.timer_sweep.schedule", "* * * * *")
	v.SetDefault("scheduler.tasks.timer_sweep.enabled", true)
}
