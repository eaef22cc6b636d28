package config_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/halvard/questbot/internal/config"
)

func TestLoadDefaultsWithEnvToken(t *testing.T) {
	t.Setenv("BOT_DISCORD_TOKEN", "test-token")

	cfg, err := config.Load(filepath.Join(t.TempDir(), "config.yaml"))
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	if cfg.Discord.Token != "test-token" {
		t.Errorf("token = %q", cfg.Discord.Token)
	}
	if cfg.Log.Level != "info" {
		t.Errorf("log level = %q, want info", cfg.Log.Level)
	}
	if cfg.Timezone != "UTC" {
		t.Errorf("timezone = %q, want UTC", cfg.Timezone)
	}
	if cfg.Data.Path != "data.json" {
		t.Errorf("data path = %q, want data.json", cfg.Data.Path)
	}
	if len(cfg.Daily.Tasks) != 1 || cfg.Daily.Tasks[0].Text != "Gacha Dailies" || cfg.Daily.Tasks[0].XP != 5 {
		t.Errorf("daily tasks = %+v", cfg.Daily.Tasks)
	}

	daily, ok := cfg.Scheduler.Tasks["daily_post"]
	if !ok || daily.Schedule != "0 4 * * *" || !daily.Enabled {
		t.Errorf("daily_post schedule = %+v", daily)
	}
	sweep, ok := cfg.Scheduler.Tasks["timer_sweep"]
	if !ok || sweep.Schedule != "* * * * *" || !sweep.Enabled {
		t.Errorf("timer_sweep schedule = %+v", sweep)
	}
}

func TestLoadRequiresToken(t *testing.T) {
	t.Setenv("BOT_DISCORD_TOKEN", "")

	if _, err := config.Load(filepath.Join(t.TempDir(), "config.yaml")); err == nil {
		t.Fatal("Load succeeded without a token")
	}
}

func TestLoadConfigFile(t *testing.T) {
	t.Setenv("BOT_DISCORD_TOKEN", "test-token")

	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	yaml := `
timezone: Europe/Oslo
discord:
  guild_id: "g1"
  daily_channel_id: "c1"
daily:
  tasks:
    - text: "Gacha Dailies"
      xp: 5
    - text: "Check mail"
      xp: 10
`
	if err := os.WriteFile(path, []byte(yaml), 0o600); err != nil {
		t.Fatalf("write config: %v", err)
	}

	cfg, err := config.Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	if cfg.Timezone != "Europe/Oslo" {
		t.Errorf("timezone = %q", cfg.Timezone)
	}
	if _, err := cfg.Location(); err != nil {
		t.Errorf("Location: %v", err)
	}
	if cfg.Discord.GuildID != "g1" || cfg.Discord.DailyChannelID != "c1" {
		t.Errorf("discord config = %+v", cfg.Discord)
	}
	if len(cfg.Daily.Tasks) != 2 || cfg.Daily.Tasks[1].XP != 10 {
		t.Errorf("daily tasks = %+v", cfg.Daily.Tasks)
	}
}

func TestLoadRejectsBadTimezone(t *testing.T) {
	t.Setenv("BOT_DISCORD_TOKEN", "test-token")
	t.Setenv("BOT_TIMEZONE", "Mars/Olympus")

	if _, err := config.Load(filepath.Join(t.TempDir(), "config.yaml")); err == nil {
		t.Fatal("Load accepted an invalid timezone")
	}
}
