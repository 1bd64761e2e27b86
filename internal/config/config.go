package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/confmap"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
)

const envPrefix = "FOCUSBOARD_"

// Config keeps runtime settings for the dashboard bot.
type Config struct {
	Telegram TelegramConfig `koanf:"telegram"`
	Database DatabaseConfig `koanf:"database"`
	Timezone string         `koanf:"timezone"`
	Tick     TickConfig     `koanf:"tick"`
	Digest   DigestConfig   `koanf:"digest"`
	Notify   NotifyConfig   `koanf:"notify"`
	Log      LogConfig      `koanf:"log"`
	Google   GoogleConfig   `koanf:"google"`
}

type TelegramConfig struct {
	Token       string `koanf:"token"`
	OwnerChatID int64  `koanf:"owner_chat_id"`
}

type DatabaseConfig struct {
	URL string `koanf:"url"`
}

type TickConfig struct {
	Interval time.Duration `koanf:"interval"`
}

// DigestConfig schedules the daily summary; an empty Time disables it.
type DigestConfig struct {
	Time string `koanf:"time"`
}

type NotifyConfig struct {
	Push       bool `koanf:"push"`
	RatePerSec int  `koanf:"rate_per_sec"`
}

type LogConfig struct {
	Level  string `koanf:"level"`
	Format string `koanf:"format"`
}

// GoogleConfig enables the calendar mirror when ClientID is set.
type GoogleConfig struct {
	ClientID     string        `koanf:"client_id"`
	ClientSecret string        `koanf:"client_secret"`
	RedirectURL  string        `koanf:"redirect_url"`
	SyncInterval time.Duration `koanf:"sync_interval"`
}

func (g GoogleConfig) Enabled() bool {
	return g.ClientID != "" && g.ClientSecret != ""
}

// Load merges defaults, the optional YAML file at path and the environment.
func Load(path string) (Config, error) {
	k := koanf.New(".")

	if err := k.Load(confmap.Provider(DefaultConfig(), "."), nil); err != nil {
		return Config{}, fmt.Errorf("load defaults: %w", err)
	}

	if path != "" {
		if _, err := os.Stat(path); err == nil {
			if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
				return Config{}, fmt.Errorf("load config file: %w", err)
			}
		}
	}

	if err := k.Load(env.Provider(envPrefix, ".", envKey), nil); err != nil {
		return Config{}, fmt.Errorf("load env vars: %w", err)
	}

	// Legacy variable names.
	if token := strings.TrimSpace(os.Getenv("TELEGRAM_TOKEN")); token != "" && k.String("telegram.token") == "" {
		_ = k.Set("telegram.token", token)
	}
	if dsn := strings.TrimSpace(os.Getenv("DATABASE_URL")); dsn != "" {
		_ = k.Set("database.url", dsn)
	}

	var cfg Config
	if err := k.Unmarshal("", &cfg); err != nil {
		return Config{}, fmt.Errorf("unmarshal config: %w", err)
	}

	cfg.Telegram.Token = strings.TrimSpace(cfg.Telegram.Token)
	return cfg, nil
}

// envKey maps FOCUSBOARD_GOOGLE__CLIENT_ID to google.client_id.
func envKey(s string) string {
	s = strings.ToLower(strings.TrimPrefix(s, envPrefix))
	return strings.ReplaceAll(s, "__", ".")
}

// Validate checks required values and returns the first problem found.
func (c *Config) Validate() error {
	if c.Telegram.Token == "" {
		return fmt.Errorf("TELEGRAM_TOKEN is required")
	}
	if c.Telegram.OwnerChatID == 0 {
		return fmt.Errorf("telegram.owner_chat_id is required")
	}
	if c.Tick.Interval < time.Second {
		return fmt.Errorf("tick.interval must be at least 1s, got %s", c.Tick.Interval)
	}
	if _, err := c.Location(); err != nil {
		return err
	}
	if c.Digest.Time != "" {
		if _, err := time.Parse("15:04", c.Digest.Time); err != nil {
			return fmt.Errorf("digest.time %q is not HH:MM", c.Digest.Time)
		}
	}
	if c.Google.Enabled() && c.Google.RedirectURL == "" {
		return fmt.Errorf("google.redirect_url is required when google.client_id is set")
	}
	return nil
}

// Location resolves Timezone; empty means the process local zone.
func (c *Config) Location() (*time.Location, error) {
	if c.Timezone == "" || strings.EqualFold(c.Timezone, "local") {
		return time.Local, nil
	}
	loc, err := time.LoadLocation(c.Timezone)
	if err != nil {
		return nil, fmt.Errorf("timezone %q: %w", c.Timezone, err)
	}
	return loc, nil
}
