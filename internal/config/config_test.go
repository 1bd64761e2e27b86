package config_test

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"focusboard/internal/config"
)

func clearEnvVars(t *testing.T) {
	t.Helper()
	for _, v := range []string{"TELEGRAM_TOKEN", "DATABASE_URL"} {
		t.Setenv(v, "")
	}
}

func TestLoadDefaults(t *testing.T) {
	clearEnvVars(t)

	cfg, err := config.Load("")
	require.NoError(t, err)

	assert.Equal(t, "focusboard.db", cfg.Database.URL)
	assert.Equal(t, 60*time.Second, cfg.Tick.Interval)
	assert.Equal(t, "08:00", cfg.Digest.Time)
	assert.True(t, cfg.Notify.Push)
	assert.Equal(t, 1, cfg.Notify.RatePerSec)
	assert.Equal(t, 15*time.Minute, cfg.Google.SyncInterval)
	assert.False(t, cfg.Google.Enabled())

	assert.Error(t, cfg.Validate(), "token is required")
}

func TestLoadFileAndEnv(t *testing.T) {
	clearEnvVars(t)

	path := filepath.Join(t.TempDir(), "focusboard.yaml")
	yaml := `
telegram:
  token: file-token
  owner_chat_id: 1001
timezone: Europe/Berlin
digest:
  time: "07:30"
log:
  level: debug
`
	require.NoError(t, os.WriteFile(path, []byte(yaml), 0o600))

	t.Setenv("FOCUSBOARD_TELEGRAM__OWNER_CHAT_ID", "42")
	t.Setenv("FOCUSBOARD_TICK__INTERVAL", "30s")
	t.Setenv("FOCUSBOARD_GOOGLE__CLIENT_ID", "client")
	t.Setenv("FOCUSBOARD_GOOGLE__CLIENT_SECRET", "secret")
	t.Setenv("DATABASE_URL", "/tmp/focus/state.db")

	cfg, err := config.Load(path)
	require.NoError(t, err)

	assert.Equal(t, "file-token", cfg.Telegram.Token)
	assert.Equal(t, int64(42), cfg.Telegram.OwnerChatID)
	assert.Equal(t, 30*time.Second, cfg.Tick.Interval)
	assert.Equal(t, "07:30", cfg.Digest.Time)
	assert.Equal(t, "debug", cfg.Log.Level)
	assert.Equal(t, "/tmp/focus/state.db", cfg.Database.URL)
	assert.True(t, cfg.Google.Enabled())
	require.NoError(t, cfg.Validate())

	loc, err := cfg.Location()
	require.NoError(t, err)
	assert.Equal(t, "Europe/Berlin", loc.String())
}

func TestLoadLegacyToken(t *testing.T) {
	clearEnvVars(t)
	t.Setenv("TELEGRAM_TOKEN", " legacy ")

	cfg, err := config.Load(filepath.Join(t.TempDir(), "missing.yaml"))
	require.NoError(t, err)
	assert.Equal(t, "legacy", cfg.Telegram.Token)
}

func TestValidate(t *testing.T) {
	valid := func() config.Config {
		return config.Config{
			Telegram: config.TelegramConfig{Token: "t", OwnerChatID: 1},
			Tick:     config.TickConfig{Interval: time.Minute},
			Digest:   config.DigestConfig{Time: "08:00"},
		}
	}

	tests := []struct {
		name   string
		mutate func(*config.Config)
	}{
		{name: "missing owner", mutate: func(c *config.Config) { c.Telegram.OwnerChatID = 0 }},
		{name: "tick too short", mutate: func(c *config.Config) { c.Tick.Interval = time.Millisecond }},
		{name: "bad digest time", mutate: func(c *config.Config) { c.Digest.Time = "8am" }},
		{name: "bad timezone", mutate: func(c *config.Config) { c.Timezone = "Mars/Olympus" }},
		{name: "google without redirect", mutate: func(c *config.Config) {
			c.Google = config.GoogleConfig{ClientID: "id", ClientSecret: "secret"}
		}},
	}

	cfg := valid()
	require.NoError(t, cfg.Validate())
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := valid()
			tt.mutate(&cfg)
			assert.Error(t, cfg.Validate())
		})
	}
}

func TestLocation(t *testing.T) {
	cfg := config.Config{Timezone: "local"}
	loc, err := cfg.Location()
	require.NoError(t, err)
	assert.Equal(t, time.Local, loc)

	cfg.Timezone = "Mars/Olympus"
	_, err = cfg.Location()
	assert.Error(t, err)
}
