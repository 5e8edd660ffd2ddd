package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, dir, name, body string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
	return path
}

func TestLoadYAMLWithEnvOverlay(t *testing.T) {
	dir := t.TempDir()
	chdir(t, dir)
	path := writeFile(t, dir, "config.yaml", `
telegram:
  token: from-yaml
  run_mode: polling
logging:
  level: debug
rate_limit:
  interval_ms: 500
  exclude_updates: [" Callback "]
`)
	t.Setenv("BOT_TOKEN", "from-env")

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "from-env", cfg.Telegram.Token)
	assert.Equal(t, RunModeLongpoll, cfg.Telegram.RunMode)
	assert.Equal(t, "debug", cfg.Logging.Level)
	assert.Equal(t, 500, cfg.RateLimit.IntervalMS)
	assert.Equal(t, []string{"callback"}, cfg.RateLimit.ExcludeUpdates)
}

func TestLoadReadsDotEnv(t *testing.T) {
	dir := t.TempDir()
	chdir(t, dir)
	writeFile(t, dir, ".env", "BOT_TOKEN=dotenv-token\n")
	path := writeFile(t, dir, "config.yaml", "telegram: {}\n")
	t.Setenv("BOT_TOKEN", "")
	require.NoError(t, os.Unsetenv("BOT_TOKEN"))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "dotenv-token", cfg.Telegram.Token)
}

func TestLoadMissingFile(t *testing.T) {
	chdir(t, t.TempDir())
	_, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	assert.ErrorContains(t, err, "failed to read config file")
}

func TestNormalize(t *testing.T) {
	base := func() Config {
		return Config{Telegram: TelegramConfig{Token: "t"}}
	}

	t.Run("token required", func(t *testing.T) {
		cfg := base()
		cfg.Telegram.Token = " "
		assert.ErrorContains(t, Normalize(&cfg), "token is required")
	})

	t.Run("webhook needs url listen and port", func(t *testing.T) {
		cfg := base()
		cfg.Telegram.RunMode = "webhook"
		assert.ErrorContains(t, Normalize(&cfg), "webhook.url")
		cfg.Webhook.URL = "https://example.org/hook"
		assert.ErrorContains(t, Normalize(&cfg), "webhook.listen")
		cfg.Webhook.Listen = "0.0.0.0"
		assert.ErrorContains(t, Normalize(&cfg), "webhook.port")
		cfg.Webhook.Port = 8443
		assert.NoError(t, Normalize(&cfg))
	})

	t.Run("unknown run mode", func(t *testing.T) {
		cfg := base()
		cfg.Telegram.RunMode = "carrier-pigeon"
		assert.ErrorContains(t, Normalize(&cfg), "invalid telegram.run_mode")
	})

	t.Run("bad exclusion", func(t *testing.T) {
		cfg := base()
		cfg.RateLimit.ExcludeUpdates = []string{"photo"}
		assert.ErrorContains(t, Normalize(&cfg), "exclude_updates")
	})

	t.Run("negative long poll timeout", func(t *testing.T) {
		cfg := base()
		cfg.Telegram.LongPollTimeoutSeconds = -1
		assert.Error(t, Normalize(&cfg))
	})
}

func TestDecodeWithoutFileSkipsValidation(t *testing.T) {
	chdir(t, t.TempDir())
	t.Setenv("LOG_LEVEL", "warn")

	var cfg Config
	require.NoError(t, Decode("", &cfg))
	assert.Equal(t, "warn", cfg.Logging.Level)
	assert.Empty(t, cfg.Telegram.RunMode)

	assert.ErrorContains(t, LoadInto("", &cfg), "config path is empty")
}
