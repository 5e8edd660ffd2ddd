package electionbot

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	coreconfig "github.com/m3rciful/electionbot/core/config"
	"github.com/m3rciful/electionbot/internal/election"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	dir := t.TempDir()
	chdir(t, dir)
	path := filepath.Join(dir, "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
	return path
}

func TestLoadConfigDefaults(t *testing.T) {
	path := writeConfig(t, "telegram:\n  token: abc\n  admin_id: 42\n")

	cfg, err := LoadConfig(path)
	require.NoError(t, err)
	assert.Equal(t, "abc", cfg.CoreConfig().Telegram.Token)
	assert.Equal(t, int64(42), cfg.Telegram.AdminID)
	assert.Equal(t, coreconfig.RunModeLongpoll, cfg.Telegram.RunMode)
	assert.Equal(t, election.DefaultQuickCountURL, cfg.Election.QuickCountURL)
	assert.Equal(t, election.DefaultCandidatesURL, cfg.Election.CandidatesURL)
	assert.Equal(t, DefaultCandidatePhoto, cfg.Election.CandidatePhoto)
	assert.Equal(t, 10, cfg.Election.FetchTimeoutSeconds)
}

func TestLoadConfigElectionSectionAndEnv(t *testing.T) {
	path := writeConfig(t, `
telegram:
  token: abc
election:
  quickcount_url: https://kpu.example/ppwp.json
  fetch_timeout_seconds: 3
  candidate_photo: assets/paslon.png
`)
	t.Setenv("CANDIDATES_URL", "https://mirror.example/x.json")

	cfg, err := LoadConfig(path)
	require.NoError(t, err)
	assert.Equal(t, "https://kpu.example/ppwp.json", cfg.Election.QuickCountURL)
	assert.Equal(t, "https://mirror.example/x.json", cfg.Election.CandidatesURL)
	assert.Equal(t, "assets/paslon.png", cfg.Election.CandidatePhoto)

	opts := cfg.Election.ClientOptions()
	assert.Equal(t, cfg.Election.FetchTimeout(), opts.Timeout)
	assert.Equal(t, int64(3), int64(opts.Timeout.Seconds()))
}

func TestLoadConfigRequiresToken(t *testing.T) {
	path := writeConfig(t, "election: {}\n")
	t.Setenv("BOT_TOKEN", "")
	require.NoError(t, os.Unsetenv("BOT_TOKEN"))

	_, err := LoadConfig(path)
	assert.ErrorContains(t, err, "token is required")
}

func TestElectionConfigRejectsBadValues(t *testing.T) {
	cases := map[string]ElectionConfig{
		"relative url":     {QuickCountURL: "/ppwp.json"},
		"ftp url":          {CandidatesURL: "ftp://example.org/x.json"},
		"negative timeout": {FetchTimeoutSeconds: -1},
	}
	for name, cfg := range cases {
		assert.Error(t, cfg.Normalize(), name)
	}
}

func TestLoadElectionConfigWithoutToken(t *testing.T) {
	chdir(t, t.TempDir())
	t.Setenv("QUICKCOUNT_URL", "http://localhost:8080/qc.json")

	cfg, err := LoadElectionConfig("")
	require.NoError(t, err)
	assert.Equal(t, "http://localhost:8080/qc.json", cfg.QuickCountURL)
	assert.Equal(t, election.DefaultCandidatesURL, cfg.CandidatesURL)
}

type foreignCarrier struct{}

func (foreignCarrier) CoreConfig() *coreconfig.Config { return &coreconfig.Config{} }

func TestBootstrapRejectsForeignConfig(t *testing.T) {
	_, err := Bootstrap(context.Background(), foreignCarrier{})
	assert.ErrorContains(t, err, "unexpected config type")
}

func TestAppRunOptions(t *testing.T) {
	app := testApp(t, "missing.png")
	opts, err := app.TelegramRunOptions()
	require.NoError(t, err)
	assert.Same(t, app.cfg.CoreConfig(), opts.Config)
	assert.Equal(t, []string{"/start", "/status"}, opts.Registry.CommandNames())
	assert.NotEmpty(t, opts.Routes)
	assert.NotNil(t, opts.OnStart)

	checks := app.Checks()
	require.Len(t, checks, 1)
	assert.ErrorIs(t, checks[0].Run(context.Background()), os.ErrNotExist)
}
