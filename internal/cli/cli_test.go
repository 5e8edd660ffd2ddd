package cli

import (
	"bytes"
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func run(t *testing.T, args ...string) (string, string, error) {
	t.Helper()
	chdir(t, t.TempDir())
	flagConfig = ""

	var stdout, stderr bytes.Buffer
	cmd := NewRootCmd()
	cmd.SetOut(&stdout)
	cmd.SetErr(&stderr)
	cmd.SetArgs(args)
	err := cmd.ExecuteContext(context.Background())
	return stdout.String(), stderr.String(), err
}

func upstream(t *testing.T, status int, body string) string {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(status)
		_, _ = w.Write([]byte(body))
	}))
	t.Cleanup(srv.Close)
	return srv.URL
}

func TestVersion(t *testing.T) {
	out, _, err := run(t, "version")
	require.NoError(t, err)
	assert.Contains(t, out, "electionbot dev")
}

func TestQuickCountPreview(t *testing.T) {
	t.Setenv("CONFIG_PATH", "")
	t.Setenv("QUICKCOUNT_URL", upstream(t, http.StatusOK, `{"ts": "now",
		"chart": {"100025": 0, "100026": 0, "100027": 0, "persen": 0},
		"progres": {"total": 10, "progres": 0}}`))

	out, _, err := run(t, "quickcount")
	require.NoError(t, err)
	assert.Contains(t, out, "<b>Last Data</b>   : now\n")
	assert.Contains(t, out, "<b>01</b> : 0 (0.00%)")
}

func TestQuickCountPreviewUpstreamDown(t *testing.T) {
	t.Setenv("CONFIG_PATH", "")
	t.Setenv("QUICKCOUNT_URL", upstream(t, http.StatusBadGateway, ""))

	_, _, err := run(t, "quickcount")
	assert.ErrorContains(t, err, "status 502")
}

func TestCandidatesPreview(t *testing.T) {
	t.Setenv("CONFIG_PATH", "")
	t.Setenv("CANDIDATE_PHOTO", "missing.png")
	t.Setenv("CANDIDATES_URL", upstream(t, http.StatusOK, `{"candidates": [{"name": "Prabowo", "position": "Capres",
		"full_name": "Prabowo Subianto", "birth_info": {"place": "Jakarta", "date": "17 Oktober 1951"},
		"age": 72, "career": ["Menteri Pertahanan"]}]}`))

	out, errOut, err := run(t, "candidates")
	require.NoError(t, err)
	assert.Contains(t, out, "<b>Name:</b> Prabowo\n")
	assert.Contains(t, out, "<b>Career:</b>\nMenteri Pertahanan\n\n")
	assert.Equal(t, "photo missing.png: missing\n", errOut)
}

func TestCandidatesPreviewEmpty(t *testing.T) {
	t.Setenv("CONFIG_PATH", "")
	t.Setenv("CANDIDATES_URL", upstream(t, http.StatusOK, `{"candidates": []}`))

	out, _, err := run(t, "candidates")
	require.NoError(t, err)
	assert.Equal(t, "No candidate data is available yet.\n", out)
}

func TestServeFailsWithoutConfigFile(t *testing.T) {
	t.Setenv("CONFIG_PATH", "")
	_, _, err := run(t, "serve", "--config", "absent.yaml")
	assert.ErrorContains(t, err, "failed to load config")
}
