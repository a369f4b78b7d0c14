package root

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/alanef/local-voice-type/internal/config"
)

func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	cmd := NewRootCmd(BuildInfo{Version: "1.2.3", Commit: "abc", Date: "today"})
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(io.Discard)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func TestVersion(t *testing.T) {
	out, err := run(t, "version")
	require.NoError(t, err)
	assert.Contains(t, out, "voice-type version 1.2.3")
	assert.Contains(t, out, "Commit: abc")
}

func TestConfigInitAndShow(t *testing.T) {
	path := filepath.Join(t.TempDir(), "voice-type", "config.json")

	out, err := run(t, "config", "init", "--config", path)
	require.NoError(t, err)
	assert.Equal(t, path, strings.TrimSpace(out))

	_, err = run(t, "config", "init", "--config", path)
	require.Error(t, err, "refuses to overwrite")

	_, err = run(t, "config", "init", "--config", path, "--force")
	require.NoError(t, err)

	out, err = run(t, "config", "show", "--config", path, "--language", "fr")
	require.NoError(t, err)
	var shown config.Config
	require.NoError(t, json.Unmarshal([]byte(out), &shown))
	assert.Equal(t, "fr", shown.Language)
	assert.Equal(t, "********", shown.APIToken)
}

func TestConfigPath(t *testing.T) {
	out, err := run(t, "config", "path", "--config", "/tmp/x.json")
	require.NoError(t, err)
	assert.Equal(t, "/tmp/x.json", strings.TrimSpace(out))
}

func TestHealthCommand(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = io.WriteString(w, `{"status":"ok","model_loaded":false}`)
	}))
	t.Cleanup(srv.Close)

	path := filepath.Join(t.TempDir(), "config.json")
	require.NoError(t, config.SaveDefault(path))

	out, err := run(t, "health", "--config", path, "--api-url", srv.URL)
	require.Error(t, err)
	assert.Contains(t, out, "model_loaded=false")
}

func TestTranscribeRequiresFile(t *testing.T) {
	_, err := run(t, "transcribe")
	require.Error(t, err)
}

func TestInvalidConfigFails(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"api_url":"ftp://nope"}`), 0600))

	_, err := run(t, "config", "show", "--config", path)
	require.Error(t, err)
}
