package config

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, v any) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.json")
	b, err := json.Marshal(v)
	require.NoError(t, err)
	require.NoError(t, os.WriteFile(path, b, 0600))
	return path
}

func TestLoadExplicitFile(t *testing.T) {
	path := writeConfig(t, map[string]any{
		"api_url":   "https://stt.example.com",
		"api_token": "secret",
		"hotkey":    "ctrl+space",
	})

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "https://stt.example.com", cfg.APIURL)
	assert.Equal(t, "secret", cfg.APIToken)
	assert.Equal(t, "ctrl+space", cfg.Hotkey)
	assert.Equal(t, "en", cfg.Language, "missing language falls back to default")
	assert.True(t, cfg.MuteWhileRecording)
}

func TestLoadEmptyLanguageDefaultsToEnglish(t *testing.T) {
	path := writeConfig(t, map[string]any{"language": ""})

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "en", cfg.Language)
}

func TestLoadMissingExplicitFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.json"))
	require.Error(t, err)
}

func TestLoadMalformedFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.json")
	require.NoError(t, os.WriteFile(path, []byte("{not json"), 0600))

	_, err := Load(path)
	require.Error(t, err)
}

func TestLoadCreatesDefaultAtUserConfigDir(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", dir)
	t.Setenv("HOME", dir)
	t.Setenv("AppData", dir)

	want, err := DefaultPath()
	require.NoError(t, err)

	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, DefaultConfig(), cfg)

	_, err = os.Stat(want)
	require.NoError(t, err, "default config should be written")
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr bool
	}{
		{"defaults", func(*Config) {}, false},
		{"empty url", func(c *Config) { c.APIURL = "" }, true},
		{"bad scheme", func(c *Config) { c.APIURL = "ftp://host" }, true},
		{"no host", func(c *Config) { c.APIURL = "http://" }, true},
		{"empty hotkey", func(c *Config) { c.Hotkey = " " }, true},
		{"empty language", func(c *Config) { c.Language = "" }, true},
		{"negative timeout", func(c *Config) { c.RequestTimeout = -1 }, true},
		{"negative typing delay", func(c *Config) { c.TypingDelayMS = -5 }, true},
		{"bad level", func(c *Config) { c.LogLevel = "loud" }, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.mutate(&cfg)
			err := Validate(&cfg)
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestPrecedenceFileEnvFlags(t *testing.T) {
	path := writeConfig(t, map[string]any{
		"api_url":   "http://file:8000",
		"api_token": "file-token",
		"language":  "de",
		"hotkey":    "alt+q",
	})
	t.Setenv("VOICE_TYPE_API_TOKEN", "env-token")
	t.Setenv("VOICE_TYPE_LANGUAGE", "fr")

	fs := pflag.NewFlagSet("test", pflag.ContinueOnError)
	fv := BindFlags(fs)
	require.NoError(t, fs.Parse([]string{"--language=es"}))

	cfg, err := Resolve(path, fv)
	require.NoError(t, err)

	assert.Equal(t, "http://file:8000", cfg.APIURL, "file value survives")
	assert.Equal(t, "env-token", cfg.APIToken, "env beats file")
	assert.Equal(t, "es", cfg.Language, "flag beats env")
	assert.Equal(t, "alt+q", cfg.Hotkey, "unset flag default does not clobber file")
}

func TestDebugFlagEnablesEverything(t *testing.T) {
	fs := pflag.NewFlagSet("test", pflag.ContinueOnError)
	fv := BindFlags(fs)
	require.NoError(t, fs.Parse([]string{"--debug"}))

	cfg := DefaultConfig()
	ApplyFlags(&cfg, fv)

	assert.Equal(t, "debug", cfg.LogLevel)
	assert.True(t, cfg.RecordDebug)
	assert.True(t, cfg.HotkeyDebug)
	assert.True(t, cfg.UploadDebug)
}

func TestAreaDebugLowersLogLevel(t *testing.T) {
	for _, flag := range []string{"--record-debug", "--hotkey-debug", "--upload-debug"} {
		t.Run(flag, func(t *testing.T) {
			path := writeConfig(t, map[string]any{"log_level": "warn"})
			fs := pflag.NewFlagSet("test", pflag.ContinueOnError)
			fv := BindFlags(fs)
			require.NoError(t, fs.Parse([]string{flag}))

			cfg, err := Resolve(path, fv)
			require.NoError(t, err)
			assert.Equal(t, "debug", cfg.LogLevel)
		})
	}
}

func TestLogLevelKeptWithoutAreaDebug(t *testing.T) {
	path := writeConfig(t, map[string]any{"log_level": "warn"})
	fs := pflag.NewFlagSet("test", pflag.ContinueOnError)
	fv := BindFlags(fs)
	require.NoError(t, fs.Parse(nil))

	cfg, err := Resolve(path, fv)
	require.NoError(t, err)
	assert.Equal(t, "warn", cfg.LogLevel)
}

func TestRedacted(t *testing.T) {
	cfg := DefaultConfig()
	cfg.APIToken = "secret"

	assert.Equal(t, "********", cfg.Redacted().APIToken)
	assert.Equal(t, "secret", cfg.APIToken)
}
