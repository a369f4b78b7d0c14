package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"net/url"
	"os"
	"path/filepath"
	"strings"
)

const (
	appDir         = "voice-type"
	configFileName = "config.json"
)

// Config holds configurable parameters. It is loaded once at startup and
// never mutated by the dictation core.
type Config struct {
	APIURL   string `json:"api_url" env:"API_URL"`
	APIToken string `json:"api_token" env:"API_TOKEN"`
	Hotkey   string `json:"hotkey" env:"HOTKEY"`
	Language string `json:"language" env:"LANGUAGE"`
	TextPath string `json:"text_path" env:"TEXT_PATH"`

	RequestTimeout int  `json:"request_timeout" env:"REQUEST_TIMEOUT"`
	EnableHTTP2    bool `json:"enable_http2" env:"ENABLE_HTTP2"`
	VerifySSL      bool `json:"verify_ssl" env:"VERIFY_SSL"`

	MuteWhileRecording bool `json:"mute_while_recording" env:"MUTE_WHILE_RECORDING"`
	Notification       bool `json:"notification" env:"NOTIFICATION"`
	AsyncTranscription bool `json:"async_transcription" env:"ASYNC_TRANSCRIPTION"`
	TypingDelayMS      int  `json:"typing_delay_ms" env:"TYPING_DELAY_MS"`

	LogLevel    string `json:"log_level" env:"LOG_LEVEL"`
	RecordDebug bool   `json:"record_debug" env:"RECORD_DEBUG"`
	HotkeyDebug bool   `json:"hotkey_debug" env:"HOTKEY_DEBUG"`
	UploadDebug bool   `json:"upload_debug" env:"UPLOAD_DEBUG"`
}

// DefaultConfig returns a Config with default values.
func DefaultConfig() Config {
	return Config{
		APIURL:             "http://localhost:8000",
		APIToken:           "changeme",
		Hotkey:             "super+c",
		Language:           "en",
		TextPath:           "text",
		RequestTimeout:     0,
		EnableHTTP2:        true,
		VerifySSL:          true,
		MuteWhileRecording: true,
		Notification:       false,
		AsyncTranscription: false,
		TypingDelayMS:      100,
		LogLevel:           "info",
	}
}

// DefaultPath returns <user config dir>/voice-type/config.json.
func DefaultPath() (string, error) {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "", fmt.Errorf("get user config dir: %w", err)
	}
	return filepath.Join(dir, appDir, configFileName), nil
}

// Load reads the config file at path, or at DefaultPath when path is empty.
// A missing file at the default location is created from DefaultConfig and
// loading continues with those values. A missing explicit path is an error.
func Load(path string) (Config, error) {
	cfg := DefaultConfig()

	explicit := path != ""
	if !explicit {
		p, err := DefaultPath()
		if err != nil {
			return cfg, err
		}
		path = p
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) && !explicit {
			if err := SaveDefault(path); err != nil {
				return cfg, err
			}
			slog.Info("default config created", "path", path)
			return cfg, nil
		}
		return cfg, fmt.Errorf("read config: %w", err)
	}

	if err := json.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("parse config %s: %w", path, err)
	}
	if cfg.Language == "" {
		cfg.Language = "en"
	}
	return cfg, nil
}

// Save writes cfg as indented JSON, creating parent directories.
func Save(path string, cfg Config) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("create config dir: %w", err)
	}
	b, err := json.MarshalIndent(cfg, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal config: %w", err)
	}
	if err := os.WriteFile(path, append(b, '\n'), 0600); err != nil {
		return fmt.Errorf("write config: %w", err)
	}
	return nil
}

// SaveDefault writes a default config JSON to the provided path.
func SaveDefault(path string) error {
	return Save(path, DefaultConfig())
}

// Validate verifies config fields and returns an error if any value is invalid.
func Validate(cfg *Config) error {
	if cfg.APIURL == "" {
		return fmt.Errorf("api_url is required")
	}
	u, err := url.Parse(cfg.APIURL)
	if err != nil {
		return fmt.Errorf("invalid api_url %q: %w", cfg.APIURL, err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return fmt.Errorf("invalid api_url %q: scheme must be http or https", cfg.APIURL)
	}
	if u.Host == "" {
		return fmt.Errorf("invalid api_url %q: missing host", cfg.APIURL)
	}
	if strings.TrimSpace(cfg.Hotkey) == "" {
		return fmt.Errorf("hotkey is required")
	}
	if strings.TrimSpace(cfg.Language) == "" {
		return fmt.Errorf("language is required")
	}
	if cfg.RequestTimeout < 0 {
		return fmt.Errorf("invalid request_timeout: %d (must be >= 0)", cfg.RequestTimeout)
	}
	if cfg.TypingDelayMS < 0 {
		return fmt.Errorf("invalid typing_delay_ms: %d (must be >= 0)", cfg.TypingDelayMS)
	}
	if _, err := ParseLevel(cfg.LogLevel); err != nil {
		return err
	}
	return nil
}

// ParseLevel maps log_level to a slog level. Empty means info.
func ParseLevel(s string) (slog.Level, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "info":
		return slog.LevelInfo, nil
	case "debug":
		return slog.LevelDebug, nil
	case "warn", "warning":
		return slog.LevelWarn, nil
	case "error":
		return slog.LevelError, nil
	default:
		return slog.LevelInfo, fmt.Errorf("invalid log_level: %q (allowed: debug, info, warn, error)", s)
	}
}

// Redacted returns a copy of cfg safe for printing.
func (c Config) Redacted() Config {
	if c.APIToken != "" {
		c.APIToken = "********"
	}
	return c
}
