package config

import (
	"log/slog"

	"github.com/spf13/pflag"
)

// FlagValues holds flag targets. Whether a flag was explicitly set is read
// back from the FlagSet, so defaults here never clobber file or env values.
type FlagValues struct {
	APIURL         string
	APIToken       string
	Hotkey         string
	Language       string
	TextPath       string
	RequestTimeout int
	EnableHTTP2    bool
	VerifySSL      bool
	Mute           bool
	Notification   bool
	Async          bool
	TypingDelayMS  int
	LogLevel       string
	RecordDebug    bool
	HotkeyDebug    bool
	UploadDebug    bool
	Debug          bool

	fs *pflag.FlagSet
}

// BindFlags registers the config override flags on fs.
func BindFlags(fs *pflag.FlagSet) *FlagValues {
	d := DefaultConfig()
	fv := &FlagValues{fs: fs}

	fs.StringVar(&fv.APIURL, "api-url", d.APIURL, "transcription service base URL")
	fs.StringVar(&fv.APIToken, "api-token", "", "bearer token for the transcription service")
	fs.StringVar(&fv.Hotkey, "hotkey", d.Hotkey, "push-to-talk combo, e.g. super+c or ctrl+space")
	fs.StringVar(&fv.Language, "language", d.Language, "language tag sent with each recording")
	fs.StringVar(&fv.TextPath, "text-path", d.TextPath, "path to the transcript string in the response JSON")
	fs.IntVar(&fv.RequestTimeout, "request-timeout", d.RequestTimeout, "request timeout in seconds (0 = transport default)")
	fs.BoolVar(&fv.EnableHTTP2, "http2", d.EnableHTTP2, "enable HTTP/2")
	fs.BoolVar(&fv.VerifySSL, "verify-ssl", d.VerifySSL, "verify TLS certificates")
	fs.BoolVar(&fv.Mute, "mute", d.MuteWhileRecording, "mute system output while recording")
	fs.BoolVar(&fv.Notification, "notification", d.Notification, "show desktop notifications")
	fs.BoolVar(&fv.Async, "async", d.AsyncTranscription, "transcribe off the hotkey listener")
	fs.IntVar(&fv.TypingDelayMS, "typing-delay", d.TypingDelayMS, "delay in ms before injecting text")
	fs.StringVar(&fv.LogLevel, "log-level", d.LogLevel, "log level: debug, info, warn, error")
	fs.BoolVar(&fv.RecordDebug, "record-debug", false, "enable record debug output")
	fs.BoolVar(&fv.HotkeyDebug, "hotkey-debug", false, "enable hotkey debug output")
	fs.BoolVar(&fv.UploadDebug, "upload-debug", false, "enable upload debug output")
	fs.BoolVar(&fv.Debug, "debug", false, "shorthand for --log-level=debug plus all debug outputs")

	return fv
}

// ApplyFlags copies explicitly set flags into cfg.
func ApplyFlags(cfg *Config, fv *FlagValues) {
	if fv == nil || fv.fs == nil {
		return
	}
	set := fv.fs.Changed

	if set("api-url") {
		cfg.APIURL = fv.APIURL
	}
	if set("api-token") {
		cfg.APIToken = fv.APIToken
	}
	if set("hotkey") {
		cfg.Hotkey = fv.Hotkey
	}
	if set("language") {
		cfg.Language = fv.Language
	}
	if set("text-path") {
		cfg.TextPath = fv.TextPath
	}
	if set("request-timeout") {
		cfg.RequestTimeout = fv.RequestTimeout
	}
	if set("http2") {
		cfg.EnableHTTP2 = fv.EnableHTTP2
	}
	if set("verify-ssl") {
		cfg.VerifySSL = fv.VerifySSL
	}
	if set("mute") {
		cfg.MuteWhileRecording = fv.Mute
	}
	if set("notification") {
		cfg.Notification = fv.Notification
	}
	if set("async") {
		cfg.AsyncTranscription = fv.Async
	}
	if set("typing-delay") {
		cfg.TypingDelayMS = fv.TypingDelayMS
	}
	if set("log-level") {
		cfg.LogLevel = fv.LogLevel
	}
	if set("record-debug") {
		cfg.RecordDebug = fv.RecordDebug
	}
	if set("hotkey-debug") {
		cfg.HotkeyDebug = fv.HotkeyDebug
	}
	if set("upload-debug") {
		cfg.UploadDebug = fv.UploadDebug
	}
	if set("debug") && fv.Debug {
		cfg.LogLevel = "debug"
		cfg.RecordDebug = true
		cfg.HotkeyDebug = true
		cfg.UploadDebug = true
	}
}

// Resolve loads the config file at path, then applies env and flag
// overrides and validates the result.
func Resolve(path string, fv *FlagValues) (Config, error) {
	cfg, err := Load(path)
	if err != nil {
		return cfg, err
	}
	if err := ApplyEnv(&cfg); err != nil {
		return cfg, err
	}
	ApplyFlags(&cfg, fv)
	raiseVerbosity(&cfg)
	if err := Validate(&cfg); err != nil {
		return cfg, err
	}
	return cfg, nil
}

// raiseVerbosity lowers the log level to debug when any per-area debug
// output is on.
func raiseVerbosity(cfg *Config) {
	if !cfg.RecordDebug && !cfg.HotkeyDebug && !cfg.UploadDebug {
		return
	}
	if level, err := ParseLevel(cfg.LogLevel); err == nil && level > slog.LevelDebug {
		cfg.LogLevel = "debug"
	}
}
