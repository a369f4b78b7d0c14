package app

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/samber/do/v2"

	"github.com/alanef/local-voice-type/internal/asr"
	"github.com/alanef/local-voice-type/internal/config"
	"github.com/alanef/local-voice-type/internal/dictation"
	"github.com/alanef/local-voice-type/internal/hotkey"
	"github.com/alanef/local-voice-type/internal/keyboard"
	"github.com/alanef/local-voice-type/internal/mute"
	"github.com/alanef/local-voice-type/internal/notify"
	"github.com/alanef/local-voice-type/internal/record"
)

// NewInjector registers every service lazily. Hardware-backed services are
// only built by the run modes that need them.
func NewInjector(cfg config.Config, log *slog.Logger) do.Injector {
	injector := do.New()

	do.ProvideValue(injector, cfg)
	do.ProvideValue(injector, log)

	do.Provide(injector, func(i do.Injector) (*http.Client, error) {
		return NewHTTPClient(do.MustInvoke[config.Config](i))
	})
	do.Provide(injector, func(i do.Injector) (*asr.Client, error) {
		c := do.MustInvoke[config.Config](i)
		return asr.New(asr.Options{
			APIURL:   c.APIURL,
			APIToken: c.APIToken,
			TextPath: c.TextPath,
			Debug:    c.UploadDebug,
			Logger:   do.MustInvoke[*slog.Logger](i).With("component", "asr"),
		}, do.MustInvoke[*http.Client](i))
	})
	do.Provide(injector, func(i do.Injector) (*notify.Notifier, error) {
		c := do.MustInvoke[config.Config](i)
		return notify.New(c.Notification, do.MustInvoke[*slog.Logger](i)), nil
	})

	do.Provide(injector, func(i do.Injector) (*record.PortAudio, error) {
		return record.NewPortAudio(), nil
	})
	do.Provide(injector, func(i do.Injector) (*record.Recorder, error) {
		c := do.MustInvoke[config.Config](i)
		l := do.MustInvoke[*slog.Logger](i).With("component", "record")
		return record.New(do.MustInvoke[*record.PortAudio](i), l, c.RecordDebug), nil
	})
	do.Provide(injector, func(i do.Injector) (mute.Muter, error) {
		if !do.MustInvoke[config.Config](i).MuteWhileRecording {
			return mute.Noop{}, nil
		}
		return mute.NewSystem(do.MustInvoke[*slog.Logger](i)), nil
	})
	do.Provide(injector, func(i do.Injector) (*keyboard.Injector, error) {
		c := do.MustInvoke[config.Config](i)
		delay := time.Duration(c.TypingDelayMS) * time.Millisecond
		return keyboard.New(delay, do.MustInvoke[*slog.Logger](i))
	})
	do.Provide(injector, func(i do.Injector) (hotkey.Combo, error) {
		return hotkey.ParseCombo(do.MustInvoke[config.Config](i).Hotkey)
	})
	do.Provide(injector, func(i do.Injector) (*hotkey.HookSource, error) {
		c := do.MustInvoke[config.Config](i)
		l := do.MustInvoke[*slog.Logger](i).With("component", "hotkey")
		return hotkey.NewHookSource(l, c.HotkeyDebug), nil
	})
	do.Provide(injector, func(i do.Injector) (*Reporter, error) {
		c := do.MustInvoke[config.Config](i)
		return NewReporter(do.MustInvoke[*slog.Logger](i), do.MustInvoke[*notify.Notifier](i), c.RecordDebug), nil
	})
	do.Provide(injector, func(i do.Injector) (*dictation.Orchestrator, error) {
		c := do.MustInvoke[config.Config](i)
		combo, err := do.Invoke[hotkey.Combo](i)
		if err != nil {
			return nil, err
		}
		kb, err := do.Invoke[*keyboard.Injector](i)
		if err != nil {
			return nil, err
		}
		return dictation.New(dictation.Deps{
			Combo:       combo,
			Recorder:    do.MustInvoke[*record.Recorder](i),
			Muter:       do.MustInvoke[mute.Muter](i),
			Injector:    kb,
			Transcriber: do.MustInvoke[*asr.Client](i),
			Observer:    do.MustInvoke[*Reporter](i),
			Logger:      do.MustInvoke[*slog.Logger](i).With("component", "dictation"),
		}, dictation.Options{
			Language: c.Language,
			Async:    c.AsyncTranscription,
		}), nil
	})

	return injector
}
