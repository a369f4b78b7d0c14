// Package app wires the services together and implements the run modes.
package app

import (
	"bytes"
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/samber/do/v2"

	"github.com/alanef/local-voice-type/internal/asr"
	"github.com/alanef/local-voice-type/internal/audio/ffmpeg"
	"github.com/alanef/local-voice-type/internal/audio/wav"
	"github.com/alanef/local-voice-type/internal/config"
	"github.com/alanef/local-voice-type/internal/dictation"
	"github.com/alanef/local-voice-type/internal/hotkey"
)

const startupProbeTimeout = 3 * time.Second

// RunDictation listens for the push-to-talk combo until ctx is canceled.
func RunDictation(ctx context.Context, injector do.Injector) error {
	cfg := do.MustInvoke[config.Config](injector)
	log := do.MustInvoke[*slog.Logger](injector)

	if client, err := do.Invoke[*asr.Client](injector); err == nil {
		probe(ctx, client, log)
	}

	orch, err := do.Invoke[*dictation.Orchestrator](injector)
	if err != nil {
		return fmt.Errorf("build dictation: %w", err)
	}
	src, err := do.Invoke[*hotkey.HookSource](injector)
	if err != nil {
		return fmt.Errorf("build hotkey listener: %w", err)
	}

	log.Info("ready", "hotkey", cfg.Hotkey, "api_url", cfg.APIURL, "language", cfg.Language, "async", cfg.AsyncTranscription)
	err = src.Listen(ctx, func(ev hotkey.Event) {
		orch.Handle(ctx, ev)
	})
	if closeErr := orch.Close(); closeErr != nil {
		log.Warn("drain pending sessions", "error", closeErr)
	}
	return err
}

// probe warns early when the service is not reachable. It never fails
// startup.
func probe(ctx context.Context, client *asr.Client, log *slog.Logger) {
	ctx, cancel := context.WithTimeout(ctx, startupProbeTimeout)
	defer cancel()
	h, err := client.Health(ctx)
	switch {
	case err != nil:
		log.Warn("transcription service not reachable", "error", err)
	case !h.Ready():
		log.Warn("transcription service not ready", "status", h.Status, "model_loaded", h.ModelLoaded)
	default:
		log.Debug("transcription service ready")
	}
}

// CheckHealth queries the service's readiness endpoint.
func CheckHealth(ctx context.Context, injector do.Injector) (asr.Health, error) {
	client, err := do.Invoke[*asr.Client](injector)
	if err != nil {
		return asr.Health{}, err
	}
	return client.Health(ctx)
}

// RunFile transcribes an existing audio file. Files that are not already
// 16 kHz mono 16-bit WAV are converted with ffmpeg first. When outPath is
// set the transcript is also written there.
func RunFile(ctx context.Context, injector do.Injector, inPath, outPath string) (string, error) {
	cfg := do.MustInvoke[config.Config](injector)
	log := do.MustInvoke[*slog.Logger](injector)

	blob, err := loadAudio(ctx, inPath, log)
	if err != nil {
		return "", err
	}

	client, err := do.Invoke[*asr.Client](injector)
	if err != nil {
		return "", err
	}
	log.Debug("uploading file", "path", inPath, "bytes", len(blob))
	text, err := client.Transcribe(ctx, blob, cfg.Language)
	if err != nil {
		return "", err
	}

	if outPath != "" {
		if err := os.WriteFile(outPath, []byte(text), 0644); err != nil {
			return text, fmt.Errorf("write transcript: %w", err)
		}
	}
	return text, nil
}

func loadAudio(ctx context.Context, inPath string, log *slog.Logger) ([]byte, error) {
	data, err := os.ReadFile(inPath)
	if err != nil {
		return nil, fmt.Errorf("file '%s' read failed: %w", inPath, err)
	}
	if info, err := wav.Inspect(bytes.NewReader(data)); err == nil && info.Conforming() {
		return data, nil
	}

	tmpDir, err := os.MkdirTemp("", "voice-type-")
	if err != nil {
		return nil, fmt.Errorf("create temp dir: %w", err)
	}
	defer os.RemoveAll(tmpDir)

	converted := filepath.Join(tmpDir, "audio.wav")
	log.Info("converting audio", "input", inPath)
	if err := ffmpeg.Convert(ctx, inPath, converted, log); err != nil {
		return nil, err
	}
	return os.ReadFile(converted)
}

// Shutdown releases every built service.
func Shutdown(injector do.Injector, log *slog.Logger) {
	if report := injector.Shutdown(); report != nil && !report.Succeed {
		log.Warn("shutdown incomplete", "report", report)
	}
}
