// Package ffmpeg converts arbitrary audio files into the upload format.
package ffmpeg

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os/exec"
	"strconv"
	"strings"

	"github.com/alanef/local-voice-type/internal/audio/wav"
)

// ErrNotInstalled is returned when no ffmpeg binary is on PATH.
var ErrNotInstalled = errors.New("ffmpeg not found in PATH")

// Binary is the executable looked up on PATH.
var Binary = "ffmpeg"

// Args returns the ffmpeg arguments that turn inPath into a 16 kHz mono
// 16-bit PCM WAV at outPath.
func Args(inPath, outPath string) []string {
	return []string{
		"-hide_banner", "-loglevel", "error",
		"-y", "-i", inPath,
		"-ac", strconv.Itoa(wav.Channels),
		"-ar", strconv.Itoa(wav.SampleRate),
		"-c:a", "pcm_s16le",
		"-f", "wav",
		outPath,
	}
}

// Convert runs ffmpeg on inPath and writes the result to outPath.
func Convert(ctx context.Context, inPath, outPath string, log *slog.Logger) error {
	bin, err := exec.LookPath(Binary)
	if err != nil {
		return ErrNotInstalled
	}
	args := Args(inPath, outPath)
	if log != nil {
		log.Debug("running ffmpeg", "args", strings.Join(args, " "))
	}

	cmd := exec.CommandContext(ctx, bin, args...)
	var stderr bytes.Buffer
	cmd.Stderr = &stderr
	if err := cmd.Run(); err != nil {
		return fmt.Errorf("ffmpeg failed: %w\n%s", err, strings.TrimSpace(stderr.String()))
	}
	return nil
}
