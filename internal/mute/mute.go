// Package mute silences system audio output while a recording runs.
package mute

import (
	"context"
	"log/slog"
	"os/exec"
	"time"
)

// commandTimeout bounds each mute helper invocation.
const commandTimeout = 3 * time.Second

// Muter mutes and unmutes the default output. Failures are logged, not
// returned.
type Muter interface {
	Mute()
	Unmute()
}

// Noop is used when muting is disabled.
type Noop struct{}

func (Noop) Mute() {}
func (Noop) Unmute() {}

// System drives the platform's mixer through its command line tool.
type System struct {
	log *slog.Logger
	run func(ctx context.Context, name string, args ...string) error
}

func NewSystem(log *slog.Logger) *System {
	if log == nil {
		log = slog.Default()
	}
	return &System{log: log, run: runCommand}
}

func (s *System) Mute() {
	s.exec(muteCommand(true))
}

func (s *System) Unmute() {
	s.exec(muteCommand(false))
}

func (s *System) exec(argv []string) {
	if len(argv) == 0 {
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), commandTimeout)
	defer cancel()
	if err := s.run(ctx, argv[0], argv[1:]...); err != nil {
		s.log.Warn("mute command failed", "command", argv[0], "error", err)
	}
}

func runCommand(ctx context.Context, name string, args ...string) error {
	return exec.CommandContext(ctx, name, args...).Run()
}
