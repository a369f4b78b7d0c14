package mute

import (
	"context"
	"errors"
	"runtime"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSystemRunsPlatformCommand(t *testing.T) {
	var calls [][]string
	s := NewSystem(nil)
	s.run = func(_ context.Context, name string, args ...string) error {
		calls = append(calls, append([]string{name}, args...))
		return nil
	}

	s.Mute()
	s.Unmute()

	switch runtime.GOOS {
	case "linux":
		assert.Equal(t, [][]string{
			{"pactl", "set-sink-mute", "@DEFAULT_SINK@", "1"},
			{"pactl", "set-sink-mute", "@DEFAULT_SINK@", "0"},
		}, calls)
	case "darwin":
		assert.Equal(t, [][]string{
			{"osascript", "-e", "set volume output muted true"},
			{"osascript", "-e", "set volume output muted false"},
		}, calls)
	case "windows":
		assert.Len(t, calls, 2)
		assert.Equal(t, calls[0], calls[1])
	default:
		assert.Empty(t, calls)
	}
}

func TestSystemSwallowsFailures(t *testing.T) {
	s := NewSystem(nil)
	s.run = func(context.Context, string, ...string) error {
		return errors.New("pactl: not found")
	}
	assert.NotPanics(t, s.Mute)
	assert.NotPanics(t, s.Unmute)
}

func TestNoop(t *testing.T) {
	var m Muter = Noop{}
	m.Mute()
	m.Unmute()
}
