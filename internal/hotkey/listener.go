// Package hotkey turns global keyboard activity into press/release events.
package hotkey

import (
	"context"
	"errors"
	"log/slog"
	"sync/atomic"

	hook "github.com/robotn/gohook"
)

// ErrListening is returned when a second Listen runs concurrently. The
// underlying hook is process-global.
var ErrListening = errors.New("hotkey listener already running")

// Source delivers key events to handler, one at a time, until ctx ends.
type Source interface {
	Listen(ctx context.Context, handler func(Event)) error
}

// HookSource is the global keyboard hook.
type HookSource struct {
	log    *slog.Logger
	debug  bool
	active atomic.Bool
}

// NewHookSource creates a hook-backed Source. debug logs every transition.
func NewHookSource(log *slog.Logger, debug bool) *HookSource {
	if log == nil {
		log = slog.Default()
	}
	return &HookSource{log: log, debug: debug}
}

func (s *HookSource) Listen(ctx context.Context, handler func(Event)) error {
	if !s.active.CompareAndSwap(false, true) {
		return ErrListening
	}
	defer s.active.Store(false)

	events := hook.Start()
	defer hook.End()
	s.log.Info("hotkey listener started")

	for {
		select {
		case <-ctx.Done():
			s.log.Info("hotkey listener stopped")
			return nil
		case ev, ok := <-events:
			if !ok {
				return errors.New("keyboard hook closed")
			}
			e, ok := translate(ev)
			if !ok {
				continue
			}
			if s.debug {
				s.log.Debug("key event", "kind", e.Kind, "key", e.Key, "rawcode", ev.Rawcode)
			}
			handler(e)
		}
	}
}

// translate maps hook transitions to events. Typed-character events and
// mouse activity are dropped.
func translate(ev hook.Event) (Event, bool) {
	var kind Kind
	switch ev.Kind {
	case hook.KeyHold:
		kind = Press
	case hook.KeyUp:
		kind = Release
	default:
		return Event{}, false
	}
	return Event{Kind: kind, Key: Key(ev.Keycode), When: ev.When}, true
}
