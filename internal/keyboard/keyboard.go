// Package keyboard injects keystrokes and text at the current cursor.
package keyboard

import (
	"fmt"
	"log/slog"
	"runtime"
	"sync"
	"time"

	"github.com/atotto/clipboard"
	"github.com/micmonay/keybd_event"
)

const (
	clipboardSettle = 80 * time.Millisecond
	pasteSettle     = 120 * time.Millisecond
)

type clipboardIO interface {
	ReadAll() (string, error)
	WriteAll(text string) error
}

type keyTapper interface {
	// Tap presses and releases key, holding the paste modifier when chord is set.
	Tap(key int, chord bool) error
}

// Injector types into the focused window. Calls are serialized.
type Injector struct {
	mu          sync.Mutex
	clip        clipboardIO
	keys        keyTapper
	typingDelay time.Duration
	log         *slog.Logger
}

// New creates an Injector backed by the OS keyboard and clipboard.
func New(typingDelay time.Duration, log *slog.Logger) (*Injector, error) {
	kb, err := keybd_event.NewKeyBonding()
	if err != nil {
		return nil, fmt.Errorf("init virtual keyboard: %w", err)
	}
	// The uinput device needs time to register before the first event.
	if runtime.GOOS == "linux" {
		time.Sleep(2 * time.Second)
	}
	return newInjector(systemClipboard{}, &bonding{kb: kb}, typingDelay, log), nil
}

func newInjector(clip clipboardIO, keys keyTapper, typingDelay time.Duration, log *slog.Logger) *Injector {
	if log == nil {
		log = slog.Default()
	}
	return &Injector{clip: clip, keys: keys, typingDelay: typingDelay, log: log}
}

// Backspace sends a single backspace.
func (i *Injector) Backspace() error {
	i.mu.Lock()
	defer i.mu.Unlock()
	if err := i.keys.Tap(backspaceKey, false); err != nil {
		return fmt.Errorf("send backspace: %w", err)
	}
	return nil
}

// Text pastes text at the cursor through the clipboard and restores the
// previous clipboard contents afterwards.
func (i *Injector) Text(text string) error {
	if text == "" {
		return nil
	}
	i.mu.Lock()
	defer i.mu.Unlock()

	if i.typingDelay > 0 {
		time.Sleep(i.typingDelay)
	}

	orig, readErr := i.clip.ReadAll()
	if err := i.clip.WriteAll(text); err != nil {
		return fmt.Errorf("write clipboard: %w", err)
	}
	time.Sleep(clipboardSettle)

	pasteErr := i.keys.Tap(pasteKey, true)
	time.Sleep(pasteSettle)

	if readErr == nil {
		if err := i.clip.WriteAll(orig); err != nil {
			i.log.Warn("restore clipboard", "error", err)
		}
	}
	if pasteErr != nil {
		return fmt.Errorf("send paste: %w", pasteErr)
	}
	return nil
}

type systemClipboard struct{}

func (systemClipboard) ReadAll() (string, error) { return clipboard.ReadAll() }
func (systemClipboard) WriteAll(text string) error { return clipboard.WriteAll(text) }

type bonding struct {
	kb keybd_event.KeyBonding
}

func (b *bonding) Tap(key int, chord bool) error {
	b.kb.Clear()
	if chord {
		setPasteModifier(&b.kb)
	}
	b.kb.SetKeys(key)
	return b.kb.Launching()
}
