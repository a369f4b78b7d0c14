// Package notify shows desktop notifications.
package notify

import (
	"log/slog"

	"github.com/gen2brain/beeep"
)

const appName = "Voice Type"

// Notifier shows notifications when enabled.
type Notifier struct {
	enabled bool
	log     *slog.Logger
	send    func(title, message, icon string) error
}

func New(enabled bool, log *slog.Logger) *Notifier {
	return NewWithSender(enabled, log, func(title, message, icon string) error {
		return beeep.Notify(title, message, icon)
	})
}

// NewWithSender is New with a custom delivery function.
func NewWithSender(enabled bool, log *slog.Logger, send func(title, message, icon string) error) *Notifier {
	if log == nil {
		log = slog.Default()
	}
	return &Notifier{enabled: enabled, log: log, send: send}
}

// Notify shows message under title. Delivery failures are logged.
func (n *Notifier) Notify(title, message string) {
	if n == nil || !n.enabled {
		return
	}
	if title == "" {
		title = appName
	}
	if err := n.send(title, message, ""); err != nil {
		n.log.Debug("notification failed", "error", err)
	}
}

func (n *Notifier) Enabled() bool {
	return n != nil && n.enabled
}
