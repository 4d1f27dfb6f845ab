// Package notify shows the tray balloon notification.
// It uses github.com/gen2brain/beeep, which maps to toast notifications on
// Windows.
package notify

import (
	"github.com/gen2brain/beeep"

	"github.com/autoclick/autoclick/internal/logging"
)

const (
	// Windows drops balloon text beyond these lengths.
	maxTitleLen   = 63
	maxMessageLen = 255
)

// Notifier sends fire-and-forget desktop notifications.
type Notifier struct {
	logger   *logging.Logger
	iconPath string

	// send is replaced in tests.
	send func(title, message, icon string) error
}

// NewNotifier creates a notifier. iconPath may be empty, in which case the
// platform's default notification icon is shown.
func NewNotifier(iconPath string, logger *logging.Logger) *Notifier {
	if logger == nil {
		logger = logging.Nop()
	}

	return &Notifier{
		logger:   logger,
		iconPath: iconPath,
		send: func(title, message, icon string) error {
			return beeep.Notify(title, message, icon)
		},
	}
}

// Balloon shows a transient notification. Failures are logged, never returned.
func (n *Notifier) Balloon(title, message string) {
	if err := n.send(truncate(title, maxTitleLen), truncate(message, maxMessageLen), n.iconPath); err != nil {
		n.logger.Warn().Err(err).Str("title", title).Msg("Failed to show balloon notification")
		return
	}
	n.logger.Debug().Str("title", title).Msg("Balloon notification shown")
}

// truncate shortens s to maxLen runes, adding "..." if truncated.
func truncate(s string, maxLen int) string {
	r := []rune(s)
	if len(r) <= maxLen {
		return s
	}
	return string(r[:maxLen-3]) + "..."
}
