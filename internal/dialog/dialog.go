// Package dialog shows the one-time startup acknowledgement window.
package dialog

import (
	"errors"
	"image"

	"github.com/autoclick/autoclick/internal/constants"
	"github.com/autoclick/autoclick/internal/logging"
)

// ErrUnsupported is returned on platforms without a native dialog.
var ErrUnsupported = errors.New("startup dialog is not supported on this platform")

// Options describes the dialog contents. Zero sizes use the defaults from
// internal/constants.
type Options struct {
	Title   string
	Message string
	Button  string

	// Icon is scaled to IconSize. Nil shows the system application icon.
	Icon     image.Image
	IconSize int

	// Client area size.
	Width  int
	Height int
}

func (o Options) withDefaults() Options {
	if o.Button == "" {
		o.Button = constants.DialogButton
	}
	if o.IconSize <= 0 {
		o.IconSize = constants.DialogIconSize
	}
	if o.Width <= 0 {
		o.Width = constants.DialogWidth
	}
	if o.Height <= 0 {
		o.Height = constants.DialogHeight
	}
	return o
}

// Modal shows modal, fixed-size, always-on-top dialogs.
type Modal struct {
	logger *logging.Logger
}

// New creates a Modal. A nil logger discards output.
func New(logger *logging.Logger) *Modal {
	if logger == nil {
		logger = logging.Nop()
	}
	return &Modal{logger: logger}
}

// Show displays the dialog and blocks until it is dismissed.
func (m *Modal) Show(opts Options) error {
	opts = opts.withDefaults()
	m.logger.Debug().Str("title", opts.Title).Msg("Showing dialog")

	if err := show(opts); err != nil {
		return err
	}

	m.logger.Debug().Str("title", opts.Title).Msg("Dialog dismissed")
	return nil
}
