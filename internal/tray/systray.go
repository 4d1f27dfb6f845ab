package tray

import (
	"fyne.io/systray"

	"github.com/autoclick/autoclick/internal/constants"
)

// SystrayHost is the Host backed by fyne.io/systray.
type SystrayHost struct{}

// NewSystrayHost returns the system tray host.
func NewSystrayHost() *SystrayHost {
	return &SystrayHost{}
}

// SetIcon sets the tray icon from ICO file bytes. Empty data is ignored so
// the previous icon stays.
func (h *SystrayHost) SetIcon(data []byte) {
	if len(data) > 0 {
		systray.SetIcon(data)
	}
}

// SetTooltip sets the text shown when hovering over the tray icon.
func (h *SystrayHost) SetTooltip(text string) {
	systray.SetTooltip(text)
}

// AddMenuItem appends an entry to the tray menu and returns the channel that
// receives a value on every click.
func (h *SystrayHost) AddMenuItem(title, tooltip string) <-chan struct{} {
	return systray.AddMenuItem(title, tooltip).ClickedCh
}

// Quit removes the tray icon and ends the systray event loop. Only the first
// call has any effect.
func (h *SystrayHost) Quit() {
	systray.Quit()
}

// Run owns the tray event loop. It starts c once the tray is ready and
// returns after the loop ends and c has been torn down.
func Run(c *Controller) {
	systray.Run(func() {
		systray.SetTitle(constants.AppName)
		ready(c)
	}, c.Shutdown)

	// Covers loops that end without invoking the exit hook. Waits for an
	// in-flight Exit to finish.
	c.Shutdown()
}

// ready starts c once the host loop is up. When c was already exited, for
// example by a signal that arrived before the loop existed, Exit did not
// reach the host, so the loop is ended here.
func ready(c *Controller) {
	if err := c.Start(); err != nil {
		c.logger.Warn().Err(err).Msg("Tray not started, ending event loop")
		c.Exit()
		c.host.Quit()
	}
}
