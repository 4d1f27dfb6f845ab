// Package tray owns the tray icon and the keep-awake lifecycle.
//
// A Controller moves from Idle to Running on Start and from Running to
// Terminated on Exit. Teardown runs once no matter how many exit paths
// fire (menu, signal, host shutdown).
package tray

import (
	"errors"
	"sync"
	"time"

	"github.com/autoclick/autoclick/internal/constants"
	"github.com/autoclick/autoclick/internal/dialog"
	"github.com/autoclick/autoclick/internal/icon"
	"github.com/autoclick/autoclick/internal/logging"
	"github.com/autoclick/autoclick/internal/power"
)

// ErrAlreadyStarted is returned by a second call to Start.
var ErrAlreadyStarted = errors.New("tray controller already started")

// State is the controller lifecycle state.
type State int

const (
	StateIdle State = iota
	StateRunning
	StateTerminated
)

func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateRunning:
		return "running"
	case StateTerminated:
		return "terminated"
	default:
		return "unknown"
	}
}

// Host is the tray surface provided by the desktop toolkit.
type Host interface {
	SetIcon(data []byte)
	SetTooltip(text string)
	// AddMenuItem adds a context menu entry and returns its click channel.
	AddMenuItem(title, tooltip string) <-chan struct{}
	// Quit removes the tray icon and ends the event loop.
	Quit()
}

// Notifier shows a balloon notification.
type Notifier interface {
	Balloon(title, message string)
}

// Dialog shows a blocking modal dialog.
type Dialog interface {
	Show(opts dialog.Options) error
}

// Messages is the user-visible text table.
type Messages struct {
	Tooltip         string
	MenuExit        string
	MenuExitTooltip string
	BalloonTitle    string
	BalloonMessage  string
	DialogTitle     string
	DialogMessage   string
	DialogButton    string
}

// DefaultMessages returns the built-in text table.
func DefaultMessages() Messages {
	return Messages{
		Tooltip:         constants.TrayTooltip,
		MenuExit:        constants.MenuExitLabel,
		MenuExitTooltip: constants.MenuExitTooltip,
		BalloonTitle:    constants.BalloonTitle,
		BalloonMessage:  constants.BalloonMessage,
		DialogTitle:     constants.DialogTitle,
		DialogMessage:   constants.DialogMessage,
		DialogButton:    constants.DialogButton,
	}
}

// Options configures a Controller. Icon, Inhibitor, Host, Notifier and
// Dialog are required.
type Options struct {
	Icon      *icon.Icon
	Inhibitor power.Inhibitor
	Host      Host
	Notifier  Notifier
	Dialog    Dialog

	// Interval between reassertions; defaults to constants.ReassertInterval.
	Interval time.Duration

	// Messages defaults to DefaultMessages() when zero.
	Messages Messages

	Logger *logging.Logger
}

// Controller runs the tray icon, keeps the system awake while running and
// releases everything on exit.
type Controller struct {
	icon       *icon.Icon
	inhibitor  power.Inhibitor
	reasserter *power.Reasserter
	interval   time.Duration
	host       Host
	notifier   Notifier
	dialog     Dialog
	messages   Messages
	logger     *logging.Logger

	mu    sync.Mutex
	state State

	exitOnce   sync.Once
	releaseErr error
	stopClicks chan struct{}
	done       chan struct{}
}

// New creates a Controller in the Idle state.
func New(opts Options) *Controller {
	if opts.Logger == nil {
		opts.Logger = logging.Nop()
	}
	if opts.Interval <= 0 {
		opts.Interval = constants.ReassertInterval
	}
	if opts.Messages == (Messages{}) {
		opts.Messages = DefaultMessages()
	}
	if opts.Icon == nil {
		opts.Icon = icon.Default()
	}

	return &Controller{
		icon:       opts.Icon,
		inhibitor:  opts.Inhibitor,
		reasserter: power.NewReasserter(opts.Inhibitor, opts.Interval, opts.Logger.Component("reasserter")),
		interval:   opts.Interval,
		host:       opts.Host,
		notifier:   opts.Notifier,
		dialog:     opts.Dialog,
		messages:   opts.Messages,
		logger:     opts.Logger,
		stopClicks: make(chan struct{}),
		done:       make(chan struct{}),
	}
}

// Start shows the tray icon, asserts sleep inhibition once, starts the
// periodic reassertion, shows the balloon and then the startup dialog.
// It blocks until the dialog is dismissed; the Exit menu entry is live
// while the dialog is open.
func (c *Controller) Start() error {
	c.mu.Lock()
	if c.state != StateIdle {
		c.mu.Unlock()
		return ErrAlreadyStarted
	}
	c.state = StateRunning

	c.host.SetIcon(c.icon.Bytes())
	c.host.SetTooltip(c.messages.Tooltip)
	exitClicked := c.host.AddMenuItem(c.messages.MenuExit, c.messages.MenuExitTooltip)

	if err := c.inhibitor.Assert(); err != nil {
		c.logger.Warn().Err(err).Msg("Failed to assert sleep inhibition; the system may still sleep")
	} else {
		c.logger.Info().Msg("Sleep inhibition asserted")
	}
	c.reasserter.Start()
	c.mu.Unlock()

	c.logger.Info().
		Str("icon", c.iconSource()).
		Dur("interval", c.interval).
		Bool("reasserting", c.reasserter.Running()).
		Msg("Tray running")

	c.notifier.Balloon(c.messages.BalloonTitle, c.messages.BalloonMessage)

	go c.handleMenu(exitClicked)

	c.showStartupDialog()
	return nil
}

func (c *Controller) iconSource() string {
	if c.icon.IsDefault() {
		return "built-in"
	}
	return c.icon.Path()
}

func (c *Controller) handleMenu(exitClicked <-chan struct{}) {
	select {
	case <-exitClicked:
		c.logger.Info().Msg("Exit selected from tray menu")
		c.Exit()
	case <-c.stopClicks:
	}
}

func (c *Controller) showStartupDialog() {
	img, err := c.icon.Image(constants.DialogIconSize)
	if err != nil {
		c.logger.Debug().Err(err).Msg("No icon image for dialog, using system icon")
		img = nil
	}

	err = c.dialog.Show(dialog.Options{
		Title:    c.messages.DialogTitle,
		Message:  c.messages.DialogMessage,
		Button:   c.messages.DialogButton,
		Icon:     img,
		IconSize: constants.DialogIconSize,
	})
	if err != nil {
		c.logger.Warn().Err(err).Msg("Failed to show startup dialog")
	}
}

// Exit tears down and asks the host to end the event loop. Only the first
// call does anything; it returns the release error, if any. Before Start
// the host has no event loop yet, so Exit only moves to Terminated and the
// host is left alone; a later Start returns ErrAlreadyStarted.
func (c *Controller) Exit() error {
	c.teardown(true)
	return c.releaseErr
}

// Shutdown is the host's exit hook. It runs the same teardown as Exit
// without asking the host to quit again.
func (c *Controller) Shutdown() {
	c.teardown(false)
}

// teardown order: stop reasserting, release, remove the tray icon, drop the
// icon image, signal Done. Quit is only sent to a host that was started.
func (c *Controller) teardown(quitHost bool) {
	c.exitOnce.Do(func() {
		c.mu.Lock()
		wasRunning := c.state == StateRunning
		c.state = StateTerminated
		c.mu.Unlock()

		close(c.stopClicks)

		if wasRunning {
			c.reasserter.Stop()
			if err := c.inhibitor.Release(); err != nil {
				c.releaseErr = err
				c.logger.Warn().Err(err).Msg("Failed to release sleep inhibition")
			} else {
				c.logger.Info().Msg("Sleep inhibition released")
			}
		}

		if quitHost && wasRunning {
			c.host.Quit()
		}
		c.icon.Close()

		c.logger.Info().Msg("Tray terminated")
		close(c.done)
	})
}

// State returns the current lifecycle state.
func (c *Controller) State() State {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state
}

// Done is closed once teardown has finished.
func (c *Controller) Done() <-chan struct{} {
	return c.done
}
