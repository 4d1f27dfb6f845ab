// Package cli provides the command entry point for autoclick.
package cli

import (
	"errors"
	"os"
	"os/signal"
	"runtime"
	"syscall"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/autoclick/autoclick/internal/config"
	"github.com/autoclick/autoclick/internal/constants"
	"github.com/autoclick/autoclick/internal/dialog"
	"github.com/autoclick/autoclick/internal/icon"
	"github.com/autoclick/autoclick/internal/logging"
	"github.com/autoclick/autoclick/internal/notify"
	"github.com/autoclick/autoclick/internal/power"
	"github.com/autoclick/autoclick/internal/tray"
	"github.com/autoclick/autoclick/internal/version"
)

// ErrUnsupportedOS is returned when the tray is started outside Windows.
var ErrUnsupportedOS = errors.New("autoclick is only supported on Windows")

var verbose bool

// NewRootCmd creates the root command. Running it starts the tray and
// blocks until Exit is chosen from the tray menu.
func NewRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "autoclick",
		Short: "Keep Windows awake from the system tray",
		Long: `AutoClick ` + version.Version + ` - Built: ` + version.BuildTime + `
Keeps the system and display awake while running. Choose "` + constants.MenuExitLabel + `"
from the tray icon menu to quit and let the machine sleep again.

The icon is read from ` + constants.IconFile + ` in the working directory or next to
the executable; a built-in icon is used otherwise.`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			if verbose {
				logging.SetGlobalLevel(zerolog.DebugLevel)
			}
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return runTray()
		},
	}

	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Verbose output (shows debug messages)")
	rootCmd.Version = version.Version + " (" + version.BuildTime + ")"
	rootCmd.CompletionOptions.DisableDefaultCmd = true

	return rootCmd
}

// Execute runs the root command.
func Execute() error {
	return NewRootCmd().Execute()
}

func runTray() error {
	if runtime.GOOS != "windows" {
		return ErrUnsupportedOS
	}

	logger := logging.NewAppLogger(config.LogDirectory())
	defer logger.Close()

	logger.Info().Str("version", version.Version).Msg("AutoClick starting")

	ic := icon.Load(constants.IconFile, logger.Component("icon"))
	c := tray.New(tray.Options{
		Icon:      ic,
		Inhibitor: power.New(),
		Host:      tray.NewSystrayHost(),
		Notifier:  notify.NewNotifier(ic.Path(), logger.Component("notify")),
		Dialog:    dialog.New(logger.Component("dialog")),
		Interval:  constants.ReassertInterval,
		Logger:    logger.Component("tray"),
	})

	// Signals take the same teardown path as the Exit menu entry.
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
	defer signal.Stop(sigChan)

	go func() {
		select {
		case sig := <-sigChan:
			logger.Info().Str("signal", sig.String()).Msg("Received signal, exiting")
			c.Exit()
		case <-c.Done():
		}
	}()

	tray.Run(c)
	logger.Info().Msg("AutoClick stopped")
	return nil
}
