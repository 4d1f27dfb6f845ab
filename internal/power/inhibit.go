// Package power keeps the system and display awake.
//
// The platform signal is advisory and can decay, so it is asserted once at
// startup and then refreshed by a Reasserter until shutdown.
package power

import "errors"

// ErrUnsupported is returned on platforms without a sleep-inhibition call.
var ErrUnsupported = errors.New("sleep inhibition is not supported on this platform")

// Execution-state flags for SetThreadExecutionState.
const (
	esContinuous      = 0x80000000
	esSystemRequired  = 0x00000001
	esDisplayRequired = 0x00000002
)

// Inhibitor marks the system busy so it neither sleeps nor dims the display.
// Both operations are idempotent.
type Inhibitor interface {
	// Assert sets the continuous, system-required and display-required flags.
	Assert() error

	// Release clears the system and display flags, leaving only the
	// continuous marker, which on its own keeps nothing awake.
	Release() error
}

// New returns the Inhibitor for the current platform.
func New() Inhibitor {
	return newInhibitor()
}
