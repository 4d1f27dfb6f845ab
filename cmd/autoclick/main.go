// AutoClick - keeps Windows awake from the system tray.
//
// Build for Windows:
//
//	GOOS=windows go build -ldflags "-H=windowsgui" ./cmd/autoclick
//
// Features:
//   - Asserts the "system and display required" execution state at startup
//     and refreshes it every 60 seconds
//   - Tray icon with tooltip and an Exit menu entry that releases the state
//   - One-time balloon notification and startup dialog
package main

import (
	"fmt"
	"os"

	"github.com/autoclick/autoclick/internal/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
