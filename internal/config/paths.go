// Package config provides filesystem locations used by the application.
// There is no runtime configuration; tunables live in internal/constants.
package config

import (
	"os"
	"path/filepath"
	"runtime"

	"github.com/autoclick/autoclick/internal/constants"
)

// LogDirectory returns the directory for the application log file.
//
// Locations:
//   - Windows: %LOCALAPPDATA%\AutoClick\logs
//   - Unix: ~/.config/autoclick/logs
func LogDirectory() string {
	if runtime.GOOS == "windows" {
		localAppData := os.Getenv("LOCALAPPDATA")
		if localAppData == "" {
			homeDir, err := os.UserHomeDir()
			if err != nil {
				return filepath.Join(os.TempDir(), "autoclick-logs")
			}
			localAppData = filepath.Join(homeDir, "AppData", "Local")
		}
		return filepath.Join(localAppData, constants.AppName, "logs")
	}

	configDir, err := os.UserConfigDir()
	if err != nil {
		homeDir, err := os.UserHomeDir()
		if err != nil {
			return filepath.Join(os.TempDir(), "autoclick-logs")
		}
		return filepath.Join(homeDir, ".config", "autoclick", "logs")
	}
	return filepath.Join(configDir, "autoclick", "logs")
}
