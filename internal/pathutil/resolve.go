// Package pathutil provides path resolution utilities shared by the tray
// and its resources.
package pathutil

import (
	"os"
	"path/filepath"
	"strings"
)

// ExecutableDir returns the directory of the running executable.
// Symlinks and junctions are resolved so the directory is the one the
// binary actually lives in.
func ExecutableDir() (string, error) {
	exePath, err := os.Executable()
	if err != nil {
		return "", err
	}

	if resolved, err := filepath.EvalSymlinks(exePath); err == nil {
		exePath = resolved
	}
	return filepath.Dir(exePath), nil
}

// Candidates returns the locations to try for a resource file, in order:
// the path as given (relative to the working directory), then the same
// path relative to baseDir. Blank names yield no candidates. An absolute
// name is only tried as given.
func Candidates(name, baseDir string) []string {
	if strings.TrimSpace(name) == "" {
		return nil
	}

	candidates := []string{name}
	if filepath.IsAbs(name) || baseDir == "" {
		return candidates
	}

	joined := filepath.Join(baseDir, name)
	if joined != filepath.Clean(name) {
		candidates = append(candidates, joined)
	}
	return candidates
}
