package runtimepath

import (
	"fmt"
	"os"
	"path/filepath"
)

// StateDir returns the persistent state directory, honoring
// XDG_STATE_HOME and defaulting to ~/.local/state/saftbar.
func StateDir() (string, error) {
	if xdg := os.Getenv("XDG_STATE_HOME"); xdg != "" {
		return filepath.Join(xdg, "saftbar"), nil
	}
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get home directory: %w", err)
	}
	return filepath.Join(homeDir, ".local", "state", "saftbar"), nil
}

// DefaultLogPath returns the log file location used when the config names
// none but file logging is requested.
func DefaultLogPath() (string, error) {
	stateDir, err := StateDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(stateDir, "saftbar.log"), nil
}
