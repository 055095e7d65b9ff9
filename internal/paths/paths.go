// Package paths resolves the per-user directories photostamp keeps its
// configuration and logs in.
package paths

import (
	"os"
	"path/filepath"
)

// ConfigDir returns the photostamp config directory, ~/.config/photostamp
// on Linux (os.UserConfigDir elsewhere).
func ConfigDir() (string, error) {
	base, err := os.UserConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(base, "photostamp"), nil
}

// ConfigPath returns the path of the TOML config file.
func ConfigPath() (string, error) {
	dir, err := ConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "config.toml"), nil
}

// LogPath returns the default log file path.
func LogPath() (string, error) {
	dir, err := ConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "logs", "photostamp.log"), nil
}
