// Package config locates and parses the terminal client's configuration.
package config

import (
	"os"
	"path/filepath"
)

const appDir = "essaydesk"

// XDGConfigHome returns the XDG config home or a default fallback.
func XDGConfigHome() string {
	if v := os.Getenv("XDG_CONFIG_HOME"); v != "" {
		return v
	}
	home, err := os.UserHomeDir()
	if err != nil || home == "" {
		return "."
	}
	return filepath.Join(home, ".config")
}

// XDGStateHome returns the XDG state home or a default fallback.
func XDGStateHome() string {
	if v := os.Getenv("XDG_STATE_HOME"); v != "" {
		return v
	}
	home, err := os.UserHomeDir()
	if err != nil || home == "" {
		return "."
	}
	return filepath.Join(home, ".local", "state")
}

// DefaultConfigPath returns the default TOML config path.
func DefaultConfigPath() string {
	return filepath.Join(XDGConfigHome(), appDir, "config.toml")
}

// DefaultPrefsPath returns where editor preferences such as dark mode live.
func DefaultPrefsPath() string {
	return filepath.Join(XDGStateHome(), appDir, "prefs.toml")
}

// DefaultLogPath returns the log file used while the terminal UI owns the
// screen.
func DefaultLogPath() string {
	return filepath.Join(XDGStateHome(), appDir, "essaytui.log")
}
