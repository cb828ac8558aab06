package config

import (
	"fmt"
	"os"
	"time"

	"github.com/BurntSushi/toml"
)

// FileConfig represents the TOML configuration file.
type FileConfig struct {
	Client ClientConfig `toml:"client"`
}

// ClientConfig maps settings for talking to the essay server.
type ClientConfig struct {
	Server  *string   `toml:"server"`
	Timeout *Duration `toml:"timeout"`
	Prefs   *string   `toml:"prefs"`
}

// Duration decodes TOML strings such as "90s" or "2m".
type Duration struct {
	time.Duration
}

func (d *Duration) UnmarshalText(text []byte) error {
	v, err := time.ParseDuration(string(text))
	if err != nil {
		return fmt.Errorf("invalid duration %q: %w", text, err)
	}
	d.Duration = v
	return nil
}

// LoadConfig reads a TOML config from the given path. Missing file is not an error.
func LoadConfig(path string) (FileConfig, error) {
	if path == "" {
		return FileConfig{}, fmt.Errorf("config path is empty")
	}
	if _, err := os.Stat(path); err != nil {
		if os.IsNotExist(err) {
			return FileConfig{}, nil
		}
		return FileConfig{}, fmt.Errorf("failed to stat config: %w", err)
	}
	var cfg FileConfig
	if _, err := toml.DecodeFile(path, &cfg); err != nil {
		return FileConfig{}, fmt.Errorf("failed to decode config: %w", err)
	}
	return cfg, nil
}

// DefaultTemplate is written by `essaytui config` when no file exists yet.
func DefaultTemplate() string {
	return `[client]
# Base URL of the essay server.
server = "http://localhost:8080"

# How long to wait for a correction or save.
timeout = "2m"

# Preference file holding dark mode; defaults to the XDG state directory.
# prefs = "~/.local/state/essaydesk/prefs.toml"
`
}
