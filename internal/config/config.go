// Package config resolves runtime settings from defaults, an optional TOML
// file, WEEKLY_* environment variables and command-line flags, in that order.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

const (
	MinColumnWidth     = 14
	MaxColumnWidth     = 60
	DefaultColumnWidth = 24
	DefaultLogLevel    = "info"
)

var ErrInvalidConfig = errors.New("config: invalid configuration")

// Config holds the user-facing settings.
type Config struct {
	Mouse       bool      `toml:"mouse"`
	AltScreen   bool      `toml:"alt_screen"`
	ColumnWidth int       `toml:"column_width"`
	LogFile     string    `toml:"log_file"`
	LogLevel    string    `toml:"log_level"`
	NoColor     bool      `toml:"no_color"`
	Keys        KeyConfig `toml:"keys"`
}

// KeyConfig names the keys for week navigation and global actions.
type KeyConfig struct {
	PrevWeek    string `toml:"prev_week"`
	NextWeek    string `toml:"next_week"`
	CurrentWeek string `toml:"current_week"`
	Help        string `toml:"help"`
	Quit        string `toml:"quit"`
}

func Default() Config {
	return Config{
		Mouse:       true,
		AltScreen:   true,
		ColumnWidth: DefaultColumnWidth,
		LogLevel:    DefaultLogLevel,
		Keys: KeyConfig{
			PrevWeek:    "[",
			NextWeek:    "]",
			CurrentWeek: "t",
			Help:        "?",
			Quit:        "q",
		},
	}
}

// DefaultPath is where the config file is looked up when no path is given.
func DefaultPath() string {
	dir, err := os.UserConfigDir()
	if err != nil || dir == "" {
		return ""
	}
	return filepath.Join(dir, "weekly", "config.toml")
}

func (c Config) Validate() error {
	if c.ColumnWidth < MinColumnWidth || c.ColumnWidth > MaxColumnWidth {
		return fmt.Errorf("%w: column_width %d outside %d..%d", ErrInvalidConfig, c.ColumnWidth, MinColumnWidth, MaxColumnWidth)
	}
	switch strings.ToLower(c.LogLevel) {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("%w: unknown log_level %q", ErrInvalidConfig, c.LogLevel)
	}
	seen := make(map[string]string)
	for name, key := range map[string]string{
		"prev_week":    c.Keys.PrevWeek,
		"next_week":    c.Keys.NextWeek,
		"current_week": c.Keys.CurrentWeek,
		"help":         c.Keys.Help,
		"quit":         c.Keys.Quit,
	} {
		if strings.TrimSpace(key) == "" {
			return fmt.Errorf("%w: keys.%s is empty", ErrInvalidConfig, name)
		}
		if other, dup := seen[key]; dup {
			return fmt.Errorf("%w: keys.%s and keys.%s both use %q", ErrInvalidConfig, name, other, key)
		}
		seen[key] = name
	}
	return nil
}
