package config

import (
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"
)

// Settings holds the resolved detok settings.
type Settings struct {
	// Store is the SQLite value-set database path.
	Store string
	// Timeout bounds the wait for deferred values.
	Timeout time.Duration
	// LogLevel is the minimum level written to stderr.
	LogLevel slog.Level
	// Values is a default value file applied before other definitions.
	Values string
	// NoColor disables colored output.
	NoColor bool
}

// Default settings.
const (
	DefaultTimeout  = 30 * time.Second
	DefaultLogLevel = slog.LevelWarn
)

// DefaultStorePath returns the default value-set database location.
func DefaultStorePath() string {
	if dir := os.Getenv("XDG_DATA_HOME"); dir != "" {
		return filepath.Join(dir, "detok", "values.db")
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "detok.db"
	}
	return filepath.Join(home, ".local", "share", "detok", "values.db")
}

// SettingsFrom resolves Settings from cfg, filling defaults.
// A leading "~/" in store and values paths expands to the home directory.
func SettingsFrom(cfg Config) Settings {
	return Settings{
		Store:    expandHome(cfg.String("store", DefaultStorePath())),
		Timeout:  cfg.Duration("timeout", DefaultTimeout),
		LogLevel: cfg.Level("log_level", DefaultLogLevel),
		Values:   expandHome(cfg.String("values", "")),
		NoColor:  cfg.Bool("no_color", false),
	}
}

func expandHome(path string) string {
	if !strings.HasPrefix(path, "~/") {
		return path
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return path
	}
	return filepath.Join(home, path[2:])
}
