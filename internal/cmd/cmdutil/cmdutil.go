// Package cmdutil resolves the settings shared by detok commands.
package cmdutil

import (
	"fmt"
	"io"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/randalmurphal/detokenize/internal/view"
	"github.com/randalmurphal/detokenize/pkg/detokenize/config"
	"github.com/randalmurphal/detokenize/pkg/detokenize/source"
)

// Globals holds settings resolved from the config file and global flags.
type Globals struct {
	Settings config.Settings
	Output   string
	Logger   *slog.Logger
}

// AddGlobalFlags registers the persistent flags on the root command.
func AddGlobalFlags(cmd *cobra.Command) {
	flags := cmd.PersistentFlags()
	flags.StringP("config", "c", "", "config file (default: ~/.config/detok/config.yml)")
	flags.StringP("output", "o", "table", "output format: table, json, plain")
	flags.Bool("no-color", false, "disable colored output")
	flags.String("store", "", "value-set database (default: ~/.local/share/detok/values.db)")
	flags.Duration("timeout", config.DefaultTimeout, "maximum wait for deferred values")
	flags.String("log-level", "", "log level: debug, info, warn, error (default: warn)")
	flags.BoolP("verbose", "v", false, "log at debug level")
}

// Resolve loads the config file and applies flag overrides.
// Flags only override the file when set explicitly.
func Resolve(cmd *cobra.Command) (*Globals, error) {
	flags := cmd.Flags()

	path, _ := flags.GetString("config")
	var cfg config.Config
	var err error
	if path != "" {
		cfg, err = config.FromFile(path)
	} else {
		cfg, err = config.LoadOptional(config.DefaultPath())
	}
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}

	s := config.SettingsFrom(cfg)
	if flags.Changed("store") {
		s.Store, _ = flags.GetString("store")
	}
	if flags.Changed("timeout") {
		s.Timeout, _ = flags.GetDuration("timeout")
	}
	if flags.Changed("no-color") {
		s.NoColor, _ = flags.GetBool("no-color")
	}
	if level, _ := flags.GetString("log-level"); level != "" {
		if err := s.LogLevel.UnmarshalText([]byte(level)); err != nil {
			return nil, fmt.Errorf("invalid --log-level %q", level)
		}
	}
	if verbose, _ := flags.GetBool("verbose"); verbose {
		s.LogLevel = slog.LevelDebug
	}

	output, _ := flags.GetString("output")
	if err := view.ValidateFormat(output); err != nil {
		return nil, err
	}

	return &Globals{
		Settings: s,
		Output:   output,
		Logger:   NewLogger(cmd.ErrOrStderr(), s.LogLevel),
	}, nil
}

// NewLogger returns a text logger writing to w at level.
func NewLogger(w io.Writer, level slog.Level) *slog.Logger {
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: level}))
}

// Renderer returns a renderer for the resolved output format writing to w.
func (g *Globals) Renderer(w io.Writer) *view.Renderer {
	r := view.NewRenderer(view.Format(g.Output), g.Settings.NoColor)
	r.SetWriter(w)
	return r
}

// WithStore calls fn with store, or with the configured SQLite store when
// store is nil. A store opened here is closed when fn returns.
func (g *Globals) WithStore(store source.Store, fn func(source.Store) error) error {
	if store != nil {
		return fn(store)
	}

	opened, err := source.OpenSQLiteStore(g.Settings.Store)
	if err != nil {
		return fmt.Errorf("open value store: %w", err)
	}
	defer opened.Close()

	if g.Logger != nil {
		g.Logger.Debug("value store opened", "path", g.Settings.Store)
	}
	return fn(opened)
}
