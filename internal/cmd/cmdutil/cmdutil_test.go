package cmdutil

import (
	"bytes"
	"errors"
	"log/slog"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/randalmurphal/detokenize/pkg/detokenize/config"
	"github.com/randalmurphal/detokenize/pkg/detokenize/source"
)

func newTestCommand(t *testing.T, args ...string) *cobra.Command {
	t.Helper()
	cmd := &cobra.Command{Use: "detok"}
	AddGlobalFlags(cmd)
	require.NoError(t, cmd.ParseFlags(args))
	return cmd
}

func isolateConfig(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", dir)
	t.Setenv("XDG_DATA_HOME", dir)
	return dir
}

func TestResolve_Defaults(t *testing.T) {
	dir := isolateConfig(t)

	g, err := Resolve(newTestCommand(t))
	require.NoError(t, err)

	assert.Equal(t, filepath.Join(dir, "detok", "values.db"), g.Settings.Store)
	assert.Equal(t, config.DefaultTimeout, g.Settings.Timeout)
	assert.Equal(t, config.DefaultLogLevel, g.Settings.LogLevel)
	assert.Equal(t, "table", g.Output)
	assert.NotNil(t, g.Logger)
}

func TestResolve_ConfigFile(t *testing.T) {
	dir := isolateConfig(t)
	require.NoError(t, os.MkdirAll(filepath.Join(dir, "detok"), 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "detok", "config.yml"), []byte(`
store: /tmp/from-config.db
timeout: 5s
log_level: debug
values: /tmp/values.yml
`), 0o600))

	g, err := Resolve(newTestCommand(t))
	require.NoError(t, err)

	assert.Equal(t, "/tmp/from-config.db", g.Settings.Store)
	assert.Equal(t, 5*time.Second, g.Settings.Timeout)
	assert.Equal(t, slog.LevelDebug, g.Settings.LogLevel)
	assert.Equal(t, "/tmp/values.yml", g.Settings.Values)
}

func TestResolve_FlagsOverrideConfig(t *testing.T) {
	isolateConfig(t)
	path := filepath.Join(t.TempDir(), "custom.yml")
	require.NoError(t, os.WriteFile(path, []byte("store: /tmp/a.db\ntimeout: 5s\n"), 0o600))

	g, err := Resolve(newTestCommand(t,
		"--config", path,
		"--store", "/tmp/b.db",
		"--timeout", "2s",
		"--log-level", "error",
		"--no-color",
		"-o", "json",
	))
	require.NoError(t, err)

	assert.Equal(t, "/tmp/b.db", g.Settings.Store)
	assert.Equal(t, 2*time.Second, g.Settings.Timeout)
	assert.Equal(t, slog.LevelError, g.Settings.LogLevel)
	assert.True(t, g.Settings.NoColor)
	assert.Equal(t, "json", g.Output)
}

func TestResolve_Verbose(t *testing.T) {
	isolateConfig(t)

	g, err := Resolve(newTestCommand(t, "-v", "--log-level", "error"))
	require.NoError(t, err)
	assert.Equal(t, slog.LevelDebug, g.Settings.LogLevel)
}

func TestResolve_Errors(t *testing.T) {
	isolateConfig(t)

	tests := []struct {
		name    string
		args    []string
		message string
	}{
		{"missing explicit config", []string{"--config", "/nonexistent/detok.yml"}, "load config"},
		{"bad log level", []string{"--log-level", "loud"}, "invalid --log-level"},
		{"bad output", []string{"-o", "xml"}, "invalid output format"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Resolve(newTestCommand(t, tt.args...))
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.message)
		})
	}
}

func TestNewLogger(t *testing.T) {
	var buf bytes.Buffer
	logger := NewLogger(&buf, slog.LevelInfo)

	logger.Debug("hidden")
	logger.Info("shown", "key", "value")

	assert.NotContains(t, buf.String(), "hidden")
	assert.Contains(t, buf.String(), "key=value")
}

func TestWithStore_UsesGivenStore(t *testing.T) {
	g := &Globals{Settings: config.Settings{Store: "/nonexistent/never-opened.db"}}
	mem := source.NewMemoryStore()

	var got source.Store
	err := g.WithStore(mem, func(s source.Store) error {
		got = s
		return nil
	})
	require.NoError(t, err)
	assert.Same(t, mem, got)
}

func TestWithStore_OpensAndClosesSQLite(t *testing.T) {
	path := filepath.Join(t.TempDir(), "data", "values.db")
	g := &Globals{Settings: config.Settings{Store: path}}

	var opened source.Store
	err := g.WithStore(nil, func(s source.Store) error {
		opened = s
		return s.Save("dev", []source.Entry{{Token: "{a}", Value: "A"}})
	})
	require.NoError(t, err)
	assert.FileExists(t, path)

	_, err = opened.List()
	assert.ErrorIs(t, err, source.ErrStoreClosed)
}

func TestWithStore_PropagatesError(t *testing.T) {
	g := &Globals{}
	boom := errors.New("boom")

	err := g.WithStore(source.NewMemoryStore(), func(source.Store) error { return boom })
	assert.ErrorIs(t, err, boom)
}
