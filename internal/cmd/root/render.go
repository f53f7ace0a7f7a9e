package root

import (
	"context"
	"fmt"
	"io"
	"os"
	"regexp"
	"strings"

	"github.com/randalmurphal/detokenize/internal/cmd/cmdutil"
	"github.com/randalmurphal/detokenize/pkg/detokenize"
	"github.com/randalmurphal/detokenize/pkg/detokenize/observability"
	"github.com/randalmurphal/detokenize/pkg/detokenize/source"
	"github.com/randalmurphal/detokenize/pkg/detokenize/template"
)

type renderOptions struct {
	valueFiles []string
	sets       []string
	literals   []string
	patterns   []string
	expandEnv  bool

	input  *string
	stdin  io.Reader // injectable for testing
	stdout io.Writer
}

func runRender(ctx context.Context, g *cmdutil.Globals, opts *renderOptions, store source.Store) error {
	input, err := readInput(opts)
	if err != nil {
		return err
	}

	list, err := collectDefinitions(g, opts, store)
	if err != nil {
		return err
	}

	if g.Settings.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, g.Settings.Timeout)
		defer cancel()
	}

	d := detokenize.New(
		detokenize.WithLogger(g.Logger),
		detokenize.WithMetrics(observability.NewMetricsRecorder()),
		detokenize.WithTracing(observability.NewSpanManager()),
	)
	out, err := d.DetokenizeAsync(ctx, input, list)
	if err != nil {
		return fmt.Errorf("render: %w", err)
	}

	return g.Renderer(opts.stdout).RenderOutput(out)
}

func readInput(opts *renderOptions) (string, error) {
	if opts.input != nil {
		return *opts.input, nil
	}
	data, err := io.ReadAll(opts.stdin)
	if err != nil {
		return "", fmt.Errorf("read input: %w", err)
	}
	return string(data), nil
}

// collectDefinitions gathers definitions in application order.
func collectDefinitions(g *cmdutil.Globals, opts *renderOptions, store source.Store) (detokenize.List, error) {
	var entries []source.Entry

	files := opts.valueFiles
	if g.Settings.Values != "" {
		files = append([]string{g.Settings.Values}, files...)
	}
	for _, path := range files {
		loaded, err := source.LoadFile(path)
		if err != nil {
			return nil, err
		}
		entries = append(entries, loaded...)
	}

	if len(opts.sets) > 0 {
		err := g.WithStore(store, func(s source.Store) error {
			for _, name := range opts.sets {
				loaded, err := s.Load(name)
				if source.IsNotFound(err) {
					return fmt.Errorf("value set %q not found", name)
				}
				if err != nil {
					return err
				}
				entries = append(entries, loaded...)
			}
			return nil
		})
		if err != nil {
			return nil, err
		}
	}

	list, err := source.Definitions(entries)
	if err != nil {
		return nil, err
	}

	for _, s := range opts.literals {
		token, value, ok := strings.Cut(s, "=")
		if !ok || token == "" {
			return nil, fmt.Errorf("invalid --set %q: expected token=value", s)
		}
		list = append(list, detokenize.Text(token, value))
	}

	for _, s := range opts.patterns {
		def, err := patternDefinition(s)
		if err != nil {
			return nil, err
		}
		list = append(list, def)
	}

	if opts.expandEnv {
		list = append(list, template.Values(environ())...)
	}

	return list, nil
}

// patternDefinition parses regex=value. The split is at the first "=".
func patternDefinition(s string) (detokenize.Definition, error) {
	expr, value, ok := strings.Cut(s, "=")
	if !ok || expr == "" {
		return detokenize.Definition{}, fmt.Errorf("invalid --pattern %q: expected regex=value", s)
	}
	re, err := regexp.Compile(expr)
	if err != nil {
		return detokenize.Definition{}, fmt.Errorf("invalid --pattern %q: %w", s, err)
	}
	if !strings.Contains(value, "$") {
		return detokenize.Regexp(re, value), nil
	}

	return detokenize.Regexp(re, func(_ *regexp.Regexp, m detokenize.Match) string {
		groups := make(map[string]any)
		for name, text := range m.Named() {
			groups[name] = text
		}
		return template.Expand(value, groups)
	}), nil
}

func environ() map[string]any {
	vars := make(map[string]any)
	for _, kv := range os.Environ() {
		if k, v, ok := strings.Cut(kv, "="); ok {
			vars[k] = v
		}
	}
	return vars
}
