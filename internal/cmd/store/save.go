package store

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/randalmurphal/detokenize/internal/cmd/cmdutil"
	"github.com/randalmurphal/detokenize/pkg/detokenize/source"
)

type saveOptions struct {
	name   string
	files  []string
	stdin  io.Reader // injectable for testing
	stdout io.Writer
}

// NewCmdSave creates the store save command.
func NewCmdSave() *cobra.Command {
	opts := &saveOptions{}

	cmd := &cobra.Command{
		Use:   "save <name> [file...]",
		Short: "Save value files as a named set",
		Long: `Save the entries of one or more YAML or JSON value files as a named set,
replacing any set with the same name. Entries keep file order.
Without files, the entries are read from standard input.`,
		Example: `  # Save a value file
  detok store save dev values.yml

  # Combine files
  detok store save prod common.yml prod.yml`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			g, err := cmdutil.Resolve(cmd)
			if err != nil {
				return err
			}
			opts.name = args[0]
			opts.files = args[1:]
			opts.stdin = cmd.InOrStdin()
			opts.stdout = cmd.OutOrStdout()
			return runSave(g, opts, nil)
		},
	}

	return cmd
}

func runSave(g *cmdutil.Globals, opts *saveOptions, store source.Store) error {
	var entries []source.Entry
	if len(opts.files) == 0 {
		data, err := io.ReadAll(opts.stdin)
		if err != nil {
			return fmt.Errorf("read values: %w", err)
		}
		if entries, err = source.Parse(data); err != nil {
			return err
		}
	}
	for _, path := range opts.files {
		loaded, err := source.LoadFile(path)
		if err != nil {
			return err
		}
		entries = append(entries, loaded...)
	}

	if len(entries) == 0 {
		return fmt.Errorf("no entries to save")
	}
	// Reject invalid entries before they reach the store.
	if _, err := source.Definitions(entries); err != nil {
		return err
	}

	err := g.WithStore(store, func(s source.Store) error {
		return s.Save(opts.name, entries)
	})
	if err != nil {
		return fmt.Errorf("save value set: %w", err)
	}

	renderer := g.Renderer(opts.stdout)
	if g.Output == "json" {
		return renderer.RenderJSON(map[string]any{
			"status":  "saved",
			"name":    opts.name,
			"entries": len(entries),
		})
	}
	renderer.Success(fmt.Sprintf("Saved value set %s (%d entries)", opts.name, len(entries)))
	return nil
}
