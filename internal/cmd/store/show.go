package store

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/randalmurphal/detokenize/internal/cmd/cmdutil"
	"github.com/randalmurphal/detokenize/pkg/detokenize/source"
)

type showOptions struct {
	name   string
	stdout io.Writer
}

// NewCmdShow creates the store show command.
func NewCmdShow() *cobra.Command {
	opts := &showOptions{}

	cmd := &cobra.Command{
		Use:   "show <name>",
		Short: "Show the entries of a value set",
		Long: `Show the entries of a value set in application order.

JSON output can be saved back with detok store save.`,
		Example: `  # Show a set
  detok store show dev

  # Copy a set
  detok store show dev -o json | detok store save dev-copy`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			g, err := cmdutil.Resolve(cmd)
			if err != nil {
				return err
			}
			opts.name = args[0]
			opts.stdout = cmd.OutOrStdout()
			return runShow(g, opts, nil)
		},
	}

	return cmd
}

func runShow(g *cmdutil.Globals, opts *showOptions, store source.Store) error {
	var entries []source.Entry
	err := g.WithStore(store, func(s source.Store) error {
		var err error
		entries, err = s.Load(opts.name)
		return err
	})
	if source.IsNotFound(err) {
		return fmt.Errorf("value set %q not found", opts.name)
	}
	if err != nil {
		return fmt.Errorf("load value set: %w", err)
	}

	return g.Renderer(opts.stdout).RenderEntries(entries)
}
