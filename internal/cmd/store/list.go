package store

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/randalmurphal/detokenize/internal/cmd/cmdutil"
	"github.com/randalmurphal/detokenize/pkg/detokenize/source"
)

type listOptions struct {
	stdout io.Writer
}

// NewCmdList creates the store list command.
func NewCmdList() *cobra.Command {
	opts := &listOptions{}

	cmd := &cobra.Command{
		Use:     "list",
		Aliases: []string{"ls"},
		Short:   "List stored value sets",
		Example: `  # List sets
  detok store list

  # List as JSON
  detok store list -o json`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			g, err := cmdutil.Resolve(cmd)
			if err != nil {
				return err
			}
			opts.stdout = cmd.OutOrStdout()
			return runList(g, opts, nil)
		},
	}

	return cmd
}

func runList(g *cmdutil.Globals, opts *listOptions, store source.Store) error {
	var infos []source.Info
	err := g.WithStore(store, func(s source.Store) error {
		var err error
		infos, err = s.List()
		return err
	})
	if err != nil {
		return fmt.Errorf("list value sets: %w", err)
	}

	renderer := g.Renderer(opts.stdout)
	if len(infos) == 0 && g.Output != "json" {
		renderer.RenderText("No value sets found.")
		return nil
	}
	renderer.RenderSets(infos)
	return nil
}
