package store

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/randalmurphal/detokenize/internal/cmd/cmdutil"
	"github.com/randalmurphal/detokenize/pkg/detokenize/source"
)

type deleteOptions struct {
	name   string
	stdout io.Writer
}

// NewCmdDelete creates the store delete command.
func NewCmdDelete() *cobra.Command {
	opts := &deleteOptions{}

	cmd := &cobra.Command{
		Use:     "delete <name>",
		Aliases: []string{"rm"},
		Short:   "Delete a value set",
		Example: `  # Delete a set
  detok store delete dev`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			g, err := cmdutil.Resolve(cmd)
			if err != nil {
				return err
			}
			opts.name = args[0]
			opts.stdout = cmd.OutOrStdout()
			return runDelete(g, opts, nil)
		},
	}

	return cmd
}

func runDelete(g *cmdutil.Globals, opts *deleteOptions, store source.Store) error {
	err := g.WithStore(store, func(s source.Store) error {
		if _, err := s.Load(opts.name); err != nil {
			return err
		}
		return s.Delete(opts.name)
	})
	if source.IsNotFound(err) {
		return fmt.Errorf("value set %q not found", opts.name)
	}
	if err != nil {
		return fmt.Errorf("delete value set: %w", err)
	}

	renderer := g.Renderer(opts.stdout)
	if g.Output == "json" {
		return renderer.RenderJSON(map[string]string{
			"status": "deleted",
			"name":   opts.name,
		})
	}
	renderer.Success("Deleted value set " + opts.name)
	return nil
}
