// Package store provides the value-set commands.
package store

import (
	"github.com/spf13/cobra"
)

// NewCmdStore creates the store command.
func NewCmdStore() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "store",
		Aliases: []string{"stores", "sets"},
		Short:   "Manage stored value sets",
		Long: `Commands for saving, listing, showing, and deleting named value sets.

Value sets live in a SQLite database (--store) and are applied by name
with detok --from.`,
	}

	cmd.AddCommand(NewCmdSave())
	cmd.AddCommand(NewCmdList())
	cmd.AddCommand(NewCmdShow())
	cmd.AddCommand(NewCmdDelete())

	return cmd
}
