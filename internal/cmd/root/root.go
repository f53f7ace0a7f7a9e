// Package root provides the root command for the detok CLI.
package root

import (
	"github.com/spf13/cobra"

	"github.com/randalmurphal/detokenize/internal/cmd/cmdutil"
	"github.com/randalmurphal/detokenize/internal/cmd/store"
	"github.com/randalmurphal/detokenize/internal/version"
)

// NewCmdRoot creates the root command for detok.
// Run without a subcommand, it renders its input.
func NewCmdRoot() *cobra.Command {
	opts := &renderOptions{}

	cmd := &cobra.Command{
		Use:   "detok [input]",
		Short: "Replace tokens in text with configured values",
		Long: `detok replaces tokens in text with values.

Definitions are applied in order: the config file's default value file,
--values files, stored --from sets, then --set and --pattern flags.
Text produced by a definition is never rescanned by later ones.

Input is the argument when given, otherwise standard input.`,
		Example: `  # Replace literal tokens
  detok --set '{user}=alice' --set '{port}=8080' 'http://{user}:{port}'

  # Apply a value file to stdin
  detok -f values.yml < template.txt

  # Translate named groups
  detok --pattern '<(?P<dir>\w+)>=/srv/${dir}' 'cd <assets>'

  # Use a stored value set
  detok store save dev values.yml
  detok --from dev < template.txt`,
		Args:          cobra.MaximumNArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		Version:       version.Version,
		RunE: func(cmd *cobra.Command, args []string) error {
			g, err := cmdutil.Resolve(cmd)
			if err != nil {
				return err
			}
			opts.stdin = cmd.InOrStdin()
			opts.stdout = cmd.OutOrStdout()
			if len(args) == 1 {
				opts.input = &args[0]
			}
			return runRender(cmd.Context(), g, opts, nil)
		},
	}

	cmdutil.AddGlobalFlags(cmd)
	cmd.Flags().StringArrayVarP(&opts.valueFiles, "values", "f", nil, "YAML or JSON value file (repeatable)")
	cmd.Flags().StringArrayVar(&opts.sets, "from", nil, "stored value set (repeatable)")
	cmd.Flags().StringArrayVar(&opts.literals, "set", nil, "literal definition token=value (repeatable)")
	cmd.Flags().StringArrayVar(&opts.patterns, "pattern", nil, "pattern definition regex=value; ${group} in value expands named groups (repeatable)")
	cmd.Flags().BoolVar(&opts.expandEnv, "env", false, "expand remaining ${VAR} and $VAR placeholders from the environment")

	cmd.SetVersionTemplate(version.Template())

	cmd.AddCommand(store.NewCmdStore())

	return cmd
}
