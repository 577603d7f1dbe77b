package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/pablor21/gondoc"
)

func newGenerateCommand(opts *rootOptions) *cobra.Command {
	var strict bool
	cmd := &cobra.Command{
		Use:   "generate [packages...]",
		Short: "Generate documentation accessors",
		Long:  "Resolve the directives of the given packages (default: the configured ones) and write one generated file per package.",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := opts.loadConfig(cmd, args)
			if err != nil {
				return err
			}
			res, err := gondoc.ProcessWithContext(cmd.Context(), newContext(cmd, cfg))
			if err != nil {
				return err
			}
			for _, path := range gondoc.Generate(res, cfg) {
				fmt.Fprintln(cmd.OutOrStdout(), path)
			}
			return printDiagnostics(cmd, cfg, res, strict)
		},
	}
	cmd.Flags().BoolVar(&strict, "warnings-as-errors", false, "fail when warnings are reported")
	return cmd
}
