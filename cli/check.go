package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/pablor21/gondoc"
)

func newCheckCommand(opts *rootOptions) *cobra.Command {
	var strict, noStale bool
	cmd := &cobra.Command{
		Use:   "check [packages...]",
		Short: "Report directive problems without writing files",
		Long:  "Resolve the directives of the given packages and fail when diagnostics are reported or a generated file is out of date.",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := opts.loadConfig(cmd, args)
			if err != nil {
				return err
			}
			res, err := gondoc.ProcessWithContext(cmd.Context(), newContext(cmd, cfg))
			if err != nil {
				return err
			}

			var stale []string
			if !noStale {
				stale = gondoc.Stale(res, cfg)
			}
			failed := printDiagnostics(cmd, cfg, res, strict)
			for _, dir := range stale {
				fmt.Fprintf(cmd.ErrOrStderr(), "%s: generated documentation is out of date; run gondoc generate\n", dir)
			}
			if len(stale) > 0 {
				return ErrFailed
			}
			return failed
		},
	}
	cmd.Flags().BoolVar(&strict, "warnings-as-errors", false, "fail when warnings are reported")
	cmd.Flags().BoolVar(&noStale, "no-stale", false, "skip the comparison with generated files")
	return cmd
}
