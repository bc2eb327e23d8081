package lint

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/JaroVoltix/TestLint/internal/app"
)

// NewCommand returns a new lint command instance.
func NewCommand() *cobra.Command {
	sel := &app.Selection{}

	cmd := &cobra.Command{
		Use:     "lint [filePaths...]",
		Aliases: []string{"swiftlint"},
		Short:   "Lint the sources of the project's targets",
		Long: `Lint the sources of the project's internal targets with the configured linter.

Without arguments every internal target is linted. External dependencies are never linted.

Examples:
  tuist-lint lint                          # all internal targets
  tuist-lint lint -t App                   # one target
  tuist-lint lint -t App --with-dependencies
  tuist-lint lint Sources/Feature          # explicit paths, no graph needed
  tuist-lint lint --strict --format json`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runLint(cmd, sel, args)
		},
	}

	sel.AddFlags(cmd)
	return cmd
}

func runLint(cmd *cobra.Command, sel *app.Selection, args []string) error {
	a, err := sel.NewApp(cmd)
	if err != nil {
		return err
	}

	reporter, err := a.Reporter(sel.Format)
	if err != nil {
		return err
	}
	cmd.SilenceUsage = true

	rep, err := a.Service.Lint(cmd.Context(), sel.LintRequest(cmd, a, args))
	if err != nil {
		return err
	}

	out, err := reporter.Lint(rep, app.ReportOptions(cmd.OutOrStdout()))
	if err != nil {
		return fmt.Errorf("failed to render report: %w", err)
	}
	if _, err := fmt.Fprint(cmd.OutOrStdout(), out); err != nil {
		return err
	}

	if rep.Failed() {
		return fmt.Errorf("%w: %d serious violations", app.ErrFailed, rep.SeriousCount())
	}
	return nil
}
