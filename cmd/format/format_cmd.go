package format

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/JaroVoltix/TestLint/internal/app"
)

// NewCommand returns a new format command instance.
func NewCommand() *cobra.Command {
	sel := &app.Selection{}
	var check bool

	cmd := &cobra.Command{
		Use:     "format [filePaths...]",
		Aliases: []string{"swiftformat"},
		Short:   "Format the sources of the project's targets",
		Long: `Format the sources of the project's internal targets with the configured formatter.

Use --lint to only report files that need formatting.

Examples:
  tuist-lint format
  tuist-lint format -t App --lint
  tuist-lint format Sources/Feature/View.swift`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runFormat(cmd, sel, check, args)
		},
	}

	sel.AddFlags(cmd)
	cmd.Flags().BoolVar(&check, "lint", false, "Report files that need formatting without changing them")
	return cmd
}

func runFormat(cmd *cobra.Command, sel *app.Selection, check bool, args []string) error {
	a, err := sel.NewApp(cmd)
	if err != nil {
		return err
	}

	reporter, err := a.Reporter(sel.Format)
	if err != nil {
		return err
	}
	cmd.SilenceUsage = true

	result, err := a.Service.Format(cmd.Context(), sel.FormatRequest(cmd, a, args), check)
	if err != nil {
		return err
	}

	out, err := reporter.Format(result, app.ReportOptions(cmd.OutOrStdout()))
	if err != nil {
		return fmt.Errorf("failed to render report: %w", err)
	}
	if _, err := fmt.Fprint(cmd.OutOrStdout(), out); err != nil {
		return err
	}

	if result.Failed() {
		return fmt.Errorf("%w: %d files require formatting", app.ErrFailed, len(result.Changes))
	}
	return nil
}
