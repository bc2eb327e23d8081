package targets

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/JaroVoltix/TestLint/internal/app"
	"github.com/JaroVoltix/TestLint/projgraph"
)

// NewCommand returns a new targets command instance.
func NewCommand() *cobra.Command {
	var path string
	var all bool

	cmd := &cobra.Command{
		Use:   "targets",
		Short: "List the targets of the project graph",
		Long: `List the internal targets of the project graph and how many sources each one has.

Examples:
  tuist-lint targets
  tuist-lint targets --all`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runTargets(cmd, path, all)
		},
	}

	cmd.Flags().StringVarP(&path, "path", "p", "", "Directory containing the project graph (default: current directory)")
	cmd.Flags().BoolVar(&all, "all", false, "Include targets of external projects")
	return cmd
}

func runTargets(cmd *cobra.Command, path string, all bool) error {
	configPath, verbose := app.GlobalFlags(cmd)
	a, err := app.New(app.Options{Root: path, ConfigPath: configPath, Verbose: verbose, Stderr: cmd.ErrOrStderr()})
	if err != nil {
		return err
	}
	cmd.SilenceUsage = true

	g, err := a.Service.Graph(a.Root)
	if err != nil {
		return err
	}

	for _, owned := range projgraph.AllTargets(g) {
		if owned.Project.IsExternal && !all {
			continue
		}

		line := fmt.Sprintf("%s (%d sources)", owned.Target.Name, len(owned.Target.Sources))
		if owned.Project.IsExternal {
			line += " [external]"
		}
		if _, err := fmt.Fprintln(cmd.OutOrStdout(), line); err != nil {
			return err
		}
	}

	return nil
}
