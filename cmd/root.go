package cmd

import (
	"os"

	"github.com/spf13/cobra"

	formatcmd "github.com/JaroVoltix/TestLint/cmd/format"
	initcmd "github.com/JaroVoltix/TestLint/cmd/init"
	lintcmd "github.com/JaroVoltix/TestLint/cmd/lint"
	targetscmd "github.com/JaroVoltix/TestLint/cmd/targets"
	watchcmd "github.com/JaroVoltix/TestLint/cmd/watch"
)

// version is set via build-time ldflags
var version = "dev"

// buildDate is set via build-time ldflags
var buildDate = "unknown"

// commit is set via build-time ldflags
var commit = "unknown"

// rootCmd represents the base command when called without any subcommands
var rootCmd = NewRootCommand()

// NewRootCommand returns the root command with every subcommand registered.
func NewRootCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "tuist-lint",
		Short: "Lint and format the sources of a project graph",
		Long: `tuist-lint resolves the source files of a project's build targets from its
project graph and hands them to a linter or formatter. Targets of external
dependencies are never processed.

Use 'tuist-lint --help' to see all available commands, or 'tuist-lint <command> --help'
for detailed information about a specific command.`,
		Version: version,
	}

	cmd.AddCommand(lintcmd.NewCommand())
	cmd.AddCommand(formatcmd.NewCommand())
	cmd.AddCommand(targetscmd.NewCommand())
	cmd.AddCommand(watchcmd.NewCommand())
	cmd.AddCommand(initcmd.NewCommand())

	cmd.Annotations = map[string]string{
		"buildDate": buildDate,
		"commit":    commit,
	}

	// Customize version template to show additional build info
	cmd.SetVersionTemplate(`{{with .Name}}{{printf "%s " .}}{{end}}{{printf "version %s" .Version}}
Build date: {{printf "%s" (index .Annotations "buildDate")}}
Commit: {{printf "%s" (index .Annotations "commit")}}
`)

	var configPath string
	var verbose bool
	cmd.PersistentFlags().StringVar(&configPath, "config", "", "Configuration file (default: .tuist-lint.yml in the project path)")
	cmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Log debug details to stderr")

	return cmd
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	err := rootCmd.Execute()
	if err != nil {
		os.Exit(1)
	}
}
