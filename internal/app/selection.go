package app

import (
	"github.com/spf13/cobra"

	"github.com/JaroVoltix/TestLint/service"
)

// DefaultPaths is used when no positional paths are given.
var DefaultPaths = []string{"."}

// Selection holds the flags that choose which sources a command processes.
type Selection struct {
	Target           string
	Strict           bool
	Quiet            bool
	Path             string
	WithDependencies bool
	Format           string
}

// AddFlags registers the selection flags on cmd.
func (s *Selection) AddFlags(cmd *cobra.Command) {
	cmd.Flags().StringVarP(&s.Target, "target", "t", "", "Target to process (default: all internal targets)")
	cmd.Flags().BoolVarP(&s.Strict, "strict", "s", false, "Upgrade warnings to serious violations")
	cmd.Flags().BoolVarP(&s.Quiet, "quiet", "q", false, "Only print violations and errors")
	cmd.Flags().StringVarP(&s.Path, "path", "p", "", "Directory containing the project graph (default: current directory)")
	cmd.Flags().BoolVar(&s.WithDependencies, "with-dependencies", false, "Include the internal targets the target depends on")
	cmd.Flags().StringVarP(&s.Format, "format", "f", "", "Output format (text, json)")
}

// LintRequest builds the service request for a lint run.
func (s *Selection) LintRequest(cmd *cobra.Command, a *App, args []string) service.Request {
	return s.request(cmd, a, args, a.LintConfigurationFiles())
}

// FormatRequest builds the service request for a format run.
func (s *Selection) FormatRequest(cmd *cobra.Command, a *App, args []string) service.Request {
	return s.request(cmd, a, args, a.FormatConfigurationFiles())
}

// request builds the service request. Paths typed by the user select explicit mode;
// otherwise the default paths are carried but the graph decides what is processed.
// A flag given on the command line replaces the configured value, in both directions.
func (s *Selection) request(cmd *cobra.Command, a *App, args []string, configurationFiles []string) service.Request {
	explicit := len(args) > 0
	paths := args
	if !explicit {
		paths = DefaultPaths
	}

	return service.Request{
		Root:               a.Root,
		TargetName:         s.Target,
		Paths:              paths,
		ExplicitPaths:      explicit,
		WithDependencies:   s.WithDependencies,
		Strict:             flagOrConfig(cmd, "strict", s.Strict, a.Config.Strict),
		Quiet:              flagOrConfig(cmd, "quiet", s.Quiet, a.Config.Quiet),
		ConfigurationFiles: configurationFiles,
	}
}

// NewApp builds the App for a command using the selection and global flags.
func (s *Selection) NewApp(cmd *cobra.Command) (*App, error) {
	configPath, verbose := GlobalFlags(cmd)
	return New(Options{
		Root:       s.Path,
		ConfigPath: configPath,
		Verbose:    verbose,
		Quiet:      s.Quiet,
		QuietSet:   flagChanged(cmd, "quiet"),
		Stderr:     cmd.ErrOrStderr(),
	})
}

func flagOrConfig(cmd *cobra.Command, name string, flagValue, configValue bool) bool {
	if flagChanged(cmd, name) {
		return flagValue
	}
	return configValue
}

func flagChanged(cmd *cobra.Command, name string) bool {
	return cmd != nil && cmd.Flags().Changed(name)
}
