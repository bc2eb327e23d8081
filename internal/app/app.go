// Package app assembles the service, logger and reporter from configuration and command flags.
package app

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"

	"github.com/JaroVoltix/TestLint/format"
	"github.com/JaroVoltix/TestLint/graphload"
	"github.com/JaroVoltix/TestLint/internal/config"
	"github.com/JaroVoltix/TestLint/internal/logging"
	"github.com/JaroVoltix/TestLint/internal/pathres"
	"github.com/JaroVoltix/TestLint/lint"
	"github.com/JaroVoltix/TestLint/report"
	"github.com/JaroVoltix/TestLint/service"
)

// ErrFailed is returned by commands whose run completed but did not pass.
var ErrFailed = errors.New("check failed")

// Options configures New.
type Options struct {
	// Root is the graph root; empty means the working directory.
	Root       string
	ConfigPath string
	Verbose    bool
	// Quiet replaces the configured quiet setting when QuietSet is true.
	Quiet    bool
	QuietSet bool
	Stderr   io.Writer
}

// App holds everything one command invocation needs.
type App struct {
	Root    string
	Config  *config.Config
	Service *service.Service
	Logger  *slog.Logger
}

// New loads the configuration under opts.Root and builds the engines it selects.
func New(opts Options) (*App, error) {
	resolver, err := pathres.NewPathResolver(opts.Root, true)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve project path: %w", err)
	}
	root := resolver.BaseDir()

	cfg, err := config.Load(root, opts.ConfigPath)
	if err != nil {
		return nil, err
	}

	stderr := opts.Stderr
	if stderr == nil {
		stderr = os.Stderr
	}
	quiet := cfg.Quiet
	if opts.QuietSet {
		quiet = opts.Quiet
	}
	logger := logging.New(stderr, logging.Options{Verbose: opts.Verbose, Quiet: quiet})

	providerOpts := graphload.Options{Timeout: cfg.Timeout}
	if cfg.Manifest != "" {
		providerOpts.ManifestNames = []string{cfg.Manifest}
	}
	provider, err := graphload.Discover(graphload.Kind(cfg.Provider), providerOpts)
	if err != nil {
		return nil, err
	}

	linter, err := lint.New(cfg.Linter.Engine, lint.EngineOptions{
		Binary:             cfg.Linter.Command,
		Args:               cfg.Linter.Args,
		StrictArgs:         cfg.Linter.StrictArgs,
		QuietArgs:          cfg.Linter.QuietArgs,
		ConfigFlag:         cfg.Linter.ConfigFlag,
		ViolationExitCodes: cfg.Linter.ViolationExitCodes,
		Timeout:            cfg.Timeout,
	})
	if err != nil {
		return nil, err
	}

	formatter, err := format.New(cfg.Formatter.Engine, format.EngineOptions{
		Binary:      cfg.Formatter.Command,
		Timeout:     cfg.Timeout,
		LocalPrefix: cfg.Formatter.LocalPrefix,
	})
	if err != nil {
		return nil, err
	}

	logger.Debug("configuration loaded",
		"root", root,
		"provider", cfg.Provider,
		"linter", cfg.Linter.Engine,
		"formatter", cfg.Formatter.Engine)

	return &App{
		Root:    root,
		Config:  cfg,
		Service: service.New(provider, linter, formatter, logger),
		Logger:  logger,
	}, nil
}

// LintConfigurationFiles returns the linter configuration files, relative ones resolved against the root.
func (a *App) LintConfigurationFiles() []string {
	return a.resolveFiles(a.Config.Linter.ConfigFiles)
}

// FormatConfigurationFiles returns the formatter configuration files, relative ones resolved against the root.
func (a *App) FormatConfigurationFiles() []string {
	return a.resolveFiles(a.Config.Formatter.ConfigFiles)
}

func (a *App) resolveFiles(configured []string) []string {
	files := make([]string, 0, len(configured))
	for _, f := range configured {
		if !filepath.IsAbs(f) {
			f = filepath.Join(a.Root, f)
		}
		files = append(files, f)
	}
	return files
}

// Reporter picks the output format: the flag when given, the configured one otherwise.
func (a *App) Reporter(flagValue string) (report.Reporter, error) {
	name := flagValue
	if name == "" {
		name = a.Config.Reporter
	}
	if name == "" {
		name = report.OutputFormatText.String()
	}
	return report.NewReporter(name)
}

// ReportOptions renders paths relative to the working directory and colors terminals.
func ReportOptions(w io.Writer) report.Options {
	baseDir, err := os.Getwd()
	if err != nil {
		baseDir = ""
	}
	return report.Options{Color: IsTerminal(w), BaseDir: baseDir}
}

// IsTerminal reports whether w is an interactive terminal.
func IsTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}

// GlobalFlags reads the root persistent flags, tolerating commands run without a root.
func GlobalFlags(cmd *cobra.Command) (configPath string, verbose bool) {
	if f := cmd.Flags().Lookup("config"); f != nil {
		configPath = f.Value.String()
	}
	if f := cmd.Flags().Lookup("verbose"); f != nil {
		verbose = f.Value.String() == "true"
	}
	return configPath, verbose
}
