package initcmd

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/JaroVoltix/TestLint/graphload"
	"github.com/JaroVoltix/TestLint/internal/config"
	"github.com/JaroVoltix/TestLint/internal/pathres"
	"github.com/JaroVoltix/TestLint/lint"
)

const configTemplate = `# tuist-lint configuration
# provider: where the project graph comes from (auto, manifest, tuist, go)
provider: %s
strict: false
quiet: false
reporter: text
linter:
  # engine: swiftlint, go or command
  engine: %s
  config_files: []
formatter:
  engine: %s
  config_files: []
`

type initOptions struct {
	path     string
	provider string
	engine   string
	force    bool
	quiet    bool
}

// NewCommand returns a new init command instance.
func NewCommand() *cobra.Command {
	opts := &initOptions{}

	cmd := &cobra.Command{
		Use:   "init",
		Short: "Create a .tuist-lint.yml configuration file",
		Long: `Create a starter .tuist-lint.yml in the project directory.

An existing file is kept unless --force is given.

Examples:
  tuist-lint init
  tuist-lint init --engine go --provider go
  tuist-lint init -p ./App --force`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runInit(cmd, opts)
		},
	}

	cmd.Flags().StringVarP(&opts.path, "path", "p", "", "Project directory (default: current directory)")
	cmd.Flags().StringVar(&opts.provider, "provider", string(graphload.KindAuto), "Graph provider (auto, manifest, tuist, go)")
	cmd.Flags().StringVar(&opts.engine, "engine", lint.EngineSwiftLint, "Lint engine (swiftlint, go, command)")
	cmd.Flags().BoolVar(&opts.force, "force", false, "Overwrite an existing configuration file")
	cmd.Flags().BoolVarP(&opts.quiet, "quiet", "q", false, "Suppress output")

	return cmd
}

func runInit(cmd *cobra.Command, opts *initOptions) error {
	if opts.engine == lint.EngineCommand {
		return fmt.Errorf("the command engine needs a linter binary; write linter.command in %s by hand", config.FileName)
	}

	resolver, err := pathres.NewPathResolver(opts.path, true)
	if err != nil {
		return err
	}
	filename := filepath.Join(resolver.BaseDir(), config.FileName)

	_, err = os.Stat(filename)
	exists := err == nil
	if err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("failed to check %s: %w", filename, err)
	}
	if exists && !opts.force {
		return fmt.Errorf("%s already exists (use --force to overwrite)", filename)
	}

	content := fmt.Sprintf(configTemplate, opts.provider, opts.engine, formatterFor(opts.engine))
	if err := validate(content); err != nil {
		return err
	}

	if err := os.WriteFile(filename, []byte(content), 0o644); err != nil {
		return fmt.Errorf("failed to write %s: %w", filename, err)
	}

	if !opts.quiet {
		verb := "Created"
		if exists {
			verb = "Overwrote"
		}
		fmt.Fprintf(cmd.OutOrStdout(), "%s %s\n", verb, filename)
	}
	return nil
}

func formatterFor(engine string) string {
	if engine == lint.EngineGo {
		return "goimports"
	}
	return "swiftformat"
}

// validate loads content through the regular loader so a bad flag never produces a broken file.
// validate checks the rendered template on its own, without .env or process
// environment overrides.
func validate(content string) error {
	cfg := config.Default()
	if err := yaml.Unmarshal([]byte(content), cfg); err != nil {
		return fmt.Errorf("failed to parse generated config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("generated config is invalid: %w", err)
	}
	return nil
}
