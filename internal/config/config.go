// Package config loads the project configuration file and its environment overrides.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// FileName is the configuration file looked up at the graph root.
const FileName = ".tuist-lint.yml"

// EnvFileName holds optional overrides next to the configuration file.
const EnvFileName = ".env"

// Environment variables that override the configuration file.
const (
	EnvStrict   = "TUIST_LINT_STRICT"
	EnvQuiet    = "TUIST_LINT_QUIET"
	EnvEngine   = "TUIST_LINT_ENGINE"
	EnvProvider = "TUIST_LINT_PROVIDER"
)

// Config is the decoded configuration.
type Config struct {
	Strict    bool            `yaml:"strict"`
	Quiet     bool            `yaml:"quiet"`
	Provider  string          `yaml:"provider" validate:"omitempty,oneof=auto manifest tuist go"`
	Manifest  string          `yaml:"manifest"`
	Reporter  string          `yaml:"reporter" validate:"omitempty,oneof=text json"`
	Timeout   time.Duration   `yaml:"timeout" validate:"gte=0"`
	Linter    LinterConfig    `yaml:"linter"`
	Formatter FormatterConfig `yaml:"formatter"`
}

// LinterConfig selects and configures the linting engine.
type LinterConfig struct {
	Engine             string   `yaml:"engine" validate:"omitempty,oneof=swiftlint go command"`
	Command            string   `yaml:"command" validate:"required_if=Engine command"`
	Args               []string `yaml:"args"`
	StrictArgs         []string `yaml:"strict_args"`
	QuietArgs          []string `yaml:"quiet_args"`
	ConfigFlag         string   `yaml:"config_flag"`
	ConfigFiles        []string `yaml:"config_files"`
	ViolationExitCodes []int    `yaml:"violation_exit_codes" validate:"dive,gte=0,lte=255"`
}

// FormatterConfig selects and configures the formatting engine.
type FormatterConfig struct {
	Engine      string   `yaml:"engine" validate:"omitempty,oneof=swiftformat goimports"`
	Command     string   `yaml:"command"`
	ConfigFiles []string `yaml:"config_files"`
	LocalPrefix string   `yaml:"local_prefix"`
}

// Default returns the configuration used when no file is present.
func Default() *Config {
	return &Config{
		Provider: "auto",
		Reporter: "text",
		Linter:   LinterConfig{Engine: "swiftlint"},
		Formatter: FormatterConfig{
			Engine: "swiftformat",
		},
	}
}

var validate = validator.New()

// Load reads the configuration for a graph rooted at dir.
// An empty path means dir/.tuist-lint.yml, which may be absent; an explicit path must exist.
// Values from dir/.env and then the process environment override the file.
func Load(dir, path string) (*Config, error) {
	cfg := Default()

	explicit := path != ""
	if !explicit {
		path = filepath.Join(dir, FileName)
	}

	data, err := os.ReadFile(path)
	switch {
	case err == nil:
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("failed to parse config %s: %w", path, err)
		}
	case errors.Is(err, fs.ErrNotExist) && !explicit:
	default:
		return nil, fmt.Errorf("failed to read config: %w", err)
	}

	env, err := readEnv(filepath.Join(dir, EnvFileName))
	if err != nil {
		return nil, err
	}
	if err := cfg.applyEnv(env); err != nil {
		return nil, err
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks field values.
func (c *Config) Validate() error {
	if err := validate.Struct(c); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) {
			msgs := make([]string, 0, len(verrs))
			for _, fe := range verrs {
				msgs = append(msgs, describe(fe))
			}
			return fmt.Errorf("invalid config: %s", strings.Join(msgs, "; "))
		}
		return fmt.Errorf("invalid config: %w", err)
	}
	return nil
}

func describe(fe validator.FieldError) string {
	switch fe.Tag() {
	case "oneof":
		return fmt.Sprintf("%s must be one of [%s], got %q", fe.Namespace(), fe.Param(), fe.Value())
	case "required_if":
		return fmt.Sprintf("%s is required when %s", fe.Namespace(), strings.Replace(fe.Param(), " ", " is ", 1))
	default:
		return fmt.Sprintf("%s failed %s validation", fe.Namespace(), fe.Tag())
	}
}

// readEnv returns the TUIST_LINT_* values from the .env file merged with the process environment.
func readEnv(envFile string) (map[string]string, error) {
	values := map[string]string{}

	fileValues, err := godotenv.Read(envFile)
	if err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("failed to read %s: %w", envFile, err)
	}
	for k, v := range fileValues {
		values[k] = v
	}

	for _, key := range []string{EnvStrict, EnvQuiet, EnvEngine, EnvProvider} {
		if v, ok := os.LookupEnv(key); ok && v != "" {
			values[key] = v
		}
	}
	return values, nil
}

func (c *Config) applyEnv(env map[string]string) error {
	if v := strings.TrimSpace(env[EnvStrict]); v != "" {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return fmt.Errorf("invalid %s value %q: %w", EnvStrict, v, err)
		}
		c.Strict = b
	}
	if v := strings.TrimSpace(env[EnvQuiet]); v != "" {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return fmt.Errorf("invalid %s value %q: %w", EnvQuiet, v, err)
		}
		c.Quiet = b
	}
	if v := strings.TrimSpace(env[EnvEngine]); v != "" {
		c.Linter.Engine = v
	}
	if v := strings.TrimSpace(env[EnvProvider]); v != "" {
		c.Provider = v
	}
	return nil
}
