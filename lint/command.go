package lint

import (
	"bufio"
	"bytes"
	"context"
	"fmt"
	"regexp"
	"strconv"
	"time"

	"github.com/JaroVoltix/TestLint/internal/execrun"
)

// Command runs an arbitrary linter that prints one finding per line in the
// `file:line:col: severity: message (rule)` format used by Xcode-style reporters.
type Command struct {
	Binary     string
	Args       []string
	StrictArgs []string
	QuietArgs  []string
	// ConfigFlag precedes each configuration file, e.g. "--config".
	ConfigFlag string
	// ViolationExitCodes are non-zero statuses that only signal findings.
	ViolationExitCodes []int
	Dir                string
	Timeout            time.Duration
	Runner             execrun.Runner
}

var findingLine = regexp.MustCompile(`^(.+?):(\d+)(?::(\d+))?: (warning|error): (.*?)(?: \(([\w./-]+)\))?$`)

func (c *Command) Lint(ctx context.Context, paths []string, opts Options) (Report, error) {
	if c.Binary == "" {
		return Report{}, fmt.Errorf("lint command is not configured")
	}

	report := Report{Files: len(paths), Violations: []Violation{}}
	for _, batch := range batches(paths, defaultBatchSize) {
		command := c.command(batch, opts)
		result, err := runner(c.Runner).Run(ctx, command)
		if err != nil && !c.isViolationExit(err) {
			return Report{}, fmt.Errorf("failed to run %s: %w", command.Name, err)
		}

		output := append(append([]byte{}, result.Stdout...), '\n')
		violations := parseFindings(append(output, result.Stderr...))
		report.Violations = append(report.Violations, escalate(violations, opts.Leniency)...)
	}
	return report, nil
}

func (c *Command) command(paths []string, opts Options) execrun.Command {
	args := append([]string{}, c.Args...)
	if opts.Leniency == LeniencyStrict {
		args = append(args, c.StrictArgs...)
	}
	if opts.Quiet {
		args = append(args, c.QuietArgs...)
	}
	if c.ConfigFlag != "" {
		for _, configFile := range opts.ConfigurationFiles {
			args = append(args, c.ConfigFlag, configFile)
		}
	}
	args = append(args, paths...)
	return execrun.Command{Name: c.Binary, Args: args, Dir: c.Dir, Timeout: c.Timeout}
}

func (c *Command) isViolationExit(err error) bool {
	code, ok := execrun.ExitCode(err)
	if !ok {
		return false
	}
	for _, allowed := range c.ViolationExitCodes {
		if code == allowed {
			return true
		}
	}
	return false
}

func parseFindings(output []byte) []Violation {
	var violations []Violation
	scanner := bufio.NewScanner(bytes.NewReader(output))
	for scanner.Scan() {
		match := findingLine.FindStringSubmatch(scanner.Text())
		if match == nil {
			continue
		}
		line, _ := strconv.Atoi(match[2])
		column, _ := strconv.Atoi(match[3])
		violations = append(violations, Violation{
			File:     match[1],
			Line:     line,
			Column:   column,
			Severity: Severity(match[4]),
			Message:  match[5],
			Rule:     match[6],
		})
	}
	return violations
}
