package format

import (
	"bufio"
	"context"
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/JaroVoltix/TestLint/internal/execrun"
)

const (
	defaultSwiftFormatBinary = "swiftformat"
	// swiftFormatLintExitCode is returned by --lint when files need formatting.
	swiftFormatLintExitCode = 1
)

var swiftFormatFinding = regexp.MustCompile(`^(.+?):(\d+)(?::\d+)?: (?:warning|error): \((\w+)\) (.*)$`)

// SwiftFormat runs the swiftformat executable.
type SwiftFormat struct {
	Binary  string
	Dir     string
	Timeout time.Duration
	Runner  execrun.Runner
}

func (s *SwiftFormat) Format(ctx context.Context, paths []string, opts Options) (Result, error) {
	result := Result{Files: len(paths), Lint: opts.Lint, Changes: []Change{}}
	if len(paths) == 0 {
		return result, nil
	}

	command := s.command(paths, opts)
	runResult, err := s.runner().Run(ctx, command)
	if err != nil {
		code, ok := execrun.ExitCode(err)
		if !ok || !opts.Lint || code != swiftFormatLintExitCode {
			return Result{}, fmt.Errorf("failed to run %s: %w", command.Name, err)
		}
	}

	output := string(runResult.Stdout) + "\n" + runResult.Stderr
	result.Changes = parseSwiftFormatOutput(output)
	result.Summary = lastLine(output)
	return result, nil
}

func (s *SwiftFormat) command(paths []string, opts Options) execrun.Command {
	binary := s.Binary
	if binary == "" {
		binary = defaultSwiftFormatBinary
	}

	var args []string
	if opts.Lint {
		args = append(args, "--lint")
	}
	if opts.Quiet {
		args = append(args, "--quiet")
	}
	if len(opts.ConfigurationFiles) > 0 {
		// swiftformat accepts a single --config.
		args = append(args, "--config", opts.ConfigurationFiles[0])
	}
	args = append(args, paths...)

	return execrun.Command{Name: binary, Args: args, Dir: s.Dir, Timeout: s.Timeout}
}

func (s *SwiftFormat) runner() execrun.Runner {
	if s.Runner != nil {
		return s.Runner
	}
	return execrun.Exec{}
}

func parseSwiftFormatOutput(output string) []Change {
	changes := []Change{}
	scanner := bufio.NewScanner(strings.NewReader(output))
	for scanner.Scan() {
		match := swiftFormatFinding.FindStringSubmatch(scanner.Text())
		if match == nil {
			continue
		}
		line, _ := strconv.Atoi(match[2])
		changes = append(changes, Change{File: match[1], Line: line, Rule: match[3], Message: match[4]})
	}
	return changes
}

func lastLine(output string) string {
	lines := strings.Split(strings.TrimSpace(output), "\n")
	return strings.TrimSpace(lines[len(lines)-1])
}
