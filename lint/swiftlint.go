package lint

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/JaroVoltix/TestLint/internal/execrun"
)

const (
	defaultSwiftLintBinary = "swiftlint"
	// defaultBatchSize keeps a single invocation well below ARG_MAX.
	defaultBatchSize = 500
	// swiftLintSeriousExitCode is returned when serious violations were found.
	swiftLintSeriousExitCode = 2
)

// SwiftLint runs the swiftlint executable and parses its JSON reporter output.
type SwiftLint struct {
	Binary    string
	Dir       string
	Timeout   time.Duration
	BatchSize int
	Runner    execrun.Runner
}

type swiftLintViolation struct {
	Character *int   `json:"character"`
	File      string `json:"file"`
	Line      *int   `json:"line"`
	Reason    string `json:"reason"`
	RuleID    string `json:"rule_id"`
	Severity  string `json:"severity"`
	Type      string `json:"type"`
}

func (s *SwiftLint) Lint(ctx context.Context, paths []string, opts Options) (Report, error) {
	report := Report{Files: len(paths), Violations: []Violation{}}

	for _, batch := range batches(paths, s.batchSize()) {
		command := s.command(batch, opts)
		result, err := runner(s.Runner).Run(ctx, command)
		if err != nil {
			if code, ok := execrun.ExitCode(err); !ok || code != swiftLintSeriousExitCode {
				return Report{}, fmt.Errorf("failed to run %s: %w", command.Name, err)
			}
		}

		violations, err := parseSwiftLintJSON(result.Stdout)
		if err != nil {
			return Report{}, fmt.Errorf("failed to parse %s output: %w", command.Name, err)
		}
		report.Violations = append(report.Violations, violations...)
	}

	return report, nil
}

func (s *SwiftLint) command(paths []string, opts Options) execrun.Command {
	binary := s.Binary
	if binary == "" {
		binary = defaultSwiftLintBinary
	}

	args := []string{"lint", "--reporter", "json"}
	if opts.Leniency == LeniencyStrict {
		args = append(args, "--strict")
	}
	if opts.Quiet {
		args = append(args, "--quiet")
	}
	for _, configFile := range opts.ConfigurationFiles {
		args = append(args, "--config", configFile)
	}
	args = append(args, paths...)

	return execrun.Command{Name: binary, Args: args, Dir: s.Dir, Timeout: s.Timeout}
}

func (s *SwiftLint) batchSize() int {
	if s.BatchSize > 0 {
		return s.BatchSize
	}
	return defaultBatchSize
}

func parseSwiftLintJSON(data []byte) ([]Violation, error) {
	if len(strings.TrimSpace(string(data))) == 0 {
		return nil, nil
	}

	var raw []swiftLintViolation
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, err
	}

	violations := make([]Violation, 0, len(raw))
	for _, r := range raw {
		v := Violation{
			File:     r.File,
			Severity: SeverityWarning,
			Rule:     r.RuleID,
			Message:  r.Reason,
		}
		if strings.EqualFold(r.Severity, "error") {
			v.Severity = SeverityError
		}
		if r.Line != nil {
			v.Line = *r.Line
		}
		if r.Character != nil {
			v.Column = *r.Character
		}
		violations = append(violations, v)
	}
	return violations, nil
}

func batches(paths []string, size int) [][]string {
	var out [][]string
	for start := 0; start < len(paths); start += size {
		end := start + size
		if end > len(paths) {
			end = len(paths)
		}
		out = append(out, paths[start:end])
	}
	return out
}

func runner(r execrun.Runner) execrun.Runner {
	if r != nil {
		return r
	}
	return execrun.Exec{}
}
