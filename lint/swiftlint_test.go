package lint

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/JaroVoltix/TestLint/internal/execrun"
)

const swiftLintOutput = `[
  {
    "character" : 5,
    "file" : "/app/Sources/A.swift",
    "line" : 10,
    "reason" : "Line should be 120 characters or less; currently it has 131 characters",
    "rule_id" : "line_length",
    "severity" : "Warning",
    "type" : "Line Length"
  },
  {
    "character" : null,
    "file" : "/app/Sources/B.swift",
    "line" : 2,
    "reason" : "Force casts should be avoided",
    "rule_id" : "force_cast",
    "severity" : "Error",
    "type" : "Force Cast"
  }
]`

type recordingRunner struct {
	commands []execrun.Command
	result   execrun.Result
	err      error
}

func (r *recordingRunner) Run(_ context.Context, command execrun.Command) (execrun.Result, error) {
	r.commands = append(r.commands, command)
	return r.result, r.err
}

func TestSwiftLint_PassesOptionsThrough(t *testing.T) {
	runner := &recordingRunner{result: execrun.Result{Stdout: []byte("[]")}}
	linter := &SwiftLint{Runner: runner}

	_, err := linter.Lint(context.Background(), []string{"a.swift", "b.swift"}, Options{
		ConfigurationFiles: []string{".swiftlint.yml"},
		Leniency:           LeniencyStrict,
		Quiet:              true,
	})

	require.NoError(t, err)
	require.Len(t, runner.commands, 1)
	assert.Equal(t, "swiftlint", runner.commands[0].Name)
	assert.Equal(t, []string{
		"lint", "--reporter", "json", "--strict", "--quiet", "--config", ".swiftlint.yml", "a.swift", "b.swift",
	}, runner.commands[0].Args)
}

func TestSwiftLint_DefaultLeniencyOmitsStrict(t *testing.T) {
	runner := &recordingRunner{result: execrun.Result{Stdout: []byte("[]")}}

	_, err := (&SwiftLint{Runner: runner}).Lint(context.Background(), []string{"a.swift"}, Options{})

	require.NoError(t, err)
	assert.Equal(t, []string{"lint", "--reporter", "json", "a.swift"}, runner.commands[0].Args)
}

func TestSwiftLint_ParsesSeriousViolationExit(t *testing.T) {
	runner := &recordingRunner{
		result: execrun.Result{Stdout: []byte(swiftLintOutput), ExitCode: 2},
		err:    &execrun.ExitError{Command: "swiftlint", ExitCode: 2},
	}

	report, err := (&SwiftLint{Runner: runner}).Lint(context.Background(), []string{"/app/Sources"}, Options{})

	require.NoError(t, err)
	assert.Equal(t, []Violation{
		{File: "/app/Sources/A.swift", Line: 10, Column: 5, Severity: SeverityWarning, Rule: "line_length",
			Message: "Line should be 120 characters or less; currently it has 131 characters"},
		{File: "/app/Sources/B.swift", Line: 2, Severity: SeverityError, Rule: "force_cast",
			Message: "Force casts should be avoided"},
	}, report.Violations)
	assert.True(t, report.Failed())
}

func TestSwiftLint_OtherExitCodesFail(t *testing.T) {
	runner := &recordingRunner{err: &execrun.ExitError{Command: "swiftlint", ExitCode: 1, Stderr: "Invalid configuration"}}

	_, err := (&SwiftLint{Runner: runner}).Lint(context.Background(), []string{"a.swift"}, Options{})

	require.Error(t, err)
	assert.Contains(t, err.Error(), "Invalid configuration")
}

func TestSwiftLint_BatchesPaths(t *testing.T) {
	runner := &recordingRunner{result: execrun.Result{Stdout: []byte("[]")}}

	report, err := (&SwiftLint{Runner: runner, BatchSize: 2}).Lint(context.Background(), []string{"a", "b", "c"}, Options{})

	require.NoError(t, err)
	require.Len(t, runner.commands, 2)
	assert.Equal(t, []string{"a", "b"}, runner.commands[0].Args[3:])
	assert.Equal(t, []string{"c"}, runner.commands[1].Args[3:])
	assert.Equal(t, 3, report.Files)
}

func TestSwiftLint_NoPathsRunsNothing(t *testing.T) {
	runner := &recordingRunner{}

	report, err := (&SwiftLint{Runner: runner}).Lint(context.Background(), nil, Options{})

	require.NoError(t, err)
	assert.Empty(t, runner.commands)
	assert.Empty(t, report.Violations)
}
