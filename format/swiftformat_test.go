package format

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/JaroVoltix/TestLint/internal/execrun"
)

type recordingRunner struct {
	commands []execrun.Command
	result   execrun.Result
	err      error
}

func (r *recordingRunner) Run(_ context.Context, command execrun.Command) (execrun.Result, error) {
	r.commands = append(r.commands, command)
	return r.result, r.err
}

func TestSwiftFormat_LintModeParsesFindings(t *testing.T) {
	runner := &recordingRunner{
		result: execrun.Result{
			Stderr: "Running SwiftFormat...\n" +
				"/app/A.swift:3:1: warning: (indent) Indent code in accordance with the scope level.\n" +
				"/app/B.swift:10:5: warning: (redundantSelf) Insert/remove explicit self where applicable.\n" +
				"SwiftFormat completed. 2/5 files require formatting.",
			ExitCode: 1,
		},
		err: &execrun.ExitError{Command: "swiftformat", ExitCode: 1},
	}
	formatter := &SwiftFormat{Runner: runner}

	result, err := formatter.Format(context.Background(), []string{"/app"}, Options{
		ConfigurationFiles: []string{".swiftformat", "ignored"},
		Lint:               true,
		Quiet:              true,
	})

	require.NoError(t, err)
	assert.Equal(t, []string{"--lint", "--quiet", "--config", ".swiftformat", "/app"}, runner.commands[0].Args)
	assert.Equal(t, []Change{
		{File: "/app/A.swift", Line: 3, Rule: "indent", Message: "Indent code in accordance with the scope level."},
		{File: "/app/B.swift", Line: 10, Rule: "redundantSelf", Message: "Insert/remove explicit self where applicable."},
	}, result.Changes)
	assert.Equal(t, "SwiftFormat completed. 2/5 files require formatting.", result.Summary)
	assert.True(t, result.Failed())
}

func TestSwiftFormat_FormatModeFailureIsError(t *testing.T) {
	runner := &recordingRunner{err: &execrun.ExitError{Command: "swiftformat", ExitCode: 1, Stderr: "error: bad config"}}

	_, err := (&SwiftFormat{Runner: runner}).Format(context.Background(), []string{"a.swift"}, Options{})

	require.Error(t, err)
	assert.Contains(t, err.Error(), "bad config")
}

func TestSwiftFormat_NoPaths(t *testing.T) {
	runner := &recordingRunner{}

	result, err := (&SwiftFormat{Runner: runner}).Format(context.Background(), nil, Options{})

	require.NoError(t, err)
	assert.Empty(t, runner.commands)
	assert.False(t, result.Failed())
}

func TestNew(t *testing.T) {
	f, err := New("", EngineOptions{})
	require.NoError(t, err)
	assert.IsType(t, &SwiftFormat{}, f)

	f, err = New(EngineGoImports, EngineOptions{})
	require.NoError(t, err)
	assert.IsType(t, &GoImports{}, f)

	_, err = New("prettier", EngineOptions{})
	assert.Error(t, err)
}
