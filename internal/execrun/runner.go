// Package execrun runs external tools with a bounded lifetime and captured output.
package execrun

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os/exec"
	"strings"
	"time"
)

// DefaultTimeout bounds a command when Command.Timeout is zero.
const DefaultTimeout = 10 * time.Minute

// Command describes a single invocation.
type Command struct {
	Name    string
	Args    []string
	Dir     string
	Timeout time.Duration
}

func (c Command) String() string {
	return strings.TrimSpace(c.Name + " " + strings.Join(c.Args, " "))
}

// Result holds the captured output of a finished command.
type Result struct {
	Stdout   []byte
	Stderr   string
	ExitCode int
}

// ExitError is returned when the command ran but exited with a non-zero status.
type ExitError struct {
	Command  string
	ExitCode int
	Stderr   string
}

func (e *ExitError) Error() string {
	if e.Stderr != "" {
		return fmt.Sprintf("%s exited with status %d: %s", e.Command, e.ExitCode, e.Stderr)
	}
	return fmt.Sprintf("%s exited with status %d", e.Command, e.ExitCode)
}

// ErrNotInstalled is returned when the command binary cannot be found on PATH.
var ErrNotInstalled = errors.New("executable not found")

// Runner executes commands. Tests swap it for a fake.
type Runner interface {
	Run(ctx context.Context, command Command) (Result, error)
}

// RunnerFunc adapts a function to Runner.
type RunnerFunc func(ctx context.Context, command Command) (Result, error)

func (f RunnerFunc) Run(ctx context.Context, command Command) (Result, error) {
	return f(ctx, command)
}

// Exec is the os/exec backed Runner.
type Exec struct{}

func (Exec) Run(ctx context.Context, command Command) (Result, error) {
	if _, err := exec.LookPath(command.Name); err != nil {
		return Result{ExitCode: -1}, fmt.Errorf("%s: %w", command.Name, ErrNotInstalled)
	}

	timeout := command.Timeout
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	cmd := exec.CommandContext(ctx, command.Name, command.Args...)
	cmd.Dir = command.Dir
	cmd.WaitDelay = time.Second

	var stdout bytes.Buffer
	var stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	err := cmd.Run()
	result := Result{
		Stdout: stdout.Bytes(),
		Stderr: strings.TrimSpace(stderr.String()),
	}
	if err == nil {
		return result, nil
	}

	if errors.Is(ctx.Err(), context.DeadlineExceeded) {
		result.ExitCode = -1
		return result, fmt.Errorf("%s timed out after %s", command.Name, timeout)
	}

	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) {
		result.ExitCode = exitErr.ExitCode()
		return result, &ExitError{
			Command:  command.Name,
			ExitCode: result.ExitCode,
			Stderr:   result.Stderr,
		}
	}

	result.ExitCode = -1
	return result, fmt.Errorf("failed to run %s: %w", command.Name, err)
}

// ExitCode reports the status carried by an ExitError, if any.
func ExitCode(err error) (int, bool) {
	var exitErr *ExitError
	if errors.As(err, &exitErr) {
		return exitErr.ExitCode, true
	}
	return 0, false
}
