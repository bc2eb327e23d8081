package projgraph

import (
	"errors"
	"fmt"
)

var (
	// ErrGraphNotFound is matched by every graph loading failure.
	ErrGraphNotFound = errors.New("the project's graph can not be found")
	// ErrTargetNotFound is matched by TargetNotFoundError.
	ErrTargetNotFound = errors.New("target not found")
	// ErrEmptyTargetName is returned when a target lookup is attempted with an empty name.
	ErrEmptyTargetName = errors.New("target name cannot be empty")
)

// GraphNotFoundError reports that no graph could be resolved at Root.
type GraphNotFoundError struct {
	Root string
	Err  error
}

func (e *GraphNotFoundError) Error() string {
	msg := ErrGraphNotFound.Error()
	if e.Root != "" {
		msg += " at " + e.Root
	}
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	return msg + ". Run tuist to fix that"
}

func (e *GraphNotFoundError) Is(target error) bool {
	return target == ErrGraphNotFound
}

func (e *GraphNotFoundError) Unwrap() error {
	return e.Err
}

// TargetNotFoundError reports that no internal target carries Name.
type TargetNotFoundError struct {
	Name string
}

func (e *TargetNotFoundError) Error() string {
	return fmt.Sprintf("a target with a name '%s' not found in the project", e.Name)
}

func (e *TargetNotFoundError) Is(target error) bool {
	return target == ErrTargetNotFound
}
