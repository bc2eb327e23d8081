// Package lint forwards resolved source paths to an external linting engine.
package lint

import (
	"context"
	"fmt"
)

// Options is passed unchanged to the linting engine.
type Options struct {
	ConfigurationFiles []string
	Leniency           Leniency
	Quiet              bool
}

// Linter is a linting engine.
type Linter interface {
	Lint(ctx context.Context, paths []string, opts Options) (Report, error)
}

// Severity of a single violation.
type Severity string

const (
	SeverityWarning Severity = "warning"
	SeverityError   Severity = "error"
)

// Violation is one finding reported by an engine.
type Violation struct {
	File     string   `json:"file"`
	Line     int      `json:"line"`
	Column   int      `json:"column,omitempty"`
	Severity Severity `json:"severity"`
	Rule     string   `json:"rule,omitempty"`
	Message  string   `json:"message"`
}

func (v Violation) String() string {
	location := v.File
	if v.Line > 0 {
		location = fmt.Sprintf("%s:%d", location, v.Line)
		if v.Column > 0 {
			location = fmt.Sprintf("%s:%d", location, v.Column)
		}
	}
	msg := fmt.Sprintf("%s: %s: %s", location, v.Severity, v.Message)
	if v.Rule != "" {
		msg += fmt.Sprintf(" (%s)", v.Rule)
	}
	return msg
}

// Report collects the violations of one lint run.
type Report struct {
	Files      int         `json:"files"`
	Violations []Violation `json:"violations"`
}

// SeriousCount returns the number of error-severity violations.
func (r Report) SeriousCount() int {
	return r.count(SeverityError)
}

// WarningCount returns the number of warning-severity violations.
func (r Report) WarningCount() int {
	return r.count(SeverityWarning)
}

// Failed reports whether the run produced serious violations.
func (r Report) Failed() bool {
	return r.SeriousCount() > 0
}

func (r Report) count(severity Severity) int {
	n := 0
	for _, v := range r.Violations {
		if v.Severity == severity {
			n++
		}
	}
	return n
}

// escalate upgrades warnings to errors under strict leniency.
func escalate(violations []Violation, leniency Leniency) []Violation {
	if leniency != LeniencyStrict {
		return violations
	}
	for i := range violations {
		if violations[i].Severity == SeverityWarning {
			violations[i].Severity = SeverityError
		}
	}
	return violations
}

// Engine names accepted by New.
const (
	EngineSwiftLint = "swiftlint"
	EngineGo        = "go"
	EngineCommand   = "command"
)

// Engines lists the accepted engine names.
func Engines() []string {
	return []string{EngineSwiftLint, EngineGo, EngineCommand}
}
