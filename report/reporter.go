// Package report renders lint and format results for the terminal or for tools.
package report

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/JaroVoltix/TestLint/format"
	"github.com/JaroVoltix/TestLint/lint"
)

// Options tune rendering.
type Options struct {
	// Color enables ANSI styling; callers enable it only for terminals.
	Color bool
	// BaseDir, when set, makes file paths below it relative.
	BaseDir string
}

// Reporter renders results to a string.
type Reporter interface {
	Lint(r lint.Report, opts Options) (string, error)
	Format(r format.Result, opts Options) (string, error)
}

// NewReporter creates a Reporter for the named output format.
func NewReporter(name string) (Reporter, error) {
	f, ok := ParseOutputFormat(name)
	if !ok {
		return nil, fmt.Errorf("unknown format: %s (valid options: %s)", name, SupportedFormats())
	}

	switch f {
	case OutputFormatJSON:
		return &JSONReporter{}, nil
	default:
		return &TextReporter{}, nil
	}
}

func displayPath(path string, opts Options) string {
	if opts.BaseDir == "" || !filepath.IsAbs(path) {
		return path
	}
	rel, err := filepath.Rel(opts.BaseDir, path)
	if err != nil || rel == ".." || strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
		return path
	}
	return rel
}

func plural(n int, singular, pluralForm string) string {
	if n == 1 {
		return singular
	}
	return pluralForm
}
