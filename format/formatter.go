// Package format forwards resolved source paths to a code formatter.
package format

import (
	"context"
	"fmt"
	"time"

	"github.com/JaroVoltix/TestLint/internal/execrun"
)

// Options is passed unchanged to the formatting engine.
type Options struct {
	ConfigurationFiles []string
	// Lint reports files that need formatting without rewriting them.
	Lint  bool
	Quiet bool
}

// Formatter is a formatting engine.
type Formatter interface {
	Format(ctx context.Context, paths []string, opts Options) (Result, error)
}

// Change describes a file that was, or in lint mode would be, rewritten.
type Change struct {
	File       string `json:"file"`
	Line       int    `json:"line,omitempty"`
	Rule       string `json:"rule,omitempty"`
	Message    string `json:"message,omitempty"`
	Insertions int    `json:"insertions,omitempty"`
	Deletions  int    `json:"deletions,omitempty"`
}

// Result is the outcome of a formatting run.
type Result struct {
	Files   int      `json:"files"`
	Lint    bool     `json:"lint"`
	Changes []Change `json:"changes"`
	Summary string   `json:"summary,omitempty"`
}

// Failed reports whether a lint-mode run found unformatted code.
func (r Result) Failed() bool {
	return r.Lint && len(r.Changes) > 0
}

// Engine names accepted by New.
const (
	EngineSwiftFormat = "swiftformat"
	EngineGoImports   = "goimports"
)

// Engines lists the accepted engine names.
func Engines() []string {
	return []string{EngineSwiftFormat, EngineGoImports}
}

// EngineOptions configures the Formatter built by New.
type EngineOptions struct {
	Binary  string
	Dir     string
	Timeout time.Duration
	Runner  execrun.Runner
	// LocalPrefix groups imports with this prefix after third-party ones (goimports only).
	LocalPrefix string
}

// New builds the Formatter for engine.
func New(engine string, opts EngineOptions) (Formatter, error) {
	switch engine {
	case EngineSwiftFormat, "":
		return &SwiftFormat{Binary: opts.Binary, Dir: opts.Dir, Timeout: opts.Timeout, Runner: opts.Runner}, nil
	case EngineGoImports:
		return &GoImports{LocalPrefix: opts.LocalPrefix}, nil
	default:
		return nil, fmt.Errorf("unknown format engine: %s (valid options: %v)", engine, Engines())
	}
}
