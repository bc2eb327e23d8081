// Package service resolves which sources to analyze and forwards them to the lint and format engines.
package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sort"
	"strings"

	"github.com/JaroVoltix/TestLint/format"
	"github.com/JaroVoltix/TestLint/graphload"
	"github.com/JaroVoltix/TestLint/internal/logging"
	"github.com/JaroVoltix/TestLint/lint"
	"github.com/JaroVoltix/TestLint/projgraph"
)

// ErrTargetWithPaths is returned when a target name and explicit paths are both requested.
var ErrTargetWithPaths = errors.New("a target name and explicit paths can not be used together")

// Mode is the source selection a Request resolves to.
type Mode string

const (
	ModeTarget   Mode = "target"
	ModeExplicit Mode = "explicit"
	ModeAll      Mode = "all"
)

// Request describes one lint or format invocation.
type Request struct {
	// Root is the directory the graph is loaded from; empty means the working directory.
	Root       string
	TargetName string
	Paths      []string
	// ExplicitPaths is set when Paths were typed by the user rather than defaulted.
	ExplicitPaths      bool
	WithDependencies   bool
	Strict             bool
	Quiet              bool
	ConfigurationFiles []string
}

// Mode reports which selection the request resolves to.
// A target name wins, then explicit paths, then every internal target.
func (r Request) Mode() Mode {
	switch {
	case r.TargetName != "":
		return ModeTarget
	case r.ExplicitPaths:
		return ModeExplicit
	default:
		return ModeAll
	}
}

// Service wires a graph provider to the engines.
type Service struct {
	Provider  graphload.Provider
	Linter    lint.Linter
	Formatter format.Formatter
	Logger    *slog.Logger
}

// New creates a Service. A nil logger discards output.
func New(provider graphload.Provider, linter lint.Linter, formatter format.Formatter, logger *slog.Logger) *Service {
	if logger == nil {
		logger = logging.Discard()
	}
	return &Service{Provider: provider, Linter: linter, Formatter: formatter, Logger: logger}
}

// Resolve returns the source paths selected by req.
func (s *Service) Resolve(req Request) ([]string, error) {
	switch req.Mode() {
	case ModeTarget:
		if req.ExplicitPaths && len(req.Paths) > 0 {
			return nil, ErrTargetWithPaths
		}
		g, err := s.loadGraph(req.Root)
		if err != nil {
			return nil, err
		}
		if req.WithDependencies {
			return projgraph.SourcesForTargetWithDependencies(g, req.TargetName)
		}
		return projgraph.SourcesForTarget(g, req.TargetName)

	case ModeExplicit:
		if req.WithDependencies {
			s.logger().Debug("ignoring --with-dependencies for explicit paths")
		}
		return projgraph.ExplicitPaths(req.Paths), nil

	default:
		g, err := s.loadGraph(req.Root)
		if err != nil {
			return nil, err
		}
		return projgraph.AllSources(g), nil
	}
}

// Lint resolves req and runs the linter over the result.
// An empty selection yields an empty report without invoking the linter.
func (s *Service) Lint(ctx context.Context, req Request) (lint.Report, error) {
	if s.Linter == nil {
		return lint.Report{}, errors.New("no linter configured")
	}

	paths, err := s.Resolve(req)
	if err != nil {
		return lint.Report{}, err
	}

	log := s.logger().With("mode", string(req.Mode()))
	if len(paths) == 0 {
		log.Info("no sources to lint")
		return lint.Report{Violations: []lint.Violation{}}, nil
	}

	opts := lint.Options{
		ConfigurationFiles: req.ConfigurationFiles,
		Leniency:           lint.LeniencyFromStrict(req.Strict),
		Quiet:              req.Quiet,
	}
	log.Debug("linting", "count", len(paths), "leniency", opts.Leniency.String(), logging.Paths(paths))

	report, err := s.Linter.Lint(ctx, paths, opts)
	if err != nil {
		return lint.Report{}, fmt.Errorf("failed to lint: %w", err)
	}

	log.Info("lint finished",
		"files", report.Files,
		"warnings", report.WarningCount(),
		"serious", report.SeriousCount())
	return report, nil
}

// Format resolves req and runs the formatter; check only reports files that need formatting.
func (s *Service) Format(ctx context.Context, req Request, check bool) (format.Result, error) {
	if s.Formatter == nil {
		return format.Result{}, errors.New("no formatter configured")
	}

	paths, err := s.Resolve(req)
	if err != nil {
		return format.Result{}, err
	}

	log := s.logger().With("mode", string(req.Mode()))
	if len(paths) == 0 {
		log.Info("no sources to format")
		return format.Result{Lint: check, Changes: []format.Change{}}, nil
	}

	opts := format.Options{
		ConfigurationFiles: req.ConfigurationFiles,
		Lint:               check,
		Quiet:              req.Quiet,
	}
	log.Debug("formatting", "count", len(paths), "check", check, logging.Paths(paths))

	result, err := s.Formatter.Format(ctx, paths, opts)
	if err != nil {
		return format.Result{}, fmt.Errorf("failed to format: %w", err)
	}

	log.Info("format finished", "files", result.Files, "changes", len(result.Changes))
	return result, nil
}

// Graph loads the project graph for root and reports duplicate target names.
func (s *Service) Graph(root string) (*projgraph.Graph, error) {
	return s.loadGraph(root)
}

func (s *Service) loadGraph(root string) (*projgraph.Graph, error) {
	if s.Provider == nil {
		return nil, errors.New("no graph provider configured")
	}

	g, err := s.Provider.Load(root)
	if err != nil {
		return nil, err
	}

	s.logger().Debug("graph loaded", "root", root, "projects", len(g.Projects))
	s.warnDuplicates(g)
	return g, nil
}

func (s *Service) warnDuplicates(g *projgraph.Graph) {
	duplicates := projgraph.DuplicateTargetNames(g)

	names := make([]string, 0, len(duplicates))
	for name := range duplicates {
		names = append(names, name)
	}
	sort.Strings(names)

	for _, name := range names {
		projects := duplicates[name]
		s.logger().Warn("duplicate target name, the first declaration wins",
			"target", name,
			"projects", strings.Join(projects, ","),
			"selected", projects[0])
	}
}

func (s *Service) logger() *slog.Logger {
	if s.Logger == nil {
		return logging.Discard()
	}
	return s.Logger
}
