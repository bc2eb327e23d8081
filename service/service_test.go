package service

import (
	"bytes"
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/JaroVoltix/TestLint/format"
	"github.com/JaroVoltix/TestLint/graphload"
	"github.com/JaroVoltix/TestLint/internal/logging"
	"github.com/JaroVoltix/TestLint/lint"
	"github.com/JaroVoltix/TestLint/projgraph"
)

type fakeLinter struct {
	calls  int
	paths  []string
	opts   lint.Options
	report lint.Report
	err    error
}

func (f *fakeLinter) Lint(_ context.Context, paths []string, opts lint.Options) (lint.Report, error) {
	f.calls++
	f.paths = paths
	f.opts = opts
	return f.report, f.err
}

type fakeFormatter struct {
	calls int
	paths []string
	opts  format.Options
}

func (f *fakeFormatter) Format(_ context.Context, paths []string, opts format.Options) (format.Result, error) {
	f.calls++
	f.paths = paths
	f.opts = opts
	return format.Result{Files: len(paths), Lint: opts.Lint, Changes: []format.Change{{File: paths[0]}}}, nil
}

type countingProvider struct {
	graph *projgraph.Graph
	err   error
	loads int
	roots []string
}

func (p *countingProvider) Load(root string) (*projgraph.Graph, error) {
	p.loads++
	p.roots = append(p.roots, root)
	return p.graph, p.err
}

func scenarioGraph() *projgraph.Graph {
	return &projgraph.Graph{
		Name: "App",
		Projects: map[string]*projgraph.Project{
			"/app": {
				Name: "P1",
				Path: "/app",
				Targets: []projgraph.Target{
					{Name: "A", Sources: []string{"a.swift", "b.swift"}, Dependencies: []projgraph.Dependency{
						{Kind: projgraph.DependencyTarget, Name: "Core"},
						{Kind: projgraph.DependencyExternal, Name: "Alamofire"},
					}},
					{Name: "Core", Sources: []string{"core.swift"}},
				},
			},
			"/vendor": {
				Name:       "P2",
				Path:       "/vendor",
				IsExternal: true,
				Targets: []projgraph.Target{
					{Name: "A", Sources: []string{"vendor.swift"}},
				},
			},
		},
	}
}

func newService(provider graphload.Provider, linter lint.Linter) *Service {
	return New(provider, linter, &fakeFormatter{}, nil)
}

func TestRequest_Mode(t *testing.T) {
	assert.Equal(t, ModeTarget, Request{TargetName: "A"}.Mode())
	assert.Equal(t, ModeTarget, Request{TargetName: "A", ExplicitPaths: true}.Mode())
	assert.Equal(t, ModeExplicit, Request{Paths: []string{"x"}, ExplicitPaths: true}.Mode())
	assert.Equal(t, ModeAll, Request{Paths: []string{"."}}.Mode())
	assert.Equal(t, ModeAll, Request{}.Mode())
}

func TestLint_TargetSkipsExternalTargetWithSameName(t *testing.T) {
	provider := &countingProvider{graph: scenarioGraph()}
	linter := &fakeLinter{}
	svc := newService(provider, linter)

	_, err := svc.Lint(context.Background(), Request{Root: "/app", TargetName: "A", Paths: []string{"."}})

	require.NoError(t, err)
	assert.Equal(t, []string{"a.swift", "b.swift"}, linter.paths)
	assert.Equal(t, []string{"/app"}, provider.roots)
	assert.Equal(t, 1, linter.calls)
}

func TestLint_UnknownTarget(t *testing.T) {
	linter := &fakeLinter{}
	svc := newService(&countingProvider{graph: scenarioGraph()}, linter)

	_, err := svc.Lint(context.Background(), Request{TargetName: "Z"})

	require.Error(t, err)
	assert.ErrorIs(t, err, projgraph.ErrTargetNotFound)
	assert.Contains(t, err.Error(), "'Z'")
	assert.Equal(t, 0, linter.calls)
}

func TestLint_AllInternalTargetsPreservesDuplicates(t *testing.T) {
	g := &projgraph.Graph{Projects: map[string]*projgraph.Project{
		"/p": {Name: "P", Path: "/p", Targets: []projgraph.Target{
			{Name: "X", Sources: []string{"x.swift"}},
			{Name: "Y", Sources: []string{"y.swift", "x.swift"}},
		}},
	}}
	linter := &fakeLinter{}
	svc := newService(&countingProvider{graph: g}, linter)

	_, err := svc.Lint(context.Background(), Request{Paths: []string{"."}})

	require.NoError(t, err)
	assert.Equal(t, []string{"x.swift", "y.swift", "x.swift"}, linter.paths)
}

func TestLint_GraphNotFound(t *testing.T) {
	provider := graphload.ProviderFunc(func(root string) (*projgraph.Graph, error) {
		return nil, &projgraph.GraphNotFoundError{Root: root, Err: errors.New("no manifest")}
	})
	linter := &fakeLinter{}
	svc := newService(provider, linter)

	_, err := svc.Lint(context.Background(), Request{Root: "/nowhere"})

	require.Error(t, err)
	assert.ErrorIs(t, err, projgraph.ErrGraphNotFound)
	assert.Contains(t, err.Error(), "Run tuist to fix that")
	assert.Equal(t, 0, linter.calls)
}

func TestLint_ExplicitPathsDoNotLoadGraph(t *testing.T) {
	provider := &countingProvider{err: errors.New("must not be called")}
	linter := &fakeLinter{}
	svc := newService(provider, linter)

	_, err := svc.Lint(context.Background(), Request{
		Paths:         []string{"Sources/", "missing.swift"},
		ExplicitPaths: true,
		Strict:        true,
	})

	require.NoError(t, err)
	assert.Equal(t, 0, provider.loads)
	assert.Equal(t, []string{"Sources/", "missing.swift"}, linter.paths)
	assert.Equal(t, lint.LeniencyStrict, linter.opts.Leniency)
}

func TestLint_TargetAndExplicitPathsAreExclusive(t *testing.T) {
	provider := &countingProvider{graph: scenarioGraph()}
	linter := &fakeLinter{}
	svc := newService(provider, linter)

	_, err := svc.Lint(context.Background(), Request{
		TargetName:    "A",
		Paths:         []string{"other.swift"},
		ExplicitPaths: true,
	})

	assert.ErrorIs(t, err, ErrTargetWithPaths)
	assert.Equal(t, 0, provider.loads)
	assert.Equal(t, 0, linter.calls)
}

func TestLint_ForwardsOptions(t *testing.T) {
	linter := &fakeLinter{}
	svc := newService(&countingProvider{graph: scenarioGraph()}, linter)

	_, err := svc.Lint(context.Background(), Request{
		TargetName:         "A",
		Quiet:              true,
		ConfigurationFiles: []string{".swiftlint.yml"},
	})

	require.NoError(t, err)
	assert.Equal(t, lint.Options{
		ConfigurationFiles: []string{".swiftlint.yml"},
		Leniency:           lint.LeniencyDefault,
		Quiet:              true,
	}, linter.opts)
}

func TestLint_WithDependencies(t *testing.T) {
	linter := &fakeLinter{}
	svc := newService(&countingProvider{graph: scenarioGraph()}, linter)

	_, err := svc.Lint(context.Background(), Request{TargetName: "A", WithDependencies: true})

	require.NoError(t, err)
	assert.Equal(t, []string{"a.swift", "b.swift", "core.swift"}, linter.paths)
}

func TestLint_EmptySelectionSkipsLinter(t *testing.T) {
	g := &projgraph.Graph{Projects: map[string]*projgraph.Project{
		"/vendor": {Name: "V", IsExternal: true, Targets: []projgraph.Target{{Name: "V", Sources: []string{"v.swift"}}}},
	}}
	linter := &fakeLinter{}
	svc := newService(&countingProvider{graph: g}, linter)

	report, err := svc.Lint(context.Background(), Request{})

	require.NoError(t, err)
	assert.Equal(t, 0, linter.calls)
	assert.Empty(t, report.Violations)
	assert.False(t, report.Failed())
}

func TestLint_WrapsEngineError(t *testing.T) {
	linter := &fakeLinter{err: errors.New("swiftlint exploded")}
	svc := newService(nil, linter)

	_, err := svc.Lint(context.Background(), Request{Paths: []string{"a.swift"}, ExplicitPaths: true})

	assert.EqualError(t, err, "failed to lint: swiftlint exploded")
}

func TestLint_ReturnsEngineReport(t *testing.T) {
	want := lint.Report{Files: 2, Violations: []lint.Violation{{File: "a.swift", Line: 1, Severity: lint.SeverityError, Message: "m"}}}
	svc := newService(&countingProvider{graph: scenarioGraph()}, &fakeLinter{report: want})

	report, err := svc.Lint(context.Background(), Request{TargetName: "A"})

	require.NoError(t, err)
	assert.Equal(t, want, report)
	assert.True(t, report.Failed())
}

func TestResolve_Idempotent(t *testing.T) {
	svc := newService(&countingProvider{graph: scenarioGraph()}, &fakeLinter{})

	first, err := svc.Resolve(Request{})
	require.NoError(t, err)
	second, err := svc.Resolve(Request{})
	require.NoError(t, err)

	assert.Equal(t, first, second)
	assert.Equal(t, []string{"a.swift", "b.swift", "core.swift"}, first)
}

func TestResolve_WarnsOnDuplicateTargetNames(t *testing.T) {
	g := &projgraph.Graph{Projects: map[string]*projgraph.Project{
		"/one": {Name: "One", Targets: []projgraph.Target{{Name: "Shared", Sources: []string{"one.swift"}}}},
		"/two": {Name: "Two", Targets: []projgraph.Target{{Name: "Shared", Sources: []string{"two.swift"}}}},
	}}
	var logs bytes.Buffer
	svc := New(&countingProvider{graph: g}, &fakeLinter{}, nil, logging.New(&logs, logging.Options{}))

	sources, err := svc.Resolve(Request{TargetName: "Shared"})

	require.NoError(t, err)
	assert.Equal(t, []string{"one.swift"}, sources)
	assert.Contains(t, logs.String(), "duplicate target name")
	assert.Contains(t, logs.String(), "target=Shared")
	assert.Contains(t, logs.String(), "selected=/one")
}

func TestFormat_ForwardsCheckMode(t *testing.T) {
	formatter := &fakeFormatter{}
	svc := New(&countingProvider{graph: scenarioGraph()}, nil, formatter, nil)

	result, err := svc.Format(context.Background(), Request{TargetName: "Core", ConfigurationFiles: []string{".swiftformat"}}, true)

	require.NoError(t, err)
	assert.Equal(t, []string{"core.swift"}, formatter.paths)
	assert.Equal(t, format.Options{ConfigurationFiles: []string{".swiftformat"}, Lint: true}, formatter.opts)
	assert.True(t, result.Failed())
}

func TestFormat_EmptySelection(t *testing.T) {
	formatter := &fakeFormatter{}
	svc := New(&countingProvider{graph: &projgraph.Graph{}}, nil, formatter, nil)

	result, err := svc.Format(context.Background(), Request{}, true)

	require.NoError(t, err)
	assert.Equal(t, 0, formatter.calls)
	assert.False(t, result.Failed())
}

func TestMissingCollaborators(t *testing.T) {
	svc := New(nil, nil, nil, nil)

	_, err := svc.Lint(context.Background(), Request{})
	assert.EqualError(t, err, "no linter configured")

	_, err = svc.Format(context.Background(), Request{}, false)
	assert.EqualError(t, err, "no formatter configured")

	_, err = svc.Resolve(Request{})
	assert.EqualError(t, err, "no graph provider configured")
}
