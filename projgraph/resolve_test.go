package projgraph

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func vendoredGraph() *Graph {
	return &Graph{
		Name: "App",
		Projects: map[string]*Project{
			"/app": {
				Name: "P1",
				Path: "/app",
				Targets: []Target{
					{Name: "A", Sources: []string{"a.swift", "b.swift"}},
				},
			},
			"/vendor": {
				Name:       "P2",
				Path:       "/vendor",
				IsExternal: true,
				Targets: []Target{
					{Name: "A", Sources: []string{"vendor.swift"}},
					{Name: "OnlyExternal", Sources: []string{"lib.swift"}},
				},
			},
		},
	}
}

func TestSourcesForTarget_IgnoresExternalTargetWithSameName(t *testing.T) {
	sources, err := SourcesForTarget(vendoredGraph(), "A")

	require.NoError(t, err)
	assert.Equal(t, []string{"a.swift", "b.swift"}, sources)
}

func TestSourcesForTarget_UnknownName(t *testing.T) {
	_, err := SourcesForTarget(vendoredGraph(), "Z")

	require.Error(t, err)
	var notFound *TargetNotFoundError
	require.True(t, errors.As(err, &notFound))
	assert.Equal(t, "Z", notFound.Name)
	assert.True(t, errors.Is(err, ErrTargetNotFound))
	assert.Equal(t, "a target with a name 'Z' not found in the project", err.Error())
}

func TestSourcesForTarget_ExternalOnlyTargetIsNotFound(t *testing.T) {
	sources, err := SourcesForTarget(vendoredGraph(), "OnlyExternal")

	assert.Nil(t, sources)
	assert.ErrorIs(t, err, ErrTargetNotFound)
}

func TestSourcesForTarget_EmptyName(t *testing.T) {
	_, err := SourcesForTarget(vendoredGraph(), "")

	assert.ErrorIs(t, err, ErrEmptyTargetName)
}

func TestSourcesForTarget_PreservesOrderAndDuplicates(t *testing.T) {
	g := &Graph{Projects: map[string]*Project{
		"/app": {Targets: []Target{
			{Name: "Core", Sources: []string{"z.swift", "a.swift", "z.swift"}},
		}},
	}}

	sources, err := SourcesForTarget(g, "Core")

	require.NoError(t, err)
	assert.Equal(t, []string{"z.swift", "a.swift", "z.swift"}, sources)
}

func TestSourcesForTarget_FirstMatchWins(t *testing.T) {
	g := &Graph{Projects: map[string]*Project{
		"/a": {Targets: []Target{{Name: "Core", Sources: []string{"first.swift"}}}},
		"/b": {Targets: []Target{{Name: "Core", Sources: []string{"second.swift"}}}},
	}}

	sources, err := SourcesForTarget(g, "Core")

	require.NoError(t, err)
	assert.Equal(t, []string{"first.swift"}, sources)
}

func TestAllSources_ConcatenatesWithoutDedup(t *testing.T) {
	g := &Graph{Projects: map[string]*Project{
		"/app": {Targets: []Target{
			{Name: "X", Sources: []string{"x.swift"}},
			{Name: "Y", Sources: []string{"y.swift", "x.swift"}},
		}},
	}}

	assert.Equal(t, []string{"x.swift", "y.swift", "x.swift"}, AllSources(g))
}

func TestAllSources_SkipsExternalProjects(t *testing.T) {
	assert.Equal(t, []string{"a.swift", "b.swift"}, AllSources(vendoredGraph()))
}

func TestAllSources_AllExternalGraphIsEmpty(t *testing.T) {
	g := &Graph{Projects: map[string]*Project{
		"/vendor": {IsExternal: true, Targets: []Target{{Name: "V", Sources: []string{"v.swift"}}}},
	}}

	sources := AllSources(g)

	assert.NotNil(t, sources)
	assert.Empty(t, sources)
	assert.Empty(t, AllSources(&Graph{}))
}

func TestAllSources_LengthIsSumOfInternalSources(t *testing.T) {
	g := &Graph{Projects: map[string]*Project{
		"/a": {Targets: []Target{{Name: "A", Sources: []string{"1", "2"}}, {Name: "B"}}},
		"/b": {Targets: []Target{{Name: "C", Sources: []string{"3", "4", "5"}}}},
		"/c": {IsExternal: true, Targets: []Target{{Name: "D", Sources: []string{"6"}}}},
	}}

	want := 0
	for _, target := range InternalTargets(g) {
		want += len(target.Sources)
	}

	assert.Len(t, AllSources(g), want)
	assert.Equal(t, 5, want)
}

func TestResolution_IsIdempotent(t *testing.T) {
	g := vendoredGraph()

	first, err := SourcesForTarget(g, "A")
	require.NoError(t, err)
	second, err := SourcesForTarget(g, "A")
	require.NoError(t, err)

	assert.Equal(t, first, second)
	assert.Equal(t, AllSources(g), AllSources(g))
}

func TestExplicitPaths_ReturnsCopy(t *testing.T) {
	input := []string{".", "missing/file.swift"}

	got := ExplicitPaths(input)
	got[0] = "changed"

	assert.Equal(t, []string{".", "missing/file.swift"}, input)
	assert.Equal(t, []string{}, ExplicitPaths(nil))
}

func TestDuplicateTargetNames(t *testing.T) {
	g := &Graph{Projects: map[string]*Project{
		"/a":      {Targets: []Target{{Name: "Core"}, {Name: "App"}}},
		"/b":      {Targets: []Target{{Name: "Core"}}},
		"/vendor": {IsExternal: true, Targets: []Target{{Name: "App"}}},
	}}

	assert.Equal(t, map[string][]string{"Core": {"/a", "/b"}}, DuplicateTargetNames(g))
}

func TestGraphNotFoundError(t *testing.T) {
	cause := errors.New("no manifest")
	err := &GraphNotFoundError{Root: "/repo", Err: cause}

	assert.ErrorIs(t, err, ErrGraphNotFound)
	assert.ErrorIs(t, err, cause)
	assert.Equal(t, "the project's graph can not be found at /repo: no manifest. Run tuist to fix that", err.Error())
}
