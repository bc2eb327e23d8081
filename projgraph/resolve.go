package projgraph

// SourcesForTarget returns the sources of the first internal target named name.
// The slice is returned as stored on the target, order and duplicates included.
// Targets of external projects never match, even when no internal target shares the name.
func SourcesForTarget(g *Graph, name string) ([]string, error) {
	owned, err := findInternalTarget(g, name)
	if err != nil {
		return nil, err
	}
	return owned.Target.Sources, nil
}

// AllSources concatenates the sources of every internal target in iteration order.
// Nothing is deduplicated or sorted.
func AllSources(g *Graph) []string {
	sources := []string{}
	for _, target := range InternalTargets(g) {
		sources = append(sources, target.Sources...)
	}
	return sources
}

// ExplicitPaths passes caller supplied paths through unchanged.
// Existence is checked by the linter, not here.
func ExplicitPaths(paths []string) []string {
	return append([]string{}, paths...)
}

// DuplicateTargetNames returns internal target names declared more than once,
// mapped to the keys of the projects declaring them.
func DuplicateTargetNames(g *Graph) map[string][]string {
	owners := make(map[string][]string)
	for _, owned := range internalTargets(g) {
		owners[owned.Target.Name] = append(owners[owned.Target.Name], owned.ProjectKey)
	}

	duplicates := make(map[string][]string)
	for name, projects := range owners {
		if len(projects) > 1 {
			duplicates[name] = projects
		}
	}
	return duplicates
}

func findInternalTarget(g *Graph, name string) (OwnedTarget, error) {
	if name == "" {
		return OwnedTarget{}, ErrEmptyTargetName
	}
	for _, owned := range internalTargets(g) {
		if owned.Target.Name == name {
			return owned, nil
		}
	}
	return OwnedTarget{}, &TargetNotFoundError{Name: name}
}
