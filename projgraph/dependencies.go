package projgraph

import (
	"errors"
	"fmt"

	graphlib "github.com/dominikbraun/graph"
)

// SourcesForTargetWithDependencies returns the sources of the named internal target
// followed by the sources of every internal target it transitively depends on.
// Dependencies on external or unknown targets are skipped.
func SourcesForTargetWithDependencies(g *Graph, name string) ([]string, error) {
	root, err := findInternalTarget(g, name)
	if err != nil {
		return nil, err
	}

	targetGraph, err := buildTargetGraph(g)
	if err != nil {
		return nil, err
	}

	rootKey := targetKey(root.ProjectKey, root.Target.Name)
	reachable := make(map[string]bool)
	err = graphlib.DFS(targetGraph, rootKey, func(key string) bool {
		reachable[key] = true
		return false
	})
	if err != nil {
		return nil, fmt.Errorf("failed to walk dependencies of %s: %w", name, err)
	}

	sources := append([]string{}, root.Target.Sources...)
	seen := map[string]bool{rootKey: true}
	for _, owned := range internalTargets(g) {
		key := targetKey(owned.ProjectKey, owned.Target.Name)
		if !reachable[key] || seen[key] {
			continue
		}
		seen[key] = true
		sources = append(sources, owned.Target.Sources...)
	}
	return sources, nil
}

func buildTargetGraph(g *Graph) (graphlib.Graph[string, string], error) {
	targetGraph := graphlib.New(graphlib.StringHash, graphlib.Directed())

	owned := internalTargets(g)
	for _, o := range owned {
		err := targetGraph.AddVertex(targetKey(o.ProjectKey, o.Target.Name))
		if err != nil && !errors.Is(err, graphlib.ErrVertexAlreadyExists) {
			return nil, fmt.Errorf("failed to add target %s: %w", o.Target.Name, err)
		}
	}

	for _, o := range owned {
		from := targetKey(o.ProjectKey, o.Target.Name)
		for _, dep := range o.Target.Dependencies {
			projectKey, ok := dependencyProjectKey(g, o.ProjectKey, dep)
			if !ok {
				continue
			}
			to := targetKey(projectKey, dep.Name)
			if _, err := targetGraph.Vertex(to); err != nil {
				continue
			}
			err := targetGraph.AddEdge(from, to)
			if err != nil && !errors.Is(err, graphlib.ErrEdgeAlreadyExists) {
				return nil, fmt.Errorf("failed to add dependency %s -> %s: %w", o.Target.Name, dep.Name, err)
			}
		}
	}

	return targetGraph, nil
}

// dependencyProjectKey finds the internal project a dependency points into.
func dependencyProjectKey(g *Graph, ownerKey string, dep Dependency) (string, bool) {
	switch dep.Kind {
	case DependencyTarget:
		return ownerKey, true
	case DependencyProject:
		for _, key := range g.ProjectKeys() {
			project := g.Projects[key]
			if project == nil || project.IsExternal {
				continue
			}
			if key == dep.Path || project.Path == dep.Path {
				return key, true
			}
		}
	}
	return "", false
}

func targetKey(projectKey, targetName string) string {
	return projectKey + "::" + targetName
}
