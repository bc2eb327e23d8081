package projgraph

import "sort"

// Graph is a snapshot of a build system's projects and targets, including
// external dependencies.
type Graph struct {
	Name     string              `json:"name" yaml:"name"`
	Path     string              `json:"path" yaml:"path"`
	Projects map[string]*Project `json:"projects" yaml:"projects"`
}

// Project groups targets. External projects are third-party or vendored dependencies.
type Project struct {
	Name       string   `json:"name" yaml:"name"`
	Path       string   `json:"path" yaml:"path"`
	IsExternal bool     `json:"isExternal" yaml:"isExternal"`
	Targets    []Target `json:"targets" yaml:"targets"`
}

// Target is a named build unit with its source files.
type Target struct {
	Name         string       `json:"name" yaml:"name"`
	Sources      []string     `json:"sources" yaml:"sources"`
	Dependencies []Dependency `json:"dependencies,omitempty" yaml:"dependencies,omitempty"`
}

// DependencyKind identifies what a target dependency points at.
type DependencyKind string

const (
	DependencyTarget   DependencyKind = "target"
	DependencyProject  DependencyKind = "project"
	DependencyExternal DependencyKind = "external"
	DependencyOther    DependencyKind = "other"
)

// Dependency is a single edge declared by a target.
type Dependency struct {
	Kind DependencyKind
	Name string
	Path string
}

// ProjectKeys returns the project keys in iteration order.
func (g *Graph) ProjectKeys() []string {
	if g == nil {
		return nil
	}
	keys := make([]string, 0, len(g.Projects))
	for key := range g.Projects {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	return keys
}

// OwnedTarget is a target together with the key of the project declaring it.
type OwnedTarget struct {
	ProjectKey string
	Project    *Project
	Target     Target
}

// AllTargets returns every target of the graph, external ones included.
func AllTargets(g *Graph) []OwnedTarget {
	var targets []OwnedTarget
	for _, key := range g.ProjectKeys() {
		project := g.Projects[key]
		if project == nil {
			continue
		}
		for _, target := range project.Targets {
			targets = append(targets, OwnedTarget{ProjectKey: key, Project: project, Target: target})
		}
	}
	return targets
}

// internalTargets returns the targets of non-external projects.
func internalTargets(g *Graph) []OwnedTarget {
	var targets []OwnedTarget
	for _, owned := range AllTargets(g) {
		if owned.Project.IsExternal {
			continue
		}
		targets = append(targets, owned)
	}
	return targets
}

// InternalTargets returns the targets that belong to the user's own projects.
// Projects are visited in ascending key order and targets in declaration order,
// but callers should treat the order as unspecified.
func InternalTargets(g *Graph) []Target {
	owned := internalTargets(g)
	targets := make([]Target, 0, len(owned))
	for _, o := range owned {
		targets = append(targets, o.Target)
	}
	return targets
}
