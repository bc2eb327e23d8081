package graphload

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"sort"
	"strings"

	"golang.org/x/tools/go/packages"

	"github.com/JaroVoltix/TestLint/projgraph"
)

const goModuleLoadMode = packages.NeedName |
	packages.NeedFiles |
	packages.NeedImports |
	packages.NeedDeps |
	packages.NeedModule

// GoModuleProvider builds a graph from the Go module at root. Each module is a
// project, external unless it is the main module, and each package a target.
type GoModuleProvider struct {
	// Tests adds _test.go files and test-only imports to the targets.
	Tests bool
}

func (p *GoModuleProvider) Load(root string) (*projgraph.Graph, error) {
	absRoot, err := resolveRoot(root)
	if err != nil {
		return nil, notFound(root, err)
	}

	if _, err := os.Stat(filepath.Join(absRoot, "go.mod")); err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, notFound(absRoot, fmt.Errorf("no go.mod"))
		}
		return nil, notFound(absRoot, err)
	}

	cfg := &packages.Config{Mode: goModuleLoadMode, Dir: absRoot, Tests: p.Tests}
	pkgs, err := packages.Load(cfg, "./...")
	if err != nil {
		return nil, notFound(absRoot, fmt.Errorf("load packages: %w", err))
	}

	g, err := graphFromPackages(pkgs)
	if err != nil {
		return nil, notFound(absRoot, err)
	}
	g.Path = absRoot
	return g, nil
}

func graphFromPackages(pkgs []*packages.Package) (*projgraph.Graph, error) {
	g := &projgraph.Graph{Projects: make(map[string]*projgraph.Project)}

	var loadErr error
	packages.Visit(pkgs, nil, func(pkg *packages.Package) {
		if loadErr == nil && len(pkg.Errors) > 0 {
			loadErr = fmt.Errorf("package %s: %s", pkg.PkgPath, pkg.Errors[0].Msg)
		}
		if pkg.Module == nil {
			// standard library
			return
		}

		if strings.HasSuffix(pkg.PkgPath, ".test") {
			// generated test main
			return
		}

		project := ensureProject(g, pkg.Module)
		addPackageTarget(project, pkg)
		if pkg.Module.Main && g.Name == "" {
			g.Name = pkg.Module.Path
		}
	})
	if loadErr != nil {
		return nil, loadErr
	}

	for _, project := range g.Projects {
		sort.Slice(project.Targets, func(i, j int) bool {
			return project.Targets[i].Name < project.Targets[j].Name
		})
	}
	return g, nil
}

// addPackageTarget merges test variants of a package into one target named by its import path.
func addPackageTarget(project *projgraph.Project, pkg *packages.Package) {
	deps := packageDependencies(pkg)
	for i := range project.Targets {
		target := &project.Targets[i]
		if target.Name != pkg.PkgPath {
			continue
		}
		for _, file := range pkg.GoFiles {
			if !slices.Contains(target.Sources, file) {
				target.Sources = append(target.Sources, file)
			}
		}
		for _, dep := range deps {
			if !slices.Contains(target.Dependencies, dep) {
				target.Dependencies = append(target.Dependencies, dep)
			}
		}
		return
	}

	project.Targets = append(project.Targets, projgraph.Target{
		Name:         pkg.PkgPath,
		Sources:      append([]string{}, pkg.GoFiles...),
		Dependencies: deps,
	})
}

func ensureProject(g *projgraph.Graph, module *packages.Module) *projgraph.Project {
	if project, ok := g.Projects[module.Path]; ok {
		return project
	}
	project := &projgraph.Project{
		Name:       module.Path,
		Path:       module.Dir,
		IsExternal: !module.Main,
	}
	g.Projects[module.Path] = project
	return project
}

func packageDependencies(pkg *packages.Package) []projgraph.Dependency {
	importPaths := make([]string, 0, len(pkg.Imports))
	for path := range pkg.Imports {
		importPaths = append(importPaths, path)
	}
	sort.Strings(importPaths)

	var deps []projgraph.Dependency
	for _, path := range importPaths {
		imported := pkg.Imports[path]
		if imported.Module == nil {
			continue
		}
		if imported.Module.Path == pkg.Module.Path {
			deps = append(deps, projgraph.Dependency{Kind: projgraph.DependencyTarget, Name: imported.PkgPath})
			continue
		}
		deps = append(deps, projgraph.Dependency{
			Kind: projgraph.DependencyProject,
			Name: imported.PkgPath,
			Path: imported.Module.Path,
		})
	}
	return deps
}
