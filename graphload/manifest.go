package graphload

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/JaroVoltix/TestLint/internal/pathres"
	"github.com/JaroVoltix/TestLint/projgraph"
)

// DefaultManifestNames are looked up, in order, under the root directory.
var DefaultManifestNames = []string{"graph.json", "graph.yaml", "graph.yml"}

// ManifestProvider reads a graph manifest written by `tuist graph --format json`
// or an equivalent YAML file.
type ManifestProvider struct {
	FileNames []string
}

func (p *ManifestProvider) Load(root string) (*projgraph.Graph, error) {
	absRoot, err := resolveRoot(root)
	if err != nil {
		return nil, notFound(root, err)
	}

	names := p.FileNames
	if len(names) == 0 {
		names = DefaultManifestNames
	}

	for _, name := range names {
		manifestPath := name
		if !filepath.IsAbs(manifestPath) {
			manifestPath = filepath.Join(absRoot, name)
		}
		data, err := os.ReadFile(manifestPath)
		if errors.Is(err, os.ErrNotExist) {
			continue
		}
		if err != nil {
			return nil, notFound(absRoot, fmt.Errorf("failed to read %s: %w", manifestPath, err))
		}

		g, err := DecodeManifest(data, formatForPath(manifestPath), filepath.Dir(manifestPath))
		if err != nil {
			return nil, notFound(absRoot, fmt.Errorf("failed to decode %s: %w", manifestPath, err))
		}
		return g, nil
	}

	return nil, notFound(absRoot, fmt.Errorf("no graph manifest (%s)", strings.Join(names, ", ")))
}

// ManifestFormat is the encoding of a manifest file.
type ManifestFormat string

const (
	ManifestJSON ManifestFormat = "json"
	ManifestYAML ManifestFormat = "yaml"
)

func formatForPath(path string) ManifestFormat {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return ManifestYAML
	default:
		return ManifestJSON
	}
}

// DecodeManifest decodes a manifest and makes every project and source path absolute.
// Relative project paths resolve against baseDir, relative sources against their project.
func DecodeManifest(data []byte, format ManifestFormat, baseDir string) (*projgraph.Graph, error) {
	var g projgraph.Graph
	switch format {
	case ManifestYAML:
		if err := yaml.Unmarshal(data, &g); err != nil {
			return nil, err
		}
	default:
		if err := json.Unmarshal(data, &g); err != nil {
			return nil, err
		}
	}

	if g.Projects == nil {
		return nil, fmt.Errorf("manifest has no projects")
	}

	baseResolver, err := pathres.NewPathResolver(baseDir, true)
	if err != nil {
		return nil, err
	}

	for key, project := range g.Projects {
		if project == nil {
			return nil, fmt.Errorf("project %s is empty", key)
		}
		if err := absolutizeProject(baseResolver, key, project); err != nil {
			return nil, err
		}
	}
	return &g, nil
}

func absolutizeProject(baseResolver pathres.PathResolver, key string, project *projgraph.Project) error {
	projectPath := project.Path
	if projectPath == "" {
		projectPath = key
	}
	absProject, err := baseResolver.Resolve(pathres.RawPath(projectPath))
	if err != nil {
		return fmt.Errorf("failed to resolve project %s: %w", key, err)
	}
	project.Path = absProject.String()

	projectResolver, err := pathres.NewPathResolver(project.Path, true)
	if err != nil {
		return err
	}
	for i := range project.Targets {
		target := &project.Targets[i]
		for j, source := range target.Sources {
			absSource, err := projectResolver.Resolve(pathres.RawPath(source))
			if err != nil {
				return fmt.Errorf("failed to resolve source %q of target %s: %w", source, target.Name, err)
			}
			target.Sources[j] = absSource.String()
		}
	}
	return nil
}
