package graphload

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/JaroVoltix/TestLint/internal/execrun"
	"github.com/JaroVoltix/TestLint/projgraph"
)

const (
	defaultTuistBinary  = "tuist"
	defaultTuistTimeout = 2 * time.Minute
)

// TuistProvider asks the tuist CLI to dump the graph of the project at root.
type TuistProvider struct {
	Binary  string
	Timeout time.Duration
	Runner  execrun.Runner
}

func (p *TuistProvider) Load(root string) (*projgraph.Graph, error) {
	absRoot, err := resolveRoot(root)
	if err != nil {
		return nil, notFound(root, err)
	}

	outputDir, err := os.MkdirTemp("", "tuist-lint-graph-")
	if err != nil {
		return nil, notFound(absRoot, fmt.Errorf("failed to create output directory: %w", err))
	}
	defer os.RemoveAll(outputDir)

	command := p.command(absRoot, outputDir)
	if _, err := p.runner().Run(context.Background(), command); err != nil {
		return nil, notFound(absRoot, fmt.Errorf("%s: %w", command, err))
	}

	manifestPath := filepath.Join(outputDir, "graph.json")
	data, err := os.ReadFile(manifestPath)
	if err != nil {
		return nil, notFound(absRoot, fmt.Errorf("failed to read graph output: %w", err))
	}

	g, err := DecodeManifest(data, ManifestJSON, absRoot)
	if err != nil {
		return nil, notFound(absRoot, fmt.Errorf("failed to decode graph output: %w", err))
	}
	return g, nil
}

func (p *TuistProvider) command(root, outputDir string) execrun.Command {
	binary := p.Binary
	if binary == "" {
		binary = defaultTuistBinary
	}
	timeout := p.Timeout
	if timeout <= 0 {
		timeout = defaultTuistTimeout
	}
	return execrun.Command{
		Name: binary,
		Args: []string{
			"graph",
			"--format", "json",
			"--output-path", outputDir,
			"--path", root,
		},
		Dir:     root,
		Timeout: timeout,
	}
}

func (p *TuistProvider) runner() execrun.Runner {
	if p.Runner != nil {
		return p.Runner
	}
	return execrun.Exec{}
}
