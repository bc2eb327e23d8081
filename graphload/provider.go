// Package graphload produces project graphs for a root directory.
//
// Every failure is reported as a *projgraph.GraphNotFoundError so callers only need
// errors.Is(err, projgraph.ErrGraphNotFound) to detect it.
package graphload

import (
	"errors"
	"fmt"
	"time"

	"github.com/JaroVoltix/TestLint/internal/execrun"
	"github.com/JaroVoltix/TestLint/internal/pathres"
	"github.com/JaroVoltix/TestLint/projgraph"
)

// Provider loads the graph rooted at root. An empty root means the current directory.
type Provider interface {
	Load(root string) (*projgraph.Graph, error)
}

// ProviderFunc adapts a function to Provider.
type ProviderFunc func(root string) (*projgraph.Graph, error)

func (f ProviderFunc) Load(root string) (*projgraph.Graph, error) {
	return f(root)
}

// Kind selects which provider Discover builds.
type Kind string

const (
	KindAuto     Kind = "auto"
	KindManifest Kind = "manifest"
	KindTuist    Kind = "tuist"
	KindGo       Kind = "go"
)

// Kinds lists the accepted provider kinds.
func Kinds() []Kind {
	return []Kind{KindAuto, KindManifest, KindTuist, KindGo}
}

// Options configures the providers built by Discover.
type Options struct {
	ManifestNames []string
	TuistBinary   string
	Timeout       time.Duration
	Runner        execrun.Runner
	GoTests       bool
}

// Discover returns the provider for kind. KindAuto tries a manifest file first,
// then the tuist command, then a Go module.
func Discover(kind Kind, opts Options) (Provider, error) {
	manifest := &ManifestProvider{FileNames: opts.ManifestNames}
	tuist := &TuistProvider{Binary: opts.TuistBinary, Timeout: opts.Timeout, Runner: opts.Runner}
	goModule := &GoModuleProvider{Tests: opts.GoTests}

	switch kind {
	case KindAuto, "":
		return Chain{manifest, tuist, goModule}, nil
	case KindManifest:
		return manifest, nil
	case KindTuist:
		return tuist, nil
	case KindGo:
		return goModule, nil
	default:
		return nil, fmt.Errorf("unknown graph provider: %s (valid options: %v)", kind, Kinds())
	}
}

// Chain tries each provider in order and returns the first graph loaded.
type Chain []Provider

func (c Chain) Load(root string) (*projgraph.Graph, error) {
	var causes []error
	for _, provider := range c {
		g, err := provider.Load(root)
		if err == nil {
			return g, nil
		}
		causes = append(causes, cause(err))
	}
	return nil, notFound(root, errors.Join(causes...))
}

func notFound(root string, err error) error {
	return &projgraph.GraphNotFoundError{Root: root, Err: err}
}

// cause strips a GraphNotFoundError wrapper so chained messages do not repeat it.
func cause(err error) error {
	var gnf *projgraph.GraphNotFoundError
	if errors.As(err, &gnf) && gnf.Err != nil {
		return gnf.Err
	}
	return err
}

func resolveRoot(root string) (string, error) {
	resolver, err := pathres.NewPathResolver(root, true)
	if err != nil {
		return "", err
	}
	return resolver.BaseDir(), nil
}
