package lint

import (
	"fmt"
	"time"

	"github.com/JaroVoltix/TestLint/internal/execrun"
)

// EngineOptions configures the Linter built by New.
type EngineOptions struct {
	Binary             string
	Args               []string
	StrictArgs         []string
	QuietArgs          []string
	ConfigFlag         string
	ViolationExitCodes []int
	Dir                string
	Timeout            time.Duration
	Runner             execrun.Runner
}

// New builds the Linter for engine.
func New(engine string, opts EngineOptions) (Linter, error) {
	switch engine {
	case EngineSwiftLint, "":
		return &SwiftLint{Binary: opts.Binary, Dir: opts.Dir, Timeout: opts.Timeout, Runner: opts.Runner}, nil
	case EngineGo:
		return &Analysis{Dir: opts.Dir}, nil
	case EngineCommand:
		return &Command{
			Binary:             opts.Binary,
			Args:               opts.Args,
			StrictArgs:         opts.StrictArgs,
			QuietArgs:          opts.QuietArgs,
			ConfigFlag:         opts.ConfigFlag,
			ViolationExitCodes: opts.ViolationExitCodes,
			Dir:                opts.Dir,
			Timeout:            opts.Timeout,
			Runner:             opts.Runner,
		}, nil
	default:
		return nil, fmt.Errorf("unknown lint engine: %s (valid options: %v)", engine, Engines())
	}
}
