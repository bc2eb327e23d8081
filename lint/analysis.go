package lint

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"golang.org/x/tools/go/analysis"
	"golang.org/x/tools/go/analysis/checker"
	"golang.org/x/tools/go/analysis/passes/assign"
	"golang.org/x/tools/go/analysis/passes/atomic"
	"golang.org/x/tools/go/analysis/passes/bools"
	"golang.org/x/tools/go/analysis/passes/copylock"
	"golang.org/x/tools/go/analysis/passes/errorsas"
	"golang.org/x/tools/go/analysis/passes/httpresponse"
	"golang.org/x/tools/go/analysis/passes/lostcancel"
	"golang.org/x/tools/go/analysis/passes/nilfunc"
	"golang.org/x/tools/go/analysis/passes/printf"
	"golang.org/x/tools/go/analysis/passes/shift"
	"golang.org/x/tools/go/analysis/passes/stdmethods"
	"golang.org/x/tools/go/analysis/passes/structtag"
	"golang.org/x/tools/go/analysis/passes/unmarshal"
	"golang.org/x/tools/go/analysis/passes/unreachable"
	"golang.org/x/tools/go/analysis/passes/unusedresult"
	"golang.org/x/tools/go/packages"
)

// typecheckRule names violations raised for packages that fail to load.
const typecheckRule = "typecheck"

// DefaultAnalyzers is the vet-like suite used when Analysis.Analyzers is empty.
func DefaultAnalyzers() []*analysis.Analyzer {
	return []*analysis.Analyzer{
		assign.Analyzer,
		atomic.Analyzer,
		bools.Analyzer,
		copylock.Analyzer,
		errorsas.Analyzer,
		httpresponse.Analyzer,
		lostcancel.Analyzer,
		nilfunc.Analyzer,
		printf.Analyzer,
		shift.Analyzer,
		stdmethods.Analyzer,
		structtag.Analyzer,
		unmarshal.Analyzer,
		unreachable.Analyzer,
		unusedresult.Analyzer,
	}
}

// Analysis lints Go sources with go/analysis analyzers. Diagnostics are warnings;
// strict leniency turns them into errors.
type Analysis struct {
	Analyzers []*analysis.Analyzer
	Dir       string
}

func (a *Analysis) Lint(ctx context.Context, paths []string, opts Options) (Report, error) {
	report := Report{Files: len(paths), Violations: []Violation{}}

	patterns, files, err := packagePatterns(paths)
	if err != nil {
		return Report{}, err
	}
	if len(patterns) == 0 {
		return report, nil
	}

	cfg := &packages.Config{
		Mode:    packages.LoadAllSyntax,
		Context: ctx,
		Dir:     a.Dir,
	}
	pkgs, err := packages.Load(cfg, patterns...)
	if err != nil {
		return Report{}, fmt.Errorf("failed to load packages: %w", err)
	}

	broken := make(map[*packages.Package]bool)
	for _, pkg := range pkgs {
		for _, pkgErr := range pkg.Errors {
			broken[pkg] = true
			report.Violations = append(report.Violations, packageErrorViolation(pkgErr))
		}
	}

	analyzers := a.Analyzers
	if len(analyzers) == 0 {
		analyzers = DefaultAnalyzers()
	}

	graph, err := checker.Analyze(analyzers, pkgs, &checker.Options{})
	if err != nil && len(broken) == 0 {
		return Report{}, fmt.Errorf("failed to analyze packages: %w", err)
	}
	if graph == nil {
		return report, nil
	}

	for _, act := range graph.Roots {
		if act.Err != nil {
			if broken[act.Package] {
				continue
			}
			return Report{}, fmt.Errorf("analyzer %s failed on %s: %w", act.Analyzer.Name, act.Package.PkgPath, act.Err)
		}
		for _, diag := range act.Diagnostics {
			position := act.Package.Fset.Position(diag.Pos)
			if files != nil && !files[filepath.Clean(position.Filename)] {
				continue
			}
			report.Violations = append(report.Violations, Violation{
				File:     position.Filename,
				Line:     position.Line,
				Column:   position.Column,
				Severity: SeverityWarning,
				Rule:     act.Analyzer.Name,
				Message:  diag.Message,
			})
		}
	}

	report.Violations = escalate(report.Violations, opts.Leniency)
	return report, nil
}

// packagePatterns turns paths into go/packages patterns. Directories match
// recursively; single files are loaded with their package and, if any were
// given, the returned set limits diagnostics to them.
func packagePatterns(paths []string) ([]string, map[string]bool, error) {
	var patterns []string
	var files map[string]bool
	dirs := 0

	for _, path := range paths {
		info, err := os.Stat(path)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to stat %s: %w", path, err)
		}

		if info.IsDir() {
			dir := path
			if !filepath.IsAbs(dir) && !strings.HasPrefix(dir, ".") {
				dir = "." + string(filepath.Separator) + dir
			}
			patterns = append(patterns, strings.TrimSuffix(dir, string(filepath.Separator))+"/...")
			dirs++
			continue
		}

		if filepath.Ext(path) != ".go" {
			continue
		}
		absPath, err := filepath.Abs(path)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to resolve path %s: %w", path, err)
		}
		if files == nil {
			files = make(map[string]bool)
		}
		absPath = filepath.Clean(absPath)
		if files[absPath] {
			continue
		}
		files[absPath] = true
		patterns = append(patterns, "file="+absPath)
	}

	if files != nil && dirs > 0 {
		// Directories were requested too; keep every diagnostic.
		files = nil
	}
	return patterns, files, nil
}

func packageErrorViolation(err packages.Error) Violation {
	v := Violation{Severity: SeverityError, Rule: typecheckRule, Message: err.Msg}

	// Pos is "file:line:col", "file:line" or "-".
	parts := strings.Split(err.Pos, ":")
	if len(parts) > 0 && parts[0] != "-" {
		v.File = parts[0]
	}
	if len(parts) > 1 {
		fmt.Sscanf(parts[1], "%d", &v.Line)
	}
	if len(parts) > 2 {
		fmt.Sscanf(parts[2], "%d", &v.Column)
	}
	return v
}
