package format

import (
	"bytes"
	"context"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/sergi/go-diff/diffmatchpatch"
	"golang.org/x/tools/imports"
)

var skippedDirs = map[string]bool{
	".git":     true,
	"vendor":   true,
	"testdata": true,
}

// GoImports formats Go sources like goimports: gofmt plus import grouping and pruning.
type GoImports struct {
	// LocalPrefix groups imports with this prefix after third-party ones.
	LocalPrefix string
}

func (g *GoImports) Format(ctx context.Context, paths []string, opts Options) (Result, error) {
	files, err := collectGoFiles(paths)
	if err != nil {
		return Result{}, err
	}

	result := Result{Files: len(files), Lint: opts.Lint, Changes: []Change{}}
	for _, file := range files {
		if err := ctx.Err(); err != nil {
			return Result{}, err
		}

		change, changed, err := g.formatFile(file, opts.Lint)
		if err != nil {
			return Result{}, err
		}
		if changed {
			result.Changes = append(result.Changes, change)
		}
	}

	result.Summary = fmt.Sprintf("%d/%d files %s", len(result.Changes), len(files), summaryVerb(opts.Lint))
	return result, nil
}

func (g *GoImports) formatFile(path string, lintOnly bool) (Change, bool, error) {
	src, err := os.ReadFile(path)
	if err != nil {
		return Change{}, false, fmt.Errorf("failed to read %s: %w", path, err)
	}

	out, err := g.process(path, src)
	if err != nil {
		return Change{}, false, fmt.Errorf("failed to format %s: %w", path, err)
	}
	if bytes.Equal(src, out) {
		return Change{}, false, nil
	}

	change := diffChange(path, string(src), string(out))
	if lintOnly {
		change.Message = "file is not goimports-formatted"
		return change, true, nil
	}

	info, err := os.Stat(path)
	if err != nil {
		return Change{}, false, err
	}
	if err := os.WriteFile(path, out, info.Mode().Perm()); err != nil {
		return Change{}, false, fmt.Errorf("failed to write %s: %w", path, err)
	}
	return change, true, nil
}

// process runs imports.Process. imports.LocalPrefix is package state, so it is
// swapped in for the call and restored afterwards.
func (g *GoImports) process(path string, src []byte) ([]byte, error) {
	if g.LocalPrefix != "" {
		previous := imports.LocalPrefix
		imports.LocalPrefix = g.LocalPrefix
		defer func() { imports.LocalPrefix = previous }()
	}

	return imports.Process(path, src, &imports.Options{
		Comments:  true,
		TabIndent: true,
		TabWidth:  8,
		Fragment:  false,
	})
}

// diffChange summarizes a line diff between before and after.
func diffChange(path, before, after string) Change {
	dmp := diffmatchpatch.New()
	a, b, lines := dmp.DiffLinesToChars(before, after)
	diffs := dmp.DiffCharsToLines(dmp.DiffMain(a, b, false), lines)

	change := Change{File: path, Rule: EngineGoImports}
	line := 1
	for _, d := range diffs {
		n := countLines(d.Text)
		switch d.Type {
		case diffmatchpatch.DiffEqual:
			line += n
		case diffmatchpatch.DiffInsert:
			change.Insertions += n
		case diffmatchpatch.DiffDelete:
			change.Deletions += n
		}
		if d.Type != diffmatchpatch.DiffEqual && change.Line == 0 {
			change.Line = line
		}
	}
	return change
}

func countLines(text string) int {
	if text == "" {
		return 0
	}
	n := strings.Count(text, "\n")
	if !strings.HasSuffix(text, "\n") {
		n++
	}
	return n
}

func collectGoFiles(paths []string) ([]string, error) {
	var files []string
	for _, path := range paths {
		info, err := os.Stat(path)
		if err != nil {
			return nil, fmt.Errorf("failed to stat %s: %w", path, err)
		}
		if !info.IsDir() {
			if filepath.Ext(path) == ".go" {
				files = append(files, path)
			}
			continue
		}

		err = filepath.WalkDir(path, func(p string, d fs.DirEntry, walkErr error) error {
			if walkErr != nil {
				return walkErr
			}
			if d.IsDir() {
				if p != path && skippedDirs[d.Name()] {
					return filepath.SkipDir
				}
				return nil
			}
			if filepath.Ext(p) == ".go" {
				files = append(files, p)
			}
			return nil
		})
		if err != nil {
			return nil, fmt.Errorf("failed to walk %s: %w", path, err)
		}
	}
	return files, nil
}

func summaryVerb(lintOnly bool) string {
	if lintOnly {
		return "require formatting"
	}
	return "formatted"
}
