package watch

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"sync"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/JaroVoltix/TestLint/internal/app"
)

// NewCommand returns a new watch command instance.
func NewCommand() *cobra.Command {
	sel := &app.Selection{}
	var extensions []string

	cmd := &cobra.Command{
		Use:   "watch [filePaths...]",
		Short: "Lint again whenever a source file changes",
		Long: `Lint the selected sources, then watch the project directory and lint again
after every change to a source file. Stop with Ctrl+C.

Examples:
  tuist-lint watch
  tuist-lint watch -t App --strict
  tuist-lint watch --ext .swift,.h`,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, cancel := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer cancel()
			return runWatch(ctx, cmd, sel, extensions, args)
		},
	}

	sel.AddFlags(cmd)
	cmd.Flags().StringSliceVar(&extensions, "ext", []string{".swift", ".go"}, "File extensions that trigger a new run (comma-separated)")
	return cmd
}

func runWatch(ctx context.Context, cmd *cobra.Command, sel *app.Selection, extensions []string, args []string) error {
	a, err := sel.NewApp(cmd)
	if err != nil {
		return err
	}

	reporter, err := a.Reporter(sel.Format)
	if err != nil {
		return err
	}
	cmd.SilenceUsage = true

	req := sel.LintRequest(cmd, a, args)
	out := cmd.OutOrStdout()

	var mu sync.Mutex
	run := func() {
		mu.Lock()
		defer mu.Unlock()

		rep, err := a.Service.Lint(ctx, req)
		if err != nil {
			a.Logger.Error("lint failed", "error", err)
			return
		}
		rendered, err := reporter.Lint(rep, app.ReportOptions(out))
		if err != nil {
			a.Logger.Error("failed to render report", "error", err)
			return
		}
		fmt.Fprint(out, rendered)
	}

	run()

	roots := watchRoots(a.Root, req.Paths, req.ExplicitPaths)
	for _, root := range roots {
		fmt.Fprintf(out, "Watching %s\n", root)
	}
	fmt.Fprintf(out, "Press Ctrl+C to stop\n")

	w := newWatcher(extensions, a.Logger, run)
	if err := w.watchDirs(ctx, roots); err != nil {
		return fmt.Errorf("failed to watch directories: %w", err)
	}
	return nil
}

// watchRoots returns the directories to watch: the explicit paths (files map to
// their directory) or the graph root.
func watchRoots(root string, paths []string, explicit bool) []string {
	if !explicit {
		return []string{root}
	}

	seen := make(map[string]bool)
	var roots []string
	for _, p := range paths {
		dir := p
		if info, err := os.Stat(p); err == nil && !info.IsDir() {
			dir = filepath.Dir(p)
		}
		abs, err := filepath.Abs(dir)
		if err != nil || seen[abs] {
			continue
		}
		seen[abs] = true
		roots = append(roots, abs)
	}
	if len(roots) == 0 {
		return []string{root}
	}
	return roots
}
