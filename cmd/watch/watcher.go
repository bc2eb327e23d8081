package watch

import (
	"context"
	"errors"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/fsnotify/fsnotify"
)

const debounceInterval = 300 * time.Millisecond

var skippedDirs = map[string]bool{
	".git":         true,
	".build":       true,
	".swiftpm":     true,
	"DerivedData":  true,
	"node_modules": true,
	"vendor":       true,
	".idea":        true,
	".vscode":      true,
}

type watcher struct {
	extensions map[string]bool
	debounce   time.Duration
	logger     *slog.Logger
	onChange   func()
}

func newWatcher(extensions []string, logger *slog.Logger, onChange func()) *watcher {
	exts := make(map[string]bool, len(extensions))
	for _, ext := range extensions {
		ext = strings.TrimSpace(ext)
		if ext == "" {
			continue
		}
		if !strings.HasPrefix(ext, ".") {
			ext = "." + ext
		}
		exts[ext] = true
	}
	return &watcher{extensions: exts, debounce: debounceInterval, logger: logger, onChange: onChange}
}

// watchDirs watches every directory below roots until ctx is done.
func (w *watcher) watchDirs(ctx context.Context, roots []string) error {
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}
	defer fsw.Close()

	for _, root := range roots {
		if err := addWatchDirs(fsw, root); err != nil {
			return err
		}
	}

	return w.loop(ctx, fsw.Events, fsw.Errors, func(path string) {
		addIfDirectory(fsw, path)
	})
}

func (w *watcher) loop(ctx context.Context, events <-chan fsnotify.Event, errs <-chan error, created func(string)) error {
	var debounceTimer *time.Timer

	for {
		select {
		case <-ctx.Done():
			if debounceTimer != nil {
				debounceTimer.Stop()
			}
			return nil

		case event, ok := <-events:
			if !ok {
				return nil
			}

			if event.Has(fsnotify.Create) && created != nil {
				created(event.Name)
			}

			if !w.isRelevantChange(event) {
				continue
			}
			w.logger.Debug("source changed", "path", event.Name, "op", event.Op.String())

			if debounceTimer != nil {
				debounceTimer.Stop()
			}
			debounceTimer = time.AfterFunc(w.debounce, w.onChange)

		case err, ok := <-errs:
			if !ok {
				return nil
			}
			w.logger.Warn("watcher error", "error", err)
		}
	}
}

func (w *watcher) isRelevantChange(event fsnotify.Event) bool {
	if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) &&
		!event.Has(fsnotify.Remove) && !event.Has(fsnotify.Rename) {
		return false
	}
	return w.extensions[filepath.Ext(event.Name)]
}

func addWatchDirs(fsw *fsnotify.Watcher, root string) error {
	return addWatchDirsWithAdder(root, fsw.Add)
}

// addWatchDirsWithAdder walks root and adds each directory, skipping entries that vanish mid-walk.
func addWatchDirsWithAdder(root string, add func(string) error) error {
	return filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				return nil
			}
			return err
		}
		if !d.IsDir() {
			return nil
		}
		if path != root && skippedDirs[d.Name()] {
			return filepath.SkipDir
		}
		if err := add(path); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return err
		}
		return nil
	})
}

func addIfDirectory(fsw *fsnotify.Watcher, path string) {
	info, err := os.Stat(path)
	if err != nil {
		return
	}
	if info.IsDir() {
		_ = addWatchDirs(fsw, path)
	}
}
