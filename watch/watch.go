// Package watch implements kiln's --watch mode: a recursive filesystem
// watcher that debounces bursts of change events and reruns a rebuild
// callback once things settle. Grounded on
// traiproject-same/cli/internal/adapters/watcher/watcher.go (recursive
// directory watch via fsnotify, skip-directory set, new-directory
// auto-add), adapted from an event-iterator port into a single
// debounced rebuild loop since kiln has no separate task-graph consumer
// to hand raw events to.
package watch

import (
	"context"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
)

// debounce is the quiet period spec.md §4.14 requires between the last
// observed change and a rebuild.
const debounce = 100 * time.Millisecond

var skipDirectories = map[string]bool{
	".git":   true,
	".jj":    true,
	"build":  true,
	".cache": true,
}

// Run watches root recursively and calls rebuild every time the
// filesystem settles after one or more changes, until ctx is canceled.
// rebuild's error is logged (to logf) but does not stop watching —
// a broken build should not end the watch loop spec.md §4.14 describes.
func Run(ctx context.Context, root string, rebuild func() error, logf func(format string, args ...any)) error {
	if logf == nil {
		logf = func(string, ...any) {}
	}

	w, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("starting filesystem watcher: %w", err)
	}
	defer w.Close()

	if err := addRecursively(w, root); err != nil {
		return fmt.Errorf("watching %s: %w", root, err)
	}

	timer := time.NewTimer(debounce)
	if !timer.Stop() {
		<-timer.C
	}
	pending := false

	for {
		select {
		case <-ctx.Done():
			return nil

		case event, ok := <-w.Events:
			if !ok {
				return nil
			}
			if event.Op&fsnotify.Create == fsnotify.Create {
				if info, err := os.Stat(event.Name); err == nil && info.IsDir() && !skipDirectories[info.Name()] {
					_ = addRecursively(w, event.Name)
				}
			}
			pending = true
			timer.Reset(debounce)

		case err, ok := <-w.Errors:
			if !ok {
				return nil
			}
			logf("watch: filesystem error: %v", err)

		case <-timer.C:
			if !pending {
				continue
			}
			pending = false
			if err := rebuild(); err != nil {
				logf("watch: rebuild failed: %v", err)
			}
		}
	}
}

// addRecursively walks root and adds every non-skipped directory to w.
func addRecursively(w *fsnotify.Watcher, root string) error {
	return filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return nil //nolint:nilerr // skip directories we can't stat rather than aborting the whole watch
		}
		if !d.IsDir() {
			return nil
		}
		if skipDirectories[d.Name()] {
			return fs.SkipDir
		}
		return w.Add(path)
	})
}
