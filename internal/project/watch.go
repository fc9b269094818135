package project

import (
	"context"
	"io/fs"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/stacksjs/dtsgo/internal/config"
)

// Watch recompiles affected files as they change under opts.Root, calling
// onBatch after each debounce window with the paths that were retransformed.
// It blocks until ctx is canceled.
func Watch(ctx context.Context, opts config.Options, onBatch func([]Result)) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}
	defer watcher.Close()

	if err := addDirsRecursive(watcher, opts.Root); err != nil {
		return err
	}

	const debounce = 150 * time.Millisecond
	pending := map[string]bool{}
	var timer *time.Timer
	var timerC <-chan time.Time

	flush := func() {
		if len(pending) == 0 {
			return
		}
		paths := make([]string, 0, len(pending))
		for p := range pending {
			paths = append(paths, p)
		}
		pending = map[string]bool{}
		onBatch(RunBatch(paths, opts))
	}

	for {
		select {
		case <-ctx.Done():
			if timer != nil {
				timer.Stop()
			}
			flush()
			return nil

		case ev, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			rel, relErr := filepath.Rel(opts.Root, ev.Name)
			if relErr != nil {
				rel = ev.Name
			}
			rel = filepath.ToSlash(rel)
			if matchesAny(rel, opts.Exclude) {
				continue
			}
			if !matchesAny(rel, opts.Entries) {
				continue
			}
			pending[ev.Name] = true
			if timer == nil {
				timer = time.NewTimer(debounce)
				timerC = timer.C
			} else {
				timer.Reset(debounce)
			}

		case <-timerC:
			flush()

		case _, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
		}
	}
}

func addDirsRecursive(watcher *fsnotify.Watcher, root string) error {
	return filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return nil
		}
		if d.IsDir() {
			return watcher.Add(path)
		}
		return nil
	})
}
