// Package devreload restarts the development server when its binary or
// watched source files change.
package devreload

import (
	"context"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"

	"go.uber.org/zap"
)

// DefaultInterval is used when a non-positive poll interval is given
const DefaultInterval = time.Second

type fileState struct {
	modTime time.Time
	size    int64
}

type snapshot map[string]fileState

// Watcher polls a set of files and directories and calls onChange once a
// change has settled: the tree must look the same on two consecutive polls,
// so a binary that is still being written does not trigger a restart.
type Watcher struct {
	paths    []string
	interval time.Duration
	log      *zap.Logger
	onChange func(path string)

	last    snapshot
	pending string
}

// NewWatcher creates a watcher over paths. Directories are walked
// recursively, skipping hidden entries.
func NewWatcher(paths []string, interval time.Duration, log *zap.Logger, onChange func(path string)) *Watcher {
	if interval <= 0 {
		interval = DefaultInterval
	}
	return &Watcher{
		paths:    append([]string(nil), paths...),
		interval: interval,
		log:      log,
		onChange: onChange,
	}
}

// Start runs the poll loop until ctx is cancelled
func (w *Watcher) Start(ctx context.Context) {
	w.last = w.scan()
	w.log.Info("reload_watcher_started",
		zap.Strings("paths", w.paths),
		zap.Int("files", len(w.last)),
		zap.Duration("interval", w.interval),
	)

	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if path, ok := w.poll(); ok {
				w.log.Info("reload_change_detected", zap.String("path", path))
				w.onChange(path)
			}
		}
	}
}

// poll compares the current tree with the previous one. It reports a
// change only once the tree has stopped changing.
func (w *Watcher) poll() (string, bool) {
	current := w.scan()
	changed, ok := diff(w.last, current)
	w.last = current

	if ok {
		w.pending = changed
		return "", false
	}
	if w.pending != "" {
		path := w.pending
		w.pending = ""
		return path, true
	}
	return "", false
}

func (w *Watcher) scan() snapshot {
	snap := make(snapshot)
	for _, root := range w.paths {
		info, err := os.Stat(root)
		if err != nil {
			continue
		}
		if !info.IsDir() {
			snap[root] = fileState{modTime: info.ModTime(), size: info.Size()}
			continue
		}
		walkErr := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
			if err != nil {
				return nil
			}
			if path != root && strings.HasPrefix(d.Name(), ".") {
				if d.IsDir() {
					return filepath.SkipDir
				}
				return nil
			}
			if d.IsDir() {
				return nil
			}
			fi, err := d.Info()
			if err != nil {
				return nil
			}
			snap[path] = fileState{modTime: fi.ModTime(), size: fi.Size()}
			return nil
		})
		if walkErr != nil {
			w.log.Debug("reload_walk_failed", zap.String("path", root), zap.Error(walkErr))
		}
	}
	return snap
}

// diff returns one path that was added, removed or modified between a and b
func diff(a, b snapshot) (string, bool) {
	for path, before := range a {
		after, ok := b[path]
		if !ok || !after.modTime.Equal(before.modTime) || after.size != before.size {
			return path, true
		}
	}
	for path := range b {
		if _, ok := a[path]; !ok {
			return path, true
		}
	}
	return "", false
}
