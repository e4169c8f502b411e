// ABOUTME: Polling-based watcher that reloads settings when a settings file changes
// ABOUTME: Compares file mtimes each interval; runs until its context is cancelled

package config

import (
	"context"
	"os"
	"sync"
	"time"
)

const defaultWatchInterval = 2 * time.Second

// Watcher monitors settings files by polling their mtimes.
type Watcher struct {
	paths    []string
	onChange func()
	interval time.Duration

	mu     sync.Mutex
	mtimes map[string]time.Time
}

// NewWatcher creates a watcher that calls onChange when any of paths is
// created, modified, or removed. A zero interval uses the default of 2s.
func NewWatcher(paths []string, interval time.Duration, onChange func()) *Watcher {
	if interval <= 0 {
		interval = defaultWatchInterval
	}
	w := &Watcher{
		paths:    paths,
		onChange: onChange,
		interval: interval,
		mtimes:   make(map[string]time.Time),
	}
	w.snapshotLocked()
	return w
}

// WatchSettings watches the global and project settings files and calls
// onReload with freshly loaded settings after each change. Load errors
// are passed to onError and the previous settings stay in effect.
func WatchSettings(projectRoot string, interval time.Duration, onReload func(*Settings), onError func(error)) *Watcher {
	return NewWatcher(SettingsFiles(projectRoot), interval, func() {
		s, err := Load(projectRoot)
		if err != nil {
			onError(err)
			return
		}
		onReload(s)
	})
}

// Run polls until ctx is cancelled and returns ctx.Err().
func (w *Watcher) Run(ctx context.Context) error {
	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
			w.Check()
		}
	}
}

// Check compares the files against the last snapshot and calls onChange
// synchronously if anything changed. It reports whether it did.
func (w *Watcher) Check() bool {
	w.mu.Lock()
	changed := w.changedLocked()
	if changed {
		w.snapshotLocked()
	}
	w.mu.Unlock()

	if changed {
		w.onChange()
	}
	return changed
}

// changedLocked compares current mtimes with stored snapshots. Must hold mu.
func (w *Watcher) changedLocked() bool {
	for _, path := range w.paths {
		info, err := os.Stat(path)
		if err != nil {
			// File removed or inaccessible: check if it existed before
			if _, existed := w.mtimes[path]; existed {
				return true
			}
			continue
		}
		prev, ok := w.mtimes[path]
		if !ok || !info.ModTime().Equal(prev) {
			return true
		}
	}
	return false
}

// snapshotLocked records current mtimes. Must hold mu.
func (w *Watcher) snapshotLocked() {
	for _, path := range w.paths {
		info, err := os.Stat(path)
		if err != nil {
			delete(w.mtimes, path)
			continue
		}
		w.mtimes[path] = info.ModTime()
	}
}
