// SPDX-License-Identifier: EPL-2.0

package asset

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/fsnotify/fsnotify"
	"github.com/spf13/afero"
)

// Invalidator forgets a cached asset.
type Invalidator interface {
	Invalidate(name string)
}

// Watcher invalidates cache entries when files under root change. Asset
// names are reported relative to root with forward slashes, matching how
// they are requested.
type Watcher struct {
	fs     afero.Fs
	root   string
	cache  Invalidator
	fsw    *fsnotify.Watcher
	logger *slog.Logger
}

// NewWatcher starts watching root and every directory below it.
// Directories created later are picked up as they appear.
func NewWatcher(root string, cache Invalidator, logger *slog.Logger) (*Watcher, error) {
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("create watcher: %w", err)
	}

	if logger == nil {
		logger = slog.Default()
	}

	w := &Watcher{
		fs:     afero.NewOsFs(),
		root:   root,
		cache:  cache,
		fsw:    fsw,
		logger: logger,
	}

	if err := w.addTree(root); err != nil {
		fsw.Close()
		return nil, err
	}

	return w, nil
}

// Add watches dir, relative to root, and everything below it.
func (w *Watcher) Add(dir string) error {
	return w.addTree(filepath.Join(w.root, dir))
}

func (w *Watcher) addTree(dir string) error {
	return afero.Walk(w.fs, dir, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return fmt.Errorf("watch %s: %w", path, err)
		}
		if !info.IsDir() {
			return nil
		}
		if err := w.fsw.Add(path); err != nil {
			return fmt.Errorf("watch %s: %w", path, err)
		}

		return nil
	})
}

// Run blocks until ctx is done or the watcher is closed.
func (w *Watcher) Run(ctx context.Context) error {
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()

		case ev, ok := <-w.fsw.Events:
			if !ok {
				return nil
			}
			w.handle(ev)

		case err, ok := <-w.fsw.Errors:
			if !ok {
				return nil
			}
			w.logger.Warn("asset watcher error", "error", err)
		}
	}
}

func (w *Watcher) handle(ev fsnotify.Event) {
	if !ev.Has(fsnotify.Write) && !ev.Has(fsnotify.Create) &&
		!ev.Has(fsnotify.Remove) && !ev.Has(fsnotify.Rename) {
		return
	}

	if ev.Has(fsnotify.Create) {
		if st, err := w.fs.Stat(ev.Name); err == nil && st.IsDir() {
			if err := w.addTree(ev.Name); err != nil {
				w.logger.Warn("asset watcher cannot follow new directory", "dir", ev.Name, "error", err)
			}
		}
	}

	rel, err := filepath.Rel(w.root, ev.Name)
	if err != nil {
		return
	}
	name := filepath.ToSlash(rel)

	w.cache.Invalidate(name)
	// callers may also request the rooted path
	w.cache.Invalidate(ev.Name)
	w.logger.Debug("asset changed", "name", name, "op", ev.Op.String())
}

func (w *Watcher) Close() error {
	return w.fsw.Close()
}
