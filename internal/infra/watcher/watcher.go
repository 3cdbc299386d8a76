package watcher

import (
	"context"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/gobwas/glob"
	"github.com/tasuku43/wsdeps/internal/infra/debuglog"
)

// DefaultExcludeDirs are never descended into.
var DefaultExcludeDirs = []string{"node_modules", ".*"}

// Watcher reports debounced batches of changed files whose base name matches
// one of the file patterns.
type Watcher struct {
	fsWatcher   *fsnotify.Watcher
	debounce    time.Duration
	files       []glob.Glob
	excludeDirs []glob.Glob
	onChange    func([]string)
	callbackMu  sync.Mutex

	pendingMu sync.Mutex
	pending   map[string]struct{}
	timer     *time.Timer
}

func New(debounce time.Duration, filePatterns, excludeDirs []string, onChange func([]string)) (*Watcher, error) {
	files, err := compileAll(filePatterns)
	if err != nil {
		return nil, err
	}
	dirs, err := compileAll(excludeDirs)
	if err != nil {
		return nil, err
	}
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	return &Watcher{
		fsWatcher:   fsw,
		debounce:    debounce,
		files:       files,
		excludeDirs: dirs,
		onChange:    onChange,
		pending:     make(map[string]struct{}),
	}, nil
}

// Watch registers roots and every directory below them.
func (w *Watcher) Watch(roots []string) error {
	for _, root := range roots {
		if err := w.watchRecursive(root); err != nil {
			return err
		}
	}
	return nil
}

// Run dispatches events until ctx is done.
func (w *Watcher) Run(ctx context.Context) error {
	for {
		select {
		case <-ctx.Done():
			w.stopTimer()
			return nil
		case event, ok := <-w.fsWatcher.Events:
			if !ok {
				return nil
			}
			w.handle(event)
		case err, ok := <-w.fsWatcher.Errors:
			if !ok {
				return nil
			}
			debuglog.Logf("watcher error: %v", err)
		}
	}
}

func (w *Watcher) Close() error {
	w.stopTimer()
	return w.fsWatcher.Close()
}

func (w *Watcher) handle(event fsnotify.Event) {
	if event.Has(fsnotify.Create) {
		info, err := os.Stat(event.Name)
		if err == nil && info.IsDir() {
			if w.excludedDir(filepath.Base(event.Name)) {
				return
			}
			if err := w.watchRecursive(event.Name); err != nil {
				debuglog.Logf("watch new directory %s: %v", event.Name, err)
				return
			}
			w.enqueueExisting(event.Name)
			return
		}
	}
	if !w.matchesFile(event.Name) {
		return
	}
	if event.Has(fsnotify.Write) || event.Has(fsnotify.Create) || event.Has(fsnotify.Remove) || event.Has(fsnotify.Rename) {
		w.schedule(event.Name)
	}
}

func (w *Watcher) watchRecursive(root string) error {
	return filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.IsDir() {
			return nil
		}
		if path != root && w.excludedDir(d.Name()) {
			return filepath.SkipDir
		}
		return w.fsWatcher.Add(path)
	})
}

func (w *Watcher) enqueueExisting(root string) {
	_ = filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return nil
		}
		if d.IsDir() {
			if path != root && w.excludedDir(d.Name()) {
				return filepath.SkipDir
			}
			return nil
		}
		if w.matchesFile(path) {
			w.schedule(path)
		}
		return nil
	})
}

func (w *Watcher) schedule(path string) {
	w.pendingMu.Lock()
	defer w.pendingMu.Unlock()
	w.pending[path] = struct{}{}
	if w.timer != nil {
		w.timer.Stop()
	}
	w.timer = time.AfterFunc(w.debounce, w.flush)
}

func (w *Watcher) flush() {
	w.pendingMu.Lock()
	paths := make([]string, 0, len(w.pending))
	for path := range w.pending {
		paths = append(paths, path)
	}
	w.pending = make(map[string]struct{})
	w.pendingMu.Unlock()

	if len(paths) == 0 || w.onChange == nil {
		return
	}
	sort.Strings(paths)
	w.callbackMu.Lock()
	defer w.callbackMu.Unlock()
	w.onChange(paths)
}

func (w *Watcher) stopTimer() {
	w.pendingMu.Lock()
	defer w.pendingMu.Unlock()
	if w.timer != nil {
		w.timer.Stop()
	}
}

func (w *Watcher) matchesFile(path string) bool {
	base := filepath.Base(path)
	for _, g := range w.files {
		if g.Match(base) {
			return true
		}
	}
	return false
}

func (w *Watcher) excludedDir(name string) bool {
	for _, g := range w.excludeDirs {
		if g.Match(name) {
			return true
		}
	}
	return false
}

func compileAll(patterns []string) ([]glob.Glob, error) {
	out := make([]glob.Glob, 0, len(patterns))
	for _, pattern := range patterns {
		g, err := glob.Compile(pattern)
		if err != nil {
			return nil, err
		}
		out = append(out, g)
	}
	return out, nil
}
