// Package watch drives `deadcode --watch` (§6): re-running the analysis
// pipeline whenever a source file changes, debounced so a burst of saves
// (a refactor, a branch checkout) triggers one re-run instead of many.
// Grounded on the file-watching shape the pack's knowledge-graph indexer
// uses for incremental reindexing, retargeted from a per-file parse+hash
// diff onto a whole-pipeline re-run (discovery already re-derives which
// files changed on every Run, so watch mode only needs to know *that*
// something changed, not *what*).
package watch

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/c360studio/deadcode/internal/utils"
)

// watchedExtensions are the file types a change to should trigger a re-run;
// kept in sync with discovery's own Kotlin/Java/XML classification.
var watchedExtensions = map[string]bool{
	".kt": true, ".kts": true, ".java": true, ".xml": true,
}

// excludedDirs are never descended into, matching discovery's defaultExcludes
// base names (build output and VCS/IDE noise churn constantly and never
// contain source worth reacting to).
var excludedDirs = map[string]bool{
	".git": true, ".gradle": true, "build": true, ".idea": true, "node_modules": true,
}

// Watcher watches a project root for source changes and debounces them
// into a single "something changed" signal.
type Watcher struct {
	root     string
	debounce time.Duration
	logger   *utils.Logger
	fsw      *fsnotify.Watcher

	mu      sync.Mutex
	pending bool
}

// New creates a Watcher rooted at root. debounce of zero defaults to 300ms,
// long enough to coalesce a save-all across several open editor buffers.
func New(root string, debounce time.Duration, logger *utils.Logger) (*Watcher, error) {
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	if debounce <= 0 {
		debounce = 300 * time.Millisecond
	}
	if logger == nil {
		logger = utils.NewSilentLogger()
	}
	w := &Watcher{root: root, debounce: debounce, logger: logger, fsw: fsw}
	if err := w.addRecursive(root); err != nil {
		fsw.Close()
		return nil, err
	}
	return w, nil
}

// Close releases the underlying OS watch handles.
func (w *Watcher) Close() error {
	return w.fsw.Close()
}

// Run blocks, invoking onChange once per debounce window in which at least
// one watched file changed, until ctx is cancelled.
func (w *Watcher) Run(ctx context.Context, onChange func(context.Context)) error {
	ticker := time.NewTicker(w.debounce)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil

		case event, ok := <-w.fsw.Events:
			if !ok {
				return nil
			}
			w.handleEvent(event)

		case err, ok := <-w.fsw.Errors:
			if !ok {
				return nil
			}
			w.logger.Warnf("watch error: %v", err)

		case <-ticker.C:
			if w.takePending() {
				onChange(ctx)
			}
		}
	}
}

func (w *Watcher) handleEvent(event fsnotify.Event) {
	if event.Has(fsnotify.Create) {
		if info, err := os.Stat(event.Name); err == nil && info.IsDir() {
			w.addDirectory(event.Name)
			return
		}
	}

	if !watchedExtensions[strings.ToLower(filepath.Ext(event.Name))] {
		return
	}

	w.mu.Lock()
	w.pending = true
	w.mu.Unlock()

	rel, _ := filepath.Rel(w.root, event.Name)
	w.logger.Debugf("change detected: %s (%s)", rel, event.Op)
}

func (w *Watcher) takePending() bool {
	w.mu.Lock()
	defer w.mu.Unlock()
	had := w.pending
	w.pending = false
	return had
}

func (w *Watcher) addRecursive(root string) error {
	return filepath.Walk(root, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return nil
		}
		if !info.IsDir() {
			return nil
		}
		if excludedDirs[info.Name()] || (info.Name() != filepath.Base(root) && strings.HasPrefix(info.Name(), ".")) {
			return filepath.SkipDir
		}
		if err := w.fsw.Add(path); err != nil {
			w.logger.Warnf("watching %s: %v", path, err)
		}
		return nil
	})
}

func (w *Watcher) addDirectory(path string) {
	base := filepath.Base(path)
	if excludedDirs[base] || strings.HasPrefix(base, ".") {
		return
	}
	if err := w.fsw.Add(path); err != nil {
		w.logger.Warnf("watching new directory %s: %v", path, err)
	}
}
