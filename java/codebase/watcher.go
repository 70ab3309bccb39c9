package codebase

import (
	"context"
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/tliron/commonlog"
)

var watchLog = commonlog.GetLogger("javasym.watch")

// Change reports a file that was re-extracted or removed after a burst of
// file system events settled.
type Change struct {
	Path     string
	Document *Document
	Removed  bool
}

// FileWatcher keeps a Codebase up to date with the files below its root
// directory.
type FileWatcher struct {
	codebase *Codebase
	matcher  *Matcher
	debounce time.Duration
	watcher  *fsnotify.Watcher
	onChange func([]Change)

	mu      sync.Mutex
	pending map[string]bool
	timer   *time.Timer
}

// NewFileWatcher starts watching every directory below the codebase root.
// Events are only delivered once Run is called.
func NewFileWatcher(c *Codebase, matcher *Matcher, debounce time.Duration) (*FileWatcher, error) {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}

	w := &FileWatcher{
		codebase: c,
		matcher:  matcher,
		debounce: debounce,
		watcher:  watcher,
		pending:  make(map[string]bool),
	}
	if err := w.addDirectories(c.RootDir()); err != nil {
		watcher.Close()
		return nil, err
	}
	return w, nil
}

// OnChange registers the callback invoked after each settled burst of
// changes, sorted by path. It must be set before Run.
func (w *FileWatcher) OnChange(fn func([]Change)) {
	w.onChange = fn
}

// Run processes events until ctx is done, then closes the watcher.
func (w *FileWatcher) Run(ctx context.Context) error {
	defer w.watcher.Close()

	flush := make(chan struct{}, 1)
	for {
		select {
		case <-ctx.Done():
			w.stopTimer()
			return nil

		case event, ok := <-w.watcher.Events:
			if !ok {
				return nil
			}
			if event.Has(fsnotify.Create) {
				if info, err := os.Stat(event.Name); err == nil && info.IsDir() {
					if err := w.addDirectories(event.Name); err != nil {
						watchLog.Warningf("failed to watch %s: %s", event.Name, err)
					}
					continue
				}
			}
			if !w.relevant(event) {
				continue
			}
			w.mu.Lock()
			w.pending[event.Name] = true
			w.mu.Unlock()
			w.resetTimer(flush)

		case <-flush:
			w.apply()

		case err, ok := <-w.watcher.Errors:
			if !ok {
				return nil
			}
			watchLog.Errorf("watch error: %s", err)
		}
	}
}

func (w *FileWatcher) relevant(event fsnotify.Event) bool {
	if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) &&
		!event.Has(fsnotify.Remove) && !event.Has(fsnotify.Rename) {
		return false
	}
	rel, err := filepath.Rel(w.codebase.RootDir(), event.Name)
	if err != nil {
		return false
	}
	return w.matcher.Match(rel)
}

func (w *FileWatcher) resetTimer(flush chan struct{}) {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.timer != nil {
		w.timer.Stop()
	}
	w.timer = time.AfterFunc(w.debounce, func() {
		select {
		case flush <- struct{}{}:
		default:
		}
	})
}

func (w *FileWatcher) stopTimer() {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.timer != nil {
		w.timer.Stop()
		w.timer = nil
	}
}

// apply re-extracts or removes every pending path.
func (w *FileWatcher) apply() {
	w.mu.Lock()
	paths := make([]string, 0, len(w.pending))
	for path := range w.pending {
		paths = append(paths, path)
	}
	w.pending = make(map[string]bool)
	w.mu.Unlock()

	if len(paths) == 0 {
		return
	}
	sort.Strings(paths)

	changes := make([]Change, 0, len(paths))
	for _, path := range paths {
		doc, err := w.codebase.ScanFile(path)
		if errors.Is(err, fs.ErrNotExist) {
			if w.codebase.RemoveFile(path) {
				watchLog.Infof("removed %s", path)
				changes = append(changes, Change{Path: path, Removed: true})
			}
			continue
		}
		if err != nil {
			watchLog.Warningf("failed to read %s: %s", path, err)
			continue
		}
		if doc.Err != nil {
			watchLog.Infof("%s: %s", path, doc.Err)
		} else {
			watchLog.Debugf("re-extracted %s", path)
		}
		changes = append(changes, Change{Path: path, Document: doc})
	}

	if len(changes) > 0 && w.onChange != nil {
		w.onChange(changes)
	}
}

func (w *FileWatcher) addDirectories(root string) error {
	return filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			if path == root {
				return err
			}
			return nil
		}
		if !d.IsDir() {
			return nil
		}
		if path != root && strings.HasPrefix(d.Name(), ".") {
			return filepath.SkipDir
		}
		if err := w.watcher.Add(path); err != nil {
			watchLog.Warningf("failed to watch %s: %s", path, err)
		}
		return nil
	})
}
