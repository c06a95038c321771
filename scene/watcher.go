package scene

import (
	"fmt"
	"path/filepath"
	"sync/atomic"

	"github.com/bloeys/nscene/logging"
	"github.com/fsnotify/fsnotify"
)

// Watcher reports when a scene file changes on disk.
//
// Events are collected on a background goroutine and Changed is polled
// from the render thread, so no GL work ever happens off the main thread.
type Watcher struct {
	Path string

	fsw     *fsnotify.Watcher
	changed atomic.Bool
	done    chan struct{}
}

// Changed reports whether the file changed since the last call
func (w *Watcher) Changed() bool {
	return w.changed.Swap(false)
}

func (w *Watcher) Close() error {

	if w.fsw == nil {
		return nil
	}

	err := w.fsw.Close()
	<-w.done
	w.fsw = nil
	return err
}

func (w *Watcher) watch(fileName string) {

	defer close(w.done)
	for {
		select {
		case ev, ok := <-w.fsw.Events:
			if !ok {
				return
			}

			if filepath.Base(ev.Name) != fileName {
				continue
			}

			// Editors often save by renaming a temp file over the original, so Create counts too
			if ev.Has(fsnotify.Write) || ev.Has(fsnotify.Create) || ev.Has(fsnotify.Rename) {
				w.changed.Store(true)
			}

		case err, ok := <-w.fsw.Errors:
			if !ok {
				return
			}

			logging.ErrLog.Printf("Scene watcher error on '%s'. Err: %s\n", w.Path, err)
		}
	}
}

// NewWatcher watches the directory of path and reports changes to path only.
// The directory is watched rather than the file so replaced files keep being tracked.
func NewWatcher(path string) (*Watcher, error) {

	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("failed to create file watcher. Err: %w", err)
	}

	dir := filepath.Dir(path)
	if err := fsw.Add(dir); err != nil {
		fsw.Close()
		return nil, fmt.Errorf("failed to watch directory '%s'. Err: %w", dir, err)
	}

	w := &Watcher{
		Path: path,
		fsw:  fsw,
		done: make(chan struct{}),
	}

	go w.watch(filepath.Base(path))
	return w, nil
}
