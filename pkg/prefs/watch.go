package prefs

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/fsnotify/fsnotify"
)

// Watcher reloads a Store when its preferences file is replaced or edited by
// another process, such as the ignore and reverse commands.
type Watcher struct {
	fs   *fsnotify.Watcher
	done chan struct{}
}

// Watch follows path and reloads store on every change. The parent directory
// is watched because writes replace the file through a rename.
func Watch(path string, store *Store, logger *slog.Logger) (*Watcher, error) {
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	path = filepath.Clean(path)
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, dirPerm); err != nil {
		return nil, fmt.Errorf("ensure preferences dir: %w", err)
	}

	fs, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("create preferences watcher: %w", err)
	}
	if err := fs.Add(dir); err != nil {
		fs.Close()
		return nil, fmt.Errorf("watch %q: %w", dir, err)
	}

	w := &Watcher{fs: fs, done: make(chan struct{})}
	go w.loop(path, store, logger)
	return w, nil
}

// Close stops watching and waits for the reload loop to exit.
func (w *Watcher) Close() error {
	err := w.fs.Close()
	<-w.done
	return err
}

func (w *Watcher) loop(path string, store *Store, logger *slog.Logger) {
	defer close(w.done)
	for {
		select {
		case ev, ok := <-w.fs.Events:
			if !ok {
				return
			}
			if filepath.Clean(ev.Name) != path {
				continue
			}
			if !ev.Has(fsnotify.Create) && !ev.Has(fsnotify.Write) {
				continue
			}
			logger.Debug("preferences change detected", "op", ev.Op.String(), "file", ev.Name)
			store.Reload()
		case err, ok := <-w.fs.Errors:
			if !ok {
				return
			}
			logger.Warn("preferences watcher error", "error", err)
		}
	}
}
