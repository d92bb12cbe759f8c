package watch

import (
	"context"
	"github.com/fsnotify/fsnotify"
	"log"
	"path/filepath"
)

// WatchDir reports every change to the files in dir (not recursive) through fn, until ctx is done.
func WatchDir(ctx context.Context, dir string, fn func(Event)) error {
	watcher, err := newDirWatcher(dir)
	if err != nil {
		return err
	}
	defer watcher.Close()
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case ev, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if !ev.Has(fsnotify.Create) && !ev.Has(fsnotify.Write) && !ev.Has(fsnotify.Remove) && !ev.Has(fsnotify.Rename) {
				continue // Chmod
			}
			fn(Event{Op: ev.Op.String(), File: filepath.Base(ev.Name)})
		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			log.Println("[SolveServer] Watcher error:", err)
		}
	}
}
