//go:build freebsd || openbsd || netbsd || dragonfly || darwin || windows || linux || solaris
// +build freebsd openbsd netbsd dragonfly darwin windows linux solaris

package watch

import "github.com/fsnotify/fsnotify"

// newDirWatcher starts watching the entries of dir
func newDirWatcher(dir string) (*fsnotify.Watcher, error) {
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	if err = w.Add(dir); err != nil {
		_ = w.Close()
		return nil, err
	}
	return w, nil
}
