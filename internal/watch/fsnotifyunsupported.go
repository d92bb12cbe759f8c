//go:build !(freebsd || openbsd || netbsd || dragonfly || darwin || windows || linux || solaris)
// +build !freebsd,!openbsd,!netbsd,!dragonfly,!darwin,!windows,!linux,!solaris

package watch

import (
	"errors"
	"github.com/fsnotify/fsnotify"
)

func newDirWatcher(string) (*fsnotify.Watcher, error) {
	return nil, errors.New("file watching is not supported on this platform")
}
