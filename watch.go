package main

import (
	"time"

	"github.com/radovskyb/watcher"
)

const watchInterval = 200 * time.Millisecond

// newSiteWatcher watches dir recursively and calls rebuild after every
// change. The watcher does nothing until it is started.
func newSiteWatcher(dir string, rebuild func() error, log Logger) (*watcher.Watcher, error) {
	w := watcher.New()
	w.SetMaxEvents(1)

	if err := w.AddRecursive(dir); err != nil {
		return nil, err
	}

	go func() {
		for {
			select {
			case ev := <-w.Event:
				log.Info("change detected, rebuilding", "path", ev.Path, "op", ev.Op.String())
				if err := rebuild(); err != nil {
					log.Error("rebuild failed", "error", err)
				}
			case err := <-w.Error:
				log.Warn("watcher error", "error", err)
			case <-w.Closed:
				return
			}
		}
	}()

	return w, nil
}

// rerenderOnChange blocks until the watcher is closed or fails.
func rerenderOnChange(dir string, rebuild func() error, log Logger) error {
	w, err := newSiteWatcher(dir, rebuild, log)
	if err != nil {
		return err
	}
	log.Info("watching for changes", "dir", dir)
	return w.Start(watchInterval)
}
