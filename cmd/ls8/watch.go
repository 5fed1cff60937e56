package main

import (
	"io"
	"log"
	"path/filepath"
	"time"

	"github.com/howeyc/fsnotify"
)

const WATCH_SETTLE = 100 * time.Millisecond // Delay after a change before re-running.

// watch runs the program, then runs it again each time its file changes.
// It only returns if the watcher fails.
func watch(opts options, stdout io.Writer, stderr io.Writer) (err error) {
	path := filepath.Clean(opts.program)

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return
	}
	defer watcher.Close()

	err = watcher.Watch(filepath.Dir(path))
	if err != nil {
		return
	}

	logger := log.New(stderr, "ls8: ", 0)

	rerun := time.After(time.Millisecond)
	for {
		select {
		case <-rerun:
			logger.Printf("watch: run %s", filepath.Base(path))
			emu, _, err := load(path)
			if err != nil {
				logger.Printf("watch: %v", err)
				break
			}
			_, err = execute(emu, opts, stdout)
			if err != nil {
				logger.Printf("watch: %v", err)
				break
			}
			logger.Printf("watch: halted after %d instructions", emu.Ticks())
		case ev := <-watcher.Event:
			if filepath.Clean(ev.Name) == path && !ev.IsAttrib() {
				rerun = time.After(WATCH_SETTLE)
			}
		case err = <-watcher.Error:
			return
		}
	}
}
