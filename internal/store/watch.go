package store

import (
	"os"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
)

// Change is emitted when another process rewrites the workspace's state files.
type Change struct {
	File string
	At   time.Time
}

// Watcher monitors a workspace directory for writes to the state record.
type Watcher struct {
	Dir     string
	Changes <-chan Change

	changes chan Change
	done    chan struct{}
	watcher *fsnotify.Watcher
	last    stateStamp
}

// stateStamp is the size and mtime of each state file. An empty or missing
// WAL counts as absent.
type stateStamp [3]fileStamp

type fileStamp struct {
	size  int64
	mtime time.Time
}

func stampState(dir string) stateStamp {
	var st stateStamp
	for i, name := range []string{sqliteFileName, sqliteFileName + "-wal", jsonFileName} {
		fi, err := os.Stat(filepath.Join(dir, name))
		if err != nil || fi.Size() == 0 {
			continue
		}
		st[i] = fileStamp{size: fi.Size(), mtime: fi.ModTime()}
	}
	return st
}

const watchDebounce = 100 * time.Millisecond

func NewWatcher(dir string) (*Watcher, error) {
	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	ch := make(chan Change, 8)
	return &Watcher{
		Dir:     dir,
		Changes: ch,
		changes: ch,
		done:    make(chan struct{}),
		watcher: fw,
	}, nil
}

func (w *Watcher) Start() error {
	if err := w.watcher.Add(w.Dir); err != nil {
		_ = w.watcher.Close()
		return err
	}
	w.last = stampState(w.Dir)
	go w.loop()
	return nil
}

// Stop closes the watcher and then the Changes channel.
func (w *Watcher) Stop() {
	_ = w.watcher.Close()
	<-w.done
	close(w.changes)
}

func (w *Watcher) loop() {
	defer close(w.done)

	// A save touches several files (sqlite + wal, or tmp + rename); emit once
	// per burst.
	var (
		pendingFile string
		pendingAt   time.Time
	)
	ticker := time.NewTicker(watchDebounce)
	defer ticker.Stop()

	for {
		select {
		case ev, ok := <-w.watcher.Events:
			if !ok {
				if pendingFile != "" {
					w.emit(pendingFile)
				}
				return
			}
			if isStateWrite(ev) {
				pendingFile = ev.Name
				pendingAt = time.Now()
			}

		case <-ticker.C:
			if pendingFile != "" && time.Since(pendingAt) >= watchDebounce {
				// Opening the database for a read can still touch the WAL.
				if st := stampState(w.Dir); st != w.last {
					w.last = st
					w.emit(pendingFile)
				}
				pendingFile = ""
			}

		case _, ok := <-w.watcher.Errors:
			if !ok {
				return
			}
			// Watch errors are non-fatal.
		}
	}
}

func (w *Watcher) emit(file string) {
	// Drop rather than block when the reader is behind; one pending reload is enough.
	select {
	case w.changes <- Change{File: file, At: time.Now()}:
	default:
	}
}

// isStateWrite reports whether ev may carry new state. Every SQLite
// connection creates and removes the -wal file, so only writes into it count.
func isStateWrite(ev fsnotify.Event) bool {
	switch filepath.Base(ev.Name) {
	case sqliteFileName, jsonFileName:
		return ev.Has(fsnotify.Write) || ev.Has(fsnotify.Create) || ev.Has(fsnotify.Rename)
	case sqliteFileName + "-wal":
		return ev.Has(fsnotify.Write)
	}
	return false
}
