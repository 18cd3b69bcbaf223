package wordlist

import (
	"context"
	"log"

	"github.com/fsnotify/fsnotify"
)

// A Watcher re-runs a function each time a wordlist file is modified.
type Watcher struct {
	path string
	fw   *fsnotify.Watcher
}

// NewWatcher creates a watcher for the wordlist at path. The caller must
// either call Run, or Close the watcher to release its resources.
func NewWatcher(path string) (*Watcher, error) {
	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	if err := fw.Add(path); err != nil {
		fw.Close()
		return nil, &Error{Path: path, Err: err}
	}
	return &Watcher{path: path, fw: fw}, nil
}

// Close stops the watcher and releases its resources.
func (w *Watcher) Close() error { return w.fw.Close() }

// Run calls run once, then again each time the file is written or replaced,
// until run reports done, run reports an error, the file is renamed or
// removed, or ctx ends. Run closes the watcher before it returns.
//
// Changes that arrive while run is executing are coalesced into a single
// subsequent call.
func (w *Watcher) Run(ctx context.Context, run func() (done bool, err error)) error {
	defer w.fw.Close()

	if done, err := run(); done || err != nil {
		return err
	}
	for {
		select {
		case evt, ok := <-w.fw.Events:
			if !ok {
				return nil
			}
			if evt.Op&(fsnotify.Rename|fsnotify.Remove) != 0 {
				log.Printf("Wordlist %q has moved; stopping the watcher", w.path)
				return nil
			} else if evt.Op&(fsnotify.Write|fsnotify.Create) == 0 {
				continue // not relevant here
			}
			if w.drain() {
				log.Printf("Wordlist %q has moved; stopping the watcher", w.path)
				return nil
			}
			if done, err := run(); done || err != nil {
				return err
			}
		case err, ok := <-w.fw.Errors:
			if !ok {
				return nil
			}
			log.Printf("WARNING: Error watching %q: %v", w.path, err)
		case <-ctx.Done():
			return ctx.Err()
		}
	}
}

// drain discards pending modification events, and reports whether one of
// them means the file is gone.
func (w *Watcher) drain() bool {
	for {
		select {
		case evt, ok := <-w.fw.Events:
			if !ok || evt.Op&(fsnotify.Rename|fsnotify.Remove) != 0 {
				return true
			}
		default:
			return false
		}
	}
}
