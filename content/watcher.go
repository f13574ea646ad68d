package content

import (
	"fmt"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
)

// DefaultDebounce batches the burst of events an editor save produces.
const DefaultDebounce = 200 * time.Millisecond

// Watcher reloads a Store when its directory changes.
type Watcher struct {
	store    *Store
	fsw      *fsnotify.Watcher
	debounce time.Duration

	stopCh   chan struct{}
	doneCh   chan struct{}
	stopOnce sync.Once
	stopErr  error
}

// Watch starts reloading s whenever a post file is created, written, removed
// or renamed. Stop must be called to release the watcher.
func (s *Store) Watch(debounce time.Duration) (*Watcher, error) {
	if debounce <= 0 {
		debounce = DefaultDebounce
	}

	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("create watcher: %w", err)
	}
	if err := fsw.Add(s.dir); err != nil {
		_ = fsw.Close()
		return nil, fmt.Errorf("watch %s: %w", s.dir, err)
	}

	w := &Watcher{
		store:    s,
		fsw:      fsw,
		debounce: debounce,
		stopCh:   make(chan struct{}),
		doneCh:   make(chan struct{}),
	}
	go w.run()
	return w, nil
}

// Stop ends the watch loop and waits for it to exit.
func (w *Watcher) Stop() error {
	w.stopOnce.Do(func() {
		close(w.stopCh)
		<-w.doneCh
		w.stopErr = w.fsw.Close()
	})
	return w.stopErr
}

func (w *Watcher) run() {
	defer close(w.doneCh)

	// fire is nil until a change arrives, then restarts on every change.
	var fire <-chan time.Time

	for {
		select {
		case <-w.stopCh:
			return

		case ev, ok := <-w.fsw.Events:
			if !ok {
				return
			}
			if filepath.Ext(ev.Name) != postExt {
				continue
			}
			if !ev.Has(fsnotify.Create) && !ev.Has(fsnotify.Write) &&
				!ev.Has(fsnotify.Remove) && !ev.Has(fsnotify.Rename) {
				continue
			}
			w.store.logger.Debug(fmt.Sprintf("Post change: %s", ev))
			fire = time.After(w.debounce)

		case err, ok := <-w.fsw.Errors:
			if !ok {
				return
			}
			w.store.logger.Error(fmt.Sprintf("Post watcher: %v", err))

		case <-fire:
			fire = nil
			if err := w.store.Load(); err != nil {
				w.store.logger.Error(fmt.Sprintf("Reloading posts: %v", err))
			}
		}
	}
}
