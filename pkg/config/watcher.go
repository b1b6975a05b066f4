package config

import (
	"context"
	"fmt"
	"path/filepath"
	"sync"

	"github.com/alessiobussolari/better-seo/pkg/logger"
	"github.com/fsnotify/fsnotify"
)

// Watcher reports changes to configuration files. It watches the parent
// directory so files replaced by editors (rename then create) keep reporting.
type Watcher struct {
	watcher   *fsnotify.Watcher
	log       logger.Logger
	callbacks []func()
	mu        sync.RWMutex
	// watched maps absolute file paths to the context that scoped the watch.
	watched   map[string]context.Context
	dirs      map[string]int
	stopCh    chan struct{}
	startOnce sync.Once
	closeOnce sync.Once
}

// NewWatcher creates a configuration file watcher that logs through the
// logger attached to ctx.
func NewWatcher(ctx context.Context) (*Watcher, error) {
	fsWatcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("failed to create file watcher: %w", err)
	}
	return &Watcher{
		watcher: fsWatcher,
		log:     logger.FromContext(ctx),
		watched: make(map[string]context.Context),
		dirs:    make(map[string]int),
		stopCh:  make(chan struct{}),
	}, nil
}

// Watch starts reporting changes to path until ctx is done or the watcher is
// closed.
func (w *Watcher) Watch(ctx context.Context, path string) error {
	absPath, err := filepath.Abs(path)
	if err != nil {
		return fmt.Errorf("failed to resolve path: %w", err)
	}
	dir := filepath.Dir(absPath)
	w.mu.Lock()
	if _, ok := w.watched[absPath]; ok {
		w.mu.Unlock()
		return nil
	}
	if w.dirs[dir] == 0 {
		if err := w.watcher.Add(dir); err != nil {
			w.mu.Unlock()
			return fmt.Errorf("failed to watch directory %s: %w", dir, err)
		}
	}
	w.dirs[dir]++
	w.watched[absPath] = ctx
	w.mu.Unlock()

	if done := ctx.Done(); done != nil {
		go w.unwatchWhenDone(absPath, dir, done)
	}
	w.startOnce.Do(func() {
		go w.handleEvents()
	})
	return nil
}

func (w *Watcher) unwatchWhenDone(path, dir string, done <-chan struct{}) {
	select {
	case <-done:
	case <-w.stopCh:
		return
	}
	w.mu.Lock()
	defer w.mu.Unlock()
	delete(w.watched, path)
	w.dirs[dir]--
	if w.dirs[dir] > 0 {
		return
	}
	delete(w.dirs, dir)
	if err := w.watcher.Remove(dir); err != nil {
		w.log.Debug("failed to remove watch", "dir", dir, "error", err)
	}
}

// OnChange registers a callback invoked after each write or re-creation of a
// watched file.
func (w *Watcher) OnChange(callback func()) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.callbacks = append(w.callbacks, callback)
}

func (w *Watcher) handleEvents() {
	for {
		select {
		case event, ok := <-w.watcher.Events:
			if !ok {
				return
			}
			w.mu.RLock()
			pathCtx, watched := w.watched[event.Name]
			w.mu.RUnlock()
			if !watched || (pathCtx != nil && pathCtx.Err() != nil) {
				continue
			}
			if event.Op&(fsnotify.Write|fsnotify.Create) != 0 {
				w.log.Debug("configuration file changed", "path", event.Name, "op", event.Op.String())
				w.notifyCallbacks()
			}
		case err, ok := <-w.watcher.Errors:
			if !ok {
				return
			}
			if err != nil {
				w.log.Warn("configuration watcher error", "error", err)
			}
		}
	}
}

func (w *Watcher) notifyCallbacks() {
	w.mu.RLock()
	callbacks := make([]func(), len(w.callbacks))
	copy(callbacks, w.callbacks)
	w.mu.RUnlock()
	for _, callback := range callbacks {
		if callback != nil {
			callback()
		}
	}
}

// Close stops the watcher and releases resources. It is idempotent.
func (w *Watcher) Close() error {
	var closeErr error
	w.closeOnce.Do(func() {
		close(w.stopCh)
		if err := w.watcher.Close(); err != nil {
			closeErr = fmt.Errorf("failed to close watcher: %w", err)
		}
	})
	return closeErr
}
