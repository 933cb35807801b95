package fs

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"runtime/debug"
	"sync"
	"time"

	"github.com/aretw0/lifecycle"
	"github.com/fsnotify/fsnotify"

	"github.com/aretw0/folio/pkg/core"
)

// DebounceInterval coalesces the burst of events editors emit on a single save.
const DebounceInterval = 100 * time.Millisecond

// Watch reports external changes to the collection file. Writes made by this
// store are not reported. The channel is closed when ctx is done.
func (s *JSONStore) Watch(ctx context.Context) (<-chan core.Event, error) {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("failed to create watcher: %w", err)
	}

	// Atomic renames replace the inode, so the directory is watched instead of the file.
	dir := filepath.Dir(s.Path)
	if err := watcher.Add(dir); err != nil {
		_ = watcher.Close()
		return nil, fmt.Errorf("failed to watch %s: %w", dir, err)
	}

	events := make(chan core.Event)
	w := &fileWatcher{
		store:    s,
		target:   filepath.Clean(s.Path),
		watcher:  watcher,
		events:   events,
		debounce: newDebouncer(DebounceInterval),
	}

	s.setWatcherActive(true)
	lifecycle.Go(ctx, w.run, lifecycle.WithErrorHandler(func(err error) {
		s.config.Logger.Error("watcher stopped", "path", s.Path, "error", err)
	}))
	return events, nil
}

type fileWatcher struct {
	store    *JSONStore
	target   string
	watcher  *fsnotify.Watcher
	events   chan core.Event
	debounce *debouncer
}

func (w *fileWatcher) run(ctx context.Context) (err error) {
	log := w.store.config.Logger
	defer func() {
		if recovered := recover(); recovered != nil {
			err = fmt.Errorf("watcher panic: %v", recovered)
			if log.Enabled(ctx, slog.LevelDebug) {
				log.Error("watcher panic", "error", err, "stack", string(debug.Stack()))
			} else {
				log.Error("watcher panic", "error", err)
			}
		}
	}()
	defer close(w.events)
	defer w.store.setWatcherActive(false)
	defer w.watcher.Close()

	err = w.loop(ctx)
	// In-flight timers must finish before the channel is closed.
	w.debounce.stopAndWait()
	return err
}

func (w *fileWatcher) loop(ctx context.Context) error {
	log := w.store.config.Logger
	for {
		select {
		case <-ctx.Done():
			return nil

		case event, ok := <-w.watcher.Events:
			if !ok {
				if ctx.Err() != nil {
					return nil
				}
				return fmt.Errorf("watcher events channel closed")
			}
			if filepath.Clean(event.Name) != w.target {
				continue
			}
			log.Debug("event received", "name", event.Name, "op", event.Op.String())

			eType := core.EventModify
			if event.Has(fsnotify.Remove) || event.Has(fsnotify.Rename) {
				eType = core.EventDelete
			} else if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) {
				continue
			}
			w.debounce.add(func() { w.emit(ctx, eType) })

		case wErr, ok := <-w.watcher.Errors:
			if !ok {
				if ctx.Err() != nil {
					return nil
				}
				return fmt.Errorf("watcher errors channel closed")
			}
			log.Error("fsnotify error", "error", wErr)
		}
	}
}

// emit runs after the debounce window, so the file has settled and can be
// compared against what the store last wrote.
func (w *fileWatcher) emit(ctx context.Context, eType core.EventType) {
	if eType == core.EventModify {
		data, err := os.ReadFile(w.target)
		if err != nil {
			eType = core.EventDelete
		} else if w.store.Written(data) {
			w.store.config.Logger.Debug("ignoring own write", "path", w.target)
			return
		}
	} else if _, err := os.Stat(w.target); err == nil {
		// Renamed over by an atomic write; treat as modification.
		data, _ := os.ReadFile(w.target)
		if w.store.Written(data) {
			return
		}
		eType = core.EventModify
	}

	select {
	case w.events <- core.Event{Type: eType, Path: w.target, Timestamp: time.Now().Unix()}:
	case <-ctx.Done():
	}
}

// debouncer keeps only the last callback scheduled within the interval.
type debouncer struct {
	interval time.Duration

	mu      sync.Mutex
	timer   *time.Timer
	stopped bool
	wg      sync.WaitGroup
}

func newDebouncer(interval time.Duration) *debouncer {
	return &debouncer{interval: interval}
}

func (d *debouncer) add(fn func()) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.stopped {
		return
	}
	if d.timer != nil && d.timer.Stop() {
		d.wg.Done()
	}
	d.wg.Add(1)
	d.timer = time.AfterFunc(d.interval, func() {
		defer d.wg.Done()
		fn()
	})
}

func (d *debouncer) stopAndWait() {
	d.mu.Lock()
	d.stopped = true
	if d.timer != nil && d.timer.Stop() {
		d.wg.Done()
	}
	d.mu.Unlock()
	d.wg.Wait()
}
