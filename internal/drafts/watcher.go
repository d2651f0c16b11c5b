package drafts

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/fsnotify/fsnotify"
)

// Watcher monitors the drafts directory for changes so the drafts
// browser can refresh without polling.
type Watcher struct {
	store    *Store
	watcher  *fsnotify.Watcher
	debounce time.Duration
}

// NewWatcher sets up an fsnotify watch on the store's directory.
func NewWatcher(store *Store) (*Watcher, error) {
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("create fsnotify watcher: %w", err)
	}
	if err := fsw.Add(store.Dir()); err != nil {
		fsw.Close()
		return nil, fmt.Errorf("watch directory %s: %w", store.Dir(), err)
	}
	return &Watcher{
		store:    store,
		watcher:  fsw,
		debounce: 100 * time.Millisecond,
	}, nil
}

// Watch returns a channel of draft events. Rapid filesystem events are
// coalesced per draft id within the debounce window. The channel closes
// when the context is cancelled or the underlying watcher dies.
func (w *Watcher) Watch(ctx context.Context) <-chan Event {
	out := make(chan Event, 16)

	go func() {
		defer close(out)

		var pending []fsnotify.Event
		var debounceTimer *time.Timer

		resetDebounce := func() {
			if debounceTimer != nil {
				debounceTimer.Stop()
			}
			debounceTimer = time.NewTimer(w.debounce)
		}

		flush := func() {
			seen := make(map[string]bool)
			for _, ev := range pending {
				id := draftID(ev.Name)
				if id == "" || seen[id] {
					continue
				}
				seen[id] = true

				e := Event{ID: id, Time: time.Now(), Type: EventSaved}
				if ev.Op&(fsnotify.Remove|fsnotify.Rename) != 0 {
					e.Type = EventRemoved
				}

				select {
				case out <- e:
				case <-ctx.Done():
					return
				}
			}
			pending = pending[:0]
		}

		// Start with a stopped timer.
		debounceTimer = time.NewTimer(0)
		if !debounceTimer.Stop() {
			<-debounceTimer.C
		}

		for {
			select {
			case <-ctx.Done():
				return

			case ev, ok := <-w.watcher.Events:
				if !ok {
					return
				}
				base := filepath.Base(ev.Name)
				// Skip the temp files used by atomic saves.
				if strings.HasPrefix(base, ".tmp-") || !strings.HasSuffix(base, ".json") {
					continue
				}
				pending = append(pending, ev)
				resetDebounce()

			case <-debounceTimer.C:
				if len(pending) > 0 {
					flush()
				}

			case _, ok := <-w.watcher.Errors:
				if !ok {
					return
				}
				// Keep watching through transient errors.
			}
		}
	}()

	return out
}

// Close stops the watcher.
func (w *Watcher) Close() error {
	return w.watcher.Close()
}

// draftID extracts the draft id from a watched file path.
func draftID(path string) string {
	base := filepath.Base(path)
	return strings.TrimSuffix(base, ".json")
}
