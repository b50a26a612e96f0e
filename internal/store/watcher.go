package store

import (
	"context"
	"fmt"
	"log"
	"sync"
	"time"

	"github.com/louisbranch/queenofhearts/internal/platform/timeouts"
	"github.com/louisbranch/queenofhearts/internal/storage"
)

// Change describes a slot written by another store handle.
type Change struct {
	Key     string
	Version int64
	Origin  string
	Present bool
}

// ChangeFunc receives external changes from a Watcher.
type ChangeFunc func(ctx context.Context, change Change)

// Watcher notices slot writes made by other handles.
//
// Detection is best effort: only the latest writer of a slot is visible, so
// a foreign write followed by a local write within one interval goes unseen.
type Watcher struct {
	slots    storage.SlotStore
	origin   string
	interval time.Duration
	onChange ChangeFunc

	mu     sync.Mutex
	seen   map[string]int64
	primed bool
}

// Watch returns a watcher that reports writes not made by this handle.
// A non-positive interval uses timeouts.StoreWatch.
func (s *Store) Watch(interval time.Duration, onChange ChangeFunc) *Watcher {
	if interval <= 0 {
		interval = timeouts.StoreWatch
	}
	return &Watcher{
		slots:    s.slots,
		origin:   s.origin,
		interval: interval,
		onChange: onChange,
		seen:     make(map[string]int64),
	}
}

// Poll runs one detection step. The first call records the current versions
// without reporting them.
func (w *Watcher) Poll(ctx context.Context) error {
	if w == nil {
		return nil
	}
	versions, err := w.slots.ListSlotVersions(ctx)
	if err != nil {
		return fmt.Errorf("poll slot versions: %w", err)
	}

	w.mu.Lock()
	var changes []Change
	for _, v := range versions {
		last, known := w.seen[v.Key]
		w.seen[v.Key] = v.Version
		if !w.primed || (known && v.Version <= last) {
			continue
		}
		if v.Origin == w.origin {
			continue
		}
		changes = append(changes, Change{Key: v.Key, Version: v.Version, Origin: v.Origin, Present: v.Present})
	}
	w.primed = true
	w.mu.Unlock()

	if w.onChange == nil {
		return nil
	}
	for _, change := range changes {
		w.onChange(ctx, change)
	}
	return nil
}

// Start polls in the background until the returned cancel is called or ctx
// ends. done closes once the loop has exited.
func (w *Watcher) Start(ctx context.Context) (context.CancelFunc, <-chan struct{}) {
	if ctx == nil {
		ctx = context.Background()
	}
	ctx, cancel := context.WithCancel(ctx)
	done := make(chan struct{})
	go func() {
		defer close(done)
		w.run(ctx)
	}()
	return cancel, done
}

func (w *Watcher) run(ctx context.Context) {
	if err := w.Poll(ctx); err != nil && ctx.Err() == nil {
		log.Printf("store watcher poll failed: %v", err)
	}

	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if err := w.Poll(ctx); err != nil && ctx.Err() == nil {
				log.Printf("store watcher poll failed: %v", err)
			}
		}
	}
}
