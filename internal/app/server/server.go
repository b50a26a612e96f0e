// Package server composes the wallet web runtime.
//
// The player and admin surfaces each own a store handle over one slot store,
// so a write from either surface (or another process) reaches the other
// through its change watcher.
package server

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/louisbranch/queenofhearts/internal/services/admin"
	"github.com/louisbranch/queenofhearts/internal/services/player"
	"github.com/louisbranch/queenofhearts/internal/services/web"
	"github.com/louisbranch/queenofhearts/internal/storage"
	"github.com/louisbranch/queenofhearts/internal/storage/backend"
	"github.com/louisbranch/queenofhearts/internal/store"
)

// Config holds the runtime settings.
type Config struct {
	HTTPAddr      string
	DBPath        string
	Backend       string
	WatchInterval time.Duration
	// Location renders timestamps; nil means the process local zone.
	Location *time.Location
}

// Runtime owns the slot store, both controllers, their watchers and the
// HTTP server.
type Runtime struct {
	slots    storage.SlotStore
	deps     web.Dependencies
	watchers []*store.Watcher
	web      *web.Server
}

// New opens storage and builds every component without starting them.
func New(ctx context.Context, cfg Config) (*Runtime, error) {
	if ctx == nil {
		return nil, errors.New("context is required")
	}
	slots, err := backend.Open(cfg.Backend, cfg.DBPath)
	if err != nil {
		return nil, fmt.Errorf("open storage: %w", err)
	}
	rt, err := newRuntime(ctx, slots, cfg)
	if err != nil {
		_ = slots.Close()
		return nil, err
	}
	return rt, nil
}

func newRuntime(ctx context.Context, slots storage.SlotStore, cfg Config) (*Runtime, error) {
	playerStore, err := store.New(slots)
	if err != nil {
		return nil, fmt.Errorf("player store: %w", err)
	}
	adminStore, err := store.New(slots)
	if err != nil {
		return nil, fmt.Errorf("admin store: %w", err)
	}
	players, err := player.NewService(ctx, playerStore)
	if err != nil {
		return nil, fmt.Errorf("player service: %w", err)
	}
	admins, err := admin.NewService(ctx, adminStore)
	if err != nil {
		return nil, fmt.Errorf("admin service: %w", err)
	}

	deps := web.Dependencies{Player: players, Admin: admins, Location: cfg.Location}
	webServer, err := web.NewServer(web.Config{HTTPAddr: cfg.HTTPAddr}, deps)
	if err != nil {
		return nil, fmt.Errorf("web server: %w", err)
	}

	return &Runtime{
		slots: slots,
		deps:  deps,
		watchers: []*store.Watcher{
			playerStore.Watch(cfg.WatchInterval, func(ctx context.Context, change store.Change) {
				if _, err := players.HandleExternalChange(ctx, change); err != nil {
					log.Printf("player refresh after %s v%d: %v", change.Key, change.Version, err)
				}
			}),
			adminStore.Watch(cfg.WatchInterval, func(ctx context.Context, change store.Change) {
				if _, err := admins.HandleExternalChange(ctx, change); err != nil {
					log.Printf("admin refresh after %s v%d: %v", change.Key, change.Version, err)
				}
			}),
		},
		web: webServer,
	}, nil
}

// Serve runs the watchers and the HTTP server until ctx ends.
func (r *Runtime) Serve(ctx context.Context) error {
	if r == nil {
		return errors.New("runtime is nil")
	}
	stops := make([]context.CancelFunc, 0, len(r.watchers))
	dones := make([]<-chan struct{}, 0, len(r.watchers))
	for _, w := range r.watchers {
		stop, done := w.Start(ctx)
		stops = append(stops, stop)
		dones = append(dones, done)
	}
	defer func() {
		for _, stop := range stops {
			stop()
		}
		for _, done := range dones {
			<-done
		}
	}()
	return r.web.ListenAndServe(ctx)
}

// Close releases the HTTP listener and the slot store.
func (r *Runtime) Close() error {
	if r == nil {
		return nil
	}
	r.web.Close()
	if err := r.slots.Close(); err != nil {
		return fmt.Errorf("close storage: %w", err)
	}
	return nil
}

// Run builds the runtime and serves until ctx ends.
func Run(ctx context.Context, cfg Config) error {
	rt, err := New(ctx, cfg)
	if err != nil {
		return err
	}
	defer func() {
		if err := rt.Close(); err != nil {
			log.Printf("close runtime: %v", err)
		}
	}()
	return rt.Serve(ctx)
}
