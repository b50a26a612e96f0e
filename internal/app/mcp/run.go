// Package mcp composes the MCP runtime over the shared slot store.
package mcp

import (
	"context"
	"fmt"
	"log"

	"github.com/louisbranch/queenofhearts/internal/services/admin"
	"github.com/louisbranch/queenofhearts/internal/services/mcp/service"
	"github.com/louisbranch/queenofhearts/internal/services/player"
	"github.com/louisbranch/queenofhearts/internal/storage"
	"github.com/louisbranch/queenofhearts/internal/storage/backend"
	"github.com/louisbranch/queenofhearts/internal/store"
)

// Config holds the MCP runtime settings.
type Config struct {
	DBPath  string
	Backend string
}

// New builds the MCP server over slots. Tools reload the ledger before every
// call, so no watcher is needed.
func New(ctx context.Context, slots storage.SlotStore) (*service.Server, error) {
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
	return service.New(service.Dependencies{Player: players, Admin: admins})
}

// Run opens storage and serves MCP over stdio until ctx ends.
func Run(ctx context.Context, cfg Config) error {
	slots, err := backend.Open(cfg.Backend, cfg.DBPath)
	if err != nil {
		return fmt.Errorf("open storage: %w", err)
	}
	defer func() {
		if err := slots.Close(); err != nil {
			log.Printf("close storage: %v", err)
		}
	}()

	server, err := New(ctx, slots)
	if err != nil {
		return err
	}
	return server.Serve(ctx)
}
