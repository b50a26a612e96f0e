// Package seed parses seed command flags and resets the demo data.
package seed

import (
	"context"
	"flag"
	"fmt"
	"io"
	"log"

	entrypoint "github.com/louisbranch/queenofhearts/internal/platform/cmd"
	"github.com/louisbranch/queenofhearts/internal/services/player"
	"github.com/louisbranch/queenofhearts/internal/storage/backend"
	"github.com/louisbranch/queenofhearts/internal/store"
)

// Config holds seed command configuration.
type Config struct {
	DBPath  string `env:"QOH_DB_PATH"         envDefault:"data/qoh.db"`
	Backend string `env:"QOH_STORAGE_BACKEND" envDefault:"sqlite"`
}

// ParseConfig parses environment and flags into a Config.
func ParseConfig(fs *flag.FlagSet, args []string) (Config, error) {
	var cfg Config
	if err := entrypoint.ParseConfig(&cfg); err != nil {
		return Config{}, err
	}
	fs.StringVar(&cfg.DBPath, "db-path", cfg.DBPath, "Slot store file path")
	fs.StringVar(&cfg.Backend, "storage", cfg.Backend, "Storage backend: sqlite or bolt")
	if err := entrypoint.ParseArgs(fs, args); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Run replaces the stored ledger with the demo seed and selects its first
// player. Running processes pick the change up through their watchers.
func Run(ctx context.Context, cfg Config, out io.Writer) error {
	if out == nil {
		out = io.Discard
	}
	return entrypoint.RunWithTelemetry(ctx, entrypoint.ServiceSeed, func(ctx context.Context) error {
		slots, err := backend.Open(cfg.Backend, cfg.DBPath)
		if err != nil {
			return fmt.Errorf("open storage: %w", err)
		}
		defer func() {
			if err := slots.Close(); err != nil {
				log.Printf("close storage: %v", err)
			}
		}()

		st, err := store.New(slots)
		if err != nil {
			return err
		}
		players, err := player.NewService(ctx, st)
		if err != nil {
			return err
		}
		view, err := players.Reset(ctx)
		if err != nil {
			return fmt.Errorf("reset ledger: %w", err)
		}
		fmt.Fprintf(out, "Seeded %d players into %s\n", len(view.Options), cfg.DBPath)
		if !view.Guest() {
			fmt.Fprintf(out, "Session player: %s\n", view.Active.Name)
		}
		return nil
	})
}
