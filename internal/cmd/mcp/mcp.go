// Package mcp parses MCP command flags and serves the wallet tools on stdio.
package mcp

import (
	"context"
	"flag"

	mcpapp "github.com/louisbranch/queenofhearts/internal/app/mcp"
	entrypoint "github.com/louisbranch/queenofhearts/internal/platform/cmd"
)

// Config holds MCP command configuration.
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

// Run starts the MCP protocol adapter.
func Run(ctx context.Context, cfg Config) error {
	return entrypoint.RunWithTelemetry(ctx, entrypoint.ServiceMCP, func(ctx context.Context) error {
		return mcpapp.Run(ctx, mcpapp.Config{DBPath: cfg.DBPath, Backend: cfg.Backend})
	})
}
