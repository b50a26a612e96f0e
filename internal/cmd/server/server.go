// Package server parses server command flags and starts the wallet web runtime.
package server

import (
	"context"
	"flag"
	"fmt"
	"strings"
	"time"

	serverapp "github.com/louisbranch/queenofhearts/internal/app/server"
	entrypoint "github.com/louisbranch/queenofhearts/internal/platform/cmd"
)

// Config holds server command configuration.
type Config struct {
	HTTPAddr      string        `env:"QOH_HTTP_ADDR"       envDefault:"localhost:8090"`
	DBPath        string        `env:"QOH_DB_PATH"         envDefault:"data/qoh.db"`
	Backend       string        `env:"QOH_STORAGE_BACKEND" envDefault:"sqlite"`
	WatchInterval time.Duration `env:"QOH_WATCH_INTERVAL"  envDefault:"1s"`
	Timezone      string        `env:"QOH_TIMEZONE"        envDefault:"Local"`
}

// ParseConfig parses environment and flags into a Config.
func ParseConfig(fs *flag.FlagSet, args []string) (Config, error) {
	var cfg Config
	if err := entrypoint.ParseConfig(&cfg); err != nil {
		return Config{}, err
	}
	fs.StringVar(&cfg.HTTPAddr, "http-addr", cfg.HTTPAddr, "HTTP listen address")
	fs.StringVar(&cfg.DBPath, "db-path", cfg.DBPath, "Slot store file path")
	fs.StringVar(&cfg.Backend, "storage", cfg.Backend, "Storage backend: sqlite or bolt")
	fs.DurationVar(&cfg.WatchInterval, "watch-interval", cfg.WatchInterval, "Interval between external change polls")
	fs.StringVar(&cfg.Timezone, "timezone", cfg.Timezone, "IANA time zone used to display timestamps")
	if err := entrypoint.ParseArgs(fs, args); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Run starts the wallet web runtime.
func Run(ctx context.Context, cfg Config) error {
	location, err := loadLocation(cfg.Timezone)
	if err != nil {
		return err
	}
	return entrypoint.RunWithTelemetry(ctx, entrypoint.ServiceServer, func(ctx context.Context) error {
		return serverapp.Run(ctx, serverapp.Config{
			HTTPAddr:      cfg.HTTPAddr,
			DBPath:        cfg.DBPath,
			Backend:       cfg.Backend,
			WatchInterval: cfg.WatchInterval,
			Location:      location,
		})
	})
}

func loadLocation(name string) (*time.Location, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return time.Local, nil
	}
	location, err := time.LoadLocation(name)
	if err != nil {
		return nil, fmt.Errorf("load timezone %q: %w", name, err)
	}
	return location, nil
}
