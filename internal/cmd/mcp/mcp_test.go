package mcp

import (
	"flag"
	"testing"
)

func TestParseConfigDefaults(t *testing.T) {
	fs := flag.NewFlagSet("mcp", flag.ContinueOnError)
	cfg, err := ParseConfig(fs, nil)
	if err != nil {
		t.Fatalf("parse config: %v", err)
	}
	if cfg.DBPath != "data/qoh.db" {
		t.Fatalf("expected default db path, got %q", cfg.DBPath)
	}
	if cfg.Backend != "sqlite" {
		t.Fatalf("expected default backend sqlite, got %q", cfg.Backend)
	}
}

func TestParseConfigOverrides(t *testing.T) {
	t.Setenv("QOH_DB_PATH", "/tmp/env.db")

	fs := flag.NewFlagSet("mcp", flag.ContinueOnError)
	cfg, err := ParseConfig(fs, []string{"-storage", "bolt"})
	if err != nil {
		t.Fatalf("parse config: %v", err)
	}
	if cfg.DBPath != "/tmp/env.db" {
		t.Fatalf("expected env db path, got %q", cfg.DBPath)
	}
	if cfg.Backend != "bolt" {
		t.Fatalf("expected flag backend, got %q", cfg.Backend)
	}
}
