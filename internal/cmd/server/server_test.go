package server

import (
	"context"
	"flag"
	"testing"
	"time"
)

func TestParseConfigDefaults(t *testing.T) {
	fs := flag.NewFlagSet("server", flag.ContinueOnError)
	cfg, err := ParseConfig(fs, nil)
	if err != nil {
		t.Fatalf("ParseConfig() error = %v", err)
	}
	if cfg.HTTPAddr != "localhost:8090" {
		t.Fatalf("HTTPAddr = %q, want %q", cfg.HTTPAddr, "localhost:8090")
	}
	if cfg.DBPath != "data/qoh.db" {
		t.Fatalf("DBPath = %q, want %q", cfg.DBPath, "data/qoh.db")
	}
	if cfg.Backend != "sqlite" {
		t.Fatalf("Backend = %q, want sqlite", cfg.Backend)
	}
	if cfg.WatchInterval != time.Second {
		t.Fatalf("WatchInterval = %v, want %v", cfg.WatchInterval, time.Second)
	}
	if cfg.Timezone != "Local" {
		t.Fatalf("Timezone = %q, want Local", cfg.Timezone)
	}
}

func TestParseConfigEnvThenFlags(t *testing.T) {
	t.Setenv("QOH_HTTP_ADDR", "env:9000")
	t.Setenv("QOH_WATCH_INTERVAL", "250ms")

	fs := flag.NewFlagSet("server", flag.ContinueOnError)
	cfg, err := ParseConfig(fs, []string{"-http-addr", "127.0.0.1:9002", "-storage", "bolt"})
	if err != nil {
		t.Fatalf("ParseConfig() error = %v", err)
	}
	if cfg.HTTPAddr != "127.0.0.1:9002" {
		t.Fatalf("HTTPAddr = %q, want flag value", cfg.HTTPAddr)
	}
	if cfg.WatchInterval != 250*time.Millisecond {
		t.Fatalf("WatchInterval = %v, want env value", cfg.WatchInterval)
	}
	if cfg.Backend != "bolt" {
		t.Fatalf("Backend = %q, want bolt", cfg.Backend)
	}
}

func TestParseConfigRejectsBadInterval(t *testing.T) {
	t.Setenv("QOH_WATCH_INTERVAL", "often")
	fs := flag.NewFlagSet("server", flag.ContinueOnError)
	if _, err := ParseConfig(fs, nil); err == nil {
		t.Fatal("expected env parse error")
	}
}

func TestRunRejectsUnknownTimezone(t *testing.T) {
	err := Run(context.Background(), Config{HTTPAddr: "127.0.0.1:0", Timezone: "Mars/Olympus_Mons"})
	if err == nil {
		t.Fatal("expected timezone error")
	}
}

func TestLoadLocation(t *testing.T) {
	loc, err := loadLocation("UTC")
	if err != nil {
		t.Fatalf("load UTC: %v", err)
	}
	if loc != time.UTC {
		t.Fatalf("location = %v, want UTC", loc)
	}
	if loc, _ := loadLocation(" "); loc != time.Local {
		t.Fatalf("blank location = %v, want Local", loc)
	}
}
