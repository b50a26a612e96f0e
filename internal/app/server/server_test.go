package server

import (
	"context"
	"net/http"
	"net/http/httptest"
	"net/url"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/louisbranch/queenofhearts/internal/services/web"
)

func newTestRuntime(t *testing.T) *Runtime {
	t.Helper()
	rt, err := New(context.Background(), Config{
		HTTPAddr:      "127.0.0.1:0",
		DBPath:        filepath.Join(t.TempDir(), "qoh.db"),
		WatchInterval: 10 * time.Millisecond,
		Location:      time.UTC,
	})
	if err != nil {
		t.Fatalf("new runtime: %v", err)
	}
	t.Cleanup(func() {
		if err := rt.Close(); err != nil {
			t.Fatalf("close runtime: %v", err)
		}
	})
	return rt
}

func TestNewRejectsUnknownBackend(t *testing.T) {
	_, err := New(context.Background(), Config{
		HTTPAddr: "127.0.0.1:0",
		DBPath:   filepath.Join(t.TempDir(), "qoh.db"),
		Backend:  "memcached",
	})
	if err == nil {
		t.Fatal("expected unknown backend error")
	}
}

func TestNewRequiresHTTPAddr(t *testing.T) {
	_, err := New(context.Background(), Config{DBPath: filepath.Join(t.TempDir(), "qoh.db")})
	if err == nil {
		t.Fatal("expected missing http address error")
	}
}

func TestWatchersPropagatePlayerWrites(t *testing.T) {
	rt := newTestRuntime(t)
	ctx := context.Background()
	for _, w := range rt.watchers {
		if err := w.Poll(ctx); err != nil {
			t.Fatalf("prime watcher: %v", err)
		}
	}

	handler, err := web.NewHandler(rt.deps)
	if err != nil {
		t.Fatalf("new handler: %v", err)
	}
	form := url.Values{"amount": {"40"}, "method": {"card"}}
	req := httptest.NewRequest(http.MethodPost, "/player/deposits", strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	if rec.Code != http.StatusOK {
		t.Fatalf("deposit status = %d, want %d", rec.Code, http.StatusOK)
	}

	if view := rt.deps.Admin.View(ctx); view.Players[0].Wallet != 250 {
		t.Fatalf("admin wallet before poll = %d, want stale 250", view.Players[0].Wallet)
	}
	for _, w := range rt.watchers {
		if err := w.Poll(ctx); err != nil {
			t.Fatalf("poll watcher: %v", err)
		}
	}
	if view := rt.deps.Admin.View(ctx); view.Players[0].Wallet != 290 {
		t.Fatalf("admin wallet after poll = %d, want 290", view.Players[0].Wallet)
	}
}

func TestServeStopsOnContext(t *testing.T) {
	rt := newTestRuntime(t)
	ctx, cancel := context.WithCancel(context.Background())

	serveErr := make(chan error, 1)
	go func() {
		serveErr <- rt.Serve(ctx)
	}()
	time.Sleep(20 * time.Millisecond)
	cancel()

	select {
	case err := <-serveErr:
		if err != nil {
			t.Fatalf("serve returned error: %v", err)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("serve did not stop after cancel")
	}
}
