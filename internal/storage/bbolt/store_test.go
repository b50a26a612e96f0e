package bbolt

import (
	"context"
	"errors"
	"path/filepath"
	"testing"
	"time"

	"github.com/louisbranch/queenofhearts/internal/storage"
)

func TestOpenRequiresPath(t *testing.T) {
	if _, err := Open("  "); err == nil {
		t.Fatal("expected error")
	}
}

func TestGetSlotMissing(t *testing.T) {
	store := openTestStore(t)
	if _, err := store.GetSlot(context.Background(), storage.DataKey); !errors.Is(err, storage.ErrNotFound) {
		t.Fatalf("err = %v, want ErrNotFound", err)
	}
}

func TestPutGetSlot(t *testing.T) {
	store := openTestStore(t)
	ctx := context.Background()
	at := time.Date(2026, 1, 23, 12, 0, 0, 0, time.UTC)

	if _, err := store.PutSlot(ctx, storage.DataKey, `{"players":[]}`, "a", at); err != nil {
		t.Fatalf("put slot: %v", err)
	}
	second, err := store.PutSlot(ctx, storage.DataKey, `{"players":[1]}`, "b", at.Add(time.Minute))
	if err != nil {
		t.Fatalf("put slot again: %v", err)
	}
	if second.Version != 2 {
		t.Fatalf("version = %d, want 2", second.Version)
	}

	got, err := store.GetSlot(ctx, storage.DataKey)
	if err != nil {
		t.Fatalf("get slot: %v", err)
	}
	if got.Value != `{"players":[1]}` || got.Origin != "b" || got.Version != 2 {
		t.Fatalf("slot = %+v", got)
	}
	if !got.UpdatedAt.Equal(at.Add(time.Minute)) {
		t.Fatalf("updated at = %v, want %v", got.UpdatedAt, at.Add(time.Minute))
	}
}

func TestDeleteSlotKeepsVersionHistory(t *testing.T) {
	store := openTestStore(t)
	ctx := context.Background()
	now := time.Now()

	if _, err := store.PutSlot(ctx, storage.SessionKey, "1", "a", now); err != nil {
		t.Fatalf("put slot: %v", err)
	}
	if err := store.DeleteSlot(ctx, storage.SessionKey, "b", now); err != nil {
		t.Fatalf("delete slot: %v", err)
	}
	if err := store.DeleteSlot(ctx, storage.SessionKey, "c", now); err != nil {
		t.Fatalf("delete slot again: %v", err)
	}
	if _, err := store.GetSlot(ctx, storage.SessionKey); !errors.Is(err, storage.ErrNotFound) {
		t.Fatalf("get deleted slot err = %v, want ErrNotFound", err)
	}

	versions, err := store.ListSlotVersions(ctx)
	if err != nil {
		t.Fatalf("list versions: %v", err)
	}
	if len(versions) != 1 {
		t.Fatalf("versions = %+v, want one entry", versions)
	}
	if v := versions[0]; v.Version != 2 || v.Present || v.Origin != "b" {
		t.Fatalf("version = %+v, want deleted slot at version 2 by b", v)
	}
}

func TestListSlotVersionsOrderedByKey(t *testing.T) {
	store := openTestStore(t)
	ctx := context.Background()
	if _, err := store.PutSlot(ctx, storage.SessionKey, "1", "a", time.Now()); err != nil {
		t.Fatalf("put session: %v", err)
	}
	if _, err := store.PutSlot(ctx, storage.DataKey, "{}", "a", time.Now()); err != nil {
		t.Fatalf("put data: %v", err)
	}
	versions, err := store.ListSlotVersions(ctx)
	if err != nil {
		t.Fatalf("list versions: %v", err)
	}
	if len(versions) != 2 || versions[0].Key != storage.SessionKey || versions[1].Key != storage.DataKey {
		t.Fatalf("versions = %+v, want session then data key", versions)
	}
}

func TestCancelledContext(t *testing.T) {
	store := openTestStore(t)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, err := store.PutSlot(ctx, storage.DataKey, "{}", "a", time.Now()); !errors.Is(err, context.Canceled) {
		t.Fatalf("err = %v, want context.Canceled", err)
	}
}

func TestNilStoreIsNotConfigured(t *testing.T) {
	var store *Store
	if _, err := store.ListSlotVersions(context.Background()); err == nil {
		t.Fatal("expected not configured error")
	}
	if err := store.Close(); err != nil {
		t.Fatalf("close nil store: %v", err)
	}
}

func openTestStore(t *testing.T) *Store {
	t.Helper()
	store, err := Open(filepath.Join(t.TempDir(), "qoh.bolt"))
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	t.Cleanup(func() {
		if err := store.Close(); err != nil {
			t.Fatalf("close store: %v", err)
		}
	})
	return store
}
