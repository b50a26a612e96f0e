// Package bbolt provides a single-process BoltDB slot store.
//
// BoltDB holds an exclusive file lock, so only one process can open the
// file. Use the SQLite store when the server and MCP processes share data.
package bbolt

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/louisbranch/queenofhearts/internal/storage"
	"go.etcd.io/bbolt"
)

const slotBucket = "slots"

// record is the stored form of one slot. Deleted slots keep their record
// with Present cleared so the version keeps advancing.
type record struct {
	Value     string `json:"value"`
	Present   bool   `json:"present"`
	Version   int64  `json:"version"`
	Origin    string `json:"origin"`
	UpdatedAt int64  `json:"updated_at"`
}

// Store provides a BoltDB-backed slot store.
type Store struct {
	db *bbolt.DB
}

// Open opens a BoltDB-backed store at the provided path.
func Open(path string) (*Store, error) {
	if strings.TrimSpace(path) == "" {
		return nil, fmt.Errorf("storage path is required")
	}

	cleanPath := filepath.Clean(path)
	if dir := filepath.Dir(cleanPath); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("create storage dir: %w", err)
		}
	}
	db, err := bbolt.Open(cleanPath, 0o600, &bbolt.Options{Timeout: time.Second})
	if err != nil {
		return nil, fmt.Errorf("open storage db: %w", err)
	}

	store := &Store{db: db}
	if err := store.ensureBuckets(); err != nil {
		_ = db.Close()
		return nil, err
	}

	return store, nil
}

// Close closes the underlying BoltDB database.
func (s *Store) Close() error {
	if s == nil || s.db == nil {
		return nil
	}
	return s.db.Close()
}

// GetSlot loads a present slot by key.
func (s *Store) GetSlot(ctx context.Context, key string) (storage.Slot, error) {
	if err := ctx.Err(); err != nil {
		return storage.Slot{}, err
	}
	if s == nil || s.db == nil {
		return storage.Slot{}, fmt.Errorf("storage is not configured")
	}
	key = strings.TrimSpace(key)
	if key == "" {
		return storage.Slot{}, fmt.Errorf("slot key is required")
	}

	var slot storage.Slot
	err := s.db.View(func(tx *bbolt.Tx) error {
		rec, ok, err := readRecord(tx, key)
		if err != nil {
			return err
		}
		if !ok || !rec.Present {
			return storage.ErrNotFound
		}
		slot = toSlot(key, rec)
		return nil
	})
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return storage.Slot{}, err
		}
		return storage.Slot{}, fmt.Errorf("get slot %s: %w", key, err)
	}
	return slot, nil
}

// PutSlot replaces the slot value and advances its version.
func (s *Store) PutSlot(ctx context.Context, key, value, origin string, at time.Time) (storage.Slot, error) {
	if err := ctx.Err(); err != nil {
		return storage.Slot{}, err
	}
	if s == nil || s.db == nil {
		return storage.Slot{}, fmt.Errorf("storage is not configured")
	}
	key = strings.TrimSpace(key)
	if key == "" {
		return storage.Slot{}, fmt.Errorf("slot key is required")
	}
	if at.IsZero() {
		at = time.Now().UTC()
	}

	var slot storage.Slot
	err := s.db.Update(func(tx *bbolt.Tx) error {
		rec, _, err := readRecord(tx, key)
		if err != nil {
			return err
		}
		rec = record{
			Value:     value,
			Present:   true,
			Version:   rec.Version + 1,
			Origin:    origin,
			UpdatedAt: at.UTC().UnixMilli(),
		}
		if err := writeRecord(tx, key, rec); err != nil {
			return err
		}
		slot = toSlot(key, rec)
		return nil
	})
	if err != nil {
		return storage.Slot{}, fmt.Errorf("put slot %s: %w", key, err)
	}
	return slot, nil
}

// DeleteSlot marks a present slot absent and advances its version.
func (s *Store) DeleteSlot(ctx context.Context, key, origin string, at time.Time) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if s == nil || s.db == nil {
		return fmt.Errorf("storage is not configured")
	}
	key = strings.TrimSpace(key)
	if key == "" {
		return fmt.Errorf("slot key is required")
	}
	if at.IsZero() {
		at = time.Now().UTC()
	}

	err := s.db.Update(func(tx *bbolt.Tx) error {
		rec, ok, err := readRecord(tx, key)
		if err != nil || !ok || !rec.Present {
			return err
		}
		rec = record{
			Version:   rec.Version + 1,
			Origin:    origin,
			UpdatedAt: at.UTC().UnixMilli(),
		}
		return writeRecord(tx, key, rec)
	})
	if err != nil {
		return fmt.Errorf("delete slot %s: %w", key, err)
	}
	return nil
}

// ListSlotVersions returns version metadata for every slot ever written,
// ordered by key.
func (s *Store) ListSlotVersions(ctx context.Context) ([]storage.SlotVersion, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if s == nil || s.db == nil {
		return nil, fmt.Errorf("storage is not configured")
	}

	versions := make([]storage.SlotVersion, 0, 2)
	err := s.db.View(func(tx *bbolt.Tx) error {
		bucket := tx.Bucket([]byte(slotBucket))
		if bucket == nil {
			return fmt.Errorf("slot bucket is missing")
		}
		return bucket.ForEach(func(k, payload []byte) error {
			var rec record
			if err := json.Unmarshal(payload, &rec); err != nil {
				return fmt.Errorf("unmarshal slot %s: %w", k, err)
			}
			versions = append(versions, storage.SlotVersion{
				Key:     string(k),
				Version: rec.Version,
				Origin:  rec.Origin,
				Present: rec.Present,
			})
			return nil
		})
	})
	if err != nil {
		return nil, fmt.Errorf("list slot versions: %w", err)
	}
	return versions, nil
}

func (s *Store) ensureBuckets() error {
	return s.db.Update(func(tx *bbolt.Tx) error {
		_, err := tx.CreateBucketIfNotExists([]byte(slotBucket))
		if err != nil {
			return fmt.Errorf("create slot bucket: %w", err)
		}
		return nil
	})
}

func readRecord(tx *bbolt.Tx, key string) (record, bool, error) {
	bucket := tx.Bucket([]byte(slotBucket))
	if bucket == nil {
		return record{}, false, fmt.Errorf("slot bucket is missing")
	}
	payload := bucket.Get([]byte(key))
	if payload == nil {
		return record{}, false, nil
	}
	var rec record
	if err := json.Unmarshal(payload, &rec); err != nil {
		return record{}, false, fmt.Errorf("unmarshal slot: %w", err)
	}
	return rec, true, nil
}

func writeRecord(tx *bbolt.Tx, key string, rec record) error {
	payload, err := json.Marshal(rec)
	if err != nil {
		return fmt.Errorf("marshal slot: %w", err)
	}
	return tx.Bucket([]byte(slotBucket)).Put([]byte(key), payload)
}

func toSlot(key string, rec record) storage.Slot {
	slot := storage.Slot{
		Key:     key,
		Value:   rec.Value,
		Version: rec.Version,
		Origin:  rec.Origin,
	}
	if rec.UpdatedAt > 0 {
		slot.UpdatedAt = time.UnixMilli(rec.UpdatedAt).UTC()
	}
	return slot
}

var _ storage.SlotStore = (*Store)(nil)
