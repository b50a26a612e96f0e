package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	sqlitemigrate "github.com/louisbranch/queenofhearts/internal/platform/storage/sqlitemigrate"
	"github.com/louisbranch/queenofhearts/internal/storage"
	"github.com/louisbranch/queenofhearts/internal/storage/sqlite/migrations"
	_ "modernc.org/sqlite"
)

// Store provides SQLite-backed slot persistence.
type Store struct {
	sqlDB *sql.DB
}

// Open opens and migrates a slot store, creating the parent directory.
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
	dsn := "file:" + cleanPath + "?_pragma=busy_timeout(5000)&_pragma=journal_mode(WAL)&_pragma=synchronous(NORMAL)"
	sqlDB, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("open sqlite db: %w", err)
	}

	if err := sqlDB.Ping(); err != nil {
		_ = sqlDB.Close()
		return nil, fmt.Errorf("ping sqlite db: %w", err)
	}

	store := &Store{sqlDB: sqlDB}
	if err := store.runMigrations(); err != nil {
		_ = sqlDB.Close()
		return nil, fmt.Errorf("run migrations: %w", err)
	}
	return store, nil
}

// Close releases the underlying SQLite connection.
func (s *Store) Close() error {
	if s == nil || s.sqlDB == nil {
		return nil
	}
	return s.sqlDB.Close()
}

// GetSlot loads a present slot by key.
func (s *Store) GetSlot(ctx context.Context, key string) (storage.Slot, error) {
	if err := ctx.Err(); err != nil {
		return storage.Slot{}, err
	}
	if s == nil || s.sqlDB == nil {
		return storage.Slot{}, fmt.Errorf("storage is not configured")
	}
	key = strings.TrimSpace(key)
	if key == "" {
		return storage.Slot{}, fmt.Errorf("slot key is required")
	}

	row := s.sqlDB.QueryRowContext(ctx,
		`SELECT key, value, version, origin, updated_at FROM slots WHERE key = ? AND present = 1`,
		key,
	)
	var slot storage.Slot
	var updatedAt int64
	if err := row.Scan(&slot.Key, &slot.Value, &slot.Version, &slot.Origin, &updatedAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return storage.Slot{}, storage.ErrNotFound
		}
		return storage.Slot{}, fmt.Errorf("get slot %s: %w", key, err)
	}
	slot.UpdatedAt = unixMillisToTime(updatedAt)
	return slot, nil
}

// PutSlot replaces the slot value and advances its version.
func (s *Store) PutSlot(ctx context.Context, key, value, origin string, at time.Time) (storage.Slot, error) {
	if err := ctx.Err(); err != nil {
		return storage.Slot{}, err
	}
	if s == nil || s.sqlDB == nil {
		return storage.Slot{}, fmt.Errorf("storage is not configured")
	}
	key = strings.TrimSpace(key)
	if key == "" {
		return storage.Slot{}, fmt.Errorf("slot key is required")
	}
	if at.IsZero() {
		at = time.Now().UTC()
	}

	var version int64
	err := s.sqlDB.QueryRowContext(ctx,
		`INSERT INTO slots (key, value, present, version, origin, updated_at)
		 VALUES (?, ?, 1, 1, ?, ?)
		 ON CONFLICT(key) DO UPDATE SET
		    value = excluded.value,
		    present = 1,
		    version = slots.version + 1,
		    origin = excluded.origin,
		    updated_at = excluded.updated_at
		 RETURNING version`,
		key, value, origin, timeToUnixMillis(at),
	).Scan(&version)
	if err != nil {
		return storage.Slot{}, fmt.Errorf("put slot %s: %w", key, err)
	}
	return storage.Slot{
		Key:       key,
		Value:     value,
		Version:   version,
		Origin:    origin,
		UpdatedAt: unixMillisToTime(timeToUnixMillis(at)),
	}, nil
}

// DeleteSlot marks a present slot absent and advances its version.
func (s *Store) DeleteSlot(ctx context.Context, key, origin string, at time.Time) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if s == nil || s.sqlDB == nil {
		return fmt.Errorf("storage is not configured")
	}
	key = strings.TrimSpace(key)
	if key == "" {
		return fmt.Errorf("slot key is required")
	}
	if at.IsZero() {
		at = time.Now().UTC()
	}

	if _, err := s.sqlDB.ExecContext(ctx,
		`UPDATE slots
		 SET value = '', present = 0, version = version + 1, origin = ?, updated_at = ?
		 WHERE key = ? AND present = 1`,
		origin, timeToUnixMillis(at), key,
	); err != nil {
		return fmt.Errorf("delete slot %s: %w", key, err)
	}
	return nil
}

// ListSlotVersions returns version metadata for every slot ever written.
func (s *Store) ListSlotVersions(ctx context.Context) ([]storage.SlotVersion, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if s == nil || s.sqlDB == nil {
		return nil, fmt.Errorf("storage is not configured")
	}

	rows, err := s.sqlDB.QueryContext(ctx, `SELECT key, version, origin, present FROM slots ORDER BY key`)
	if err != nil {
		return nil, fmt.Errorf("list slot versions: %w", err)
	}
	defer func() {
		_ = rows.Close()
	}()

	versions := make([]storage.SlotVersion, 0, 2)
	for rows.Next() {
		var v storage.SlotVersion
		var present int64
		if err := rows.Scan(&v.Key, &v.Version, &v.Origin, &present); err != nil {
			return nil, fmt.Errorf("scan slot version: %w", err)
		}
		v.Present = present != 0
		versions = append(versions, v)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate slot versions: %w", err)
	}
	return versions, nil
}

// runMigrations applies embedded SQL migrations in filename order.
func (s *Store) runMigrations() error {
	_, err := sqlitemigrate.ApplyMigrations(context.Background(), s.sqlDB, migrations.FS, "")
	return err
}

func timeToUnixMillis(value time.Time) int64 {
	if value.IsZero() {
		return 0
	}
	return value.UTC().UnixMilli()
}

func unixMillisToTime(value int64) time.Time {
	if value <= 0 {
		return time.Time{}
	}
	return time.UnixMilli(value).UTC()
}

var _ storage.SlotStore = (*Store)(nil)
