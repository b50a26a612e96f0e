// Package backend opens the configured slot store implementation.
package backend

import (
	"fmt"
	"strings"

	"github.com/louisbranch/queenofhearts/internal/storage"
	"github.com/louisbranch/queenofhearts/internal/storage/bbolt"
	"github.com/louisbranch/queenofhearts/internal/storage/sqlite"
)

const (
	// SQLite is shared safely between processes.
	SQLite = "sqlite"
	// Bolt locks its file for a single process.
	Bolt = "bolt"
)

// Open returns the slot store named by kind at path. An empty kind means SQLite.
func Open(kind, path string) (storage.SlotStore, error) {
	switch strings.ToLower(strings.TrimSpace(kind)) {
	case "", SQLite:
		return sqlite.Open(path)
	case Bolt, "bbolt":
		return bbolt.Open(path)
	default:
		return nil, fmt.Errorf("unknown storage backend %q (valid: %s, %s)", kind, SQLite, Bolt)
	}
}
