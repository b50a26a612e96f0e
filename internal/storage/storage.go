// Package storage declares the key/value slot contract backing the ledger.
//
// Two slots exist: the JSON ledger document and the session pointer naming
// the active player. Every write bumps the slot version and records the
// origin of the handle that wrote it so other handles can detect changes.
package storage

import (
	"context"
	"errors"
	"time"
)

const (
	// DataKey holds the JSON ledger document.
	DataKey = "qoh-data"
	// SessionKey holds the active player id as a decimal string.
	SessionKey = "qoh-current-player"
)

// ErrNotFound is returned when a slot is absent.
var ErrNotFound = errors.New("record not found")

// Slot is one stored value with its change metadata.
type Slot struct {
	Key       string
	Value     string
	Version   int64
	Origin    string
	UpdatedAt time.Time
}

// SlotVersion is the change metadata of a slot without its value.
//
// Deleted slots keep their row so a removal still advances Version.
type SlotVersion struct {
	Key     string
	Version int64
	Origin  string
	Present bool
}

// SlotStore persists slots and exposes their versions for change detection.
type SlotStore interface {
	// GetSlot returns ErrNotFound when the slot was never written or was deleted.
	GetSlot(ctx context.Context, key string) (Slot, error)
	PutSlot(ctx context.Context, key, value, origin string, at time.Time) (Slot, error)
	// DeleteSlot is a no-op for absent slots.
	DeleteSlot(ctx context.Context, key, origin string, at time.Time) error
	ListSlotVersions(ctx context.Context) ([]SlotVersion, error)
	Close() error
}
