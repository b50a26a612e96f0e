// Package store owns the persisted ledger document and the session pointer.
//
// A Store is one handle onto the slot storage, the equivalent of one browsing
// context. Handles sharing a SlotStore see each other's writes on their next
// read and can learn about them through a Watcher.
package store

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log"
	"strconv"
	"strings"
	"time"

	"github.com/louisbranch/queenofhearts/internal/ledger"
	"github.com/louisbranch/queenofhearts/internal/platform/id"
	"github.com/louisbranch/queenofhearts/internal/storage"
)

// Store loads and saves the ledger through a slot store.
type Store struct {
	slots  storage.SlotStore
	origin string
	clock  func() time.Time

	// seeded is the default document, computed once at construction.
	seeded ledger.Ledger
}

// Option customizes a Store.
type Option func(*Store)

// WithClock overrides the time source used for seeds and write stamps.
func WithClock(clock func() time.Time) Option {
	return func(s *Store) {
		if clock != nil {
			s.clock = clock
		}
	}
}

// WithOrigin sets the writer identity recorded on every slot write.
func WithOrigin(origin string) Option {
	return func(s *Store) {
		if origin = strings.TrimSpace(origin); origin != "" {
			s.origin = origin
		}
	}
}

// New returns a store handle over slots.
func New(slots storage.SlotStore, opts ...Option) (*Store, error) {
	if slots == nil {
		return nil, errors.New("slot store is required")
	}
	s := &Store{slots: slots, clock: time.Now}
	for _, opt := range opts {
		opt(s)
	}
	if s.origin == "" {
		origin, err := id.NewID()
		if err != nil {
			return nil, fmt.Errorf("store origin: %w", err)
		}
		s.origin = origin
	}
	s.seeded = ledger.Seed(s.clock())
	return s, nil
}

// Origin identifies this handle's writes.
func (s *Store) Origin() string {
	return s.origin
}

// Now returns the handle's current time.
func (s *Store) Now() time.Time {
	return s.clock()
}

// Seed returns a freshly seeded ledger stamped with the current time.
func (s *Store) Seed() ledger.Ledger {
	return ledger.Seed(s.clock())
}

// Load reads the persisted ledger.
//
// Absent, malformed, or player-less documents are replaced by the default
// seed, which is persisted before a copy is returned. Only storage failures
// are returned as errors.
func (s *Store) Load(ctx context.Context) (ledger.Ledger, error) {
	slot, err := s.slots.GetSlot(ctx, storage.DataKey)
	if errors.Is(err, storage.ErrNotFound) {
		return s.reseed(ctx)
	}
	if err != nil {
		return ledger.Ledger{}, fmt.Errorf("load ledger: %w", err)
	}

	doc, err := decodeLedger([]byte(slot.Value))
	if err != nil {
		log.Printf("stored ledger is malformed, reseeding: %v", err)
		return s.reseed(ctx)
	}
	if len(doc.Players) == 0 {
		return s.reseed(ctx)
	}
	if err := doc.Validate(); err != nil {
		log.Printf("stored ledger is inconsistent, reseeding: %v", err)
		return s.reseed(ctx)
	}
	return doc, nil
}

// Save replaces the persisted ledger document.
func (s *Store) Save(ctx context.Context, l ledger.Ledger) error {
	if l.Players == nil {
		l.Players = []ledger.Player{}
	}
	if l.Transfers == nil {
		l.Transfers = []ledger.Transfer{}
	}
	data, err := json.Marshal(l)
	if err != nil {
		return fmt.Errorf("encode ledger: %w", err)
	}
	if _, err := s.slots.PutSlot(ctx, storage.DataKey, string(data), s.origin, s.clock()); err != nil {
		return fmt.Errorf("save ledger: %w", err)
	}
	return nil
}

// CurrentPlayerID reads the session pointer. ok is false when the pointer is
// unset or does not hold a decimal id.
func (s *Store) CurrentPlayerID(ctx context.Context) (playerID int64, ok bool, err error) {
	slot, err := s.slots.GetSlot(ctx, storage.SessionKey)
	if errors.Is(err, storage.ErrNotFound) {
		return 0, false, nil
	}
	if err != nil {
		return 0, false, fmt.Errorf("load session pointer: %w", err)
	}
	playerID, err = strconv.ParseInt(strings.TrimSpace(slot.Value), 10, 64)
	if err != nil {
		return 0, false, nil
	}
	return playerID, true, nil
}

// SetCurrentPlayer points the session at playerID.
func (s *Store) SetCurrentPlayer(ctx context.Context, playerID int64) error {
	if _, err := s.slots.PutSlot(ctx, storage.SessionKey, strconv.FormatInt(playerID, 10), s.origin, s.clock()); err != nil {
		return fmt.Errorf("save session pointer: %w", err)
	}
	return nil
}

// ClearCurrentPlayer removes the session pointer.
func (s *Store) ClearCurrentPlayer(ctx context.Context) error {
	if err := s.slots.DeleteSlot(ctx, storage.SessionKey, s.origin, s.clock()); err != nil {
		return fmt.Errorf("clear session pointer: %w", err)
	}
	return nil
}

func (s *Store) reseed(ctx context.Context) (ledger.Ledger, error) {
	if err := s.Save(ctx, s.seeded); err != nil {
		return ledger.Ledger{}, err
	}
	return s.seeded.Clone(), nil
}

// document mirrors ledger.Ledger with required top-level keys.
type document struct {
	NextPlayerID   *int64             `json:"nextPlayerId"`
	NextGameID     *int64             `json:"nextGameId"`
	NextTransferID *int64             `json:"nextTransferId"`
	Players        *[]playerDocument  `json:"players"`
	Transfers      *[]ledger.Transfer `json:"transfers"`
}

// playerDocument lets gameAccounts and activity default to empty.
type playerDocument struct {
	ID           int64                  `json:"id"`
	Name         string                 `json:"name"`
	Email        string                 `json:"email"`
	Wallet       int64                  `json:"wallet"`
	GameAccounts []ledger.GameAccount   `json:"gameAccounts"`
	Activity     []ledger.ActivityEntry `json:"activity"`
}

func decodeLedger(data []byte) (ledger.Ledger, error) {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.DisallowUnknownFields()

	var doc document
	if err := dec.Decode(&doc); err != nil {
		return ledger.Ledger{}, fmt.Errorf("decode ledger: %w", err)
	}
	if err := dec.Decode(&struct{}{}); !errors.Is(err, io.EOF) {
		return ledger.Ledger{}, errors.New("decode ledger: trailing data after document")
	}

	var missing []string
	if doc.NextPlayerID == nil {
		missing = append(missing, "nextPlayerId")
	}
	if doc.NextGameID == nil {
		missing = append(missing, "nextGameId")
	}
	if doc.NextTransferID == nil {
		missing = append(missing, "nextTransferId")
	}
	if doc.Players == nil {
		missing = append(missing, "players")
	}
	if doc.Transfers == nil {
		missing = append(missing, "transfers")
	}
	if len(missing) > 0 {
		return ledger.Ledger{}, fmt.Errorf("decode ledger: missing %s", strings.Join(missing, ", "))
	}

	out := ledger.Ledger{
		NextPlayerID:   *doc.NextPlayerID,
		NextGameID:     *doc.NextGameID,
		NextTransferID: *doc.NextTransferID,
		Players:        make([]ledger.Player, 0, len(*doc.Players)),
		Transfers:      *doc.Transfers,
	}
	for _, p := range *doc.Players {
		player := ledger.Player{
			ID:           p.ID,
			Name:         p.Name,
			Email:        p.Email,
			Wallet:       p.Wallet,
			GameAccounts: p.GameAccounts,
			Activity:     p.Activity,
		}
		if player.GameAccounts == nil {
			player.GameAccounts = []ledger.GameAccount{}
		}
		if player.Activity == nil {
			player.Activity = []ledger.ActivityEntry{}
		}
		if len(player.Activity) > ledger.ActivityLimit {
			player.Activity = player.Activity[:ledger.ActivityLimit]
		}
		out.Players = append(out.Players, player)
	}
	return out, nil
}
