// Package ledger defines the player wallet document and its mutations.
//
// A Ledger is a plain value: callers clone it, apply one mutation, and persist
// the whole document. Nothing in this package performs I/O.
package ledger

import (
	"strings"
	"time"
)

// ActivityLimit caps the number of activity entries kept per player.
const ActivityLimit = 50

// TransferStatus is the lifecycle state of a transfer.
type TransferStatus string

const (
	TransferPending  TransferStatus = "pending"
	TransferApproved TransferStatus = "approved"
)

// Valid reports whether s is a known status.
func (s TransferStatus) Valid() bool {
	return s == TransferPending || s == TransferApproved
}

// Ledger is the root persisted document.
type Ledger struct {
	NextPlayerID   int64      `json:"nextPlayerId"`
	NextGameID     int64      `json:"nextGameId"`
	NextTransferID int64      `json:"nextTransferId"`
	Players        []Player   `json:"players"`
	Transfers      []Transfer `json:"transfers"`
}

// Player is an account holder with a wallet and per-game sub-accounts.
type Player struct {
	ID           int64           `json:"id"`
	Name         string          `json:"name"`
	Email        string          `json:"email"`
	Wallet       int64           `json:"wallet"`
	GameAccounts []GameAccount   `json:"gameAccounts"`
	Activity     []ActivityEntry `json:"activity"`
}

// GameAccount is a per-game balance owned by exactly one player.
type GameAccount struct {
	ID       int64  `json:"id"`
	Game     string `json:"game"`
	Username string `json:"username"`
	Balance  int64  `json:"balance"`
}

// Transfer records credits moved from a wallet into a game account.
type Transfer struct {
	ID            int64          `json:"id"`
	PlayerID      int64          `json:"playerId"`
	GameAccountID int64          `json:"gameAccountId"`
	Amount        int64          `json:"amount"`
	Status        TransferStatus `json:"status"`
	RequestedAt   time.Time      `json:"requestedAt"`
	ApprovedAt    *time.Time     `json:"approvedAt,omitempty"`
}

// ActivityEntry is one line of a player's activity log.
type ActivityEntry struct {
	Message string    `json:"message"`
	Time    time.Time `json:"time"`
}

// Timestamp normalizes t to the persisted precision (UTC milliseconds).
func Timestamp(t time.Time) time.Time {
	return t.UTC().Truncate(time.Millisecond)
}

// Player returns the player with id, or nil.
func (l *Ledger) Player(id int64) *Player {
	for i := range l.Players {
		if l.Players[i].ID == id {
			return &l.Players[i]
		}
	}
	return nil
}

// Transfer returns the transfer with id, or nil.
func (l *Ledger) Transfer(id int64) *Transfer {
	for i := range l.Transfers {
		if l.Transfers[i].ID == id {
			return &l.Transfers[i]
		}
	}
	return nil
}

// TransfersFor returns the transfers owned by playerID, newest first.
func (l *Ledger) TransfersFor(playerID int64) []Transfer {
	var out []Transfer
	for _, t := range l.Transfers {
		if t.PlayerID == playerID {
			out = append(out, t)
		}
	}
	return out
}

// PendingCount returns the number of transfers awaiting approval.
func (l *Ledger) PendingCount() int {
	n := 0
	for _, t := range l.Transfers {
		if t.Status == TransferPending {
			n++
		}
	}
	return n
}

// GameAccount returns the player's account with id, or nil.
func (p *Player) GameAccount(id int64) *GameAccount {
	for i := range p.GameAccounts {
		if p.GameAccounts[i].ID == id {
			return &p.GameAccounts[i]
		}
	}
	return nil
}

// HasUsername reports whether the player already owns username, ignoring case.
func (p *Player) HasUsername(username string) bool {
	for _, acct := range p.GameAccounts {
		if strings.EqualFold(acct.Username, username) {
			return true
		}
	}
	return false
}

// Label is the selection label shown for the player, "NAME (EMAIL)".
func (p *Player) Label() string {
	return p.Name + " (" + p.Email + ")"
}

// LastActivity returns the newest activity time.
func (p *Player) LastActivity() (time.Time, bool) {
	if len(p.Activity) == 0 {
		return time.Time{}, false
	}
	return p.Activity[0].Time, true
}

// AddActivity prepends an entry and drops the oldest beyond ActivityLimit.
func (p *Player) AddActivity(message string, at time.Time) {
	entries := make([]ActivityEntry, 0, min(len(p.Activity)+1, ActivityLimit))
	entries = append(entries, ActivityEntry{Message: message, Time: Timestamp(at)})
	for _, e := range p.Activity {
		if len(entries) == ActivityLimit {
			break
		}
		entries = append(entries, e)
	}
	p.Activity = entries
}

// Clone returns a deep copy of the ledger.
func (l *Ledger) Clone() Ledger {
	out := *l
	out.Players = make([]Player, len(l.Players))
	for i, p := range l.Players {
		p.GameAccounts = append([]GameAccount(nil), p.GameAccounts...)
		p.Activity = append([]ActivityEntry(nil), p.Activity...)
		if p.GameAccounts == nil {
			p.GameAccounts = []GameAccount{}
		}
		if p.Activity == nil {
			p.Activity = []ActivityEntry{}
		}
		out.Players[i] = p
	}
	out.Transfers = make([]Transfer, len(l.Transfers))
	for i, t := range l.Transfers {
		if t.ApprovedAt != nil {
			at := *t.ApprovedAt
			t.ApprovedAt = &at
		}
		out.Transfers[i] = t
	}
	return out
}
