package ledger

import (
	"fmt"

	apperrors "github.com/louisbranch/queenofhearts/internal/platform/errors"
)

// Validate checks the structural invariants of a decoded document.
func (l *Ledger) Validate() error {
	playerIDs := make(map[int64]struct{}, len(l.Players))
	gameOwner := make(map[int64]int64)
	for _, p := range l.Players {
		if _, dup := playerIDs[p.ID]; dup {
			return malformed("duplicate player id %d", p.ID)
		}
		playerIDs[p.ID] = struct{}{}
		if p.ID >= l.NextPlayerID {
			return malformed("player id %d not below nextPlayerId %d", p.ID, l.NextPlayerID)
		}
		if p.Wallet < 0 {
			return malformed("player %d has negative wallet", p.ID)
		}
		if len(p.Activity) > ActivityLimit {
			return malformed("player %d has %d activity entries", p.ID, len(p.Activity))
		}
		for _, acct := range p.GameAccounts {
			if _, dup := gameOwner[acct.ID]; dup {
				return malformed("duplicate game account id %d", acct.ID)
			}
			gameOwner[acct.ID] = p.ID
			if acct.ID >= l.NextGameID {
				return malformed("game account id %d not below nextGameId %d", acct.ID, l.NextGameID)
			}
			if acct.Balance < 0 {
				return malformed("game account %d has negative balance", acct.ID)
			}
		}
	}

	transferIDs := make(map[int64]struct{}, len(l.Transfers))
	for _, t := range l.Transfers {
		if _, dup := transferIDs[t.ID]; dup {
			return malformed("duplicate transfer id %d", t.ID)
		}
		transferIDs[t.ID] = struct{}{}
		if t.ID >= l.NextTransferID {
			return malformed("transfer id %d not below nextTransferId %d", t.ID, l.NextTransferID)
		}
		if _, ok := playerIDs[t.PlayerID]; !ok {
			return malformed("transfer %d references unknown player %d", t.ID, t.PlayerID)
		}
		if owner, ok := gameOwner[t.GameAccountID]; !ok || owner != t.PlayerID {
			return malformed("transfer %d references game account %d not owned by player %d", t.ID, t.GameAccountID, t.PlayerID)
		}
		if t.Amount <= 0 {
			return malformed("transfer %d has non-positive amount", t.ID)
		}
		if !t.Status.Valid() {
			return malformed("transfer %d has unknown status %q", t.ID, t.Status)
		}
		if (t.Status == TransferApproved) != (t.ApprovedAt != nil) {
			return malformed("transfer %d approvedAt does not match status %q", t.ID, t.Status)
		}
	}
	return nil
}

func malformed(format string, args ...any) error {
	return apperrors.New(apperrors.CodeMalformedLedger, fmt.Sprintf(format, args...))
}
