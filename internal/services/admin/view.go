package admin

import (
	"time"

	"github.com/louisbranch/queenofhearts/internal/ledger"
)

// PlayerRow is one line of the player roster.
type PlayerRow struct {
	ID           int64
	Name         string
	Email        string
	Wallet       int64
	AccountCount int
	LastActivity time.Time
	HasActivity  bool
}

// TransferRow is one line of the transfer roster.
type TransferRow struct {
	Transfer   ledger.Transfer
	PlayerName string
	Game       string
	Username   string
}

// Pending reports whether the row exposes the approve action.
func (r TransferRow) Pending() bool {
	return r.Transfer.Status == ledger.TransferPending
}

// PlayerOption is one entry of the game-account form's player select.
type PlayerOption struct {
	ID    int64
	Label string
}

// View is everything the admin page renders.
type View struct {
	Players       []PlayerRow
	Transfers     []TransferRow
	PendingCount  int
	PlayerOptions []PlayerOption
}

// PlayerCount is the number of players in the roster.
func (v View) PlayerCount() int {
	return len(v.Players)
}

func buildView(l *ledger.Ledger) View {
	v := View{
		Players:       make([]PlayerRow, 0, len(l.Players)),
		Transfers:     make([]TransferRow, 0, len(l.Transfers)),
		PendingCount:  l.PendingCount(),
		PlayerOptions: make([]PlayerOption, 0, len(l.Players)),
	}
	for i := range l.Players {
		p := &l.Players[i]
		row := PlayerRow{
			ID:           p.ID,
			Name:         p.Name,
			Email:        p.Email,
			Wallet:       p.Wallet,
			AccountCount: len(p.GameAccounts),
		}
		row.LastActivity, row.HasActivity = p.LastActivity()
		v.Players = append(v.Players, row)
		v.PlayerOptions = append(v.PlayerOptions, PlayerOption{ID: p.ID, Label: p.Label()})
	}
	for _, t := range l.Transfers {
		row := TransferRow{Transfer: t, PlayerName: "Unknown"}
		if p := l.Player(t.PlayerID); p != nil {
			row.PlayerName = p.Name
			if acct := p.GameAccount(t.GameAccountID); acct != nil {
				row.Game = acct.Game
				row.Username = acct.Username
			}
		}
		v.Transfers = append(v.Transfers, row)
	}
	return v
}
