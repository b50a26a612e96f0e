package player

import (
	"github.com/louisbranch/queenofhearts/internal/ledger"
)

// Games lists the game catalog offered by the player forms. The first entries
// are the games used by the demo seed.
var Games = []string{"Ultra Panda", "Fire Kirin", "Orion Stars", "Game Vault"}

// FundingMethods lists the deposit methods offered by the player forms.
var FundingMethods = []string{"tierlock", "bitcoin", "card"}

// Option is one entry of the player selection list.
type Option struct {
	ID       int64
	Label    string
	Selected bool
}

// TransferRow is a transfer joined with the game account it credited.
type TransferRow struct {
	Transfer ledger.Transfer
	Game     string
	Username string
}

// View is everything the player page renders.
type View struct {
	Options []Option
	// Active is nil in the guest state.
	Active     *ledger.Player
	Transfers  []TransferRow
	Games      []string
	Methods    []string
	Suggestion string
	// SuggestionGame is the catalog entry the suggestion was computed for.
	SuggestionGame string
}

// Guest reports whether no player is selected.
func (v View) Guest() bool {
	return v.Active == nil
}

func buildView(l *ledger.Ledger, active *ledger.Player, game string) View {
	v := View{
		Options: make([]Option, 0, len(l.Players)),
		Games:   Games,
		Methods: FundingMethods,
	}
	for i := range l.Players {
		p := &l.Players[i]
		v.Options = append(v.Options, Option{
			ID:       p.ID,
			Label:    p.Label(),
			Selected: active != nil && active.ID == p.ID,
		})
	}
	if active == nil {
		return v
	}

	snapshot := *active
	snapshot.GameAccounts = append([]ledger.GameAccount(nil), active.GameAccounts...)
	snapshot.Activity = append([]ledger.ActivityEntry(nil), active.Activity...)
	v.Active = &snapshot

	for _, t := range l.TransfersFor(active.ID) {
		row := TransferRow{Transfer: t}
		if acct := active.GameAccount(t.GameAccountID); acct != nil {
			row.Game = acct.Game
			row.Username = acct.Username
		}
		v.Transfers = append(v.Transfers, row)
	}

	if game == "" && len(Games) > 0 {
		game = Games[0]
	}
	v.SuggestionGame = game
	v.Suggestion = ledger.SuggestUsername(active, game)
	return v
}
