package domain

import (
	"time"

	"github.com/louisbranch/queenofhearts/internal/ledger"
	"github.com/louisbranch/queenofhearts/internal/services/admin"
	"github.com/louisbranch/queenofhearts/internal/services/player"
)

// PlayersListInput represents the MCP tool input for listing players.
type PlayersListInput struct{}

// PlayersListResult lists every player in roster order.
type PlayersListResult struct {
	Players []PlayerSummary `json:"players" jsonschema:"players in roster order"`
}

// PlayerSummary is one roster row.
type PlayerSummary struct {
	ID           int64  `json:"id" jsonschema:"player identifier"`
	Name         string `json:"name" jsonschema:"display name"`
	Email        string `json:"email" jsonschema:"email address"`
	Wallet       int64  `json:"wallet" jsonschema:"wallet balance in whole dollars"`
	GameAccounts int    `json:"game_accounts" jsonschema:"number of game accounts"`
	LastActivity string `json:"last_activity,omitempty" jsonschema:"newest activity time (RFC3339)"`
}

// TransfersListInput represents the MCP tool input for listing transfers.
type TransfersListInput struct {
	Status string `json:"status,omitempty" jsonschema:"optional status filter (pending, approved)"`
}

// TransfersListResult lists transfers newest first.
type TransfersListResult struct {
	Transfers    []TransferSummary `json:"transfers" jsonschema:"transfers newest first"`
	PendingCount int               `json:"pending_count" jsonschema:"transfers awaiting approval"`
}

// TransferSummary is one transfer joined with its player and game account.
type TransferSummary struct {
	ID            int64  `json:"id" jsonschema:"transfer identifier"`
	PlayerID      int64  `json:"player_id" jsonschema:"owning player identifier"`
	PlayerName    string `json:"player_name" jsonschema:"owning player name"`
	GameAccountID int64  `json:"game_account_id" jsonschema:"credited game account identifier"`
	Game          string `json:"game,omitempty" jsonschema:"game name"`
	Username      string `json:"username,omitempty" jsonschema:"game account username"`
	Amount        int64  `json:"amount" jsonschema:"amount in whole dollars"`
	Status        string `json:"status" jsonschema:"transfer status (pending, approved)"`
	RequestedAt   string `json:"requested_at" jsonschema:"request time (RFC3339)"`
	ApprovedAt    string `json:"approved_at,omitempty" jsonschema:"approval time (RFC3339)"`
}

// PlayerCreateInput represents the MCP tool input for creating a player.
type PlayerCreateInput struct {
	Name  string `json:"name" jsonschema:"display name"`
	Email string `json:"email" jsonschema:"email address"`
}

// PlayerCreateResult reports the created player.
type PlayerCreateResult struct {
	Ignored bool           `json:"ignored,omitempty" jsonschema:"true when the input was ignored without changes"`
	Reason  string         `json:"reason,omitempty" jsonschema:"why the input was ignored"`
	Player  *PlayerSummary `json:"player,omitempty" jsonschema:"created player"`
}

// GameAccountCreateInput represents the MCP tool input for assigning a game
// account to a player.
type GameAccountCreateInput struct {
	PlayerID int64  `json:"player_id" jsonschema:"player identifier"`
	Game     string `json:"game" jsonschema:"game name"`
	Username string `json:"username" jsonschema:"game account username"`
}

// GameAccountCreateResult reports the owning player after the assignment.
type GameAccountCreateResult struct {
	Ignored bool           `json:"ignored,omitempty" jsonschema:"true when the input was ignored without changes"`
	Reason  string         `json:"reason,omitempty" jsonschema:"why the input was ignored"`
	Player  *PlayerSummary `json:"player,omitempty" jsonschema:"owning player after the assignment"`
}

// WalletDepositInput represents the MCP tool input for a wallet deposit.
type WalletDepositInput struct {
	PlayerID int64  `json:"player_id,omitempty" jsonschema:"player identifier (defaults to the session player)"`
	Amount   int64  `json:"amount" jsonschema:"positive amount in whole dollars"`
	Method   string `json:"method" jsonschema:"funding method (tierlock, bitcoin, card)"`
}

// TransferRequestInput represents the MCP tool input for moving wallet
// credits into a game account.
type TransferRequestInput struct {
	PlayerID      int64 `json:"player_id,omitempty" jsonschema:"player identifier (defaults to the session player)"`
	GameAccountID int64 `json:"game_account_id" jsonschema:"game account identifier owned by the player"`
	Amount        int64 `json:"amount" jsonschema:"positive amount in whole dollars"`
}

// WalletResult reports the player's wallet after an action.
type WalletResult struct {
	Ignored  bool             `json:"ignored,omitempty" jsonschema:"true when the input was ignored without changes"`
	Reason   string           `json:"reason,omitempty" jsonschema:"why the input was ignored"`
	Player   *WalletSummary   `json:"player,omitempty" jsonschema:"player wallet after the action"`
	Transfer *TransferSummary `json:"transfer,omitempty" jsonschema:"transfer created by the action"`
}

// WalletSummary is a player with their game accounts.
type WalletSummary struct {
	ID           int64            `json:"id" jsonschema:"player identifier"`
	Name         string           `json:"name" jsonschema:"display name"`
	Wallet       int64            `json:"wallet" jsonschema:"wallet balance in whole dollars"`
	GameAccounts []AccountSummary `json:"game_accounts" jsonschema:"game accounts"`
}

// AccountSummary is one game account.
type AccountSummary struct {
	ID       int64  `json:"id" jsonschema:"game account identifier"`
	Game     string `json:"game" jsonschema:"game name"`
	Username string `json:"username" jsonschema:"username"`
	Balance  int64  `json:"balance" jsonschema:"credits in whole dollars"`
}

// TransferApproveInput represents the MCP tool input for approving a
// pending transfer.
type TransferApproveInput struct {
	TransferID int64 `json:"transfer_id" jsonschema:"transfer identifier"`
}

// TransferApproveResult reports the transfer after approval.
type TransferApproveResult struct {
	Ignored  bool             `json:"ignored,omitempty" jsonschema:"true when the input was ignored without changes"`
	Reason   string           `json:"reason,omitempty" jsonschema:"why the input was ignored"`
	Transfer *TransferSummary `json:"transfer,omitempty" jsonschema:"approved transfer"`
}

// LedgerResetInput represents the MCP tool input for reseeding demo data.
type LedgerResetInput struct{}

// LedgerResetResult reports the reseeded roster.
type LedgerResetResult struct {
	Players         []PlayerSummary `json:"players" jsonschema:"seeded players"`
	SessionPlayerID int64           `json:"session_player_id" jsonschema:"player selected after reset"`
}

// UsernameSuggestInput represents the MCP tool input for a username
// suggestion.
type UsernameSuggestInput struct {
	PlayerID int64  `json:"player_id,omitempty" jsonschema:"player identifier (defaults to the session player)"`
	Game     string `json:"game" jsonschema:"game name"`
}

// UsernameSuggestResult carries the suggested username.
type UsernameSuggestResult struct {
	Username string `json:"username" jsonschema:"suggested username, unique among the player's accounts"`
}

func formatTimestamp(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.UTC().Format(time.RFC3339)
}

func playerSummary(row admin.PlayerRow) PlayerSummary {
	out := PlayerSummary{
		ID:           row.ID,
		Name:         row.Name,
		Email:        row.Email,
		Wallet:       row.Wallet,
		GameAccounts: row.AccountCount,
	}
	if row.HasActivity {
		out.LastActivity = formatTimestamp(row.LastActivity)
	}
	return out
}

func playerSummaries(view admin.View) []PlayerSummary {
	out := make([]PlayerSummary, 0, len(view.Players))
	for _, row := range view.Players {
		out = append(out, playerSummary(row))
	}
	return out
}

func transferSummary(t ledger.Transfer, playerName, game, username string) TransferSummary {
	out := TransferSummary{
		ID:            t.ID,
		PlayerID:      t.PlayerID,
		PlayerName:    playerName,
		GameAccountID: t.GameAccountID,
		Game:          game,
		Username:      username,
		Amount:        t.Amount,
		Status:        string(t.Status),
		RequestedAt:   formatTimestamp(t.RequestedAt),
	}
	if t.ApprovedAt != nil {
		out.ApprovedAt = formatTimestamp(*t.ApprovedAt)
	}
	return out
}

func walletSummary(p *ledger.Player) *WalletSummary {
	if p == nil {
		return nil
	}
	out := &WalletSummary{
		ID:           p.ID,
		Name:         p.Name,
		Wallet:       p.Wallet,
		GameAccounts: make([]AccountSummary, 0, len(p.GameAccounts)),
	}
	for _, acct := range p.GameAccounts {
		out.GameAccounts = append(out.GameAccounts, AccountSummary{
			ID:       acct.ID,
			Game:     acct.Game,
			Username: acct.Username,
			Balance:  acct.Balance,
		})
	}
	return out
}

// newestTransfer returns the player's most recent transfer.
func newestTransfer(view player.View) *TransferSummary {
	if view.Guest() || len(view.Transfers) == 0 {
		return nil
	}
	row := view.Transfers[0]
	summary := transferSummary(row.Transfer, view.Active.Name, row.Game, row.Username)
	return &summary
}
