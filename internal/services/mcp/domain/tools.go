package domain

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/louisbranch/queenofhearts/internal/ledger"
	apperrors "github.com/louisbranch/queenofhearts/internal/platform/errors"
	"github.com/louisbranch/queenofhearts/internal/services/admin"
	"github.com/louisbranch/queenofhearts/internal/services/player"
	"github.com/louisbranch/queenofhearts/internal/storage"
	"github.com/louisbranch/queenofhearts/internal/store"
	"github.com/modelcontextprotocol/go-sdk/mcp"
)

// PlayerController is the player surface the tools drive.
type PlayerController interface {
	SwitchPlayer(ctx context.Context, playerID int64) (player.View, error)
	SuggestUsername(ctx context.Context, game string) (string, error)
	Deposit(ctx context.Context, amount int64, method string) (player.View, error)
	RequestTransfer(ctx context.Context, gameAccountID, amount int64) (player.View, error)
	Reset(ctx context.Context) (player.View, error)
	HandleExternalChange(ctx context.Context, change store.Change) (player.View, error)
}

// AdminController is the admin surface the tools drive.
type AdminController interface {
	CreatePlayer(ctx context.Context, name, email string) (admin.View, error)
	CreateGameAccount(ctx context.Context, playerID int64, game, username string) (admin.View, error)
	ApproveTransfer(ctx context.Context, transferID int64) (admin.View, error)
	HandleExternalChange(ctx context.Context, change store.Change) (admin.View, error)
}

// ledgerChanged forces a reload of the persisted document.
var ledgerChanged = store.Change{Key: storage.DataKey, Present: true}

// PlayersListTool defines the MCP tool schema for listing players.
func PlayersListTool() *mcp.Tool {
	return &mcp.Tool{
		Name:        "players_list",
		Description: "Lists players with wallet balances, game account counts, and last activity",
	}
}

// PlayersListHandler executes a player roster request.
func PlayersListHandler(admins AdminController) mcp.ToolHandlerFor[PlayersListInput, PlayersListResult] {
	return func(ctx context.Context, _ *mcp.CallToolRequest, _ PlayersListInput) (*mcp.CallToolResult, PlayersListResult, error) {
		view, err := admins.HandleExternalChange(ctx, ledgerChanged)
		if err != nil {
			return nil, PlayersListResult{}, fmt.Errorf("players list failed: %w", err)
		}
		return nil, PlayersListResult{Players: playerSummaries(view)}, nil
	}
}

// TransfersListTool defines the MCP tool schema for listing transfers.
func TransfersListTool() *mcp.Tool {
	return &mcp.Tool{
		Name:        "transfers_list",
		Description: "Lists transfers newest first, optionally filtered by status",
	}
}

// TransfersListHandler executes a transfer roster request.
func TransfersListHandler(admins AdminController) mcp.ToolHandlerFor[TransfersListInput, TransfersListResult] {
	return func(ctx context.Context, _ *mcp.CallToolRequest, input TransfersListInput) (*mcp.CallToolResult, TransfersListResult, error) {
		status := ledger.TransferStatus(strings.ToLower(strings.TrimSpace(input.Status)))
		if status != "" && !status.Valid() {
			return nil, TransfersListResult{}, fmt.Errorf("unknown transfer status %q", input.Status)
		}
		view, err := admins.HandleExternalChange(ctx, ledgerChanged)
		if err != nil {
			return nil, TransfersListResult{}, fmt.Errorf("transfers list failed: %w", err)
		}
		result := TransfersListResult{
			Transfers:    make([]TransferSummary, 0, len(view.Transfers)),
			PendingCount: view.PendingCount,
		}
		for _, row := range view.Transfers {
			if status != "" && row.Transfer.Status != status {
				continue
			}
			result.Transfers = append(result.Transfers, transferSummary(row.Transfer, row.PlayerName, row.Game, row.Username))
		}
		return nil, result, nil
	}
}

// PlayerCreateTool defines the MCP tool schema for creating players.
func PlayerCreateTool() *mcp.Tool {
	return &mcp.Tool{
		Name:        "player_create",
		Description: "Creates a player with an empty wallet; blank name or email is ignored",
	}
}

// PlayerCreateHandler executes an admin player creation.
func PlayerCreateHandler(admins AdminController) mcp.ToolHandlerFor[PlayerCreateInput, PlayerCreateResult] {
	return func(ctx context.Context, _ *mcp.CallToolRequest, input PlayerCreateInput) (*mcp.CallToolResult, PlayerCreateResult, error) {
		if _, err := admins.HandleExternalChange(ctx, ledgerChanged); err != nil {
			return nil, PlayerCreateResult{}, fmt.Errorf("player create failed: %w", err)
		}
		view, err := admins.CreatePlayer(ctx, input.Name, input.Email)
		ignored, reason, err := settle("player create", err)
		if err != nil || ignored {
			return nil, PlayerCreateResult{Ignored: ignored, Reason: reason}, err
		}
		created := playerSummary(view.Players[len(view.Players)-1])
		return nil, PlayerCreateResult{Player: &created}, nil
	}
}

// GameAccountCreateTool defines the MCP tool schema for assigning game
// accounts.
func GameAccountCreateTool() *mcp.Tool {
	return &mcp.Tool{
		Name:        "game_account_create",
		Description: "Assigns a zero-balance game account to a player; unknown players and blank fields are ignored",
	}
}

// GameAccountCreateHandler executes an admin game account assignment.
func GameAccountCreateHandler(admins AdminController) mcp.ToolHandlerFor[GameAccountCreateInput, GameAccountCreateResult] {
	return func(ctx context.Context, _ *mcp.CallToolRequest, input GameAccountCreateInput) (*mcp.CallToolResult, GameAccountCreateResult, error) {
		if _, err := admins.HandleExternalChange(ctx, ledgerChanged); err != nil {
			return nil, GameAccountCreateResult{}, fmt.Errorf("game account create failed: %w", err)
		}
		view, err := admins.CreateGameAccount(ctx, input.PlayerID, input.Game, input.Username)
		ignored, reason, err := settle("game account create", err)
		if err != nil || ignored {
			return nil, GameAccountCreateResult{Ignored: ignored, Reason: reason}, err
		}
		result := GameAccountCreateResult{}
		for _, row := range view.Players {
			if row.ID == input.PlayerID {
				summary := playerSummary(row)
				result.Player = &summary
			}
		}
		return nil, result, nil
	}
}

// WalletDepositTool defines the MCP tool schema for wallet deposits.
func WalletDepositTool() *mcp.Tool {
	return &mcp.Tool{
		Name:        "wallet_deposit",
		Description: "Adds funds to a player's wallet; player_id switches the session player first",
	}
}

// WalletDepositHandler executes a wallet deposit as the session player.
func WalletDepositHandler(players PlayerController) mcp.ToolHandlerFor[WalletDepositInput, WalletResult] {
	return func(ctx context.Context, _ *mcp.CallToolRequest, input WalletDepositInput) (*mcp.CallToolResult, WalletResult, error) {
		if err := actAs(ctx, players, input.PlayerID); err != nil {
			return nil, WalletResult{}, fmt.Errorf("wallet deposit failed: %w", err)
		}
		view, err := players.Deposit(ctx, input.Amount, input.Method)
		ignored, reason, err := settle("wallet deposit", err)
		if err != nil {
			return nil, WalletResult{}, err
		}
		return nil, WalletResult{Ignored: ignored, Reason: reason, Player: walletSummary(view.Active)}, nil
	}
}

// TransferRequestTool defines the MCP tool schema for transfer requests.
func TransferRequestTool() *mcp.Tool {
	return &mcp.Tool{
		Name:        "transfer_request",
		Description: "Moves wallet credits into one of the player's game accounts; approved immediately",
	}
}

// TransferRequestHandler executes a transfer request as the session player.
func TransferRequestHandler(players PlayerController) mcp.ToolHandlerFor[TransferRequestInput, WalletResult] {
	return func(ctx context.Context, _ *mcp.CallToolRequest, input TransferRequestInput) (*mcp.CallToolResult, WalletResult, error) {
		if err := actAs(ctx, players, input.PlayerID); err != nil {
			return nil, WalletResult{}, fmt.Errorf("transfer request failed: %w", err)
		}
		view, err := players.RequestTransfer(ctx, input.GameAccountID, input.Amount)
		ignored, reason, err := settle("transfer request", err)
		if err != nil {
			return nil, WalletResult{}, err
		}
		result := WalletResult{Ignored: ignored, Reason: reason, Player: walletSummary(view.Active)}
		if !ignored {
			result.Transfer = newestTransfer(view)
		}
		return nil, result, nil
	}
}

// TransferApproveTool defines the MCP tool schema for approving transfers.
func TransferApproveTool() *mcp.Tool {
	return &mcp.Tool{
		Name:        "transfer_approve",
		Description: "Approves a pending transfer and credits its game account; other transfers are ignored",
	}
}

// TransferApproveHandler executes an admin transfer approval.
func TransferApproveHandler(admins AdminController) mcp.ToolHandlerFor[TransferApproveInput, TransferApproveResult] {
	return func(ctx context.Context, _ *mcp.CallToolRequest, input TransferApproveInput) (*mcp.CallToolResult, TransferApproveResult, error) {
		if _, err := admins.HandleExternalChange(ctx, ledgerChanged); err != nil {
			return nil, TransferApproveResult{}, fmt.Errorf("transfer approve failed: %w", err)
		}
		view, err := admins.ApproveTransfer(ctx, input.TransferID)
		ignored, reason, err := settle("transfer approve", err)
		if err != nil || ignored {
			return nil, TransferApproveResult{Ignored: ignored, Reason: reason}, err
		}
		result := TransferApproveResult{}
		for _, row := range view.Transfers {
			if row.Transfer.ID == input.TransferID {
				summary := transferSummary(row.Transfer, row.PlayerName, row.Game, row.Username)
				result.Transfer = &summary
			}
		}
		return nil, result, nil
	}
}

// LedgerResetTool defines the MCP tool schema for reseeding demo data.
func LedgerResetTool() *mcp.Tool {
	return &mcp.Tool{
		Name:        "ledger_reset",
		Description: "Replaces all data with the demo seed and selects its first player",
	}
}

// LedgerResetHandler executes a reset through the player surface.
func LedgerResetHandler(players PlayerController, admins AdminController) mcp.ToolHandlerFor[LedgerResetInput, LedgerResetResult] {
	return func(ctx context.Context, _ *mcp.CallToolRequest, _ LedgerResetInput) (*mcp.CallToolResult, LedgerResetResult, error) {
		view, err := players.Reset(ctx)
		if err != nil {
			return nil, LedgerResetResult{}, fmt.Errorf("ledger reset failed: %w", err)
		}
		roster, err := admins.HandleExternalChange(ctx, ledgerChanged)
		if err != nil {
			return nil, LedgerResetResult{}, fmt.Errorf("ledger reset failed: %w", err)
		}
		result := LedgerResetResult{Players: playerSummaries(roster)}
		if !view.Guest() {
			result.SessionPlayerID = view.Active.ID
		}
		return nil, result, nil
	}
}

// UsernameSuggestTool defines the MCP tool schema for username suggestions.
func UsernameSuggestTool() *mcp.Tool {
	return &mcp.Tool{
		Name:        "username_suggest",
		Description: "Suggests a username for a game that is unique among the player's accounts",
	}
}

// UsernameSuggestHandler computes a suggestion for the session player.
func UsernameSuggestHandler(players PlayerController) mcp.ToolHandlerFor[UsernameSuggestInput, UsernameSuggestResult] {
	return func(ctx context.Context, _ *mcp.CallToolRequest, input UsernameSuggestInput) (*mcp.CallToolResult, UsernameSuggestResult, error) {
		if err := actAs(ctx, players, input.PlayerID); err != nil {
			return nil, UsernameSuggestResult{}, fmt.Errorf("username suggest failed: %w", err)
		}
		username, err := players.SuggestUsername(ctx, input.Game)
		if err != nil {
			return nil, UsernameSuggestResult{}, fmt.Errorf("username suggest failed: %w", err)
		}
		return nil, UsernameSuggestResult{Username: username}, nil
	}
}

// actAs reloads the ledger and, when playerID is set, makes that player the
// session player. Unknown players are rejected before the pointer moves.
func actAs(ctx context.Context, players PlayerController, playerID int64) error {
	view, err := players.HandleExternalChange(ctx, ledgerChanged)
	if err != nil {
		return err
	}
	if playerID == 0 {
		return nil
	}
	known := false
	for _, opt := range view.Options {
		if opt.ID == playerID {
			known = true
			break
		}
	}
	if !known {
		return fmt.Errorf("player %d not found", playerID)
	}
	_, err = players.SwitchPlayer(ctx, playerID)
	return err
}

// settle sorts an operation error into ignored input, a refused action
// reported with its user-facing text, or a failure.
func settle(op string, err error) (ignored bool, reason string, toolErr error) {
	if err == nil {
		return false, "", nil
	}
	if apperrors.IsSilent(err) {
		return true, err.Error(), nil
	}
	if alert, ok := apperrors.AsAlert(err); ok {
		return false, "", errors.New(alert.UserMessage(nil))
	}
	return false, "", fmt.Errorf("%s failed: %w", op, err)
}
