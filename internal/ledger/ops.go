package ledger

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	apperrors "github.com/louisbranch/queenofhearts/internal/platform/errors"
	"github.com/louisbranch/queenofhearts/internal/platform/money"
)

// Actor identifies who initiated a mutation; it only changes activity wording.
type Actor int

const (
	ActorPlayer Actor = iota
	ActorAdmin
)

// CreatePlayer appends a zero-wallet player and returns it.
func (l *Ledger) CreatePlayer(name, email string, by Actor, now time.Time) (Player, error) {
	name = strings.TrimSpace(name)
	email = strings.TrimSpace(email)
	if name == "" || email == "" {
		return Player{}, apperrors.New(apperrors.CodeInvalidInput, "name and email are required")
	}

	p := Player{
		ID:           l.NextPlayerID,
		Name:         name,
		Email:        email,
		GameAccounts: []GameAccount{},
		Activity:     []ActivityEntry{},
	}
	l.NextPlayerID++
	if by == ActorAdmin {
		p.AddActivity("Admin created account for "+name, now)
	} else {
		p.AddActivity("Account created for "+name, now)
	}
	l.Players = append(l.Players, p)
	return p, nil
}

// CreateGameAccount adds a zero-balance account under playerID.
func (l *Ledger) CreateGameAccount(playerID int64, game, username string, by Actor, now time.Time) (GameAccount, error) {
	p := l.Player(playerID)
	if p == nil {
		return GameAccount{}, apperrors.WithMetadata(apperrors.CodePlayerNotFound, "player not found",
			map[string]string{"player_id": strconv.FormatInt(playerID, 10)})
	}
	game = strings.TrimSpace(game)
	username = strings.TrimSpace(username)
	if game == "" || username == "" {
		return GameAccount{}, apperrors.New(apperrors.CodeInvalidInput, "game and username are required")
	}
	if p.HasUsername(username) {
		return GameAccount{}, apperrors.WithMetadata(apperrors.CodeInvalidInput, "username already in use",
			map[string]string{"username": username})
	}

	acct := GameAccount{ID: l.NextGameID, Game: game, Username: username}
	l.NextGameID++
	p.GameAccounts = append(p.GameAccounts, acct)
	if by == ActorAdmin {
		p.AddActivity(fmt.Sprintf("Admin added %s account (%s).", game, username), now)
	} else {
		p.AddActivity(fmt.Sprintf("%s account created automatically as %s.", game, username), now)
	}
	return acct, nil
}

// Deposit credits the player's wallet from a funding method.
func (l *Ledger) Deposit(playerID, amount int64, method string, now time.Time) (Player, error) {
	p := l.Player(playerID)
	if p == nil {
		return Player{}, apperrors.New(apperrors.CodePlayerNotFound, "player not found")
	}
	method = strings.TrimSpace(method)
	if amount <= 0 || method == "" {
		return Player{}, apperrors.New(apperrors.CodeInvalidInput, "deposit needs a positive amount and a method")
	}
	p.Wallet += amount
	p.AddActivity(money.Format(amount)+" added via "+method, now)
	return *p, nil
}

// RequestTransfer moves amount from the wallet into one of the player's game
// accounts and records the transfer as approved immediately.
func (l *Ledger) RequestTransfer(playerID, gameAccountID, amount int64, now time.Time) (Transfer, error) {
	p := l.Player(playerID)
	if p == nil {
		return Transfer{}, apperrors.New(apperrors.CodePlayerNotFound, "player not found")
	}
	acct := p.GameAccount(gameAccountID)
	if acct == nil {
		return Transfer{}, apperrors.New(apperrors.CodeGameAccountRequired, "game account not owned by player")
	}
	if amount <= 0 {
		return Transfer{}, apperrors.New(apperrors.CodeInvalidInput, "transfer amount must be positive")
	}
	if amount > p.Wallet {
		return Transfer{}, apperrors.WithMetadata(apperrors.CodeInsufficientFunds, "wallet balance too low", map[string]string{
			"wallet": strconv.FormatInt(p.Wallet, 10),
			"amount": strconv.FormatInt(amount, 10),
		})
	}

	at := Timestamp(now)
	approvedAt := at
	p.Wallet -= amount
	acct.Balance += amount
	t := Transfer{
		ID:            l.NextTransferID,
		PlayerID:      p.ID,
		GameAccountID: acct.ID,
		Amount:        amount,
		Status:        TransferApproved,
		RequestedAt:   at,
		ApprovedAt:    &approvedAt,
	}
	l.NextTransferID++
	l.Transfers = append([]Transfer{t}, l.Transfers...)
	p.AddActivity(fmt.Sprintf("Transferred %s to %s automatically.", money.Format(amount), acct.Game), now)
	return t, nil
}

// ApproveTransfer marks a pending transfer approved and credits its game
// account. The wallet is not touched again on approval.
func (l *Ledger) ApproveTransfer(transferID int64, now time.Time) (Transfer, error) {
	t := l.Transfer(transferID)
	if t == nil || t.Status != TransferPending {
		return Transfer{}, apperrors.New(apperrors.CodeTransferNotOpen, "transfer is not pending")
	}
	p := l.Player(t.PlayerID)
	if p == nil {
		return Transfer{}, apperrors.New(apperrors.CodeTransferNotOpen, "transfer owner missing")
	}
	acct := p.GameAccount(t.GameAccountID)
	if acct == nil {
		return Transfer{}, apperrors.New(apperrors.CodeTransferNotOpen, "transfer game account missing")
	}

	at := Timestamp(now)
	t.Status = TransferApproved
	t.ApprovedAt = &at
	acct.Balance += t.Amount
	p.AddActivity(fmt.Sprintf("Transfer of %s to %s approved.", money.Format(t.Amount), acct.Game), now)
	return *t, nil
}
