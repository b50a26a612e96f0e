package domain

import (
	"context"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/louisbranch/queenofhearts/internal/ledger"
	"github.com/louisbranch/queenofhearts/internal/services/admin"
	"github.com/louisbranch/queenofhearts/internal/services/player"
	"github.com/louisbranch/queenofhearts/internal/storage/sqlite"
	"github.com/louisbranch/queenofhearts/internal/store"
)

var testNow = time.Date(2026, 5, 1, 12, 0, 0, 0, time.UTC)

type fixture struct {
	slots   *sqlite.Store
	players *player.Service
	admins  *admin.Service
}

func newFixture(t *testing.T) fixture {
	t.Helper()
	slots, err := sqlite.Open(filepath.Join(t.TempDir(), "qoh.db"))
	if err != nil {
		t.Fatalf("open slots: %v", err)
	}
	t.Cleanup(func() {
		if err := slots.Close(); err != nil {
			t.Fatalf("close slots: %v", err)
		}
	})
	ctx := context.Background()
	players, err := player.NewService(ctx, newStore(t, slots, "mcp-player"))
	if err != nil {
		t.Fatalf("player service: %v", err)
	}
	admins, err := admin.NewService(ctx, newStore(t, slots, "mcp-admin"))
	if err != nil {
		t.Fatalf("admin service: %v", err)
	}
	return fixture{slots: slots, players: players, admins: admins}
}

func newStore(t *testing.T, slots *sqlite.Store, origin string) *store.Store {
	t.Helper()
	st, err := store.New(slots, store.WithOrigin(origin), store.WithClock(func() time.Time { return testNow }))
	if err != nil {
		t.Fatalf("new store: %v", err)
	}
	return st
}

// addPendingTransfer writes a pending transfer through an unrelated handle.
func (f fixture) addPendingTransfer(t *testing.T) int64 {
	t.Helper()
	ctx := context.Background()
	other := newStore(t, f.slots, "other-process")
	l, err := other.Load(ctx)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	id := l.NextTransferID
	l.Transfers = append([]ledger.Transfer{{
		ID: id, PlayerID: 2, GameAccountID: 3, Amount: 25,
		Status: ledger.TransferPending, RequestedAt: testNow,
	}}, l.Transfers...)
	l.NextTransferID++
	if err := other.Save(ctx, l); err != nil {
		t.Fatalf("save: %v", err)
	}
	return id
}

func TestPlayersListHandler(t *testing.T) {
	f := newFixture(t)

	_, result, err := PlayersListHandler(f.admins)(context.Background(), nil, PlayersListInput{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(result.Players) != 2 {
		t.Fatalf("players = %d, want 2", len(result.Players))
	}
	ava := result.Players[0]
	if ava.Name != "Ava Hearts" || ava.Wallet != 250 || ava.GameAccounts != 2 || ava.LastActivity == "" {
		t.Fatalf("ava = %+v", ava)
	}
}

func TestTransfersListHandler(t *testing.T) {
	f := newFixture(t)
	pendingID := f.addPendingTransfer(t)
	handler := TransfersListHandler(f.admins)

	_, all, err := handler(context.Background(), nil, TransfersListInput{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(all.Transfers) != 2 || all.PendingCount != 1 {
		t.Fatalf("transfers = %d pending = %d, want 2 and 1", len(all.Transfers), all.PendingCount)
	}
	if all.Transfers[0].ID != pendingID || all.Transfers[0].PlayerName != "Leo Club" {
		t.Fatalf("newest = %+v", all.Transfers[0])
	}

	_, pending, err := handler(context.Background(), nil, TransfersListInput{Status: "PENDING"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(pending.Transfers) != 1 || pending.Transfers[0].ApprovedAt != "" {
		t.Fatalf("pending = %+v", pending.Transfers)
	}

	if _, _, err := handler(context.Background(), nil, TransfersListInput{Status: "rejected"}); err == nil {
		t.Fatal("expected unknown status error")
	}
}

func TestPlayerCreateHandler(t *testing.T) {
	f := newFixture(t)
	handler := PlayerCreateHandler(f.admins)

	_, result, err := handler(context.Background(), nil, PlayerCreateInput{Name: "Mia Spade", Email: "mia@example.com"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result.Ignored || result.Player == nil || result.Player.ID != 3 || result.Player.Name != "Mia Spade" {
		t.Fatalf("result = %+v", result)
	}

	_, result, err = handler(context.Background(), nil, PlayerCreateInput{Name: "Mia Spade"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !result.Ignored || result.Player != nil {
		t.Fatalf("blank email result = %+v, want ignored", result)
	}
}

func TestGameAccountCreateHandler(t *testing.T) {
	f := newFixture(t)
	handler := GameAccountCreateHandler(f.admins)

	_, result, err := handler(context.Background(), nil, GameAccountCreateInput{PlayerID: 2, Game: "Game Vault", Username: "leovault"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result.Player == nil || result.Player.GameAccounts != 2 {
		t.Fatalf("result = %+v", result)
	}

	_, result, err = handler(context.Background(), nil, GameAccountCreateInput{PlayerID: 42, Game: "Game Vault", Username: "ghost"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !result.Ignored {
		t.Fatalf("unknown player result = %+v, want ignored", result)
	}
}

func TestWalletDepositHandler(t *testing.T) {
	f := newFixture(t)
	handler := WalletDepositHandler(f.players)

	_, result, err := handler(context.Background(), nil, WalletDepositInput{PlayerID: 2, Amount: 20, Method: "card"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result.Ignored || result.Player == nil || result.Player.ID != 2 || result.Player.Wallet != 100 {
		t.Fatalf("result = %+v", result)
	}

	_, result, err = handler(context.Background(), nil, WalletDepositInput{Amount: 0, Method: "card"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !result.Ignored || result.Player.Wallet != 100 {
		t.Fatalf("zero deposit result = %+v, want ignored on session player", result)
	}

	if _, _, err := handler(context.Background(), nil, WalletDepositInput{PlayerID: 9, Amount: 5, Method: "card"}); err == nil {
		t.Fatal("expected unknown player error")
	}
}

func TestTransferRequestHandler(t *testing.T) {
	f := newFixture(t)
	handler := TransferRequestHandler(f.players)

	_, _, err := handler(context.Background(), nil, TransferRequestInput{PlayerID: 1, GameAccountID: 1, Amount: 300})
	if err == nil || err.Error() != "Not enough wallet credits." {
		t.Fatalf("overdraft err = %v, want alert text", err)
	}

	_, _, err = handler(context.Background(), nil, TransferRequestInput{PlayerID: 1, GameAccountID: 3, Amount: 10})
	if err == nil || err.Error() != "Pick a game account." {
		t.Fatalf("foreign account err = %v, want alert text", err)
	}

	_, result, err := handler(context.Background(), nil, TransferRequestInput{PlayerID: 1, GameAccountID: 1, Amount: 60})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result.Player.Wallet != 190 || result.Player.GameAccounts[0].Balance != 180 {
		t.Fatalf("player = %+v", result.Player)
	}
	transfer := result.Transfer
	if transfer == nil || transfer.Status != "approved" || transfer.Amount != 60 || transfer.RequestedAt != transfer.ApprovedAt {
		t.Fatalf("transfer = %+v", transfer)
	}
}

func TestTransferApproveHandler(t *testing.T) {
	f := newFixture(t)
	pendingID := f.addPendingTransfer(t)
	handler := TransferApproveHandler(f.admins)

	_, result, err := handler(context.Background(), nil, TransferApproveInput{TransferID: pendingID})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result.Transfer == nil || result.Transfer.Status != "approved" || result.Transfer.ApprovedAt == "" {
		t.Fatalf("result = %+v", result)
	}

	_, result, err = handler(context.Background(), nil, TransferApproveInput{TransferID: pendingID})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !result.Ignored {
		t.Fatalf("second approval = %+v, want ignored", result)
	}

	_, players, err := PlayersListHandler(f.admins)(context.Background(), nil, PlayersListInput{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if leo := players.Players[1]; leo.Wallet != 80 {
		t.Fatalf("leo wallet = %d, want 80 (approval credits the game account only)", leo.Wallet)
	}
}

func TestLedgerResetHandler(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	if _, _, err := WalletDepositHandler(f.players)(ctx, nil, WalletDepositInput{PlayerID: 2, Amount: 500, Method: "card"}); err != nil {
		t.Fatalf("deposit: %v", err)
	}

	_, result, err := LedgerResetHandler(f.players, f.admins)(ctx, nil, LedgerResetInput{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result.SessionPlayerID != 1 {
		t.Fatalf("session player = %d, want 1", result.SessionPlayerID)
	}
	if len(result.Players) != 2 || result.Players[1].Wallet != 80 {
		t.Fatalf("players = %+v", result.Players)
	}
}

func TestUsernameSuggestHandler(t *testing.T) {
	f := newFixture(t)
	handler := UsernameSuggestHandler(f.players)

	_, result, err := handler(context.Background(), nil, UsernameSuggestInput{PlayerID: 1, Game: "Fire Kirin"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result.Username != "avafirekirin" {
		t.Fatalf("username = %q, want avafirekirin", result.Username)
	}

	_, result, err = handler(context.Background(), nil, UsernameSuggestInput{PlayerID: 2, Game: "Ultra Panda"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !strings.HasPrefix(result.Username, "leoultrapanda") {
		t.Fatalf("username = %q, want leoultrapanda prefix", result.Username)
	}
}
