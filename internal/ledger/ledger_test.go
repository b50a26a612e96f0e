package ledger

import (
	"errors"
	"fmt"
	"testing"
	"time"

	apperrors "github.com/louisbranch/queenofhearts/internal/platform/errors"
)

var testNow = time.Date(2026, 3, 14, 15, 9, 26, 535_000_000, time.UTC)

func TestSeedContent(t *testing.T) {
	t.Parallel()

	l := Seed(testNow)
	if err := l.Validate(); err != nil {
		t.Fatalf("seed validate: %v", err)
	}
	if l.NextPlayerID != 3 || l.NextGameID != 4 || l.NextTransferID != 3 {
		t.Fatalf("counters = %d/%d/%d, want 3/4/3", l.NextPlayerID, l.NextGameID, l.NextTransferID)
	}
	if len(l.Players) != 2 {
		t.Fatalf("players = %d, want 2", len(l.Players))
	}
	ava := l.Player(1)
	if ava == nil || ava.Name != "Ava Hearts" || ava.Wallet != 250 {
		t.Fatalf("player 1 = %+v, want Ava Hearts with wallet 250", ava)
	}
	if got := ava.GameAccount(1); got == nil || got.Balance != 120 || got.Username != "avaQueen" {
		t.Fatalf("account 1 = %+v", got)
	}
	if len(ava.Activity) != 3 {
		t.Fatalf("ava activity = %d, want 3", len(ava.Activity))
	}
	earlier := testNow.Add(-3 * time.Hour)
	tr := l.Transfers[0]
	if tr.Status != TransferApproved || !tr.RequestedAt.Equal(earlier) || tr.ApprovedAt == nil || !tr.ApprovedAt.Equal(earlier) {
		t.Fatalf("seed transfer = %+v", tr)
	}
}

func TestCloneIsDeep(t *testing.T) {
	t.Parallel()

	l := Seed(testNow)
	c := l.Clone()
	c.Players[0].Wallet = 1
	c.Players[0].GameAccounts[0].Balance = 1
	c.Players[0].Activity[0].Message = "changed"
	*c.Transfers[0].ApprovedAt = time.Time{}

	if l.Players[0].Wallet != 250 {
		t.Fatalf("wallet leaked through clone")
	}
	if l.Players[0].GameAccounts[0].Balance != 120 {
		t.Fatalf("game balance leaked through clone")
	}
	if l.Players[0].Activity[0].Message == "changed" {
		t.Fatalf("activity leaked through clone")
	}
	if l.Transfers[0].ApprovedAt.IsZero() {
		t.Fatalf("approvedAt leaked through clone")
	}
}

func TestAddActivityCapsAtLimit(t *testing.T) {
	t.Parallel()

	var p Player
	for i := 1; i <= ActivityLimit+1; i++ {
		p.AddActivity(fmt.Sprintf("entry %d", i), testNow.Add(time.Duration(i)*time.Second))
	}
	if len(p.Activity) != ActivityLimit {
		t.Fatalf("activity = %d, want %d", len(p.Activity), ActivityLimit)
	}
	if p.Activity[0].Message != "entry 51" {
		t.Fatalf("newest = %q, want %q", p.Activity[0].Message, "entry 51")
	}
	if last := p.Activity[ActivityLimit-1].Message; last != "entry 2" {
		t.Fatalf("oldest kept = %q, want %q", last, "entry 2")
	}
}

func TestRequestTransferSeedScenario(t *testing.T) {
	t.Parallel()

	l := Seed(testNow)
	at := testNow.Add(time.Minute)
	tr, err := l.RequestTransfer(1, 1, 60, at)
	if err != nil {
		t.Fatalf("request transfer: %v", err)
	}
	ava := l.Player(1)
	if ava.Wallet != 190 {
		t.Fatalf("wallet = %d, want 190", ava.Wallet)
	}
	if got := ava.GameAccount(1).Balance; got != 180 {
		t.Fatalf("balance = %d, want 180", got)
	}
	if l.Transfers[0].ID != tr.ID || tr.ID != 3 {
		t.Fatalf("transfer id = %d, first = %d, want 3 prepended", tr.ID, l.Transfers[0].ID)
	}
	if tr.Status != TransferApproved || tr.ApprovedAt == nil || !tr.ApprovedAt.Equal(tr.RequestedAt) {
		t.Fatalf("transfer = %+v, want approved with requestedAt == approvedAt", tr)
	}
	if l.NextTransferID != 4 {
		t.Fatalf("nextTransferId = %d, want 4", l.NextTransferID)
	}
	if msg := ava.Activity[0].Message; msg != "Transferred $60 to Ultra Panda automatically." {
		t.Fatalf("activity = %q", msg)
	}
	if err := l.Validate(); err != nil {
		t.Fatalf("validate after transfer: %v", err)
	}
}

func TestRequestTransferRejections(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		account int64
		amount  int64
		code    apperrors.Code
	}{
		{name: "insufficient funds", account: 1, amount: 300, code: apperrors.CodeInsufficientFunds},
		{name: "foreign account", account: 3, amount: 10, code: apperrors.CodeGameAccountRequired},
		{name: "missing account", account: 99, amount: 10, code: apperrors.CodeGameAccountRequired},
		{name: "zero amount", account: 1, amount: 0, code: apperrors.CodeInvalidInput},
		{name: "negative amount", account: 1, amount: -5, code: apperrors.CodeInvalidInput},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			l := Seed(testNow)
			_, err := l.RequestTransfer(1, tc.account, tc.amount, testNow)
			if got := apperrors.CodeOf(err); got != tc.code {
				t.Fatalf("code = %s, want %s", got, tc.code)
			}
			if l.Player(1).Wallet != 250 || l.Player(1).GameAccount(1).Balance != 120 {
				t.Fatalf("balances changed on rejection")
			}
			if len(l.Transfers) != 1 || l.NextTransferID != 3 {
				t.Fatalf("transfer recorded on rejection")
			}
		})
	}
}

func TestApproveTransfer(t *testing.T) {
	t.Parallel()

	l := Seed(testNow)
	l.Transfers = append([]Transfer{{
		ID: 3, PlayerID: 2, GameAccountID: 3, Amount: 25,
		Status: TransferPending, RequestedAt: Timestamp(testNow),
	}}, l.Transfers...)
	l.NextTransferID = 4
	if l.PendingCount() != 1 {
		t.Fatalf("pending = %d, want 1", l.PendingCount())
	}

	at := testNow.Add(time.Hour)
	tr, err := l.ApproveTransfer(3, at)
	if err != nil {
		t.Fatalf("approve: %v", err)
	}
	if tr.Status != TransferApproved || tr.ApprovedAt == nil || !tr.ApprovedAt.Equal(Timestamp(at)) {
		t.Fatalf("approved transfer = %+v", tr)
	}
	leo := l.Player(2)
	if leo.GameAccount(3).Balance != 25 {
		t.Fatalf("balance = %d, want 25", leo.GameAccount(3).Balance)
	}
	if leo.Wallet != 80 {
		t.Fatalf("wallet = %d, want 80 (approval does not debit)", leo.Wallet)
	}
	if msg := leo.Activity[0].Message; msg != "Transfer of $25 to Ultra Panda approved." {
		t.Fatalf("activity = %q", msg)
	}
}

func TestApproveTransferNoopWhenNotPending(t *testing.T) {
	t.Parallel()

	l := Seed(testNow)
	before := l.Clone()
	for _, id := range []int64{1, 42} {
		_, err := l.ApproveTransfer(id, testNow)
		if !errors.Is(err, apperrors.New(apperrors.CodeTransferNotOpen, "")) {
			t.Fatalf("approve %d err = %v, want transfer not open", id, err)
		}
	}
	if l.Player(1).GameAccount(1).Balance != before.Player(1).GameAccount(1).Balance {
		t.Fatalf("balance changed")
	}
	if len(l.Player(1).Activity) != len(before.Player(1).Activity) {
		t.Fatalf("activity changed")
	}
}

func TestCreatePlayerAndGameAccount(t *testing.T) {
	t.Parallel()

	l := Seed(testNow)
	p, err := l.CreatePlayer("  Mia Spade ", "mia@example.com", ActorAdmin, testNow)
	if err != nil {
		t.Fatalf("create player: %v", err)
	}
	if p.ID != 3 || p.Name != "Mia Spade" || p.Wallet != 0 || l.NextPlayerID != 4 {
		t.Fatalf("player = %+v next = %d", p, l.NextPlayerID)
	}
	if p.Activity[0].Message != "Admin created account for Mia Spade" {
		t.Fatalf("activity = %q", p.Activity[0].Message)
	}

	acct, err := l.CreateGameAccount(p.ID, "Orion Stars", "miastars", ActorPlayer, testNow)
	if err != nil {
		t.Fatalf("create account: %v", err)
	}
	if acct.ID != 4 || l.NextGameID != 5 || acct.Balance != 0 {
		t.Fatalf("account = %+v next = %d", acct, l.NextGameID)
	}
	if msg := l.Player(3).Activity[0].Message; msg != "Orion Stars account created automatically as miastars." {
		t.Fatalf("activity = %q", msg)
	}

	if _, err := l.CreatePlayer("", "x@example.com", ActorPlayer, testNow); !apperrors.IsSilent(err) {
		t.Fatalf("blank name err = %v, want silent", err)
	}
	if _, err := l.CreateGameAccount(99, "Fire Kirin", "x", ActorAdmin, testNow); apperrors.CodeOf(err) != apperrors.CodePlayerNotFound {
		t.Fatalf("unknown player err = %v", err)
	}
	if _, err := l.CreateGameAccount(1, "Fire Kirin", " ", ActorAdmin, testNow); apperrors.CodeOf(err) != apperrors.CodeInvalidInput {
		t.Fatalf("blank username err = %v", err)
	}
	next := l.NextGameID
	if _, err := l.CreateGameAccount(1, "Orion Stars", " AVAQUEEN ", ActorPlayer, testNow); !apperrors.IsSilent(err) {
		t.Fatalf("duplicate username err = %v, want silent", err)
	}
	if got := len(l.Player(1).GameAccounts); got != 2 || l.NextGameID != next {
		t.Fatalf("accounts = %d next = %d, want 2 and %d", got, l.NextGameID, next)
	}
	if err := l.Validate(); err != nil {
		t.Fatalf("validate: %v", err)
	}
}

func TestDeposit(t *testing.T) {
	t.Parallel()

	l := Seed(testNow)
	p, err := l.Deposit(2, 1250, "card", testNow)
	if err != nil {
		t.Fatalf("deposit: %v", err)
	}
	if p.Wallet != 1330 {
		t.Fatalf("wallet = %d, want 1330", p.Wallet)
	}
	if p.Activity[0].Message != "$1,250 added via card" {
		t.Fatalf("activity = %q", p.Activity[0].Message)
	}
	if _, err := l.Deposit(2, 0, "card", testNow); !apperrors.IsSilent(err) {
		t.Fatalf("zero deposit err = %v, want silent", err)
	}
}

func TestSuggestUsername(t *testing.T) {
	t.Parallel()

	ava := &Player{Name: "Ava Hearts", GameAccounts: []GameAccount{{Username: "avaqueen"}}}
	got := SuggestUsername(ava, "Queen")
	if got != "avaqueen2" {
		t.Fatalf("suggestion = %q, want %q", got, "avaqueen2")
	}
	if ava.HasUsername(got) {
		t.Fatalf("suggestion %q collides", got)
	}

	ava.GameAccounts = append(ava.GameAccounts, GameAccount{Username: "AvaQueen2"})
	if got := SuggestUsername(ava, "Queen"); got != "avaqueen3" {
		t.Fatalf("suggestion = %q, want %q", got, "avaqueen3")
	}
	if got := SuggestUsername(&Player{Name: "  Leo  Club"}, "Ultra Panda"); got != "leoultrapanda" {
		t.Fatalf("suggestion = %q, want %q", got, "leoultrapanda")
	}
	if got := SuggestUsername(nil, ""); got != "playergame" {
		t.Fatalf("suggestion = %q, want %q", got, "playergame")
	}
}

func TestParseAmount(t *testing.T) {
	t.Parallel()

	tests := map[string]int64{
		"60":     60,
		" 42 ":   42,
		"12abc":  12,
		"1.9":    1,
		"-5":     -5,
		"abc":    0,
		"":       0,
		"+7":     7,
		"999999999999999999999": 0,
	}
	for raw, want := range tests {
		if got := ParseAmount(raw); got != want {
			t.Fatalf("ParseAmount(%q) = %d, want %d", raw, got, want)
		}
	}
}

func TestValidateRejectsBrokenDocuments(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		mutate func(*Ledger)
	}{
		{"duplicate player", func(l *Ledger) { l.Players[1].ID = 1 }},
		{"stale player counter", func(l *Ledger) { l.NextPlayerID = 2 }},
		{"negative wallet", func(l *Ledger) { l.Players[0].Wallet = -1 }},
		{"negative balance", func(l *Ledger) { l.Players[0].GameAccounts[0].Balance = -1 }},
		{"foreign account", func(l *Ledger) { l.Transfers[0].GameAccountID = 3 }},
		{"unknown player", func(l *Ledger) { l.Transfers[0].PlayerID = 9 }},
		{"unknown status", func(l *Ledger) { l.Transfers[0].Status = "rejected" }},
		{"approved without time", func(l *Ledger) { l.Transfers[0].ApprovedAt = nil }},
		{"zero amount", func(l *Ledger) { l.Transfers[0].Amount = 0 }},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			l := Seed(testNow)
			tc.mutate(&l)
			if err := l.Validate(); apperrors.CodeOf(err) != apperrors.CodeMalformedLedger {
				t.Fatalf("validate err = %v, want malformed", err)
			}
		})
	}
}
