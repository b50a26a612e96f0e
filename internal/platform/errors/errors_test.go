package errors

import (
	"fmt"
	"net/http"
	"testing"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

func TestErrorIsMatchesByCode(t *testing.T) {
	err := fmt.Errorf("deposit: %w", New(CodeNoActivePlayer, "no active player"))
	if CodeOf(err) != CodeNoActivePlayer {
		t.Fatalf("code = %q, want %q", CodeOf(err), CodeNoActivePlayer)
	}
	if !IsAlert(err) {
		t.Fatal("expected alert classification")
	}
	if IsSilent(err) {
		t.Fatal("did not expect silent classification")
	}
}

func TestCodeOfUnknown(t *testing.T) {
	if got := CodeOf(fmt.Errorf("disk full")); got != CodeUnknown {
		t.Fatalf("code = %q, want %q", got, CodeUnknown)
	}
	if IsAlert(nil) || IsSilent(nil) {
		t.Fatal("nil error must not classify")
	}
}

func TestHTTPStatus(t *testing.T) {
	tests := []struct {
		code Code
		want int
	}{
		{CodeInvalidInput, http.StatusOK},
		{CodeTransferNotOpen, http.StatusOK},
		{CodeNoActivePlayer, http.StatusUnprocessableEntity},
		{CodeGameAccountRequired, http.StatusUnprocessableEntity},
		{CodeInsufficientFunds, http.StatusConflict},
		{CodeUnknown, http.StatusInternalServerError},
	}
	for _, tc := range tests {
		if got := tc.code.HTTPStatus(); got != tc.want {
			t.Fatalf("%s status = %d, want %d", tc.code, got, tc.want)
		}
	}
}

func TestUserMessage(t *testing.T) {
	p := message.NewPrinter(language.English)
	err := New(CodeInsufficientFunds, "wallet 250 below 300")
	if got := err.UserMessage(p); got != "Not enough wallet credits." {
		t.Fatalf("message = %q", got)
	}
	if got := New(CodeNoActivePlayer, "x").UserMessage(nil); got != "Select or create a player first." {
		t.Fatalf("message = %q", got)
	}
}

func TestAsAlert(t *testing.T) {
	if _, ok := AsAlert(New(CodeInvalidInput, "amount")); ok {
		t.Fatal("silent error must not be an alert")
	}
	alert, ok := AsAlert(Wrap(CodeNoPlayers, "no players", nil))
	if !ok || alert.Code != CodeNoPlayers {
		t.Fatalf("alert = %v, ok = %v", alert, ok)
	}
}
