package web

import (
	"context"
	"net/http"
	"strconv"
	"strings"

	"github.com/louisbranch/queenofhearts/internal/ledger"
	"github.com/louisbranch/queenofhearts/internal/services/player"
	routepath "github.com/louisbranch/queenofhearts/internal/services/web/routepath"
	"github.com/louisbranch/queenofhearts/internal/services/web/templates"
)

// PlayerController is the player wallet surface the handlers drive.
type PlayerController interface {
	ViewFor(ctx context.Context, game string) (player.View, error)
	SuggestUsername(ctx context.Context, game string) (string, error)
	SwitchPlayer(ctx context.Context, playerID int64) (player.View, error)
	SignUp(ctx context.Context, name, email string) (player.View, error)
	CreateGameAccount(ctx context.Context, game, username string) (player.View, error)
	Deposit(ctx context.Context, amount int64, method string) (player.View, error)
	RequestTransfer(ctx context.Context, gameAccountID, amount int64) (player.View, error)
	Reset(ctx context.Context) (player.View, error)
}

type playerHandlers struct {
	pageRenderer
	controller PlayerController
}

func (h playerHandlers) HandlePlayer(w http.ResponseWriter, r *http.Request) {
	game := strings.TrimSpace(r.URL.Query().Get(routepath.GameQueryKey))
	view, err := h.controller.ViewFor(r.Context(), game)
	h.respond(w, r, "view", view, err)
}

func (h playerHandlers) HandleLogin(w http.ResponseWriter, r *http.Request) {
	view, err := h.controller.SwitchPlayer(r.Context(), formInt(r, "player"))
	h.respond(w, r, "switch player", view, err)
}

func (h playerHandlers) HandleSignup(w http.ResponseWriter, r *http.Request) {
	view, err := h.controller.SignUp(r.Context(), r.FormValue("name"), r.FormValue("email"))
	h.respond(w, r, "sign up", view, err)
}

func (h playerHandlers) HandleCreateGameAccount(w http.ResponseWriter, r *http.Request) {
	view, err := h.controller.CreateGameAccount(r.Context(), r.FormValue("game"), r.FormValue("username"))
	h.respond(w, r, "create game account", view, err)
}

func (h playerHandlers) HandleUsernameSuggestion(w http.ResponseWriter, r *http.Request) {
	suggestion, err := h.controller.SuggestUsername(r.Context(), r.URL.Query().Get(routepath.GameQueryKey))
	if err != nil {
		writeServerError(w, "suggest username", err)
		return
	}
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	_, _ = w.Write([]byte(suggestion))
}

func (h playerHandlers) HandleDeposit(w http.ResponseWriter, r *http.Request) {
	amount := ledger.ParseAmount(r.FormValue("amount"))
	view, err := h.controller.Deposit(r.Context(), amount, r.FormValue("method"))
	h.respond(w, r, "deposit", view, err)
}

func (h playerHandlers) HandleTransferRequest(w http.ResponseWriter, r *http.Request) {
	amount := ledger.ParseAmount(r.FormValue("amount"))
	view, err := h.controller.RequestTransfer(r.Context(), formInt(r, "game"), amount)
	h.respond(w, r, "request transfer", view, err)
}

func (h playerHandlers) HandleReset(w http.ResponseWriter, r *http.Request) {
	view, err := h.controller.Reset(r.Context())
	h.respond(w, r, "reset", view, err)
}

func (h playerHandlers) respond(w http.ResponseWriter, r *http.Request, op string, view player.View, err error) {
	page, printer := h.page(r, "web.player.title")
	status, alert, ok := outcome(err, printer)
	if !ok {
		writeServerError(w, "player "+op, err)
		return
	}
	page.Alert = alert
	renderPage(w, r, page, status, templates.PlayerPage(page, view))
}

// idOrZero parses an id, returning 0 for blank or malformed input so the
// operation treats it as unknown.
func idOrZero(raw string) int64 {
	id, err := strconv.ParseInt(strings.TrimSpace(raw), 10, 64)
	if err != nil {
		return 0
	}
	return id
}
