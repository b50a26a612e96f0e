package web

import (
	"context"
	"net/http"

	"github.com/louisbranch/queenofhearts/internal/services/admin"
	"github.com/louisbranch/queenofhearts/internal/services/web/templates"
)

// AdminController is the admin console surface the handlers drive.
type AdminController interface {
	View(ctx context.Context) admin.View
	CreatePlayer(ctx context.Context, name, email string) (admin.View, error)
	CreateGameAccount(ctx context.Context, playerID int64, game, username string) (admin.View, error)
	ApproveTransfer(ctx context.Context, transferID int64) (admin.View, error)
	Reset(ctx context.Context) (admin.View, error)
}

type adminHandlers struct {
	pageRenderer
	controller AdminController
}

func (h adminHandlers) HandleAdmin(w http.ResponseWriter, r *http.Request) {
	h.respond(w, r, "view", h.controller.View(r.Context()), nil)
}

func (h adminHandlers) HandleCreatePlayer(w http.ResponseWriter, r *http.Request) {
	view, err := h.controller.CreatePlayer(r.Context(), r.FormValue("name"), r.FormValue("email"))
	h.respond(w, r, "create player", view, err)
}

func (h adminHandlers) HandleCreateGameAccount(w http.ResponseWriter, r *http.Request) {
	view, err := h.controller.CreateGameAccount(r.Context(), formInt(r, "player"), r.FormValue("game"), r.FormValue("username"))
	h.respond(w, r, "create game account", view, err)
}

func (h adminHandlers) HandleApproveTransfer(w http.ResponseWriter, r *http.Request, transferID string) {
	view, err := h.controller.ApproveTransfer(r.Context(), idOrZero(transferID))
	h.respond(w, r, "approve transfer", view, err)
}

func (h adminHandlers) HandleReset(w http.ResponseWriter, r *http.Request) {
	view, err := h.controller.Reset(r.Context())
	h.respond(w, r, "reset", view, err)
}

func (h adminHandlers) respond(w http.ResponseWriter, r *http.Request, op string, view admin.View, err error) {
	page, printer := h.page(r, "web.admin.title")
	status, alert, ok := outcome(err, printer)
	if !ok {
		writeServerError(w, "admin "+op, err)
		return
	}
	page.Alert = alert
	renderPage(w, r, page, status, templates.AdminPage(page, view))
}
