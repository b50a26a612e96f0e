package web

import (
	"errors"
	"net/http"
	"time"

	adminmodule "github.com/louisbranch/queenofhearts/internal/services/web/module/admin"
	playermodule "github.com/louisbranch/queenofhearts/internal/services/web/module/player"
	routepath "github.com/louisbranch/queenofhearts/internal/services/web/routepath"
	"github.com/louisbranch/queenofhearts/internal/services/web/static"
	"github.com/louisbranch/queenofhearts/internal/services/web/templates"
)

// Dependencies are the controllers behind the web surfaces.
type Dependencies struct {
	Player PlayerController
	Admin  AdminController
	// Location renders timestamps; nil means the process local zone.
	Location *time.Location
}

// NewHandler composes the landing, player, admin and health routes.
func NewHandler(deps Dependencies) (http.Handler, error) {
	if deps.Player == nil {
		return nil, errors.New("player controller is required")
	}
	if deps.Admin == nil {
		return nil, errors.New("admin controller is required")
	}
	renderer := pageRenderer{location: deps.Location}

	mux := http.NewServeMux()
	mux.Handle(http.MethodGet+" "+routepath.Static, http.StripPrefix(routepath.Static, http.FileServer(http.FS(static.FS))))
	mux.HandleFunc(http.MethodGet+" "+routepath.Root+"{$}", func(w http.ResponseWriter, r *http.Request) {
		page, _ := renderer.page(r, "web.landing.title")
		renderPage(w, r, page, http.StatusOK, templates.LandingPage(page))
	})
	mux.HandleFunc(http.MethodGet+" "+routepath.Health, func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "text/plain; charset=utf-8")
		_, _ = w.Write([]byte("ok"))
	})
	playermodule.RegisterRoutes(mux, playerHandlers{pageRenderer: renderer, controller: deps.Player})
	adminmodule.RegisterRoutes(mux, adminHandlers{pageRenderer: renderer, controller: deps.Admin})
	return mux, nil
}
