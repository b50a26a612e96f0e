// Package admin registers the admin console routes.
package admin

import (
	"net/http"

	routepath "github.com/louisbranch/queenofhearts/internal/services/web/routepath"
)

// Service handles admin console routes.
type Service interface {
	HandleAdmin(w http.ResponseWriter, r *http.Request)
	HandleCreatePlayer(w http.ResponseWriter, r *http.Request)
	HandleCreateGameAccount(w http.ResponseWriter, r *http.Request)
	HandleApproveTransfer(w http.ResponseWriter, r *http.Request, transferID string)
	HandleReset(w http.ResponseWriter, r *http.Request)
}

// RegisterRoutes wires admin routes into mux.
func RegisterRoutes(mux *http.ServeMux, service Service) {
	if mux == nil || service == nil {
		return
	}
	mux.HandleFunc(http.MethodGet+" "+routepath.Admin, service.HandleAdmin)
	mux.HandleFunc(http.MethodPost+" "+routepath.AdminPlayers, service.HandleCreatePlayer)
	mux.HandleFunc(http.MethodPost+" "+routepath.AdminAccounts, service.HandleCreateGameAccount)
	mux.HandleFunc(http.MethodPost+" "+routepath.AdminTransferApprovePattern, func(w http.ResponseWriter, r *http.Request) {
		service.HandleApproveTransfer(w, r, r.PathValue("transferID"))
	})
	mux.HandleFunc(http.MethodPost+" "+routepath.AdminReset, service.HandleReset)
}
