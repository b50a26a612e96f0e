// Package player registers the player wallet routes.
package player

import (
	"net/http"

	routepath "github.com/louisbranch/queenofhearts/internal/services/web/routepath"
)

// Service handles player wallet routes.
type Service interface {
	HandlePlayer(w http.ResponseWriter, r *http.Request)
	HandleLogin(w http.ResponseWriter, r *http.Request)
	HandleSignup(w http.ResponseWriter, r *http.Request)
	HandleCreateGameAccount(w http.ResponseWriter, r *http.Request)
	HandleUsernameSuggestion(w http.ResponseWriter, r *http.Request)
	HandleDeposit(w http.ResponseWriter, r *http.Request)
	HandleTransferRequest(w http.ResponseWriter, r *http.Request)
	HandleReset(w http.ResponseWriter, r *http.Request)
}

// RegisterRoutes wires player routes into mux.
func RegisterRoutes(mux *http.ServeMux, service Service) {
	if mux == nil || service == nil {
		return
	}
	mux.HandleFunc(http.MethodGet+" "+routepath.Player, service.HandlePlayer)
	mux.HandleFunc(http.MethodPost+" "+routepath.PlayerLogin, service.HandleLogin)
	mux.HandleFunc(http.MethodPost+" "+routepath.PlayerSignup, service.HandleSignup)
	mux.HandleFunc(http.MethodPost+" "+routepath.PlayerAccounts, service.HandleCreateGameAccount)
	mux.HandleFunc(http.MethodGet+" "+routepath.PlayerAccountSuggestion, service.HandleUsernameSuggestion)
	mux.HandleFunc(http.MethodPost+" "+routepath.PlayerDeposits, service.HandleDeposit)
	mux.HandleFunc(http.MethodPost+" "+routepath.PlayerTransfers, service.HandleTransferRequest)
	mux.HandleFunc(http.MethodPost+" "+routepath.PlayerReset, service.HandleReset)
}
