// Package routepath stores canonical HTTP paths for web modules.
package routepath

import (
	"net/url"
	"strconv"
)

const (
	Root   = "/"
	Health = "/healthz"
	Static = "/static/"

	// AppShellScript holds the HTMX swap rules shared by every page.
	AppShellScript = Static + "app-shell.js"

	Player                  = "/player"
	PlayerLogin             = "/player/login"
	PlayerSignup            = "/player/signup"
	PlayerAccounts          = "/player/accounts"
	PlayerAccountSuggestion = "/player/accounts/suggestion"
	PlayerDeposits          = "/player/deposits"
	PlayerTransfers         = "/player/transfers"
	PlayerReset             = "/player/reset"

	Admin                       = "/admin"
	AdminPlayers                = "/admin/players"
	AdminAccounts               = "/admin/accounts"
	AdminTransfersPrefix        = "/admin/transfers/"
	AdminTransferApprovePattern = AdminTransfersPrefix + "{transferID}/approve"
	AdminReset                  = "/admin/reset"

	// GameQueryKey selects the game a username suggestion is computed for.
	GameQueryKey = "game"
)

// AdminTransferApprove returns the approve route for one transfer.
func AdminTransferApprove(transferID int64) string {
	return AdminTransfersPrefix + strconv.FormatInt(transferID, 10) + "/approve"
}

// PlayerForGame returns the player page with the suggestion game selected.
func PlayerForGame(game string) string {
	if game == "" {
		return Player
	}
	return Player + "?" + url.Values{GameQueryKey: {game}}.Encode()
}

// PlayerSuggestionForGame returns the plain-text suggestion route for game.
func PlayerSuggestionForGame(game string) string {
	return PlayerAccountSuggestion + "?" + url.Values{GameQueryKey: {game}}.Encode()
}
