// Package errors provides structured error handling for ledger operations.
package errors

import "net/http"

// Code is a machine-readable error code.
type Code string

const (
	// CodeUnknown represents an unknown error.
	CodeUnknown Code = "UNKNOWN"

	// Input errors are dropped without user feedback.
	CodeInvalidInput    Code = "INVALID_INPUT"
	CodePlayerNotFound  Code = "PLAYER_NOT_FOUND"
	CodeTransferNotOpen Code = "TRANSFER_NOT_OPEN"

	// Precondition errors are shown to the user as alerts.
	CodeNoActivePlayer      Code = "NO_ACTIVE_PLAYER"
	CodeNoPlayers           Code = "NO_PLAYERS"
	CodeGameAccountRequired Code = "GAME_ACCOUNT_REQUIRED"
	CodeInsufficientFunds   Code = "INSUFFICIENT_FUNDS"

	// Persisted state errors are recovered by reseeding.
	CodeMalformedLedger Code = "MALFORMED_LEDGER"
)

// Silent reports whether the code is resolved as a no-op without feedback.
func (c Code) Silent() bool {
	switch c {
	case CodeInvalidInput, CodePlayerNotFound, CodeTransferNotOpen:
		return true
	default:
		return false
	}
}

// Alert reports whether the code is surfaced to the user as an alert.
func (c Code) Alert() bool {
	switch c {
	case CodeNoActivePlayer, CodeNoPlayers, CodeGameAccountRequired, CodeInsufficientFunds:
		return true
	default:
		return false
	}
}

// HTTPStatus maps domain codes to HTTP response statuses.
func (c Code) HTTPStatus() int {
	switch c {
	case CodeInvalidInput, CodePlayerNotFound, CodeTransferNotOpen:
		return http.StatusOK
	case CodeNoActivePlayer, CodeNoPlayers, CodeGameAccountRequired:
		return http.StatusUnprocessableEntity
	case CodeInsufficientFunds:
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}
