package errors

import (
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

var defaultTag = language.English

// MessageKey returns the catalog key holding the user-facing text for code.
func MessageKey(code Code) string {
	return "error." + string(code)
}

func init() {
	lang := defaultTag

	message.SetString(lang, MessageKey(CodeUnknown), "Something went wrong. Please try again.")
	message.SetString(lang, MessageKey(CodeNoActivePlayer), "Select or create a player first.")
	message.SetString(lang, MessageKey(CodeNoPlayers), "Create a player first.")
	message.SetString(lang, MessageKey(CodeGameAccountRequired), "Pick a game account.")
	message.SetString(lang, MessageKey(CodeInsufficientFunds), "Not enough wallet credits.")
}
