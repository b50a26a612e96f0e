// Package domain defines the MCP wallet tools: their input and result
// schemas and the handlers that run them against the player and admin
// controllers.
//
// Every handler reloads the ledger before acting so tool calls observe writes
// made by other processes sharing the database. Refused actions (alerts)
// surface as tool errors carrying the user-facing message; silently ignored
// inputs return a result flagged as ignored.
package domain
