// Package player drives the single-active-player view.
//
// The Service keeps an in-memory copy of the ledger, applies one form action
// at a time, persists the whole document, and returns a fresh View. Writes by
// other store handles are picked up through HandleExternalChange.
package player
