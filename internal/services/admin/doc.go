// Package admin drives the aggregate rosters and administrative mutations.
//
// Admin actions never touch the session pointer, and only writes to the
// ledger document by other handles trigger a reload.
package admin
