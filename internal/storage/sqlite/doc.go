// Package sqlite provides the slot store backed by a local SQLite file.
//
// Several processes may open the same file; each sees the others' writes on
// its next read, and version polling lets them notice those writes.
package sqlite
