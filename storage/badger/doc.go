// Package badger implements storage.VectorStore on BadgerDB.
//
// Intended for corpora too large for the JSON file backend. Records are
// stored one key per entry in MUS format, so a snapshot save only
// rewrites what changed.
package badger
