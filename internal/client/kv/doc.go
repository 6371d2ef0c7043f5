// Package kv is the client's opaque string-keyed persistence layer.
//
// The session, the liked-content set and any other locally cached state are
// stored through Store. Three implementations are provided:
//
//   - SQLite: durable storage in a local database file, schema managed by
//     embedded goose migrations (see OpenSQLite).
//   - Memory: process-local map, used by tests and ephemeral runs.
//   - Sealed: wraps another Store and encrypts every value at rest.
//
// # Contract
//
// Get returns (nil, nil) when the key is absent. Delete of a missing key is
// not an error. SetMany and DeleteMany apply their operations in the given
// order and either all succeed or none is visible.
package kv
