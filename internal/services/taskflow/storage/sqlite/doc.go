// Package sqlite provides the SQLite-backed TaskFlow store.
//
// One database file holds identities, tasks and the auth audit trail. The
// engine serializes conflicting writes, so the store keeps no locks of its own.
package sqlite
