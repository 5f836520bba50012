// Package dismissal tracks which focus signals a user has explicitly
// dismissed.
//
// A dismissal is keyed by (kind, id). Signal ids are composite: they encode
// the underlying entity ids the signal summarizes, so dismissing one signal
// never suppresses a later signal covering a different entity set.
//
// Two store implementations are provided: an in-memory store for tests and
// embedded use, and a Redis-backed store for durable per-user storage.
// Dismissals are kept forever by default; a retention window can be
// configured per store.
package dismissal
