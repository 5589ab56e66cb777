/*
Package app wraps the engine components behind a single facade with the
concurrency discipline the core requires.

All mutating entry points of an Engine (Initialize, Approve, Revoke,
Submit) are serialized behind one write lock and run inside a store
cache-wrap: written on success, discarded on any error. Read-only queries
share a read lock and serve from the committed state.
*/
package app
