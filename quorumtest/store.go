package quorumtest

import (
	"github.com/onvault/quorum"
	"github.com/onvault/quorum/store"
	"github.com/onvault/quorum/store/iavl"
)

// MemStore returns an empty in-memory store, enough for most tests.
func MemStore() quorum.CacheableKVStore {
	return store.MemStore()
}

// CommitKVStore returns a store instance backed by the same merkle-tree
// engine the production setup uses, held in memory. Use instead of
// MemStore when commit/version behavior matters.
func CommitKVStore() *iavl.CommitStore {
	return iavl.MockCommitStore()
}
