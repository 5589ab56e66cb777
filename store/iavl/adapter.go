package iavl

import (
	"github.com/tendermint/iavl"
	dbm "github.com/tendermint/tendermint/libs/db"

	"github.com/onvault/quorum/store"
)

// cacheSize is the number of recently used nodes iavl keeps in memory.
const cacheSize = 10000

// CommitStore manages an iavl committed state backed by a database. It
// implements both CacheableKVStore, so an engine can run on it directly,
// and CommitKVStore for explicit version control.
type CommitStore struct {
	tree *iavl.MutableTree
}

var _ store.CommitKVStore = (*CommitStore)(nil)
var _ store.CacheableKVStore = (*CommitStore)(nil)

// NewCommitStore creates a new store with disk backing under the given
// directory. The name is used for the database file.
func NewCommitStore(path, name string) *CommitStore {
	db := dbm.NewDB(name, dbm.GoLevelDBBackend, path)
	tree := iavl.NewMutableTree(db, cacheSize)
	return &CommitStore{tree: tree}
}

// MockCommitStore returns a db backed by memory, for testing
func MockCommitStore() *CommitStore {
	db := dbm.NewMemDB()
	tree := iavl.NewMutableTree(db, cacheSize)
	return &CommitStore{tree: tree}
}

// Get returns nil iff key doesn't exist. Panics on nil key.
func (s *CommitStore) Get(key []byte) []byte {
	_, value := s.tree.Get(key)
	return value
}

// Has checks if a key exists. Panics on nil key.
func (s *CommitStore) Has(key []byte) bool {
	return s.tree.Has(key)
}

// Set writes directly to the working tree. Prefer going through a
// CacheWrap so a group of writes is committed as one version.
func (s *CommitStore) Set(key, value []byte) {
	s.tree.Set(key, value)
}

// Delete removes from the working tree.
func (s *CommitStore) Delete(key []byte) {
	s.tree.Remove(key)
}

// NewBatch returns a batch that applies all ops to the tree and saves a
// new version on Write.
func (s *CommitStore) NewBatch() store.Batch {
	return &commitBatch{
		ops:    store.NewNonAtomicBatch(s),
		parent: s,
	}
}

// CacheWrap gives us a savepoint to perform a group of actions on, backed
// by the btree overlay. Write commits a new tree version, Discard drops
// everything.
func (s *CommitStore) CacheWrap() store.KVCacheWrap {
	return store.NewBTreeCacheWrap(s, s.NewBatch(), nil)
}

// Commit saves the next version to disk, and returns info
func (s *CommitStore) Commit() store.CommitID {
	hash, version, err := s.tree.SaveVersion()
	if err != nil {
		panic(err)
	}
	return store.CommitID{
		Version: version,
		Hash:    hash,
	}
}

// LoadLatestVersion loads the latest persisted version. If there was a
// crash during the last commit, it is guaranteed to return a stable state,
// even if older.
func (s *CommitStore) LoadLatestVersion() error {
	_, err := s.tree.Load()
	return err
}

// LatestVersion returns info on the latest version saved to disk
func (s *CommitStore) LatestVersion() store.CommitID {
	return store.CommitID{
		Version: s.tree.Version(),
		Hash:    s.tree.Hash(),
	}
}

// Iterator over a domain of keys in ascending order. End is exclusive.
func (s *CommitStore) Iterator(start, end []byte) store.Iterator {
	var res []store.Model
	add := func(key []byte, value []byte) bool {
		res = append(res, store.Model{Key: key, Value: value})
		return false
	}
	s.tree.IterateRange(start, end, true, add)
	return store.NewSliceIterator(res)
}

// ReverseIterator over a domain of keys in descending order. End is
// exclusive.
func (s *CommitStore) ReverseIterator(start, end []byte) store.Iterator {
	var res []store.Model
	add := func(key []byte, value []byte) bool {
		res = append(res, store.Model{Key: key, Value: value})
		return false
	}
	s.tree.IterateRange(start, end, false, add)
	return store.NewSliceIterator(res)
}

// commitBatch queues ops and on Write applies them to the tree and saves
// a new version, so every successful cache-wrap write is one durable
// commit.
type commitBatch struct {
	ops    *store.NonAtomicBatch
	parent *CommitStore
}

var _ store.Batch = (*commitBatch)(nil)

func (b *commitBatch) Set(key, value []byte) {
	b.ops.Set(key, value)
}

func (b *commitBatch) Delete(key []byte) {
	b.ops.Delete(key)
}

func (b *commitBatch) Write() {
	b.ops.Write()
	b.parent.Commit()
}
