package store

import "github.com/onvault/quorum"

// Move references for all storage types into this package
// for shorter names everywhere

type KVStore = quorum.KVStore
type ReadOnlyKVStore = quorum.ReadOnlyKVStore
type SetDeleter = quorum.SetDeleter
type Batch = quorum.Batch
type Iterator = quorum.Iterator
type CacheableKVStore = quorum.CacheableKVStore
type KVCacheWrap = quorum.KVCacheWrap
type CommitKVStore = quorum.CommitKVStore
type CommitID = quorum.CommitID
type Model = quorum.Model
