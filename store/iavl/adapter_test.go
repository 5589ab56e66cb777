package iavl_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/onvault/quorum/quorumtest"
	"github.com/onvault/quorum/store/iavl"
	"github.com/onvault/quorum/x/executor"
	"github.com/onvault/quorum/x/owners"
)

func TestCommitStoreGetSet(t *testing.T) {
	s := iavl.MockCommitStore()

	k, v := []byte("key"), []byte("value")
	assert.Nil(t, s.Get(k))
	assert.False(t, s.Has(k))

	s.Set(k, v)
	assert.Equal(t, v, s.Get(k))
	assert.True(t, s.Has(k))

	s.Delete(k)
	assert.Nil(t, s.Get(k))
	assert.False(t, s.Has(k))
}

func TestCommitStoreCacheWrap(t *testing.T) {
	s := iavl.MockCommitStore()
	before := s.LatestVersion().Version

	cache := s.CacheWrap()
	cache.Set([]byte("a"), []byte("1"))
	cache.Set([]byte("b"), []byte("2"))

	// nothing visible underneath until Write
	assert.Nil(t, s.Get([]byte("a")))

	cache.Write()
	assert.Equal(t, []byte("1"), s.Get([]byte("a")))
	assert.Equal(t, []byte("2"), s.Get([]byte("b")))
	// one cache-wrap write is one saved version
	assert.Equal(t, before+1, s.LatestVersion().Version)

	// a discarded wrap saves nothing
	drop := s.CacheWrap()
	drop.Set([]byte("c"), []byte("3"))
	drop.Discard()
	assert.Nil(t, s.Get([]byte("c")))
	assert.Equal(t, before+1, s.LatestVersion().Version)
}

func TestCommitStoreIterator(t *testing.T) {
	s := iavl.MockCommitStore()
	s.Set([]byte("a"), []byte("1"))
	s.Set([]byte("b"), []byte("2"))
	s.Set([]byte("c"), []byte("3"))

	var keys []string
	for iter := s.Iterator(nil, nil); iter.Valid(); iter.Next() {
		keys = append(keys, string(iter.Key()))
	}
	assert.Equal(t, []string{"a", "b", "c"}, keys)

	keys = nil
	for iter := s.ReverseIterator(nil, nil); iter.Valid(); iter.Next() {
		keys = append(keys, string(iter.Key()))
	}
	assert.Equal(t, []string{"c", "b", "a"}, keys)

	// end is exclusive
	keys = nil
	for iter := s.Iterator([]byte("a"), []byte("c")); iter.Valid(); iter.Next() {
		keys = append(keys, string(iter.Key()))
	}
	assert.Equal(t, []string{"a", "b"}, keys)
}

// TestCommitStoreRunsEngine makes sure the merkle-backed store can carry
// the full authorization flow, with each submission saving one version.
func TestCommitStoreRunsEngine(t *testing.T) {
	s := iavl.MockCommitStore()
	_, addrs := quorumtest.NewOwners(3)

	cache := s.CacheWrap()
	_, err := owners.Initialize(cache, addrs)
	require.NoError(t, err)
	cache.Write()

	v1 := s.LatestVersion()
	assert.True(t, v1.Version > 0)
	assert.NotEmpty(t, v1.Hash)
	assert.True(t, owners.IsOwner(s, addrs[0]))

	// a failed operation must not burn a version
	cache = s.CacheWrap()
	_, err = owners.Initialize(cache, addrs)
	require.Error(t, err)
	cache.Discard()
	assert.Equal(t, v1.Version, s.LatestVersion().Version)

	assert.Equal(t, int64(0), executor.Counter(s))
}
