package quorum

import (
	"github.com/tendermint/tendermint/libs/common"
)

// Tags is an ordered list of key-value pairs describing what a state
// transition did. Components append tags as they mutate state; callers can
// forward them to any audit or indexing layer.
type Tags = []common.KVPair

// Pair builds a single tag.
func Pair(key, value string) common.KVPair {
	return common.KVPair{
		Key:   []byte(key),
		Value: []byte(value),
	}
}

// PairBytes builds a single tag from raw bytes.
func PairBytes(key string, value []byte) common.KVPair {
	return common.KVPair{
		Key:   []byte(key),
		Value: value,
	}
}
