package quorumtest

import (
	"github.com/onvault/quorum"
	"github.com/onvault/quorum/crypto"
)

// NewKey returns a fresh random signer.
func NewKey() crypto.Signer {
	return crypto.GenPrivKeyEd25519()
}

// KeyFromSeed returns a deterministic signer. The same seed byte always
// produces the same key, which keeps failure output reproducible.
func KeyFromSeed(seed byte) crypto.Signer {
	raw := make([]byte, 32)
	for i := range raw {
		raw[i] = seed
	}
	return crypto.PrivKeyEd25519FromSeed(raw)
}

// NewCondition returns the condition of a fresh random key.
func NewCondition() quorum.Condition {
	return NewKey().PublicKey().Condition()
}

// NewAddress returns the address of a fresh random key.
func NewAddress() quorum.Address {
	return NewCondition().Address()
}

// NewOwners returns n distinct deterministic owner keys along with their
// addresses.
func NewOwners(n int) ([]crypto.Signer, []quorum.Address) {
	keys := make([]crypto.Signer, n)
	addrs := make([]quorum.Address, n)
	for i := 0; i < n; i++ {
		keys[i] = KeyFromSeed(byte(i + 1))
		addrs[i] = keys[i].PublicKey().Address()
	}
	return keys, addrs
}
