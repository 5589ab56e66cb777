package quorum

import (
	"bytes"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"

	"github.com/onvault/quorum/errors"
)

// AddressLength is the length of all addresses. You can modify it in
// init() before any addresses are calculated, but it must not change
// during the lifetime of the kvstore.
var AddressLength = 20

// Address represents a collision-free, one-way digest of an identity.
//
// It is computed as the sha256 hash of the identity's condition, truncated
// to AddressLength bytes. Every owner, caller and step target in the
// engine is referenced by its address.
type Address []byte

// NewAddress hashes and truncates into the proper size
func NewAddress(data []byte) Address {
	if data == nil {
		return nil
	}
	h := sha256.Sum256(data)
	return h[:AddressLength]
}

// Equals checks if two addresses are the same
func (a Address) Equals(b Address) bool {
	return bytes.Equal(a, b)
}

// Clone returns an independent copy of the address.
func (a Address) Clone() Address {
	if a == nil {
		return nil
	}
	cpy := make(Address, len(a))
	copy(cpy, a)
	return cpy
}

// String returns a human readable hex representation.
func (a Address) String() string {
	if len(a) == 0 {
		return "(nil)"
	}
	return hex.EncodeToString(a)
}

// Validate returns an error if the address is not the proper size
func (a Address) Validate() error {
	if len(a) != AddressLength {
		return errors.Wrapf(errors.ErrInput, "address: invalid length %d", len(a))
	}
	return nil
}

func (a Address) MarshalJSON() ([]byte, error) {
	return json.Marshal(hex.EncodeToString(a))
}

func (a *Address) UnmarshalJSON(raw []byte) error {
	var enc string
	if err := json.Unmarshal(raw, &enc); err != nil {
		return errors.Wrap(err, "cannot decode json")
	}
	if len(enc) == 0 {
		*a = nil
		return nil
	}
	val, err := hex.DecodeString(enc)
	if err != nil {
		return errors.Wrap(errors.ErrInput, "hex decode")
	}
	*a = val
	return nil
}
