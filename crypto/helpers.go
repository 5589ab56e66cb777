package crypto

import (
	"github.com/onvault/quorum"
)

// ExtensionName is used for the conditions we derive from public keys.
const ExtensionName = "sigs"

// PubKey represents a crypto public key we use.
type PubKey interface {
	Verify(message []byte, sig *Signature) bool
	Condition() quorum.Condition
}

// Signer is the functionality we use from a private key. No serializing
// to support hardware devices as well.
type Signer interface {
	Sign(message []byte) (*Signature, error)
	PublicKey() *PublicKey
}
