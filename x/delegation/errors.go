package delegation

import (
	"github.com/onvault/quorum/errors"
)

// Error codes 1020-1029 are reserved for this package.
var (
	// ErrInvalidSignature is returned when a delegation entry fails
	// verification: malformed key or signature, signer not a current
	// owner, or a digest mismatch (wrong action, executor or nonce).
	ErrInvalidSignature = errors.Register(1020, "invalid signature")
)
