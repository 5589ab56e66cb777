package owners

import (
	"github.com/onvault/quorum/errors"
)

// Error codes 1000-1009 are reserved for this package.
var (
	// ErrOwnerCount is returned when a proposed owner set is smaller
	// than the required minimum.
	ErrOwnerCount = errors.Register(1000, "invalid owner count")

	// ErrInvalidOwner is returned when a proposed owner identity is
	// empty or malformed.
	ErrInvalidOwner = errors.Register(1001, "invalid owner")

	// ErrDuplicateOwner is returned when an identity repeats within one
	// proposed owner set.
	ErrDuplicateOwner = errors.Register(1002, "duplicate owner")
)
