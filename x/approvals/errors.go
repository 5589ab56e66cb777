package approvals

import (
	"github.com/onvault/quorum/errors"
)

// Error codes 1010-1019 are reserved for this package.
var (
	// ErrAlreadyApproved is returned when an owner approves the same
	// action twice.
	ErrAlreadyApproved = errors.Register(1010, "already approved")

	// ErrNotApproved is returned when revoking an approval that was
	// never given or was already revoked.
	ErrNotApproved = errors.Register(1011, "not approved")
)
