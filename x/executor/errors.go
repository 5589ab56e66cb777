package executor

import (
	"github.com/onvault/quorum/errors"
)

// Error codes 1030-1039 are reserved for this package.
var (
	// ErrUnauthorizedCaller is returned when the submitting caller is
	// not recognized as a current owner.
	ErrUnauthorizedCaller = errors.Register(1030, "unauthorized caller")

	// ErrStepFailed is returned when a step of an authorized batch
	// failed to execute. The failing step's detail is attached to the
	// message; the whole batch is rolled back.
	ErrStepFailed = errors.Register(1031, "step failed")
)
