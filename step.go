package quorum

import (
	"bytes"
	"encoding/hex"

	"github.com/onvault/quorum/errors"
)

// ActionIDLength is the length of every action identifier (sha256 digest).
const ActionIDLength = 32

// ActionID is the deterministic digest binding a batch's content to the
// global action counter value at submission time. Two identical step lists
// submitted under different counter values produce different identifiers.
type ActionID []byte

// Equals checks if two action identifiers are the same
func (id ActionID) Equals(other ActionID) bool {
	return bytes.Equal(id, other)
}

// String returns a human readable hex representation.
func (id ActionID) String() string {
	if len(id) == 0 {
		return "(nil)"
	}
	return hex.EncodeToString(id)
}

// Validate returns an error if the identifier is not the proper size
func (id ActionID) Validate() error {
	if len(id) != ActionIDLength {
		return errors.Wrapf(errors.ErrInput, "action id: invalid length %d", len(id))
	}
	return nil
}

// Step is one unit of an action batch: deliver Payload to Target along
// with Value. The core treats all three as opaque and hands them to the
// execution backend in array order. A step whose target is the executor's
// own governance address is dispatched internally instead.
type Step struct {
	Target  Address
	Value   int64
	Payload []byte
}

// Validate returns an error if the step cannot ever be executed.
func (s Step) Validate() error {
	if err := s.Target.Validate(); err != nil {
		return errors.Wrap(errors.ErrTarget, "target")
	}
	if s.Value < 0 {
		return errors.Wrapf(errors.ErrInput, "negative value %d", s.Value)
	}
	return nil
}

// ValidateSteps ensures a submitted batch is non-empty and each step is
// well formed.
func ValidateSteps(steps []Step) error {
	if len(steps) == 0 {
		return errors.Wrap(errors.ErrInput, "empty batch")
	}
	for i, s := range steps {
		if err := s.Validate(); err != nil {
			return errors.Wrapf(err, "step %d", i)
		}
	}
	return nil
}
