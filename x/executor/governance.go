package executor

import (
	"github.com/onvault/quorum"
	"github.com/onvault/quorum/errors"
	"github.com/onvault/quorum/x/owners"
	"github.com/tendermint/go-amino"
)

// govCdc decodes the payload of self-targeted steps.
var govCdc = amino.NewCodec()

func init() {
	govCdc.RegisterInterface((*GovMsg)(nil), nil)
	govCdc.RegisterConcrete(&RotateOwnersMsg{}, "executor/rotate", nil)
}

// SelfCondition is the executor's own governance identity. A step whose
// target equals SelfCondition().Address() is dispatched internally
// instead of being handed to the backend.
func SelfCondition() quorum.Condition {
	return quorum.NewCondition("executor", "gov", []byte("self"))
}

// SelfAddress is a shortcut for SelfCondition().Address().
func SelfAddress() quorum.Address {
	return SelfCondition().Address()
}

// GovMsg is a message the executor can apply to its own state when it
// arrives as an authorized self-targeted step.
type GovMsg interface {
	Validate() error
}

// RotateOwnersMsg replaces the active owner set with a new one. Encoded
// with the governance codec as a step payload, it is the only way to
// reach the registry's rotation.
type RotateOwnersMsg struct {
	Owners []quorum.Address
}

var _ GovMsg = (*RotateOwnersMsg)(nil)

// Validate only checks the shape here; the full owner-set rules are
// enforced by the registry on application.
func (m *RotateOwnersMsg) Validate() error {
	if len(m.Owners) == 0 {
		return errors.Wrap(errors.ErrEmpty, "owners")
	}
	return nil
}

// MarshalGovMsg encodes a governance message into step payload bytes.
func MarshalGovMsg(msg GovMsg) ([]byte, error) {
	if msg == nil {
		return nil, errors.Wrap(errors.ErrEmpty, "message")
	}
	if err := msg.Validate(); err != nil {
		return nil, err
	}
	raw, err := govCdc.MarshalBinaryBare(msg)
	if err != nil {
		return nil, errors.Wrap(errors.ErrInput, "cannot marshal")
	}
	return raw, nil
}

// UnmarshalGovMsg decodes step payload bytes into a governance message.
func UnmarshalGovMsg(payload []byte) (GovMsg, error) {
	var msg GovMsg
	if err := govCdc.UnmarshalBinaryBare(payload, &msg); err != nil {
		return nil, errors.Wrap(errors.ErrInput, "cannot unmarshal governance payload")
	}
	if err := msg.Validate(); err != nil {
		return nil, err
	}
	return msg, nil
}

// executeGovStep applies a self-targeted step of an authorized batch.
func executeGovStep(db quorum.KVStore, step quorum.Step) (quorum.Tags, error) {
	msg, err := UnmarshalGovMsg(step.Payload)
	if err != nil {
		return nil, err
	}
	switch m := msg.(type) {
	case *RotateOwnersMsg:
		return owners.Rotate(db, m.Owners)
	default:
		return nil, errors.Wrapf(errors.ErrInput, "unknown governance message %T", msg)
	}
}
