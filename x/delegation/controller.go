package delegation

import (
	"crypto/sha512"

	"github.com/onvault/quorum"
	"github.com/onvault/quorum/crypto"
	"github.com/onvault/quorum/errors"
	"github.com/onvault/quorum/orm"
	"github.com/onvault/quorum/x/approvals"
	"github.com/onvault/quorum/x/owners"
)

// SignCodeV1 is the current way to prefix the bytes we use to build a
// delegation signature
var SignCodeV1 = []byte{0, 0xDE, 0x1E, 0}

// maxNonceValue is limited by the client. The greatest supported nonce
// value at client side is
//   Number.MAX_SAFE_INTEGER = 9007199254740991 = 2^53 - 1
// If greater values must be supported, we get much more complicated
// client code.
const maxNonceValue = (1 << 53) - 1

// Delegation is one off-path assent: the claimed owner's public key and a
// signature over the canonical delegation bytes.
type Delegation struct {
	Pubkey    *crypto.PublicKey
	Signature *crypto.Signature
}

// Validate ensures both parts are present and properly sized.
func (d Delegation) Validate() error {
	if d.Pubkey == nil {
		return errors.Wrap(errors.ErrEmpty, "pubkey")
	}
	if err := d.Pubkey.Validate(); err != nil {
		return errors.Wrap(err, "pubkey")
	}
	if err := d.Signature.Validate(); err != nil {
		return errors.Wrap(err, "signature")
	}
	return nil
}

func nonceKey(owner quorum.Address) []byte {
	return append([]byte("delegation:nonce:"), owner...)
}

// Nonce returns the current delegation nonce for an owner. The next
// signature produced for that owner must cover this value.
func Nonce(db quorum.ReadOnlyKVStore, owner quorum.Address) int64 {
	return orm.DecodeSequence(db.Get(nonceKey(owner)))
}

/*
BuildDelegationBytes combines all info that a delegated approval commits
to, using the following format:

version | owner address | action id | executor address | nonce
4bytes  | 20 bytes      | 32 bytes  | 20 bytes         | int64 (bigendian)

This is then prehashed with sha512 before being fed into the public key
signing/verification step, so we have a constant length output regardless
of the input.

Binding the executor prevents a delegation collected for one submitter
from being replayed by another; binding the nonce prevents a consumed
signature from ever being accepted again.
*/
func BuildDelegationBytes(owner quorum.Address, actionID quorum.ActionID, executor quorum.Address, nonce int64) ([]byte, error) {
	if nonce < 0 || nonce > maxNonceValue {
		return nil, errors.Wrap(errors.ErrOverflow, "nonce out of range")
	}
	if err := owner.Validate(); err != nil {
		return nil, errors.Wrap(err, "owner")
	}
	if err := actionID.Validate(); err != nil {
		return nil, errors.Wrap(err, "action id")
	}
	if err := executor.Validate(); err != nil {
		return nil, errors.Wrap(err, "executor")
	}

	output := make([]byte, 0, len(SignCodeV1)+len(owner)+len(actionID)+len(executor)+8)
	output = append(output, SignCodeV1...)
	output = append(output, owner...)
	output = append(output, actionID...)
	output = append(output, executor...)
	output = append(output, orm.EncodeSequence(nonce)...)

	hashed := sha512.Sum512(output)
	return hashed[:], nil
}

// SignDelegation creates an off-path assent for the given action, bound
// to the executor expected to submit it and to the signer's nonce. This
// is the client-side counterpart of VerifyAndConsume.
func SignDelegation(signer crypto.Signer, actionID quorum.ActionID, executor quorum.Address, nonce int64) (*Delegation, error) {
	pub := signer.PublicKey()
	msg, err := BuildDelegationBytes(pub.Address(), actionID, executor, nonce)
	if err != nil {
		return nil, err
	}
	sig, err := signer.Sign(msg)
	if err != nil {
		return nil, err
	}
	return &Delegation{
		Pubkey:    pub,
		Signature: sig,
	}, nil
}

// VerifyAndConsume processes a batch of delegations against one action
// and the submitting executor. Each valid entry is folded into the
// approval ledger and consumes one nonce increment for its owner. The
// first invalid entry fails the whole call.
//
// Run this inside a cache-wrap: on error the caller must discard every
// already-consumed entry of the same batch.
func VerifyAndConsume(db quorum.KVStore, actionID quorum.ActionID, executor quorum.Address, dels []Delegation) (quorum.Tags, error) {
	var tags quorum.Tags
	for i, d := range dels {
		if err := d.Validate(); err != nil {
			return nil, errors.Wrapf(ErrInvalidSignature, "entry %d: %v", i, err)
		}
		owner := d.Pubkey.Address()
		if !owners.IsOwner(db, owner) {
			return nil, errors.Wrapf(ErrInvalidSignature, "entry %d: %s is not an owner", i, owner)
		}
		nonce := Nonce(db, owner)
		msg, err := BuildDelegationBytes(owner, actionID, executor, nonce)
		if err != nil {
			return nil, errors.Wrapf(ErrInvalidSignature, "entry %d: %v", i, err)
		}
		if !d.Pubkey.Verify(msg, d.Signature) {
			return nil, errors.Wrapf(ErrInvalidSignature, "entry %d: owner %s", i, owner)
		}

		approved, err := approvals.Approve(db, actionID, owner, executor)
		if err != nil {
			return nil, errors.Wrapf(err, "entry %d", i)
		}
		tags = append(tags, approved...)
		db.Set(nonceKey(owner), orm.EncodeSequence(nonce+1))
	}
	return tags, nil
}
