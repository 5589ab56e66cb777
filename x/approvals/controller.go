package approvals

import (
	"strconv"

	"github.com/onvault/quorum"
	"github.com/onvault/quorum/errors"
	"github.com/onvault/quorum/orm"
)

func flagKey(actionID quorum.ActionID, owner quorum.Address) []byte {
	key := append([]byte("approvals:f:"), actionID...)
	return append(key, owner...)
}

func countKey(actionID quorum.ActionID) []byte {
	return append([]byte("approvals:c:"), actionID...)
}

// Approve records an owner's assent for an action. The by address is the
// caller acting on the owner's behalf: the owner itself for a direct
// approval, the submitting executor for a delegated one. It only shows up
// in the emitted tags.
func Approve(db quorum.KVStore, actionID quorum.ActionID, owner, by quorum.Address) (quorum.Tags, error) {
	key := flagKey(actionID, owner)
	if db.Has(key) {
		return nil, errors.Wrapf(ErrAlreadyApproved, "owner %s", owner)
	}
	db.Set(key, []byte{1})
	count := orm.DecodeSequence(db.Get(countKey(actionID))) + 1
	db.Set(countKey(actionID), orm.EncodeSequence(count))

	tags := quorum.Tags{
		quorum.Pair("approval:action", actionID.String()),
		quorum.Pair("approval:owner", owner.String()),
		quorum.Pair("approval:by", by.String()),
		quorum.Pair("approval:count", strconv.FormatInt(count, 10)),
	}
	return tags, nil
}

// Revoke clears an owner's assent for an action and decrements the
// aggregate. It is intentionally not gated on current owner standing: a
// since-rotated owner may still withdraw their stale approval, since
// revocation only ever reduces authorization.
func Revoke(db quorum.KVStore, actionID quorum.ActionID, owner quorum.Address) (quorum.Tags, error) {
	key := flagKey(actionID, owner)
	if !db.Has(key) {
		return nil, errors.Wrapf(ErrNotApproved, "owner %s", owner)
	}
	db.Delete(key)
	count := orm.DecodeSequence(db.Get(countKey(actionID))) - 1
	db.Set(countKey(actionID), orm.EncodeSequence(count))

	tags := quorum.Tags{
		quorum.Pair("revocation:action", actionID.String()),
		quorum.Pair("revocation:owner", owner.String()),
		quorum.Pair("revocation:count", strconv.FormatInt(count, 10)),
	}
	return tags, nil
}

// Count is a pure read of the aggregate approval counter for an action.
func Count(db quorum.ReadOnlyKVStore, actionID quorum.ActionID) int64 {
	return orm.DecodeSequence(db.Get(countKey(actionID)))
}

// HasApproved reports whether the owner's flag is set for the action.
func HasApproved(db quorum.ReadOnlyKVStore, actionID quorum.ActionID, owner quorum.Address) bool {
	return db.Has(flagKey(actionID, owner))
}
