package owners

import (
	"strconv"

	"github.com/onvault/quorum"
	"github.com/onvault/quorum/errors"
	"github.com/onvault/quorum/orm"
)

// Controller-level functions, so other packages (the executor's
// governance dispatch, the engine facade) can compose with the registry
// without holding any object state.

var versionKey = []byte("owners:version")

func memberKey(version int64, addr quorum.Address) []byte {
	key := append([]byte("owners:m:"), orm.EncodeSequence(version)...)
	return append(key, addr...)
}

func countKey(version int64) []byte {
	return append([]byte("owners:c:"), orm.EncodeSequence(version)...)
}

func rosterKey(version int64) []byte {
	return append([]byte("owners:r:"), orm.EncodeSequence(version)...)
}

// Initialize stores the given owner set as version 0. It fails when the
// registry was already initialized, or when the set violates any of the
// owner-set rules.
func Initialize(db quorum.KVStore, addrs []quorum.Address) (quorum.Tags, error) {
	if db.Has(versionKey) {
		return nil, errors.Wrap(errors.ErrState, "already initialized")
	}
	if err := validateOwners(addrs); err != nil {
		return nil, err
	}
	writeEpoch(db, 0, addrs)
	db.Set(versionKey, orm.EncodeSequence(0))
	return epochTags(0, len(addrs)), nil
}

// Rotate validates the new owner set, increments the version and replaces
// the active set and count. Old owners are not removed; they become
// unrecognized because membership checks are scoped to the current
// version.
//
// This function must only be called from the executor's self-governance
// dispatch. It is exported for that package, not for general use.
func Rotate(db quorum.KVStore, addrs []quorum.Address) (quorum.Tags, error) {
	if !db.Has(versionKey) {
		return nil, errors.Wrap(errors.ErrState, "not initialized")
	}
	if err := validateOwners(addrs); err != nil {
		return nil, err
	}
	version := Version(db) + 1
	writeEpoch(db, version, addrs)
	db.Set(versionKey, orm.EncodeSequence(version))
	return epochTags(version, len(addrs)), nil
}

// writeEpoch persists one epoch: a membership marker per owner, the set
// count and the full roster record. Cost is proportional to the new set
// only.
func writeEpoch(db quorum.KVStore, version int64, addrs []quorum.Address) {
	for _, a := range addrs {
		db.Set(memberKey(version, a), []byte{1})
	}
	db.Set(countKey(version), orm.EncodeSequence(int64(len(addrs))))
	roster := Roster{Version: version, Owners: addrs}
	db.Set(rosterKey(version), cdc.MustMarshalBinaryBare(roster))
}

func epochTags(version int64, count int) quorum.Tags {
	return quorum.Tags{
		quorum.Pair("registry:version", strconv.FormatInt(version, 10)),
		quorum.Pair("registry:count", strconv.Itoa(count)),
	}
}

// Initialized returns true once an owner set was stored.
func Initialized(db quorum.ReadOnlyKVStore) bool {
	return db.Has(versionKey)
}

// Version returns the current owner-set version. Before initialization it
// returns zero, same as the first epoch; use Initialized to distinguish.
func Version(db quorum.ReadOnlyKVStore) int64 {
	return orm.DecodeSequence(db.Get(versionKey))
}

// Count returns the number of owners recognized under the current
// version.
func Count(db quorum.ReadOnlyKVStore) int64 {
	return orm.DecodeSequence(db.Get(countKey(Version(db))))
}

// IsOwner is a pure lookup against the current version, no side effects.
func IsOwner(db quorum.ReadOnlyKVStore, addr quorum.Address) bool {
	if len(addr) == 0 {
		return false
	}
	return db.Has(memberKey(Version(db), addr))
}

// CurrentOwners lists the roster of the active epoch.
func CurrentOwners(db quorum.ReadOnlyKVStore) ([]quorum.Address, error) {
	return OwnersAt(db, Version(db))
}

// OwnersAt lists the roster of any stored epoch. Past epochs remain
// queryable for audit purposes.
func OwnersAt(db quorum.ReadOnlyKVStore, version int64) ([]quorum.Address, error) {
	raw := db.Get(rosterKey(version))
	if raw == nil {
		return nil, errors.Wrapf(errors.ErrNotFound, "roster version %d", version)
	}
	var roster Roster
	if err := cdc.UnmarshalBinaryBare(raw, &roster); err != nil {
		return nil, errors.Wrap(errors.ErrState, "corrupted roster")
	}
	return roster.Owners, nil
}
