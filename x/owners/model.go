package owners

import (
	"github.com/onvault/quorum"
	"github.com/onvault/quorum/errors"
	"github.com/tendermint/go-amino"
)

// MinOwners is the smallest owner set the registry accepts. With fewer
// than three principals a "majority" degenerates into a single key.
const MinOwners = 3

// cdc encodes the roster records persisted per version.
var cdc = amino.NewCodec()

// Roster is the full owner set of one epoch, persisted as a single record
// so the whole set can be listed without an index scan.
type Roster struct {
	Version int64
	Owners  []quorum.Address
}

// Validate enforces the three owner-set rules: minimum size, no empty
// identity, no repeated identity.
func (r *Roster) Validate() error {
	return validateOwners(r.Owners)
}

func validateOwners(addrs []quorum.Address) error {
	if len(addrs) < MinOwners {
		return errors.Wrapf(ErrOwnerCount, "got %d, need at least %d", len(addrs), MinOwners)
	}
	seen := make(map[string]struct{}, len(addrs))
	for i, a := range addrs {
		if err := a.Validate(); err != nil {
			return errors.Wrapf(ErrInvalidOwner, "position %d", i)
		}
		if _, ok := seen[string(a)]; ok {
			return errors.Wrapf(ErrDuplicateOwner, "position %d: %s", i, a)
		}
		seen[string(a)] = struct{}{}
	}
	return nil
}
