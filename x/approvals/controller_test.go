package approvals

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/onvault/quorum"
	"github.com/onvault/quorum/quorumtest"
)

func anActionID(fill byte) quorum.ActionID {
	id := make(quorum.ActionID, quorum.ActionIDLength)
	for i := range id {
		id[i] = fill
	}
	return id
}

func TestApproveSetsFlagAndAggregate(t *testing.T) {
	db := quorumtest.MemStore()
	id := anActionID(1)
	alice := quorumtest.NewAddress()
	bob := quorumtest.NewAddress()

	assert.Equal(t, int64(0), Count(db, id))
	assert.False(t, HasApproved(db, id, alice))

	tags, err := Approve(db, id, alice, alice)
	require.NoError(t, err)
	assert.NotEmpty(t, tags)
	assert.True(t, HasApproved(db, id, alice))
	assert.Equal(t, int64(1), Count(db, id))

	_, err = Approve(db, id, bob, bob)
	require.NoError(t, err)
	assert.Equal(t, int64(2), Count(db, id))

	// a different action keeps its own ledger
	assert.Equal(t, int64(0), Count(db, anActionID(2)))
}

func TestApproveTwiceFails(t *testing.T) {
	db := quorumtest.MemStore()
	id := anActionID(1)
	alice := quorumtest.NewAddress()

	_, err := Approve(db, id, alice, alice)
	require.NoError(t, err)

	_, err = Approve(db, id, alice, alice)
	require.Error(t, err)
	assert.True(t, ErrAlreadyApproved.Is(err))
	// the failed call must not disturb the aggregate
	assert.Equal(t, int64(1), Count(db, id))
}

func TestRevoke(t *testing.T) {
	db := quorumtest.MemStore()
	id := anActionID(1)
	alice := quorumtest.NewAddress()
	bob := quorumtest.NewAddress()

	_, err := Approve(db, id, alice, alice)
	require.NoError(t, err)
	_, err = Approve(db, id, bob, bob)
	require.NoError(t, err)

	tags, err := Revoke(db, id, alice)
	require.NoError(t, err)
	assert.NotEmpty(t, tags)
	assert.False(t, HasApproved(db, id, alice))
	assert.True(t, HasApproved(db, id, bob))
	assert.Equal(t, int64(1), Count(db, id))

	// alice can approve again after revoking
	_, err = Approve(db, id, alice, alice)
	require.NoError(t, err)
	assert.Equal(t, int64(2), Count(db, id))
}

func TestRevokeWithoutApprovalFails(t *testing.T) {
	db := quorumtest.MemStore()
	id := anActionID(1)
	alice := quorumtest.NewAddress()

	_, err := Revoke(db, id, alice)
	require.Error(t, err)
	assert.True(t, ErrNotApproved.Is(err))

	_, err = Approve(db, id, alice, alice)
	require.NoError(t, err)
	_, err = Revoke(db, id, alice)
	require.NoError(t, err)

	// a second revocation contradicts the ledger state again
	_, err = Revoke(db, id, alice)
	require.Error(t, err)
	assert.True(t, ErrNotApproved.Is(err))
	assert.Equal(t, int64(0), Count(db, id))
}
