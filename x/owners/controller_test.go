package owners

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/onvault/quorum"
	"github.com/onvault/quorum/errors"
	"github.com/onvault/quorum/quorumtest"
)

func TestInitializeValidation(t *testing.T) {
	a := quorumtest.NewAddress()
	b := quorumtest.NewAddress()
	c := quorumtest.NewAddress()

	cases := map[string]struct {
		owners  []quorum.Address
		wantErr *errors.Error
	}{
		"too short": {
			owners:  []quorum.Address{a, b},
			wantErr: ErrOwnerCount,
		},
		"empty": {
			owners:  nil,
			wantErr: ErrOwnerCount,
		},
		"nil owner": {
			owners:  []quorum.Address{a, b, nil},
			wantErr: ErrInvalidOwner,
		},
		"truncated owner": {
			owners:  []quorum.Address{a, b, c[:10]},
			wantErr: ErrInvalidOwner,
		},
		"duplicate": {
			owners:  []quorum.Address{a, b, a},
			wantErr: ErrDuplicateOwner,
		},
	}

	for name, tc := range cases {
		t.Run(name, func(t *testing.T) {
			db := quorumtest.MemStore()
			_, err := Initialize(db, tc.owners)
			require.Error(t, err)
			assert.True(t, tc.wantErr.Is(err), "got %+v", err)
			// nothing may be stored on a failed initialization
			assert.False(t, Initialized(db))
			assert.Equal(t, int64(0), Count(db))
		})
	}
}

func TestInitializeOnce(t *testing.T) {
	db := quorumtest.MemStore()
	_, addrs := quorumtest.NewOwners(3)

	_, err := Initialize(db, addrs)
	require.NoError(t, err)

	_, err = Initialize(db, addrs)
	assert.Error(t, err)
}

func TestInitializeStoresEpochZero(t *testing.T) {
	db := quorumtest.MemStore()
	_, addrs := quorumtest.NewOwners(4)

	tags, err := Initialize(db, addrs)
	require.NoError(t, err)
	assert.NotEmpty(t, tags)

	assert.True(t, Initialized(db))
	assert.Equal(t, int64(0), Version(db))
	assert.Equal(t, int64(4), Count(db))
	for _, a := range addrs {
		assert.True(t, IsOwner(db, a))
	}
	assert.False(t, IsOwner(db, quorumtest.NewAddress()))
	assert.False(t, IsOwner(db, nil))

	roster, err := CurrentOwners(db)
	require.NoError(t, err)
	assert.Equal(t, addrs, roster)
}

func TestRotateRequiresInitialization(t *testing.T) {
	db := quorumtest.MemStore()
	_, addrs := quorumtest.NewOwners(3)
	_, err := Rotate(db, addrs)
	assert.Error(t, err)
}

func TestRotateReplacesStandingInstantly(t *testing.T) {
	db := quorumtest.MemStore()
	_, old := quorumtest.NewOwners(3)
	_, err := Initialize(db, old)
	require.NoError(t, err)

	next := []quorum.Address{
		quorumtest.NewAddress(),
		quorumtest.NewAddress(),
		quorumtest.NewAddress(),
		quorumtest.NewAddress(),
	}
	_, err = Rotate(db, next)
	require.NoError(t, err)

	assert.Equal(t, int64(1), Version(db))
	assert.Equal(t, int64(4), Count(db))
	// every old owner lost standing without any per-owner cleanup
	for _, a := range old {
		assert.False(t, IsOwner(db, a))
	}
	for _, a := range next {
		assert.True(t, IsOwner(db, a))
	}
}

func TestRotateValidatesNewSet(t *testing.T) {
	db := quorumtest.MemStore()
	_, addrs := quorumtest.NewOwners(3)
	_, err := Initialize(db, addrs)
	require.NoError(t, err)

	_, err = Rotate(db, addrs[:2])
	require.Error(t, err)
	assert.True(t, ErrOwnerCount.Is(err))
	// failed rotation leaves the current epoch untouched
	assert.Equal(t, int64(0), Version(db))
	assert.Equal(t, int64(3), Count(db))
}

func TestPastRostersStayQueryable(t *testing.T) {
	db := quorumtest.MemStore()
	_, first := quorumtest.NewOwners(3)
	_, err := Initialize(db, first)
	require.NoError(t, err)

	second := []quorum.Address{
		quorumtest.NewAddress(),
		quorumtest.NewAddress(),
		quorumtest.NewAddress(),
	}
	_, err = Rotate(db, second)
	require.NoError(t, err)

	past, err := OwnersAt(db, 0)
	require.NoError(t, err)
	assert.Equal(t, first, past)

	_, err = OwnersAt(db, 7)
	assert.Error(t, err)
}
