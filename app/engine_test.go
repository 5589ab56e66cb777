package app

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/onvault/quorum"
	"github.com/onvault/quorum/errors"
	"github.com/onvault/quorum/quorumtest"
	"github.com/onvault/quorum/x/delegation"
	"github.com/onvault/quorum/x/executor"
	"github.com/onvault/quorum/x/owners"
)

// ledgerBackend records executed steps in the store, keyed by order of
// execution, so tests can inspect what actually ran.
type ledgerBackend struct {
	count int
}

func (b *ledgerBackend) ExecuteStep(db quorum.KVStore, caller quorum.Address, step quorum.Step) error {
	db.Set([]byte(fmt.Sprintf("ledger:%d", b.count)), step.Payload)
	b.count++
	return nil
}

func newEngine(t *testing.T) (*Engine, *ledgerBackend) {
	t.Helper()
	backend := &ledgerBackend{}
	eng, err := NewEngine(Options{
		DB:      quorumtest.MemStore(),
		Backend: backend,
	})
	require.NoError(t, err)
	return eng, backend
}

func TestNewEngineRequiresStore(t *testing.T) {
	_, err := NewEngine(Options{})
	require.Error(t, err)
	assert.True(t, errors.ErrEmpty.Is(err))
}

func TestInitializeOnce(t *testing.T) {
	eng, _ := newEngine(t)
	_, addrs := quorumtest.NewOwners(3)

	assert.False(t, eng.Initialized())
	tags, err := eng.Initialize(addrs)
	require.NoError(t, err)
	assert.NotEmpty(t, tags)
	assert.True(t, eng.Initialized())
	assert.Equal(t, int64(0), eng.Version())
	assert.Equal(t, int64(3), eng.OwnerCount())

	_, err = eng.Initialize(addrs)
	assert.Error(t, err)
}

func TestApproveRequiresOwnership(t *testing.T) {
	eng, _ := newEngine(t)
	_, addrs := quorumtest.NewOwners(3)
	_, err := eng.Initialize(addrs)
	require.NoError(t, err)

	steps := []quorum.Step{{Target: quorumtest.NewAddress(), Payload: []byte("x")}}
	id := eng.ActionID(steps)

	_, err = eng.Approve(quorumtest.NewAddress(), id)
	require.Error(t, err)
	assert.True(t, executor.ErrUnauthorizedCaller.Is(err))
	assert.Equal(t, int64(0), eng.ApprovalCount(id))

	_, err = eng.Approve(addrs[0], id)
	require.NoError(t, err)
	assert.Equal(t, int64(1), eng.ApprovalCount(id))
	assert.True(t, eng.HasApproved(id, addrs[0]))
}

func TestApproveValidatesActionID(t *testing.T) {
	eng, _ := newEngine(t)
	_, addrs := quorumtest.NewOwners(3)
	_, err := eng.Initialize(addrs)
	require.NoError(t, err)

	_, err = eng.Approve(addrs[0], quorum.ActionID{1, 2, 3})
	require.Error(t, err)
	assert.True(t, errors.ErrInput.Is(err))
}

// TestLifecycle walks the whole intended flow: initialize, collect a
// mixture of direct approvals and a delegated signature, execute, and
// observe that the identifier is spent afterwards.
func TestLifecycle(t *testing.T) {
	eng, backend := newEngine(t)
	keys, addrs := quorumtest.NewOwners(4)
	_, err := eng.Initialize(addrs)
	require.NoError(t, err)

	steps := []quorum.Step{
		{Target: quorumtest.NewAddress(), Value: 500, Payload: []byte("pay rent")},
		{Target: quorumtest.NewAddress(), Value: 70, Payload: []byte("pay power")},
	}
	id := eng.ActionID(steps)

	// two direct approvals: 2 of 4 is not a majority yet
	_, err = eng.Approve(addrs[0], id)
	require.NoError(t, err)
	_, err = eng.Approve(addrs[1], id)
	require.NoError(t, err)
	assert.False(t, eng.IsAuthorized(id))

	_, err = eng.Submit(addrs[3], steps, nil)
	require.Error(t, err)
	assert.True(t, errors.ErrUnauthorized.Is(err))

	// the third voice arrives offline, bound to addrs[3] as submitter
	del, err := delegation.SignDelegation(keys[2], id, addrs[3], eng.Nonce(addrs[2]))
	require.NoError(t, err)

	res, err := eng.Submit(addrs[3], steps, []delegation.Delegation{*del})
	require.NoError(t, err)
	assert.Equal(t, id, res.ActionID)
	assert.Equal(t, 2, backend.count)
	assert.Equal(t, int64(1), eng.ActionCounter())
	assert.Equal(t, int64(1), eng.Nonce(addrs[2]))

	// identical steps now derive a fresh identifier with no approvals
	next := eng.ActionID(steps)
	assert.False(t, next.Equals(id))
	assert.Equal(t, int64(0), eng.ApprovalCount(next))
	assert.False(t, eng.IsAuthorized(next))
}

func TestRevokeSurvivesRotation(t *testing.T) {
	eng, _ := newEngine(t)
	_, addrs := quorumtest.NewOwners(3)
	_, err := eng.Initialize(addrs)
	require.NoError(t, err)

	steps := []quorum.Step{{Target: quorumtest.NewAddress(), Payload: []byte("x")}}
	id := eng.ActionID(steps)
	_, err = eng.Approve(addrs[0], id)
	require.NoError(t, err)

	// rotate addrs[0] out through a self-governance batch
	next := []quorum.Address{addrs[1], addrs[2], quorumtest.NewAddress()}
	payload, err := executor.MarshalGovMsg(&executor.RotateOwnersMsg{Owners: next})
	require.NoError(t, err)
	rotation := []quorum.Step{{Target: executor.SelfAddress(), Payload: payload}}
	rotID := eng.ActionID(rotation)
	_, err = eng.Approve(addrs[1], rotID)
	require.NoError(t, err)
	_, err = eng.Approve(addrs[2], rotID)
	require.NoError(t, err)
	_, err = eng.Submit(addrs[1], rotation, nil)
	require.NoError(t, err)

	require.False(t, eng.IsOwner(addrs[0]))
	// a stale owner cannot add new approvals...
	_, err = eng.Approve(addrs[0], id)
	require.Error(t, err)
	assert.True(t, executor.ErrUnauthorizedCaller.Is(err))

	// ...but can still withdraw the one already standing
	_, err = eng.Revoke(addrs[0], id)
	require.NoError(t, err)
	assert.Equal(t, int64(0), eng.ApprovalCount(id))
	assert.False(t, eng.HasApproved(id, addrs[0]))
}

func TestRotationThroughEngine(t *testing.T) {
	eng, _ := newEngine(t)
	_, addrs := quorumtest.NewOwners(3)
	_, err := eng.Initialize(addrs)
	require.NoError(t, err)

	next := []quorum.Address{
		quorumtest.NewAddress(),
		quorumtest.NewAddress(),
		quorumtest.NewAddress(),
		quorumtest.NewAddress(),
		quorumtest.NewAddress(),
	}
	payload, err := executor.MarshalGovMsg(&executor.RotateOwnersMsg{Owners: next})
	require.NoError(t, err)
	steps := []quorum.Step{{Target: executor.SelfAddress(), Payload: payload}}
	id := eng.ActionID(steps)

	_, err = eng.Approve(addrs[0], id)
	require.NoError(t, err)
	_, err = eng.Approve(addrs[1], id)
	require.NoError(t, err)
	_, err = eng.Submit(addrs[2], steps, nil)
	require.NoError(t, err)

	assert.Equal(t, int64(1), eng.Version())
	assert.Equal(t, int64(5), eng.OwnerCount())
	got, err := eng.Owners()
	require.NoError(t, err)
	assert.Equal(t, next, got)

	// the founding roster remains on record
	past, err := eng.OwnersAt(0)
	require.NoError(t, err)
	assert.Equal(t, addrs, past)
}

type recordedReceipt struct {
	from   quorum.Address
	amount int64
	detail []byte
}

type receiptRecorder struct {
	got []recordedReceipt
}

func (r *receiptRecorder) OnAssetReceived(from quorum.Address, amount int64, detail []byte) {
	r.got = append(r.got, recordedReceipt{from: from, amount: amount, detail: detail})
}

func TestAcknowledgeAsset(t *testing.T) {
	first := &receiptRecorder{}
	second := &receiptRecorder{}
	eng, err := NewEngine(Options{
		DB:    quorumtest.MemStore(),
		Hooks: []ReceiptHook{first, second},
	})
	require.NoError(t, err)

	sender := quorumtest.NewAddress()
	tags := eng.AcknowledgeAsset(sender, 250, []byte("invoice 7"))
	assert.NotEmpty(t, tags)

	require.Len(t, first.got, 1)
	require.Len(t, second.got, 1)
	assert.Equal(t, sender, first.got[0].from)
	assert.Equal(t, int64(250), first.got[0].amount)
	assert.Equal(t, []byte("invoice 7"), first.got[0].detail)

	// acceptance only: no registry state appeared
	assert.False(t, eng.Initialized())
}

func TestEngineQueriesOnEmptyStore(t *testing.T) {
	eng, _ := newEngine(t)

	assert.False(t, eng.Initialized())
	assert.Equal(t, int64(0), eng.OwnerCount())
	assert.Equal(t, int64(0), eng.ActionCounter())
	assert.False(t, eng.IsOwner(quorumtest.NewAddress()))
	_, err := eng.Owners()
	assert.Error(t, err)
	assert.True(t, errors.ErrNotFound.Is(err))
}

func TestMinimumRosterEnforced(t *testing.T) {
	eng, _ := newEngine(t)
	_, addrs := quorumtest.NewOwners(owners.MinOwners - 1)
	_, err := eng.Initialize(addrs)
	require.Error(t, err)
	assert.True(t, owners.ErrOwnerCount.Is(err))
}
