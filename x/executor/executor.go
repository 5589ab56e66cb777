package executor

import (
	"strconv"

	"github.com/onvault/quorum"
	"github.com/onvault/quorum/errors"
	"github.com/onvault/quorum/orm"
	"github.com/onvault/quorum/x/approvals"
	"github.com/onvault/quorum/x/delegation"
	"github.com/onvault/quorum/x/owners"
)

// actionSeq is the global action counter: incremented by exactly one per
// successfully executed batch.
var actionSeq = orm.NewSequence("executor", "actions")

// StepExecutor is the external backend that carries out one step. It
// receives the same cache-wrapped store the submission runs in, so any
// state it writes there is rolled back together with the batch on
// failure. Backends with effects outside the store must provide their own
// transactional semantics.
type StepExecutor interface {
	ExecuteStep(db quorum.KVStore, caller quorum.Address, step quorum.Step) error
}

// StepExecutorFunc turns a plain function into a StepExecutor.
type StepExecutorFunc func(db quorum.KVStore, caller quorum.Address, step quorum.Step) error

func (f StepExecutorFunc) ExecuteStep(db quorum.KVStore, caller quorum.Address, step quorum.Step) error {
	return f(db, caller, step)
}

// ExecuteResult describes one successfully executed batch.
type ExecuteResult struct {
	// ActionID is the identifier the batch executed under.
	ActionID quorum.ActionID
	// Counter is the pre-execution value of the global action counter,
	// the one the identifier was derived from. The counter has since
	// advanced to Counter+1.
	Counter int64
	// Tags collect everything the submission emitted: absorbed
	// delegations, governance effects and the execution event itself.
	Tags quorum.Tags
}

// Quorum reports whether approved out of total constitutes a majority.
// With an even total a tie is not enough (strict majority); with an odd
// total the threshold is the count rounded up. Both cases reduce to
// 2*approved > total.
func Quorum(total, approved int64) bool {
	if total <= 0 {
		return false
	}
	return approved*2 > total
}

// Counter returns the current global action counter: the number of
// batches executed so far, and the value the next submission's identifier
// will be derived from.
func Counter(db quorum.ReadOnlyKVStore) int64 {
	val, _ := actionSeq.Latest(db)
	return val
}

// IsAuthorized reports whether the action currently holds a majority of
// the active owner set.
func IsAuthorized(db quorum.ReadOnlyKVStore, actionID quorum.ActionID) bool {
	return Quorum(owners.Count(db), approvals.Count(db, actionID))
}

// Submit runs the full authorization and execution path for one batch.
//
// The whole submission happens inside one cache-wrap on db: delegation
// consumption, quorum evaluation, every step's effect and the counter
// advance are either all written or all discarded. On error the store is
// untouched and the same step list keeps its identifier, so it can be
// re-approved and resubmitted.
func Submit(db quorum.CacheableKVStore, backend StepExecutor, caller quorum.Address, steps []quorum.Step, dels []delegation.Delegation) (*ExecuteResult, error) {
	cache := db.CacheWrap()
	res, err := submit(cache, backend, caller, steps, dels)
	if err != nil {
		cache.Discard()
		return nil, err
	}
	cache.Write()
	return res, nil
}

func submit(db quorum.KVStore, backend StepExecutor, caller quorum.Address, steps []quorum.Step, dels []delegation.Delegation) (*ExecuteResult, error) {
	if err := quorum.ValidateSteps(steps); err != nil {
		return nil, err
	}
	if !owners.IsOwner(db, caller) {
		return nil, errors.Wrapf(ErrUnauthorizedCaller, "%s", caller)
	}

	// The counter is read before any mutation in this call so the
	// identifier matches what callers could predict upfront.
	counter := Counter(db)
	actionID := ComputeActionID(steps, counter)

	var tags quorum.Tags
	if len(dels) != 0 {
		absorbed, err := delegation.VerifyAndConsume(db, actionID, caller, dels)
		if err != nil {
			return nil, err
		}
		tags = append(tags, absorbed...)
	}

	if !Quorum(owners.Count(db), approvals.Count(db, actionID)) {
		return nil, errors.Wrapf(errors.ErrUnauthorized,
			"%d of %d approvals", approvals.Count(db, actionID), owners.Count(db))
	}

	self := SelfAddress()
	for i, step := range steps {
		var err error
		if step.Target.Equals(self) {
			var govTags quorum.Tags
			govTags, err = executeGovStep(db, step)
			tags = append(tags, govTags...)
		} else {
			err = runBackendStep(db, backend, caller, step)
		}
		if err != nil {
			return nil, errors.Wrapf(ErrStepFailed, "step %d: %v", i, err)
		}
	}

	if next := actionSeq.NextInt(db); next != counter+1 {
		return nil, errors.Wrapf(errors.ErrState,
			"action counter moved mid-submission: %d != %d", next, counter+1)
	}

	tags = append(tags,
		quorum.Pair("execution:action", actionID.String()),
		quorum.Pair("execution:caller", caller.String()),
		quorum.Pair("execution:counter", strconv.FormatInt(counter, 10)),
	)
	return &ExecuteResult{
		ActionID: actionID,
		Counter:  counter,
		Tags:     tags,
	}, nil
}

// runBackendStep hands one step to the backend, containing any panic so a
// misbehaving backend surfaces as a step failure instead of tearing down
// the engine.
func runBackendStep(db quorum.KVStore, backend StepExecutor, caller quorum.Address, step quorum.Step) (err error) {
	if backend == nil {
		return errors.Wrap(errors.ErrState, "no execution backend configured")
	}
	defer errors.Recover(&err)
	return backend.ExecuteStep(db, caller, step)
}
