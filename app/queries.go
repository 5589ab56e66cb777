package app

import (
	"github.com/onvault/quorum"
	"github.com/onvault/quorum/x/approvals"
	"github.com/onvault/quorum/x/delegation"
	"github.com/onvault/quorum/x/executor"
	"github.com/onvault/quorum/x/owners"
)

// All queries are pure reads against the committed state. They share a
// read lock, so any number can run concurrently between mutations.

// Initialized reports whether an owner set was ever stored.
func (e *Engine) Initialized() bool {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return owners.Initialized(e.db)
}

// Version returns the current owner-set version.
func (e *Engine) Version() int64 {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return owners.Version(e.db)
}

// OwnerCount returns the size of the active owner set.
func (e *Engine) OwnerCount() int64 {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return owners.Count(e.db)
}

// Owners lists the roster of the active epoch.
func (e *Engine) Owners() ([]quorum.Address, error) {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return owners.CurrentOwners(e.db)
}

// OwnersAt lists the roster of any stored epoch.
func (e *Engine) OwnersAt(version int64) ([]quorum.Address, error) {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return owners.OwnersAt(e.db, version)
}

// IsOwner reports whether the address is recognized under the current
// version.
func (e *Engine) IsOwner(addr quorum.Address) bool {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return owners.IsOwner(e.db, addr)
}

// ActionCounter returns the number of batches executed so far.
func (e *Engine) ActionCounter() int64 {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return executor.Counter(e.db)
}

// Nonce returns the current delegation nonce for an owner.
func (e *Engine) Nonce(owner quorum.Address) int64 {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return delegation.Nonce(e.db, owner)
}

// ApprovalCount returns the aggregate approval counter for an action.
func (e *Engine) ApprovalCount(actionID quorum.ActionID) int64 {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return approvals.Count(e.db, actionID)
}

// HasApproved reports whether the owner's flag is set for the action.
func (e *Engine) HasApproved(actionID quorum.ActionID, owner quorum.Address) bool {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return approvals.HasApproved(e.db, actionID, owner)
}

// IsAuthorized reports whether the action currently holds a majority of
// the active owner set.
func (e *Engine) IsAuthorized(actionID quorum.ActionID) bool {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return executor.IsAuthorized(e.db, actionID)
}

// ActionID predicts the identifier the given steps would execute under if
// submitted now.
func (e *Engine) ActionID(steps []quorum.Step) quorum.ActionID {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return executor.ComputeActionID(steps, executor.Counter(e.db))
}

// ActionIDAt derives the identifier of the steps under an explicit
// counter value.
func (e *Engine) ActionIDAt(steps []quorum.Step, counter int64) quorum.ActionID {
	return executor.ComputeActionID(steps, counter)
}
