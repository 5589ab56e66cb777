package app

import (
	"sync"

	"github.com/onvault/quorum"
	"github.com/onvault/quorum/errors"
	"github.com/onvault/quorum/x/approvals"
	"github.com/onvault/quorum/x/delegation"
	"github.com/onvault/quorum/x/executor"
	"github.com/onvault/quorum/x/owners"
	"github.com/tendermint/tendermint/libs/log"
)

// ReceiptHook is an acknowledgment callback invoked when the engine is
// notified of an incoming asset transfer. Hooks are purely acceptance:
// they must not mutate engine state.
type ReceiptHook interface {
	OnAssetReceived(from quorum.Address, amount int64, detail []byte)
}

// Options configures a new Engine.
type Options struct {
	// DB is the store all engine state lives in. Required.
	DB quorum.CacheableKVStore

	// Backend carries out non-governance steps of authorized batches.
	// May be nil if every submitted batch is purely self-governance.
	Backend executor.StepExecutor

	// Hooks are notified of incoming asset transfers.
	Hooks []ReceiptHook

	// Logger defaults to a nop logger when unset.
	Logger log.Logger
}

// Engine is the facade over the whole authorization core. One Engine owns
// one store; all its mutating operations are serialized and atomic.
type Engine struct {
	mu      sync.RWMutex
	db      quorum.CacheableKVStore
	backend executor.StepExecutor
	hooks   []ReceiptHook
	logger  log.Logger
}

// NewEngine validates the options and builds an engine around the store.
func NewEngine(opts Options) (*Engine, error) {
	if opts.DB == nil {
		return nil, errors.Wrap(errors.ErrEmpty, "db")
	}
	logger := opts.Logger
	if logger == nil {
		logger = log.NewNopLogger()
	}
	return &Engine{
		db:      opts.DB,
		backend: opts.Backend,
		hooks:   opts.Hooks,
		logger:  logger.With("module", "quorum"),
	}, nil
}

// Initialize stores the given addresses as the version 0 owner set. It
// can succeed only once per store.
func (e *Engine) Initialize(addrs []quorum.Address) (quorum.Tags, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	tags, err := e.atomic(func(db quorum.KVStore) (quorum.Tags, error) {
		return owners.Initialize(db, addrs)
	})
	if err != nil {
		return nil, err
	}
	e.logger.Info("registry initialized", "owners", len(addrs))
	return tags, nil
}

// Approve records the caller's assent for the given action. The caller
// must be a current owner.
func (e *Engine) Approve(caller quorum.Address, actionID quorum.ActionID) (quorum.Tags, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	return e.atomic(func(db quorum.KVStore) (quorum.Tags, error) {
		if err := actionID.Validate(); err != nil {
			return nil, err
		}
		if !owners.IsOwner(db, caller) {
			return nil, errors.Wrapf(executor.ErrUnauthorizedCaller, "%s", caller)
		}
		return approvals.Approve(db, actionID, caller, caller)
	})
}

// Revoke withdraws the caller's earlier assent. It is not gated on
// current owner standing: a rotated-out owner can still clear their own
// stale approval.
func (e *Engine) Revoke(caller quorum.Address, actionID quorum.ActionID) (quorum.Tags, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	return e.atomic(func(db quorum.KVStore) (quorum.Tags, error) {
		if err := actionID.Validate(); err != nil {
			return nil, err
		}
		return approvals.Revoke(db, actionID, caller)
	})
}

// Submit runs the quorum-gated execution path for one batch. See
// executor.Submit for the exact semantics.
func (e *Engine) Submit(caller quorum.Address, steps []quorum.Step, dels []delegation.Delegation) (*executor.ExecuteResult, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	res, err := executor.Submit(e.db, e.backend, caller, steps, dels)
	if err != nil {
		e.logger.Debug("submission rejected", "cause", err.Error())
		return nil, err
	}
	e.logger.Info("batch executed",
		"action", res.ActionID.String(),
		"caller", caller.String(),
		"counter", res.Counter,
	)
	return res, nil
}

// AcknowledgeAsset notifies the engine of an incoming transfer. It only
// fans out to the registered hooks and reports a receipt tag; no engine
// state is touched.
func (e *Engine) AcknowledgeAsset(from quorum.Address, amount int64, detail []byte) quorum.Tags {
	for _, h := range e.hooks {
		h.OnAssetReceived(from, amount, detail)
	}
	return quorum.Tags{
		quorum.Pair("receipt:from", from.String()),
		quorum.PairBytes("receipt:detail", detail),
	}
}

// atomic runs fn inside a cache-wrap: written on success, discarded on
// any error, so no failed operation leaves partial state behind.
func (e *Engine) atomic(fn func(db quorum.KVStore) (quorum.Tags, error)) (quorum.Tags, error) {
	cache := e.db.CacheWrap()
	tags, err := fn(cache)
	if err != nil {
		cache.Discard()
		return nil, err
	}
	cache.Write()
	return tags, nil
}
