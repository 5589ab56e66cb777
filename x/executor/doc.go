/*
Package executor ties registry, ledger and delegation verification into
the quorum-gated execution path.

Submit derives the action identifier from the step list and the current
global action counter, absorbs any attached delegations, evaluates the
majority rule against the current owner count, and only then executes the
steps in order as one atomic unit. Everything runs inside one store
cache-wrap: the first failure discards all of it, including approvals
consumed from the same submission, and leaves the counter untouched.

Steps addressed to the executor's own governance address are dispatched
internally instead of going to the backend. That is the only path to
owner rotation, so self-governance obeys exactly the same quorum rule as
any other action.
*/
package executor
