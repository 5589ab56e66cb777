/*
Package quorum defines the common vocabulary shared by the authorization
engine packages: addresses and conditions for identities, steps and action
identifiers for the execution path, result tags for emitted events, and the
key-value store interfaces every component persists through.

The actual logic lives in the subpackages. x/owners keeps the versioned
owner set, x/approvals keeps per-action approval bookkeeping, x/delegation
verifies off-path signed assents, and x/executor ties them together into
the quorum-gated, atomic batch execution path. The app package wraps all of
them behind a single serialized engine facade.
*/
package quorum
