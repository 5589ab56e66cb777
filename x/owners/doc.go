/*
Package owners maintains the versioned set of principals recognized by the
engine.

Membership is epoch scoped: every owner record is keyed by the version it
belongs to and checks compare against the current version pointer. Bumping
the version on rotation therefore invalidates every prior owner in one
write, without touching their individual records. Past rosters stay in the
store for audit queries.

Rotation is not a public entry point of the engine. It is only reachable
as a self-targeted step of an authorized batch, dispatched by x/executor,
so replacing the owner set obeys exactly the same quorum rule as any other
action.
*/
package owners
