// Package quorumtest provides shared helpers for the engine tests:
// deterministic keys, fresh addresses and store instances.
package quorumtest
