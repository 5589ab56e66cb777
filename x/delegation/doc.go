/*
Package delegation verifies off-path cryptographic assents and converts
them into ledger approvals.

A delegation is a bearer capability consumed exactly once. The signed
message binds together the owner, the action identifier, the submitting
executor and the owner's current nonce, so a collected signature can
neither be replayed after consumption (the nonce moved) nor be submitted
by anyone but the executor it was issued to.

Verification of each entry is independent; any failing entry aborts the
whole batch. Callers run VerifyAndConsume inside a store cache-wrap so a
late failure cannot leave earlier entries consumed.
*/
package delegation
