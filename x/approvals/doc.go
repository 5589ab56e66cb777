/*
Package approvals keeps the per-action approval ledger: one boolean flag
per (action, owner) pair plus an aggregate counter per action.

Both the flag and the aggregate are mutated inside the same operation, so
the counter always equals the number of set flags. The ledger knows
nothing about owner epochs; standing is evaluated by the executor at
submission time against the current registry.
*/
package approvals
