/*
Package errors implements the coded error handling used across the engine.

Every error returned by the engine wraps one of the registered root
errors. This allows callers to test error kinds with the root's Is method
without string matching, and gives each failure class a stable numeric
code for audit tooling.

Common root errors are declared here. Component packages register their
own domain-specific roots (owner validation, approval state, signature
verification, step execution) with codes from a reserved range, so no two
roots ever share a code.

Use Wrap and Wrapf to add context while preserving the root cause and the
stack trace collected at the lowest frame.
*/
package errors
