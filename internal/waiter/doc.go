// Package waiter implements the registry at the heart of waitgate: a
// process-wide store of (context, callback) pairs that a test-runner loop
// polls between asynchronous test steps.
//
// Each registered pair is a "waiter" — one asynchronous condition a test
// must wait on. A callback is a fast, synchronous predicate that reports
// whether its condition has settled. The registry models an
// AND-of-conditions gate: the run may proceed only once every registered
// callback reports settled.
//
// Registration and removal match by identity, not by value: the owner is
// compared by reference and the callback by function pointer. Registering
// an already-present pair is an idempotent no-op, and removing an absent
// pair is silently ignored.
package waiter
