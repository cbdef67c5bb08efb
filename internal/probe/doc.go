// Package probe provides the built-in waiter kinds the scenario harness
// can gate a step on. A probe adapts one piece of asynchronous work — a
// simulated countdown, an HTTP readiness endpoint, a socket.io event —
// into a settle predicate the waiter registry can poll.
package probe
