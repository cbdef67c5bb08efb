package waiter

import (
	"reflect"
	"sync"
)

// Callback is a waiter predicate. It receives the owner it was registered
// with and reports whether the condition it guards has settled. Callbacks
// must be fast and synchronous, and must not call back into the Registry.
type Callback func(owner any) bool

// noContext is an unexported type so no caller-supplied owner can collide
// with the sentinel.
type noContext struct{}

// NoContext is the canonical "no owner" sentinel used when a waiter is
// registered without an explicit context.
var NoContext any = noContext{}

// entry is one registered (owner, callback) pair. The function pointer is
// captured once at registration so duplicate checks and removals do not
// re-reflect on every comparison.
type entry struct {
	owner any
	check Callback
	fn    uintptr
}

// Registry is an explicitly owned waiter store. The zero value is not
// meant for use; create instances with NewRegistry so each test-runner
// harness gets its own isolated registry.
//
// All operations are serialized by an internal mutex, which also covers
// the check sweep: the pair sequence can never be observed mid-mutation.
type Registry struct {
	mu      sync.Mutex
	waiters []entry
}

// NewRegistry creates a new, empty waiter registry.
func NewRegistry() *Registry {
	return &Registry{}
}

// Register adds a waiter with no owner context. It is shorthand for
// RegisterContext(NoContext, check).
func (r *Registry) Register(check Callback) {
	r.RegisterContext(NoContext, check)
}

// RegisterContext adds the (owner, check) pair to the registry, preserving
// insertion order. If an identical pair is already registered the call is
// an idempotent no-op; duplicate registration is not an error.
//
// Identity is what is compared: the owner by reference, the callback by
// function pointer. Note that two closures created from the same function
// literal share a function pointer — to register them as distinct waiters,
// give them distinct owners.
func (r *Registry) RegisterContext(owner any, check Callback) {
	if check == nil {
		panic("waiter: Register called with a nil callback")
	}
	fn := reflect.ValueOf(check).Pointer()

	r.mu.Lock()
	defer r.mu.Unlock()
	for _, e := range r.waiters {
		if e.fn == fn && sameIdentity(e.owner, owner) {
			return
		}
	}
	r.waiters = append(r.waiters, entry{owner: owner, check: check, fn: fn})
}

// Unregister removes a waiter that was registered without an owner
// context. It is shorthand for UnregisterContext(NoContext, check).
func (r *Registry) Unregister(check Callback) {
	r.UnregisterContext(NoContext, check)
}

// UnregisterContext removes the first pair matching (owner, check) by
// identity, keeping the relative order of all remaining entries. Removal
// is best-effort: an empty registry or a pair that was never registered
// is silently ignored.
func (r *Registry) UnregisterContext(owner any, check Callback) {
	if check == nil {
		return
	}
	fn := reflect.ValueOf(check).Pointer()

	r.mu.Lock()
	defer r.mu.Unlock()
	for i, e := range r.waiters {
		if e.fn == fn && sameIdentity(e.owner, owner) {
			r.waiters = append(r.waiters[:i], r.waiters[i+1:]...)
			return
		}
	}
}

// CheckWaiters runs one settle sweep and reports whether at least one
// waiter is still pending. An empty registry settles immediately.
//
// Callbacks are invoked in registration order, each with its paired
// owner. The sweep short-circuits on the first callback that reports
// not-settled; callbacks after it are not invoked in that sweep. The
// caller is expected to re-invoke CheckWaiters (polling) until it
// reports settled.
//
// The registry does no fault isolation: a panicking callback aborts the
// sweep and propagates to the caller unmodified.
func (r *Registry) CheckWaiters() bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, e := range r.waiters {
		if !e.check(e.owner) {
			return true
		}
	}
	return false
}

// Len returns the number of currently registered waiters.
func (r *Registry) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.waiters)
}

// sameIdentity reports whether a and b are the same owner by reference
// identity. Pointer-like kinds compare by referent; other comparable
// values fall back to ==. Uncomparable non-pointer values never match.
func sameIdentity(a, b any) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	ra, rb := reflect.ValueOf(a), reflect.ValueOf(b)
	if ra.Type() != rb.Type() {
		return false
	}
	switch ra.Kind() {
	case reflect.Pointer, reflect.Chan, reflect.Map, reflect.Slice, reflect.Func, reflect.UnsafePointer:
		return ra.Pointer() == rb.Pointer()
	}
	if ra.Type().Comparable() {
		return a == b
	}
	return false
}
