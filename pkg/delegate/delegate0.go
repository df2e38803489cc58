package delegate

import "github.com/gopherfabric/delegate/pkg/delegateerr"

// Delegate0 is a delegate over a zero-argument callable returning R.
type Delegate0[R any] struct {
	kind     Kind
	fn       func() R
	target   interface{} // receiver identity for KindMethod/KindSharedMethod
	identity interface{} // comparison key; defaults to fn itself, see BindFreeIdentity0
}

// BindFree0 binds a free function. A nil fp produces an empty delegate.
func BindFree0[R any](fp func() R) Delegate0[R] {
	if fp == nil {
		return Delegate0[R]{}
	}
	return Delegate0[R]{kind: KindFree, fn: fp, identity: fp}
}

// BindFreeIdentity0 binds an already-adapted invoke closure while keeping
// identity (the pre-adaptation callback) for Equals. Callers that wrap a
// caller-supplied function in a trampoline closure — as the container
// package's void adapters do — must use this instead of BindFree0, since
// every call to the same wrapping function literal shares one code address
// regardless of what it closes over.
func BindFreeIdentity0[R any](identity interface{}, invoke func() R) Delegate0[R] {
	if invoke == nil {
		return Delegate0[R]{}
	}
	return Delegate0[R]{kind: KindFree, fn: invoke, identity: identity}
}

// BindMethod0 binds a non-owning (object, method) pair. obj is kept only
// for identity comparisons; fn is the already-bound method value (e.g.
// obj.Handler). The caller guarantees obj outlives every invocation.
func BindMethod0[R any](obj interface{}, fn func() R) Delegate0[R] {
	if fn == nil {
		return Delegate0[R]{}
	}
	return Delegate0[R]{kind: KindMethod, fn: fn, target: obj, identity: fn}
}

// BindMethodIdentity0 binds a non-owning (object, method) pair whose invoke
// closure is an adapter; identityFn is the original bound method value used
// for Equals instead of invoke.
func BindMethodIdentity0[R any](obj interface{}, identityFn interface{}, invoke func() R) Delegate0[R] {
	if invoke == nil {
		return Delegate0[R]{}
	}
	return Delegate0[R]{kind: KindMethod, fn: invoke, target: obj, identity: identityFn}
}

// BindShared0 binds a shared-ownership (object, method) pair. Cloning the
// returned delegate increments the Shared handle's refcount.
func BindShared0[T, R any](obj Shared[T], fn func() R) Delegate0[R] {
	if fn == nil {
		return Delegate0[R]{}
	}
	return Delegate0[R]{kind: KindSharedMethod, fn: fn, target: obj, identity: fn}
}

// BindCallable0 stores a copy of a movable callable (closure).
func BindCallable0[R any](fn func() R) Delegate0[R] {
	if fn == nil {
		return Delegate0[R]{}
	}
	return Delegate0[R]{kind: KindCallable, fn: fn, identity: fn}
}

// BindCallableIdentity0 stores an adapted invoke closure tagged KindCallable,
// comparing by identity rather than invoke.
func BindCallableIdentity0[R any](identity interface{}, invoke func() R) Delegate0[R] {
	if invoke == nil {
		return Delegate0[R]{}
	}
	return Delegate0[R]{kind: KindCallable, fn: invoke, identity: identity}
}

// IsEmpty reports whether the delegate is unbound.
func (d Delegate0[R]) IsEmpty() bool { return d.kind == KindEmpty || d.fn == nil }

// Kind reports the binding kind.
func (d Delegate0[R]) Kind() Kind { return d.kind }

// Invoke performs the bound call. An empty delegate fails with
// delegateerr.ErrEmptyInvocation.
func (d Delegate0[R]) Invoke() (R, error) {
	var zero R
	if d.IsEmpty() {
		return zero, delegateerr.ErrEmptyInvocation
	}
	return d.fn(), nil
}

// Clone deep-copies the delegate; cloning a shared-ownership delegate
// increments the underlying Shared handle's share count.
func (d Delegate0[R]) Clone() Delegate0[R] {
	if d.kind == KindSharedMethod {
		d.target = retainTarget(d.target)
	}
	return d
}

// Equals reports structural equality per spec.md §3: same kind, same
// signature (guaranteed by the type parameter), and targets that refer to
// the same underlying callable.
func (d Delegate0[R]) Equals(other Delegate0[R]) bool {
	if d.kind != other.kind {
		return false
	}
	if d.kind == KindEmpty {
		return true
	}
	if funcPointer(d.identity) != funcPointer(other.identity) {
		return false
	}
	switch d.kind {
	case KindMethod, KindSharedMethod:
		return identityEqual(d.target, other.target)
	default:
		return true
	}
}
