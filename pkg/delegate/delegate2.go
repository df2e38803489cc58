package delegate

import "github.com/gopherfabric/delegate/pkg/delegateerr"

// Delegate2 is a delegate over a two-argument callable returning R.
type Delegate2[A1, A2, R any] struct {
	kind     Kind
	fn       func(A1, A2) R
	target   interface{}
	identity interface{}
}

// BindFree2 binds a free function. A nil fp produces an empty delegate.
func BindFree2[A1, A2, R any](fp func(A1, A2) R) Delegate2[A1, A2, R] {
	if fp == nil {
		return Delegate2[A1, A2, R]{}
	}
	return Delegate2[A1, A2, R]{kind: KindFree, fn: fp, identity: fp}
}

// BindFreeIdentity2 is the adapter form of BindFree2; see BindFreeIdentity0.
func BindFreeIdentity2[A1, A2, R any](identity interface{}, invoke func(A1, A2) R) Delegate2[A1, A2, R] {
	if invoke == nil {
		return Delegate2[A1, A2, R]{}
	}
	return Delegate2[A1, A2, R]{kind: KindFree, fn: invoke, identity: identity}
}

// BindMethod2 binds a non-owning (object, method) pair.
func BindMethod2[A1, A2, R any](obj interface{}, fn func(A1, A2) R) Delegate2[A1, A2, R] {
	if fn == nil {
		return Delegate2[A1, A2, R]{}
	}
	return Delegate2[A1, A2, R]{kind: KindMethod, fn: fn, target: obj, identity: fn}
}

// BindMethodIdentity2 is the adapter form of BindMethod2; see
// BindMethodIdentity0.
func BindMethodIdentity2[A1, A2, R any](obj interface{}, identityFn interface{}, invoke func(A1, A2) R) Delegate2[A1, A2, R] {
	if invoke == nil {
		return Delegate2[A1, A2, R]{}
	}
	return Delegate2[A1, A2, R]{kind: KindMethod, fn: invoke, target: obj, identity: identityFn}
}

// BindShared2 binds a shared-ownership (object, method) pair.
func BindShared2[T, A1, A2, R any](obj Shared[T], fn func(A1, A2) R) Delegate2[A1, A2, R] {
	if fn == nil {
		return Delegate2[A1, A2, R]{}
	}
	return Delegate2[A1, A2, R]{kind: KindSharedMethod, fn: fn, target: obj, identity: fn}
}

// BindCallable2 stores a copy of a movable callable (closure).
func BindCallable2[A1, A2, R any](fn func(A1, A2) R) Delegate2[A1, A2, R] {
	if fn == nil {
		return Delegate2[A1, A2, R]{}
	}
	return Delegate2[A1, A2, R]{kind: KindCallable, fn: fn, identity: fn}
}

// BindCallableIdentity2 is the adapter form of BindCallable2; see
// BindCallableIdentity0.
func BindCallableIdentity2[A1, A2, R any](identity interface{}, invoke func(A1, A2) R) Delegate2[A1, A2, R] {
	if invoke == nil {
		return Delegate2[A1, A2, R]{}
	}
	return Delegate2[A1, A2, R]{kind: KindCallable, fn: invoke, identity: identity}
}

// IsEmpty reports whether the delegate is unbound.
func (d Delegate2[A1, A2, R]) IsEmpty() bool { return d.kind == KindEmpty || d.fn == nil }

// Kind reports the binding kind.
func (d Delegate2[A1, A2, R]) Kind() Kind { return d.kind }

// Invoke performs the bound call.
func (d Delegate2[A1, A2, R]) Invoke(a1 A1, a2 A2) (R, error) {
	var zero R
	if d.IsEmpty() {
		return zero, delegateerr.ErrEmptyInvocation
	}
	return d.fn(a1, a2), nil
}

// Clone deep-copies the delegate, bumping a shared-ownership target's
// refcount.
func (d Delegate2[A1, A2, R]) Clone() Delegate2[A1, A2, R] {
	if d.kind == KindSharedMethod {
		d.target = retainTarget(d.target)
	}
	return d
}

// Equals reports structural equality per spec.md §3.
func (d Delegate2[A1, A2, R]) Equals(other Delegate2[A1, A2, R]) bool {
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
