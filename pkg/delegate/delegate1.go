package delegate

import "github.com/gopherfabric/delegate/pkg/delegateerr"

// Delegate1 is a delegate over a one-argument callable returning R.
type Delegate1[A1, R any] struct {
	kind     Kind
	fn       func(A1) R
	target   interface{}
	identity interface{}
}

// BindFree1 binds a free function. A nil fp produces an empty delegate.
func BindFree1[A1, R any](fp func(A1) R) Delegate1[A1, R] {
	if fp == nil {
		return Delegate1[A1, R]{}
	}
	return Delegate1[A1, R]{kind: KindFree, fn: fp, identity: fp}
}

// BindFreeIdentity1 is the adapter form of BindFree1; see BindFreeIdentity0.
func BindFreeIdentity1[A1, R any](identity interface{}, invoke func(A1) R) Delegate1[A1, R] {
	if invoke == nil {
		return Delegate1[A1, R]{}
	}
	return Delegate1[A1, R]{kind: KindFree, fn: invoke, identity: identity}
}

// BindMethod1 binds a non-owning (object, method) pair.
func BindMethod1[A1, R any](obj interface{}, fn func(A1) R) Delegate1[A1, R] {
	if fn == nil {
		return Delegate1[A1, R]{}
	}
	return Delegate1[A1, R]{kind: KindMethod, fn: fn, target: obj, identity: fn}
}

// BindMethodIdentity1 is the adapter form of BindMethod1; see
// BindMethodIdentity0.
func BindMethodIdentity1[A1, R any](obj interface{}, identityFn interface{}, invoke func(A1) R) Delegate1[A1, R] {
	if invoke == nil {
		return Delegate1[A1, R]{}
	}
	return Delegate1[A1, R]{kind: KindMethod, fn: invoke, target: obj, identity: identityFn}
}

// BindShared1 binds a shared-ownership (object, method) pair.
func BindShared1[T, A1, R any](obj Shared[T], fn func(A1) R) Delegate1[A1, R] {
	if fn == nil {
		return Delegate1[A1, R]{}
	}
	return Delegate1[A1, R]{kind: KindSharedMethod, fn: fn, target: obj, identity: fn}
}

// BindCallable1 stores a copy of a movable callable (closure).
func BindCallable1[A1, R any](fn func(A1) R) Delegate1[A1, R] {
	if fn == nil {
		return Delegate1[A1, R]{}
	}
	return Delegate1[A1, R]{kind: KindCallable, fn: fn, identity: fn}
}

// BindCallableIdentity1 is the adapter form of BindCallable1; see
// BindCallableIdentity0.
func BindCallableIdentity1[A1, R any](identity interface{}, invoke func(A1) R) Delegate1[A1, R] {
	if invoke == nil {
		return Delegate1[A1, R]{}
	}
	return Delegate1[A1, R]{kind: KindCallable, fn: invoke, identity: identity}
}

// IsEmpty reports whether the delegate is unbound.
func (d Delegate1[A1, R]) IsEmpty() bool { return d.kind == KindEmpty || d.fn == nil }

// Kind reports the binding kind.
func (d Delegate1[A1, R]) Kind() Kind { return d.kind }

// Invoke performs the bound call. An empty delegate fails with
// delegateerr.ErrEmptyInvocation.
func (d Delegate1[A1, R]) Invoke(a1 A1) (R, error) {
	var zero R
	if d.IsEmpty() {
		return zero, delegateerr.ErrEmptyInvocation
	}
	return d.fn(a1), nil
}

// Clone deep-copies the delegate, bumping a shared-ownership target's
// refcount.
func (d Delegate1[A1, R]) Clone() Delegate1[A1, R] {
	if d.kind == KindSharedMethod {
		d.target = retainTarget(d.target)
	}
	return d
}

// Equals reports structural equality per spec.md §3.
func (d Delegate1[A1, R]) Equals(other Delegate1[A1, R]) bool {
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
