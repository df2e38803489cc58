package delegate

import "github.com/gopherfabric/delegate/pkg/delegateerr"

// Delegate3 is a delegate over a three-argument callable returning R.
type Delegate3[A1, A2, A3, R any] struct {
	kind     Kind
	fn       func(A1, A2, A3) R
	target   interface{}
	identity interface{}
}

// BindFree3 binds a free function. A nil fp produces an empty delegate.
func BindFree3[A1, A2, A3, R any](fp func(A1, A2, A3) R) Delegate3[A1, A2, A3, R] {
	if fp == nil {
		return Delegate3[A1, A2, A3, R]{}
	}
	return Delegate3[A1, A2, A3, R]{kind: KindFree, fn: fp, identity: fp}
}

// BindFreeIdentity3 is the adapter form of BindFree3; see BindFreeIdentity0.
func BindFreeIdentity3[A1, A2, A3, R any](identity interface{}, invoke func(A1, A2, A3) R) Delegate3[A1, A2, A3, R] {
	if invoke == nil {
		return Delegate3[A1, A2, A3, R]{}
	}
	return Delegate3[A1, A2, A3, R]{kind: KindFree, fn: invoke, identity: identity}
}

// BindMethod3 binds a non-owning (object, method) pair.
func BindMethod3[A1, A2, A3, R any](obj interface{}, fn func(A1, A2, A3) R) Delegate3[A1, A2, A3, R] {
	if fn == nil {
		return Delegate3[A1, A2, A3, R]{}
	}
	return Delegate3[A1, A2, A3, R]{kind: KindMethod, fn: fn, target: obj, identity: fn}
}

// BindMethodIdentity3 is the adapter form of BindMethod3; see
// BindMethodIdentity0.
func BindMethodIdentity3[A1, A2, A3, R any](obj interface{}, identityFn interface{}, invoke func(A1, A2, A3) R) Delegate3[A1, A2, A3, R] {
	if invoke == nil {
		return Delegate3[A1, A2, A3, R]{}
	}
	return Delegate3[A1, A2, A3, R]{kind: KindMethod, fn: invoke, target: obj, identity: identityFn}
}

// BindShared3 binds a shared-ownership (object, method) pair.
func BindShared3[T, A1, A2, A3, R any](obj Shared[T], fn func(A1, A2, A3) R) Delegate3[A1, A2, A3, R] {
	if fn == nil {
		return Delegate3[A1, A2, A3, R]{}
	}
	return Delegate3[A1, A2, A3, R]{kind: KindSharedMethod, fn: fn, target: obj, identity: fn}
}

// BindCallable3 stores a copy of a movable callable (closure).
func BindCallable3[A1, A2, A3, R any](fn func(A1, A2, A3) R) Delegate3[A1, A2, A3, R] {
	if fn == nil {
		return Delegate3[A1, A2, A3, R]{}
	}
	return Delegate3[A1, A2, A3, R]{kind: KindCallable, fn: fn, identity: fn}
}

// BindCallableIdentity3 is the adapter form of BindCallable3; see
// BindCallableIdentity0.
func BindCallableIdentity3[A1, A2, A3, R any](identity interface{}, invoke func(A1, A2, A3) R) Delegate3[A1, A2, A3, R] {
	if invoke == nil {
		return Delegate3[A1, A2, A3, R]{}
	}
	return Delegate3[A1, A2, A3, R]{kind: KindCallable, fn: invoke, identity: identity}
}

// IsEmpty reports whether the delegate is unbound.
func (d Delegate3[A1, A2, A3, R]) IsEmpty() bool { return d.kind == KindEmpty || d.fn == nil }

// Kind reports the binding kind.
func (d Delegate3[A1, A2, A3, R]) Kind() Kind { return d.kind }

// Invoke performs the bound call.
func (d Delegate3[A1, A2, A3, R]) Invoke(a1 A1, a2 A2, a3 A3) (R, error) {
	var zero R
	if d.IsEmpty() {
		return zero, delegateerr.ErrEmptyInvocation
	}
	return d.fn(a1, a2, a3), nil
}

// Clone deep-copies the delegate, bumping a shared-ownership target's
// refcount.
func (d Delegate3[A1, A2, A3, R]) Clone() Delegate3[A1, A2, A3, R] {
	if d.kind == KindSharedMethod {
		d.target = retainTarget(d.target)
	}
	return d
}

// Equals reports structural equality per spec.md §3.
func (d Delegate3[A1, A2, A3, R]) Equals(other Delegate3[A1, A2, A3, R]) bool {
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
