package container

import "github.com/gopherfabric/delegate/pkg/delegate"

// Void is the return type every container-stored delegate uses, matching
// spec.md §4.4's "containers are typed over signatures returning ()/void".
type Void = struct{}

var voidValue = Void{}

// WrapFree0 binds a free zero-argument void function for storage in a
// Multicast0/SafeMulticast0. The delegate.BindFreeIdentity0 form is used
// instead of BindFree0 because fn is closed over by a trampoline that
// adapts its signature to return Void; every call to that trampoline
// literal shares one code pointer, so fn itself — not the trampoline — is
// the comparison key for Equals/Remove.
func WrapFree0(fn func()) delegate.Delegate0[Void] {
	if fn == nil {
		return delegate.Delegate0[Void]{}
	}
	return delegate.BindFreeIdentity0(fn, func() Void {
		fn()
		return voidValue
	})
}

// WrapCallable0 behaves like WrapFree0 but tags the binding as a closure
// copy (KindCallable) rather than a free function, matching the source
// distinction between a top-level function and a captured lambda.
func WrapCallable0(fn func()) delegate.Delegate0[Void] {
	if fn == nil {
		return delegate.Delegate0[Void]{}
	}
	return delegate.BindCallableIdentity0(fn, func() Void {
		fn()
		return voidValue
	})
}

// WrapFree1 binds a free one-argument void function.
func WrapFree1[A1 any](fn func(A1)) delegate.Delegate1[A1, Void] {
	if fn == nil {
		return delegate.Delegate1[A1, Void]{}
	}
	return delegate.BindFreeIdentity1[A1, Void](fn, func(a A1) Void {
		fn(a)
		return voidValue
	})
}

// WrapCallable1 behaves like WrapFree1 but tags the binding as KindCallable.
func WrapCallable1[A1 any](fn func(A1)) delegate.Delegate1[A1, Void] {
	if fn == nil {
		return delegate.Delegate1[A1, Void]{}
	}
	return delegate.BindCallableIdentity1[A1, Void](fn, func(a A1) Void {
		fn(a)
		return voidValue
	})
}

// WrapMethod1 binds a non-owning (object, method) pair for a one-argument
// void method. identity is the bound method value fn, which retains its
// distinctness per-receiver even though the invoke trampoline does not.
func WrapMethod1[A1 any](obj interface{}, fn func(A1)) delegate.Delegate1[A1, Void] {
	if fn == nil {
		return delegate.Delegate1[A1, Void]{}
	}
	return delegate.BindMethodIdentity1[A1, Void](obj, fn, func(a A1) Void {
		fn(a)
		return voidValue
	})
}
