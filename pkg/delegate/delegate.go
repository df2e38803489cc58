// Package delegate implements the L1 primitive of the delegate fabric: a
// value-typed handle to a callable of one fixed signature, with the four
// binding kinds from spec.md §3/§9 (free function, non-owning bound method,
// shared-owning bound method, owned callable copy).
//
// Go has no subclassing and no pointer-to-member-function type, so the
// "tagged variant of the bound target" from spec.md §9 is expressed as a
// Kind plus a small set of identity fields used only for Equals, and the
// actual invocation is always a plain Go func value. Binding a method is
// the idiomatic Go pattern of passing a bound method value (obj.Method)
// together with the receiver for identity tracking, rather than a C++-style
// member-pointer.
//
// One concrete type family exists per arity (Delegate0 .. Delegate3); Go
// generics have no variadic type parameter, so signatures beyond three
// arguments are out of scope for this module, matching the "parametric on
// one exact callable signature" non-goal of not erasing across unrelated
// signatures.
package delegate

import "reflect"

// Kind identifies which of the four binding patterns a delegate holds.
type Kind uint8

const (
	// KindEmpty is the zero value: an unbound delegate. Invoking it fails
	// with delegateerr.ErrEmptyInvocation.
	KindEmpty Kind = iota
	// KindFree binds a free function pointer.
	KindFree
	// KindMethod binds a non-owning (object, method) pair. The caller
	// guarantees the object outlives every invocation.
	KindMethod
	// KindSharedMethod binds a shared-ownership (object, method) pair; the
	// delegate keeps the object alive via Shared's refcount bookkeeping.
	KindSharedMethod
	// KindCallable stores a copy of a movable callable (closure or bound
	// value) with no separate identity tracking.
	KindCallable
)

func (k Kind) String() string {
	switch k {
	case KindEmpty:
		return "empty"
	case KindFree:
		return "free"
	case KindMethod:
		return "method"
	case KindSharedMethod:
		return "shared-method"
	case KindCallable:
		return "callable"
	default:
		return "unknown"
	}
}

// Shared wraps an owning (object, method) target. Cloning a Delegate bound
// via BindShared increments the share count (a plain Go copy of the
// Delegate value does not); this mirrors the source idiom's
// shared_ptr-backed method delegate without requiring manual destruction,
// since Go's GC keeps the pointee alive regardless — the counter exists so
// equality and diagnostics can observe share-count invariants, per
// spec.md §3's "copying a shared-ownership delegate increments the share
// count".
type Shared[T any] struct {
	Ptr      *T
	refcount *int32
}

// NewShared creates a Shared handle around ptr with an initial share count
// of one.
func NewShared[T any](ptr *T) Shared[T] {
	rc := int32(1)
	return Shared[T]{Ptr: ptr, refcount: &rc}
}

// RefCount returns the current share count.
func (s Shared[T]) RefCount() int32 {
	if s.refcount == nil {
		return 0
	}
	return *s.refcount
}

func (s Shared[T]) retain() Shared[T] {
	if s.refcount != nil {
		*s.refcount++
	}
	return s
}

// sharedRetainer lets Delegate.Clone bump a Shared[T]'s refcount without
// knowing T, since a generic instantiation's target is stored as a boxed
// interface{}.
type sharedRetainer interface {
	retainAny() interface{}
}

func (s Shared[T]) retainAny() interface{} {
	return s.retain()
}

// retainTarget bumps the refcount of target if it is a Shared[T] handle,
// returning the (possibly updated) value to store back on the delegate.
func retainTarget(target interface{}) interface{} {
	if r, ok := target.(sharedRetainer); ok {
		return r.retainAny()
	}
	return target
}

// funcPointer returns a stable identity for a func value, used to compare
// bound free functions and method values for equality. Two method values
// obtained from the same method expression share the same code pointer
// regardless of which instance produced the closure.
func funcPointer(fn interface{}) uintptr {
	v := reflect.ValueOf(fn)
	if !v.IsValid() || v.Kind() != reflect.Func {
		return 0
	}
	return v.Pointer()
}

func identityEqual(a, b interface{}) bool {
	if a == nil || b == nil {
		return a == b
	}
	av := reflect.ValueOf(a)
	bv := reflect.ValueOf(b)
	if av.Kind() == reflect.Ptr && bv.Kind() == reflect.Ptr {
		return av.Pointer() == bv.Pointer()
	}
	// Comparable values (e.g. Shared[T], which embeds a *int32 and *T) fall
	// back to Go's native == via a recover-guarded comparison, since not
	// every T is comparable.
	defer func() { recover() }()
	return a == b
}
