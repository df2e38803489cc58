package async

import (
	"github.com/gopherfabric/delegate/pkg/delegate"
	"github.com/gopherfabric/delegate/pkg/delegateerr"
	"github.com/gopherfabric/delegate/pkg/thread"
)

// Async1 is the one-argument analogue of Async0.
type Async1[A1, R any] struct {
	d       delegate.Delegate1[A1, R]
	target  *thread.Thread
	options options
}

// NewAsync1 binds d for invocation on target under the given options.
func NewAsync1[A1, R any](d delegate.Delegate1[A1, R], target *thread.Thread, opts ...Option) Async1[A1, R] {
	o := defaultOptions()
	for _, opt := range opts {
		opt(&o)
	}
	return Async1[A1, R]{d: d, target: target, options: o}
}

// Invoke calls the delegate directly if already running on target (spec.md
// §4.2's fast path). Otherwise it marshals the call with a1 snapshotted by
// value (Go's normal argument-passing semantics already give every
// enqueued call its own copy, satisfying spec.md §4.2's cross-thread
// argument-snapshot rule with no extra bookkeeping).
func (a Async1[A1, R]) Invoke(a1 A1) (R, delegateerr.Status, error) {
	var zero R
	if a.d.IsEmpty() {
		return zero, delegateerr.StatusFailed, delegateerr.ErrEmptyInvocation
	}
	return invokeOrMarshal(a.target, a.options, func() (R, error) { return a.d.Invoke(a1) })
}
