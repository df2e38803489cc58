package async

import (
	"github.com/gopherfabric/delegate/pkg/delegate"
	"github.com/gopherfabric/delegate/pkg/delegateerr"
	"github.com/gopherfabric/delegate/pkg/thread"
)

// Async0 wraps a zero-argument delegate for marshaled invocation onto a
// target thread.Thread.
type Async0[R any] struct {
	d       delegate.Delegate0[R]
	target  *thread.Thread
	options options
}

// NewAsync0 binds d for invocation on target under the given options.
func NewAsync0[R any](d delegate.Delegate0[R], target *thread.Thread, opts ...Option) Async0[R] {
	o := defaultOptions()
	for _, opt := range opts {
		opt(&o)
	}
	return Async0[R]{d: d, target: target, options: o}
}

// Invoke calls the delegate directly if already running on target (spec.md
// §4.2's fast path); otherwise it marshals the call onto target and waits
// according to the configured WaitPolicy.
func (a Async0[R]) Invoke() (R, delegateerr.Status, error) {
	var zero R
	if a.d.IsEmpty() {
		return zero, delegateerr.StatusFailed, delegateerr.ErrEmptyInvocation
	}
	return invokeOrMarshal(a.target, a.options, a.d.Invoke)
}
