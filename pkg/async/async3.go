package async

import (
	"github.com/gopherfabric/delegate/pkg/delegate"
	"github.com/gopherfabric/delegate/pkg/delegateerr"
	"github.com/gopherfabric/delegate/pkg/thread"
)

// Async3 is the three-argument analogue of Async0.
type Async3[A1, A2, A3, R any] struct {
	d       delegate.Delegate3[A1, A2, A3, R]
	target  *thread.Thread
	options options
}

// NewAsync3 binds d for invocation on target under the given options.
func NewAsync3[A1, A2, A3, R any](d delegate.Delegate3[A1, A2, A3, R], target *thread.Thread, opts ...Option) Async3[A1, A2, A3, R] {
	o := defaultOptions()
	for _, opt := range opts {
		opt(&o)
	}
	return Async3[A1, A2, A3, R]{d: d, target: target, options: o}
}

// Invoke calls the delegate directly if already running on target (spec.md
// §4.2's fast path); otherwise it marshals the call onto the target thread.
func (a Async3[A1, A2, A3, R]) Invoke(a1 A1, a2 A2, a3 A3) (R, delegateerr.Status, error) {
	var zero R
	if a.d.IsEmpty() {
		return zero, delegateerr.StatusFailed, delegateerr.ErrEmptyInvocation
	}
	return invokeOrMarshal(a.target, a.options, func() (R, error) { return a.d.Invoke(a1, a2, a3) })
}
