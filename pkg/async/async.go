// Package async implements the L2 async-invocation wrapper of spec.md
// §4.2: a delegate bound to a target thread.Thread, invoked by marshaling
// the call onto that thread's queue and then waiting (or not) according to
// a WaitPolicy. Per spec.md §4.2 step 1, Invoke first checks whether the
// caller is already running on the target thread's own worker goroutine
// (via thread.CurrentID()) and, if so, calls the delegate directly instead
// of marshaling — this is both the documented fast path and the only way
// to avoid a self-deadlock when a task running on Thread T issues a
// blocking Async*.Invoke back onto T itself.
//
// The source's refcounted completion slot (guarding the race between a
// caller's timeout firing and the target thread finishing the call around
// the same time, spec.md §5) is replaced here by a capacity-1 buffered
// result channel: the worker's send never blocks regardless of whether a
// timed-out caller is still listening, so nothing leaks and nothing needs
// manual refcounting. See DESIGN.md for the full rationale.
package async

import (
	"time"

	"github.com/gopherfabric/delegate/pkg/container"
	"github.com/gopherfabric/delegate/pkg/delegateerr"
	"github.com/gopherfabric/delegate/pkg/thread"
)

// WaitPolicy selects how Invoke waits for the marshaled call to complete.
type WaitPolicy int

const (
	// NonBlocking enqueues the call and returns immediately with
	// delegateerr.StatusPending; the result is discarded.
	NonBlocking WaitPolicy = iota
	// BlockingInfinite waits for the call to complete, however long that
	// takes.
	BlockingInfinite
	// BlockingDeadline waits up to a configured duration, failing with
	// delegateerr.ErrTimeout if it elapses first.
	BlockingDeadline
)

type result[R any] struct {
	value R
	err   error
}

// options holds the settings shared by every arity's constructor.
type options struct {
	policy   WaitPolicy
	deadline time.Duration
	priority container.Priority
}

func defaultOptions() options {
	return options{policy: NonBlocking, priority: container.Normal}
}

// Option configures an Async wrapper at construction time.
type Option func(*options)

// WithWaitPolicy sets the wait policy. Defaults to NonBlocking.
func WithWaitPolicy(p WaitPolicy) Option {
	return func(o *options) { o.policy = p }
}

// WithDeadline sets the timeout used by BlockingDeadline.
func WithDeadline(d time.Duration) Option {
	return func(o *options) { o.deadline = d }
}

// WithPriority sets the priority the marshaled call is enqueued at.
// Defaults to container.Normal.
func WithPriority(p container.Priority) Option {
	return func(o *options) { o.priority = p }
}

// onTargetThread reports whether the calling goroutine is already target's
// own worker goroutine, per spec.md §4.2 step 1.
func onTargetThread(target *thread.Thread) bool {
	if target == nil {
		return false
	}
	id, ok := thread.CurrentID()
	return ok && id == target.ID()
}

// invokeOrMarshal implements spec.md §4.2's three-step Invoke contract for
// every arity: call run directly when already on the target thread (the
// fast path), otherwise marshal it through enqueueAndWait.
func invokeOrMarshal[R any](target *thread.Thread, opts options, run func() (R, error)) (R, delegateerr.Status, error) {
	if onTargetThread(target) {
		var zero R
		v, err := run()
		if err != nil {
			return zero, delegateerr.StatusFailed, err
		}
		return v, delegateerr.StatusSuccess, nil
	}
	return enqueueAndWait(target, opts, run)
}

func enqueueAndWait[R any](target *thread.Thread, opts options, run func() (R, error)) (R, delegateerr.Status, error) {
	var zero R
	if target == nil {
		return zero, delegateerr.StatusFailed, delegateerr.ErrThreadNotRunning
	}

	if opts.policy == NonBlocking {
		err := target.Enqueue(thread.Task{Priority: opts.priority, Invoke: func() { run() }})
		if err != nil {
			return zero, delegateerr.StatusFailed, err
		}
		return zero, delegateerr.StatusPending, nil
	}

	done := make(chan result[R], 1)
	err := target.Enqueue(thread.Task{Priority: opts.priority, Invoke: func() {
		v, rerr := run()
		done <- result[R]{value: v, err: rerr}
	}})
	if err != nil {
		return zero, delegateerr.StatusFailed, err
	}

	switch opts.policy {
	case BlockingInfinite:
		r := <-done
		if r.err != nil {
			return zero, delegateerr.StatusFailed, r.err
		}
		return r.value, delegateerr.StatusSuccess, nil
	default: // BlockingDeadline
		timer := time.NewTimer(opts.deadline)
		defer timer.Stop()
		select {
		case r := <-done:
			if r.err != nil {
				return zero, delegateerr.StatusFailed, r.err
			}
			return r.value, delegateerr.StatusSuccess, nil
		case <-timer.C:
			return zero, delegateerr.StatusTimeout, delegateerr.ErrTimeout
		}
	}
}
