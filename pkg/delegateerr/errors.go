// Package delegateerr defines the error taxonomy shared by every layer of
// the delegate fabric. Errors are plain sentinel values, following the
// package-level var-block style of the teacher's state machine errors,
// rather than a hierarchy of exception types.
package delegateerr

import "errors"

var (
	// ErrEmptyInvocation is returned when an unbound delegate is invoked.
	// Unlike the other sentinels here, this one marks a programming error:
	// callers may choose to treat it as fatal.
	ErrEmptyInvocation = errors.New("delegate: invoke called on an empty delegate")

	// ErrThreadNotRunning is returned when an enqueue is attempted before a
	// Thread has started or after it has stopped.
	ErrThreadNotRunning = errors.New("thread: not running")

	// ErrThreadAlreadyRunning is returned by Start when called twice.
	ErrThreadAlreadyRunning = errors.New("thread: already running")

	// ErrQueueFull is returned when a bounded queue rejects an enqueue under
	// the reject-with-error backpressure policy.
	ErrQueueFull = errors.New("thread: queue is full")

	// ErrTimeout is reported when a blocking async call's deadline elapses
	// before the completion slot is signaled.
	ErrTimeout = errors.New("async: call timed out")

	// ErrCancelled is reserved for a hosting application whose Thread
	// implementation drops queued work on shutdown instead of draining it;
	// this module's own thread.Thread always drains (see DESIGN.md), so
	// neither this nor StatusCancelled is produced internally.
	ErrCancelled = errors.New("thread: message cancelled by shutdown")

	// ErrDispatchFailed is returned by the remote wrappers' Invoke when the
	// Serializer cannot encode the call's arguments, so nothing is
	// dispatched. An error returned by the Dispatcher itself is passed to the
	// error handler and returned unchanged; it is not wrapped in
	// ErrDispatchFailed.
	ErrDispatchFailed = errors.New("remote: dispatch failed")

	// ErrFramingError is reported when a received frame lacks the sync
	// marker or otherwise fails to parse as an envelope.
	ErrFramingError = errors.New("wire: framing error")

	// ErrDecodeFailed is reported when a Serializer could not reconstruct
	// arguments from a received payload.
	ErrDecodeFailed = errors.New("remote: decode failed")

	// ErrAckTimeout is reported by the reliability layer after exhausting
	// its retry budget without observing an ACK.
	ErrAckTimeout = errors.New("reliability: ack timeout after retries")
)

// Status is a coarse outcome classifier returned by the async wrappers'
// Invoke alongside the value and the error, so a caller can tell a
// zero-value result on failure from a genuine one (spec.md §7's
// "separately-queryable status"). The remote wrappers return only an error.
type Status uint8

const (
	// StatusSuccess means the call completed and its return value (if any)
	// is valid.
	StatusSuccess Status = iota
	// StatusPending means a non-blocking call was enqueued and the caller
	// did not wait for a result.
	StatusPending
	// StatusTimeout means a blocking call's deadline elapsed.
	StatusTimeout
	// StatusCancelled means the message was dropped by thread shutdown.
	StatusCancelled
	// StatusFailed means the call could not be made or the callee failed
	// (empty delegate, enqueue rejected, callee error); the concrete cause
	// is the error returned alongside it.
	StatusFailed
)

func (s Status) String() string {
	switch s {
	case StatusSuccess:
		return "success"
	case StatusPending:
		return "pending"
	case StatusTimeout:
		return "timeout"
	case StatusCancelled:
		return "cancelled"
	case StatusFailed:
		return "failed"
	default:
		return "unknown"
	}
}
