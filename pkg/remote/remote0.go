package remote

import (
	"github.com/gopherfabric/delegate/pkg/container"
	"github.com/gopherfabric/delegate/pkg/wire"
)

// Remote0 wraps a zero-argument void delegate for remote dispatch.
// Invoke sends an empty-payload frame; Receive runs the locally bound
// delegate when a frame for this RemoteID arrives.
type Remote0 struct {
	remoteID   uint16
	dispatcher Dispatcher
	local      container.Unicast0
	onError    ErrorHandler
	seq        sequenceCounter
}

// NewRemote0 binds remoteID and dispatcher for sending; local, if set via
// WithLocal0, is invoked on Receive.
func NewRemote0(remoteID uint16, dispatcher Dispatcher, opts ...Remote0Option) *Remote0 {
	r := &Remote0{remoteID: remoteID, dispatcher: dispatcher, onError: noopErrorHandler}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Remote0Option configures a Remote0 at construction time.
type Remote0Option func(*Remote0)

// WithLocal0 binds the delegate invoked when a matching frame is received.
func WithLocal0(d container.Unicast0) Remote0Option {
	return func(r *Remote0) { r.local = d }
}

// WithErrorHandler0 overrides the error callback invoked on Dispatch
// failure. Remote0 carries no payload, so Receive never calls it.
func WithErrorHandler0(h ErrorHandler) Remote0Option {
	return func(r *Remote0) { r.onError = h }
}

// Invoke sends a zero-length frame for this RemoteID.
func (r *Remote0) Invoke() error {
	env := wire.Envelope{RemoteID: r.remoteID, Sequence: r.seq.next(), Length: 0}
	if err := r.dispatcher.Dispatch(env, nil); err != nil {
		r.onError(err)
		return err
	}
	return nil
}

// Receive runs the locally bound delegate for an inbound frame.
func (r *Remote0) Receive(wire.Envelope, []byte) error {
	return r.local.Invoke()
}

// RemoteID reports the bound remote identifier.
func (r *Remote0) RemoteID() uint16 { return r.remoteID }
