package remote

import (
	"github.com/gopherfabric/delegate/pkg/container"
	"github.com/gopherfabric/delegate/pkg/delegateerr"
	"github.com/gopherfabric/delegate/pkg/wire"
)

// Remote1 is the one-argument analogue of Remote0.
type Remote1[A1 any] struct {
	remoteID   uint16
	dispatcher Dispatcher
	serializer Serializer
	local      container.Unicast1[A1]
	onError    ErrorHandler
	seq        sequenceCounter
}

// Remote1Option configures a Remote1 at construction time.
type Remote1Option[A1 any] func(*Remote1[A1])

// WithLocal1 binds the delegate invoked when a matching frame is received.
func WithLocal1[A1 any](d container.Unicast1[A1]) Remote1Option[A1] {
	return func(r *Remote1[A1]) { r.local = d }
}

// WithErrorHandler1 overrides the error callback invoked on Dispatch,
// encode, or decode failure.
func WithErrorHandler1[A1 any](h ErrorHandler) Remote1Option[A1] {
	return func(r *Remote1[A1]) { r.onError = h }
}

// NewRemote1 binds remoteID, dispatcher and serializer for sending. It
// returns an error if A1's shape is one spec.md §4.3 rejects (see
// validateArgShape).
func NewRemote1[A1 any](remoteID uint16, dispatcher Dispatcher, serializer Serializer, opts ...Remote1Option[A1]) (*Remote1[A1], error) {
	if err := validateArgShape(argShape[A1]()); err != nil {
		return nil, err
	}
	r := &Remote1[A1]{remoteID: remoteID, dispatcher: dispatcher, serializer: serializer, onError: noopErrorHandler}
	for _, opt := range opts {
		opt(r)
	}
	return r, nil
}

// Invoke serializes a1 and dispatches a framed call for this RemoteID.
// Restricting the argument shape to whatever serializer supports (JSON by
// default) is spec.md §4.3's documented non-goal of transparently remoting
// arbitrary Go values — channels, funcs, and unexported-field-only structs
// cannot cross the wire.
func (r *Remote1[A1]) Invoke(a1 A1) error {
	payload, err := r.serializer.Marshal(a1)
	if err != nil {
		r.onError(err)
		return delegateerr.ErrDispatchFailed
	}
	env := wire.Envelope{RemoteID: r.remoteID, Sequence: r.seq.next(), Length: uint16(len(payload))}
	if err := r.dispatcher.Dispatch(env, payload); err != nil {
		r.onError(err)
		return err
	}
	return nil
}

// Receive decodes payload and runs the locally bound delegate.
func (r *Remote1[A1]) Receive(_ wire.Envelope, payload []byte) error {
	var a1 A1
	if err := r.serializer.Unmarshal(payload, &a1); err != nil {
		err = marshalOrDecodeFail(err)
		r.onError(err)
		return err
	}
	return r.local.Invoke(a1)
}

// RemoteID reports the bound remote identifier.
func (r *Remote1[A1]) RemoteID() uint16 { return r.remoteID }
