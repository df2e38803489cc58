package remote

import (
	"github.com/gopherfabric/delegate/pkg/container"
	"github.com/gopherfabric/delegate/pkg/delegateerr"
	"github.com/gopherfabric/delegate/pkg/wire"
)

// Args2 is the wire shape for a two-argument remote call.
type Args2[A1, A2 any] struct {
	A1 A1
	A2 A2
}

// Remote2 is the two-argument analogue of Remote1.
type Remote2[A1, A2 any] struct {
	remoteID   uint16
	dispatcher Dispatcher
	serializer Serializer
	local      container.Unicast1[Args2[A1, A2]]
	onError    ErrorHandler
	seq        sequenceCounter
}

// Remote2Option configures a Remote2 at construction time.
type Remote2Option[A1, A2 any] func(*Remote2[A1, A2])

// WithLocal2 binds the delegate invoked when a matching frame is received.
func WithLocal2[A1, A2 any](d container.Unicast1[Args2[A1, A2]]) Remote2Option[A1, A2] {
	return func(r *Remote2[A1, A2]) { r.local = d }
}

// WithErrorHandler2 overrides the error callback.
func WithErrorHandler2[A1, A2 any](h ErrorHandler) Remote2Option[A1, A2] {
	return func(r *Remote2[A1, A2]) { r.onError = h }
}

// NewRemote2 binds remoteID, dispatcher and serializer for sending. It
// returns an error if A1 or A2's shape is one spec.md §4.3 rejects (see
// validateArgShape).
func NewRemote2[A1, A2 any](remoteID uint16, dispatcher Dispatcher, serializer Serializer, opts ...Remote2Option[A1, A2]) (*Remote2[A1, A2], error) {
	if err := validateArgShape(argShape[A1]()); err != nil {
		return nil, err
	}
	if err := validateArgShape(argShape[A2]()); err != nil {
		return nil, err
	}
	r := &Remote2[A1, A2]{remoteID: remoteID, dispatcher: dispatcher, serializer: serializer, onError: noopErrorHandler}
	for _, opt := range opts {
		opt(r)
	}
	return r, nil
}

// Invoke serializes (a1, a2) and dispatches a framed call.
func (r *Remote2[A1, A2]) Invoke(a1 A1, a2 A2) error {
	payload, err := r.serializer.Marshal(Args2[A1, A2]{A1: a1, A2: a2})
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
func (r *Remote2[A1, A2]) Receive(_ wire.Envelope, payload []byte) error {
	var args Args2[A1, A2]
	if err := r.serializer.Unmarshal(payload, &args); err != nil {
		err = marshalOrDecodeFail(err)
		r.onError(err)
		return err
	}
	return r.local.Invoke(args)
}

// RemoteID reports the bound remote identifier.
func (r *Remote2[A1, A2]) RemoteID() uint16 { return r.remoteID }
