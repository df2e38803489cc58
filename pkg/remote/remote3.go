package remote

import (
	"github.com/gopherfabric/delegate/pkg/container"
	"github.com/gopherfabric/delegate/pkg/delegateerr"
	"github.com/gopherfabric/delegate/pkg/wire"
)

// Args3 is the wire shape for a three-argument remote call.
type Args3[A1, A2, A3 any] struct {
	A1 A1
	A2 A2
	A3 A3
}

// Remote3 is the three-argument analogue of Remote1.
type Remote3[A1, A2, A3 any] struct {
	remoteID   uint16
	dispatcher Dispatcher
	serializer Serializer
	local      container.Unicast1[Args3[A1, A2, A3]]
	onError    ErrorHandler
	seq        sequenceCounter
}

// Remote3Option configures a Remote3 at construction time.
type Remote3Option[A1, A2, A3 any] func(*Remote3[A1, A2, A3])

// WithLocal3 binds the delegate invoked when a matching frame is received.
func WithLocal3[A1, A2, A3 any](d container.Unicast1[Args3[A1, A2, A3]]) Remote3Option[A1, A2, A3] {
	return func(r *Remote3[A1, A2, A3]) { r.local = d }
}

// WithErrorHandler3 overrides the error callback.
func WithErrorHandler3[A1, A2, A3 any](h ErrorHandler) Remote3Option[A1, A2, A3] {
	return func(r *Remote3[A1, A2, A3]) { r.onError = h }
}

// NewRemote3 binds remoteID, dispatcher and serializer for sending. It
// returns an error if A1, A2, or A3's shape is one spec.md §4.3 rejects
// (see validateArgShape).
func NewRemote3[A1, A2, A3 any](remoteID uint16, dispatcher Dispatcher, serializer Serializer, opts ...Remote3Option[A1, A2, A3]) (*Remote3[A1, A2, A3], error) {
	if err := validateArgShape(argShape[A1]()); err != nil {
		return nil, err
	}
	if err := validateArgShape(argShape[A2]()); err != nil {
		return nil, err
	}
	if err := validateArgShape(argShape[A3]()); err != nil {
		return nil, err
	}
	r := &Remote3[A1, A2, A3]{remoteID: remoteID, dispatcher: dispatcher, serializer: serializer, onError: noopErrorHandler}
	for _, opt := range opts {
		opt(r)
	}
	return r, nil
}

// Invoke serializes (a1, a2, a3) and dispatches a framed call.
func (r *Remote3[A1, A2, A3]) Invoke(a1 A1, a2 A2, a3 A3) error {
	payload, err := r.serializer.Marshal(Args3[A1, A2, A3]{A1: a1, A2: a2, A3: a3})
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
func (r *Remote3[A1, A2, A3]) Receive(_ wire.Envelope, payload []byte) error {
	var args Args3[A1, A2, A3]
	if err := r.serializer.Unmarshal(payload, &args); err != nil {
		err = marshalOrDecodeFail(err)
		r.onError(err)
		return err
	}
	return r.local.Invoke(args)
}

// RemoteID reports the bound remote identifier.
func (r *Remote3[A1, A2, A3]) RemoteID() uint16 { return r.remoteID }
