package reliability

import (
	"time"

	"github.com/gopherfabric/delegate/pkg/wire"
)

// ReliableTransport is a remote.Dispatcher adapter that routes sends
// through a RetryMonitor before handing them to the physical transport,
// directly mirroring the source's ReliableTransport (ReliableTransport.h):
// Dispatch goes through the retry path, Receive is untouched by this type
// (acks are applied to the TransportMonitor by the caller as frames with
// wire.AckRemoteID arrive).
type ReliableTransport struct {
	retry   *RetryMonitor
	monitor *TransportMonitor
}

// NewReliableTransport composes sender with a RetryMonitor/TransportMonitor
// pair, returning the wrapper plus the monitor so the caller can feed it
// incoming ACK frames and drive periodic Sweep calls (e.g. from a
// thread.Thread or timer.Timer tick).
func NewReliableTransport(sender Sender, ackTimeout time.Duration, maxRetries int) (*ReliableTransport, *TransportMonitor) {
	monitor := NewTransportMonitor(ackTimeout)
	retry := NewRetryMonitor(sender, monitor, maxRetries)
	return &ReliableTransport{retry: retry, monitor: monitor}, monitor
}

// Dispatch sends env/payload with retry tracking.
func (rt *ReliableTransport) Dispatch(env wire.Envelope, payload []byte) error {
	return rt.retry.SendWithRetry(env, payload)
}

// HandleAck acknowledges sequence against the underlying TransportMonitor.
// Call this when a frame with wire.AckRemoteID arrives on the receive side.
func (rt *ReliableTransport) HandleAck(sequence uint16) bool {
	return rt.monitor.Ack(sequence)
}

// Sweep resends every frame overdue as of now, abandoning any that has
// exhausted its retry budget. Callers typically drive this from a
// timer.Timer tick or a dedicated thread.Thread task.
func (rt *ReliableTransport) Sweep(now time.Time) error {
	return rt.retry.Sweep(now)
}
