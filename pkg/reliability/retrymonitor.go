package reliability

import (
	"errors"
	"sync"
	"time"

	"github.com/gopherfabric/delegate/pkg/delegateerr"
	"github.com/gopherfabric/delegate/pkg/wire"
)

// Sender is the minimal shape RetryMonitor needs from a physical
// transport: remote.Dispatcher satisfies it directly.
type Sender interface {
	Dispatch(env wire.Envelope, payload []byte) error
}

// RetryMonitor wraps a Sender with automatic resend of unacknowledged
// frames, grounded on the original source's RetryMonitor (routed through by
// ReliableTransport.Send). A boolean guard, in the mutex-protected style of
// the teacher's poweroff/contextHolder fields (mcast/protocol.go), makes a
// sweep re-entrancy-safe: a sweep already in flight is not overlapped by a
// concurrent one.
type RetryMonitor struct {
	sender     Sender
	monitor    *TransportMonitor
	maxRetries int

	mu       sync.Mutex
	sweeping bool
}

// NewRetryMonitor wraps sender, tracking sends against monitor and giving
// up on a frame after maxRetries resends (0 means unlimited).
func NewRetryMonitor(sender Sender, monitor *TransportMonitor, maxRetries int) *RetryMonitor {
	return &RetryMonitor{sender: sender, monitor: monitor, maxRetries: maxRetries}
}

// SendWithRetry sends env/payload and registers it with the
// TransportMonitor for retry tracking.
func (r *RetryMonitor) SendWithRetry(env wire.Envelope, payload []byte) error {
	if err := r.sender.Dispatch(env, payload); err != nil {
		return err
	}
	if !env.IsAck() {
		r.monitor.Track(env, payload)
	}
	return nil
}

// Sweep resends every frame the TransportMonitor reports as expired as of
// now. Concurrent Sweep calls do not overlap; a call arriving while one is
// already in flight is a no-op, matching the source's single-flight retry
// pass. A frame that has already been resent maxRetries times (0 means
// unlimited) is abandoned instead of resent again; Sweep collects every
// such abandonment into a joined delegateerr.ErrAckTimeout rather than
// stopping at the first one, so one stalled peer doesn't mask retries
// still owed to the others.
func (r *RetryMonitor) Sweep(now time.Time) error {
	r.mu.Lock()
	if r.sweeping {
		r.mu.Unlock()
		return nil
	}
	r.sweeping = true
	r.mu.Unlock()

	defer func() {
		r.mu.Lock()
		r.sweeping = false
		r.mu.Unlock()
	}()

	var timedOut []error
	for _, env := range r.monitor.Expired(now) {
		attempts, ok := r.monitor.Attempts(env.Sequence)
		if !ok {
			continue
		}
		if r.maxRetries > 0 && attempts > r.maxRetries {
			r.monitor.Abandon(env.Sequence)
			timedOut = append(timedOut, delegateerr.ErrAckTimeout)
			continue
		}
		payload, ok := r.monitor.Payload(env.Sequence)
		if !ok {
			continue
		}
		if err := r.sender.Dispatch(env, payload); err != nil {
			return err
		}
	}
	if len(timedOut) > 0 {
		return errors.Join(timedOut...)
	}
	return nil
}
