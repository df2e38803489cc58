// Package reliability implements the L4.7 ACK/retry wrappers of spec.md
// §4.7, grounded on the original source's ReliableTransport.h: an adapter
// that routes sends through a retry policy before handing them to the
// physical transport, while receives pass straight through.
package reliability

import (
	"sync"
	"time"

	"github.com/gopherfabric/delegate/pkg/wire"
)

// outstanding is one sent-but-unacknowledged frame.
type outstanding struct {
	env      wire.Envelope
	payload  []byte
	deadline time.Time
	attempts int
}

// TransportMonitor tracks outstanding sequence numbers awaiting an ACK and
// their deadlines, per spec.md §4.7.
type TransportMonitor struct {
	mu      sync.Mutex
	timeout time.Duration
	pending map[uint16]*outstanding
}

// NewTransportMonitor returns a TransportMonitor that considers a frame
// overdue after timeout without an ACK.
func NewTransportMonitor(timeout time.Duration) *TransportMonitor {
	return &TransportMonitor{timeout: timeout, pending: make(map[uint16]*outstanding)}
}

// Track registers env/payload as sent and awaiting acknowledgement.
func (m *TransportMonitor) Track(env wire.Envelope, payload []byte) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.pending[env.Sequence] = &outstanding{env: env, payload: payload, deadline: time.Now().Add(m.timeout)}
}

// Ack marks sequence as acknowledged, removing it from tracking. It
// reports whether a matching outstanding frame was found.
func (m *TransportMonitor) Ack(sequence uint16) bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.pending[sequence]; !ok {
		return false
	}
	delete(m.pending, sequence)
	return true
}

// Expired returns every outstanding frame whose deadline has passed as of
// now, bumping their deadline and attempt count as if this call were about
// to resend them.
func (m *TransportMonitor) Expired(now time.Time) []wire.Envelope {
	m.mu.Lock()
	defer m.mu.Unlock()
	var envs []wire.Envelope
	for _, o := range m.pending {
		if now.After(o.deadline) {
			o.attempts++
			o.deadline = now.Add(m.timeout)
			envs = append(envs, o.env)
		}
	}
	return envs
}

// Payload returns the tracked payload for sequence, for use by a resend
// path driven off Expired.
func (m *TransportMonitor) Payload(sequence uint16) ([]byte, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	o, ok := m.pending[sequence]
	if !ok {
		return nil, false
	}
	return o.payload, true
}

// Outstanding reports how many frames are awaiting acknowledgement.
func (m *TransportMonitor) Outstanding() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.pending)
}

// Attempts reports how many times Expired has reported sequence as overdue
// (1 right after the first such report, 0 before it). The bool is false
// once the frame is no longer tracked (acknowledged or abandoned).
func (m *TransportMonitor) Attempts(sequence uint16) (int, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	o, ok := m.pending[sequence]
	if !ok {
		return 0, false
	}
	return o.attempts, true
}

// Abandon stops tracking sequence without marking it acknowledged, used
// once a retry budget is exhausted.
func (m *TransportMonitor) Abandon(sequence uint16) {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.pending, sequence)
}
