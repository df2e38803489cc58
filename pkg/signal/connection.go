// Package signal implements the L5 signal/slot layer of spec.md §4.5: a
// Signal is a shared-owned, priority-ordered multicast over a
// container.SafeMulticast, and Connect returns a Connection handle that can
// later disconnect that one subscription.
package signal

import "sync/atomic"

// State is a Connection's lifecycle position, spec.md §3's Connected /
// Disconnected / Inert state machine. Connected and Disconnected are both
// reachable only while the owning Signal is live; once the Signal is
// closed, every outstanding Connection observes Inert regardless of
// whether Disconnect had already been called — Inert is a terminal state
// reachable from either of the other two.
type State int32

const (
	Connected State = iota
	Disconnected
	Inert
)

func (s State) String() string {
	switch s {
	case Connected:
		return "connected"
	case Disconnected:
		return "disconnected"
	case Inert:
		return "inert"
	default:
		return "unknown"
	}
}

// Connection is a handle to one subscription made via Signal.Connect. Go
// has no destructors, so unlike the source's RAII slot_connection, nothing
// happens automatically when a Connection value is dropped — call
// Disconnect explicitly, or wrap it in a ScopedConnection and Close that.
type Connection struct {
	disconnected *int32
	signalClosed *int32
	disconnectFn func()
}

func newConnection(signalClosed *int32, disconnectFn func()) Connection {
	return Connection{
		disconnected: new(int32),
		signalClosed: signalClosed,
		disconnectFn: disconnectFn,
	}
}

// Disconnect removes the subscription, reporting whether this call is the
// one that performed the removal (false if already disconnected, or if the
// owning Signal is already closed).
func (c Connection) Disconnect() bool {
	if c.disconnectFn == nil {
		return false
	}
	if c.signalClosed != nil && atomic.LoadInt32(c.signalClosed) != 0 {
		return false
	}
	if !atomic.CompareAndSwapInt32(c.disconnected, 0, 1) {
		return false
	}
	c.disconnectFn()
	return true
}

// State reports the connection's current lifecycle state.
func (c Connection) State() State {
	if c.signalClosed == nil {
		return Inert
	}
	if atomic.LoadInt32(c.signalClosed) != 0 {
		return Inert
	}
	if atomic.LoadInt32(c.disconnected) != 0 {
		return Disconnected
	}
	return Connected
}

// ScopedConnection disconnects automatically when Close is called,
// matching the source's scoped_connection RAII wrapper via Go's io.Closer
// idiom instead of a destructor.
type ScopedConnection struct {
	conn Connection
}

// NewScopedConnection wraps conn for Close-triggered disconnection.
func NewScopedConnection(conn Connection) *ScopedConnection {
	return &ScopedConnection{conn: conn}
}

// Close disconnects the wrapped Connection. It never returns an error;
// disconnecting an already-disconnected or already-inert connection is a
// no-op, matching Disconnect's own idempotence.
func (s *ScopedConnection) Close() error {
	s.conn.Disconnect()
	return nil
}

// State reports the wrapped Connection's lifecycle state.
func (s *ScopedConnection) State() State { return s.conn.State() }
