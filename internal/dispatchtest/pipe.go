// Package dispatchtest provides an in-memory remote.Dispatcher pair backed
// by net.Pipe, grounded on the teacher's net-based transport tests
// (test/tcp_transport_test.go), for exercising pkg/remote and
// pkg/reliability without opening real sockets.
package dispatchtest

import (
	"net"

	"github.com/gopherfabric/delegate/pkg/wire"
)

// PipeDispatcher implements remote.Dispatcher over one end of a net.Pipe.
type PipeDispatcher struct {
	conn net.Conn
}

// Dispatch frames and writes env/payload to the pipe.
func (d *PipeDispatcher) Dispatch(env wire.Envelope, payload []byte) error {
	return wire.WriteEnvelope(d.conn, env, payload)
}

// ReadFrame blocks for the next frame written by the other end.
func (d *PipeDispatcher) ReadFrame() (wire.Envelope, []byte, error) {
	return wire.ReadEnvelope(d.conn)
}

// Close closes the underlying pipe half.
func (d *PipeDispatcher) Close() error { return d.conn.Close() }

// PipePair is two connected PipeDispatchers, one per side of a net.Pipe.
type PipePair struct {
	A *PipeDispatcher
	B *PipeDispatcher
}

// NewPipePair returns a freshly connected pair.
func NewPipePair() *PipePair {
	c1, c2 := net.Pipe()
	return &PipePair{A: &PipeDispatcher{conn: c1}, B: &PipeDispatcher{conn: c2}}
}
