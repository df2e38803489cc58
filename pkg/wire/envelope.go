// Package wire implements the fixed 8-byte frame header spec.md §4.3/§6
// puts in front of every remote invocation's serialized payload, grounded
// on the source's MsgHeader.h layout: a marker, a remote id, a sequence
// number, and a payload length, all big-endian.
package wire

import (
	"encoding/binary"
	"io"

	"github.com/gopherfabric/delegate/pkg/delegateerr"
)

// Marker is the fixed two-byte value every frame starts with, used to
// detect stream desync.
const Marker uint16 = 0x55AA

// AckRemoteID is the reserved RemoteID value identifying an acknowledgement
// frame rather than an invocation.
const AckRemoteID uint16 = 0xFFFF

const headerSize = 8

// Envelope is the fixed frame header preceding a serialized payload.
type Envelope struct {
	RemoteID uint16
	Sequence uint16
	Length   uint16
}

// IsAck reports whether this envelope identifies an acknowledgement frame.
func (e Envelope) IsAck() bool { return e.RemoteID == AckRemoteID }

// WriteEnvelope writes env's header followed by payload. len(payload) must
// equal env.Length.
func WriteEnvelope(w io.Writer, env Envelope, payload []byte) error {
	if int(env.Length) != len(payload) {
		return delegateerr.ErrFramingError
	}
	var header [headerSize]byte
	binary.BigEndian.PutUint16(header[0:2], Marker)
	binary.BigEndian.PutUint16(header[2:4], env.RemoteID)
	binary.BigEndian.PutUint16(header[4:6], env.Sequence)
	binary.BigEndian.PutUint16(header[6:8], env.Length)
	if _, err := w.Write(header[:]); err != nil {
		return err
	}
	if len(payload) == 0 {
		return nil
	}
	_, err := w.Write(payload)
	return err
}

// WriteAck writes a zero-length acknowledgement frame for sequence.
func WriteAck(w io.Writer, sequence uint16) error {
	return WriteEnvelope(w, Envelope{RemoteID: AckRemoteID, Sequence: sequence, Length: 0}, nil)
}

// ReadEnvelope reads one frame's header and payload from r.
// delegateerr.ErrFramingError is returned when the marker does not match,
// signalling the stream is desynchronized.
func ReadEnvelope(r io.Reader) (Envelope, []byte, error) {
	var header [headerSize]byte
	if _, err := io.ReadFull(r, header[:]); err != nil {
		return Envelope{}, nil, err
	}
	if binary.BigEndian.Uint16(header[0:2]) != Marker {
		return Envelope{}, nil, delegateerr.ErrFramingError
	}
	env := Envelope{
		RemoteID: binary.BigEndian.Uint16(header[2:4]),
		Sequence: binary.BigEndian.Uint16(header[4:6]),
		Length:   binary.BigEndian.Uint16(header[6:8]),
	}
	if env.Length == 0 {
		return env, nil, nil
	}
	payload := make([]byte, env.Length)
	if _, err := io.ReadFull(r, payload); err != nil {
		return Envelope{}, nil, err
	}
	return env, payload, nil
}
