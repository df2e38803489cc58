package wire_test

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/gopherfabric/delegate/pkg/wire"
)

// TestWriteEnvelope_ExactBytes covers scenario S6 from spec.md §8: the
// wire frame for remote id 1 carrying a 0-byte payload is the exact byte
// sequence 55 AA 00 01 00 00 00 00.
func TestWriteEnvelope_ExactBytes(t *testing.T) {
	var buf bytes.Buffer
	err := wire.WriteEnvelope(&buf, wire.Envelope{RemoteID: 1, Sequence: 0, Length: 0}, nil)
	require.NoError(t, err)
	require.Equal(t, []byte{0x55, 0xAA, 0x00, 0x01, 0x00, 0x00, 0x00, 0x00}, buf.Bytes())
}

func TestWriteEnvelope_Ack(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, wire.WriteAck(&buf, 0))
	require.Equal(t, []byte{0x55, 0xAA, 0xFF, 0xFF, 0x00, 0x00, 0x00, 0x00}, buf.Bytes())
}

func TestEnvelope_RoundTrip(t *testing.T) {
	var buf bytes.Buffer
	payload := []byte("hello")
	env := wire.Envelope{RemoteID: 42, Sequence: 7, Length: uint16(len(payload))}
	require.NoError(t, wire.WriteEnvelope(&buf, env, payload))

	gotEnv, gotPayload, err := wire.ReadEnvelope(&buf)
	require.NoError(t, err)
	require.Equal(t, env, gotEnv)
	require.Equal(t, payload, gotPayload)
}

func TestReadEnvelope_BadMarker(t *testing.T) {
	buf := bytes.NewReader([]byte{0x00, 0x00, 0x00, 0x01, 0x00, 0x00, 0x00, 0x00})
	_, _, err := wire.ReadEnvelope(buf)
	require.Error(t, err)
}

func TestEnvelope_IsAck(t *testing.T) {
	require.True(t, wire.Envelope{RemoteID: wire.AckRemoteID}.IsAck())
	require.False(t, wire.Envelope{RemoteID: 1}.IsAck())
}
