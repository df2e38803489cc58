package signal_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/gopherfabric/delegate/pkg/container"
	"github.com/gopherfabric/delegate/pkg/signal"
)

// TestSignal1_PriorityOrdering covers scenario S5 from spec.md §8: a
// High-priority subscriber observes an emission before a Normal-priority
// one connected earlier.
func TestSignal1_PriorityOrdering(t *testing.T) {
	var order []string

	s := signal.NewSignal1[int]()
	s.Connect(func(int) { order = append(order, "normal") })
	s.ConnectPriority(func(int) { order = append(order, "high") }, container.High)
	s.ConnectPriority(func(int) { order = append(order, "low") }, container.Low)

	errs := s.Emit(1)
	require.Empty(t, errs)
	require.Equal(t, []string{"high", "normal", "low"}, order)
}

func TestSignal0_DisconnectStopsDelivery(t *testing.T) {
	calls := 0
	s := signal.NewSignal0()
	conn := s.Connect(func() { calls++ })

	s.Emit()
	require.Equal(t, 1, calls)

	require.True(t, conn.Disconnect())
	require.Equal(t, signal.Disconnected, conn.State())

	s.Emit()
	require.Equal(t, 1, calls)

	// Disconnecting twice is a no-op.
	require.False(t, conn.Disconnect())
}

// TestScopedConnection_CloseDisconnects covers property #7 from spec.md §8:
// a ScopedConnection's Close severs the subscription.
func TestScopedConnection_CloseDisconnects(t *testing.T) {
	calls := 0
	s := signal.NewSignal0()
	sc := signal.NewScopedConnection(s.Connect(func() { calls++ }))

	s.Emit()
	require.Equal(t, 1, calls)

	require.NoError(t, sc.Close())
	require.Equal(t, signal.Disconnected, sc.State())

	s.Emit()
	require.Equal(t, 1, calls)
}

func TestSignal0_CloseMakesConnectionsInert(t *testing.T) {
	s := signal.NewSignal0()
	conn := s.Connect(func() {})

	s.Close()
	require.Equal(t, signal.Inert, conn.State())
	require.False(t, conn.Disconnect())
}

func TestSignal1_Broadcast_IsolatesPanics(t *testing.T) {
	var ran []string
	s := signal.NewSignal1[int]()
	s.Connect(func(int) { ran = append(ran, "a") })
	s.Connect(func(int) { panic("boom") })
	s.Connect(func(int) { ran = append(ran, "b") })

	errs := s.Emit(0)
	require.Len(t, errs, 1)
	require.Equal(t, []string{"a", "b"}, ran)
}
