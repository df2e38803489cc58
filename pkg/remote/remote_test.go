package remote_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/gopherfabric/delegate/internal/dispatchtest"
	"github.com/gopherfabric/delegate/pkg/container"
	"github.com/gopherfabric/delegate/pkg/delegate"
	"github.com/gopherfabric/delegate/pkg/remote"
	"github.com/gopherfabric/delegate/pkg/wire"
)

// TestRemote1_SendReceive covers scenario S6 from spec.md §8: a Remote1
// call made on one side of a transport is observed, decoded, and invoked
// on the other.
func TestRemote1_SendReceive(t *testing.T) {
	pair := dispatchtest.NewPipePair()
	defer pair.A.Close()
	defer pair.B.Close()

	received := make(chan int, 1)
	var local container.Unicast1[int]
	local.Set(delegate.BindCallable1(func(v int) container.Void {
		received <- v
		return container.Void{}
	}))

	sender, err := remote.NewRemote1[int](1, pair.A, remote.JSONSerializer{})
	require.NoError(t, err)
	receiver, err := remote.NewRemote1[int](1, pair.B, remote.JSONSerializer{}, remote.WithLocal1[int](local))
	require.NoError(t, err)

	done := make(chan error, 1)
	go func() {
		env, payload, err := pair.B.ReadFrame()
		if err != nil {
			done <- err
			return
		}
		done <- receiver.Receive(env, payload)
	}()

	require.NoError(t, sender.Invoke(42))
	require.NoError(t, <-done)

	select {
	case v := <-received:
		require.Equal(t, 42, v)
	case <-time.After(time.Second):
		t.Fatal("timed out waiting for remote delivery")
	}
}

func TestRemote1_DecodeFailureReportsError(t *testing.T) {
	pair := dispatchtest.NewPipePair()
	defer pair.A.Close()
	defer pair.B.Close()

	var local container.Unicast1[int]
	local.Set(delegate.BindCallable1(func(v int) container.Void { return container.Void{} }))

	var gotErr error
	receiver, err := remote.NewRemote1[int](1, pair.B, remote.JSONSerializer{},
		remote.WithLocal1[int](local),
		remote.WithErrorHandler1[int](func(err error) { gotErr = err }))
	require.NoError(t, err)

	err = receiver.Receive(wire.Envelope{RemoteID: receiver.RemoteID()}, []byte("not json"))
	require.Error(t, err)
	require.Error(t, gotErr)
}

// TestRemote1_FirstSequenceIsZero covers spec.md §8's S6 scenario literally:
// "Remote id 1, sequence 0 ... Sender produces bytes 55 AA 00 01 00 00 00 LL".
// The first frame a Remote1 ever sends must carry sequence 0, not 1.
func TestRemote1_FirstSequenceIsZero(t *testing.T) {
	pair := dispatchtest.NewPipePair()
	defer pair.A.Close()
	defer pair.B.Close()

	sender, err := remote.NewRemote1[int](1, pair.A, remote.JSONSerializer{})
	require.NoError(t, err)

	envs := make(chan wire.Envelope, 2)
	go func() {
		for i := 0; i < 2; i++ {
			env, _, err := pair.B.ReadFrame()
			if err != nil {
				return
			}
			envs <- env
		}
	}()

	require.NoError(t, sender.Invoke(1))
	require.NoError(t, sender.Invoke(2))

	first := <-envs
	second := <-envs
	require.Equal(t, uint16(0), first.Sequence)
	require.Equal(t, uint16(1), second.Sequence)
}

// TestNewRemote1_RejectsPointerToPointer covers spec.md §4.3's restriction
// list: "pointer-to-pointer is rejected" for async/remote arguments.
func TestNewRemote1_RejectsPointerToPointer(t *testing.T) {
	pair := dispatchtest.NewPipePair()
	defer pair.A.Close()
	defer pair.B.Close()

	_, err := remote.NewRemote1[**int](1, pair.A, remote.JSONSerializer{})
	require.Error(t, err)
}

// TestNewRemote1_RejectsPointerToSharedHandle covers spec.md §4.3's
// restriction list: "references to shared-owned handles are rejected".
func TestNewRemote1_RejectsPointerToSharedHandle(t *testing.T) {
	pair := dispatchtest.NewPipePair()
	defer pair.A.Close()
	defer pair.B.Close()

	_, err := remote.NewRemote1[*delegate.Shared[int]](1, pair.A, remote.JSONSerializer{})
	require.Error(t, err)
}
