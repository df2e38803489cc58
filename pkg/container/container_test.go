package container_test

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/gopherfabric/delegate/pkg/container"
	"github.com/gopherfabric/delegate/pkg/delegate"
)

// TestSafeMulticast1_BroadcastOrder covers scenario S1 from spec.md §8: a
// SafeMulticast1 with two closures f(i) and g(i), broadcasting 7, observes
// both subscribers run in subscription order.
func TestSafeMulticast1_BroadcastOrder(t *testing.T) {
	var got []int
	var mu sync.Mutex
	record := func(v int) {
		mu.Lock()
		defer mu.Unlock()
		got = append(got, v)
	}

	f := func(i int) { record(i) }
	g := func(i int) { record(i + 1) }

	m := container.NewSafeMulticast1[int]()
	m.Add(container.Entry1[int]{Delegate: container.WrapCallable1(f), Priority: container.Normal})
	m.Add(container.Entry1[int]{Delegate: container.WrapCallable1(g), Priority: container.Normal})

	errs := m.Broadcast(7)
	require.Empty(t, errs)
	require.Equal(t, []int{7, 8}, got)
}

func TestMulticast0_RemoveByIdentity(t *testing.T) {
	calls := 0
	fn := func() { calls++ }

	m := container.NewMulticast0()
	d := container.WrapFree0(fn)
	m.Add(d)
	require.Equal(t, 1, m.Len())

	require.True(t, m.Remove(container.WrapFree0(fn)))
	require.Equal(t, 0, m.Len())

	m.Broadcast()
	require.Equal(t, 0, calls)
}

func TestMulticast0_Broadcast_IsolatesPanicsAndErrors(t *testing.T) {
	ran := []string{}
	m := container.NewMulticast0()
	m.Add(container.WrapCallable0(func() { ran = append(ran, "first") }))
	m.Add(container.WrapCallable0(func() { panic("boom") }))
	m.Add(container.WrapCallable0(func() { ran = append(ran, "third") }))

	errs := m.Broadcast()
	require.Len(t, errs, 1)
	require.Equal(t, []string{"first", "third"}, ran)
}

// TestSafeMulticast1_ReentrantRemoveDuringBroadcast covers property #6 from
// spec.md §8: a subscriber that removes itself (or another subscriber)
// mid-broadcast does not corrupt the in-flight iteration, and the removal
// takes full effect by the next broadcast.
func TestSafeMulticast1_ReentrantRemoveDuringBroadcast(t *testing.T) {
	m := container.NewSafeMulticast1[int]()

	var calledSecond bool
	var selfEntry container.Entry1[int]

	selfRemover := func(i int) {
		m.Remove(selfEntry)
	}
	selfEntry = container.Entry1[int]{Delegate: container.WrapCallable1(selfRemover), Priority: container.Normal}

	m.Add(selfEntry)
	m.Add(container.Entry1[int]{
		Delegate: container.WrapCallable1(func(i int) { calledSecond = true }),
		Priority: container.Normal,
	})

	errs := m.Broadcast(1)
	require.Empty(t, errs)
	require.True(t, calledSecond, "subscribers after a reentrant remove must still run")

	calledSecond = false
	errs = m.Broadcast(2)
	require.Empty(t, errs)
	require.True(t, calledSecond)
	require.Equal(t, 1, m.Len(), "the self-removed subscriber must be gone on the next broadcast")
}

func TestUnicast1_SetReplaces(t *testing.T) {
	var last int
	u := &container.Unicast1[int]{}
	u.Set(delegate.BindCallable1(func(v int) container.Void {
		last = v
		return container.Void{}
	}))
	require.True(t, u.IsBound())
	require.NoError(t, u.Invoke(1))
	require.Equal(t, 1, last)

	u.Set(delegate.BindCallable1(func(v int) container.Void {
		last = v * 10
		return container.Void{}
	}))
	require.NoError(t, u.Invoke(2))
	require.Equal(t, 20, last)
}
