package async_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"

	"github.com/gopherfabric/delegate/internal/testsupport"
	"github.com/gopherfabric/delegate/pkg/async"
	"github.com/gopherfabric/delegate/pkg/container"
	"github.com/gopherfabric/delegate/pkg/delegate"
	"github.com/gopherfabric/delegate/pkg/delegateerr"
	"github.com/gopherfabric/delegate/pkg/thread"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

func startedThread(t *testing.T) *thread.Thread {
	th := thread.New("worker", 8)
	th.Start()
	t.Cleanup(th.Stop)
	return th
}

// TestAsync1_BlockingInfinite_ReturnsResult covers scenario S2/S3 and
// property #5 from spec.md §8: a blocking async call observes the callee's
// return value.
func TestAsync1_BlockingInfinite_ReturnsResult(t *testing.T) {
	th := startedThread(t)
	d := delegate.BindFree1[int, int](func(v int) int { return v * 2 })
	a := async.NewAsync1[int, int](d, th, async.WithWaitPolicy(async.BlockingInfinite))

	res, status, err := a.Invoke(21)
	require.NoError(t, err)
	require.Equal(t, delegateerr.StatusSuccess, status)
	require.Equal(t, 42, res)
}

func TestAsync0_NonBlocking_ReturnsPendingImmediately(t *testing.T) {
	th := startedThread(t)
	started := make(chan struct{})
	finish := make(chan struct{})
	d := delegate.BindFree0[int](func() int {
		close(started)
		<-finish
		return 1
	})
	a := async.NewAsync0[int](d, th) // default policy: NonBlocking

	_, status, err := a.Invoke()
	require.NoError(t, err)
	require.Equal(t, delegateerr.StatusPending, status)

	close(finish)
	require.True(t, testsupport.WaitOrTimeout(func() { <-started }, time.Second))
}

// TestAsync1_BlockingDeadline_Timeout covers the timeout path of property
// #5: a call that outlives its deadline reports StatusTimeout without
// leaking the worker goroutine.
func TestAsync1_BlockingDeadline_Timeout(t *testing.T) {
	th := startedThread(t)
	release := make(chan struct{})
	d := delegate.BindFree1[int, int](func(v int) int {
		<-release
		return v
	})
	a := async.NewAsync1[int, int](d, th,
		async.WithWaitPolicy(async.BlockingDeadline),
		async.WithDeadline(20*time.Millisecond))

	_, status, err := a.Invoke(1)
	require.ErrorIs(t, err, delegateerr.ErrTimeout)
	require.Equal(t, delegateerr.StatusTimeout, status)

	close(release)
}

// TestAsync0_SameThreadFastPath_NoDeadlock covers spec.md §4.2 step 1: a
// task already running on the target thread's own worker goroutine that
// issues a BlockingInfinite Async call back onto that same thread must
// take the fast path (call the delegate directly) rather than marshal —
// marshaling here would self-deadlock, since the only goroutine that
// could ever dispatch the newly enqueued task is the one blocked waiting
// for it.
func TestAsync0_SameThreadFastPath_NoDeadlock(t *testing.T) {
	th := startedThread(t)
	d := delegate.BindFree0[int](func() int { return 7 })
	a := async.NewAsync0[int](d, th, async.WithWaitPolicy(async.BlockingInfinite))

	result := make(chan int, 1)
	err := th.Enqueue(thread.Task{Priority: container.Normal, Invoke: func() {
		v, status, invokeErr := a.Invoke()
		if invokeErr == nil && status == delegateerr.StatusSuccess {
			result <- v
		} else {
			result <- -1
		}
	}})
	require.NoError(t, err)

	select {
	case v := <-result:
		require.Equal(t, 7, v)
	case <-time.After(time.Second):
		t.Fatal("self-targeted blocking Invoke deadlocked")
	}
}

func TestAsync1_EmptyDelegate(t *testing.T) {
	th := startedThread(t)
	var d delegate.Delegate1[int, int]
	a := async.NewAsync1[int, int](d, th)
	_, status, err := a.Invoke(1)
	require.ErrorIs(t, err, delegateerr.ErrEmptyInvocation)
	require.Equal(t, delegateerr.StatusFailed, status)
}
