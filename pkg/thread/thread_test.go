package thread_test

import (
	"sync"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	dto "github.com/prometheus/client_model/go"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"

	"github.com/gopherfabric/delegate/pkg/container"
	"github.com/gopherfabric/delegate/pkg/delegateerr"
	"github.com/gopherfabric/delegate/pkg/thread"
)

// TestMain verifies every test in this package leaves no worker goroutine
// behind once Stop returns.
func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

// TestThread_StrictPriority covers property #3 from spec.md §8: a pending
// High task always runs before a pending Normal or Low one, regardless of
// enqueue order.
func TestThread_StrictPriority(t *testing.T) {
	var mu sync.Mutex
	var order []string
	record := func(name string) func() {
		return func() {
			mu.Lock()
			defer mu.Unlock()
			order = append(order, name)
		}
	}

	th := thread.New("worker", 8)
	block := make(chan struct{})
	th.Start()
	defer th.Stop()

	// Occupy the worker so the next three enqueues land in the queues
	// together before any of them is dispatched.
	require.NoError(t, th.Enqueue(thread.Task{Priority: container.Normal, Invoke: func() { <-block }}))
	require.NoError(t, th.Enqueue(thread.Task{Priority: container.Low, Invoke: record("low")}))
	require.NoError(t, th.Enqueue(thread.Task{Priority: container.Normal, Invoke: record("normal")}))
	require.NoError(t, th.Enqueue(thread.Task{Priority: container.High, Invoke: record("high")}))
	close(block)

	require.Eventually(t, func() bool {
		mu.Lock()
		defer mu.Unlock()
		return len(order) == 3
	}, time.Second, time.Millisecond)

	mu.Lock()
	defer mu.Unlock()
	require.Equal(t, []string{"high", "normal", "low"}, order)
}

// TestThread_FIFOWithinPriority covers property #2 from spec.md §8.
func TestThread_FIFOWithinPriority(t *testing.T) {
	var mu sync.Mutex
	var order []int

	th := thread.New("worker", 8)
	th.Start()
	defer th.Stop()

	var wg sync.WaitGroup
	wg.Add(5)
	for i := 0; i < 5; i++ {
		i := i
		require.NoError(t, th.Enqueue(thread.Task{Priority: container.Normal, Invoke: func() {
			mu.Lock()
			order = append(order, i)
			mu.Unlock()
			wg.Done()
		}}))
	}
	wg.Wait()

	mu.Lock()
	defer mu.Unlock()
	require.Equal(t, []int{0, 1, 2, 3, 4}, order)
}

func TestThread_StartTwiceReturnsError(t *testing.T) {
	th := thread.New("worker", 1)
	require.NoError(t, th.Start())
	defer th.Stop()
	require.ErrorIs(t, th.Start(), delegateerr.ErrThreadAlreadyRunning)
}

func TestThread_EnqueueBeforeStart(t *testing.T) {
	th := thread.New("worker", 1)
	err := th.Enqueue(thread.Task{Invoke: func() {}})
	require.ErrorIs(t, err, delegateerr.ErrThreadNotRunning)
}

func TestThread_EnqueueAfterStop(t *testing.T) {
	th := thread.New("worker", 1)
	th.Start()
	th.Stop()
	err := th.Enqueue(thread.Task{Invoke: func() {}})
	require.ErrorIs(t, err, delegateerr.ErrThreadNotRunning)
}

func TestThread_QueueFull(t *testing.T) {
	th := thread.New("worker", 1)
	th.Start()
	defer th.Stop()

	block := make(chan struct{})
	require.NoError(t, th.Enqueue(thread.Task{Invoke: func() { <-block }}))
	require.NoError(t, th.Enqueue(thread.Task{Invoke: func() {}}))
	err := th.Enqueue(thread.Task{Invoke: func() {}})
	close(block)
	require.ErrorIs(t, err, delegateerr.ErrQueueFull)
}

func TestThread_StopDrainsQueuedWork(t *testing.T) {
	th := thread.New("worker", 8)
	th.Start()

	var ran int32
	for i := 0; i < 4; i++ {
		require.NoError(t, th.Enqueue(thread.Task{Invoke: func() { ran++ }}))
	}
	th.Stop()
	require.EqualValues(t, 4, ran)
}

// TestThread_CurrentID covers spec.md §4.6/§6's current_thread_id()
// operation: a task running on a Thread observes its own ID via
// thread.CurrentID, and a goroutine that is not any Thread's worker
// observes ok == false.
func TestThread_CurrentID(t *testing.T) {
	if _, ok := thread.CurrentID(); ok {
		t.Fatal("test goroutine should not be any Thread's worker")
	}

	th := thread.New("worker", 1)
	require.NoError(t, th.Start())
	defer th.Stop()

	seen := make(chan thread.ID, 1)
	ok := make(chan bool, 1)
	require.NoError(t, th.Enqueue(thread.Task{Invoke: func() {
		id, found := thread.CurrentID()
		seen <- id
		ok <- found
	}}))

	require.True(t, <-ok)
	require.Equal(t, th.ID(), <-seen)
}

func TestThread_MetricsCountDispatches(t *testing.T) {
	reg := prometheus.NewRegistry()
	metrics := thread.NewMetrics(reg)

	th := thread.New("worker", 8, thread.WithMetrics(metrics))
	th.Start()
	defer th.Stop()

	var wg sync.WaitGroup
	wg.Add(3)
	for i := 0; i < 3; i++ {
		require.NoError(t, th.Enqueue(thread.Task{Priority: container.High, Invoke: wg.Done}))
	}
	wg.Wait()

	families, err := reg.Gather()
	require.NoError(t, err)
	require.EqualValues(t, 3, dispatchCount(t, families, "worker", "high"))
}

func dispatchCount(t *testing.T, families []*dto.MetricFamily, threadName, priority string) float64 {
	t.Helper()
	for _, fam := range families {
		if fam.GetName() != "delegate_thread_tasks_dispatched_total" {
			continue
		}
		for _, metric := range fam.GetMetric() {
			var gotThread, gotPriority string
			for _, label := range metric.GetLabel() {
				switch label.GetName() {
				case "thread":
					gotThread = label.GetValue()
				case "priority":
					gotPriority = label.GetValue()
				}
			}
			if gotThread == threadName && gotPriority == priority {
				return metric.GetCounter().GetValue()
			}
		}
	}
	return 0
}
