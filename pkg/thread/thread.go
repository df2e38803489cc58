// Package thread implements the L6 worker abstraction of spec.md §4.6: a
// named goroutine draining a three-level (High/Normal/Low) priority queue
// in strict-priority, FIFO-within-priority order. The poweroff/mutex-guard
// idiom for a once-only, waitable shutdown is grounded on the teacher's
// Unity.Shutdown (mcast/protocol.go).
package thread

import (
	"bytes"
	"runtime"
	"strconv"
	"sync"
	"sync/atomic"
	"time"

	"github.com/gopherfabric/delegate/pkg/container"
	"github.com/gopherfabric/delegate/pkg/delegateerr"
	"github.com/gopherfabric/delegate/pkg/logging"
)

// ID identifies a Thread for diagnostics and equality checks; it carries no
// OS or goroutine significance.
type ID uint64

var idSeq uint64

func nextID() ID {
	return ID(atomic.AddUint64(&idSeq, 1))
}

// goroutineOwners maps a runtime goroutine id to the *Thread whose run()
// loop currently occupies it, populated and cleared by run() itself.
var goroutineOwners sync.Map

// goroutineID extracts the calling goroutine's runtime-assigned id by
// parsing the header line of its own stack trace ("goroutine 123
// [running]:"). The standard library exposes no public API for goroutine
// identity; this is the usual workaround, used here only to let CurrentID
// answer "is this goroutine a Thread's worker", never for scheduling.
func goroutineID() uint64 {
	var buf [64]byte
	n := runtime.Stack(buf[:], false)
	b := bytes.TrimPrefix(buf[:n], []byte("goroutine "))
	if i := bytes.IndexByte(b, ' '); i >= 0 {
		b = b[:i]
	}
	id, err := strconv.ParseUint(string(b), 10, 64)
	if err != nil {
		return 0
	}
	return id
}

// CurrentID reports the ID of the Thread whose worker goroutine is calling
// it, implementing spec.md §4.6/§6's current_thread_id()/currentId()
// operation. ok is false when the calling goroutine is not any Thread's
// worker goroutine (for instance, the application's own main goroutine, or
// a goroutine spawned independently of this package).
func CurrentID() (id ID, ok bool) {
	v, found := goroutineOwners.Load(goroutineID())
	if !found {
		return 0, false
	}
	return v.(*Thread).id, true
}

// Task is one unit of work accepted by Enqueue. Invoke is called on the
// Thread's own goroutine.
type Task struct {
	Priority container.Priority
	Invoke   func()
}

type poweroff struct {
	mutex    sync.Mutex
	shutdown bool
	ch       chan struct{}
}

func (p *poweroff) trigger() bool {
	p.mutex.Lock()
	defer p.mutex.Unlock()
	if p.shutdown {
		return false
	}
	p.shutdown = true
	close(p.ch)
	return true
}

func (p *poweroff) isShutdown() bool {
	p.mutex.Lock()
	defer p.mutex.Unlock()
	return p.shutdown
}

// Thread is a single named worker goroutine with a strict-priority queue.
// Dispatched tasks at the same priority run in FIFO order; a pending High
// task always runs before a pending Normal or Low one, matching spec.md
// §4.6's scheduling contract. The optional watchdog logs a diagnostic when
// the idle worker waits longer than the configured interval for a task to
// arrive; it does not time the tasks themselves.
type Thread struct {
	id   ID
	name string

	high, normal, low chan Task

	off poweroff
	wg  sync.WaitGroup

	logger   logging.Logger
	watchdog time.Duration
	metrics  *Metrics

	running int32
}

// Option configures a Thread at construction time.
type Option func(*Thread)

// WithLogger attaches a logger for lifecycle and watchdog diagnostics.
func WithLogger(l logging.Logger) Option {
	return func(t *Thread) { t.logger = l }
}

// WithWatchdog enables an idle diagnostic: if the worker, with every queue
// empty, waits longer than interval for a task to arrive, a warning is
// logged and the watchdog metric is incremented. A task that runs longer
// than interval is not detected or reported. A non-positive interval
// disables it (the default).
func WithWatchdog(interval time.Duration) Option {
	return func(t *Thread) { t.watchdog = interval }
}

// New constructs a Thread named name with the given per-priority queue
// capacity. Start must be called before Enqueue accepts tasks.
func New(name string, queueCapacity int, opts ...Option) *Thread {
	t := &Thread{
		id:     nextID(),
		name:   name,
		high:   make(chan Task, queueCapacity),
		normal: make(chan Task, queueCapacity),
		low:    make(chan Task, queueCapacity),
		off:    poweroff{ch: make(chan struct{})},
		logger: logging.Discard,
	}
	for _, opt := range opts {
		opt(t)
	}
	return t
}

// ID reports the Thread's identity.
func (t *Thread) ID() ID { return t.id }

// Name reports the Thread's name.
func (t *Thread) Name() string { return t.name }

// Start spawns the worker goroutine. Calling Start a second time returns
// delegateerr.ErrThreadAlreadyRunning without spawning another goroutine.
func (t *Thread) Start() error {
	if !atomic.CompareAndSwapInt32(&t.running, 0, 1) {
		return delegateerr.ErrThreadAlreadyRunning
	}
	t.wg.Add(1)
	go t.run()
	return nil
}

// Stop requests shutdown and blocks until the worker goroutine has drained
// in-flight work and exited. Calling Stop on a Thread that was never
// started, or twice, is a safe no-op.
func (t *Thread) Stop() {
	if !t.off.trigger() {
		t.wg.Wait()
		return
	}
	t.wg.Wait()
}

// Enqueue submits a task at priority. It fails with
// delegateerr.ErrThreadNotRunning if Start hasn't been called (or Stop
// already has), or delegateerr.ErrQueueFull if that priority's queue has
// no free capacity.
func (t *Thread) Enqueue(task Task) error {
	if atomic.LoadInt32(&t.running) == 0 || t.off.isShutdown() {
		return delegateerr.ErrThreadNotRunning
	}
	var q chan Task
	switch task.Priority {
	case container.High:
		q = t.high
	case container.Low:
		q = t.low
	default:
		q = t.normal
	}
	select {
	case q <- task:
		t.metrics.onEnqueue(t.name, task.Priority)
		return nil
	default:
		return delegateerr.ErrQueueFull
	}
}

func (t *Thread) run() {
	defer t.wg.Done()
	gid := goroutineID()
	goroutineOwners.Store(gid, t)
	defer goroutineOwners.Delete(gid)
	for {
		select {
		case <-t.off.ch:
			t.drainRemaining()
			return
		default:
		}
		if t.dispatchOne() {
			continue
		}
		if t.watchdog > 0 && t.waitForWorkWithWatchdog() {
			return
		} else if t.watchdog <= 0 && t.waitForWork() {
			return
		}
	}
}

// dispatchOne runs one already-queued task, highest priority first,
// without blocking. It reports whether a task ran.
func (t *Thread) dispatchOne() bool {
	select {
	case task := <-t.high:
		task.Invoke()
		t.metrics.onDispatch(t.name, container.High)
		return true
	default:
	}
	select {
	case task := <-t.normal:
		task.Invoke()
		t.metrics.onDispatch(t.name, container.Normal)
		return true
	default:
	}
	select {
	case task := <-t.low:
		task.Invoke()
		t.metrics.onDispatch(t.name, container.Low)
		return true
	default:
	}
	return false
}

// waitForWork blocks until a task arrives on any queue or shutdown fires,
// reporting whether the caller should exit.
func (t *Thread) waitForWork() bool {
	select {
	case task := <-t.high:
		task.Invoke()
		t.metrics.onDispatch(t.name, container.High)
		return false
	case task := <-t.normal:
		task.Invoke()
		t.metrics.onDispatch(t.name, container.Normal)
		return false
	case task := <-t.low:
		task.Invoke()
		t.metrics.onDispatch(t.name, container.Low)
		return false
	case <-t.off.ch:
		t.drainRemaining()
		return true
	}
}

func (t *Thread) waitForWorkWithWatchdog() bool {
	timer := time.NewTimer(t.watchdog)
	defer timer.Stop()
	select {
	case task := <-t.high:
		task.Invoke()
		t.metrics.onDispatch(t.name, container.High)
		return false
	case task := <-t.normal:
		task.Invoke()
		t.metrics.onDispatch(t.name, container.Normal)
		return false
	case task := <-t.low:
		task.Invoke()
		t.metrics.onDispatch(t.name, container.Low)
		return false
	case <-t.off.ch:
		t.drainRemaining()
		return true
	case <-timer.C:
		t.logger.Warnf("thread %s (%d): idle past watchdog interval %s", t.name, t.id, t.watchdog)
		t.metrics.onWatchdog(t.name)
		return false
	}
}

// drainRemaining runs every already-queued task, in priority order, until
// all three queues are empty. Called once shutdown has been requested.
func (t *Thread) drainRemaining() {
	for t.dispatchOne() {
	}
}
