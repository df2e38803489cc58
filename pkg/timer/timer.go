// Package timer implements the L7 interval/one-shot timer of spec.md §4.7:
// a zero-argument multicast fired from a process-wide Registry's periodic
// ProcessAll sweep rather than its own goroutine, so a single driver
// (typically a thread.Thread tick) can advance every live timer.
package timer

import (
	"sync"
	"sync/atomic"
	"time"

	"github.com/gopherfabric/delegate/pkg/container"
	"github.com/gopherfabric/delegate/pkg/logging"
)

// ID identifies a Timer within a Registry.
type ID uint64

var idSeq uint64

func nextID() ID { return ID(atomic.AddUint64(&idSeq, 1)) }

// Timer is an interval or one-shot zero-argument event source. It does not
// run on its own; a Registry's ProcessAll advances it.
type Timer struct {
	id ID

	mu             sync.Mutex
	interval       time.Duration
	oneShot        bool
	enabled        bool
	lastExpiration time.Time

	onExpire *container.SafeMulticast0
	logger   logging.Logger
}

// newTimer constructs a disabled Timer; use Registry.NewTimer to also
// register it.
func newTimer(logger logging.Logger) *Timer {
	return &Timer{id: nextID(), onExpire: container.NewSafeMulticast0(), logger: logger}
}

// ID reports the timer's identity.
func (t *Timer) ID() ID { return t.id }

// Start arms the timer to fire every interval, or once after interval if
// oneShot is true, counting from now.
func (t *Timer) Start(interval time.Duration, oneShot bool) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.interval = interval
	t.oneShot = oneShot
	t.enabled = true
	t.lastExpiration = time.Now()
}

// Stop disarms the timer without removing its subscribers.
func (t *Timer) Stop() {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.enabled = false
}

// Enabled reports whether the timer is currently armed.
func (t *Timer) Enabled() bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.enabled
}

// OnExpire subscribes fn, returning an Entry0 usable with Unsubscribe.
func (t *Timer) OnExpire(fn func()) container.Entry0 {
	entry := container.Entry0{Delegate: container.WrapCallable0(fn), Priority: container.Normal}
	t.onExpire.Add(entry)
	return entry
}

// Unsubscribe removes a subscription returned by OnExpire.
func (t *Timer) Unsubscribe(entry container.Entry0) bool {
	return t.onExpire.Remove(entry)
}

// processIfDue fires the timer if it is due as of now, applying spec.md
// §4.7's 2x-behind resync: if the driver has fallen more than two
// intervals behind (a long GC pause, a blocked ProcessAll caller, ...), the
// timer does not fire once per missed interval — it resyncs to now and
// fires once, logging a diagnostic.
func (t *Timer) processIfDue(now time.Time) (fired bool, errs []error) {
	t.mu.Lock()
	if !t.enabled || now.Before(t.lastExpiration.Add(t.interval)) {
		t.mu.Unlock()
		return false, nil
	}

	behind := now.Sub(t.lastExpiration)
	if t.interval > 0 && behind > 2*t.interval {
		t.logger.Warnf("timer %d: %s behind schedule (interval %s), resyncing", t.id, behind, t.interval)
		t.lastExpiration = now
	} else {
		t.lastExpiration = t.lastExpiration.Add(t.interval)
	}

	if t.oneShot {
		t.enabled = false
	}
	mc := t.onExpire
	t.mu.Unlock()

	return true, mc.Broadcast()
}
