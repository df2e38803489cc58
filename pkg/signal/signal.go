package signal

import (
	"fmt"
	"sort"
	"sync/atomic"

	"github.com/gopherfabric/delegate/pkg/container"
	"github.com/gopherfabric/delegate/pkg/delegate"
)

// Signal0 is a zero-argument, priority-ordered multicast event source.
type Signal0 struct {
	mc     *container.SafeMulticast0
	closed int32
}

// NewSignal0 returns a ready-to-use Signal0.
func NewSignal0() *Signal0 {
	return &Signal0{mc: container.NewSafeMulticast0()}
}

// Connect subscribes fn at Normal priority.
func (s *Signal0) Connect(fn func()) Connection {
	return s.ConnectPriority(fn, container.Normal)
}

// ConnectPriority subscribes fn, ordering its emission relative to other
// subscribers by priority (spec.md §4.5): higher priority runs first;
// subscribers at the same priority run in connection order.
func (s *Signal0) ConnectPriority(fn func(), priority container.Priority) Connection {
	entry := container.Entry0{Delegate: container.WrapCallable0(fn), Priority: priority}
	s.mc.Add(entry)
	return newConnection(&s.closed, func() { s.mc.Remove(entry) })
}

// Emit invokes every live subscriber, highest priority first, preserving
// connection order within a priority tier. A panicking or erroring
// subscriber does not stop the remaining ones.
func (s *Signal0) Emit() []error {
	entries := s.mc.Snapshot()
	sort.SliceStable(entries, func(i, j int) bool { return entries[i].Priority > entries[j].Priority })

	var errs []error
	for _, e := range entries {
		if err := invokeRecover0(e.Delegate); err != nil {
			errs = append(errs, err)
		}
	}
	return errs
}

// Close permanently severs the Signal from every outstanding Connection:
// all of them report State() == Inert from this point on, matching the
// source's behavior when the Signal itself is destroyed while Connections
// still reference it.
func (s *Signal0) Close() {
	atomic.StoreInt32(&s.closed, 1)
}

func invokeRecover0(d delegate.Delegate0[container.Void]) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("signal subscriber panicked: %v", r)
		}
	}()
	_, err = d.Invoke()
	return err
}
