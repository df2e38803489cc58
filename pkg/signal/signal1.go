package signal

import (
	"fmt"
	"sort"
	"sync/atomic"

	"github.com/gopherfabric/delegate/pkg/container"
	"github.com/gopherfabric/delegate/pkg/delegate"
)

// Signal1 is the one-argument analogue of Signal0.
type Signal1[A1 any] struct {
	mc     *container.SafeMulticast1[A1]
	closed int32
}

// NewSignal1 returns a ready-to-use Signal1.
func NewSignal1[A1 any]() *Signal1[A1] {
	return &Signal1[A1]{mc: container.NewSafeMulticast1[A1]()}
}

// Connect subscribes fn at Normal priority.
func (s *Signal1[A1]) Connect(fn func(A1)) Connection {
	return s.ConnectPriority(fn, container.Normal)
}

// ConnectPriority subscribes fn at the given priority.
func (s *Signal1[A1]) ConnectPriority(fn func(A1), priority container.Priority) Connection {
	entry := container.Entry1[A1]{Delegate: container.WrapCallable1(fn), Priority: priority}
	s.mc.Add(entry)
	return newConnection(&s.closed, func() { s.mc.Remove(entry) })
}

// Emit invokes every live subscriber with arg, highest priority first,
// preserving connection order within a priority tier.
func (s *Signal1[A1]) Emit(arg A1) []error {
	entries := s.mc.Snapshot()
	sort.SliceStable(entries, func(i, j int) bool { return entries[i].Priority > entries[j].Priority })

	var errs []error
	for _, e := range entries {
		if err := invokeRecover1(e.Delegate, arg); err != nil {
			errs = append(errs, err)
		}
	}
	return errs
}

// Close permanently severs the Signal from every outstanding Connection.
func (s *Signal1[A1]) Close() {
	atomic.StoreInt32(&s.closed, 1)
}

func invokeRecover1[A1 any](d delegate.Delegate1[A1, container.Void], arg A1) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("signal subscriber panicked: %v", r)
		}
	}()
	_, err = d.Invoke(arg)
	return err
}
