package container

import (
	"fmt"

	"github.com/gopherfabric/delegate/pkg/delegate"
)

// Entry1 is the one-argument analogue of Entry0.
type Entry1[A1 any] struct {
	Delegate delegate.Delegate1[A1, Void]
	Priority Priority
}

// Multicast1 is the one-argument analogue of Multicast0.
type Multicast1[A1 any] struct {
	entries []Entry1[A1]
}

// NewMulticast1 returns an empty Multicast1.
func NewMulticast1[A1 any]() *Multicast1[A1] {
	return &Multicast1[A1]{}
}

// Add appends d at Normal priority.
func (m *Multicast1[A1]) Add(d delegate.Delegate1[A1, Void]) {
	m.AddPriority(d, Normal)
}

// AddPriority appends d, recording its priority for Signal's reordering.
func (m *Multicast1[A1]) AddPriority(d delegate.Delegate1[A1, Void], priority Priority) {
	m.entries = append(m.entries, Entry1[A1]{Delegate: d, Priority: priority})
}

// Remove drops the first entry equal to d.
func (m *Multicast1[A1]) Remove(d delegate.Delegate1[A1, Void]) bool {
	for i, e := range m.entries {
		if e.Delegate.Equals(d) {
			m.entries = append(m.entries[:i], m.entries[i+1:]...)
			return true
		}
	}
	return false
}

// Len reports the number of subscribed delegates.
func (m *Multicast1[A1]) Len() int { return len(m.entries) }

// Snapshot returns a copy of the current entries in insertion order.
func (m *Multicast1[A1]) Snapshot() []Entry1[A1] {
	out := make([]Entry1[A1], len(m.entries))
	copy(out, m.entries)
	return out
}

// Broadcast invokes every subscriber in insertion order with arg, collecting
// rather than stopping at the first failure or panic.
func (m *Multicast1[A1]) Broadcast(arg A1) []error {
	snapshot := m.Snapshot()
	var errs []error
	for _, e := range snapshot {
		if err := invokeRecover1(e.Delegate, arg); err != nil {
			errs = append(errs, err)
		}
	}
	return errs
}

func invokeRecover1[A1 any](d delegate.Delegate1[A1, Void], arg A1) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("delegate panicked: %v", r)
		}
	}()
	_, err = d.Invoke(arg)
	return err
}
