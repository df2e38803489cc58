package container

import (
	"fmt"

	"github.com/gopherfabric/delegate/pkg/delegate"
)

// Entry0 pairs a stored delegate with the priority it was added at. Signal
// uses the priority field to reorder a broadcast snapshot; Multicast0's own
// Broadcast ignores it and runs in insertion order.
type Entry0 struct {
	Delegate delegate.Delegate0[Void]
	Priority Priority
}

// Multicast0 holds an ordered list of zero-argument void delegates. Add
// pushes to the back; Remove performs a linear search for the first equal
// delegate and drops it, matching spec.md §4.4. It is not safe for
// concurrent use — see SafeMulticast0 for the reentrant, mutex-protected
// variant used by Signal.
type Multicast0 struct {
	entries []Entry0
}

// NewMulticast0 returns an empty Multicast0.
func NewMulticast0() *Multicast0 {
	return &Multicast0{}
}

// Add appends d at Normal priority.
func (m *Multicast0) Add(d delegate.Delegate0[Void]) {
	m.AddPriority(d, Normal)
}

// AddPriority appends d, recording priority for consumers (Signal) that
// reorder emission; Multicast0's own Broadcast always runs in insertion
// order.
func (m *Multicast0) AddPriority(d delegate.Delegate0[Void], priority Priority) {
	m.entries = append(m.entries, Entry0{Delegate: d, Priority: priority})
}

// Remove drops the first entry equal to d, reporting whether one was found.
func (m *Multicast0) Remove(d delegate.Delegate0[Void]) bool {
	for i, e := range m.entries {
		if e.Delegate.Equals(d) {
			m.entries = append(m.entries[:i], m.entries[i+1:]...)
			return true
		}
	}
	return false
}

// Len reports the number of subscribed delegates.
func (m *Multicast0) Len() int { return len(m.entries) }

// Snapshot returns a copy of the current entries in insertion order, used
// by callers (Signal) that need to reorder a broadcast without mutating the
// container.
func (m *Multicast0) Snapshot() []Entry0 {
	out := make([]Entry0, len(m.entries))
	copy(out, m.entries)
	return out
}

// Broadcast invokes every subscriber in insertion order. A panicking or
// erroring subscriber does not stop the remaining ones; all failures are
// collected and returned together.
func (m *Multicast0) Broadcast() []error {
	snapshot := m.Snapshot()
	var errs []error
	for _, e := range snapshot {
		if err := invokeRecover0(e.Delegate); err != nil {
			errs = append(errs, err)
		}
	}
	return errs
}

func invokeRecover0(d delegate.Delegate0[Void]) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("delegate panicked: %v", r)
		}
	}()
	_, err = d.Invoke()
	return err
}
