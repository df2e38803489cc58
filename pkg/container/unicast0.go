package container

import "github.com/gopherfabric/delegate/pkg/delegate"

// Unicast0 holds at most one zero-argument void delegate. Set replaces
// whatever was previously bound, matching spec.md §4.4's single-slot
// container used where exactly one subscriber is meaningful (e.g. a
// transport's error callback).
type Unicast0 struct {
	d delegate.Delegate0[Void]
}

// Set replaces the bound delegate.
func (u *Unicast0) Set(d delegate.Delegate0[Void]) { u.d = d }

// Clear unbinds the delegate.
func (u *Unicast0) Clear() { u.d = delegate.Delegate0[Void]{} }

// IsBound reports whether a delegate is currently set.
func (u *Unicast0) IsBound() bool { return !u.d.IsEmpty() }

// Invoke calls the bound delegate, if any, reporting delegateerr.ErrEmptyInvocation
// otherwise.
func (u *Unicast0) Invoke() error {
	_, err := u.d.Invoke()
	return err
}
