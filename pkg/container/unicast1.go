package container

import "github.com/gopherfabric/delegate/pkg/delegate"

// Unicast1 is the one-argument analogue of Unicast0.
type Unicast1[A1 any] struct {
	d delegate.Delegate1[A1, Void]
}

// Set replaces the bound delegate.
func (u *Unicast1[A1]) Set(d delegate.Delegate1[A1, Void]) { u.d = d }

// Clear unbinds the delegate.
func (u *Unicast1[A1]) Clear() { u.d = delegate.Delegate1[A1, Void]{} }

// IsBound reports whether a delegate is currently set.
func (u *Unicast1[A1]) IsBound() bool { return !u.d.IsEmpty() }

// Invoke calls the bound delegate with arg, if any.
func (u *Unicast1[A1]) Invoke(arg A1) error {
	_, err := u.d.Invoke(arg)
	return err
}
