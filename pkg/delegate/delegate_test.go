package delegate_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/gopherfabric/delegate/pkg/delegate"
	"github.com/gopherfabric/delegate/pkg/delegateerr"
)

func add(a, b int) int { return a + b }

type counter struct{ n int }

func (c *counter) Add(v int) int {
	c.n += v
	return c.n
}

// TestEquality_FreeFunction verifies the invariant from spec.md §8.1: two
// delegates bound to the same inputs compare equal.
func TestEquality_FreeFunction(t *testing.T) {
	d1 := delegate.BindFree2[int, int, int](add)
	d2 := delegate.BindFree2[int, int, int](add)
	require.True(t, d1.Equals(d2))

	other := delegate.BindFree2[int, int, int](func(a, b int) int { return a - b })
	require.False(t, d1.Equals(other))
}

func TestEquality_Method(t *testing.T) {
	c := &counter{}
	d1 := delegate.BindMethod1[int, int](c, c.Add)
	d2 := delegate.BindMethod1[int, int](c, c.Add)
	require.True(t, d1.Equals(d2))

	other := &counter{}
	d3 := delegate.BindMethod1[int, int](other, other.Add)
	require.False(t, d1.Equals(d3))
}

func TestInvoke_Empty(t *testing.T) {
	var d delegate.Delegate1[int, int]
	require.True(t, d.IsEmpty())
	_, err := d.Invoke(1)
	require.ErrorIs(t, err, delegateerr.ErrEmptyInvocation)
}

func TestInvoke_Free(t *testing.T) {
	d := delegate.BindFree2[int, int, int](add)
	res, err := d.Invoke(2, 3)
	require.NoError(t, err)
	require.Equal(t, 5, res)
}

func TestClone_SharedIncrementsRefcount(t *testing.T) {
	c := &counter{}
	shared := delegate.NewShared(c)
	require.EqualValues(t, 1, shared.RefCount())

	d := delegate.BindShared1[counter, int, int](shared, c.Add)
	clone := d.Clone()
	_ = clone

	require.EqualValues(t, 2, shared.RefCount())
}

func TestBindNil_ProducesEmpty(t *testing.T) {
	var fp func(int) int
	d := delegate.BindFree1[int, int](fp)
	require.True(t, d.IsEmpty())
}
