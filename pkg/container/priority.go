// Package container implements the L4 delegate containers of spec.md §4.4:
// Unicast (at most one delegate), Multicast (ordered, duplicates allowed),
// and SafeMulticast (mutex-protected, reentrancy-safe via lazy deletion).
//
// Containers are typed over void-returning signatures — every delegate
// stored here returns struct{} — matching spec.md §4.4's "containers are
// typed over signatures returning ()/void". Two arities are implemented,
// arity 0 and arity 1, since those are the only shapes exercised by the
// timer registry (zero-argument ticks) and the signal layer's testable
// scenarios (spec.md §8 S1/S5); see DESIGN.md for why 2/3-argument
// multicast containers were left unbuilt.
package container

// Priority orders emission for Signal subscriptions (spec.md §3). It is
// recorded alongside every entry added to a Multicast/SafeMulticast, but
// only the signal package's Emit uses it to reorder a broadcast snapshot —
// plain container broadcasts always run in insertion order, per spec.md
// §4.4's "add pushes to the back ... only affects signals".
type Priority int

const (
	Low Priority = iota
	Normal
	High
)

func (p Priority) String() string {
	switch p {
	case Low:
		return "low"
	case Normal:
		return "normal"
	case High:
		return "high"
	default:
		return "unknown"
	}
}
