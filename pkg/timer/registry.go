package timer

import (
	"sync"
	"time"

	"github.com/gopherfabric/delegate/pkg/logging"
)

// Registry holds every Timer that should advance together under one
// ProcessAll sweep. Go has no generic weak-pointer API available at this
// module's language version, so unlike the source's weak_ptr-backed
// registry, a Timer must be explicitly removed via Unregister (typically
// from the owner's shutdown path) — see DESIGN.md for the Open Question
// decision. Lazy deletion still applies: Unregister during a ProcessAll
// sweep only tombstones the entry, compacted once the sweep returns.
type Registry struct {
	mu              sync.Mutex
	timers          map[ID]*Timer
	removed         map[ID]bool
	processingDepth int
	logger          logging.Logger
	metrics         *Metrics
}

// RegistryOption configures a Registry at construction time.
type RegistryOption func(*Registry)

// NewRegistry returns an empty Registry. Timers created via NewTimer log
// through logger; logging.Discard is used if logger is nil.
func NewRegistry(logger logging.Logger, opts ...RegistryOption) *Registry {
	if logger == nil {
		logger = logging.Discard
	}
	r := &Registry{timers: make(map[ID]*Timer), removed: make(map[ID]bool), logger: logger}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// NewTimer creates and registers a disabled Timer.
func (r *Registry) NewTimer() *Timer {
	t := newTimer(r.logger)
	r.mu.Lock()
	r.timers[t.id] = t
	n := len(r.timers)
	r.mu.Unlock()
	r.metrics.setRegistered(n)
	return t
}

// Unregister removes t from the registry; ProcessAll will no longer
// advance it.
func (r *Registry) Unregister(t *Timer) {
	r.mu.Lock()
	if r.processingDepth > 0 {
		r.removed[t.id] = true
		r.mu.Unlock()
		return
	}
	delete(r.timers, t.id)
	n := len(r.timers)
	r.mu.Unlock()
	r.metrics.setRegistered(n)
}

// Len reports how many timers are currently registered.
func (r *Registry) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.timers)
}

// ProcessAll advances every registered timer, firing those due as of now.
// Errors from subscriber callbacks are collected across all timers rather
// than stopping the sweep early.
func (r *Registry) ProcessAll(now time.Time) []error {
	r.mu.Lock()
	r.processingDepth++
	snapshot := make([]*Timer, 0, len(r.timers))
	for _, t := range r.timers {
		snapshot = append(snapshot, t)
	}
	r.mu.Unlock()

	var errs []error
	for _, t := range snapshot {
		fired, fireErrs := t.processIfDue(now)
		if fired {
			r.metrics.onFire()
		}
		errs = append(errs, fireErrs...)
	}

	r.mu.Lock()
	r.processingDepth--
	compacted := false
	if r.processingDepth == 0 && len(r.removed) > 0 {
		for id := range r.removed {
			delete(r.timers, id)
		}
		r.removed = make(map[ID]bool)
		compacted = true
	}
	n := len(r.timers)
	r.mu.Unlock()
	if compacted {
		r.metrics.setRegistered(n)
	}

	return errs
}
