package internal

import "sync"

// State is a Computed's position in the state machine from spec §4.8.
type State int

const (
	StateDirty State = iota
	StateComputing
	StateClean
	StateErrored
)

// Computed is the non-generic engine behind Computed[T], External[T] and
// Synchronized[T]'s cached-read path. compute may panic; the panic is
// recovered, cached as the node's error, and re-raised on every read until
// a dependency changes (spec §7: "errors from a compute function are
// CACHED").
type Computed struct {
	Node

	mu       sync.Mutex
	state    State
	hasValue bool
	value    any
	err      error
	version  uint64
	equal    func(a, b any) bool
	compute  func() any
}

// NewComputed creates a Computed wrapping compute, using equal to decide
// whether a freshly computed value counts as a real change.
func (r *Runtime) NewComputed(compute func() any, equal func(a, b any) bool) *Computed {
	c := &Computed{
		Node:    Node{Kind: KindComputed},
		state:   StateDirty,
		equal:   equal,
		compute: compute,
	}
	c.OnInvalidate = c.invalidate
	return c
}

// Invalidate forces the Computed to Dirty regardless of its current state
// (except while it is itself Computing) and forwards one notification wave
// to its subscribers. Synchronized uses this both for its user-triggered
// notify() and to force "no caching while unwatched" re-evaluation.
func (c *Computed) Invalidate() {
	c.mu.Lock()
	if c.state == StateComputing {
		c.mu.Unlock()
		return
	}
	c.state = StateDirty
	c.mu.Unlock()

	c.Notify()
}

func (c *Computed) invalidate() {
	c.mu.Lock()
	if c.state != StateClean && c.state != StateErrored {
		c.mu.Unlock()
		return
	}
	c.state = StateDirty
	c.mu.Unlock()

	c.Notify()
}

// Read performs a tracked read: dependency capture, then Peek's
// lazy-recompute semantics.
func (c *Computed) Read() any {
	GetRuntime().Track(&c.Node)
	return c.Peek()
}

// Peek forces the Clean/Dirty/Computing/Errored state machine forward
// without registering a dependency.
func (c *Computed) Peek() any {
	c.mu.Lock()
	switch c.state {
	case StateComputing:
		c.mu.Unlock()
		panic(&CycleDetectedError{Detail: "computed read while computing itself"})
	case StateClean:
		v := c.value
		c.mu.Unlock()
		return v
	case StateErrored:
		err := c.err
		c.mu.Unlock()
		panic(err)
	}
	c.state = StateComputing
	c.mu.Unlock()

	c.BeginTracking()

	var newValue any
	var panicked any
	func() {
		defer c.EndTracking()
		defer func() {
			if p := recover(); p != nil {
				panicked = p
			}
		}()
		GetRuntime().RunTracking(&c.Node, func() {
			newValue = c.compute()
		})
	}()

	if panicked != nil {
		err := wrapUserError(panicked)
		c.mu.Lock()
		c.state = StateErrored
		c.err = err
		c.mu.Unlock()
		panic(err)
	}

	c.mu.Lock()
	hadValue := c.hasValue
	if hadValue && c.equal(c.value, newValue) {
		c.state = StateClean
		v := c.value
		c.mu.Unlock()
		return v
	}

	c.value = newValue
	c.hasValue = true
	c.version++
	c.state = StateClean
	c.mu.Unlock()

	// A first-ever compute has no prior value a subscriber could be stale
	// against: nothing has "changed" yet, it has merely been observed for
	// the first time.
	if hadValue {
		// Whoever is pulling this recompute right now already receives the
		// fresh value through this call's return; excluding it avoids a
		// redundant, and potentially falsely cyclic, re-entrant notify.
		c.NotifyExcept(GetRuntime().Current())
	}
	return newValue
}

// Version returns the version marker, bumped only when a recompute
// produces a value that differs under the configured equality.
func (c *Computed) Version() uint64 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.version
}
