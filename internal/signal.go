package internal

import "sync"

// Signal is the non-generic engine behind Writable[T], the hidden
// invalidation cell inside External[T], and the write slot inside
// Linked[T,S]. Its value is stored as `any`; the generic wrapper asserts it
// back to T on read.
type Signal struct {
	Node

	mu      sync.Mutex
	value   any
	version uint64
	equal   func(a, b any) bool
}

// NewSignal creates a Signal holding initial, using equal to suppress
// writes that don't change the value.
func (r *Runtime) NewSignal(initial any, equal func(a, b any) bool) *Signal {
	return &Signal{
		Node:  Node{Kind: KindSignal},
		value: initial,
		equal: equal,
	}
}

// Read performs a tracked read: it registers the currently tracking
// consumer as a dependent before returning the value.
func (s *Signal) Read() any {
	GetRuntime().Track(&s.Node)
	return s.Peek()
}

// Peek returns the value without tracking a dependency.
func (s *Signal) Peek() any {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.value
}

// Version returns the current version marker, incremented on every value
// change that survives equality suppression.
func (s *Signal) Version() uint64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.version
}

// Write stores v if it differs from the current value under s.equal, then
// bumps the version and notifies subscribers. The equality check always
// runs outside of any tracking window (§3 invariant 7).
func (s *Signal) Write(v any) {
	r := GetRuntime()

	var changed bool
	r.RunUntracked(func() {
		s.mu.Lock()
		if s.equal(s.value, v) {
			s.mu.Unlock()
			return
		}
		s.value = v
		s.version++
		s.mu.Unlock()
		changed = true
	})

	if changed {
		s.Notify()
	}
}

// Set is an alias for Write kept for parity with internal readers that
// don't want to think about "the write path".
func (s *Signal) Set(v any) { s.Write(v) }
