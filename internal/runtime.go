package internal

import (
	"sync"

	"github.com/petermattis/goid"
)

// runtimes holds one *Runtime per goroutine id, lazily created. This is the
// idiomatic-Go rendering of the spec's "thread-local batch/tracking state":
// since the engine is cooperative and single-threaded by contract, each
// goroutine that touches it transparently gets its own isolated, cooperative
// scheduler rather than sharing one process-wide mutable stack.
var runtimes sync.Map

// GetRuntime returns the Runtime owned by the calling goroutine, creating it
// on first use.
func GetRuntime() *Runtime {
	gid := goid.Get()

	if r, ok := runtimes.Load(gid); ok {
		return r.(*Runtime)
	}

	r := NewRuntime()
	runtimes.Store(gid, r)
	return r
}

// Runtime is the process-wide (per goroutine) home for the tracking stack,
// the batch depth/deferral list, and the async dispatch queue. A mutex
// guards the fields below since a signal created by one goroutine's Runtime
// may still be read or written from another.
type Runtime struct {
	mu sync.Mutex

	gid int64

	// current is the node currently opening a tracking window (a Computed
	// evaluating its body, or a Watcher inside its window). Reads observed
	// while current == nil, or while tracking is suspended, are untracked.
	current          *Node
	trackingDisabled bool

	batchDepth int
	pending    []func()

	Dispatcher *Dispatcher
}

// NewRuntime builds a Runtime with its own dispatch queue.
func NewRuntime() *Runtime {
	return &Runtime{
		gid:        goid.Get(),
		Dispatcher: NewDispatcher(),
	}
}

// Track links dep as a dependency of the currently tracking consumer, if
// any, and if the calling goroutine is the one that owns the tracking
// window currently open on this Runtime (reads from a foreign goroutine
// never capture a dependency, avoiding cross-goroutine tracking races).
func (r *Runtime) Track(dep *Node) {
	r.mu.Lock()
	cur := r.current
	disabled := r.trackingDisabled
	sameGoroutine := goid.Get() == r.gid
	r.mu.Unlock()

	if cur != nil && !disabled && sameGoroutine {
		cur.Link(dep)
	}
}

// RunTracking opens a tracking window attributed to consumer for the
// duration of fn.
func (r *Runtime) RunTracking(consumer *Node, fn func()) {
	r.mu.Lock()
	prev := r.current
	prevGid := r.gid
	r.current = consumer
	r.gid = goid.Get()
	r.mu.Unlock()

	defer func() {
		r.mu.Lock()
		r.current = prev
		r.gid = prevGid
		r.mu.Unlock()
	}()

	fn()
}

// Current returns the node, if any, currently opening a tracking window on
// this Runtime (a Computed evaluating its body, or a Watcher inside its
// window). Used to recognize when a Computed's recompute is happening as a
// direct, synchronous pull from its own subscriber rather than an unrelated
// push, so that subscriber is not redundantly notified of a value it is
// already receiving through the call that triggered the recompute.
func (r *Runtime) Current() *Node {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.current
}

// RunUntracked suspends dependency capture for the duration of fn.
func (r *Runtime) RunUntracked(fn func()) {
	r.mu.Lock()
	prev := r.trackingDisabled
	r.trackingDisabled = true
	r.mu.Unlock()

	defer func() {
		r.mu.Lock()
		r.trackingDisabled = prev
		r.mu.Unlock()
	}()

	fn()
}

// Batch runs fn with the batch depth incremented, draining the pending
// wake-up list in insertion order exactly once, at the outermost exit.
func (r *Runtime) Batch(fn func()) {
	r.mu.Lock()
	r.batchDepth++
	r.mu.Unlock()

	fn()

	r.mu.Lock()
	r.batchDepth--
	drain := r.batchDepth == 0
	var pending []func()
	if drain {
		pending = r.pending
		r.pending = nil
	}
	r.mu.Unlock()

	for _, p := range pending {
		p()
	}
}

// InBatch reports whether a Batch call is currently active on this Runtime.
func (r *Runtime) InBatch() bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.batchDepth > 0
}

// DeferOrRun defers fn to the current batch's drain if one is active,
// otherwise it runs fn immediately. Callers are responsible for their own
// per-observer dedup flag so that an observer queued twice in one batch
// still runs at most once.
func (r *Runtime) DeferOrRun(fn func()) {
	r.mu.Lock()
	if r.batchDepth > 0 {
		r.pending = append(r.pending, fn)
		r.mu.Unlock()
		return
	}
	r.mu.Unlock()

	fn()
}
