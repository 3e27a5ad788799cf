package internal

import "sync"

// dispatchEntry is one queued macro-task. Destroy marks it cancelled; a
// cancelled entry is skipped on drain whether or not it had already been
// reached, matching the handle contract in spec §4.5.
type dispatchEntry struct {
	mu        sync.Mutex
	cb        func()
	cancelled bool
}

// DispatchHandle lets a caller cancel a queued callback.
type DispatchHandle struct {
	entry *dispatchEntry
}

// Destroy cancels the queued callback. Idempotent.
func (h *DispatchHandle) Destroy() {
	h.entry.mu.Lock()
	h.entry.cancelled = true
	h.entry.mu.Unlock()
}

// Dispatcher is the per-Runtime FIFO macro-task queue backing async
// effects, async watches, and DispatchAsyncCallback. Per spec §1/§5 the
// engine is single-threaded and cooperative, so Dispatcher never spawns a
// goroutine of its own: Enqueue only ever appends to the queue, and a
// queued callback runs exclusively when something explicitly pumps the
// queue via Drain/NextTick, on that caller's own goroutine. This keeps the
// dependency graph mutations a re-run performs on the same cooperative
// execution context as the Runtime that owns it, never concurrent with
// whatever that goroutine does next.
type Dispatcher struct {
	mu    sync.Mutex
	queue []*dispatchEntry
}

// NewDispatcher creates an empty dispatch queue.
func NewDispatcher() *Dispatcher {
	return &Dispatcher{}
}

// Enqueue schedules cb to run on the next Drain/NextTick call and returns a
// handle that can cancel it before then.
func (d *Dispatcher) Enqueue(cb func()) *DispatchHandle {
	e := &dispatchEntry{cb: cb}

	d.mu.Lock()
	d.queue = append(d.queue, e)
	d.mu.Unlock()

	return &DispatchHandle{entry: e}
}

// Drain runs every callback queued so far, in FIFO order, on the calling
// goroutine. A callback that enqueues more work during this same Drain
// call is also serviced before Drain returns, mirroring a macro-task queue
// that keeps ticking until it is empty.
func (d *Dispatcher) Drain() {
	for {
		d.mu.Lock()
		batch := d.queue
		d.queue = nil
		d.mu.Unlock()

		if len(batch) == 0 {
			return
		}

		for _, e := range batch {
			e.mu.Lock()
			cancelled := e.cancelled
			e.mu.Unlock()
			if cancelled {
				continue
			}

			runGuarded(e.cb)
		}
	}
}

// NextTick drains the queue synchronously, on the calling goroutine, and
// returns an already-closed channel so existing `<-dispatcher.NextTick()`
// call sites (mainly tests wanting to wait for pending async work to
// settle) keep working unchanged.
func (d *Dispatcher) NextTick() <-chan struct{} {
	d.Drain()
	ch := make(chan struct{})
	close(ch)
	return ch
}

func runGuarded(cb func()) {
	defer func() {
		if p := recover(); p != nil {
			ReportCallbackError(wrapUserError(p), "async dispatch callback")
		}
	}()
	cb()
}
