package reactivity

// DispatchAsyncCallback queues cb on the calling goroutine's dispatch
// queue as a new macro-task, FIFO with every other pending async
// effect/watch re-execution and DispatchAsyncCallback call on the same
// runtime (spec §5). cb does not run until something pumps the queue with
// NextTick: the engine is single-threaded and cooperative, so nothing ever
// runs it on the caller's behalf on a separate goroutine. The returned
// Handle cancels cb if Destroy is called before that; Destroy after it has
// already run is a no-op.
func DispatchAsyncCallback(cb func()) *Handle {
	h := runtime().Dispatcher.Enqueue(cb)
	return &Handle{destroy: h.Destroy}
}

// NextTick drains the calling goroutine's dispatch queue synchronously, on
// the calling goroutine, then returns an already-closed channel: every
// callback enqueued before this call (async effects, async watches,
// DispatchAsyncCallback) has run or been cancelled by the time it returns.
// This is the engine's only pump for queued async work — call it from
// whatever loop drives the runtime forward (tests included).
func NextTick() <-chan struct{} {
	return runtime().Dispatcher.NextTick()
}
