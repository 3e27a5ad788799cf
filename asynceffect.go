package reactivity

import "github.com/conterra/reactivity/internal"

// NewAsyncEffect is NewEffect, except re-execution is coalesced through the
// dispatch queue instead of running synchronously: a notification while one
// re-execution is already pending is dropped, and the eventual re-run
// happens as a new macro-task at the next NextTick pump, on whatever
// goroutine calls it, rather than inline with the write that triggered it
// (spec §5). Panics from the initial run still propagate to the caller;
// panics from any later re-execution (body or cleanup) are reported
// through ReportCallbackError.
func NewAsyncEffect(body func() func()) *Handle {
	e := runtime().NewEffect(internal.DispatchAsync, body)
	return &Handle{destroy: e.Destroy}
}

// NewAsyncEffectFunc is NewAsyncEffect for bodies with no cleanup to
// register.
func NewAsyncEffectFunc(body func()) *Handle {
	return NewAsyncEffect(func() func() {
		body()
		return nil
	})
}
