package reactivity

import "github.com/conterra/reactivity/internal"

// NewEffect runs body immediately, tracking every signal it reads. Whenever
// any of those dependencies changes, body re-runs: first its previous
// cleanup (the function it returned, or nil for none), then itself again
// with a fresh dependency set (spec §4.3). Re-execution happens synchronously
// at the end of the enclosing Batch, or immediately outside of one.
//
// If the initial run panics, the effect is torn down and the panic
// propagates to the caller as a UserCallbackError (unless it already is
// one or a CycleDetectedError). A panic from a later re-execution
// propagates out of the write (or Batch) that triggered it; when it comes
// from the previous cleanup, the effect is torn down as well.
func NewEffect(body func() func()) *Handle {
	e := runtime().NewEffect(internal.DispatchSync, body)
	return &Handle{destroy: e.Destroy}
}

// NewEffectFunc is NewEffect for bodies with no cleanup to register.
func NewEffectFunc(body func()) *Handle {
	return NewEffect(func() func() {
		body()
		return nil
	})
}
