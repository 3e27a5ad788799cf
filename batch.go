package reactivity

// Batch defers observer wake-up until fn (and any nested Batch calls
// inside it) returns, then drains the queued observers exactly once in
// registration order (spec §4.2). Writes still store and propagate
// dirtiness synchronously inside the batch; only the final dispatch to
// effect/watch callbacks is held.
func Batch(fn func()) {
	runtime().Batch(fn)
}

// NewBatch is an alias for Batch kept for readers coming from the
// teacher's naming of the same concept.
func NewBatch(fn func()) { Batch(fn) }

// Untracked runs fn with dependency capture suspended for its dynamic
// extent (spec §4.2) and returns its result.
func Untracked[T any](fn func() T) T {
	return untrackedValue(fn)
}

func untrackedValue[T any](fn func() T) T {
	var result T
	runtime().RunUntracked(func() { result = fn() })
	return result
}
