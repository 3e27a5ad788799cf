package reactivity

import "github.com/conterra/reactivity/internal"

// WatchOption configures WatchValue/Watch.
type WatchOption[T any] func(*watchOptions[T])

type watchOptions[T any] struct {
	equal     func(a, b T) bool
	immediate bool
	async     bool
}

// WithWatchEqual overrides the equality used to decide whether the
// selector's result actually changed.
func WithWatchEqual[T any](equal func(a, b T) bool) WatchOption[T] {
	return func(o *watchOptions[T]) { o.equal = equal }
}

// WithImmediate makes the callback fire once synchronously with the
// selector's current value (and a zero old value) as soon as the watch is
// created, in addition to firing on every later change.
func WithImmediate[T any]() WatchOption[T] {
	return func(o *watchOptions[T]) { o.immediate = true }
}

// WithAsyncWatch coalesces re-invocations of the callback through the
// dispatch queue instead of running them synchronously at batch-drain time
// (spec §5's async watch variant).
func WithAsyncWatch[T any]() WatchOption[T] {
	return func(o *watchOptions[T]) { o.async = true }
}

// WatchValue observes a single selector. callback fires whenever the
// selector's result changes under the configured equality (Equal[T] by
// default), receiving the new and old value and a way to register a
// cleanup. The cleanup runs the next time the watch re-evaluates its
// selector (before any further callback), or on Destroy.
func WatchValue[T any](selector func() T, callback func(newValue, oldValue T, onCleanup func(func())), opts ...WatchOption[T]) *Handle {
	return newWatch(selector, callback, opts...)
}

// Watch observes several selectors at once, firing when the tuple of their
// results differs elementwise (shallow equality over each element's
// Equal[T]) from the previous tuple, by default.
func Watch[T any](selectors []func() T, callback func(newValue, oldValue []T, onCleanup func(func())), opts ...WatchOption[[]T]) *Handle {
	selector := func() []T {
		vals := make([]T, len(selectors))
		for i, sel := range selectors {
			vals[i] = sel()
		}
		return vals
	}

	opts = append([]WatchOption[[]T]{WithWatchEqual(shallowSliceEqual[T])}, opts...)
	return newWatch(selector, callback, opts...)
}

func shallowSliceEqual[T any](a, b []T) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if !Equal(a[i], b[i]) {
			return false
		}
	}
	return true
}

func newWatch[T any](selector func() T, callback func(newValue, oldValue T, onCleanup func(func())), opts ...WatchOption[T]) *Handle {
	o := watchOptions[T]{equal: Equal[T]}
	for _, opt := range opts {
		opt(&o)
	}

	sel := runtime().NewComputed(func() any { return selector() }, anyEqual(o.equal))

	mode := internal.DispatchSync
	if o.async {
		mode = internal.DispatchAsync
	}

	var prev T
	first := true

	e := runtime().NewEffect(mode, func() func() {
		newVal := as[T](sel.Read())

		if first {
			first = false
			prev = newVal
			if o.immediate {
				var zero T
				return Untracked(func() func() { return watchCleanupBody(newVal, zero, callback) })
			}
			return nil
		}

		old := prev
		if Untracked(func() bool { return o.equal(old, newVal) }) {
			return nil
		}
		prev = newVal
		return Untracked(func() func() { return watchCleanupBody(newVal, old, callback) })
	})

	return &Handle{destroy: e.Destroy}
}

// watchCleanupBody invokes callback and captures whatever cleanup it
// registers. Always called inside Untracked (spec §4.4's "non-tracked
// callback"): a callback that itself reads a signal must not turn that
// signal into a spurious dependency of the watch's internal effect.
func watchCleanupBody[T any](newVal, oldVal T, callback func(T, T, func(func()))) func() {
	var cleanup func()
	callback(newVal, oldVal, func(fn func()) { cleanup = fn })
	return cleanup
}
