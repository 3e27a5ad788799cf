package reactivity

import "github.com/conterra/reactivity/internal"

// External is a Computed whose body reads a hidden invalidation Writable
// and then calls the user getter inside an untracked scope: "a lazy getter
// wrapped in a signal with manual invalidation" (spec §3/§4.1).
type External[T any] struct {
	version  *Writable[bool]
	computed *internal.Computed
}

func (*External[T]) isReadonlyReactive() {}

// NewExternal wraps getter in a signal that only re-invokes getter after
// Trigger is called.
func NewExternal[T any](getter func() T, opts ...SignalOption[T]) *External[T] {
	o := newSignalOptions(opts)

	version := Reactive(false)
	c := runtime().NewComputed(func() any {
		version.Value()
		return untrackedValue(getter)
	}, anyEqual(o.equal))
	c.OnFirstWatch = o.onFirstWatch
	c.OnLastUnwatch = o.onLastUnwatch

	return &External[T]{version: version, computed: c}
}

// Value re-evaluates getter if Trigger was called since the last read,
// tracking a dependency on the calling consumer.
func (e *External[T]) Value() T { return as[T](e.computed.Read()) }

// Peek returns the value without tracking a dependency.
func (e *External[T]) Peek() T { return as[T](e.computed.Peek()) }

// Trigger invalidates the cached value so the next read re-invokes getter.
// It is a plain method value, so `t := e.Trigger; t()` captures its
// receiver independently — Go's answer to binding `this` for a listener.
func (e *External[T]) Trigger() { e.version.Set(!e.version.Peek()) }
