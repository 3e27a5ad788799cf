package reactivity

import "github.com/conterra/reactivity/internal"

// Computed is a lazily evaluated, cached derived signal: the Computed<T>
// of spec §3/§4.1. It re-evaluates on demand when dirty. When the new value
// is equal to the previous one under the configured equality, the previous
// value is kept and the version is not bumped. Dependents are marked dirty
// as soon as a dependency is written, before that comparison runs, so an
// equal recomputed value does not spare them their own re-evaluation.
type Computed[T any] struct {
	computed *internal.Computed
}

func (*Computed[T]) isReadonlyReactive() {}

// NewComputed creates a Computed deriving its value from compute.
func NewComputed[T any](compute func() T, opts ...SignalOption[T]) *Computed[T] {
	o := newSignalOptions(opts)

	c := runtime().NewComputed(func() any {
		return compute()
	}, anyEqual(o.equal))
	c.OnFirstWatch = o.onFirstWatch
	c.OnLastUnwatch = o.onLastUnwatch

	return &Computed[T]{computed: c}
}

// Value re-evaluates if dirty and returns the cached value, tracking a
// dependency on the calling consumer.
func (c *Computed[T]) Value() T { return as[T](c.computed.Read()) }

// Peek returns the (possibly freshly re-evaluated) value without tracking
// a dependency.
func (c *Computed[T]) Peek() T { return as[T](c.computed.Peek()) }
