package reactivity

import "github.com/conterra/reactivity/internal"

// SignalOption configures a Writable and, via the same option type, a
// Computed, External or Synchronized. Linked accepts it too but uses only
// the WithEqual equality.
type SignalOption[T any] func(*signalOptions[T])

type signalOptions[T any] struct {
	equal         func(a, b T) bool
	onFirstWatch  func()
	onLastUnwatch func()
}

func newSignalOptions[T any](opts []SignalOption[T]) signalOptions[T] {
	o := signalOptions[T]{equal: Equal[T]}
	for _, opt := range opts {
		opt(&o)
	}
	return o
}

// WithEqual overrides the default same-value equality used to suppress
// writes/recomputes that don't actually change the value.
func WithEqual[T any](equal func(a, b T) bool) SignalOption[T] {
	return func(o *signalOptions[T]) { o.equal = equal }
}

// WithOnFirstWatch registers a callback fired the moment the signal's
// subscriber count transitions 0 -> 1.
func WithOnFirstWatch[T any](fn func()) SignalOption[T] {
	return func(o *signalOptions[T]) { o.onFirstWatch = fn }
}

// WithOnLastUnwatch registers a callback fired the moment the signal's
// subscriber count transitions 1 -> 0.
func WithOnLastUnwatch[T any](fn func()) SignalOption[T] {
	return func(o *signalOptions[T]) { o.onLastUnwatch = fn }
}

// Writable is a mutable reactive cell: the Writable<T> of spec §3/§4.1.
type Writable[T any] struct {
	signal *internal.Signal
}

func (*Writable[T]) isReactive() {}

// Reactive creates a Writable holding initial.
func Reactive[T any](initial T, opts ...SignalOption[T]) *Writable[T] {
	o := newSignalOptions(opts)

	s := runtime().NewSignal(initial, anyEqual(o.equal))
	s.OnFirstWatch = o.onFirstWatch
	s.OnLastUnwatch = o.onLastUnwatch

	return &Writable[T]{signal: s}
}

// NewSignal is an alias for Reactive kept for readers coming from the
// teacher's naming of the same concept.
func NewSignal[T any](initial T, opts ...SignalOption[T]) *Writable[T] {
	return Reactive(initial, opts...)
}

// Value performs a tracked read.
func (w *Writable[T]) Value() T { return as[T](w.signal.Read()) }

// Peek performs an untracked read.
func (w *Writable[T]) Peek() T { return as[T](w.signal.Peek()) }

// Set writes a new value, suppressing store and propagation when the
// configured equality holds.
func (w *Writable[T]) Set(v T) { w.signal.Write(v) }

// Write is an alias for Set.
func (w *Writable[T]) Write(v T) { w.signal.Write(v) }
