package reactivity

import "github.com/conterra/reactivity/internal"

// Linked pairs a writable value with auto-reset on upstream changes: a
// write slot (Writable[T]) and a read facade (Computed[T]) evaluating
// source. Reading the facade re-evaluates source; when the source value
// differs from the previous snapshot (or on the very first read), reset
// computes the new T and stores it into the write slot. Writing the facade
// forces a read first, so the latest write always wins over a stale source
// (spec §3/§4.1).
type Linked[T, S any] struct {
	write  *Writable[T]
	facade *internal.Computed

	equal       func(a, b T) bool
	hasWritten  bool
	sourceEqual func(a, b S) bool
}

func (*Linked[T, S]) isReactive() {}

// NewLinked creates a Linked facade over source, calling reset whenever
// source's value differs, by Equal[S], from its last-seen snapshot. The
// WithEqual option sets the equality on T used by the facade and by Set.
func NewLinked[T, S any](source func() S, reset func(source S, previous *T) T, opts ...SignalOption[T]) *Linked[T, S] {
	o := newSignalOptions(opts)

	l := &Linked[T, S]{
		equal:       o.equal,
		sourceEqual: Equal[S],
	}

	// The write slot never suppresses its own Set calls: Linked implements
	// its own equality/bypass-on-first-write rule in Set below, since the
	// write path and the reset path have different suppression rules.
	l.write = Reactive[T](*new(T), WithEqual[T](func(T, T) bool { return false }))

	var hasPrevSource bool
	var prevSource S
	var hasPrevValue bool
	var prevValue T

	c := runtime().NewComputed(func() any {
		src := source()

		if !hasPrevSource || !l.sourceEqual(prevSource, src) {
			var prev *T
			if hasPrevValue {
				v := prevValue
				prev = &v
			}

			next := reset(src, prev)
			hasPrevSource = true
			prevSource = src
			hasPrevValue = true
			prevValue = next

			l.write.Set(next)
		}

		v := l.write.Value()
		prevValue = v
		hasPrevValue = true
		return v
	}, anyEqual(o.equal))

	l.facade = c
	return l
}

// NewLinkedIdentity is NewLinked specialized to S == T with the default
// identity reset (ignoring the previous value), matching spec §4.1's
// "default identity when S=T".
func NewLinkedIdentity[T any](source func() T, opts ...SignalOption[T]) *Linked[T, T] {
	return NewLinked(source, func(src T, _ *T) T { return src }, opts...)
}

// Value reads the facade, tracking a dependency on the calling consumer.
func (l *Linked[T, S]) Value() T { return as[T](l.facade.Read()) }

// Peek reads the facade without tracking a dependency.
func (l *Linked[T, S]) Peek() T { return as[T](l.facade.Peek()) }

// Set forces upstream reconciliation (so a stale source can't clobber this
// write), then stores v into the write slot, suppressing no-op writes by
// equality — except the very first write, which always takes effect.
func (l *Linked[T, S]) Set(v T) {
	l.facade.Peek()

	if l.hasWritten && l.equal(as[T](l.write.signal.Peek()), v) {
		return
	}

	l.hasWritten = true
	l.write.Set(v)
}
