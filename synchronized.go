package reactivity

import "github.com/conterra/reactivity/internal"

// Synchronized is a Computed with two modes determined by whether it
// currently has at least one live subscriber (spec §3/§4.1/§4.8):
//
//   - unsubscribed: every read re-invokes getter, no caching;
//   - subscribed: the result is cached; subscribe(notify) is invoked the
//     moment the first subscriber appears, and the returned unsubscribe is
//     invoked the moment the last subscriber leaves. notify() invalidates
//     the cache.
type Synchronized[T any] struct {
	computed *internal.Computed
}

func (*Synchronized[T]) isReadonlyReactive() {}

// NewSynchronized wraps getter with a subscribe/unsubscribe lifecycle that
// only runs while this signal is watched.
func NewSynchronized[T any](getter func() T, subscribe func(notify func()) (unsubscribe func()), opts ...SignalOption[T]) *Synchronized[T] {
	o := newSignalOptions(opts)

	s := &Synchronized[T]{}

	c := runtime().NewComputed(func() any {
		return untrackedValue(getter)
	}, anyEqual(o.equal))

	var teardown func()

	c.OnFirstWatch = func() {
		notify := func() { c.Invalidate() }

		recoverAndReport("synchronized subscribe", func() {
			teardown = subscribe(notify)
		})

		if o.onFirstWatch != nil {
			o.onFirstWatch()
		}
	}
	c.OnLastUnwatch = func() {
		if teardown != nil {
			fn := teardown
			teardown = nil
			recoverAndReport("synchronized unsubscribe", fn)
		}

		if o.onLastUnwatch != nil {
			o.onLastUnwatch()
		}

		// Becoming unwatched must invalidate the cache immediately: the next
		// read, whenever it happens, must re-invoke getter rather than
		// return the last subscribed-mode snapshot.
		c.Invalidate()
	}

	s.computed = c
	return s
}

// Value reads the signal, tracking a dependency on the calling consumer.
// While unsubscribed it re-invokes getter on every call; once subscribed it
// returns the cached value until notify() is called.
func (s *Synchronized[T]) Value() T {
	v := as[T](s.computed.Read())
	s.forceDirtyIfUnwatched()
	return v
}

// Peek reads the signal without tracking a dependency.
func (s *Synchronized[T]) Peek() T {
	v := as[T](s.computed.Peek())
	s.forceDirtyIfUnwatched()
	return v
}

func (s *Synchronized[T]) forceDirtyIfUnwatched() {
	if !s.computed.IsWatched() {
		s.computed.Invalidate()
	}
}
