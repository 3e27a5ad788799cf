// Package reactivity is a fine-grained reactivity engine: a dependency
// graph between mutable cells ("signals"), derived cells ("computed"), and
// observers ("effects" and "watches"), propagated with precise,
// deterministic semantics.
//
// Every reactive primitive wraps a non-generic node from the internal
// package; this package only adds typed storage and the public API.
package reactivity

import "github.com/conterra/reactivity/internal"

// as type-asserts an `any` back to T, returning the zero value for a nil
// interface instead of panicking — the same convenience the teacher's
// root-level wrapper relied on for zero-valued, not-yet-written signals.
func as[T any](v any) T {
	if v == nil {
		var zero T
		return zero
	}
	return v.(T)
}

// reactiveMarker is implemented by the read/write primitives, Writable and
// Linked; IsReactive uses it to distinguish writable signals from the
// read-only derived ones.
type reactiveMarker interface {
	isReactive()
}

// readonlyReactiveMarker is implemented by every read-only derived
// primitive (Computed, External, Synchronized).
type readonlyReactiveMarker interface {
	isReadonlyReactive()
}

// Reader is satisfied by every signal this package produces: a tracked
// Value() read and an untracked Peek() read.
type Reader[T any] interface {
	Value() T
	Peek() T
}

// valueOrT reads through v if it implements Reader[T], otherwise treats v
// as an already-resolved T. This backs GetValue/PeekValue's "maybe_signal"
// contract from spec §6.
func valueOrT[T any](v any, read func(Reader[T]) T) T {
	if r, ok := v.(Reader[T]); ok {
		return read(r)
	}
	return as[T](v)
}

// GetValue returns v.Value() if v is a Reader[T] (tracked read), otherwise
// it treats v as an already-resolved T.
func GetValue[T any](v any) T {
	return valueOrT[T](v, Reader[T].Value)
}

// PeekValue returns v.Peek() if v is a Reader[T] (untracked read),
// otherwise it treats v as an already-resolved T.
func PeekValue[T any](v any) T {
	return valueOrT[T](v, Reader[T].Peek)
}

// IsReactive reports whether x is a writable signal (Writable or Linked).
func IsReactive(x any) bool {
	_, ok := x.(reactiveMarker)
	return ok
}

// IsReadonlyReactive reports whether x is a read-only derived signal
// (Computed, External, or Synchronized).
func IsReadonlyReactive(x any) bool {
	if _, ok := x.(reactiveMarker); ok {
		return false
	}
	_, ok := x.(readonlyReactiveMarker)
	return ok
}

func runtime() *internal.Runtime { return internal.GetRuntime() }
