package reactivity

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSynchronized(t *testing.T) {
	t.Run("unsubscribed reads never cache", func(t *testing.T) {
		calls := 0
		s := NewSynchronized(func() int {
			calls++
			return calls
		}, func(notify func()) func() { return func() {} })

		s.Value()
		s.Value()
		assert.Equal(t, 2, calls)
	})

	t.Run("subscribing caches until notify", func(t *testing.T) {
		calls := 0
		var subscribed, unsubscribed int

		s := NewSynchronized(func() int {
			calls++
			return calls
		}, func(notify func()) func() {
			subscribed++
			return func() { unsubscribed++ }
		})

		s.Value()
		s.Value()
		assert.Equal(t, 2, calls)

		h := NewEffectFunc(func() { s.Value() })
		assert.Equal(t, 1, subscribed)
		assert.Equal(t, 3, calls)

		s.Value()
		assert.Equal(t, 3, calls) // cached while subscribed

		h.Destroy()
		assert.Equal(t, 1, unsubscribed)

		s.Value()
		assert.Equal(t, 4, calls)
	})

	t.Run("notify invalidates the cache while subscribed", func(t *testing.T) {
		raw := 0
		var capturedNotify func()

		s := NewSynchronized(func() int { return raw },
			func(notify func()) func() {
				capturedNotify = notify
				return func() {}
			})

		runs := 0
		var seen int
		h := NewEffectFunc(func() {
			runs++
			seen = s.Value()
		})
		defer h.Destroy()

		assert.Equal(t, 1, runs)
		assert.Equal(t, 0, seen)

		raw = 7
		capturedNotify()

		assert.Equal(t, 2, runs)
		assert.Equal(t, 7, seen)
	})

	t.Run("errors from subscribe are reported, not propagated", func(t *testing.T) {
		var reported error
		SetErrorReporter(func(err error, message string) { reported = err })
		defer SetErrorReporter(nil)

		s := NewSynchronized(func() int { return 1 }, func(notify func()) func() {
			panic("subscribe exploded")
		})

		assert.NotPanics(t, func() {
			NewEffectFunc(func() { s.Value() })
		})
		assert.Error(t, reported)
	})
}
