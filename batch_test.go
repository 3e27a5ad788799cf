package reactivity

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestBatch(t *testing.T) {
	t.Run("coalesces multiple writes into one wake-up", func(t *testing.T) {
		a := Reactive(1)
		b := Reactive(2)
		runs := 0
		var seenA, seenB int

		h := NewEffectFunc(func() {
			runs++
			seenA = a.Value()
			seenB = b.Value()
		})
		defer h.Destroy()
		assert.Equal(t, 1, runs)

		Batch(func() {
			a.Set(10)
			b.Set(20)
		})

		assert.Equal(t, 2, runs)
		assert.Equal(t, 10, seenA)
		assert.Equal(t, 20, seenB)
	})

	t.Run("nested batches only drain at the outermost exit", func(t *testing.T) {
		a := Reactive(1)
		runs := 0

		h := NewEffectFunc(func() {
			runs++
			a.Value()
		})
		defer h.Destroy()
		assert.Equal(t, 1, runs)

		Batch(func() {
			a.Set(2)
			Batch(func() {
				a.Set(3)
			})
			assert.Equal(t, 1, runs) // still inside the outer batch
		})

		assert.Equal(t, 2, runs)
	})

	t.Run("Untracked returns the wrapped function's result", func(t *testing.T) {
		got := Untracked(func() int { return 42 })
		assert.Equal(t, 42, got)
	})

	t.Run("Untracked reads don't register a dependency", func(t *testing.T) {
		a := Reactive(1)
		runs := 0

		h := NewEffectFunc(func() {
			runs++
			Untracked(func() int { return a.Value() })
		})
		defer h.Destroy()

		a.Set(2)
		assert.Equal(t, 1, runs) // untracked read never subscribed
	})
}
