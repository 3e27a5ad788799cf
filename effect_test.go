package reactivity

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestEffect(t *testing.T) {
	t.Run("runs once immediately and reruns on dependency change", func(t *testing.T) {
		a := Reactive(1)
		runs := 0
		var seen int

		h := NewEffectFunc(func() {
			runs++
			seen = a.Value()
		})
		defer h.Destroy()

		assert.Equal(t, 1, runs)
		assert.Equal(t, 1, seen)

		a.Set(2)
		assert.Equal(t, 2, runs)
		assert.Equal(t, 2, seen)

		a.Set(2) // same value: no rerun
		assert.Equal(t, 2, runs)
	})

	t.Run("cleanup runs before the next execution and on destroy", func(t *testing.T) {
		a := Reactive(1)
		var order []string

		h := NewEffect(func() func() {
			a.Value()
			order = append(order, "enter")
			return func() { order = append(order, "exit") }
		})

		a.Set(2)
		h.Destroy()
		h.Destroy() // idempotent

		assert.Equal(t, []string{"enter", "exit", "enter", "exit"}, order)
	})

	t.Run("destroyed effect does not react to further writes", func(t *testing.T) {
		a := Reactive(1)
		runs := 0

		h := NewEffectFunc(func() {
			runs++
			a.Value()
		})
		h.Destroy()

		a.Set(2)
		a.Set(3)
		assert.Equal(t, 1, runs)
	})

	t.Run("a self-write to a tracked dependency raises CycleDetected", func(t *testing.T) {
		a := Reactive(1)

		assert.Panics(t, func() {
			NewEffectFunc(func() {
				n := a.Value()
				a.Set(n + 1)
			})
		})
	})

	t.Run("panic from the initial run destroys the effect and rethrows", func(t *testing.T) {
		assert.Panics(t, func() {
			NewEffectFunc(func() { panic("boom") })
		})
	})

	t.Run("reading an unrelated computed during the run does not false-positive a cycle", func(t *testing.T) {
		a := Reactive(1)
		double := NewComputed(func() int { return a.Value() * 2 })

		runs := 0
		var seen int
		h := NewEffectFunc(func() {
			runs++
			seen = double.Value()
		})
		defer h.Destroy()

		assert.Equal(t, 1, runs)
		assert.Equal(t, 2, seen)

		a.Set(5)
		assert.Equal(t, 2, runs)
		assert.Equal(t, 10, seen)
	})
}
