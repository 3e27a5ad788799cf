package reactivity

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestWritable(t *testing.T) {
	t.Run("read and write", func(t *testing.T) {
		count := Reactive(0)
		assert.Equal(t, 0, count.Value())

		count.Set(10)
		assert.Equal(t, 10, count.Value())
	})

	t.Run("peek does not track", func(t *testing.T) {
		count := Reactive(0)

		runs := 0
		NewEffectFunc(func() {
			runs++
			count.Peek()
		})

		count.Set(1)
		assert.Equal(t, 1, runs)
	})

	t.Run("zero values", func(t *testing.T) {
		sig := Reactive[error](nil)
		assert.Nil(t, sig.Value())

		sig.Write(errors.New("oops"))
		assert.EqualError(t, sig.Value(), "oops")

		sig.Write(nil)
		assert.Nil(t, sig.Value())
	})

	t.Run("same-value equality suppresses propagation", func(t *testing.T) {
		log := []string{}
		count := Reactive(1)

		NewEffectFunc(func() {
			log = append(log, fmt.Sprintf("changed %d", count.Value()))
		})

		count.Set(1) // same value, should not re-run
		count.Set(2)

		assert.Equal(t, []string{"changed 1", "changed 2"}, log)
	})

	t.Run("custom equal suppresses a write the default would accept", func(t *testing.T) {
		log := []string{}
		type point struct{ x, y int }

		p := Reactive(point{1, 1}, WithEqual(func(a, b point) bool { return a.x == b.x }))

		NewEffectFunc(func() {
			log = append(log, fmt.Sprintf("x=%d", p.Value().x))
		})

		p.Set(point{1, 99}) // x unchanged -> suppressed
		p.Set(point{2, 99})

		assert.Equal(t, []string{"x=1", "x=2"}, log)
	})

	t.Run("on first watch and last unwatch", func(t *testing.T) {
		log := []string{}

		count := Reactive(0,
			WithOnFirstWatch[int](func() { log = append(log, "first watch") }),
			WithOnLastUnwatch[int](func() { log = append(log, "last unwatch") }),
		)

		assert.False(t, IsReadonlyReactive(count))
		assert.True(t, IsReactive(count))

		count.Peek() // untracked, no watcher yet
		assert.Equal(t, []string{}, log)

		h := NewEffectFunc(func() {
			count.Value()
		})
		assert.Equal(t, []string{"first watch"}, log)

		h.Destroy()
		assert.Equal(t, []string{"first watch", "last unwatch"}, log)
	})
}
