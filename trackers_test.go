package reactivity

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTrackers(t *testing.T) {
	t.Run("an effect tracking a key reruns on Trigger", func(t *testing.T) {
		tr := NewTrackers[string]()
		runs := 0

		h := NewEffectFunc(func() {
			runs++
			tr.Track("a")
		})
		defer h.Destroy()

		assert.Equal(t, 1, runs)

		tr.Trigger("a")
		assert.Equal(t, 2, runs)
	})

	t.Run("triggering an untracked key is a no-op", func(t *testing.T) {
		tr := NewTrackers[string]()
		assert.NotPanics(t, func() { tr.Trigger("nobody-tracks-this") })
	})

	t.Run("triggering one key doesn't wake an effect tracking a different key", func(t *testing.T) {
		tr := NewTrackers[string]()
		runs := 0

		h := NewEffectFunc(func() {
			runs++
			tr.Track("a")
		})
		defer h.Destroy()

		tr.Trigger("b")
		assert.Equal(t, 1, runs)
	})

	t.Run("TriggerAll wakes every currently tracked key", func(t *testing.T) {
		tr := NewTrackers[string]()
		runsA, runsB := 0, 0

		ha := NewEffectFunc(func() {
			runsA++
			tr.Track("a")
		})
		defer ha.Destroy()

		hb := NewEffectFunc(func() {
			runsB++
			tr.Track("b")
		})
		defer hb.Destroy()

		tr.TriggerAll()
		assert.Equal(t, 2, runsA)
		assert.Equal(t, 2, runsB)
	})

	t.Run("TriggerAll runs an effect depending on several keys only once", func(t *testing.T) {
		tr := NewTrackers[string]()
		runs := 0

		h := NewEffectFunc(func() {
			runs++
			tr.Track("a")
			tr.Track("b")
		})
		defer h.Destroy()

		assert.Equal(t, 1, runs)

		tr.TriggerAll()
		assert.Equal(t, 2, runs) // one rerun, not one per key
	})

	t.Run("distinct keys are independent signals", func(t *testing.T) {
		tr := NewTrackers[int]()
		runs1, runs2 := 0, 0

		h1 := NewEffectFunc(func() {
			runs1++
			tr.Track(1)
		})
		defer h1.Destroy()

		h2 := NewEffectFunc(func() {
			runs2++
			tr.Track(2)
		})
		defer h2.Destroy()

		tr.Trigger(1)
		assert.Equal(t, 2, runs1)
		assert.Equal(t, 1, runs2)
	})
}
