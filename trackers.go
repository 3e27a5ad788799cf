package reactivity

import (
	goruntime "runtime"
	"sync"
	"weak"
)

// Trackers is a map from an arbitrary comparable key to a boolean signal,
// created lazily on first use and discarded automatically once nothing
// keeps the per-key signal reachable (spec §4.6). It is the keyed
// counterpart of a single Writable[bool] used purely as an invalidation
// pulse: Track(k) reads (and tracks) the key's signal, Trigger(k)/TriggerAll
// flips it to notify every dependent.
//
// The per-key signal is held only weakly (weak.Pointer[Writable[bool]]):
// it stays reachable while some dependent that tracked k still links to
// it; once none does, the garbage collector may reclaim it, and
// runtime.AddCleanup removes the now-dangling map entry. This is this
// engine's rendering of the FinalizationRegistry spec §9 calls for.
type Trackers[K comparable] struct {
	mu   sync.Mutex
	refs map[K]weak.Pointer[Writable[bool]]
}

// NewTrackers creates an empty key-scoped tracker.
func NewTrackers[K comparable]() *Trackers[K] {
	return &Trackers[K]{refs: make(map[K]weak.Pointer[Writable[bool]])}
}

// Track records a tracked dependency on key k, creating its backing signal
// on first use.
func (t *Trackers[K]) Track(k K) {
	t.signalFor(k).Value()
}

// Trigger notifies every dependent currently tracking k. A key nobody is
// tracking (so its signal was already collected, or never created) is a
// no-op.
func (t *Trackers[K]) Trigger(k K) {
	t.mu.Lock()
	ref, ok := t.refs[k]
	t.mu.Unlock()
	if !ok {
		return
	}

	if w := ref.Value(); w != nil {
		w.Set(!w.Peek())
	}
}

// TriggerAll notifies every key currently being tracked. All flips happen
// inside one Batch (spec §4.6), so an effect depending on several keys
// reruns once, not once per key.
func (t *Trackers[K]) TriggerAll() {
	t.mu.Lock()
	keys := make([]K, 0, len(t.refs))
	for k := range t.refs {
		keys = append(keys, k)
	}
	t.mu.Unlock()

	Batch(func() {
		for _, k := range keys {
			t.Trigger(k)
		}
	})
}

func (t *Trackers[K]) signalFor(k K) *Writable[bool] {
	t.mu.Lock()
	defer t.mu.Unlock()

	if ref, ok := t.refs[k]; ok {
		if w := ref.Value(); w != nil {
			return w
		}
	}

	w := Reactive[bool](false)
	t.refs[k] = weak.Make(w)

	// Dependents link to w's internal signal, not to w itself. This hook
	// makes that signal reference w, so w stays reachable for as long as
	// any dependent still holds the signal.
	w.signal.OnFirstWatch = func() { goruntime.KeepAlive(w) }

	goruntime.AddCleanup(w, func(key K) {
		t.mu.Lock()
		defer t.mu.Unlock()
		if ref, ok := t.refs[key]; ok && ref.Value() == nil {
			delete(t.refs, key)
		}
	}, k)

	return w
}
