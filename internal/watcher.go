package internal

// Watcher is the low-level tracking-window primitive from spec §4.1/§3: it
// records the signals read during its window as dependencies and calls
// notify once for each invalidation that reaches it through one of them, so
// a wave arriving along several paths calls notify several times. It never
// recomputes anything
// itself — Effect and Watch decide what "notified" means.
type Watcher struct {
	Node

	notify    func()
	destroyed bool
}

// NewWatcher creates a Watcher that calls notify when any dependency read
// during its last window becomes stale.
func (r *Runtime) NewWatcher(notify func()) *Watcher {
	w := &Watcher{Node: Node{Kind: KindWatcher}, notify: notify}
	w.OnInvalidate = func() {
		if w.destroyed {
			return
		}
		w.notify()
	}
	return w
}

// Open runs fn as a new tracking window, diffing the dependencies it reads
// against the previous window's (spec invariant 2): a dependency read in
// both windows keeps its edge and watch-ref contribution untouched; one
// read only by the old window is torn down; one read only by the new
// window is freshly linked.
func (w *Watcher) Open(fn func()) {
	w.BeginTracking()
	defer w.EndTracking()
	GetRuntime().RunTracking(&w.Node, fn)
}

// Destroy tears the watcher down: it stops reacting to notifications and
// releases every dependency it held.
func (w *Watcher) Destroy() {
	w.destroyed = true
	w.ClearDeps()
}
