// Package internal implements the non-generic dependency graph that backs
// the public reactivity package. Every Writable, Computed, External,
// Synchronized, Linked, Watcher and Watch is built from one or more *Node
// values (External, Linked and Watch combine two); the generic public
// types only add typed storage and type assertions on top.
package internal

// Kind distinguishes the three roles a Node can play in the graph. A Signal
// is a pure dependency (leaf), a Computed is both a dependency and a
// consumer, and a Watcher is a pure consumer (leaf observer).
type Kind int

const (
	KindSignal Kind = iota
	KindComputed
	KindWatcher
)

// Node is the graph vertex shared by every reactive primitive. It owns the
// doubly linked dependency/subscriber edge lists and the watch-reference
// bookkeeping used to implement Writable/Synchronized's on_first_watch and
// on_last_unwatch hooks transitively through chains of Computeds.
type Node struct {
	Kind Kind

	// WatchRefs counts the number of live paths, through zero or more
	// Computeds, that reach a Watcher. It is maintained incrementally by
	// addWatchRef/removeWatchRef as edges are linked and cleared.
	WatchRefs int

	OnFirstWatch  func()
	OnLastUnwatch func()

	// OnInvalidate is invoked once for each dependency edge through which a
	// propagation wave reaches this node; waves are not deduplicated, so a
	// node reached along two paths is invoked twice. It never
	// evaluates anything itself; the owning wrapper decides what an
	// invalidation means (mark dirty and forward, or call a notify
	// callback).
	OnInvalidate func()

	depsHead *Edge
	subsHead *Edge

	// trackingOld holds, for the duration of a re-opened tracking window,
	// the dependency edges this node held before the window started.
	// Link reuses an edge found here (so a dependency re-read across runs
	// keeps its identity and its watch-ref count undisturbed); whatever is
	// still here when EndTracking runs genuinely dropped out and is torn
	// down then, not eagerly at BeginTracking.
	trackingOld *Edge
}

// Edge is a bidirectional dependency link between a subscriber node (sub)
// and the dependency node it read (dep).
type Edge struct {
	Dep, Sub *Node

	prevDep, nextDep *Edge
	prevSub, nextSub *Edge
}

// BeginTracking opens a new tracking window on sub: dependencies linked
// during the window are diffed, on EndTracking, against the set held
// before the window opened, rather than being torn down and rebuilt
// unconditionally. This keeps a dependency that survives from one run to
// the next from ever seeing a spurious watch-ref drop to zero and back.
func (sub *Node) BeginTracking() {
	sub.trackingOld = sub.depsHead
	sub.depsHead = nil
}

// EndTracking tears down whatever dependency edges were present before
// BeginTracking and were not re-linked during the window.
func (sub *Node) EndTracking() {
	wasWatched := sub.isWatched()

	for e := sub.trackingOld; e != nil; {
		next := e.nextDep
		e.nextDep, e.prevDep = nil, nil
		e.Dep.removeSub(e)
		if wasWatched {
			e.Dep.removeWatchRef()
		}
		e = next
	}
	sub.trackingOld = nil
}

// Link records that sub read dep during its current tracking window.
// Re-reading the same dependency as the most recently read one is a no-op,
// matching the common case of a loop reading the same signal repeatedly. A
// dependency already held from before the current window (see
// BeginTracking) is reused in place rather than unlinked and relinked, so
// its watch-ref contribution and subscriber-list position are undisturbed.
func (sub *Node) Link(dep *Node) {
	if sub.depsHead != nil && sub.depsHead.prevDep.Dep == dep {
		return
	}

	if e := sub.detachOld(dep); e != nil {
		sub.appendDep(e)
		return
	}

	e := &Edge{Dep: dep, Sub: sub}
	sub.appendDep(e)
	dep.appendSub(e)

	if sub.isWatched() {
		dep.addWatchRef()
	}
}

func (sub *Node) detachOld(dep *Node) *Edge {
	for e := sub.trackingOld; e != nil; e = e.nextDep {
		if e.Dep != dep {
			continue
		}
		if e.prevDep == e {
			sub.trackingOld = nil
		} else {
			if e == sub.trackingOld {
				sub.trackingOld = e.nextDep
			} else {
				e.prevDep.nextDep = e.nextDep
			}
			if e.nextDep != nil {
				e.nextDep.prevDep = e.prevDep
			} else {
				sub.trackingOld.prevDep = e.prevDep
			}
		}
		e.prevDep, e.nextDep = nil, nil
		return e
	}
	return nil
}

func (n *Node) isWatched() bool {
	return n.Kind == KindWatcher || n.WatchRefs > 0
}

// IsWatched reports whether some Watcher, possibly through a chain of
// Computeds, currently depends on n.
func (n *Node) IsWatched() bool {
	return n.isWatched()
}

func (n *Node) addWatchRef() {
	n.WatchRefs++
	if n.WatchRefs != 1 {
		return
	}

	if n.OnFirstWatch != nil {
		n.OnFirstWatch()
	}
	for e := n.depsHead; e != nil; e = e.nextDep {
		e.Dep.addWatchRef()
	}
}

func (n *Node) removeWatchRef() {
	n.WatchRefs--
	if n.WatchRefs != 0 {
		return
	}

	if n.OnLastUnwatch != nil {
		n.OnLastUnwatch()
	}
	for e := n.depsHead; e != nil; e = e.nextDep {
		e.Dep.removeWatchRef()
	}
}

// ClearDeps unconditionally removes every dependency edge currently held by
// sub, undoing any watch-ref propagation they received. Used by Destroy
// paths, where there is no next window to diff against.
func (sub *Node) ClearDeps() {
	wasWatched := sub.isWatched()

	for e := sub.depsHead; e != nil; {
		next := e.nextDep
		e.Dep.removeSub(e)
		if wasWatched {
			e.Dep.removeWatchRef()
		}
		e = next
	}

	sub.depsHead = nil
}

// Notify forwards one invalidation wave to every direct subscriber of n.
func (n *Node) Notify() {
	for e := n.subsHead; e != nil; e = e.nextSub {
		if e.Sub.OnInvalidate != nil {
			e.Sub.OnInvalidate()
		}
	}
}

// NotifyExcept forwards one invalidation wave to every direct subscriber of
// n other than skip. A Computed recomputing as a direct pull from skip
// already hands skip the fresh value through the call that triggered the
// recompute; notifying it again would be redundant and, for a subscriber
// still inside its own tracking window, indistinguishable from a cycle.
func (n *Node) NotifyExcept(skip *Node) {
	for e := n.subsHead; e != nil; e = e.nextSub {
		if e.Sub == skip {
			continue
		}
		if e.Sub.OnInvalidate != nil {
			e.Sub.OnInvalidate()
		}
	}
}

// HasSubscribers reports whether any edge currently targets n.
func (n *Node) HasSubscribers() bool {
	return n.subsHead != nil
}

func (n *Node) appendDep(e *Edge) {
	if n.depsHead == nil {
		n.depsHead = e
		e.prevDep = e
		e.nextDep = nil
		return
	}

	tail := n.depsHead.prevDep
	tail.nextDep = e
	e.prevDep = tail
	e.nextDep = nil
	n.depsHead.prevDep = e
}

func (n *Node) appendSub(e *Edge) {
	if n.subsHead == nil {
		n.subsHead = e
		e.prevSub = e
		e.nextSub = nil
		return
	}

	tail := n.subsHead.prevSub
	tail.nextSub = e
	e.prevSub = tail
	e.nextSub = nil
	n.subsHead.prevSub = e
}

func (n *Node) removeSub(e *Edge) {
	if e.prevSub == e {
		n.subsHead = nil
		e.prevSub = nil
		e.nextSub = nil
		return
	}

	if e == n.subsHead {
		n.subsHead = e.nextSub
	} else {
		e.prevSub.nextSub = e.nextSub
	}

	if e.nextSub != nil {
		e.nextSub.prevSub = e.prevSub
	} else {
		n.subsHead.prevSub = e.prevSub
	}

	e.prevSub = nil
	e.nextSub = nil
}
