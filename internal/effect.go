package internal

import "sync"

// EffectState is the state machine from spec §4.8.
type EffectState int

const (
	EffectInitial EffectState = iota
	EffectIdle
	EffectExecuting
	EffectPending
	EffectDestroyed
)

// DispatchMode selects whether an Effect's re-execution runs synchronously
// (at batch-drain or immediately) or is coalesced through the Dispatcher.
type DispatchMode int

const (
	DispatchSync DispatchMode = iota
	DispatchAsync
)

// Effect is the engine behind both the sync and async Effect/Watch public
// types. body returns the new cleanup function (nil for "no cleanup"),
// mirroring the CallbackResult sum type from spec §9.
type Effect struct {
	mu sync.Mutex

	runtime *Runtime
	watcher *Watcher
	body    func() func()
	cleanup func()
	state   EffectState
	mode    DispatchMode

	queued       bool
	queuedHandle *DispatchHandle
}

// NewEffect builds and synchronously runs an Effect once. If the initial
// run panics, the effect is destroyed and the panic (wrapped as a
// UserCallbackError unless it already is one) is re-raised to the caller,
// per spec §4.3/§7.
func (r *Runtime) NewEffect(mode DispatchMode, body func() func()) *Effect {
	// state starts Executing, not Initial: the first run must already look
	// "in progress" to onNotify, so a self-write to a dependency read
	// during this very run hits the EffectExecuting cycle guard instead of
	// falling through to the idle dispatch path and reentering the
	// still-open tracking window.
	e := &Effect{runtime: r, body: body, mode: mode, state: EffectExecuting}
	e.watcher = r.NewWatcher(e.onNotify)

	var panicked any
	func() {
		defer func() {
			if p := recover(); p != nil {
				panicked = p
			}
		}()
		e.watcher.Open(func() {
			e.cleanup = e.body()
		})
	}()

	if panicked != nil {
		e.mu.Lock()
		e.state = EffectDestroyed
		e.mu.Unlock()
		e.watcher.Destroy()
		panic(wrapUserError(panicked))
	}

	e.mu.Lock()
	e.state = EffectIdle
	e.mu.Unlock()

	return e
}

func (e *Effect) onNotify() {
	e.mu.Lock()
	switch e.state {
	case EffectDestroyed:
		e.mu.Unlock()
		return
	case EffectExecuting:
		e.mu.Unlock()
		panic(&CycleDetectedError{Detail: "effect notified re-entrantly while executing"})
	case EffectPending:
		e.mu.Unlock()
		return
	}

	if e.mode == DispatchAsync {
		e.state = EffectPending
		e.mu.Unlock()
		e.queuedHandle = e.runtime.Dispatcher.Enqueue(e.reexecute)
		return
	}

	if e.queued {
		e.mu.Unlock()
		return
	}
	e.queued = true
	e.mu.Unlock()

	e.runtime.DeferOrRun(func() {
		e.mu.Lock()
		e.queued = false
		e.mu.Unlock()
		e.reexecute()
	})
}

// reexecute is the routine from spec §4.3: cleanup, then re-run the body,
// storing the new cleanup. It is shared by the sync drain path and the
// async dispatcher path.
func (e *Effect) reexecute() {
	e.mu.Lock()
	if e.state == EffectDestroyed {
		e.mu.Unlock()
		return
	}
	e.state = EffectExecuting
	cleanup := e.cleanup
	e.mu.Unlock()

	if cleanup != nil {
		var cleanupPanic any
		func() {
			defer func() {
				if p := recover(); p != nil {
					cleanupPanic = p
				}
			}()
			e.runtime.RunUntracked(cleanup)
		}()

		if cleanupPanic != nil {
			e.destroyAfterPanic()
			err := wrapUserError(cleanupPanic)
			if e.mode == DispatchAsync {
				ReportCallbackError(err, "effect cleanup")
				return
			}
			panic(err)
		}
	}

	e.mu.Lock()
	if e.state == EffectDestroyed {
		e.mu.Unlock()
		return
	}
	e.mu.Unlock()

	var bodyPanic any
	func() {
		defer func() {
			if p := recover(); p != nil {
				bodyPanic = p
			}
		}()
		e.watcher.Open(func() {
			e.cleanup = e.body()
		})
	}()

	e.mu.Lock()
	if e.state != EffectDestroyed {
		e.state = EffectIdle
	}
	e.mu.Unlock()

	if bodyPanic != nil {
		err := wrapUserError(bodyPanic)
		if e.mode == DispatchAsync {
			ReportCallbackError(err, "effect body")
		} else {
			panic(err)
		}
	}
}

func (e *Effect) destroyAfterPanic() {
	e.mu.Lock()
	e.state = EffectDestroyed
	e.cleanup = nil
	handle := e.queuedHandle
	e.queuedHandle = nil
	e.mu.Unlock()

	if handle != nil {
		handle.Destroy()
	}
	e.watcher.Destroy()
}

// Destroy tears the effect down idempotently: it runs the last cleanup
// exactly once, tears down its Watcher, and cancels a queued async
// execution.
func (e *Effect) Destroy() {
	e.mu.Lock()
	if e.state == EffectDestroyed {
		e.mu.Unlock()
		return
	}
	e.state = EffectDestroyed
	cleanup := e.cleanup
	e.cleanup = nil
	handle := e.queuedHandle
	e.queuedHandle = nil
	e.mu.Unlock()

	if handle != nil {
		handle.Destroy()
	}
	e.watcher.Destroy()

	if cleanup != nil {
		e.runtime.RunUntracked(cleanup)
	}
}

// State returns the effect's current state, mostly useful for tests.
func (e *Effect) State() EffectState {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.state
}
