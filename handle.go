package reactivity

// Handle is returned by every subscription-like constructor (NewEffect,
// NewAsyncEffect, WatchValue, Watch, DispatchAsyncCallback). Destroy is idempotent (spec §6: "Every
// Handle exposes an idempotent destroy()").
type Handle struct {
	destroy func()
}

// Destroy tears the underlying subscription down. Calling it more than once
// is a no-op.
func (h *Handle) Destroy() {
	if h.destroy != nil {
		h.destroy()
	}
}
