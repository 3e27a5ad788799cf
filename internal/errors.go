package internal

import (
	"fmt"
	"log/slog"
	"sync"
)

// CycleDetectedError is raised when a reactive computation reads itself
// while already evaluating, or when an effect's own write causes it to be
// notified again before it finishes executing (spec §7 kind 1).
type CycleDetectedError struct {
	Detail string
}

func (e *CycleDetectedError) Error() string {
	if e.Detail == "" {
		return "reactivity: cycle detected"
	}
	return "reactivity: cycle detected: " + e.Detail
}

// UninitializedInternalStateError marks a programming mistake by a
// collaborator misusing the engine's internal hooks; it is always fatal
// (spec §7 kind 2).
type UninitializedInternalStateError struct {
	Detail string
}

func (e *UninitializedInternalStateError) Error() string {
	return "reactivity: uninitialized internal state: " + e.Detail
}

// UserCallbackError wraps any panic raised from user-supplied code:
// selector, compute, effect body, watch callback, cleanup, synchronized
// getter/subscribe/unsubscribe, or external getter (spec §7 kind 3).
type UserCallbackError struct {
	Cause error
}

func (e *UserCallbackError) Error() string {
	return "reactivity: user callback error: " + e.Cause.Error()
}

func (e *UserCallbackError) Unwrap() error { return e.Cause }

// WrapUserError normalizes a recovered panic value into an error, passing
// already-typed CycleDetectedError/UserCallbackError values through
// untouched so repeated wrapping never happens. Exported so the root
// package's Watch/Synchronized glue can reuse the exact same normalization
// used internally by Computed and Effect.
func WrapUserError(p any) error { return wrapUserError(p) }

func wrapUserError(p any) error {
	if p == nil {
		return nil
	}

	switch v := p.(type) {
	case *CycleDetectedError:
		return v
	case *UserCallbackError:
		return v
	case error:
		return &UserCallbackError{Cause: v}
	default:
		return &UserCallbackError{Cause: fmt.Errorf("%v", v)}
	}
}

var (
	errorReporterMu sync.Mutex
	errorReporter   = defaultErrorReporter
)

func defaultErrorReporter(err error, message string) {
	if message != "" {
		slog.Error("unhandled reactive callback error", "error", err, "context", message)
		return
	}
	slog.Error("unhandled reactive callback error", "error", err)
}

// ReportCallbackError is the single indirection §4.7 requires for
// asynchronously reported errors.
func ReportCallbackError(err error, message string) {
	if err == nil {
		return
	}

	errorReporterMu.Lock()
	r := errorReporter
	errorReporterMu.Unlock()

	r(err, message)
}

// SetErrorReporter overrides the reporter, returning to the slog-backed
// default when fn is nil. Tests use this to intercept reported errors.
func SetErrorReporter(fn func(err error, message string)) {
	errorReporterMu.Lock()
	defer errorReporterMu.Unlock()

	if fn == nil {
		errorReporter = defaultErrorReporter
		return
	}
	errorReporter = fn
}
