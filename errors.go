package reactivity

import "github.com/conterra/reactivity/internal"

// CycleDetectedError is raised when a reactive computation writes to a
// signal that causes it to notify itself before finishing, or when a
// Computed reads itself transitively (spec §7 kind 1).
type CycleDetectedError = internal.CycleDetectedError

// UninitializedInternalStateError marks a programming mistake by a
// collaborator misusing internal hooks; always fatal (spec §7 kind 2).
type UninitializedInternalStateError = internal.UninitializedInternalStateError

// UserCallbackError wraps any panic raised from user-supplied code (spec
// §7 kind 3). Cause holds the original error.
type UserCallbackError = internal.UserCallbackError

// ReportCallbackError is the single indirection for asynchronously
// reported errors (spec §4.7). message is optional context.
func ReportCallbackError(err error, message ...string) {
	msg := ""
	if len(message) > 0 {
		msg = message[0]
	}
	internal.ReportCallbackError(err, msg)
}

// SetErrorReporter overrides where ReportCallbackError's default
// implementation surfaces errors, returning to the structured-logging
// default when fn is nil. Tests use this to intercept reported errors.
func SetErrorReporter(fn func(err error, message string)) {
	internal.SetErrorReporter(fn)
}

// recoverAndReport runs fn, reporting (rather than propagating) any panic
// it raises, under the given context label. Used for collaborator hooks
// whose contract is "errors are reported, bookkeeping stays consistent"
// (synchronized subscribe/unsubscribe, per spec §7).
func recoverAndReport(context string, fn func()) {
	defer func() {
		if p := recover(); p != nil {
			internal.ReportCallbackError(internal.WrapUserError(p), context)
		}
	}()
	fn()
}
