package observability

import "runtime/debug"

// RecoverPanic recovers a panic in the surrounding function, logs it with
// the full stack, and then invokes onPanic (when non-nil) so the caller can
// emit a failure response or release resources. Call it directly in a defer;
// wrapping it in a closure would recover nothing.
func RecoverPanic(logger *Logger, scope string, onPanic func()) {
	if r := recover(); r != nil {
		logger.WithFields(map[string]any{
			"panic": r,
			"scope": scope,
			"stack": string(debug.Stack()),
		}).Error("panic recovered")
		if onPanic != nil {
			onPanic()
		}
	}
}
