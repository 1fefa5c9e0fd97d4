// Package errors provides structured error types for the wasm-stack module.
//
// Errors are categorized by Phase (which operation failed) and Kind (why).
// Use the Builder for structured construction:
//
//	err := errors.New(errors.PhaseAllocate, errors.KindOutOfBounds).
//		Value(end).
//		Detail("end %d exceeds limit %d", end, limit).
//		Build()
//
// Or the convenience constructors for the stack outcomes:
//
//	err := errors.BadStackAlignment(offset, top)
//	err := errors.NotAtTop(end, top)
//
// Errors match with errors.Is on Phase and Kind. The ErrXxx templates leave
// Phase empty and therefore match on Kind alone:
//
//	if errors.Is(err, errors.ErrNotAtTop) { ... }
package errors
