package errors

import (
	"fmt"
	"strings"
)

// Phase indicates which operation produced the error
type Phase string

const (
	PhaseConstruct  Phase = "construct"  // allocation factory
	PhaseAllocate   Phase = "allocate"   // pushing onto the stack
	PhaseDeallocate Phase = "deallocate" // popping off the stack
	PhaseGrow       Phase = "grow"       // linear memory growth
	PhaseAccess     Phase = "access"     // linear memory reads/writes
	PhaseHost       Phase = "host"       // host tooling
)

// Kind categorizes the error
type Kind string

const (
	KindBadStackAlignment Kind = "bad_stack_alignment"
	KindOutOfBounds       Kind = "out_of_bounds"
	KindOverflow          Kind = "overflow"
	KindNotAtTop          Kind = "not_at_top"
	KindBelowFloor        Kind = "below_floor"
	KindInvalidInput      Kind = "invalid_input"
	KindNotInitialized    Kind = "not_initialized"
	KindGrowFailed        Kind = "grow_failed"
)

// Templates for errors.Is. They carry no phase, so they match
// an error of the same kind raised by any operation.
var (
	ErrBadStackAlignment = &Error{Kind: KindBadStackAlignment}
	ErrOutOfBounds       = &Error{Kind: KindOutOfBounds}
	ErrOverflow          = &Error{Kind: KindOverflow}
	ErrNotAtTop          = &Error{Kind: KindNotAtTop}
	ErrBelowFloor        = &Error{Kind: KindBelowFloor}
	ErrGrowFailed        = &Error{Kind: KindGrowFailed}
)

// Error is the structured error type used throughout the module
type Error struct {
	Value  any
	Cause  error
	Phase  Phase
	Kind   Kind
	Detail string
}

// Error implements the error interface
func (e *Error) Error() string {
	var b strings.Builder

	b.WriteByte('[')
	b.WriteString(string(e.Phase))
	b.WriteString("] ")
	b.WriteString(string(e.Kind))

	if e.Detail != "" {
		b.WriteString(": ")
		b.WriteString(e.Detail)
	}

	if e.Cause != nil {
		b.WriteString(" (caused by: ")
		b.WriteString(e.Cause.Error())
		b.WriteByte(')')
	}

	return b.String()
}

// Unwrap returns the underlying error
func (e *Error) Unwrap() error {
	return e.Cause
}

// Is reports whether target matches this error.
// An empty Phase on the target matches any phase.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}
	if t.Phase != "" && t.Phase != e.Phase {
		return false
	}
	return e.Kind == t.Kind
}

// Builder provides structured error construction
type Builder struct {
	err Error
}

// New creates a new error builder
func New(phase Phase, kind Kind) *Builder {
	return &Builder{
		err: Error{
			Phase: phase,
			Kind:  kind,
		},
	}
}

// Value sets the offending value
func (b *Builder) Value(v any) *Builder {
	b.err.Value = v
	return b
}

// Cause sets the underlying error
func (b *Builder) Cause(err error) *Builder {
	b.err.Cause = err
	return b
}

// Detail sets the human-readable detail message
func (b *Builder) Detail(msg string, args ...any) *Builder {
	if len(args) > 0 {
		b.err.Detail = fmt.Sprintf(msg, args...)
	} else {
		b.err.Detail = msg
	}
	return b
}

// Build returns the constructed error
func (b *Builder) Build() *Error {
	return &b.err
}

// Convenience constructors for stack outcomes

// BadStackAlignment creates an error for an allocation that does not start at top
func BadStackAlignment(offset, top uint32) *Error {
	return &Error{
		Phase:  PhaseAllocate,
		Kind:   KindBadStackAlignment,
		Detail: fmt.Sprintf("allocation at %d does not start at stack top %d", offset, top),
		Value:  offset,
	}
}

// OutOfBounds creates an error for an allocation that would pass the ceiling
func OutOfBounds(phase Phase, end, limit uint64) *Error {
	return &Error{
		Phase:  phase,
		Kind:   KindOutOfBounds,
		Detail: fmt.Sprintf("end %d exceeds limit %d", end, limit),
		Value:  end,
	}
}

// Overflow creates an error for an offset+length that is not representable
func Overflow(offset, length uint32) *Error {
	return &Error{
		Phase:  PhaseConstruct,
		Kind:   KindOverflow,
		Detail: fmt.Sprintf("offset %d + length %d overflows u32", offset, length),
		Value:  uint64(offset) + uint64(length),
	}
}

// NotAtTop creates an error for a deallocation that does not end at top
func NotAtTop(end uint64, top uint32) *Error {
	return &Error{
		Phase:  PhaseDeallocate,
		Kind:   KindNotAtTop,
		Detail: fmt.Sprintf("allocation ends at %d, stack top is %d", end, top),
		Value:  end,
	}
}

// BelowFloor creates an error for a deallocation that would move top below the floor
func BelowFloor(offset, floor uint32) *Error {
	return &Error{
		Phase:  PhaseDeallocate,
		Kind:   KindBelowFloor,
		Detail: fmt.Sprintf("offset %d is below stack floor %d", offset, floor),
		Value:  offset,
	}
}

// InvalidInput creates an invalid input error
func InvalidInput(phase Phase, detail string) *Error {
	return &Error{
		Phase:  phase,
		Kind:   KindInvalidInput,
		Detail: detail,
	}
}

// NotInitialized creates a not-initialized error for a missing collaborator
func NotInitialized(phase Phase, component string) *Error {
	return &Error{
		Phase:  phase,
		Kind:   KindNotInitialized,
		Detail: fmt.Sprintf("%s not initialized", component),
	}
}

// GrowFailed creates an error for a linear memory that refused to grow
func GrowFailed(deltaPages, currentPages uint32) *Error {
	return &Error{
		Phase:  PhaseGrow,
		Kind:   KindGrowFailed,
		Detail: fmt.Sprintf("cannot grow by %d pages from %d", deltaPages, currentPages),
		Value:  deltaPages,
	}
}

// Wrap wraps an existing error with additional context
func Wrap(phase Phase, kind Kind, cause error, detail string) *Error {
	return &Error{
		Phase:  phase,
		Kind:   kind,
		Detail: detail,
		Cause:  cause,
	}
}
