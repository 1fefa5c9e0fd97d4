package memory

import (
	"fmt"

	"github.com/wippyai/wasm-stack/errors"
)

// Stack gates allocations against a single top-of-stack cursor.
//
// Invariant between calls: Min() <= Top() <= Max(). The zero value is an
// empty stack spanning the whole 32-bit address space.
type Stack struct {
	top     Top
	limit   Bits
	bounded bool
}

// Option configures a Stack.
type Option func(*Stack)

// WithLimit lowers the ceiling of the stack. Limits above MaxInt are clamped.
func WithLimit(limit Bits) Option {
	return func(s *Stack) {
		if limit > MaxInt {
			limit = MaxInt
		}
		s.limit = limit
		s.bounded = true
	}
}

// New returns an empty stack.
func New(opts ...Option) Stack {
	s := Stack{}
	for _, opt := range opts {
		opt(&s)
	}
	return s
}

// FromAllocation rebuilds a stack whose last push was a, so that Top()
// equals a.End(). It fails under the same conditions as Allocate.
func FromAllocation(a Allocation, opts ...Option) (Stack, error) {
	s := New(opts...)
	s.top = Top(a.Offset())
	if _, err := s.Allocate(a); err != nil {
		return Stack{}, err
	}
	return s, nil
}

// Min is the lowest address the stack may roll back to.
func (s Stack) Min() Int {
	return 0
}

// Max is the ceiling of the address space. It is Bits so that
// top+length can be compared against it without wrapping.
func (s Stack) Max() Bits {
	if s.bounded {
		return s.limit
	}
	return MaxInt
}

// Top returns the current cursor.
func (s Stack) Top() Top {
	return s.top
}

// Used returns the number of bytes between Min and the top.
func (s Stack) Used() Int {
	return s.top.Int() - s.Min()
}

// Available returns the number of bytes that can still be pushed.
func (s Stack) Available() Bits {
	return s.Max() - s.top.Bits()
}

// NextAllocation previews the allocation a push of length bytes would make.
// It does not check the ceiling; Allocate does.
func (s Stack) NextAllocation(length Int) (Allocation, error) {
	return NewAllocation(s.top.Int(), length)
}

// DeallocationIsValid reports whether a can be popped: it must end exactly
// at the top and must not start below Min.
func (s Stack) DeallocationIsValid(a Allocation) bool {
	return s.checkDeallocation(a) == nil
}

func (s Stack) checkDeallocation(a Allocation) error {
	end := Bits(a.Offset()) + Bits(a.Length())
	if end != s.top.Bits() {
		return errors.NotAtTop(uint64(end), uint32(s.top))
	}
	// Always holds while Min is 0 and offsets are unsigned.
	if a.Offset() < s.Min() {
		return errors.BelowFloor(uint32(a.Offset()), uint32(s.Min()))
	}
	return nil
}

// Allocate pushes a onto the stack and returns the top as it was before the
// push, which is where a begins. On error the stack is unchanged.
func (s *Stack) Allocate(a Allocation) (Top, error) {
	if a.Offset() != s.top.Int() {
		return 0, errors.BadStackAlignment(uint32(a.Offset()), uint32(s.top))
	}
	end := s.top.Bits() + Bits(a.Length())
	if end > s.Max() {
		return 0, errors.OutOfBounds(errors.PhaseAllocate, uint64(end), uint64(s.Max()))
	}
	prev := s.top
	s.top = Top(a.End())
	return prev, nil
}

// Deallocate pops a off the stack, moving the top back to a.Offset().
// The error is tagged KindNotAtTop or KindBelowFloor. On error the stack
// is unchanged.
func (s *Stack) Deallocate(a Allocation) error {
	if err := s.checkDeallocation(a); err != nil {
		return err
	}
	s.top = Top(a.Offset())
	return nil
}

// Push previews and allocates length bytes in one step.
func (s *Stack) Push(length Int) (Allocation, error) {
	a, err := s.NextAllocation(length)
	if err != nil {
		return Allocation{}, err
	}
	if _, err := s.Allocate(a); err != nil {
		return Allocation{}, err
	}
	return a, nil
}

func (s Stack) String() string {
	return fmt.Sprintf("stack{top=%d, max=%d}", s.top, s.Max())
}
