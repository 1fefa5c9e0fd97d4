package memory

import (
	"fmt"

	"github.com/wippyai/wasm-stack/errors"
)

// Allocation is a validated contiguous byte range [offset, offset+length).
// The zero value is the empty range at offset 0.
type Allocation struct {
	offset Int
	length Int
}

// NewAllocation builds an allocation, failing when offset+length does not
// fit in the address space.
func NewAllocation(offset, length Int) (Allocation, error) {
	if Bits(offset)+Bits(length) > MaxInt {
		return Allocation{}, errors.Overflow(uint32(offset), uint32(length))
	}
	return Allocation{offset: offset, length: length}, nil
}

// Offset returns the first byte of the range.
func (a Allocation) Offset() Int {
	return a.offset
}

// Length returns the size of the range in bytes.
func (a Allocation) Length() Int {
	return a.length
}

// End returns the first byte past the range.
func (a Allocation) End() Int {
	return a.offset + a.length
}

func (a Allocation) String() string {
	return fmt.Sprintf("[%d, %d)", a.offset, a.End())
}
