package memory

import "math"

// Int is a byte offset or length within a 32-bit linear address space.
type Int uint32

// Bits is wide enough to hold the sum of any two Int values.
type Bits uint64

// MaxInt is the highest addressable offset, as Bits so it compares against sums.
const MaxInt Bits = math.MaxUint32

// PageSize is the WebAssembly page size in bytes.
const PageSize = 65536

// MaxPages is the number of pages in a full 32-bit address space.
const MaxPages = 65536

// Top is the address of the first free byte above the stack.
type Top Int

// Int returns the top as a raw offset.
func (t Top) Int() Int {
	return Int(t)
}

// Bits returns the top widened for comparisons against the ceiling.
func (t Top) Bits() Bits {
	return Bits(t)
}
