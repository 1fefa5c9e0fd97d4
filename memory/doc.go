// Package memory implements stack-discipline bookkeeping over a WebAssembly
// linear address space.
//
// A Stack owns a single cursor, its Top: the address of the first free byte
// above every live allocation. Allocations are pushed exactly at the top and
// popped only from the top:
//
//	s := memory.New()
//
//	a, err := s.NextAllocation(16) // preview [0, 16)
//	if err != nil {
//	    return err
//	}
//	at, err := s.Allocate(a) // at == 0, s.Top() == 16
//
//	err = s.Deallocate(a) // s.Top() == 0 again
//
// Allocate returns the top as it was before the push, which is where the new
// allocation lives.
//
// # Types
//
//	Int         u32 byte offset within the address space
//	Bits        u64, for sums compared against the ceiling without wrapping
//	Allocation  validated [offset, offset+length) range
//	Top         the stack cursor, distinct from raw offsets
//
// A Stack is a plain value with no locking. Owners that share one across
// goroutines must serialize access themselves.
package memory
