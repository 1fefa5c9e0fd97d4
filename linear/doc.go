// Package linear runs a memory.Stack over a wazero linear memory.
//
// A Region owns the stack for one module instance. It hands out aligned
// pointers from the stack top, grows the memory a page at a time when the
// top passes the end, and gives byte-level access for filling what it
// allocates:
//
//	r, err := linear.NewRegion(mod.ExportedMemory("memory"), linear.WithBase(1024))
//	if err != nil {
//	    return err
//	}
//
//	ptr, err := r.Alloc(12, 4)
//	if err != nil {
//	    return err
//	}
//	_ = r.Write(ptr, payload)
//	r.Free(ptr, 12, 4)
//
// Allocations must be freed newest first. Scope records a call's
// allocations and frees them in that order; Mark and Release do the same
// by address.
//
// A Region satisfies the root package Memory and Allocator interfaces.
package linear
