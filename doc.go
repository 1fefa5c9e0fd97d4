// Package wasmstack provides stack-discipline allocation over WebAssembly
// linear memory.
//
// # Architecture Overview
//
//	wasmstack/        Root package with the Memory and Allocator interfaces
//	├── memory/       Address types, Allocation, and the Stack allocator
//	├── linear/       Stack bound to a wazero memory: alignment, growth, access
//	├── errors/       Structured error types
//	└── cmd/stackrun  CLI and TUI for driving a stack by hand
//
// # Quick Start
//
// Bookkeeping only, no memory behind it:
//
//	s := memory.New()
//	a, _ := s.NextAllocation(16)
//	at, err := s.Allocate(a) // at is where a lives
//	...
//	err = s.Deallocate(a)
//
// Over a wazero module instance:
//
//	r, err := linear.NewRegion(mod.ExportedMemory("memory"))
//	if err != nil {
//	    log.Fatal(err)
//	}
//	ptr, err := r.Alloc(64, 8)
//	...
//	r.Free(ptr, 64, 8)
//
// # Stack Discipline
//
// Allocations begin exactly at the top and are released newest first. A
// request that breaks either rule is rejected and leaves the stack as it
// was; nothing is clamped or silently adjusted.
//
// # Thread Safety
//
// Stack and Region are not safe for concurrent use. Use one per instance, or
// serialize access.
//
// # Memory Model
//
// WASM linear memory can only grow, never shrink. Popping the stack makes
// bytes available for the next push but does not return pages to the host.
package wasmstack
