package linear

import (
	"sync"

	wasmstack "github.com/wippyai/wasm-stack"
)

// Entry is one allocation recorded by a Scope.
type Entry struct {
	Ptr   uint32
	Size  uint32
	Align uint32
}

// Scope records allocations made for one call so they can be freed together,
// newest first, as a stack allocator requires.
type Scope struct {
	entries []Entry
}

var scopePool = sync.Pool{
	New: func() any {
		return &Scope{entries: make([]Entry, 0, 8)}
	},
}

// NewScope takes an empty Scope from the pool.
func NewScope() *Scope {
	return scopePool.Get().(*Scope)
}

const maxPooledScopeCapacity = 128

// Release returns to pool. Must call after Free(); scope invalid after Release.
func (s *Scope) Release() {
	if cap(s.entries) > maxPooledScopeCapacity {
		return
	}
	s.Reset()
	scopePool.Put(s)
}

// FreeAndRelease frees every entry and returns the scope to the pool.
func (s *Scope) FreeAndRelease(allocator wasmstack.Allocator) {
	s.Free(allocator)
	s.Release()
}

// Alloc allocates through allocator and records the result.
func (s *Scope) Alloc(allocator wasmstack.Allocator, size, align uint32) (uint32, error) {
	ptr, err := allocator.Alloc(size, align)
	if err != nil {
		return 0, err
	}
	s.Add(ptr, size, align)
	return ptr, nil
}

// Add records an allocation made elsewhere.
func (s *Scope) Add(ptr, size, align uint32) {
	s.entries = append(s.entries, Entry{Ptr: ptr, Size: size, Align: align})
}

// Free frees every recorded allocation in reverse order.
func (s *Scope) Free(allocator wasmstack.Allocator) {
	if allocator == nil {
		return
	}
	for i := len(s.entries) - 1; i >= 0; i-- {
		e := s.entries[i]
		allocator.Free(e.Ptr, e.Size, e.Align)
	}
	s.entries = s.entries[:0]
}

// Reset forgets every entry without freeing it.
func (s *Scope) Reset() {
	s.entries = s.entries[:0]
}

// Len returns the number of recorded entries.
func (s *Scope) Len() int {
	return len(s.entries)
}

// Entries returns the recorded entries, oldest first. The slice is only
// valid until the next Free or Reset.
func (s *Scope) Entries() []Entry {
	return s.entries
}
