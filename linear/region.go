package linear

import (
	"github.com/tetratelabs/wazero/api"
	"go.uber.org/zap"

	wasmstack "github.com/wippyai/wasm-stack"
	"github.com/wippyai/wasm-stack/errors"
	"github.com/wippyai/wasm-stack/memory"
)

var (
	_ wasmstack.Allocator   = (*Region)(nil)
	_ wasmstack.Memory      = (*Region)(nil)
	_ wasmstack.MemorySizer = (*Region)(nil)
)

// frame is one Region allocation. alloc covers the alignment padding,
// ptr is the aligned address handed to the caller.
type frame struct {
	alloc memory.Allocation
	ptr   uint32
	size  uint32
}

// Region binds a memory.Stack to a wazero linear memory. Allocations are
// pushed at the stack top, aligned, and the memory is grown in whole pages
// when the top passes its current size.
//
// A Region is not safe for concurrent use.
type Region struct {
	mem    api.Memory
	logger *zap.Logger
	frames []frame
	stack  memory.Stack
	base   memory.Int
}

type options struct {
	logger   *zap.Logger
	base     memory.Int
	maxPages uint32
	hasMax   bool
}

// Option configures a Region.
type Option func(*options)

// WithBase reserves [0, base) below the stack, e.g. for data segments.
func WithBase(base uint32) Option {
	return func(o *options) {
		o.base = memory.Int(base)
	}
}

// WithMaxPages caps the stack at pages*64KiB. Without it the memory's
// declared maximum is used, or the full 32-bit space.
func WithMaxPages(pages uint32) Option {
	return func(o *options) {
		o.maxPages = pages
		o.hasMax = true
	}
}

// WithLogger sets the logger used by the Region.
func WithLogger(l *zap.Logger) Option {
	return func(o *options) {
		o.logger = l
	}
}

// NewRegion creates a Region over mem.
func NewRegion(mem api.Memory, opts ...Option) (*Region, error) {
	if mem == nil {
		return nil, errors.NotInitialized(errors.PhaseHost, "linear memory")
	}

	o := options{logger: Logger()}
	for _, opt := range opts {
		opt(&o)
	}

	pages := uint32(memory.MaxPages)
	if o.hasMax {
		pages = o.maxPages
	} else if declared, ok := mem.Definition().Max(); ok {
		pages = declared
	}
	limit := memory.Bits(pages) * memory.PageSize

	seed, err := memory.NewAllocation(0, o.base)
	if err != nil {
		return nil, err
	}
	stack, err := memory.FromAllocation(seed, memory.WithLimit(limit))
	if err != nil {
		return nil, err
	}

	r := &Region{
		mem:    mem,
		logger: o.logger,
		stack:  stack,
		base:   o.base,
	}
	if err := r.ensure(o.base); err != nil {
		return nil, err
	}
	return r, nil
}

// Alloc pushes size bytes aligned to align and returns their address.
// align must be a power of two; zero is treated as one.
func (r *Region) Alloc(size, align uint32) (uint32, error) {
	if align == 0 {
		align = 1
	}
	if align&(align-1) != 0 {
		return 0, errors.InvalidInput(errors.PhaseAllocate, "alignment must be a power of two")
	}

	top := r.stack.Top().Bits()
	aligned := (top + memory.Bits(align) - 1) &^ (memory.Bits(align) - 1)
	length := aligned - top + memory.Bits(size)
	if top+length > r.stack.Max() {
		return 0, errors.OutOfBounds(errors.PhaseAllocate, uint64(top+length), uint64(r.stack.Max()))
	}

	a, err := r.stack.Push(memory.Int(length))
	if err != nil {
		return 0, err
	}
	if err := r.ensure(a.End()); err != nil {
		// a is the top allocation, the pop cannot fail
		_ = r.stack.Deallocate(a)
		return 0, err
	}

	ptr := uint32(aligned)
	r.frames = append(r.frames, frame{alloc: a, ptr: ptr, size: size})
	r.logger.Debug("stack alloc",
		zap.Uint32("ptr", ptr),
		zap.Uint32("size", size),
		zap.Uint32("align", align),
		zap.Uint32("top", uint32(r.stack.Top())))
	return ptr, nil
}

// Free pops the top frame if it matches ptr and size. Anything else is a
// stack discipline violation by the caller; it is logged and ignored.
func (r *Region) Free(ptr, size, align uint32) {
	if len(r.frames) == 0 {
		r.logger.Warn("stack free with no live frames", zap.Uint32("ptr", ptr))
		return
	}
	f := r.frames[len(r.frames)-1]
	if f.ptr != ptr || f.size != size {
		r.logger.Warn("stack free out of order",
			zap.Uint32("ptr", ptr),
			zap.Uint32("size", size),
			zap.Uint32("top_ptr", f.ptr),
			zap.Uint32("top_size", f.size))
		return
	}
	if err := r.stack.Deallocate(f.alloc); err != nil {
		r.logger.Error("stack free rejected", zap.Error(err))
		return
	}
	r.frames = r.frames[:len(r.frames)-1]
	r.logger.Debug("stack free",
		zap.Uint32("ptr", ptr),
		zap.Uint32("size", size),
		zap.Uint32("top", uint32(r.stack.Top())))
}

// Pop frees the top frame, whatever it holds, and returns it.
func (r *Region) Pop() (memory.Allocation, error) {
	if len(r.frames) == 0 {
		return memory.Allocation{}, errors.New(errors.PhaseDeallocate, errors.KindBelowFloor).
			Detail("no live frames above base %d", r.base).
			Build()
	}
	f := r.frames[len(r.frames)-1]
	r.Free(f.ptr, f.size, 0)
	return f.alloc, nil
}

// Mark returns the current top, for a later Release.
func (r *Region) Mark() memory.Top {
	return r.stack.Top()
}

// Release pops every frame starting at or above mark, empty frames included.
// mark must be a frame boundary at or above the base; otherwise nothing is
// popped.
func (r *Region) Release(mark memory.Top) error {
	if mark.Int() < r.base {
		return errors.BelowFloor(uint32(mark), uint32(r.base))
	}
	k := len(r.frames)
	for k > 0 && r.frames[k-1].alloc.Offset() >= mark.Int() {
		k--
	}
	boundary := mark == r.stack.Top()
	if k < len(r.frames) && r.frames[k].alloc.Offset() == mark.Int() {
		boundary = true
	}
	if !boundary {
		return errors.New(errors.PhaseDeallocate, errors.KindNotAtTop).
			Value(uint32(mark)).
			Detail("mark %d is not a frame boundary below top %d", mark, r.stack.Top()).
			Build()
	}

	for i := len(r.frames) - 1; i >= k; i-- {
		if err := r.stack.Deallocate(r.frames[i].alloc); err != nil {
			return err
		}
		r.frames = r.frames[:i]
	}
	r.logger.Debug("stack release", zap.Uint32("top", uint32(r.stack.Top())))
	return nil
}

// Reset pops every frame, leaving only the reserved base.
func (r *Region) Reset() error {
	return r.Release(memory.Top(r.base))
}

// Stack returns a copy of the underlying stack.
func (r *Region) Stack() memory.Stack {
	return r.stack
}

// Frames returns the live allocations from bottom to top, padding included.
func (r *Region) Frames() []memory.Allocation {
	out := make([]memory.Allocation, len(r.frames))
	for i, f := range r.frames {
		out[i] = f.alloc
	}
	return out
}

// Base returns the size of the reserved prefix.
func (r *Region) Base() uint32 {
	return uint32(r.base)
}

// Size returns the current size of the linear memory in bytes.
func (r *Region) Size() uint32 {
	return r.mem.Size()
}

// ensure grows the memory so that end bytes are addressable.
func (r *Region) ensure(end memory.Int) error {
	size := memory.Bits(r.mem.Size())
	if memory.Bits(end) <= size {
		return nil
	}
	delta := uint32((memory.Bits(end) - size + memory.PageSize - 1) / memory.PageSize)
	prev, ok := r.mem.Grow(delta)
	if !ok {
		return errors.GrowFailed(delta, uint32(size/memory.PageSize))
	}
	r.logger.Debug("linear memory grown",
		zap.Uint32("from_pages", prev),
		zap.Uint32("to_pages", prev+delta))
	return nil
}
