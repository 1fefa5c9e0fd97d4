package linear

import (
	"go.bytecodealliance.org/wit"

	"github.com/wippyai/wasm-stack/errors"
	"github.com/wippyai/wasm-stack/memory"
)

// Layout is the canonical ABI size and alignment of a value.
type Layout struct {
	Size  uint32
	Align uint32
}

// LayoutOf returns the canonical ABI layout of primitive, string and list
// types, following aliases. ok is false for anything else.
func LayoutOf(t wit.Type) (Layout, bool) {
	switch typ := t.(type) {
	case wit.U8, wit.S8, wit.Bool:
		return Layout{Size: 1, Align: 1}, true
	case wit.U16, wit.S16:
		return Layout{Size: 2, Align: 2}, true
	case wit.U32, wit.S32, wit.F32, wit.Char:
		return Layout{Size: 4, Align: 4}, true
	case wit.U64, wit.S64, wit.F64:
		return Layout{Size: 8, Align: 8}, true
	case wit.String:
		return Layout{Size: 8, Align: 4}, true // [ptr: u32, len: u32]
	case *wit.TypeDef:
		switch kind := typ.Kind.(type) {
		case *wit.List:
			return Layout{Size: 8, Align: 4}, true
		case wit.Type:
			return LayoutOf(kind)
		}
	}
	return Layout{}, false
}

// AllocType allocates room for count consecutive values of type t.
func (r *Region) AllocType(t wit.Type, count uint32) (uint32, error) {
	l, ok := LayoutOf(t)
	if !ok {
		return 0, errors.InvalidInput(errors.PhaseAllocate, "no stack layout for WIT type")
	}
	total := memory.Bits(l.Size) * memory.Bits(count)
	if total > memory.MaxInt {
		return 0, errors.New(errors.PhaseAllocate, errors.KindOverflow).
			Value(uint64(total)).
			Detail("%d x %d bytes overflows u32", count, l.Size).
			Build()
	}
	return r.Alloc(uint32(total), l.Align)
}
