package linear

import (
	"errors"
	"testing"

	"go.bytecodealliance.org/wit"

	stackerrors "github.com/wippyai/wasm-stack/errors"
)

func TestLayoutOf(t *testing.T) {
	tests := []struct {
		name string
		typ  wit.Type
		want Layout
	}{
		{"bool", wit.Bool{}, Layout{1, 1}},
		{"u8", wit.U8{}, Layout{1, 1}},
		{"s16", wit.S16{}, Layout{2, 2}},
		{"u32", wit.U32{}, Layout{4, 4}},
		{"char", wit.Char{}, Layout{4, 4}},
		{"f64", wit.F64{}, Layout{8, 8}},
		{"string", wit.String{}, Layout{8, 4}},
		{"list", &wit.TypeDef{Kind: &wit.List{Type: wit.U8{}}}, Layout{8, 4}},
		{"alias", &wit.TypeDef{Kind: wit.U64{}}, Layout{8, 8}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := LayoutOf(tt.typ)
			if !ok {
				t.Fatal("expected a layout")
			}
			if got != tt.want {
				t.Errorf("LayoutOf = %+v, want %+v", got, tt.want)
			}
		})
	}

	record := &wit.TypeDef{Kind: &wit.Record{Fields: []wit.Field{{Name: "a", Type: wit.U8{}}}}}
	if _, ok := LayoutOf(record); ok {
		t.Error("records have no stack layout")
	}
}

func TestRegion_AllocType(t *testing.T) {
	r := newTestRegion(t, WithBase(1))

	ptr, err := r.AllocType(wit.U64{}, 3)
	if err != nil {
		t.Fatalf("AllocType: %v", err)
	}
	if ptr != 8 {
		t.Errorf("ptr = %d, want 8", ptr)
	}
	if r.Mark() != 32 {
		t.Errorf("top = %d, want 32", r.Mark())
	}

	record := &wit.TypeDef{Kind: &wit.Record{}}
	if _, err := r.AllocType(record, 1); err == nil {
		t.Error("expected error for record")
	}

	_, err = r.AllocType(wit.U64{}, 1<<30)
	if !errors.Is(err, stackerrors.ErrOverflow) {
		t.Errorf("expected overflow, got %v", err)
	}
}
