package memory

import (
	"errors"
	"testing"

	stackerrors "github.com/wippyai/wasm-stack/errors"
)

func mustAllocation(t *testing.T, offset, length Int) Allocation {
	t.Helper()
	a, err := NewAllocation(offset, length)
	if err != nil {
		t.Fatalf("NewAllocation(%d, %d): %v", offset, length, err)
	}
	return a
}

func TestNewAllocation(t *testing.T) {
	tests := []struct {
		name    string
		offset  Int
		length  Int
		wantErr bool
	}{
		{"empty at zero", 0, 0, false},
		{"plain", 16, 32, false},
		{"ends at max", 0xFFFFFFF0, 0x0F, false},
		{"zero length at max", 0xFFFFFFFF, 0, false},
		{"one past max", 0xFFFFFFF0, 0x10, true},
		{"both huge", 0xFFFFFFFF, 0xFFFFFFFF, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			a, err := NewAllocation(tt.offset, tt.length)
			if tt.wantErr {
				if err == nil {
					t.Fatalf("expected overflow error, got %v", a)
				}
				if !errors.Is(err, stackerrors.ErrOverflow) {
					t.Errorf("expected overflow kind, got %v", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if a.Offset() != tt.offset || a.Length() != tt.length {
				t.Errorf("got offset=%d length=%d", a.Offset(), a.Length())
			}
			if a.End() != tt.offset+tt.length {
				t.Errorf("End() = %d, want %d", a.End(), tt.offset+tt.length)
			}
		})
	}
}

func TestAllocation_String(t *testing.T) {
	a := mustAllocation(t, 40, 10)
	if got := a.String(); got != "[40, 50)" {
		t.Errorf("String() = %q, want [40, 50)", got)
	}
}

func TestTop_Conversions(t *testing.T) {
	top := Top(0xFFFFFFFF)
	if top.Int() != Int(0xFFFFFFFF) {
		t.Errorf("Int() = %d", top.Int())
	}
	if top.Bits()+1 != Bits(1)<<32 {
		t.Errorf("Bits() should widen without wrapping, got %d", top.Bits()+1)
	}
}
