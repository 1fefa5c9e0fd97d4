package errors

import (
	"errors"
	"strings"
	"testing"
)

func TestError_Error(t *testing.T) {
	tests := []struct {
		name     string
		err      *Error
		contains []string
	}{
		{
			name: "full error",
			err: &Error{
				Phase:  PhaseAllocate,
				Kind:   KindBadStackAlignment,
				Detail: "allocation at 12 does not start at stack top 10",
			},
			contains: []string{"[allocate]", "bad_stack_alignment", "stack top 10"},
		},
		{
			name: "minimal error",
			err: &Error{
				Phase: PhaseDeallocate,
				Kind:  KindNotAtTop,
			},
			contains: []string{"[deallocate]", "not_at_top"},
		},
		{
			name: "error with cause",
			err: &Error{
				Phase:  PhaseGrow,
				Kind:   KindGrowFailed,
				Detail: "memory full",
				Cause:  errors.New("underlying error"),
			},
			contains: []string{"[grow]", "grow_failed", "memory full", "caused by", "underlying error"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			msg := tt.err.Error()
			for _, s := range tt.contains {
				if !strings.Contains(msg, s) {
					t.Errorf("error message %q does not contain %q", msg, s)
				}
			}
		})
	}
}

func TestError_Unwrap(t *testing.T) {
	cause := errors.New("root cause")
	err := Wrap(PhaseAccess, KindOutOfBounds, cause, "read")

	if !errors.Is(err.Unwrap(), cause) {
		t.Error("Unwrap did not return cause")
	}
	if !errors.Is(err, cause) {
		t.Error("errors.Is did not reach cause")
	}
}

func TestError_Is(t *testing.T) {
	err := &Error{Phase: PhaseAllocate, Kind: KindOutOfBounds}

	if !err.Is(&Error{Phase: PhaseAllocate, Kind: KindOutOfBounds}) {
		t.Error("Is should match same phase and kind")
	}
	if err.Is(&Error{Phase: PhaseAccess, Kind: KindOutOfBounds}) {
		t.Error("Is should not match different phase")
	}
	if err.Is(&Error{Phase: PhaseAllocate, Kind: KindOverflow}) {
		t.Error("Is should not match different kind")
	}
	if !errors.Is(err, ErrOutOfBounds) {
		t.Error("template without phase should match any phase")
	}
	if errors.Is(err, ErrNotAtTop) {
		t.Error("template of another kind should not match")
	}
	if err.Is(errors.New("plain")) {
		t.Error("Is should not match foreign error types")
	}
}

func TestBuilder(t *testing.T) {
	cause := errors.New("root")
	err := New(PhaseGrow, KindGrowFailed).
		Value(3).
		Cause(cause).
		Detail("grow by %d pages", 3).
		Build()

	if err.Phase != PhaseGrow {
		t.Errorf("Phase = %v, want %v", err.Phase, PhaseGrow)
	}
	if err.Kind != KindGrowFailed {
		t.Errorf("Kind = %v, want %v", err.Kind, KindGrowFailed)
	}
	if err.Value != 3 {
		t.Errorf("Value = %v, want 3", err.Value)
	}
	if !errors.Is(err.Cause, cause) {
		t.Errorf("Cause = %v, want %v", err.Cause, cause)
	}
	if err.Detail != "grow by 3 pages" {
		t.Errorf("Detail = %q, want 'grow by 3 pages'", err.Detail)
	}

	plain := New(PhaseHost, KindInvalidInput).Detail("plain detail").Build()
	if plain.Detail != "plain detail" {
		t.Errorf("Detail without args should be verbatim, got %q", plain.Detail)
	}
}

func TestConvenienceConstructors(t *testing.T) {
	tests := []struct {
		name   string
		err    *Error
		phase  Phase
		kind   Kind
		detail string
	}{
		{"BadStackAlignment", BadStackAlignment(12, 10), PhaseAllocate, KindBadStackAlignment, "12"},
		{"OutOfBounds", OutOfBounds(PhaseAllocate, 110, 100), PhaseAllocate, KindOutOfBounds, "110"},
		{"Overflow", Overflow(0xFFFFFFFF, 2), PhaseConstruct, KindOverflow, "4294967295"},
		{"NotAtTop", NotAtTop(40, 50), PhaseDeallocate, KindNotAtTop, "50"},
		{"BelowFloor", BelowFloor(4, 8), PhaseDeallocate, KindBelowFloor, "floor 8"},
		{"InvalidInput", InvalidInput(PhaseHost, "bad op"), PhaseHost, KindInvalidInput, "bad op"},
		{"NotInitialized", NotInitialized(PhaseAccess, "memory"), PhaseAccess, KindNotInitialized, "memory not initialized"},
		{"GrowFailed", GrowFailed(2, 1), PhaseGrow, KindGrowFailed, "2 pages"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.err.Phase != tt.phase {
				t.Errorf("Phase = %v, want %v", tt.err.Phase, tt.phase)
			}
			if tt.err.Kind != tt.kind {
				t.Errorf("Kind = %v, want %v", tt.err.Kind, tt.kind)
			}
			if !strings.Contains(tt.err.Detail, tt.detail) {
				t.Errorf("Detail = %q, should contain %q", tt.err.Detail, tt.detail)
			}
		})
	}

	if v := Overflow(0xFFFFFFFF, 2).Value; v != uint64(0x100000001) {
		t.Errorf("Overflow value = %v, want wide sum", v)
	}
}
