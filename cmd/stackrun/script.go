package main

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/wippyai/wasm-stack/errors"
	"github.com/wippyai/wasm-stack/linear"
	"github.com/wippyai/wasm-stack/memory"
)

// op is one scripted stack operation, e.g. "alloc 12 4".
type op struct {
	name string
	args []uint32
}

func (o op) String() string {
	if len(o.args) == 0 {
		return o.name
	}
	parts := make([]string, 0, len(o.args)+1)
	parts = append(parts, o.name)
	for _, a := range o.args {
		parts = append(parts, strconv.FormatUint(uint64(a), 10))
	}
	return strings.Join(parts, " ")
}

// arity lists accepted argument counts per op.
var arity = map[string][]int{
	"push":    {1},
	"alloc":   {1, 2},
	"pop":     {0},
	"preview": {1},
	"mark":    {0},
	"release": {0},
	"reset":   {0},
	"state":   {0},
}

// parseOps splits a script on commas, semicolons and newlines.
func parseOps(script string) ([]op, error) {
	fields := strings.FieldsFunc(script, func(r rune) bool {
		return r == ',' || r == ';' || r == '\n'
	})

	var ops []op
	for _, f := range fields {
		f = strings.TrimSpace(f)
		if f == "" || strings.HasPrefix(f, "#") {
			continue
		}
		o, err := parseOp(f)
		if err != nil {
			return nil, err
		}
		ops = append(ops, o)
	}
	return ops, nil
}

func parseOp(s string) (op, error) {
	words := strings.Fields(s)
	if len(words) == 0 {
		return op{}, errors.InvalidInput(errors.PhaseHost, "empty operation")
	}

	o := op{name: strings.ToLower(words[0])}
	counts, ok := arity[o.name]
	if !ok {
		return op{}, errors.InvalidInput(errors.PhaseHost, fmt.Sprintf("unknown operation %q", words[0]))
	}

	argc := len(words) - 1
	valid := false
	for _, c := range counts {
		if c == argc {
			valid = true
			break
		}
	}
	if !valid {
		return op{}, errors.InvalidInput(errors.PhaseHost, fmt.Sprintf("%s takes %v arguments, got %d", o.name, counts, argc))
	}

	for _, w := range words[1:] {
		v, err := strconv.ParseUint(w, 0, 32)
		if err != nil {
			return op{}, errors.Wrap(errors.PhaseHost, errors.KindInvalidInput, err, fmt.Sprintf("argument %q of %s", w, o.name))
		}
		o.args = append(o.args, uint32(v))
	}
	return o, nil
}

// session applies ops to a Region and remembers marks for release.
type session struct {
	region *linear.Region
	marks  []memory.Top
}

func newSession(r *linear.Region) *session {
	return &session{region: r}
}

// apply runs o and describes the outcome. Errors leave the region unchanged.
func (s *session) apply(o op) (string, error) {
	r := s.region
	switch o.name {
	case "push":
		ptr, err := r.Alloc(o.args[0], 1)
		if err != nil {
			return "", err
		}
		return fmt.Sprintf("push %d -> ptr %d, top %d", o.args[0], ptr, r.Mark()), nil

	case "alloc":
		align := uint32(1)
		if len(o.args) > 1 {
			align = o.args[1]
		}
		ptr, err := r.Alloc(o.args[0], align)
		if err != nil {
			return "", err
		}
		return fmt.Sprintf("alloc %d align %d -> ptr %d, top %d", o.args[0], align, ptr, r.Mark()), nil

	case "pop":
		a, err := r.Pop()
		if err != nil {
			return "", err
		}
		s.dropMarksAbove(r.Mark())
		return fmt.Sprintf("pop %s -> top %d", a, r.Mark()), nil

	case "preview":
		a, err := r.Stack().NextAllocation(memory.Int(o.args[0]))
		if err != nil {
			return "", err
		}
		return fmt.Sprintf("next %s", a), nil

	case "mark":
		m := r.Mark()
		s.marks = append(s.marks, m)
		return fmt.Sprintf("mark %d", m), nil

	case "release":
		if len(s.marks) == 0 {
			return "", errors.InvalidInput(errors.PhaseHost, "no mark to release to")
		}
		m := s.marks[len(s.marks)-1]
		if err := r.Release(m); err != nil {
			return "", err
		}
		s.marks = s.marks[:len(s.marks)-1]
		return fmt.Sprintf("release -> top %d", r.Mark()), nil

	case "reset":
		if err := r.Reset(); err != nil {
			return "", err
		}
		s.marks = s.marks[:0]
		return fmt.Sprintf("reset -> top %d", r.Mark()), nil

	case "state":
		return s.state(), nil
	}
	return "", errors.InvalidInput(errors.PhaseHost, fmt.Sprintf("unknown operation %q", o.name))
}

// dropMarksAbove forgets marks that no longer sit on a frame boundary.
func (s *session) dropMarksAbove(top memory.Top) {
	for len(s.marks) > 0 && s.marks[len(s.marks)-1] > top {
		s.marks = s.marks[:len(s.marks)-1]
	}
}

func (s *session) state() string {
	r := s.region
	st := r.Stack()
	return fmt.Sprintf("top %d, base %d, used %d, available %d, frames %d, memory %d bytes",
		st.Top(), r.Base(), st.Used(), st.Available(), len(r.Frames()), r.Size())
}
