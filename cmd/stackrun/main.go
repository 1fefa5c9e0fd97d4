package main

import (
	"context"
	"encoding/binary"
	"flag"
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/tetratelabs/wazero"
	"go.uber.org/zap"
	"golang.org/x/term"

	"github.com/wippyai/wasm-stack/linear"
)

func main() {
	var (
		pages       = flag.Uint("pages", 1, "Initial memory pages")
		maxPages    = flag.Uint("max-pages", 0, "Declared maximum memory pages (0 for none)")
		base        = flag.Uint("base", 0, "Bytes reserved below the stack")
		ops         = flag.String("ops", "", "Operations to run (push N, alloc N A, pop, preview N, mark, release, reset, state)")
		file        = flag.String("file", "", "Read operations from file")
		interactive = flag.Bool("i", false, "Interactive mode with TUI")
		verbose     = flag.Bool("v", false, "Debug logging")
	)
	flag.Parse()

	if *ops == "" && *file == "" && !*interactive {
		fmt.Fprintln(os.Stderr, "Usage: stackrun [-pages N] [-max-pages N] [-base N] -ops \"push 16,alloc 8 8,pop\"")
		fmt.Fprintln(os.Stderr, "       stackrun -file ops.txt")
		fmt.Fprintln(os.Stderr, "       stackrun -i  (interactive mode)")
		os.Exit(1)
	}

	log := zap.NewNop()
	if *verbose {
		l, err := zap.NewDevelopment()
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		log = l
	}
	defer log.Sync()
	linear.SetLogger(log)

	cfg := config{
		pages:    uint32(*pages),
		maxPages: uint32(*maxPages),
		base:     uint32(*base),
	}

	if *interactive {
		if !term.IsTerminal(int(os.Stdout.Fd())) {
			fmt.Fprintln(os.Stderr, "Error: interactive mode needs a terminal")
			os.Exit(1)
		}
		if err := runInteractive(cfg); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		return
	}

	script := *ops
	if *file != "" {
		data, err := os.ReadFile(*file)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: read file: %v\n", err)
			os.Exit(1)
		}
		script = string(data)
	}

	if err := run(cfg, script); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

type config struct {
	pages    uint32
	maxPages uint32
	base     uint32
}

func run(cfg config, script string) error {
	ops, err := parseOps(script)
	if err != nil {
		return fmt.Errorf("parse: %w", err)
	}

	ctx := context.Background()
	rt := wazero.NewRuntime(ctx)
	defer rt.Close(ctx)

	region, err := newRegion(ctx, rt, cfg)
	if err != nil {
		return err
	}

	s := newSession(region)
	fmt.Println(s.state())
	failed := 0
	for _, o := range ops {
		out, err := s.apply(o)
		if err != nil {
			failed++
			fmt.Printf("%-20s rejected: %v\n", o, err)
			continue
		}
		fmt.Println(out)
	}
	fmt.Println(s.state())

	if failed > 0 {
		return fmt.Errorf("%d of %d operations rejected", failed, len(ops))
	}
	return nil
}

// newRegion instantiates a memory-only module in rt and wraps its memory.
func newRegion(ctx context.Context, rt wazero.Runtime, cfg config) (*linear.Region, error) {
	compiled, err := rt.CompileModule(ctx, memoryModule(cfg.pages, cfg.maxPages))
	if err != nil {
		return nil, fmt.Errorf("compile: %w", err)
	}
	mod, err := rt.InstantiateModule(ctx, compiled, wazero.NewModuleConfig())
	if err != nil {
		return nil, fmt.Errorf("instantiate: %w", err)
	}
	return linear.NewRegion(mod.ExportedMemory("memory"), linear.WithBase(cfg.base))
}

// memoryModule encodes a module whose only content is an exported memory.
// maxPages of 0 leaves the maximum undeclared.
func memoryModule(pages, maxPages uint32) []byte {
	var limits []byte
	if maxPages > 0 {
		limits = append(limits, 0x01)
		limits = binary.AppendUvarint(limits, uint64(pages))
		limits = binary.AppendUvarint(limits, uint64(maxPages))
	} else {
		limits = append(limits, 0x00)
		limits = binary.AppendUvarint(limits, uint64(pages))
	}

	memSec := append([]byte{0x01}, limits...) // one memory

	expSec := []byte{0x01, 0x06} // one export, name length 6
	expSec = append(expSec, "memory"...)
	expSec = append(expSec, 0x02, 0x00) // kind: memory, index 0

	out := []byte{0x00, 0x61, 0x73, 0x6d, 0x01, 0x00, 0x00, 0x00}
	out = appendSection(out, 0x05, memSec)
	out = appendSection(out, 0x07, expSec)
	return out
}

func appendSection(out []byte, id byte, body []byte) []byte {
	out = append(out, id)
	out = binary.AppendUvarint(out, uint64(len(body)))
	return append(out, body...)
}

func runInteractive(cfg config) error {
	ctx := context.Background()
	rt := wazero.NewRuntime(ctx)
	defer rt.Close(ctx)

	region, err := newRegion(ctx, rt, cfg)
	if err != nil {
		return err
	}

	p := tea.NewProgram(newInteractiveModel(newSession(region)), tea.WithAltScreen())
	_, err = p.Run()
	return err
}
