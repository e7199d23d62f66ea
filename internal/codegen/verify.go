package codegen

import (
	"fmt"
	"strings"

	"github.com/llir/llvm/ir"
	"github.com/llir/llvm/ir/value"

	"github.com/you-not-fish/pragma/internal/rtabi"
)

// Verify checks the structural rules every lowered function follows.
// It returns an error describing all violations found, or nil if valid.
//
// For each function with a body:
//  1. Blocks[0] is "vars" and Blocks[1] is "entry".
//  2. vars ends in an unconditional branch to entry.
//  3. Every block has a terminator.
//  4. Allocas appear only in vars.
//  5. Block names are unique.
func Verify(m *ir.Module) error {
	var errs []string

	add := func(format string, args ...interface{}) {
		errs = append(errs, fmt.Sprintf(format, args...))
	}

	for _, f := range m.Funcs {
		if len(f.Blocks) == 0 {
			continue // declaration
		}
		name := f.Name()

		if len(f.Blocks) < 2 {
			add("func %s: %d blocks, want at least %s and %s", name, len(f.Blocks), rtabi.BlockVars, rtabi.BlockEntry)
			continue
		}
		vars, entry := f.Blocks[0], f.Blocks[1]
		if vars.LocalName != rtabi.BlockVars {
			add("func %s: first block is %q, want %q", name, vars.LocalName, rtabi.BlockVars)
		}
		if entry.LocalName != rtabi.BlockEntry {
			add("func %s: second block is %q, want %q", name, entry.LocalName, rtabi.BlockEntry)
		}
		if br, ok := vars.Term.(*ir.TermBr); !ok || br.Target != value.Value(entry) {
			add("func %s: %s does not branch to %s", name, rtabi.BlockVars, rtabi.BlockEntry)
		}

		seen := make(map[string]bool, len(f.Blocks))
		for _, b := range f.Blocks {
			if seen[b.LocalName] {
				add("func %s: duplicate block name %q", name, b.LocalName)
			}
			seen[b.LocalName] = true

			if b.Term == nil {
				add("func %s, %s: block has no terminator", name, b.LocalName)
			}
			if b == vars {
				continue
			}
			for _, inst := range b.Insts {
				if _, ok := inst.(*ir.InstAlloca); ok {
					add("func %s, %s: alloca outside %s", name, b.LocalName, rtabi.BlockVars)
				}
			}
		}
	}

	return combineErrors(errs)
}

// combineErrors creates an error from a list of error strings, or returns nil.
func combineErrors(errs []string) error {
	if len(errs) == 0 {
		return nil
	}
	return fmt.Errorf("IR verification failed:\n  %s", strings.Join(errs, "\n  "))
}
