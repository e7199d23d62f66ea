// Package codegen lowers a type-checked Pragma syntax tree to an LLVM IR
// module.
//
// Lowering is a single walk over the tree. It asks an Oracle for the
// results of semantic analysis and builds instructions through
// github.com/llir/llvm. Every function gets a "vars" block holding its
// stack slots, followed by "entry" where control flow starts. Top-level
// code runs in the synthesized __init function.
package codegen

import (
	"fmt"
	"io"
	"log/slog"

	"github.com/you-not-fish/pragma/internal/rtabi"
	"github.com/you-not-fish/pragma/internal/syntax"
	"github.com/you-not-fish/pragma/internal/types"
	"github.com/you-not-fish/pragma/internal/types2"
)

// Oracle answers the semantic questions lowering depends on. It is
// implemented by *types2.Info.
type Oracle interface {
	// ResolveVariable returns the variable name denotes when looked up
	// from the scope of at, or nil.
	ResolveVariable(name string, at syntax.Node) *types.Var

	// TypeOf returns the type of a node, or nil if it has none.
	TypeOf(n syntax.Node) types.Type

	// HasAttribute reports whether n carries the named attribute.
	HasAttribute(n syntax.Node, name string) bool
}

var _ Oracle = (*types2.Info)(nil)

// Mode selects the shape of the module's init function.
type Mode uint8

const (
	// Executable: __init is void() and is the program entry.
	Executable Mode = iota

	// Library: __init is the shared-library load entry
	// i32(i64 instance, i32 reason, i8* reserved) and returns 1.
	Library
)

func (m Mode) String() string {
	switch m {
	case Executable:
		return "executable"
	case Library:
		return "library"
	}
	return fmt.Sprintf("Mode(%d)", m)
}

// Config controls lowering. The zero value is usable.
type Config struct {
	Mode Mode

	// EntryName is the function __init calls after top-level code.
	// If empty, "main" is used.
	EntryName string

	// TargetTriple is copied to the module if set.
	TargetTriple string

	// Warn receives soft diagnostics, such as a function without a
	// declared return type. If nil, warnings are only logged.
	// GenerateAll may call it from several goroutines.
	Warn types2.ErrorHandler

	// StrictReturnTypes turns a missing return type into an error.
	StrictReturnTypes bool

	// Verify runs Verify on the module before it is returned.
	Verify bool

	// Logger receives debug records. If nil, nothing is logged.
	Logger *slog.Logger
}

func (c *Config) entryName() string {
	if c.EntryName == "" {
		return rtabi.DefaultEntry
	}
	return c.EntryName
}

func (c *Config) logger() *slog.Logger {
	if c.Logger == nil {
		return slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return c.Logger
}

// Error is a lowering failure at a source position. Lowering stops at the
// first Error and no module is returned.
type Error struct {
	Pos syntax.Pos
	Msg string
}

func (e *Error) Error() string {
	return fmt.Sprintf("%s: %s", e.Pos, e.Msg)
}

// bailout carries an *Error from deep inside lowering to Generate.
type bailout struct{ err *Error }
