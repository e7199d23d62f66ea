package codegen

import (
	"fmt"
	"log/slog"

	"github.com/llir/llvm/ir"
	"github.com/llir/llvm/ir/constant"
	irtypes "github.com/llir/llvm/ir/types"
	"github.com/llir/llvm/ir/value"

	"github.com/you-not-fish/pragma/internal/rtabi"
	"github.com/you-not-fish/pragma/internal/syntax"
	"github.com/you-not-fish/pragma/internal/types"
)

// generator holds the state for lowering one compilation unit.
// It is not safe for concurrent use.
type generator struct {
	cfg *Config
	o   Oracle
	log *slog.Logger
	m   *ir.Module

	values   map[*types.Var]value.Value    // variable → its storage, or the *ir.Func
	funcs    map[*syntax.FuncDecl]*ir.Func // seen definitions; nil without a prototype
	lowered  map[*syntax.FuncDecl]bool     // definitions whose body was emitted
	symbols  map[string]*ir.Func           // function symbols by name
	strings  map[string]*ir.Global         // string table, by content
	typeDefs map[*types.Named]irtypes.Type // named types already materialized
	names    map[string]int                // global identifiers in use
	tnames   map[string]int                // type identifiers in use
	memcpy   *ir.Func

	fn  *funcState // function being lowered
	cur *ir.Block  // insertion point (nil = unreachable)
}

// funcState is the per-function lowering context.
type funcState struct {
	decl    *syntax.FuncDecl // nil for __init
	f       *ir.Func
	vars    *ir.Block
	entry   *ir.Block
	result  types.Type // nil if none was declared
	loops   []loopTargets
	nblocks int
}

type loopTargets struct {
	brk  *ir.Block // loop exit
	cont *ir.Block // next iteration
}

func newGenerator(o Oracle, cfg *Config) *generator {
	m := ir.NewModule()
	m.TargetTriple = cfg.TargetTriple
	return &generator{
		cfg:      cfg,
		o:        o,
		log:      cfg.logger(),
		m:        m,
		values:   make(map[*types.Var]value.Value),
		funcs:    make(map[*syntax.FuncDecl]*ir.Func),
		lowered:  make(map[*syntax.FuncDecl]bool),
		symbols:  make(map[string]*ir.Func),
		strings:  make(map[string]*ir.Global),
		typeDefs: make(map[*types.Named]irtypes.Type),
		names:    make(map[string]int),
		tnames:   make(map[string]int),
	}
}

// Generate lowers a program to a module. All files share one namespace
// and their declarations are lowered as a single sequence.
func Generate(prog *syntax.Program, o Oracle, cfg *Config) (*ir.Module, error) {
	var decls []syntax.Node
	for _, f := range prog.Files {
		decls = append(decls, f.Decls...)
	}
	return generate(decls, o, cfg)
}

// GenerateFile lowers a single file to a module.
func GenerateFile(f *syntax.File, o Oracle, cfg *Config) (*ir.Module, error) {
	return generate(f.Decls, o, cfg)
}

func generate(decls []syntax.Node, o Oracle, cfg *Config) (m *ir.Module, err error) {
	if cfg == nil {
		cfg = new(Config)
	}
	g := newGenerator(o, cfg)
	defer func() {
		if r := recover(); r != nil {
			b, ok := r.(bailout)
			if !ok {
				panic(r)
			}
			m, err = nil, b.err
		}
	}()

	g.module(decls)

	if cfg.Verify {
		if err := Verify(g.m); err != nil {
			return nil, err
		}
	}
	g.log.Debug("module lowered",
		"funcs", len(g.m.Funcs),
		"globals", len(g.m.Globals),
		"types", len(g.m.TypeDefs))
	return g.m, nil
}

// module emits the init function and, through it, every declaration.
func (g *generator) module(decls []syntax.Node) {
	b := Partition(decls, g.o)
	g.log.Debug("partitioned declarations",
		"consts", len(b.Consts),
		"globals", len(b.Globals),
		"funcs", len(b.Funcs),
		"other", len(b.Other))

	fs := g.newFuncState(nil, g.newInit(), nil)
	restore := g.enter(fs)
	defer restore()

	g.emit(&b)
	if g.cur == nil {
		g.errorf(syntax.NoPos, "top-level code does not fall through to the end of %s", rtabi.InitFunc)
	}
	g.callEntry(b.Funcs)

	switch g.cfg.Mode {
	case Library:
		g.cur.NewRet(constant.NewInt(irtypes.I32, rtabi.DLLSuccess))
	default:
		g.cur.NewRet(nil)
	}
	g.finish(fs)
}

// emit lowers partitioned declarations in the current function context:
// prototypes first, then constants, globals and everything else.
func (g *generator) emit(b *Buckets) {
	for _, d := range b.Funcs {
		g.declareFunc(d)
	}
	for _, d := range b.Consts {
		g.varDecl(d)
	}
	for _, d := range b.Globals {
		g.varDecl(d)
	}
	for _, n := range b.Other {
		g.stmt(n)
	}
}

// namespace lowers a namespace in the current function context.
func (g *generator) namespace(ns *syntax.Namespace) {
	b := partitionNamespace(ns.Decls, g.o)
	g.log.Debug("lowering namespace", "name", ns.Name, "decls", b.Len())
	g.emit(&b)
}

func (g *generator) newInit() *ir.Func {
	var f *ir.Func
	switch g.cfg.Mode {
	case Library:
		f = g.m.NewFunc(rtabi.InitFunc, irtypes.I32,
			ir.NewParam(rtabi.DLLParamHandle, irtypes.I64),
			ir.NewParam(rtabi.DLLParamReason, irtypes.I32),
			ir.NewParam(rtabi.DLLParamReserved, irtypes.I8Ptr))
	default:
		f = g.m.NewFunc(rtabi.InitFunc, irtypes.Void)
	}
	g.symbols[rtabi.InitFunc] = f
	g.names[rtabi.InitFunc]++
	return f
}

// callEntry calls the entry function from the init function, if the unit
// defines an active one.
func (g *generator) callEntry(funcs []*syntax.FuncDecl) {
	name := g.cfg.entryName()
	for _, d := range funcs {
		if d.Name != name {
			continue
		}
		f := g.funcs[d]
		if f == nil {
			continue
		}
		if len(f.Params) != 0 {
			g.errorf(d.Pos(), "entry function %s must not take parameters", name)
		}
		g.cur.NewCall(f)
		return
	}
}

// ----------------------------------------------------------------------------
// Insertion point

func (g *generator) newFuncState(decl *syntax.FuncDecl, f *ir.Func, result types.Type) *funcState {
	fs := &funcState{decl: decl, f: f, result: result}
	fs.vars = f.NewBlock(rtabi.BlockVars)
	fs.entry = f.NewBlock(rtabi.BlockEntry)
	return fs
}

// enter makes fs the current function and positions at its entry block.
// The returned func restores the previous function and position.
func (g *generator) enter(fs *funcState) (restore func()) {
	fn, cur := g.fn, g.cur
	g.fn, g.cur = fs, fs.entry
	return func() { g.fn, g.cur = fn, cur }
}

// at moves the insertion point to b. The returned func moves it back.
func (g *generator) at(b *ir.Block) (restore func()) {
	cur := g.cur
	g.cur = b
	return func() { g.cur = cur }
}

// finish closes the vars block of fs.
func (g *generator) finish(fs *funcState) {
	fs.vars.NewBr(fs.entry)
}

// newBlock appends a block to the current function.
func (g *generator) newBlock(name string) *ir.Block {
	g.fn.nblocks++
	return g.fn.f.NewBlock(fmt.Sprintf("%s.%d", name, g.fn.nblocks))
}

// removeBlock removes an unreferenced block from the current function.
func (g *generator) removeBlock(dead *ir.Block) {
	blocks := g.fn.f.Blocks
	for i, b := range blocks {
		if b == dead {
			g.fn.f.Blocks = append(blocks[:i], blocks[i+1:]...)
			return
		}
	}
}

// alloca creates a stack slot in the vars block of the current function.
func (g *generator) alloca(t irtypes.Type) *ir.InstAlloca {
	restore := g.at(g.fn.vars)
	defer restore()
	return g.cur.NewAlloca(t)
}

// inFunction reports whether n appears inside a function body, as opposed
// to file, namespace or module level.
func (g *generator) inFunction(n syntax.Node) bool {
	if s := n.Scope(); s != nil {
		return s.Func() != nil
	}
	return g.fn.decl != nil
}

// globalName returns name, or name with a numeric suffix if a global
// identifier called name already exists.
func (g *generator) globalName(name string) string {
	return unique(g.names, name)
}

func unique(used map[string]int, name string) string {
	n := used[name]
	used[name] = n + 1
	if n == 0 {
		return name
	}
	return fmt.Sprintf("%s.%d", name, n)
}

// ----------------------------------------------------------------------------
// Oracle access and diagnostics

func (g *generator) errorf(pos syntax.Pos, format string, args ...interface{}) {
	panic(bailout{&Error{Pos: pos, Msg: fmt.Sprintf(format, args...)}})
}

func (g *generator) warnf(pos syntax.Pos, format string, args ...interface{}) {
	msg := fmt.Sprintf(format, args...)
	g.log.Warn(msg, "pos", pos.String())
	if g.cfg.Warn != nil {
		g.cfg.Warn(pos, msg)
	}
}

// resolve returns the variable name denotes at n.
func (g *generator) resolve(name string, at syntax.Node) *types.Var {
	v := g.o.ResolveVariable(name, at)
	if v == nil {
		g.errorf(at.Pos(), "undefined: %s", name)
	}
	return v
}

// typeOf returns the type of n.
func (g *generator) typeOf(n syntax.Node) types.Type {
	t := g.o.TypeOf(n)
	if t == nil {
		g.errorf(n.Pos(), "cannot determine type of %s", syntax.KindName(syntax.Unwrap(n)))
	}
	return t
}

// storage returns the value bound to v: an *ir.Func for functions, else a
// pointer to the variable.
func (g *generator) storage(v *types.Var, at syntax.Node) value.Value {
	s, ok := g.values[v]
	if !ok {
		g.errorf(at.Pos(), "%s used before its definition", v.Name())
	}
	return s
}
