package codegen

import (
	"strings"
	"testing"

	"github.com/llir/llvm/ir"

	"github.com/you-not-fish/pragma/internal/syntax"
	"github.com/you-not-fish/pragma/internal/types"
	"github.com/you-not-fish/pragma/internal/types2"
)

// fixture builds a scoped tree and the checker output for it.
type fixture struct {
	t    *testing.T
	pkg  *types.Package
	info *types2.Info
}

func newFixture(t *testing.T) *fixture {
	pkg := types.NewPackage("test")
	return &fixture{t: t, pkg: pkg, info: types2.NewInfo(pkg.Scope())}
}

// bind sets the scope of every node under n that has none.
func bind(s *types.Scope, nodes ...syntax.Node) {
	for _, n := range nodes {
		syntax.Inspect(n, func(c syntax.Node) bool {
			if u := syntax.Unwrap(c); u.Scope() == nil {
				u.SetScope(s)
			}
			return true
		})
	}
}

// global defines a module-level variable and returns its definition.
func (f *fixture) global(name string, typ types.Type, constant bool, value syntax.Expr) *syntax.VarDecl {
	f.t.Helper()
	if _, alt := f.pkg.Define(syntax.NoPos, name, typ, constant); alt != nil {
		f.t.Fatalf("%s redefined", name)
	}
	d := &syntax.VarDecl{Tok: syntax.Let, Name: name, Value: value}
	bind(f.pkg.Scope(), d)
	return d
}

// fn defines a function and returns its definition and body scope. The
// body is set with body.
func (f *fixture) fn(name string, result types.Type, params ...*types.Var) (*syntax.FuncDecl, *types.Scope) {
	f.t.Helper()
	if _, alt := f.pkg.Define(syntax.NoPos, name, types.NewFunc(params, result), true); alt != nil {
		f.t.Fatalf("%s redefined", name)
	}
	d := syntax.Init(&syntax.FuncDecl{Name: name}, syntax.NoPos, f.pkg.Scope())
	s := types.NewScope(f.pkg.Scope(), d, "function "+name)
	for _, p := range params {
		d.Params = append(d.Params, &syntax.Param{Name: p.Name(), Type: &syntax.TypeRef{Name: p.Type().String()}})
		s.Insert(p)
	}
	return d, s
}

func body(d *syntax.FuncDecl, s *types.Scope, stmts ...syntax.Node) *syntax.FuncDecl {
	d.Body = syntax.Init(&syntax.BlockStmt{Stmts: stmts}, syntax.NoPos, s)
	bind(s, stmts...)
	return d
}

func local(s *types.Scope, name string, typ types.Type) *types.Var {
	v := types.NewVar(syntax.NoPos, name, typ, 0)
	s.Insert(v)
	return v
}

func param(name string, typ types.Type) *types.Var {
	return types.NewParam(syntax.NoPos, name, typ)
}

func (f *fixture) generate(cfg *Config, decls ...syntax.Node) (*ir.Module, error) {
	prog := &syntax.Program{Files: []*syntax.File{{Decls: decls}}}
	return Generate(prog, f.info, cfg)
}

// mustGenerate lowers decls and verifies the result.
func (f *fixture) mustGenerate(cfg *Config, decls ...syntax.Node) *ir.Module {
	f.t.Helper()
	m, err := f.generate(cfg, decls...)
	if err != nil {
		f.t.Fatalf("Generate: %v", err)
	}
	if err := Verify(m); err != nil {
		f.t.Fatal(err)
	}
	return m
}

// ----------------------------------------------------------------------------
// Tree shorthands

var (
	i32T    = types.Typ[types.I32]
	i64T    = types.Typ[types.I64]
	f64T    = types.Typ[types.F64]
	boolT   = types.Typ[types.Bool]
	voidT   = types.Typ[types.Void]
	stringT = types.StringType()
)

func ref(name string) *syntax.VarRef { return &syntax.VarRef{Name: name} }
func num(v int64) *syntax.IntLit { return &syntax.IntLit{Value: v} }
func str(s string) *syntax.StringLit { return &syntax.StringLit{Value: s} }
func ret(x syntax.Expr) *syntax.ReturnStmt { return &syntax.ReturnStmt{Result: x} }

func bin(op syntax.BinaryOp, x, y syntax.Expr) *syntax.BinaryExpr {
	return &syntax.BinaryExpr{Op: op, X: x, Y: y}
}

func let(name string, value syntax.Expr) *syntax.VarDecl {
	return &syntax.VarDecl{Tok: syntax.Var, Name: name, Value: value}
}

func blockOf(stmts ...syntax.Node) *syntax.BlockStmt {
	return &syntax.BlockStmt{Stmts: stmts}
}

// ----------------------------------------------------------------------------
// Module inspection

func findFunc(t *testing.T, m *ir.Module, name string) *ir.Func {
	t.Helper()
	for _, f := range m.Funcs {
		if f.Name() == name {
			return f
		}
	}
	t.Fatalf("no function %s in module", name)
	return nil
}

func hasFunc(m *ir.Module, name string) bool {
	for _, f := range m.Funcs {
		if f.Name() == name {
			return true
		}
	}
	return false
}

func findGlobal(t *testing.T, m *ir.Module, name string) *ir.Global {
	t.Helper()
	for _, g := range m.Globals {
		if g.Name() == name {
			return g
		}
	}
	t.Fatalf("no global %s in module", name)
	return nil
}

// countGlobals counts globals named base or base.N.
func countGlobals(m *ir.Module, base string) int {
	n := 0
	for _, g := range m.Globals {
		if name := g.Name(); name == base || strings.HasPrefix(name, base+".") {
			n++
		}
	}
	return n
}

// blocksWithPrefix returns the names of the blocks of f starting with prefix.
func blocksWithPrefix(f *ir.Func, prefix string) []string {
	var names []string
	for _, b := range f.Blocks {
		if strings.HasPrefix(b.LocalName, prefix) {
			names = append(names, b.LocalName)
		}
	}
	return names
}

func countInsts[T ir.Instruction](b *ir.Block) int {
	n := 0
	for _, inst := range b.Insts {
		if _, ok := inst.(T); ok {
			n++
		}
	}
	return n
}

func countFuncInsts[T ir.Instruction](f *ir.Func) int {
	n := 0
	for _, b := range f.Blocks {
		n += countInsts[T](b)
	}
	return n
}
