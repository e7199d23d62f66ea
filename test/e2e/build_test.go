package e2e

import (
	"testing"

	"github.com/you-not-fish/pragma/internal/syntax"
	"github.com/you-not-fish/pragma/internal/types"
	"github.com/you-not-fish/pragma/internal/types2"
)

// unit assembles one compilation unit the way the front end hands it over:
// scoped trees plus the checker's recorded results.
type unit struct {
	t     *testing.T
	pkg   *types.Package
	info  *types2.Info
	decls []syntax.Node
}

func newUnit(t *testing.T) *unit {
	pkg := types.NewPackage("main")
	return &unit{t: t, pkg: pkg, info: types2.NewInfo(pkg.Scope())}
}

func (u *unit) define(name string, typ types.Type, constant bool) {
	u.t.Helper()
	if _, alt := u.pkg.Define(syntax.NoPos, name, typ, constant); alt != nil {
		u.t.Fatalf("%s redefined", name)
	}
}

// global adds let name = value at top level.
func (u *unit) global(name string, typ types.Type, value syntax.Expr) {
	u.define(name, typ, true)
	d := &syntax.VarDecl{Tok: syntax.Let, Name: name, Value: value}
	bindScope(u.pkg.Scope(), d)
	u.decls = append(u.decls, d)
}

// structType declares name = struct { fields }.
func (u *unit) structType(name string, fields ...*types.Var) *types.Named {
	n := types.NewNamed(types.NewTypeName(syntax.NoPos, name, nil), types.NewStruct(fields))
	u.pkg.Scope().Insert(n.Obj())
	d := &syntax.StructDecl{Name: name}
	for _, f := range fields {
		d.Fields = append(d.Fields, &syntax.Field{Name: f.Name(), Type: &syntax.TypeRef{Name: f.Type().String()}})
	}
	bindScope(u.pkg.Scope(), d)
	u.info.RecordType(d, n)
	u.decls = append(u.decls, d)
	return n
}

// extern declares an external function.
func (u *unit) extern(name string, result types.Type, params ...*types.Var) {
	u.define(name, types.NewFunc(params, result), true)
	d := syntax.Init(&syntax.FuncDecl{Name: name, External: true}, syntax.NoPos, u.pkg.Scope())
	for _, p := range params {
		d.Params = append(d.Params, &syntax.Param{Name: p.Name(), Type: &syntax.TypeRef{Name: p.Type().String()}})
	}
	u.decls = append(u.decls, d)
}

// fn defines a function. body receives the function scope, where locals
// are declared with local, and returns the statements.
func (u *unit) fn(name string, result types.Type, params []*types.Var, body func(s *types.Scope) []syntax.Node) {
	u.define(name, types.NewFunc(params, result), true)
	d := syntax.Init(&syntax.FuncDecl{Name: name, Result: &syntax.TypeRef{Name: result.String()}}, syntax.NoPos, u.pkg.Scope())
	s := types.NewScope(u.pkg.Scope(), d, "function "+name)
	for _, p := range params {
		d.Params = append(d.Params, &syntax.Param{Name: p.Name(), Type: &syntax.TypeRef{Name: p.Type().String()}})
		s.Insert(p)
	}
	stmts := body(s)
	d.Body = syntax.Init(&syntax.BlockStmt{Stmts: stmts}, syntax.NoPos, s)
	bindScope(s, stmts...)
	u.decls = append(u.decls, d)
}

func (u *unit) program() *syntax.Program {
	return &syntax.Program{Files: []*syntax.File{{Decls: u.decls}}}
}

func local(s *types.Scope, name string, typ types.Type) {
	s.Insert(types.NewVar(syntax.NoPos, name, typ, 0))
}

// bindScope sets the scope of every node under the given roots that has
// none, as the parser does while building the tree.
func bindScope(s *types.Scope, roots ...syntax.Node) {
	for _, r := range roots {
		syntax.Inspect(r, func(n syntax.Node) bool {
			if n := syntax.Unwrap(n); n.Scope() == nil {
				n.SetScope(s)
			}
			return true
		})
	}
}

// ----------------------------------------------------------------------------
// Tree shorthands

func ref(name string) *syntax.VarRef { return &syntax.VarRef{Name: name} }
func num(v int64) *syntax.IntLit { return &syntax.IntLit{Value: v} }
func ret(x syntax.Expr) *syntax.ReturnStmt { return &syntax.ReturnStmt{Result: x} }

func bin(op syntax.BinaryOp, x, y syntax.Expr) *syntax.BinaryExpr {
	return &syntax.BinaryExpr{Op: op, X: x, Y: y}
}

func call(name string, args ...syntax.Expr) *syntax.CallExpr {
	return &syntax.CallExpr{Name: name, Args: args}
}

func sel(x syntax.Expr, field string) *syntax.SelectorExpr {
	return &syntax.SelectorExpr{X: x, Field: field}
}

func assign(target, value syntax.Expr) *syntax.AssignExpr {
	return &syntax.AssignExpr{Target: target, Value: value}
}

func varDecl(name string, value syntax.Expr) *syntax.VarDecl {
	return &syntax.VarDecl{Tok: syntax.Var, Name: name, Value: value}
}

func block(stmts ...syntax.Node) *syntax.BlockStmt {
	return &syntax.BlockStmt{Stmts: stmts}
}
