package codegen

import (
	"fmt"

	"github.com/llir/llvm/ir"
	"github.com/llir/llvm/ir/enum"

	"github.com/you-not-fish/pragma/internal/rtabi"
	"github.com/you-not-fish/pragma/internal/syntax"
	"github.com/you-not-fish/pragma/internal/types"
)

// signature returns the function type of d.
func (g *generator) signature(d *syntax.FuncDecl) *types.Func {
	ft, ok := g.typeOf(d).(*types.Func)
	if !ok {
		g.errorf(d.Pos(), "%s is not a function", d.Name)
	}
	return ft
}

// declareFunc creates the prototype of d and binds it to d's variable.
// Inactive functions and type declarations get no prototype; they are
// recorded in g.funcs with a nil entry.
func (g *generator) declareFunc(d *syntax.FuncDecl) {
	ft := g.signature(d)
	if ft.Inactive() || d.TypeDecl {
		g.funcs[d] = nil
		g.log.Debug("no prototype", "func", d.Name, "inactive", ft.Inactive())
		return
	}
	v := g.resolve(d.Name, d)

	if ft.Result() == nil {
		if g.cfg.StrictReturnTypes {
			g.errorf(d.Pos(), "function %s has no return type", d.Name)
		}
		g.warnf(d.Pos(), "function %s has no return type, assuming void", d.Name)
	}
	if len(d.Params) != ft.NumParams() {
		g.errorf(d.Pos(), "function %s declares %d parameters, its type has %d",
			d.Name, len(d.Params), ft.NumParams())
	}

	sig := g.funcType(ft)
	sym := d.SymbolName()
	f, ok := g.symbols[sym]
	switch {
	case !ok && g.names[sym] > 0:
		g.errorf(d.Pos(), "function %s redeclared", sym)
	case !ok:
		params := make([]*ir.Param, len(d.Params))
		for i, p := range d.Params {
			params[i] = ir.NewParam(p.Name, sig.Params[i])
		}
		f = g.m.NewFunc(sym, sig.RetType, params...)
		g.symbols[sym] = f
		g.names[sym]++
	case d.HasBody() || !f.Sig.Equal(sig):
		g.errorf(d.Pos(), "function %s redeclared", sym)
	}

	g.funcs[d] = f
	g.values[v] = f
	g.log.Debug("prototype", "func", d.Name, "symbol", sym, "params", len(d.Params))
}

// funcBody lowers the body of d into its prototype. It saves and restores
// the enclosing function context.
func (g *generator) funcBody(d *syntax.FuncDecl) {
	if !d.HasBody() || d.TypeDecl {
		return
	}
	ft := g.signature(d)
	if ft.Inactive() {
		return
	}
	f := g.funcs[d]
	if f == nil {
		g.errorf(d.Pos(), "function %s has no prototype", d.Name)
	}
	if g.lowered[d] {
		panic(fmt.Sprintf("codegen.funcBody: body of %s lowered twice", d.Name))
	}
	g.lowered[d] = true

	if g.o.HasAttribute(d, rtabi.AttrDLLExport) {
		f.DLLStorageClass = enum.DLLStorageClassDLLExport
	}

	fs := g.newFuncState(d, f, ft.Result())
	restore := g.enter(fs)
	defer restore()

	// Parameters live in stack slots like any other local.
	for i, p := range d.Params {
		v := g.resolve(p.Name, d.Body)
		arg := f.Params[i]
		slot := g.alloca(arg.Type())
		fs.vars.NewStore(arg, slot)
		g.values[v] = slot
	}

	g.block(d.Body)

	// Implicit return at the end of the body.
	if g.cur != nil && g.cur.Term == nil {
		if fs.result == nil || types.IsVoid(fs.result) {
			g.cur.NewRet(nil)
		} else {
			g.cur.NewUnreachable()
		}
	}
	g.finish(fs)
	g.log.Debug("lowered body", "func", d.Name, "blocks", len(f.Blocks))
}
