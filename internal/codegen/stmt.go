package codegen

import (
	"github.com/llir/llvm/ir"
	"github.com/llir/llvm/ir/constant"
	irtypes "github.com/llir/llvm/ir/types"
	"github.com/llir/llvm/ir/value"

	"github.com/you-not-fish/pragma/internal/syntax"
	"github.com/you-not-fish/pragma/internal/types"
)

func (g *generator) block(b *syntax.BlockStmt) {
	g.stmts(b.Stmts)
}

// stmts lowers a list of statements. Lowering stops at the first
// statement that follows a terminator.
func (g *generator) stmts(list []syntax.Node) {
	for _, s := range list {
		if g.cur == nil {
			break
		}
		g.stmt(s)
	}
}

// stmt dispatches a statement to the appropriate lowering method.
func (g *generator) stmt(n syntax.Node) {
	if g.cur == nil {
		return
	}
	switch s := syntax.Unwrap(n).(type) {
	case *syntax.VarDecl:
		g.varDecl(s)

	case *syntax.FuncDecl:
		// Nested definitions were not seen by the prototype pass.
		if _, ok := g.funcs[s]; !ok {
			g.declareFunc(s)
		}
		g.funcBody(s)

	case *syntax.StructDecl:
		if t := g.o.TypeOf(s); t != nil {
			g.irType(t)
		}

	case *syntax.Namespace:
		g.namespace(s)

	case *syntax.BlockStmt:
		g.block(s)

	case *syntax.IfStmt:
		g.ifStmt(s)

	case *syntax.ForStmt:
		g.forStmt(s)

	case *syntax.WhileStmt:
		g.whileStmt(s)

	case *syntax.BranchStmt:
		g.branchStmt(s)

	case *syntax.ReturnStmt:
		g.returnStmt(s)

	case syntax.Expr:
		// Evaluate for side effects, discard result.
		g.expr(s)

	default:
		g.errorf(s.Pos(), "unexpected %s in statement position", syntax.KindName(s))
	}
}

// varDecl lowers a variable definition. Variables outside any function
// become module globals; locals get a slot in the vars block.
func (g *generator) varDecl(d *syntax.VarDecl) {
	v := g.resolve(d.Name, d)
	if v.Type() == nil {
		g.errorf(d.Pos(), "variable %s has no type", d.Name)
	}
	t := g.irType(v.Type())

	if v.IsGlobal() || !g.inFunction(d) {
		g.globalVar(d, v, t)
		return
	}

	var init value.Value = constant.NewZeroInitializer(t)
	if d.Value != nil {
		init = g.exprTo(d.Value, v.Type())
	}
	slot := g.alloca(t)
	g.cur.NewStore(init, slot)
	g.values[v] = slot
}

// globalVar defines a module global for v. A constant initializer becomes
// the global's initializer; anything else is stored from the current
// position, which is the init function.
func (g *generator) globalVar(d *syntax.VarDecl, v *types.Var, t irtypes.Type) {
	glob := g.m.NewGlobalDef(g.globalName(d.Name), constant.NewZeroInitializer(t))
	if d.Value != nil {
		init := g.exprTo(d.Value, v.Type())
		if c, ok := init.(constant.Constant); ok {
			glob.Init = c
			glob.Immutable = v.IsConstant()
		} else {
			g.cur.NewStore(init, glob)
		}
	}
	g.values[v] = glob
}

// ifStmt lowers an if/elif/else chain. Each condition that fails moves on
// to the next arm; every arm that falls through joins at one block.
func (g *generator) ifStmt(s *syntax.IfStmt) {
	type arm struct {
		cond syntax.Expr
		body *syntax.BlockStmt
	}
	arms := []arm{{s.Cond, s.Then}}
	for _, e := range s.Elifs {
		arms = append(arms, arm{e.Cond, e.Then})
	}

	done := g.newBlock("if.done")
	reached := false
	join := func() {
		if g.cur != nil {
			g.cur.NewBr(done)
			reached = true
		}
	}

	for i, a := range arms {
		c := g.cond(a.cond)
		then := g.newBlock("if.then")
		var next *ir.Block
		switch {
		case i < len(arms)-1:
			next = g.newBlock("if.elif")
		case s.Else != nil:
			next = g.newBlock("if.else")
		default:
			next = done
			reached = true
		}
		g.cur.NewCondBr(c, then, next)

		g.cur = then
		g.block(a.body)
		join()
		g.cur = next
	}
	if s.Else != nil {
		g.block(s.Else)
		join()
	}

	// The join block goes after the arms, or away if no arm reaches it.
	g.removeBlock(done)
	if !reached {
		g.cur = nil
		return
	}
	g.fn.f.Blocks = append(g.fn.f.Blocks, done)
	g.cur = done
}

// forStmt lowers for (init; cond; iter) body. continue runs iter.
func (g *generator) forStmt(s *syntax.ForStmt) {
	g.stmts(s.Init)
	if g.cur == nil {
		return
	}

	bCond := g.newBlock("for.cond")
	bBody := g.newBlock("for.body")
	bIter := g.newBlock("for.iter")
	bExit := g.newBlock("for.done")

	g.cur.NewBr(bCond)
	g.cur = bCond
	if s.Cond != nil {
		c := g.cond(s.Cond)
		g.cur.NewCondBr(c, bBody, bExit)
	} else {
		g.cur.NewBr(bBody)
	}

	g.loopBody(loopTargets{brk: bExit, cont: bIter}, bBody, s.Body)

	g.cur = bIter
	g.stmts(s.Iter)
	if g.cur != nil {
		g.cur.NewBr(bCond)
	}
	g.cur = bExit
}

// whileStmt lowers while (cond) body. continue re-evaluates cond.
func (g *generator) whileStmt(s *syntax.WhileStmt) {
	bCond := g.newBlock("while.cond")
	bBody := g.newBlock("while.body")
	bExit := g.newBlock("while.done")

	g.cur.NewBr(bCond)
	g.cur = bCond
	c := g.cond(s.Cond)
	g.cur.NewCondBr(c, bBody, bExit)

	g.loopBody(loopTargets{brk: bExit, cont: bCond}, bBody, s.Body)
	g.cur = bExit
}

// loopBody lowers a loop body starting at b with t as the innermost loop
// targets. A body that falls through continues the loop.
func (g *generator) loopBody(t loopTargets, b *ir.Block, body *syntax.BlockStmt) {
	g.fn.loops = append(g.fn.loops, t)
	g.cur = b
	g.block(body)
	if g.cur != nil {
		g.cur.NewBr(t.cont)
	}
	g.fn.loops = g.fn.loops[:len(g.fn.loops)-1]
}

// branchStmt lowers break and continue.
func (g *generator) branchStmt(s *syntax.BranchStmt) {
	if len(g.fn.loops) == 0 {
		g.errorf(s.Pos(), "%s is not in a loop", s.Tok)
	}
	t := g.fn.loops[len(g.fn.loops)-1]
	if s.Tok.IsBreak() {
		g.cur.NewBr(t.brk)
	} else {
		g.cur.NewBr(t.cont)
	}
	g.cur = nil // subsequent code is unreachable
}

// returnStmt lowers return [expr].
func (g *generator) returnStmt(s *syntax.ReturnStmt) {
	if g.fn.decl == nil {
		g.errorf(s.Pos(), "return outside function")
	}
	void := g.fn.result == nil || types.IsVoid(g.fn.result)
	switch {
	case s.Result == nil && !void:
		g.errorf(s.Pos(), "missing return value in %s", g.fn.decl.Name)
	case s.Result != nil && void:
		g.errorf(s.Pos(), "%s does not return a value", g.fn.decl.Name)
	}

	if s.Result == nil {
		g.cur.NewRet(nil)
	} else {
		v := g.exprTo(s.Result, g.fn.result)
		// g.cur may have moved while lowering the result.
		g.cur.NewRet(v)
	}
	g.cur = nil
}
