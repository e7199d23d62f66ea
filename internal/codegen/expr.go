package codegen

import (
	"fmt"

	"github.com/llir/llvm/ir"
	"github.com/llir/llvm/ir/constant"
	"github.com/llir/llvm/ir/enum"
	irtypes "github.com/llir/llvm/ir/types"
	"github.com/llir/llvm/ir/value"

	"github.com/you-not-fish/pragma/internal/rtabi"
	"github.com/you-not-fish/pragma/internal/syntax"
	"github.com/you-not-fish/pragma/internal/types"
)

// Expressions are lowered in one of two contexts: expr yields the value,
// addr yields a pointer to the storage the expression denotes.

// expr lowers e for its value.
func (g *generator) expr(e syntax.Node) value.Value {
	switch e := syntax.Unwrap(e).(type) {
	case *syntax.IntLit:
		return g.intLit(e)
	case *syntax.FloatLit:
		return g.floatLit(e)
	case *syntax.BoolLit:
		return boolLit(e)
	case *syntax.StringLit:
		return g.stringLit(e)
	case *syntax.VarRef:
		return g.varRef(e)
	case *syntax.CallExpr:
		return g.call(e)
	case *syntax.StructLit:
		return g.structLit(e)
	case *syntax.ArrayLit:
		return g.arrayLit(e)
	case *syntax.ArrayAlloc:
		return g.arrayAlloc(e)
	case *syntax.SelectorExpr:
		p, t := g.selector(e)
		return g.cur.NewLoad(t, p)
	case *syntax.IndexExpr:
		p, t := g.index(e)
		return g.cur.NewLoad(t, p)
	case *syntax.AssignExpr:
		return g.assign(e)
	case *syntax.BinaryExpr:
		return g.binary(e)
	case *syntax.UnaryExpr:
		return g.unary(e)
	case *syntax.CastExpr:
		return g.cast(e)
	default:
		g.errorf(e.Pos(), "%s is not an expression", syntax.KindName(e))
		return nil
	}
}

// exprAs lowers e and converts the result to t, treating t as signed.
func (g *generator) exprAs(e syntax.Node, t irtypes.Type) value.Value {
	return g.convert(g.expr(e), isUnsigned(g.o.TypeOf(e)), false, t)
}

// exprTo lowers e and converts the result to the frontend type typ.
func (g *generator) exprTo(e syntax.Node, typ types.Type) value.Value {
	return g.convert(g.expr(e), isUnsigned(g.o.TypeOf(e)), isUnsigned(typ), g.irType(typ))
}

// cond lowers e as a branch condition.
func (g *generator) cond(e syntax.Node) value.Value {
	return g.truth(e, g.expr(e))
}

// addr lowers e for the address of its storage and returns the pointer
// together with the type stored there.
func (g *generator) addr(e syntax.Node) (value.Value, irtypes.Type) {
	switch e := syntax.Unwrap(e).(type) {
	case *syntax.VarRef:
		if e.IncDec != syntax.NoIncDec {
			break
		}
		v := g.resolve(e.Name, e)
		s := g.storage(v, e)
		if _, ok := s.(*ir.Func); ok {
			g.errorf(e.Pos(), "cannot assign to function %s", e.Name)
		}
		return s, g.irType(v.Type())
	case *syntax.SelectorExpr:
		return g.selector(e)
	case *syntax.IndexExpr:
		return g.index(e)
	case *syntax.UnaryExpr:
		if e.Op == syntax.OpDeref {
			p := g.expr(e.X)
			return p, g.pointee(e.X, p)
		}
	}
	g.errorf(e.Pos(), "%s is not addressable", syntax.Describe(e))
	return nil, nil
}

// addressable reports whether addr accepts e.
func (g *generator) addressable(e syntax.Node) bool {
	switch e := syntax.Unwrap(e).(type) {
	case *syntax.VarRef:
		if e.IncDec != syntax.NoIncDec {
			return false
		}
		v := g.o.ResolveVariable(e.Name, e)
		if v == nil {
			return true // addr reports it
		}
		_, fn := g.values[v].(*ir.Func)
		return !fn
	case *syntax.SelectorExpr, *syntax.IndexExpr:
		return true
	case *syntax.UnaryExpr:
		return e.Op == syntax.OpDeref
	}
	return false
}

// addrOrTemp returns the address of e, spilling its value to a fresh
// slot if it has no storage of its own.
func (g *generator) addrOrTemp(e syntax.Node) value.Value {
	if g.addressable(e) {
		p, _ := g.addr(e)
		return p
	}
	v := g.expr(e)
	slot := g.alloca(v.Type())
	g.cur.NewStore(v, slot)
	return slot
}

func (g *generator) pointee(at syntax.Node, p value.Value) irtypes.Type {
	pt, ok := p.Type().(*irtypes.PointerType)
	if !ok {
		g.errorf(at.Pos(), "cannot dereference %s", syntax.Describe(at))
	}
	return pt.ElemType
}

// ----------------------------------------------------------------------------
// Variables and calls

func (g *generator) varRef(e *syntax.VarRef) value.Value {
	v := g.resolve(e.Name, e)
	s := g.storage(v, e)
	if f, ok := s.(*ir.Func); ok {
		if e.IncDec != syntax.NoIncDec {
			g.errorf(e.Pos(), "cannot increment function %s", e.Name)
		}
		return f
	}

	t := g.irType(v.Type())
	old := g.cur.NewLoad(t, s)
	var delta int64
	switch e.IncDec {
	case syntax.NoIncDec:
		return old
	case syntax.PreInc, syntax.PostInc:
		delta = 1
	case syntax.PreDec, syntax.PostDec:
		delta = -1
	default:
		panic(fmt.Sprintf("codegen.varRef: invalid increment tag %d on %s", e.IncDec, e.Name))
	}
	updated := g.step(e, old, delta)
	g.cur.NewStore(updated, s)
	if e.IncDec == syntax.PreInc || e.IncDec == syntax.PreDec {
		return updated
	}
	return old
}

// step adds delta to an integer, float or pointer value.
func (g *generator) step(at syntax.Node, x value.Value, delta int64) value.Value {
	switch t := x.Type().(type) {
	case *irtypes.IntType:
		return g.cur.NewAdd(x, constant.NewInt(t, delta))
	case *irtypes.FloatType:
		return g.cur.NewFAdd(x, constant.NewFloat(t, float64(delta)))
	case *irtypes.PointerType:
		return g.cur.NewGetElementPtr(t.ElemType, x, i32(delta))
	}
	g.errorf(at.Pos(), "cannot increment or decrement %s", syntax.Describe(at))
	return nil
}

// call lowers a call to a function or through a function-pointer variable.
func (g *generator) call(e *syntax.CallExpr) value.Value {
	v := g.resolve(e.Name, e)
	callee := g.storage(v, e)
	if _, ok := callee.(*ir.Func); !ok {
		callee = g.cur.NewLoad(g.irType(v.Type()), callee)
	}
	sig := calleeSig(callee)
	if sig == nil {
		g.errorf(e.Pos(), "%s is not a function", e.Name)
	}
	if len(e.Args) != len(sig.Params) && !(sig.Variadic && len(e.Args) > len(sig.Params)) {
		g.errorf(e.Pos(), "%s takes %d arguments, %d given", e.Name, len(sig.Params), len(e.Args))
	}

	ft, _ := v.Type().(*types.Func)
	args := make([]value.Value, len(e.Args))
	for i, a := range e.Args {
		if i < len(sig.Params) {
			unsigned := ft != nil && i < ft.NumParams() && isUnsigned(ft.Param(i).Type())
			args[i] = g.convert(g.expr(a), isUnsigned(g.o.TypeOf(a)), unsigned, sig.Params[i])
		} else {
			args[i] = g.expr(a)
		}
	}
	return g.cur.NewCall(callee, args...)
}

func calleeSig(callee value.Value) *irtypes.FuncType {
	if p, ok := callee.Type().(*irtypes.PointerType); ok {
		if sig, ok := p.ElemType.(*irtypes.FuncType); ok {
			return sig
		}
	}
	return nil
}

// ----------------------------------------------------------------------------
// Selectors, indexing and assignment

// selector returns the address and type of X.Field or X->Field. Struct
// fields are addressed by index. Arrays expose their length and data
// pointer.
func (g *generator) selector(e *syntax.SelectorExpr) (value.Value, irtypes.Type) {
	var base value.Value
	var bt types.Type
	if e.Arrow {
		pt, ok := g.typeOf(e.X).Underlying().(*types.Pointer)
		if !ok {
			g.errorf(e.Pos(), "-> on non-pointer %s", syntax.Describe(e.X))
		}
		base, bt = g.expr(e.X), pt.Elem()
	} else {
		base, bt = g.addrOrTemp(e.X), g.typeOf(e.X)
	}
	st := g.irType(bt)

	if s := structOf(bt); s != nil {
		i := s.FieldIndex(e.Field)
		if i < 0 {
			g.errorf(e.Pos(), "%s has no field %s", bt, e.Field)
		}
		p := g.cur.NewGetElementPtr(st, base, i32(0), i32(int64(i)))
		return p, g.irType(s.Field(i).Type())
	}

	if arr, ok := bt.Underlying().(*types.Array); ok {
		switch e.Field {
		case rtabi.ArrayLengthName:
			p := g.cur.NewGetElementPtr(st, base, i32(0), i32(rtabi.ArrayLengthField))
			return p, irtypes.I32
		case rtabi.ArrayDataName:
			p := g.cur.NewGetElementPtr(st, base, i32(0), i32(rtabi.ArrayDataField))
			return p, irtypes.NewPointer(g.irType(arr.Elem()))
		}
	}
	g.errorf(e.Pos(), "%s has no field %s", bt, e.Field)
	return nil, nil
}

// index returns the address and type of X[Index] for arrays and pointers.
func (g *generator) index(e *syntax.IndexExpr) (value.Value, irtypes.Type) {
	var data value.Value
	var et types.Type
	switch u := g.typeOf(e.X).Underlying().(type) {
	case *types.Array:
		data = g.cur.NewExtractValue(g.expr(e.X), rtabi.ArrayDataField)
		et = u.Elem()
	case *types.Pointer:
		data = g.expr(e.X)
		et = u.Elem()
	default:
		g.errorf(e.Pos(), "cannot index %s", syntax.Describe(e.X))
	}
	elem := g.irType(et)
	idx := g.expr(e.Index)
	return g.cur.NewGetElementPtr(elem, data, idx), elem
}

// assign lowers Target = Value and yields the stored value.
func (g *generator) assign(e *syntax.AssignExpr) value.Value {
	p, t := g.addr(e.Target)
	v := g.convert(g.expr(e.Value), isUnsigned(g.o.TypeOf(e.Value)), isUnsigned(g.o.TypeOf(e.Target)), t)
	g.cur.NewStore(v, p)
	return v
}

// ----------------------------------------------------------------------------
// Operators

func (g *generator) binary(e *syntax.BinaryExpr) value.Value {
	if e.Op.IsLogical() {
		return g.shortCircuit(e)
	}
	x := g.expr(e.X)
	switch t := x.Type().(type) {
	case *irtypes.IntType:
		unsigned := isUnsigned(g.o.TypeOf(e.X))
		y := g.convert(g.expr(e.Y), isUnsigned(g.o.TypeOf(e.Y)), unsigned, t)
		return g.intOp(e, x, y, unsigned)
	case *irtypes.FloatType:
		y := g.exprAs(e.Y, t)
		return g.floatOp(e, x, y)
	case *irtypes.PointerType:
		return g.pointerOp(e, x, t, g.expr(e.Y))
	}
	g.errorf(e.Pos(), "operator %s not defined on %s", e.Op, syntax.Describe(e.X))
	return nil
}

func (g *generator) intOp(e *syntax.BinaryExpr, x, y value.Value, unsigned bool) value.Value {
	switch e.Op {
	case syntax.OpAdd:
		return g.cur.NewAdd(x, y)
	case syntax.OpSub:
		return g.cur.NewSub(x, y)
	case syntax.OpMul:
		return g.cur.NewMul(x, y)
	case syntax.OpDiv:
		if unsigned {
			return g.cur.NewUDiv(x, y)
		}
		return g.cur.NewSDiv(x, y)
	case syntax.OpRem:
		if unsigned {
			return g.cur.NewURem(x, y)
		}
		return g.cur.NewSRem(x, y)
	case syntax.OpShl:
		return g.cur.NewShl(x, y)
	case syntax.OpShr:
		if unsigned {
			return g.cur.NewLShr(x, y)
		}
		return g.cur.NewAShr(x, y)
	case syntax.OpOr:
		return g.cur.NewOr(x, y)
	case syntax.OpXor:
		return g.cur.NewXor(x, y)
	case syntax.OpAnd:
		return g.cur.NewAnd(x, y)
	}
	return g.cur.NewICmp(intPred(e.Op, unsigned), x, y)
}

func intPred(op syntax.BinaryOp, unsigned bool) enum.IPred {
	switch op {
	case syntax.OpEql:
		return enum.IPredEQ
	case syntax.OpNeq:
		return enum.IPredNE
	}
	if unsigned {
		switch op {
		case syntax.OpGtr:
			return enum.IPredUGT
		case syntax.OpLss:
			return enum.IPredULT
		case syntax.OpGeq:
			return enum.IPredUGE
		case syntax.OpLeq:
			return enum.IPredULE
		}
	} else {
		switch op {
		case syntax.OpGtr:
			return enum.IPredSGT
		case syntax.OpLss:
			return enum.IPredSLT
		case syntax.OpGeq:
			return enum.IPredSGE
		case syntax.OpLeq:
			return enum.IPredSLE
		}
	}
	panic("codegen.intPred: not a comparison: " + op.String())
}

func (g *generator) floatOp(e *syntax.BinaryExpr, x, y value.Value) value.Value {
	switch e.Op {
	case syntax.OpAdd:
		return g.cur.NewFAdd(x, y)
	case syntax.OpSub:
		return g.cur.NewFSub(x, y)
	case syntax.OpMul:
		return g.cur.NewFMul(x, y)
	case syntax.OpDiv:
		return g.cur.NewFDiv(x, y)
	case syntax.OpRem:
		return g.cur.NewFRem(x, y)
	case syntax.OpEql:
		return g.cur.NewFCmp(enum.FPredOEQ, x, y)
	case syntax.OpNeq:
		return g.cur.NewFCmp(enum.FPredUNE, x, y)
	case syntax.OpGtr:
		return g.cur.NewFCmp(enum.FPredOGT, x, y)
	case syntax.OpLss:
		return g.cur.NewFCmp(enum.FPredOLT, x, y)
	case syntax.OpGeq:
		return g.cur.NewFCmp(enum.FPredOGE, x, y)
	case syntax.OpLeq:
		return g.cur.NewFCmp(enum.FPredOLE, x, y)
	}
	g.errorf(e.Pos(), "operator %s not defined on floating-point operands", e.Op)
	return nil
}

// pointerOp lowers pointer arithmetic (p + n, p - n) and comparisons.
func (g *generator) pointerOp(e *syntax.BinaryExpr, x value.Value, t *irtypes.PointerType, y value.Value) value.Value {
	if n, ok := y.Type().(*irtypes.IntType); ok {
		switch e.Op {
		case syntax.OpAdd:
			return g.cur.NewGetElementPtr(t.ElemType, x, y)
		case syntax.OpSub:
			neg := g.cur.NewSub(constant.NewInt(n, 0), y)
			return g.cur.NewGetElementPtr(t.ElemType, x, neg)
		}
	}
	if e.Op.IsComparison() {
		y = g.convert(y, false, false, t)
		return g.cur.NewICmp(intPred(e.Op, true), x, y)
	}
	g.errorf(e.Pos(), "operator %s not defined on pointers", e.Op)
	return nil
}

// shortCircuit lowers && and || with a phi at the join.
func (g *generator) shortCircuit(e *syntax.BinaryExpr) value.Value {
	isAnd := e.Op == syntax.OpCondAnd
	name := "or"
	if isAnd {
		name = "and"
	}

	x := g.cond(e.X)
	bLeft := g.cur
	bRight := g.newBlock(name + ".rhs")
	bDone := g.newBlock(name + ".done")

	var short *constant.Int
	if isAnd {
		// && : if false, the result is false
		bLeft.NewCondBr(x, bRight, bDone)
		short = constant.False
	} else {
		// || : if true, the result is true
		bLeft.NewCondBr(x, bDone, bRight)
		short = constant.True
	}

	g.cur = bRight
	y := g.cond(e.Y)
	// The right operand may have ended in another block.
	bRightEnd := g.cur
	bRightEnd.NewBr(bDone)

	g.cur = bDone
	return bDone.NewPhi(ir.NewIncoming(short, bLeft), ir.NewIncoming(y, bRightEnd))
}

func (g *generator) unary(e *syntax.UnaryExpr) value.Value {
	switch e.Op {
	case syntax.OpPlus:
		return g.expr(e.X)
	case syntax.OpNeg:
		x := g.expr(e.X)
		switch t := x.Type().(type) {
		case *irtypes.IntType:
			return g.cur.NewSub(constant.NewInt(t, 0), x)
		case *irtypes.FloatType:
			return g.cur.NewFNeg(x)
		}
	case syntax.OpNot:
		return g.cur.NewXor(g.cond(e.X), constant.True)
	case syntax.OpComplement:
		x := g.expr(e.X)
		if t, ok := x.Type().(*irtypes.IntType); ok {
			return g.cur.NewXor(x, constant.NewInt(t, -1))
		}
	case syntax.OpAddr:
		p, _ := g.addr(e.X)
		return p
	case syntax.OpDeref:
		p := g.expr(e.X)
		return g.cur.NewLoad(g.pointee(e.X, p), p)
	}
	g.errorf(e.Pos(), "operator %s not defined on %s", e.Op, syntax.Describe(e.X))
	return nil
}

// cast lowers (T)x.
func (g *generator) cast(e *syntax.CastExpr) value.Value {
	to := g.typeOf(e.Type)
	x := g.expr(e.X)
	if types.IsBoolean(to) {
		return g.truth(e.X, x)
	}
	return g.convert(x, isUnsigned(g.o.TypeOf(e.X)), isUnsigned(to), g.irType(to))
}

// ----------------------------------------------------------------------------
// Conversions

// truth converts x to an i1 by comparing it against zero.
func (g *generator) truth(at syntax.Node, x value.Value) value.Value {
	switch t := x.Type().(type) {
	case *irtypes.IntType:
		if t.BitSize == 1 {
			return x
		}
		return g.cur.NewICmp(enum.IPredNE, x, constant.NewInt(t, 0))
	case *irtypes.FloatType:
		return g.cur.NewFCmp(enum.FPredUNE, x, constant.NewFloat(t, 0))
	case *irtypes.PointerType:
		return g.cur.NewICmp(enum.IPredNE, x, constant.NewNull(t))
	}
	g.errorf(at.Pos(), "%s cannot be used as a condition", syntax.Describe(at))
	return nil
}

// convert converts v to type to. unsigned and toUnsigned report whether
// the source and target types are unsigned. Values that already have type
// to, and conversions between unrelated kinds, are returned unchanged.
func (g *generator) convert(v value.Value, unsigned, toUnsigned bool, to irtypes.Type) value.Value {
	from := v.Type()
	if from.Equal(to) {
		return v
	}
	switch to := to.(type) {
	case *irtypes.IntType:
		switch f := from.(type) {
		case *irtypes.IntType:
			widen := f.BitSize < to.BitSize
			if c, ok := v.(*constant.Int); ok && widen && !unsigned && f.BitSize > 1 {
				return constant.NewInt(to, c.X.Int64())
			}
			switch {
			case !widen:
				return g.cur.NewTrunc(v, to)
			case unsigned || f.BitSize == 1:
				return g.cur.NewZExt(v, to)
			default:
				return g.cur.NewSExt(v, to)
			}
		case *irtypes.FloatType:
			if toUnsigned {
				return g.cur.NewFPToUI(v, to)
			}
			return g.cur.NewFPToSI(v, to)
		case *irtypes.PointerType:
			return g.cur.NewPtrToInt(v, to)
		}

	case *irtypes.FloatType:
		switch from.(type) {
		case *irtypes.FloatType:
			if c, ok := v.(*constant.Float); ok {
				x, _ := c.X.Float64()
				return constant.NewFloat(to, x)
			}
			if to.Equal(irtypes.Float) {
				return g.cur.NewFPTrunc(v, to)
			}
			return g.cur.NewFPExt(v, to)
		case *irtypes.IntType:
			if c, ok := v.(*constant.Int); ok && !unsigned {
				return constant.NewFloat(to, float64(c.X.Int64()))
			}
			if unsigned {
				return g.cur.NewUIToFP(v, to)
			}
			return g.cur.NewSIToFP(v, to)
		}

	case *irtypes.PointerType:
		switch from.(type) {
		case *irtypes.PointerType:
			if _, ok := v.(*constant.Null); ok {
				return constant.NewNull(to)
			}
			return g.cur.NewBitCast(v, to)
		case *irtypes.IntType:
			if c, ok := v.(*constant.Int); ok && c.X.Sign() == 0 {
				return constant.NewNull(to)
			}
			return g.cur.NewIntToPtr(v, to)
		}
	}
	return v
}
