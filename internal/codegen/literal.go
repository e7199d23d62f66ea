package codegen

import (
	"github.com/llir/llvm/ir"
	"github.com/llir/llvm/ir/constant"
	"github.com/llir/llvm/ir/enum"
	irtypes "github.com/llir/llvm/ir/types"
	"github.com/llir/llvm/ir/value"

	"github.com/you-not-fish/pragma/internal/rtabi"
	"github.com/you-not-fish/pragma/internal/syntax"
	"github.com/you-not-fish/pragma/internal/types"
)

func i32(n int64) *constant.Int {
	return constant.NewInt(irtypes.I32, n)
}

// intLit lowers an integer literal to a constant of its resolved type.
// A literal resolved to a floating type becomes a float constant.
func (g *generator) intLit(e *syntax.IntLit) value.Value {
	switch t := g.irType(g.typeOf(e)).(type) {
	case *irtypes.IntType:
		return constant.NewInt(t, e.Value)
	case *irtypes.FloatType:
		return constant.NewFloat(t, float64(e.Value))
	case *irtypes.PointerType:
		if e.Value == 0 {
			return constant.NewNull(t)
		}
	}
	g.errorf(e.Pos(), "integer literal %d cannot have type %s", e.Value, g.typeOf(e))
	return nil
}

func (g *generator) floatLit(e *syntax.FloatLit) value.Value {
	t, ok := g.irType(g.typeOf(e)).(*irtypes.FloatType)
	if !ok {
		g.errorf(e.Pos(), "float literal cannot have type %s", g.typeOf(e))
	}
	return constant.NewFloat(t, e.Value)
}

func boolLit(e *syntax.BoolLit) value.Value {
	if e.Value {
		return constant.True
	}
	return constant.False
}

// stringLit lowers a string literal to a fresh string value.
//
// The construction is emitted into the vars block of the current function:
// a { i32, i8* } slot, a buffer the characters are copied into from the
// interned constant, and the two field stores. Inside a function the
// buffer is a stack array; at module level it is a zeroed global.
func (g *generator) stringLit(e *syntax.StringLit) value.Value {
	restore := g.at(g.fn.vars)
	defer restore()

	n := int64(len(e.Value))
	st := arrayType(irtypes.I8)
	slot := g.cur.NewAlloca(st)

	var buf value.Value
	if g.inFunction(e) {
		a := g.cur.NewAlloca(irtypes.I8)
		a.NElems = i32(n)
		buf = a
	} else {
		arr := g.m.NewGlobalDef(g.globalName(rtabi.StringBufferPrefix),
			constant.NewZeroInitializer(irtypes.NewArray(uint64(n), irtypes.I8)))
		buf = g.cur.NewBitCast(arr, irtypes.I8Ptr)
	}

	g.cur.NewCall(g.memcpyFunc(), buf, g.stringData(e.Value), i32(n), constant.False)
	g.storeArray(slot, st, i32(n), buf)
	return g.cur.NewLoad(st, slot)
}

// stringData returns a pointer to the first character of the interned
// constant holding s. Equal contents share one global.
func (g *generator) stringData(s string) constant.Constant {
	typ := irtypes.NewArray(uint64(len(s)), irtypes.I8)
	glob, ok := g.strings[s]
	if !ok {
		glob = g.m.NewGlobalDef(g.globalName(rtabi.StringGlobalPrefix), constant.NewCharArrayFromString(s))
		glob.Linkage = enum.LinkagePrivate
		glob.Immutable = true
		g.strings[s] = glob
	}
	return constant.NewGetElementPtr(typ, glob, i32(0), i32(0))
}

func (g *generator) memcpyFunc() *ir.Func {
	if g.memcpy == nil {
		g.memcpy = g.m.NewFunc(rtabi.Memcpy, irtypes.Void,
			ir.NewParam("dst", irtypes.I8Ptr),
			ir.NewParam("src", irtypes.I8Ptr),
			ir.NewParam("len", irtypes.I32),
			ir.NewParam("isvolatile", irtypes.I1))
	}
	return g.memcpy
}

// storeArray stores the length and data pointer of an array struct.
func (g *generator) storeArray(slot value.Value, st *irtypes.StructType, n, data value.Value) {
	lenPtr := g.cur.NewGetElementPtr(st, slot, i32(0), i32(rtabi.ArrayLengthField))
	g.cur.NewStore(n, lenPtr)
	dataPtr := g.cur.NewGetElementPtr(st, slot, i32(0), i32(rtabi.ArrayDataField))
	g.cur.NewStore(data, dataPtr)
}

// newArray allocates an array of n elements of type elem: its struct slot
// and its buffer, with both fields stored. Inside a function the buffer is
// a stack array, at module level a zeroed global.
func (g *generator) newArray(at syntax.Node, elem irtypes.Type, n int64) (slot *ir.InstAlloca, st *irtypes.StructType, buf value.Value) {
	st = arrayType(elem)
	slot = g.alloca(st)
	if g.inFunction(at) {
		a := g.alloca(elem)
		a.NElems = i32(n)
		buf = a
	} else {
		arr := g.m.NewGlobalDef(g.globalName(rtabi.ArrayBufferPrefix),
			constant.NewZeroInitializer(irtypes.NewArray(uint64(n), elem)))
		buf = g.cur.NewBitCast(arr, irtypes.NewPointer(elem))
	}
	g.storeArray(slot, st, i32(n), buf)
	return slot, st, buf
}

// arrayLit lowers [a, b, c].
func (g *generator) arrayLit(e *syntax.ArrayLit) value.Value {
	t := g.typeOf(e)
	arr, ok := t.Underlying().(*types.Array)
	if !ok {
		g.errorf(e.Pos(), "array literal cannot have type %s", t)
	}
	elem := g.irType(arr.Elem())
	slot, st, buf := g.newArray(e, elem, int64(len(e.Elems)))
	for i, x := range e.Elems {
		v := g.exprTo(x, arr.Elem())
		p := g.cur.NewGetElementPtr(elem, buf, i32(int64(i)))
		g.cur.NewStore(v, p)
	}
	return g.cur.NewLoad(st, slot)
}

// arrayAlloc lowers [n]T.
func (g *generator) arrayAlloc(e *syntax.ArrayAlloc) value.Value {
	if e.Len < 0 {
		g.errorf(e.Pos(), "negative array length %d", e.Len)
	}
	elem := g.irType(g.typeOf(e.Elem))
	slot, st, _ := g.newArray(e, elem, int64(e.Len))
	return g.cur.NewLoad(st, slot)
}

// structLit lowers T{a, b} by storing each argument into a fresh slot.
func (g *generator) structLit(e *syntax.StructLit) value.Value {
	t := g.typeOf(e)
	s := structOf(t)
	if s == nil {
		g.errorf(e.Pos(), "%s is not a struct type", e.Name)
	}
	if len(e.Args) != s.NumFields() {
		g.errorf(e.Pos(), "%s has %d fields, %d given", e.Name, s.NumFields(), len(e.Args))
	}
	st := g.irType(t)
	slot := g.alloca(st)
	for i, a := range e.Args {
		v := g.exprTo(a, s.Field(i).Type())
		p := g.cur.NewGetElementPtr(st, slot, i32(0), i32(int64(i)))
		g.cur.NewStore(v, p)
	}
	return g.cur.NewLoad(st, slot)
}
