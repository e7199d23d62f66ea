package codegen

import (
	"fmt"

	irtypes "github.com/llir/llvm/ir/types"

	"github.com/you-not-fish/pragma/internal/types"
)

// irType maps a frontend type to its LLVM type.
//
// Arrays, strings included, are { i32, T* }. Named structs become type
// definitions. Function values are pointers to functions.
func (g *generator) irType(t types.Type) irtypes.Type {
	switch t := t.(type) {
	case *types.Basic:
		return basicType(t)
	case *types.Named:
		return g.namedType(t)
	case *types.Pointer:
		if types.IsVoid(t.Elem()) {
			return irtypes.I8Ptr
		}
		return irtypes.NewPointer(g.irType(t.Elem()))
	case *types.Array:
		return arrayType(g.irType(t.Elem()))
	case *types.Struct:
		return irtypes.NewStruct(g.fieldTypes(t)...)
	case *types.Func:
		return irtypes.NewPointer(g.funcType(t))
	}
	panic(fmt.Sprintf("codegen.irType: unhandled %T", t))
}

func basicType(b *types.Basic) irtypes.Type {
	switch b.Kind() {
	case types.Bool:
		return irtypes.I1
	case types.I8, types.U8:
		return irtypes.I8
	case types.I16, types.U16:
		return irtypes.I16
	case types.I32, types.U32:
		return irtypes.I32
	case types.I64, types.U64, types.MM:
		return irtypes.I64
	case types.F32:
		return irtypes.Float
	case types.F64:
		return irtypes.Double
	case types.Void:
		return irtypes.Void
	}
	panic(fmt.Sprintf("codegen.basicType: unhandled kind %s", b))
}

// arrayType returns the struct an array of elem lowers to.
func arrayType(elem irtypes.Type) *irtypes.StructType {
	return irtypes.NewStruct(irtypes.I32, irtypes.NewPointer(elem))
}

func (g *generator) fieldTypes(s *types.Struct) []irtypes.Type {
	fields := make([]irtypes.Type, s.NumFields())
	for i, f := range s.Fields() {
		fields[i] = g.irType(f.Type())
	}
	return fields
}

// namedType materializes a named type. A named struct is registered as a
// type definition before its fields are mapped, so it may refer to itself
// through a pointer.
func (g *generator) namedType(n *types.Named) irtypes.Type {
	if t, ok := g.typeDefs[n]; ok {
		return t
	}
	st, ok := n.Underlying().(*types.Struct)
	if !ok {
		t := g.irType(n.Underlying())
		g.typeDefs[n] = t
		return t
	}
	def := irtypes.NewStruct()
	g.m.NewTypeDef(unique(g.tnames, n.Obj().Name()), def)
	g.typeDefs[n] = def
	def.Fields = g.fieldTypes(st)
	return def
}

// funcType returns the LLVM signature of f. A missing result is void.
func (g *generator) funcType(f *types.Func) *irtypes.FuncType {
	ret := irtypes.Type(irtypes.Void)
	if f.Result() != nil {
		ret = g.irType(f.Result())
	}
	params := make([]irtypes.Type, f.NumParams())
	for i, p := range f.Params() {
		params[i] = g.irType(p.Type())
	}
	return irtypes.NewFunc(ret, params...)
}

// structOf returns the struct underlying t, or nil.
func structOf(t types.Type) *types.Struct {
	s, _ := t.Underlying().(*types.Struct)
	return s
}

func isUnsigned(t types.Type) bool {
	return t != nil && types.IsUnsigned(t)
}
