package types

import "github.com/you-not-fish/pragma/internal/syntax"

// Object represents a declared entity: a variable or a type name.
type Object interface {
	Name() string    // object name
	Type() Type      // object type
	Pos() syntax.Pos // declaration position
	Parent() *Scope  // enclosing scope

	setParent(*Scope) // internal: set parent scope
	aObject()         // marker method to restrict implementations
}

// object is the base struct for all objects.
type object struct {
	name   string
	typ    Type
	pos    syntax.Pos
	parent *Scope
}

func (o *object) Name() string       { return o.name }
func (o *object) Type() Type         { return o.typ }
func (o *object) Pos() syntax.Pos    { return o.pos }
func (o *object) Parent() *Scope     { return o.parent }
func (o *object) setParent(s *Scope) { o.parent = s }
func (*object) aObject()             {}

// VarFlags describe how a variable definition is stored.
type VarFlags uint8

const (
	Constant VarFlags = 1 << iota // let binding; value fixed at definition
	Global                        // defined outside any function
	Field                         // struct field
	Param                         // function parameter
)

// Var represents a variable, parameter, struct field or function name.
// Functions are bound as variables of *Func type.
type Var struct {
	object
	flags VarFlags
}

// NewVar creates a new variable object.
func NewVar(pos syntax.Pos, name string, typ Type, flags VarFlags) *Var {
	return &Var{object: object{name: name, typ: typ, pos: pos}, flags: flags}
}

// NewField creates a new struct field object.
func NewField(pos syntax.Pos, name string, typ Type) *Var {
	return NewVar(pos, name, typ, Field)
}

// NewParam creates a new function parameter object.
func NewParam(pos syntax.Pos, name string, typ Type) *Var {
	return NewVar(pos, name, typ, Param)
}

// IsConstant reports whether the variable is a constant definition.
func (v *Var) IsConstant() bool { return v.flags&Constant != 0 }

// IsGlobal reports whether the variable lives outside any function.
func (v *Var) IsGlobal() bool { return v.flags&Global != 0 }

// IsField reports whether this variable is a struct field.
func (v *Var) IsField() bool { return v.flags&Field != 0 }

// IsParam reports whether this variable is a function parameter.
func (v *Var) IsParam() bool { return v.flags&Param != 0 }

// IsFunc reports whether the variable names a function.
func (v *Var) IsFunc() bool {
	_, ok := v.typ.(*Func)
	return ok
}

// SetType sets the variable's type.
// This is called during type checking once the type is resolved.
func (v *Var) SetType(typ Type) {
	v.typ = typ
}

// TypeName represents a declared type name.
type TypeName struct {
	object
}

// NewTypeName creates a new type name object.
func NewTypeName(pos syntax.Pos, name string, typ Type) *TypeName {
	return &TypeName{object: object{name: name, typ: typ, pos: pos}}
}

// SetType sets the type associated with the type name.
func (t *TypeName) SetType(typ Type) {
	t.typ = typ
}
