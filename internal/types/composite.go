package types

import "strings"

// Array represents the language-level array type Elem[]: a length plus a
// pointer to the elements. Its length is a runtime value.
type Array struct {
	typ
	elem Type
}

// NewArray creates a new array type with the given element type.
func NewArray(elem Type) *Array {
	return &Array{elem: elem}
}

// Elem returns the array element type.
func (a *Array) Elem() Type {
	return a.elem
}

// Underlying implements Type.
func (a *Array) Underlying() Type {
	return a
}

// String implements Type.
func (a *Array) String() string {
	if a == stringType {
		return "string"
	}
	return a.elem.String() + "[]"
}

// Struct represents a struct type.
type Struct struct {
	typ
	fields []*Var
}

// NewStruct creates a new struct type with the given fields.
func NewStruct(fields []*Var) *Struct {
	return &Struct{fields: fields}
}

// NumFields returns the number of fields.
func (s *Struct) NumFields() int {
	return len(s.fields)
}

// Field returns the field at the given index.
func (s *Struct) Field(i int) *Var {
	return s.fields[i]
}

// Fields returns all fields.
func (s *Struct) Fields() []*Var {
	return s.fields
}

// FieldIndex returns the index of the field with the given name, or -1.
func (s *Struct) FieldIndex(name string) int {
	for i, f := range s.fields {
		if f.Name() == name {
			return i
		}
	}
	return -1
}

// Underlying implements Type.
func (s *Struct) Underlying() Type {
	return s
}

// String implements Type.
func (s *Struct) String() string {
	var buf strings.Builder
	buf.WriteString("struct{")
	for i, f := range s.fields {
		if i > 0 {
			buf.WriteString("; ")
		}
		buf.WriteString(f.Name())
		buf.WriteString(": ")
		buf.WriteString(f.Type().String())
	}
	buf.WriteString("}")
	return buf.String()
}

// Pointer represents a pointer type T*.
type Pointer struct {
	typ
	base Type
}

// NewPointer creates a new pointer type.
func NewPointer(base Type) *Pointer {
	return &Pointer{base: base}
}

// Elem returns the base type that the pointer points to.
func (p *Pointer) Elem() Type {
	return p.base
}

// Underlying implements Type.
func (p *Pointer) Underlying() Type {
	return p
}

// String implements Type.
func (p *Pointer) String() string {
	return p.base.String() + "*"
}

// Func represents a function type.
type Func struct {
	typ
	params   []*Var
	result   Type // nil if no return type could be resolved
	inactive bool
}

// NewFunc creates a new function type.
func NewFunc(params []*Var, result Type) *Func {
	return &Func{params: params, result: result}
}

// Params returns the parameter list.
func (f *Func) Params() []*Var {
	return f.params
}

// NumParams returns the number of parameters.
func (f *Func) NumParams() int {
	return len(f.params)
}

// Param returns the parameter at index i.
func (f *Func) Param(i int) *Var {
	return f.params[i]
}

// Result returns the result type, or nil if it was not resolved.
// A function that returns nothing has result Typ[Void].
func (f *Func) Result() Type {
	return f.result
}

// Inactive reports whether the function was compiled out by a
// conditional-compilation attribute.
func (f *Func) Inactive() bool {
	return f.inactive
}

// SetInactive marks the function as compiled out.
func (f *Func) SetInactive(inactive bool) {
	f.inactive = inactive
}

// Underlying implements Type.
func (f *Func) Underlying() Type {
	return f
}

// String implements Type.
func (f *Func) String() string {
	var buf strings.Builder
	buf.WriteString("(")
	for i, p := range f.params {
		if i > 0 {
			buf.WriteString(", ")
		}
		if p.Name() != "" {
			buf.WriteString(p.Name())
			buf.WriteString(": ")
		}
		buf.WriteString(p.Type().String())
	}
	buf.WriteString(") => ")
	if f.result != nil {
		buf.WriteString(f.result.String())
	} else {
		buf.WriteString("?")
	}
	return buf.String()
}
