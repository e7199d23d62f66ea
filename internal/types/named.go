package types

// Named represents a declared struct type (Name = struct { ... }).
// Identity is by declaration, not structure.
type Named struct {
	typ
	obj        *TypeName
	underlying Type
}

// NewNamed creates a new named type.
// The underlying type may be set later using SetUnderlying, which allows
// self-referential structs.
func NewNamed(obj *TypeName, underlying Type) *Named {
	n := &Named{obj: obj, underlying: underlying}
	if obj != nil {
		obj.typ = n
	}
	return n
}

// Obj returns the type name object.
func (n *Named) Obj() *TypeName {
	return n.obj
}

// SetUnderlying sets the underlying type.
func (n *Named) SetUnderlying(underlying Type) {
	n.underlying = underlying
}

// Underlying implements Type.
func (n *Named) Underlying() Type {
	return n.underlying
}

// String implements Type.
func (n *Named) String() string {
	if n.obj != nil {
		return n.obj.Name()
	}
	return "unnamed"
}
