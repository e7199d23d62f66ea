package types

import "github.com/you-not-fish/pragma/internal/syntax"

// Package is one compilation unit: the shared global and function
// namespace of all files lowered together.
type Package struct {
	name  string
	scope *Scope
}

// NewPackage creates a new package with the given name. Its scope is a
// child of Universe.
func NewPackage(name string) *Package {
	return &Package{
		name:  name,
		scope: NewScope(Universe, nil, "package "+name),
	}
}

// Name returns the package name.
func (p *Package) Name() string {
	return p.name
}

// Scope returns the package-level scope.
func (p *Package) Scope() *Scope {
	return p.scope
}

// Define inserts a global variable into the package scope and returns it.
// It returns the existing object if the name is already taken.
func (p *Package) Define(pos syntax.Pos, name string, typ Type, constant bool) (*Var, Object) {
	flags := Global
	if constant {
		flags |= Constant
	}
	v := NewVar(pos, name, typ, flags)
	if alt := p.scope.Insert(v); alt != nil {
		return nil, alt
	}
	return v, nil
}

// String returns the package name.
func (p *Package) String() string {
	return p.name
}
