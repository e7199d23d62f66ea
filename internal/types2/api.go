package types2

import (
	"slices"

	"github.com/you-not-fish/pragma/internal/syntax"
	"github.com/you-not-fish/pragma/internal/types"
)

// Info holds the results of type checking a compilation unit.
//
// The zero Info is usable; maps are created on first record. Queries fall
// back to structural answers where the checker recorded nothing: type
// references resolve by name, literals take their default type and
// variable references take the type of the variable they bind to.
type Info struct {
	// Types maps nodes to their inferred type.
	Types map[syntax.Node]types.Type

	// Defs maps defining nodes (VarDecl, FuncDecl) to the variable they
	// declare, for nodes whose scope was not recorded.
	Defs map[syntax.Node]*types.Var

	// Attrs maps declarations to attributes added by the checker, on top of
	// the ones written in source.
	Attrs map[syntax.Node][]string

	// Scope is used for nodes that carry no scope of their own.
	// If nil, types.Universe is used.
	Scope *types.Scope
}

// NewInfo returns an empty Info whose unscoped lookups use scope.
func NewInfo(scope *types.Scope) *Info {
	return &Info{
		Types: make(map[syntax.Node]types.Type),
		Defs:  make(map[syntax.Node]*types.Var),
		Attrs: make(map[syntax.Node][]string),
		Scope: scope,
	}
}

// RecordType records the inferred type of n.
func (info *Info) RecordType(n syntax.Node, typ types.Type) {
	if info.Types == nil {
		info.Types = make(map[syntax.Node]types.Type)
	}
	info.Types[n] = typ
}

// RecordDef records the variable a declaration defines.
func (info *Info) RecordDef(n syntax.Node, v *types.Var) {
	if info.Defs == nil {
		info.Defs = make(map[syntax.Node]*types.Var)
	}
	info.Defs[n] = v
}

// RecordAttr attaches an attribute to n.
func (info *Info) RecordAttr(n syntax.Node, name string) {
	if info.Attrs == nil {
		info.Attrs = make(map[syntax.Node][]string)
	}
	info.Attrs[n] = append(info.Attrs[n], name)
}

func (info *Info) scope(n syntax.Node) *types.Scope {
	if n != nil {
		if s := scopeOf(n); s != nil {
			return s
		}
	}
	if info.Scope != nil {
		return info.Scope
	}
	return types.Universe
}

// ResolveVariable returns the variable name binds to when looked up from
// the scope of at, or nil if name does not denote a variable there.
func (info *Info) ResolveVariable(name string, at syntax.Node) *types.Var {
	at = syntax.Unwrap(at)
	if v, ok := info.Defs[at]; ok && v.Name() == name {
		return v
	}
	obj, _ := info.scope(at).LookupParent(name)
	v, _ := obj.(*types.Var)
	return v
}

// TypeOf returns the type of n, or nil if it is unknown.
func (info *Info) TypeOf(n syntax.Node) types.Type {
	n = syntax.Unwrap(n)
	if t, ok := info.Types[n]; ok {
		return t
	}
	switch n := n.(type) {
	case *syntax.TypeRef:
		t, err := ResolveTypeRef(n, info.scope(n))
		if err != nil {
			return nil
		}
		return t
	case *syntax.IntLit:
		return types.Typ[types.I32]
	case *syntax.FloatLit:
		return types.Typ[types.F32]
	case *syntax.BoolLit:
		return types.Typ[types.Bool]
	case *syntax.StringLit:
		return types.StringType()
	case *syntax.VarRef:
		return info.varType(n.Name, n)
	case *syntax.VarDecl:
		return info.varType(n.Name, n)
	case *syntax.FuncDecl:
		return info.varType(n.Name, n)
	}
	return nil
}

func (info *Info) varType(name string, at syntax.Node) types.Type {
	if v := info.ResolveVariable(name, at); v != nil {
		return v.Type()
	}
	return nil
}

// HasAttribute reports whether n carries the named attribute, either in
// source or recorded by the checker.
func (info *Info) HasAttribute(n syntax.Node, name string) bool {
	n = syntax.Unwrap(n)
	if slices.Contains(info.Attrs[n], name) {
		return true
	}
	if f, ok := n.(*syntax.FuncDecl); ok {
		return slices.Contains(f.Attrs, name)
	}
	return false
}
