package types

import "github.com/you-not-fish/pragma/internal/syntax"

// NoPos is the zero position value, used for predeclared objects.
var NoPos syntax.Pos

// Universe is the root scope containing all predeclared objects.
var Universe *Scope

// stringType is the predeclared string type, an array of i8.
var stringType = NewArray(Typ[I8])

func init() {
	Universe = NewScope(nil, nil, "universe")
	defPredeclaredTypes()
}

// defPredeclaredTypes defines the basic types and string in Universe.
func defPredeclaredTypes() {
	for _, b := range Typ[1:] {
		Universe.Insert(NewTypeName(NoPos, b.name, b))
	}
	Universe.Insert(NewTypeName(NoPos, "string", stringType))
}

// StringType returns the predeclared string type.
func StringType() *Array { return stringType }

// LookupType returns the type a type name denotes, searching s and its
// parents and then Universe, or nil if the name does not denote a type.
func LookupType(s *Scope, name string) Type {
	if s == nil {
		s = Universe
	}
	obj, _ := s.LookupParent(name)
	if obj == nil {
		obj = Universe.Lookup(name)
	}
	if tn, ok := obj.(*TypeName); ok {
		return tn.Type()
	}
	return nil
}
