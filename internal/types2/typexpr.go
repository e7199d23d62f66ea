package types2

import (
	"github.com/you-not-fish/pragma/internal/syntax"
	"github.com/you-not-fish/pragma/internal/types"
)

// ResolveTypeRef resolves a type reference against scope: the name is
// looked up as a type, then wrapped as an array if IsArray is set, then in
// PointerDepth pointer levels. A nil scope means Universe.
func ResolveTypeRef(t *syntax.TypeRef, scope *types.Scope) (types.Type, error) {
	typ := types.LookupType(scope, t.Name)
	if typ == nil {
		return nil, errorf(t.Pos(), "undefined type %s", t.Name)
	}
	if t.IsArray {
		typ = types.NewArray(typ)
	}
	for range t.PointerDepth {
		typ = types.NewPointer(typ)
	}
	return typ, nil
}

// scopeOf returns the *types.Scope n was parsed in, or nil.
func scopeOf(n syntax.Node) *types.Scope {
	if s, ok := n.Scope().(*types.Scope); ok {
		return s
	}
	return nil
}
