package types

import (
	"testing"

	"github.com/you-not-fish/pragma/internal/syntax"
)

// Helper function to create a scope for testing
func testScope(parent *Scope, comment string) *Scope {
	return NewScope(parent, nil, comment)
}

func TestScopeInsertAndLookup(t *testing.T) {
	scope := testScope(nil, "test")

	obj := NewVar(NoPos, "x", Typ[I32], 0)
	if existing := scope.Insert(obj); existing != nil {
		t.Errorf("Insert() returned non-nil for first insert")
	}
	if scope.Lookup("x") != Object(obj) {
		t.Errorf("Lookup() did not return inserted object")
	}

	obj2 := NewVar(NoPos, "x", Typ[F32], 0)
	if existing := scope.Insert(obj2); existing != Object(obj) {
		t.Errorf("Insert() should return first object for duplicate")
	}
}

func TestScopeShadowing(t *testing.T) {
	parent := testScope(nil, "parent")
	child := testScope(parent, "child")

	parentObj := NewVar(NoPos, "x", Typ[I32], 0)
	parent.Insert(parentObj)

	if found, foundScope := child.LookupParent("x"); found != Object(parentObj) || foundScope != parent {
		t.Errorf("LookupParent() = %v in %v, want parent's x", found, foundScope)
	}
	if child.Lookup("x") != nil {
		t.Errorf("Lookup() should not find parent's object")
	}

	childObj := NewVar(NoPos, "x", Typ[F32], 0)
	child.Insert(childObj)
	if found, foundScope := child.LookupParent("x"); found != Object(childObj) || foundScope != child {
		t.Errorf("LookupParent() should find child's shadowing object")
	}
}

func TestScopeFunc(t *testing.T) {
	fn := &syntax.FuncDecl{Name: "f"}
	pkg := testScope(Universe, "package")
	body := NewScope(pkg, fn, "function f")
	block := testScope(body, "block")
	inner := testScope(block, "block")

	if pkg.Func() != nil {
		t.Errorf("package scope reports function %v", pkg.Func())
	}
	for _, s := range []*Scope{body, block, inner} {
		if s.Func() != fn {
			t.Errorf("scope %q: Func() = %v, want f", s.Comment(), s.Func())
		}
	}

	var ss syntax.Scope = inner
	if ss.Func() != fn {
		t.Error("Scope does not implement syntax.Scope.Func")
	}
}

func TestScopeNames(t *testing.T) {
	scope := testScope(nil, "test")
	scope.Insert(NewVar(NoPos, "c", Typ[Bool], 0))
	scope.Insert(NewVar(NoPos, "a", Typ[I32], 0))
	scope.Insert(NewVar(NoPos, "b", Typ[F32], 0))

	names := scope.Names()
	expected := []string{"a", "b", "c"}
	if len(names) != len(expected) {
		t.Fatalf("Names() = %q", names)
	}
	for i, name := range expected {
		if names[i] != name {
			t.Errorf("Names()[%d] = %q, want %q", i, names[i], name)
		}
	}
}

func TestObjectParentScope(t *testing.T) {
	scope := testScope(nil, "test")
	obj := NewVar(NoPos, "x", Typ[I32], 0)

	if obj.Parent() != nil {
		t.Errorf("Parent() should be nil before insertion")
	}
	scope.Insert(obj)
	if obj.Parent() != scope {
		t.Errorf("Parent() should be set after insertion")
	}
}

func TestScopeChildren(t *testing.T) {
	parent := testScope(nil, "parent")
	child1 := testScope(parent, "child1")
	child2 := testScope(parent, "child2")

	children := parent.Children()
	if len(children) != 2 || children[0] != child1 || children[1] != child2 {
		t.Errorf("Children() = %v", children)
	}
}

func TestUniverse(t *testing.T) {
	if Universe == nil {
		t.Fatal("Universe is nil")
	}
	for _, name := range []string{"bool", "i8", "i16", "i32", "i64", "u8", "mm", "f32", "f64", "void", "string"} {
		obj := Universe.Lookup(name)
		tn, ok := obj.(*TypeName)
		if !ok {
			t.Errorf("Universe.Lookup(%q) = %v, want a TypeName", name, obj)
			continue
		}
		if tn.Name() != name {
			t.Errorf("TypeName.Name() = %q, want %q", tn.Name(), name)
		}
	}
}

func TestLookupType(t *testing.T) {
	pkg := testScope(Universe, "package")
	vec := NewNamed(NewTypeName(NoPos, "Vec", nil), NewStruct(nil))
	pkg.Insert(vec.Obj())
	pkg.Insert(NewVar(NoPos, "v", vec, Global))

	if got := LookupType(pkg, "Vec"); got != Type(vec) {
		t.Errorf("LookupType(Vec) = %v", got)
	}
	if got := LookupType(pkg, "i32"); got != Type(Typ[I32]) {
		t.Errorf("LookupType(i32) = %v", got)
	}
	if got := LookupType(pkg, "v"); got != nil {
		t.Errorf("LookupType(v) = %v, want nil for a variable", got)
	}
	// Detached scopes still see predeclared types.
	if got := LookupType(testScope(nil, "detached"), "string"); got != Type(StringType()) {
		t.Errorf("LookupType(string) = %v", got)
	}
	if got := LookupType(nil, "f64"); got != Type(Typ[F64]) {
		t.Errorf("LookupType(nil, f64) = %v", got)
	}
}
