package syntax

import (
	"iter"
	"strconv"
)

// Children returns the children of n in display order. Some children are
// wrapped in *Annotated to carry a label. The sequence is lazy and can be
// ranged over any number of times with the same result.
func Children(n Node) iter.Seq[Node] {
	return func(yield func(Node) bool) {
		children(n, yield)
	}
}

// children yields the children of n and reports whether iteration should
// continue.
func children(n Node, yield func(Node) bool) bool {
	switch n := n.(type) {
	case *Annotated:
		return children(n.X, yield)

	case *Program:
		for _, f := range n.Files {
			if !yield(f) {
				return false
			}
		}

	case *File:
		return each(n.Decls, yield)

	case *Namespace:
		return each(n.Decls, yield)

	case *BlockStmt:
		return each(n.Stmts, yield)

	case *IfStmt:
		if !yield(annotate(n, n.Cond, "condition")) || !yield(annotate(n, n.Then, "then")) {
			return false
		}
		for _, e := range n.Elifs {
			if !yield(annotate(n, e, "elif")) {
				return false
			}
		}
		if n.Else != nil {
			return yield(annotate(n, n.Else, "else"))
		}

	case *ElifClause:
		return yield(annotate(n, n.Cond, "condition")) && yield(n.Then)

	case *ForStmt:
		for i, s := range n.Init {
			if !yield(annotate(n, s, "init_"+strconv.Itoa(i+1))) {
				return false
			}
		}
		if n.Cond != nil && !yield(annotate(n, n.Cond, "condition")) {
			return false
		}
		for i, s := range n.Iter {
			if !yield(annotate(n, s, "iter_"+strconv.Itoa(i+1))) {
				return false
			}
		}
		return yield(annotate(n, n.Body, "body"))

	case *WhileStmt:
		return yield(annotate(n, n.Cond, "condition")) && yield(annotate(n, n.Body, "body"))

	case *VarDecl:
		if n.Value != nil && !yield(n.Value) {
			return false
		}
		if n.Type != nil {
			return yield(annotate(n, n.Type, "type"))
		}

	case *FuncDecl:
		if n.HasBody() && !yield(n.Body) {
			return false
		}
		for _, p := range n.Params {
			if !yield(annotate(n, p.Type, p.Name)) {
				return false
			}
		}
		if n.Result != nil {
			return yield(annotate(n, n.Result, "return"))
		}

	case *StructDecl:
		for _, f := range n.Fields {
			if !yield(annotate(n, f.Type, f.Name)) {
				return false
			}
		}

	case *ReturnStmt:
		if n.Result != nil {
			return yield(n.Result)
		}

	case *StructLit:
		return each(n.Args, yield)

	case *CallExpr:
		return each(n.Args, yield)

	case *ArrayLit:
		for i, e := range n.Elems {
			if !yield(annotate(n, e, "elem_"+strconv.Itoa(i))) {
				return false
			}
		}

	case *ArrayAlloc:
		return yield(n.Elem)

	case *SelectorExpr:
		return yield(n.X)

	case *IndexExpr:
		return yield(annotate(n, n.X, "array")) && yield(annotate(n, n.Index, "index"))

	case *AssignExpr:
		return yield(annotate(n, n.Target, "target")) && yield(annotate(n, n.Value, "expression"))

	case *BinaryExpr:
		return yield(n.X) && yield(n.Y)

	case *UnaryExpr:
		return yield(n.X)

	case *CastExpr:
		return yield(n.X) && yield(n.Type)

	// Leaf nodes: VarRef, BranchStmt, IntLit, FloatLit, BoolLit, StringLit,
	// TypeRef.
	}
	return true
}

func each[N Node](list []N, yield func(Node) bool) bool {
	for _, n := range list {
		if !yield(n) {
			return false
		}
	}
	return true
}

// annotate wraps x with a label. The wrapper takes the parent's scope.
func annotate(parent, x Node, label string) *Annotated {
	a := &Annotated{Label: label, X: x}
	a.scope = parent.Scope()
	return a
}

// Visitor is called for each node during Walk.
// If it returns false, the children of the node are not visited.
type Visitor func(node Node) bool

// Walk traverses the tree rooted at node in depth-first order following
// Children. Labelled children are visited as their *Annotated wrapper.
func Walk(node Node, v Visitor) {
	if node == nil || !v(node) {
		return
	}
	for c := range Children(node) {
		Walk(c, v)
	}
}

// Inspect traverses a tree and calls f for each node.
// Convenience wrapper around Walk.
func Inspect(node Node, f func(Node) bool) {
	Walk(node, Visitor(f))
}
