package codegen

import "github.com/you-not-fish/pragma/internal/syntax"

// Buckets is the emission order of a declaration sequence.
type Buckets struct {
	Consts  []*syntax.VarDecl  // constant variable definitions
	Globals []*syntax.VarDecl  // global variable definitions
	Funcs   []*syntax.FuncDecl // every function definition, for prototypes
	Other   []syntax.Node      // everything else in source order, incl. function bodies
}

// Len returns the number of entries across all buckets. A function with a
// body is counted twice.
func (b *Buckets) Len() int {
	return len(b.Consts) + len(b.Globals) + len(b.Funcs) + len(b.Other)
}

// Partition sorts top-level declarations into buckets. It does not modify
// the tree. Relative source order is kept within each bucket.
//
// A variable definition whose variable is constant goes to Consts, one
// whose variable is global to Globals. Function definitions go to Funcs
// and, unless external, also to Other so their bodies are lowered in
// source order. Everything else, including unresolvable variable
// definitions, goes to Other.
func Partition(decls []syntax.Node, o Oracle) Buckets {
	return partition(decls, o, false)
}

// partitionNamespace is Partition for the declarations of a namespace:
// every non-constant variable definition is a global.
func partitionNamespace(decls []syntax.Node, o Oracle) Buckets {
	return partition(decls, o, true)
}

func partition(decls []syntax.Node, o Oracle, namespace bool) Buckets {
	var b Buckets
	for _, n := range decls {
		switch d := syntax.Unwrap(n).(type) {
		case *syntax.VarDecl:
			v := o.ResolveVariable(d.Name, d)
			switch {
			case v == nil:
				b.Other = append(b.Other, d)
			case v.IsConstant():
				b.Consts = append(b.Consts, d)
			case v.IsGlobal() || namespace:
				b.Globals = append(b.Globals, d)
			default:
				b.Other = append(b.Other, d)
			}
		case *syntax.FuncDecl:
			b.Funcs = append(b.Funcs, d)
			if !d.External {
				b.Other = append(b.Other, d)
			}
		default:
			b.Other = append(b.Other, d)
		}
	}
	return b
}
