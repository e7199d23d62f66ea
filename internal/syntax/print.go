package syntax

import (
	"fmt"
	"io"
	"strconv"
	"strings"
)

// Fprint writes an indented dump of the tree rooted at node to w, one node
// per line, using Describe for each node and prefixing labelled children
// with their label.
func Fprint(w io.Writer, node Node) {
	p := &printer{w: w}
	p.print(node)
}

type printer struct {
	w      io.Writer
	indent int
}

func (p *printer) printf(format string, args ...interface{}) {
	fmt.Fprintf(p.w, "%s%s", strings.Repeat("  ", p.indent), fmt.Sprintf(format, args...))
}

func (p *printer) print(node Node) {
	if node == nil {
		return
	}
	if a, ok := node.(*Annotated); ok {
		p.printf("%s: %s %s\n", a.Label, Describe(a), a.Pos())
	} else {
		p.printf("%s %s\n", Describe(node), node.Pos())
	}
	p.indent++
	for c := range Children(node) {
		p.print(c)
	}
	p.indent--
}

// Describe returns a short, human-readable rendering of n for dumps and
// diagnostics. It does not include children.
func Describe(n Node) string {
	switch n := n.(type) {
	case *Annotated:
		return Describe(n.X)
	case *Program:
		return "program"
	case *File:
		return "file"
	case *Namespace:
		return "mod " + n.Name
	case *BlockStmt:
		return "block"
	case *IfStmt:
		return "if"
	case *ElifClause:
		return "elif"
	case *ForStmt:
		return "for"
	case *WhileStmt:
		return "while"
	case *VarDecl:
		kw := "let"
		if n.Tok == Var {
			kw = "var"
		}
		return kw + " " + n.Name + " = "
	case *FuncDecl:
		s := n.Name + "(...)"
		if n.External {
			s = "extern " + s
		}
		return s
	case *StructDecl:
		return n.Name + " = struct { }"
	case *BranchStmt:
		return n.Tok.String()
	case *ReturnStmt:
		return "return"
	case *VarRef:
		switch n.IncDec {
		case NoIncDec:
			return n.Name
		case PreInc:
			return "++" + n.Name
		case PreDec:
			return "--" + n.Name
		case PostInc:
			return n.Name + "++"
		case PostDec:
			return n.Name + "--"
		}
		panic(fmt.Sprintf("syntax: invalid increment tag %d on %s", n.IncDec, n.Name))
	case *StructLit:
		return n.Name + "{ }"
	case *CallExpr:
		return n.Name + "()"
	case *ArrayLit:
		return "[]"
	case *ArrayAlloc:
		return "[" + strconv.Itoa(n.Len) + "]"
	case *SelectorExpr:
		if n.Arrow {
			return "->" + n.Field
		}
		return "." + n.Field
	case *IndexExpr:
		return "[]"
	case *AssignExpr:
		return " = "
	case *BinaryExpr:
		return n.Op.String()
	case *UnaryExpr:
		return n.Op.String()
	case *CastExpr:
		return "(" + Describe(n.Type) + ")"
	case *IntLit:
		return strconv.FormatInt(n.Value, 10)
	case *FloatLit:
		return strconv.FormatFloat(n.Value, 'f', 2, 64)
	case *BoolLit:
		return strconv.FormatBool(n.Value)
	case *StringLit:
		return n.Value
	case *TypeRef:
		s := n.Name
		if n.IsArray {
			s += "[]"
		}
		return s + strings.Repeat("*", n.PointerDepth)
	}
	panic(fmt.Sprintf("syntax.Describe: unhandled %T", n))
}

// KindName returns the node's kind, e.g. "IfStmt".
func KindName(n Node) string {
	return strings.TrimPrefix(fmt.Sprintf("%T", n), "*syntax.")
}
