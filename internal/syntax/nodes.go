package syntax

// ----------------------------------------------------------------------------
// Interfaces
//
// The node set is closed: every kind is declared in this file and the marker
// methods keep other packages from adding more. Consumers switch over the
// concrete types; lowering uses the named fields, never Children.

// Node is the interface implemented by all syntax nodes.
type Node interface {
	Pos() Pos     // position of the token the node was built from
	Scope() Scope // lexical scope the node was parsed in (may be nil)
	SetScope(Scope)

	bind(pos Pos, scope Scope)
	aNode()
}

// Expr is implemented by expression nodes.
type Expr interface {
	Node
	aExpr()
}

// Lvalue is implemented by the expressions that denote a storage location:
// VarRef, SelectorExpr and IndexExpr. Whether the location or the value
// stored there is wanted is decided by the consumer, not by the node.
type Lvalue interface {
	Expr
	aLvalue()
}

// Scope is the lexical scope a node was parsed in. It is implemented by
// *types.Scope; the tree only needs to know the enclosing function.
type Scope interface {
	// Func returns the function definition whose body encloses the scope,
	// or nil at file, namespace and module level.
	Func() *FuncDecl
}

// Init binds a freshly built node to its source position and scope and
// returns it. Parsers call it once per node.
func Init[N Node](n N, pos Pos, scope Scope) N {
	n.bind(pos, scope)
	return n
}

// ----------------------------------------------------------------------------
// Base node types

type node struct {
	pos   Pos
	scope Scope
}

func (n *node) Pos() Pos            { return n.pos }
func (n *node) Scope() Scope        { return n.scope }
func (n *node) SetScope(s Scope)    { n.scope = s }
func (n *node) bind(p Pos, s Scope) { n.pos, n.scope = p, s }
func (*node) aNode()                {}

type expr struct{ node }

func (*expr) aExpr() {}

type lvalue struct{ expr }

func (*lvalue) aLvalue() {}

// Annotated pairs a child with a label for diagnostic rendering
// ("condition", "then", "init_2", ...). It is transparent: its children,
// position and rendering are those of X.
type Annotated struct {
	node
	Label string
	X     Node
}

func (a *Annotated) Pos() Pos { return a.X.Pos() }

// Unwrap returns the node under any Annotated wrappers.
func Unwrap(n Node) Node {
	for {
		a, ok := n.(*Annotated)
		if !ok {
			return n
		}
		n = a.X
	}
}

// ----------------------------------------------------------------------------
// Roots and declarations

// Program is the root of a compilation: the ordered file roots that share
// one global and function namespace.
type Program struct {
	node
	Files []*File
}

// File is the root of one source file.
type File struct {
	node
	Decls []Node // top-level declarations and statements, in source order
}

// Namespace is a named group of declarations lowered into the enclosing
// function context.
type Namespace struct {
	node
	Name  string
	Decls []Node
}

// VarDecl is a variable definition: let x = Value or var x = Value.
// Whether the variable is constant or global is decided by the resolved
// variable definition, not by Tok.
type VarDecl struct {
	node
	Tok   Token    // Let or Var, for rendering
	Name  string
	Type  *TypeRef // declared type (nil if inferred)
	Value Expr     // initializer
}

// Param is one function parameter.
type Param struct {
	Name string
	Type *TypeRef
}

// FuncDecl is a function definition.
type FuncDecl struct {
	node
	Name         string
	ExternalName string // symbol name if different from Name
	Params       []*Param
	Result       *TypeRef   // nil if no return type was written
	Body         *BlockStmt // nil for external functions
	External     bool
	TypeDecl     bool     // signature-only declaration; no symbol exists
	Attrs        []string // source attributes, e.g. "DLL.EXPORT"
}

// SymbolName returns the name the function's symbol is created under.
func (f *FuncDecl) SymbolName() string {
	if f.ExternalName != "" {
		return f.ExternalName
	}
	return f.Name
}

// HasBody reports whether the function has a body to lower.
func (f *FuncDecl) HasBody() bool {
	return !f.External && f.Body != nil
}

// Field is one named struct field.
type Field struct {
	Name string
	Type *TypeRef
}

// StructDecl is a struct definition: Name = struct { Fields }.
type StructDecl struct {
	node
	Name   string
	Fields []*Field
}

// ----------------------------------------------------------------------------
// Statements

// BlockStmt is an ordered list of statements.
type BlockStmt struct {
	node
	Stmts []Node
}

// IfStmt is an if/elif/else chain.
type IfStmt struct {
	node
	Cond  Expr
	Then  *BlockStmt
	Elifs []*ElifClause
	Else  *BlockStmt // nil if absent
}

// ElifClause is one elif arm of an IfStmt.
type ElifClause struct {
	node
	Cond Expr
	Then *BlockStmt
}

// ForStmt is for (Init; Cond; Iter) Body.
type ForStmt struct {
	node
	Init []Node
	Cond Expr // nil loops forever
	Iter []Node
	Body *BlockStmt
}

// WhileStmt is while (Cond) Body.
type WhileStmt struct {
	node
	Cond Expr
	Body *BlockStmt
}

// BranchStmt is break or continue.
type BranchStmt struct {
	node
	Tok Token // Break or Continue
}

// ReturnStmt is return [Result].
type ReturnStmt struct {
	node
	Result Expr // nil for a bare return
}

// ----------------------------------------------------------------------------
// Expressions

// VarRef names a variable or function, optionally with ++/--.
type VarRef struct {
	lvalue
	Name   string
	IncDec IncDec
}

// StructLit constructs a struct value from positional arguments.
type StructLit struct {
	expr
	Name string
	Args []Expr
}

// CallExpr calls the function bound to Name.
type CallExpr struct {
	expr
	Name string
	Args []Expr
}

// ArrayLit constructs an array from its elements: [a, b, c].
type ArrayLit struct {
	expr
	Elems []Expr
}

// ArrayAlloc allocates an uninitialized array of Len elements: [Len]Elem.
type ArrayAlloc struct {
	expr
	Len  int
	Elem *TypeRef
}

// SelectorExpr is X.Field, or X->Field when Arrow is set.
type SelectorExpr struct {
	lvalue
	X     Expr
	Field string
	Arrow bool
}

// IndexExpr is X[Index].
type IndexExpr struct {
	lvalue
	X     Expr
	Index Expr
}

// AssignExpr is Target = Value. The parser only builds it with an Lvalue
// or a dereference as target.
type AssignExpr struct {
	expr
	Target Expr
	Value  Expr
}

// BinaryExpr is X Op Y.
type BinaryExpr struct {
	expr
	Op BinaryOp
	X  Expr
	Y  Expr
}

// UnaryExpr is Op X.
type UnaryExpr struct {
	expr
	Op UnaryOp
	X  Expr
}

// CastExpr converts X to Type.
type CastExpr struct {
	expr
	X    Expr
	Type *TypeRef
}

// IntLit is an integer literal.
type IntLit struct {
	expr
	Value int64
}

// FloatLit is a floating-point literal.
type FloatLit struct {
	expr
	Value float64
}

// BoolLit is true or false.
type BoolLit struct {
	expr
	Value bool
}

// StringLit is a string literal. Value holds the contents with escape
// sequences already resolved.
type StringLit struct {
	expr
	Value string
}

// ----------------------------------------------------------------------------
// Type references

// TypeRef names a type as written in source: Name, optionally as an array
// (Name[]) and/or a pointer of depth PointerDepth (Name**). It carries no
// storage; the type checker resolves it.
type TypeRef struct {
	node
	Name         string
	IsArray      bool
	PointerDepth int
}

// IsPointer reports whether the reference has at least one pointer level.
func (t *TypeRef) IsPointer() bool {
	return t.PointerDepth > 0
}
