// Package syntax defines the syntax tree consumed by the Pragma back end:
// source positions, tokens, operators and the closed set of node kinds.
package syntax

import "fmt"

// Token represents the type of a lexical token.
// Tokens are produced by the lexer, which lives outside this module; the
// tree keeps them where the kind of a node depends on them (operators,
// break/continue, let/var).
type Token uint

const (
	// Special tokens
	EOF   Token = iota // end of file
	Error              // lexical error

	// Literals
	Name    // identifier
	Literal // literal value

	// Assignment
	Assign // =

	// Logical operators
	OrOr   // ||
	AndAnd // &&

	// Comparison operators
	Eql // ==
	Neq // !=
	Lss // <
	Leq // <=
	Gtr // >
	Geq // >=

	// Additive operators
	Add // +
	Sub // -
	Or  // |
	Xor // ^

	// Multiplicative operators
	Mul // *
	Div // /
	Rem // %
	And // &
	Shl // <<
	Shr // >>

	// Unary-only operators
	Not   // !
	Tilde // ~
	Inc   // ++
	Dec   // --
	Arrow // ->

	// Delimiters
	Lparen // (
	Rparen // )
	Lbrack // [
	Rbrack // ]
	Lbrace // {
	Rbrace // }
	Comma  // ,
	Semi   // ;
	Colon  // :
	Dot    // .

	// Keywords
	Break
	Continue
	Elif
	Else
	Extern
	For
	Fun
	If
	Let
	Mod
	Return
	Struct
	Var
	While

	tokenCount
)

var tokenNames = [...]string{
	EOF:   "EOF",
	Error: "ERROR",

	Name:    "NAME",
	Literal: "LITERAL",

	Assign: "=",

	OrOr:   "||",
	AndAnd: "&&",

	Eql: "==",
	Neq: "!=",
	Lss: "<",
	Leq: "<=",
	Gtr: ">",
	Geq: ">=",

	Add: "+",
	Sub: "-",
	Or:  "|",
	Xor: "^",

	Mul: "*",
	Div: "/",
	Rem: "%",
	And: "&",
	Shl: "<<",
	Shr: ">>",

	Not:   "!",
	Tilde: "~",
	Inc:   "++",
	Dec:   "--",
	Arrow: "->",

	Lparen: "(",
	Rparen: ")",
	Lbrack: "[",
	Rbrack: "]",
	Lbrace: "{",
	Rbrace: "}",
	Comma:  ",",
	Semi:   ";",
	Colon:  ":",
	Dot:    ".",

	Break:    "break",
	Continue: "continue",
	Elif:     "elif",
	Else:     "else",
	Extern:   "extern",
	For:      "for",
	Fun:      "fun",
	If:       "if",
	Let:      "let",
	Mod:      "mod",
	Return:   "return",
	Struct:   "struct",
	Var:      "var",
	While:    "while",
}

// String returns the string representation of the token.
func (t Token) String() string {
	if t < tokenCount {
		return tokenNames[t]
	}
	return fmt.Sprintf("token(%d)", t)
}

// IsBreak reports whether t is the break keyword.
func (t Token) IsBreak() bool {
	return t == Break
}
