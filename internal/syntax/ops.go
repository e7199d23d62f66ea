package syntax

import "fmt"

// BinaryOp is the operator of a BinaryExpr.
type BinaryOp uint8

const (
	OpAdd BinaryOp = iota
	OpSub
	OpMul
	OpDiv
	OpRem
	OpShl
	OpShr
	OpCondOr  // ||
	OpCondAnd // &&
	OpOr      // |
	OpXor     // ^
	OpAnd     // &
	OpEql
	OpNeq
	OpGtr
	OpLss
	OpGeq
	OpLeq

	binaryOpCount
)

var binaryOpTokens = [binaryOpCount]Token{
	OpAdd:     Add,
	OpSub:     Sub,
	OpMul:     Mul,
	OpDiv:     Div,
	OpRem:     Rem,
	OpShl:     Shl,
	OpShr:     Shr,
	OpCondOr:  OrOr,
	OpCondAnd: AndAnd,
	OpOr:      Or,
	OpXor:     Xor,
	OpAnd:     And,
	OpEql:     Eql,
	OpNeq:     Neq,
	OpGtr:     Gtr,
	OpLss:     Lss,
	OpGeq:     Geq,
	OpLeq:     Leq,
}

// String returns the operator symbol. It panics on a value outside the
// enumeration.
func (op BinaryOp) String() string {
	if op >= binaryOpCount {
		panic(fmt.Sprintf("syntax: invalid binary operator %d", op))
	}
	return binaryOpTokens[op].String()
}

// IsComparison reports whether op yields a boolean from two operands of the
// same type.
func (op BinaryOp) IsComparison() bool {
	return op >= OpEql && op <= OpLeq
}

// IsLogical reports whether op is a short-circuit operator.
func (op BinaryOp) IsLogical() bool {
	return op == OpCondOr || op == OpCondAnd
}

// BinaryOpFromToken maps an operator token to its BinaryOp.
// Tokens outside the recognized set yield an *OperatorError.
func BinaryOpFromToken(tok Token, pos Pos) (BinaryOp, error) {
	switch tok {
	case Add:
		return OpAdd, nil
	case Sub:
		return OpSub, nil
	case Mul:
		return OpMul, nil
	case Div:
		return OpDiv, nil
	case Rem:
		return OpRem, nil
	case Shl:
		return OpShl, nil
	case Shr:
		return OpShr, nil
	case OrOr:
		return OpCondOr, nil
	case AndAnd:
		return OpCondAnd, nil
	case Or:
		return OpOr, nil
	case Xor:
		return OpXor, nil
	case And:
		return OpAnd, nil
	case Eql:
		return OpEql, nil
	case Neq:
		return OpNeq, nil
	case Gtr:
		return OpGtr, nil
	case Lss:
		return OpLss, nil
	case Geq:
		return OpGeq, nil
	case Leq:
		return OpLeq, nil
	}
	return 0, &OperatorError{Pos: pos, Tok: tok, Msg: "invalid token type for binary operation"}
}

// UnaryOp is the operator of a UnaryExpr.
type UnaryOp uint8

const (
	OpPlus       UnaryOp = iota // +x
	OpNeg                       // -x
	OpNot                       // !x
	OpComplement                // ~x
	OpAddr                      // &x
	OpDeref                     // *x

	unaryOpCount
)

var unaryOpNames = [unaryOpCount]string{
	OpPlus:       "unary +",
	OpNeg:        "unary -",
	OpNot:        "!",
	OpComplement: "~",
	OpAddr:       "address of &",
	OpDeref:      "dereference *",
}

// String returns a readable name for the operator. It panics on a value
// outside the enumeration.
func (op UnaryOp) String() string {
	if op >= unaryOpCount {
		panic(fmt.Sprintf("syntax: invalid unary operator %d", op))
	}
	return unaryOpNames[op]
}

// IsUnaryToken reports whether tok can start a unary operation.
// It accepts exactly the tokens UnaryOpFromToken maps.
func IsUnaryToken(tok Token) bool {
	_, ok := unaryOp(tok)
	return ok
}

// UnaryOpFromToken maps an operator token to its UnaryOp.
// Tokens outside the recognized set yield an *OperatorError.
func UnaryOpFromToken(tok Token, pos Pos) (UnaryOp, error) {
	if op, ok := unaryOp(tok); ok {
		return op, nil
	}
	return 0, &OperatorError{Pos: pos, Tok: tok, Msg: "invalid token type for unary operator"}
}

func unaryOp(tok Token) (UnaryOp, bool) {
	switch tok {
	case Add:
		return OpPlus, true
	case Sub:
		return OpNeg, true
	case Not:
		return OpNot, true
	case Tilde:
		return OpComplement, true
	case And:
		return OpAddr, true
	case Mul:
		return OpDeref, true
	}
	return 0, false
}

// IncDec tags a VarRef with a pre/post increment or decrement.
type IncDec uint8

const (
	NoIncDec IncDec = iota
	PreInc
	PreDec
	PostInc
	PostDec
)

// OperatorError reports a token that is not a valid operator in the
// position it was found. It aborts the compilation unit.
type OperatorError struct {
	Pos Pos
	Tok Token
	Msg string
}

func (e *OperatorError) Error() string {
	return fmt.Sprintf("%s: %s: %q", e.Pos, e.Msg, e.Tok.String())
}
