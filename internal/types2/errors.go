// Package types2 records the type checker's results for a Pragma program
// and answers the queries lowering makes against them: the type of a node,
// the variable a name binds to, and the attributes a declaration carries.
// The checking algorithm itself lives in the front end.
package types2

import (
	"fmt"

	"github.com/you-not-fish/pragma/internal/syntax"
)

// TypeError represents a type resolution error.
type TypeError struct {
	Pos syntax.Pos
	Msg string
}

// Error implements the error interface.
func (e *TypeError) Error() string {
	return fmt.Sprintf("%s: %s", e.Pos, e.Msg)
}

// ErrorHandler is a function called for each reported diagnostic.
type ErrorHandler func(pos syntax.Pos, msg string)

func errorf(pos syntax.Pos, format string, args ...interface{}) *TypeError {
	return &TypeError{Pos: pos, Msg: fmt.Sprintf(format, args...)}
}
