package syntax

import "fmt"

// Pos is a source position. Nodes keep the position of the token they were
// built from so diagnostics can point back into the source.
// The zero value is an invalid position.
type Pos struct {
	filename string
	line     uint32 // 1-based
	col      uint32 // 1-based, byte offset in line
}

// NoPos is the invalid position, used for synthesized nodes.
var NoPos Pos

// NewPos creates a new Pos with the given filename, line, and column.
func NewPos(filename string, line, col uint32) Pos {
	return Pos{filename: filename, line: line, col: col}
}

// String returns "filename:line:col", or "line:col" if filename is empty.
func (p Pos) String() string {
	if !p.IsValid() {
		return "-"
	}
	if p.filename != "" {
		return fmt.Sprintf("%s:%d:%d", p.filename, p.line, p.col)
	}
	return fmt.Sprintf("%d:%d", p.line, p.col)
}

// IsValid reports whether the position is valid (line > 0).
func (p Pos) IsValid() bool {
	return p.line > 0
}

func (p Pos) Line() uint32     { return p.line }
func (p Pos) Col() uint32      { return p.col }
func (p Pos) Filename() string { return p.filename }

// Before reports whether p comes strictly before q in the same file.
// Positions in different files are unordered.
func (p Pos) Before(q Pos) bool {
	if p.filename != q.filename {
		return false
	}
	if p.line != q.line {
		return p.line < q.line
	}
	return p.col < q.col
}
