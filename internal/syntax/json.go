package syntax

import (
	"encoding/json"
	"io"
)

// FprintJSON writes a JSON representation of the tree to w. Each node
// becomes an object with its kind, rendering, position, optional label and
// children.
func FprintJSON(w io.Writer, node Node) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(toJSON(node))
}

type jsonNode struct {
	Kind     string      `json:"kind"`
	Label    string      `json:"label,omitempty"`
	Text     string      `json:"text"`
	Pos      string      `json:"pos,omitempty"`
	Children []*jsonNode `json:"children,omitempty"`
}

func toJSON(node Node) *jsonNode {
	if node == nil {
		return nil
	}
	j := &jsonNode{Text: Describe(node)}
	if a, ok := node.(*Annotated); ok {
		j.Label = a.Label
		j.Kind = KindName(Unwrap(a))
	} else {
		j.Kind = KindName(node)
	}
	if pos := node.Pos(); pos.IsValid() {
		j.Pos = pos.String()
	}
	for c := range Children(node) {
		j.Children = append(j.Children, toJSON(c))
	}
	return j
}
