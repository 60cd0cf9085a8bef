package parser

import "encoding/json"

// jsonNode is the debug representation of a node. Positions carry byte
// offsets so that spans can be matched against edits.
type jsonNode struct {
	Kind     string      `json:"kind"`
	Start    *jsonPos    `json:"start,omitempty"`
	End      *jsonPos    `json:"end,omitempty"`
	Token    string      `json:"token,omitempty"`
	Error    *jsonError  `json:"error,omitempty"`
	Children []*jsonNode `json:"children,omitempty"`
}

type jsonPos struct {
	Line   int `json:"line"`
	Column int `json:"column"`
	Offset int `json:"offset"`
}

type jsonError struct {
	Message  string   `json:"message"`
	Expected []string `json:"expected,omitempty"`
	Got      string   `json:"got,omitempty"`
}

func (n *Node) MarshalJSON() ([]byte, error) {
	return json.Marshal(n.toJSON())
}

func toJSONPos(p Position) *jsonPos {
	return &jsonPos{Line: p.Line, Column: p.Column, Offset: p.Offset}
}

func (n *Node) toJSON() *jsonNode {
	jn := &jsonNode{Kind: n.Kind.String()}

	// Synthetic nodes have no position.
	if n.Span.Start.Line != 0 {
		jn.Start = toJSONPos(n.Span.Start)
		jn.End = toJSONPos(n.Span.End)
	}
	if n.Token != nil {
		jn.Token = n.Token.Literal
	}
	if e := n.Error; e != nil {
		jn.Error = &jsonError{Message: e.Message}
		for _, kind := range e.Expected {
			jn.Error.Expected = append(jn.Error.Expected, kind.String())
		}
		if e.Got != nil {
			jn.Error.Got = e.Got.Literal
		}
	}
	for _, child := range n.Children {
		jn.Children = append(jn.Children, child.toJSON())
	}
	return jn
}
