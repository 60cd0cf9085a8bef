package java

import (
	"strings"

	"github.com/dhamidi/avhelper/java/parser"
)

type Method struct {
	Name           string
	ReturnType     Type
	Params         []Param
	TypeParameters []string
	Modifiers      Modifiers
	Annotations    []Annotation
	Constructor    bool
	Class          *Class
	Node           *parser.Node
	Body           *parser.Node
}

type Param struct {
	Name        string
	Type        Type
	Varargs     bool
	Modifiers   Modifiers
	Annotations []Annotation
}

// IsAbstract reports whether the method is abstract, explicitly or as a
// bodiless instance method of an interface.
func (m *Method) IsAbstract() bool {
	if m.Constructor || m.Body != nil {
		return false
	}
	if m.Modifiers.Has("abstract") {
		return true
	}
	if m.Class != nil && (m.Class.Kind == ClassKindInterface || m.Class.Kind == ClassKindAnnotation) {
		return !m.Modifiers.Has("static") && !m.Modifiers.Has("default") && !m.Modifiers.Has("private")
	}
	return false
}

func (m *Method) IsStatic() bool {
	return m.Modifiers.Has("static")
}

func (m *Method) HasAnnotation(qualified string) bool {
	return hasAnnotation(m.Annotations, qualified)
}

// Signature identifies the method by name and parameter types. Class names
// are compared by their last segment.
func (m *Method) Signature() string {
	types := make([]Type, len(m.Params))
	for i, p := range m.Params {
		types[i] = p.Type
		if p.Varargs {
			types[i].ArrayDepth++
		}
	}
	return Signature(m.Name, types)
}

// Signature formats a method signature the way Method.Signature does.
func Signature(name string, params []Type) string {
	var sb strings.Builder
	sb.WriteString(name)
	sb.WriteByte('(')
	for i, t := range params {
		if i > 0 {
			sb.WriteByte(',')
		}
		sb.WriteString(t.Simple())
	}
	sb.WriteByte(')')
	return sb.String()
}

// BodyTokens returns the tokens of the method body, braces included.
func (m *Method) BodyTokens() []parser.Token {
	if m.Body == nil || m.Class == nil || m.Class.File == nil {
		return nil
	}
	src := m.Class.File.Source[m.Body.Span.Start.Offset:m.Body.Span.End.Offset]
	return parser.Tokens(src)
}
