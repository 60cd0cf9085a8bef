package java

import (
	"strings"
)

type Wildcard int

const (
	NotWildcard Wildcard = iota
	WildcardUnbounded
	WildcardExtends
	WildcardSuper
)

// Type is a reference to a type as written in source.
type Type struct {
	// Name is the name as written: "String", "Map.Entry", "int", "T".
	Name string
	// Qualified is the class Name resolves to. It is empty for primitives
	// and type variables.
	Qualified  string
	Args       []Type
	ArrayDepth int
	// Variable marks a type variable of the enclosing class or method.
	Variable bool
	Wildcard Wildcard
	Bound    *Type
}

func (t Type) String() string {
	return t.Format(nil)
}

// Format renders the type. qualify chooses the text for every class
// reference, including type arguments and wildcard bounds; a nil qualify
// keeps names as written.
func (t Type) Format(qualify func(Type) string) string {
	var sb strings.Builder
	t.format(&sb, qualify)
	return sb.String()
}

func (t Type) format(sb *strings.Builder, qualify func(Type) string) {
	switch t.Wildcard {
	case WildcardUnbounded:
		sb.WriteString("?")
		return
	case WildcardExtends, WildcardSuper:
		if t.Wildcard == WildcardExtends {
			sb.WriteString("? extends ")
		} else {
			sb.WriteString("? super ")
		}
		if t.Bound != nil {
			t.Bound.format(sb, qualify)
		}
		return
	}

	if qualify != nil && t.IsClass() {
		sb.WriteString(qualify(t))
	} else {
		sb.WriteString(t.Name)
	}
	if len(t.Args) > 0 {
		sb.WriteByte('<')
		for i, arg := range t.Args {
			if i > 0 {
				sb.WriteString(", ")
			}
			arg.format(sb, qualify)
		}
		sb.WriteByte('>')
	}
	for i := 0; i < t.ArrayDepth; i++ {
		sb.WriteString("[]")
	}
}

// Simple renders the type using the last segment of every class name.
func (t Type) Simple() string {
	return t.Format(func(ref Type) string {
		return lastSegment(ref.Name)
	})
}

// IsClass reports whether the element type names a class, as opposed to a
// primitive, a type variable or a wildcard.
func (t Type) IsClass() bool {
	return t.Wildcard == NotWildcard && !t.Variable && !isPrimitiveName(t.Name)
}

func (t Type) IsPrimitive() bool {
	return t.ArrayDepth == 0 && t.Wildcard == NotWildcard && isPrimitiveName(t.Name) && t.Name != "void"
}

func (t Type) IsArray() bool {
	return t.ArrayDepth > 0
}

func (t Type) IsVoid() bool {
	return t.Name == "void" && t.ArrayDepth == 0
}

// Substitute replaces type variables bound in bindings, recursing into type
// arguments and wildcard bounds.
func (t Type) Substitute(bindings map[string]Type) Type {
	if len(bindings) == 0 {
		return t
	}
	if t.Bound != nil {
		bound := t.Bound.Substitute(bindings)
		t.Bound = &bound
	}
	if t.Variable {
		if replacement, ok := bindings[t.Name]; ok {
			replacement.ArrayDepth += t.ArrayDepth
			return replacement
		}
		return t
	}
	if len(t.Args) > 0 {
		args := make([]Type, len(t.Args))
		for i, arg := range t.Args {
			args[i] = arg.Substitute(bindings)
		}
		t.Args = args
	}
	return t
}

func isPrimitiveName(name string) bool {
	switch name {
	case "boolean", "byte", "char", "short", "int", "long", "float", "double", "void":
		return true
	}
	return false
}
