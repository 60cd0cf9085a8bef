package java

import (
	"github.com/dhamidi/avhelper/java/parser"
)

// Class is a type declaration: class, interface, enum, record or annotation.
type Class struct {
	Name string
	// Qualified is the canonical name, package and enclosing classes
	// included.
	Qualified      string
	Package        string
	Kind           ClassKind
	Modifiers      Modifiers
	Annotations    []Annotation
	TypeParameters []string
	Extends        []Type
	Implements     []Type
	Methods        []*Method
	Nested         []*Class
	Enclosing      *Class
	File           *File
	Node           *parser.Node
	Body           *parser.Node
}

// Superclass returns the extends clause of a class declaration.
func (c *Class) Superclass() (Type, bool) {
	if c.Kind != ClassKindClass || len(c.Extends) == 0 {
		return Type{}, false
	}
	return c.Extends[0], true
}

// Interfaces returns the directly declared super-interfaces in declaration
// order.
func (c *Class) Interfaces() []Type {
	if c.Kind == ClassKindInterface {
		return c.Extends
	}
	return c.Implements
}

// IsStatic reports whether the class is static, explicitly or implicitly.
// Top-level classes are not static.
func (c *Class) IsStatic() bool {
	if c.Enclosing == nil {
		return false
	}
	if c.Modifiers.Has("static") {
		return true
	}
	switch c.Kind {
	case ClassKindInterface, ClassKindEnum, ClassKindRecord, ClassKindAnnotation:
		return true
	}
	switch c.Enclosing.Kind {
	case ClassKindInterface, ClassKindAnnotation:
		return true
	}
	return false
}

func (c *Class) IsTopLevel() bool {
	return c.Enclosing == nil
}

// RelativeName returns the name of the class within its package, with
// enclosing classes separated by dots.
func (c *Class) RelativeName() string {
	if c.Enclosing == nil {
		return c.Name
	}
	return c.Enclosing.RelativeName() + "." + c.Name
}

// HasAnnotation reports whether the class carries an annotation resolving to
// the given qualified name.
func (c *Class) HasAnnotation(qualified string) bool {
	return hasAnnotation(c.Annotations, qualified)
}

func (c *Class) NestedClass(name string) *Class {
	for _, n := range c.Nested {
		if n.Name == name {
			return n
		}
	}
	return nil
}

func (c *Class) MethodsNamed(name string) []*Method {
	var result []*Method
	for _, m := range c.Methods {
		if m.Name == name {
			result = append(result, m)
		}
	}
	return result
}

// typeVariables returns the type parameters visible inside the class body.
func (c *Class) typeVariables() []string {
	var vars []string
	for cls := c; cls != nil; cls = cls.Enclosing {
		vars = append(vars, cls.TypeParameters...)
		if cls.IsStatic() {
			break
		}
	}
	return vars
}

func hasAnnotation(annotations []Annotation, qualified string) bool {
	for _, a := range annotations {
		if a.Qualified == qualified || a.Name == qualified {
			return true
		}
	}
	return false
}
