// Package java projects parsed Java source into declarations: classes,
// methods, parameters and type references resolved against the imports and
// nesting of the file that declares them.
package java

import (
	"strings"

	"github.com/dhamidi/avhelper/java/parser"
)

type ClassKind string

const (
	ClassKindClass      ClassKind = "class"
	ClassKindInterface  ClassKind = "interface"
	ClassKindEnum       ClassKind = "enum"
	ClassKindAnnotation ClassKind = "annotation"
	ClassKindRecord     ClassKind = "record"
)

// Modifiers lists modifier keywords in source order.
type Modifiers []string

func (m Modifiers) Has(keyword string) bool {
	for _, k := range m {
		if k == keyword {
			return true
		}
	}
	return false
}

// Annotation is an annotation use. Name is the name as written, Qualified
// the name it resolves to in the declaring file.
type Annotation struct {
	Name      string
	Qualified string
	Node      *parser.Node
}

// SimpleName returns the last segment of the written name.
func (a Annotation) SimpleName() string {
	return lastSegment(a.Name)
}

type Import struct {
	Name     string
	Static   bool
	Wildcard bool
	Node     *parser.Node
}

// SimpleName returns the imported simple name, or "" for wildcard imports.
func (i Import) SimpleName() string {
	if i.Wildcard {
		return ""
	}
	return lastSegment(i.Name)
}

func lastSegment(name string) string {
	if i := strings.LastIndexByte(name, '.'); i >= 0 {
		return name[i+1:]
	}
	return name
}

func qualify(prefix, name string) string {
	if prefix == "" {
		return name
	}
	return prefix + "." + name
}

func qualifiedNameToString(qn *parser.Node) string {
	var parts []string
	for _, child := range qn.Children {
		if child.Kind == parser.KindIdentifier && child.Token != nil {
			parts = append(parts, child.Token.Literal)
		}
	}
	return strings.Join(parts, ".")
}
