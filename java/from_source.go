package java

import (
	"bytes"

	"github.com/dhamidi/avhelper/java/parser"
	"github.com/pkg/errors"
)

// ErrIncomplete is returned for sources that end inside a declaration.
var ErrIncomplete = errors.New("incomplete or invalid syntax")

// File is a parsed compilation unit.
type File struct {
	Path     string
	Source   []byte
	Root     *parser.Node
	Comments []parser.Token
	Package  string
	Imports  []Import
	// Classes holds the top-level declarations in source order.
	Classes []*Class
}

// ParseFile parses source and projects its declarations.
func ParseFile(path string, source []byte) (*File, error) {
	p := parser.ParseCompilationUnit(bytes.NewReader(source), parser.WithFile(path), parser.WithComments())
	root := p.Finish()
	if root == nil {
		return nil, errors.Wrapf(ErrIncomplete, "parse %s", path)
	}

	f := &File{
		Path:     path,
		Source:   source,
		Root:     root,
		Comments: p.Comments(),
	}
	f.Package = packageFromCompilationUnit(root)
	f.Imports = importsFromCompilationUnit(root)

	for _, child := range root.Children {
		if cls := f.declare(child, nil); cls != nil {
			f.Classes = append(f.Classes, cls)
		}
	}
	// Members are projected once every class in the file is known, so that
	// references to nested classes declared later still resolve.
	for _, cls := range f.Classes {
		f.project(cls)
	}
	return f, nil
}

// AllClasses returns every class in the file, outer classes before their
// nested classes.
func (f *File) AllClasses() []*Class {
	var result []*Class
	var walk func([]*Class)
	walk = func(classes []*Class) {
		for _, c := range classes {
			result = append(result, c)
			walk(c.Nested)
		}
	}
	walk(f.Classes)
	return result
}

func (f *File) FindClass(qualified string) *Class {
	for _, c := range f.AllClasses() {
		if c.Qualified == qualified {
			return c
		}
	}
	return nil
}

// HasErrors reports whether the parser recovered from syntax errors.
func (f *File) HasErrors() bool {
	return hasErrorNode(f.Root)
}

func hasErrorNode(n *parser.Node) bool {
	if n.IsError() {
		return true
	}
	for _, child := range n.Children {
		if hasErrorNode(child) {
			return true
		}
	}
	return false
}

func packageFromCompilationUnit(cu *parser.Node) string {
	pkgDecl := cu.FirstChildOfKind(parser.KindPackageDecl)
	if pkgDecl == nil {
		return ""
	}
	qn := pkgDecl.FirstChildOfKind(parser.KindQualifiedName)
	if qn == nil {
		return ""
	}
	return qualifiedNameToString(qn)
}

func importsFromCompilationUnit(cu *parser.Node) []Import {
	var imports []Import
	for _, child := range cu.ChildrenOfKind(parser.KindImportDecl) {
		imp := Import{Node: child}
		for _, ic := range child.Children {
			switch {
			case ic.Kind == parser.KindQualifiedName:
				imp.Name = qualifiedNameToString(ic)
			case ic.TokenLiteral() == "static":
				imp.Static = true
			case ic.TokenLiteral() == "*":
				imp.Wildcard = true
			}
		}
		imports = append(imports, imp)
	}
	return imports
}

var classKinds = map[parser.NodeKind]ClassKind{
	parser.KindClassDecl:      ClassKindClass,
	parser.KindInterfaceDecl:  ClassKindInterface,
	parser.KindEnumDecl:       ClassKindEnum,
	parser.KindRecordDecl:     ClassKindRecord,
	parser.KindAnnotationDecl: ClassKindAnnotation,
}

// declare registers the class declared by node and its nested classes.
// Types are left for project.
func (f *File) declare(node *parser.Node, enclosing *Class) *Class {
	kind, ok := classKinds[node.Kind]
	if !ok || node.Name() == "" {
		return nil
	}
	c := &Class{
		Name:      node.Name(),
		Package:   f.Package,
		Kind:      kind,
		Enclosing: enclosing,
		File:      f,
		Node:      node,
		Body:      node.FirstChildOfKind(parser.KindBlock),
	}
	if enclosing != nil {
		c.Qualified = enclosing.Qualified + "." + c.Name
	} else {
		c.Qualified = qualify(f.Package, c.Name)
	}
	if tp := node.FirstChildOfKind(parser.KindTypeParameters); tp != nil {
		c.TypeParameters = typeParameterNames(tp)
	}
	if c.Body != nil {
		for _, member := range c.Body.Children {
			if nested := f.declare(member, c); nested != nil {
				c.Nested = append(c.Nested, nested)
			}
		}
	}
	return c
}

func (f *File) project(c *Class) {
	vars := c.typeVariables()

	if mods := c.Node.FirstChildOfKind(parser.KindModifiers); mods != nil {
		c.Modifiers, c.Annotations = f.modifiers(mods, c.Enclosing)
	}
	if clause := c.Node.FirstChildOfKind(parser.KindExtendsClause); clause != nil {
		c.Extends = f.typeList(clause, c.Enclosing, vars)
	}
	if clause := c.Node.FirstChildOfKind(parser.KindImplementsClause); clause != nil {
		c.Implements = f.typeList(clause, c.Enclosing, vars)
	}

	if c.Body != nil {
		for _, member := range c.Body.Children {
			switch member.Kind {
			case parser.KindMethodDecl, parser.KindConstructorDecl:
				c.Methods = append(c.Methods, f.method(member, c, vars))
			}
		}
	}
	for _, nested := range c.Nested {
		f.project(nested)
	}
}

func (f *File) method(node *parser.Node, c *Class, classVars []string) *Method {
	m := &Method{
		Name:        node.Name(),
		Constructor: node.Kind == parser.KindConstructorDecl,
		Class:       c,
		Node:        node,
		Body:        node.FirstChildOfKind(parser.KindBlock),
	}
	vars := classVars
	if tp := node.FirstChildOfKind(parser.KindTypeParameters); tp != nil {
		m.TypeParameters = typeParameterNames(tp)
	}
	if mods := node.FirstChildOfKind(parser.KindModifiers); mods != nil {
		m.Modifiers, m.Annotations = f.modifiers(mods, c)
	}
	if m.Modifiers.Has("static") {
		vars = nil
	}
	vars = append(append([]string(nil), m.TypeParameters...), vars...)

	for _, child := range node.Children {
		switch child.Kind {
		case parser.KindType, parser.KindArrayType:
			m.ReturnType = f.typeOf(child, c, vars)
		case parser.KindParameters:
			for _, pn := range child.ChildrenOfKind(parser.KindParameter) {
				m.Params = append(m.Params, f.param(pn, c, vars))
			}
		}
	}
	return m
}

func (f *File) param(node *parser.Node, scope *Class, vars []string) Param {
	p := Param{Name: node.Name()}
	for _, child := range node.Children {
		switch child.Kind {
		case parser.KindModifiers:
			p.Modifiers, p.Annotations = f.modifiers(child, scope)
		case parser.KindType, parser.KindArrayType:
			p.Type = f.typeOf(child, scope, vars)
		case parser.KindIdentifier:
			if child.Token != nil && child.Token.Kind == parser.TokenEllipsis {
				p.Varargs = true
			}
		}
	}
	return p
}

func (f *File) modifiers(node *parser.Node, scope *Class) (Modifiers, []Annotation) {
	var mods Modifiers
	var annotations []Annotation
	for _, child := range node.Children {
		switch child.Kind {
		case parser.KindAnnotation:
			annotations = append(annotations, f.annotation(child, scope))
		case parser.KindIdentifier:
			mods = append(mods, child.TokenLiteral())
		}
	}
	return mods, annotations
}

func (f *File) annotation(node *parser.Node, scope *Class) Annotation {
	a := Annotation{Node: node}
	if qn := node.FirstChildOfKind(parser.KindQualifiedName); qn != nil {
		a.Name = qualifiedNameToString(qn)
	}
	a.Qualified = f.Resolve(a.Name, scope)
	return a
}

func (f *File) typeList(clause *parser.Node, scope *Class, vars []string) []Type {
	var types []Type
	for _, child := range clause.Children {
		if child.Kind == parser.KindType || child.Kind == parser.KindArrayType {
			types = append(types, f.typeOf(child, scope, vars))
		}
	}
	return types
}

// typeOf projects a Type, ArrayType or Wildcard node. Names are resolved
// from scope, the class whose body contains the reference.
func (f *File) typeOf(node *parser.Node, scope *Class, vars []string) Type {
	switch node.Kind {
	case parser.KindArrayType:
		for _, child := range node.Children {
			if child.Kind == parser.KindType || child.Kind == parser.KindArrayType {
				t := f.typeOf(child, scope, vars)
				t.ArrayDepth++
				return t
			}
		}
		return Type{}
	case parser.KindWildcard:
		if len(node.Children) < 2 {
			return Type{Name: "?", Wildcard: WildcardUnbounded}
		}
		bound := f.typeOf(node.Children[1], scope, vars)
		t := Type{Name: "?", Wildcard: WildcardExtends, Bound: &bound}
		if node.Children[0].TokenLiteral() == "super" {
			t.Wildcard = WildcardSuper
		}
		return t
	}

	var t Type
	for _, child := range node.Children {
		switch child.Kind {
		case parser.KindIdentifier:
			t.Name = child.TokenLiteral()
		case parser.KindQualifiedName:
			t.Name = qualify(t.Name, qualifiedNameToString(child))
		case parser.KindTypeArguments:
			t.Args = nil
			for _, arg := range child.Children {
				t.Args = append(t.Args, f.typeOf(arg, scope, vars))
			}
		}
	}

	switch {
	case isPrimitiveName(t.Name):
	case contains(vars, t.Name):
		t.Variable = true
	default:
		t.Qualified = f.Resolve(t.Name, scope)
	}
	return t
}

func typeParameterNames(node *parser.Node) []string {
	var names []string
	for _, tp := range node.ChildrenOfKind(parser.KindTypeParameter) {
		if name := tp.Name(); name != "" {
			names = append(names, name)
		}
	}
	return names
}

func contains(list []string, s string) bool {
	for _, item := range list {
		if item == s {
			return true
		}
	}
	return false
}
