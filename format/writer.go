package format

import (
	"strings"
)

// Member is a declaration that can be placed in a class body.
type Member interface {
	member()
}

// Stmt is a statement in a method body.
type Stmt interface {
	stmt()
}

// Expr is an expression.
type Expr interface {
	expr()
}

// Param is a formal parameter. Annotations and Type are written as given;
// callers are expected to have shortened them already.
type Param struct {
	Annotations []string
	Type        string
	Name        string
}

// Method is a method declaration. A nil Body renders a bodiless declaration
// terminated by a semicolon.
type Method struct {
	Annotations    []string
	Modifiers      []string
	TypeParameters []string
	ReturnType     string
	Name           string
	Params         []Param
	Body           []Stmt
}

// Class is a type declaration with its members. Kind defaults to "class".
type Class struct {
	Annotations []string
	Modifiers   []string
	Kind        string
	Name        string
	Extends     []string
	Implements  []string
	Members     []Member
}

type Return struct {
	Value Expr
}

// New is an instance creation expression.
type New struct {
	Type string
	Args []Expr
}

// Name is a simple or qualified name used as an expression.
type Name string

func (Method) member() {}
func (Class) member()  {}
func (Return) stmt()   {}
func (New) expr()      {}
func (Name) expr()     {}

// Writer renders members as Java source.
type Writer struct {
	sb          strings.Builder
	indent      int
	indentStr   string
	atLineStart bool
}

// NewWriter returns a writer indenting by unit, typically four spaces or a
// tab as detected by DetectIndent.
func NewWriter(unit string) *Writer {
	if unit == "" {
		unit = DefaultIndent
	}
	return &Writer{indentStr: unit, atLineStart: true}
}

// Render renders m with every line indented depth units. The result has no
// trailing newline.
func (w *Writer) Render(m Member, depth int) string {
	w.sb.Reset()
	w.indent = depth
	w.atLineStart = true
	w.printMember(m)
	return strings.TrimSuffix(w.sb.String(), "\n")
}

// Render is shorthand for NewWriter(unit).Render(m, depth).
func Render(m Member, unit string, depth int) string {
	return NewWriter(unit).Render(m, depth)
}

func (w *Writer) printMember(m Member) {
	switch m := m.(type) {
	case Method:
		w.printMethod(m)
	case *Method:
		w.printMethod(*m)
	case Class:
		w.printClass(m)
	case *Class:
		w.printClass(*m)
	}
}

func (w *Writer) printAnnotations(annotations []string) {
	for _, a := range annotations {
		w.writeIndent()
		w.write("@")
		w.write(a)
		w.newline()
	}
}

func (w *Writer) printModifiers(mods []string) {
	for _, mod := range mods {
		w.write(mod)
		w.write(" ")
	}
}

func (w *Writer) printMethod(m Method) {
	w.printAnnotations(m.Annotations)
	w.writeIndent()
	w.printModifiers(m.Modifiers)
	if len(m.TypeParameters) > 0 {
		w.write("<")
		w.write(strings.Join(m.TypeParameters, ", "))
		w.write("> ")
	}
	if m.ReturnType != "" {
		w.write(m.ReturnType)
		w.write(" ")
	}
	w.write(m.Name)
	w.write("(")
	for i, p := range m.Params {
		if i > 0 {
			w.write(", ")
		}
		w.printParam(p)
	}
	w.write(")")

	if m.Body == nil {
		w.write(";")
		w.newline()
		return
	}

	w.write(" {")
	w.newline()
	w.indent++
	for _, s := range m.Body {
		w.printStmt(s)
	}
	w.indent--
	w.writeIndent()
	w.write("}")
	w.newline()
}

func (w *Writer) printParam(p Param) {
	for _, a := range p.Annotations {
		w.write("@")
		w.write(a)
		w.write(" ")
	}
	w.write(p.Type)
	w.write(" ")
	w.write(p.Name)
}

func (w *Writer) printClass(c Class) {
	w.printAnnotations(c.Annotations)
	w.writeIndent()
	w.printModifiers(c.Modifiers)
	kind := c.Kind
	if kind == "" {
		kind = "class"
	}
	w.write(kind)
	w.write(" ")
	w.write(c.Name)
	if len(c.Extends) > 0 {
		w.write(" extends ")
		w.write(strings.Join(c.Extends, ", "))
	}
	if len(c.Implements) > 0 {
		w.write(" implements ")
		w.write(strings.Join(c.Implements, ", "))
	}
	w.write(" {")
	w.newline()

	w.indent++
	for i, m := range c.Members {
		if i > 0 {
			w.newline()
		}
		w.printMember(m)
	}
	w.indent--

	w.writeIndent()
	w.write("}")
	w.newline()
}

func (w *Writer) printStmt(s Stmt) {
	switch s := s.(type) {
	case Return:
		w.writeIndent()
		w.write("return")
		if s.Value != nil {
			w.write(" ")
			w.printExpr(s.Value)
		}
		w.write(";")
		w.newline()
	}
}

func (w *Writer) printExpr(e Expr) {
	switch e := e.(type) {
	case Name:
		w.write(string(e))
	case New:
		w.write("new ")
		w.write(e.Type)
		w.write("(")
		for i, arg := range e.Args {
			if i > 0 {
				w.write(", ")
			}
			w.printExpr(arg)
		}
		w.write(")")
	}
}

func (w *Writer) writeIndent() {
	if !w.atLineStart {
		return
	}
	for i := 0; i < w.indent; i++ {
		w.write(w.indentStr)
	}
}

func (w *Writer) write(s string) {
	w.sb.WriteString(s)
	w.atLineStart = false
}

func (w *Writer) newline() {
	w.sb.WriteByte('\n')
	w.atLineStart = true
}
