package format

import (
	"io"
	"strings"

	"github.com/dhamidi/avhelper/java"
)

// JavaEncoder writes a class as a Java outline: declarations only, method
// bodies left empty.
type JavaEncoder struct {
	w     io.Writer
	class *java.Class
}

func NewJavaEncoder(w io.Writer) *JavaEncoder {
	return &JavaEncoder{w: w}
}

func (e *JavaEncoder) Encode(class *java.Class) error {
	e.class = class
	text, err := e.MarshalText()
	if err != nil {
		return err
	}
	_, err = e.w.Write(text)
	return err
}

func (e *JavaEncoder) MarshalText() ([]byte, error) {
	var out []byte
	if pkg := e.class.Package; pkg != "" && e.class.IsTopLevel() {
		out = append(out, "package "+pkg+";\n\n"...)
	}
	out = append(out, Render(outline(e.class), DefaultIndent, 0)...)
	out = append(out, '\n')
	return out, nil
}

func outline(c *java.Class) Class {
	decl := Class{
		Annotations: annotationNames(c.Annotations),
		Modifiers:   c.Modifiers,
		Kind:        string(c.Kind),
		Name:        c.Name,
	}
	if c.Kind == java.ClassKindAnnotation {
		decl.Kind = "@interface"
	}
	if len(c.TypeParameters) > 0 {
		decl.Name += "<" + strings.Join(c.TypeParameters, ", ") + ">"
	}
	if c.Kind == java.ClassKindInterface {
		decl.Extends = typeStrings(c.Extends)
	} else {
		if super, ok := c.Superclass(); ok {
			decl.Extends = []string{super.String()}
		}
		decl.Implements = typeStrings(c.Implements)
	}

	for _, m := range c.Methods {
		decl.Members = append(decl.Members, outlineMethod(m))
	}
	for _, n := range c.Nested {
		decl.Members = append(decl.Members, outline(n))
	}
	return decl
}

func outlineMethod(m *java.Method) Method {
	decl := Method{
		Annotations: annotationNames(m.Annotations),
		Modifiers:   m.Modifiers,
		Name:        m.Name,
	}
	if !m.Constructor {
		decl.ReturnType = m.ReturnType.String()
	}
	decl.TypeParameters = m.TypeParameters
	for _, p := range m.Params {
		t := p.Type.String()
		if p.Varargs {
			t += "..."
		}
		decl.Params = append(decl.Params, Param{
			Annotations: annotationNames(p.Annotations),
			Type:        t,
			Name:        p.Name,
		})
	}
	if m.Body != nil {
		decl.Body = []Stmt{}
	}
	return decl
}
