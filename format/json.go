package format

import (
	"encoding/json"
	"io"

	"github.com/dhamidi/avhelper/java"
)

type JSONEncoder struct {
	w     io.Writer
	class *java.Class
}

func NewJSONEncoder(w io.Writer) *JSONEncoder {
	return &JSONEncoder{w: w}
}

func (e *JSONEncoder) Encode(class *java.Class) error {
	e.class = class
	text, err := e.MarshalText()
	if err != nil {
		return err
	}
	if _, err := e.w.Write(text); err != nil {
		return err
	}
	_, err = io.WriteString(e.w, "\n")
	return err
}

func (e *JSONEncoder) MarshalText() ([]byte, error) {
	return json.MarshalIndent(buildClass(e.class), "", "  ")
}

type jsonClass struct {
	Name           string       `json:"name"`
	Qualified      string       `json:"qualified"`
	Package        string       `json:"package,omitempty"`
	Kind           string       `json:"kind"`
	Modifiers      []string     `json:"modifiers,omitempty"`
	Annotations    []string     `json:"annotations,omitempty"`
	TypeParameters []string     `json:"typeParameters,omitempty"`
	SuperClass     string       `json:"superClass,omitempty"`
	Interfaces     []string     `json:"interfaces,omitempty"`
	Methods        []jsonMethod `json:"methods,omitempty"`
	Nested         []jsonClass  `json:"nested,omitempty"`
}

type jsonMethod struct {
	Name        string          `json:"name"`
	ReturnType  *jsonType       `json:"returnType,omitempty"`
	Parameters  []jsonParameter `json:"parameters,omitempty"`
	Modifiers   []string        `json:"modifiers,omitempty"`
	Annotations []string        `json:"annotations,omitempty"`
	Abstract    bool            `json:"abstract,omitempty"`
	Constructor bool            `json:"constructor,omitempty"`
}

type jsonParameter struct {
	Name        string   `json:"name"`
	Type        jsonType `json:"type"`
	Varargs     bool     `json:"varargs,omitempty"`
	Annotations []string `json:"annotations,omitempty"`
}

type jsonType struct {
	Name      string `json:"name"`
	Qualified string `json:"qualified,omitempty"`
}

func buildClass(c *java.Class) jsonClass {
	data := jsonClass{
		Name:           c.Name,
		Qualified:      c.Qualified,
		Package:        c.Package,
		Kind:           string(c.Kind),
		Modifiers:      c.Modifiers,
		Annotations:    annotationNames(c.Annotations),
		TypeParameters: c.TypeParameters,
		Interfaces:     typeStrings(c.Interfaces()),
	}
	if super, ok := c.Superclass(); ok {
		data.SuperClass = super.String()
	}
	for _, m := range c.Methods {
		data.Methods = append(data.Methods, buildMethod(m))
	}
	for _, n := range c.Nested {
		data.Nested = append(data.Nested, buildClass(n))
	}
	return data
}

func buildMethod(m *java.Method) jsonMethod {
	data := jsonMethod{
		Name:        m.Name,
		Modifiers:   m.Modifiers,
		Annotations: annotationNames(m.Annotations),
		Abstract:    m.IsAbstract(),
		Constructor: m.Constructor,
	}
	if !m.Constructor {
		data.ReturnType = &jsonType{Name: m.ReturnType.String(), Qualified: m.ReturnType.Qualified}
	}
	for _, p := range m.Params {
		data.Parameters = append(data.Parameters, jsonParameter{
			Name:        p.Name,
			Type:        jsonType{Name: p.Type.String(), Qualified: p.Type.Qualified},
			Varargs:     p.Varargs,
			Annotations: annotationNames(p.Annotations),
		})
	}
	return data
}
