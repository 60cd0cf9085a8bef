// Package format renders Java declarations: generated members as source text
// through Writer, and parsed classes as JSON, tab separated lines or a Java
// outline through the encoders.
package format

import (
	"encoding"
	"io"

	"github.com/dhamidi/avhelper/java"
	"github.com/pkg/errors"
)

type Encoder interface {
	encoding.TextMarshaler
	Encode(class *java.Class) error
}

// NewEncoder returns the encoder for name: "json", "line" or "java".
func NewEncoder(name string, w io.Writer) (Encoder, error) {
	switch name {
	case "json":
		return NewJSONEncoder(w), nil
	case "line":
		return NewLineEncoder(w), nil
	case "java":
		return NewJavaEncoder(w), nil
	}
	return nil, errors.Errorf("unknown format %q", name)
}

func annotationNames(annotations []java.Annotation) []string {
	var names []string
	for _, a := range annotations {
		names = append(names, a.Name)
	}
	return names
}

func typeStrings(types []java.Type) []string {
	var result []string
	for _, t := range types {
		result = append(result, t.String())
	}
	return result
}
