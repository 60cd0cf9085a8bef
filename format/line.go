package format

import (
	"fmt"
	"io"
	"strings"

	"github.com/dhamidi/avhelper/java"
)

// LineEncoder writes one tab separated line per class and method, nested
// classes following their enclosing class.
type LineEncoder struct {
	w     io.Writer
	class *java.Class
}

func NewLineEncoder(w io.Writer) *LineEncoder {
	return &LineEncoder{w: w}
}

func (e *LineEncoder) Encode(class *java.Class) error {
	e.class = class
	text, err := e.MarshalText()
	if err != nil {
		return err
	}
	_, err = e.w.Write(text)
	return err
}

func (e *LineEncoder) MarshalText() ([]byte, error) {
	var sb strings.Builder
	writeClassLines(&sb, e.class)
	return []byte(sb.String()), nil
}

func writeClassLines(sb *strings.Builder, c *java.Class) {
	fmt.Fprintf(sb, "%s\t%s\t%s\n", c.Kind, c.Qualified, joinOrDash(c.Modifiers))

	for _, m := range c.Methods {
		ret := m.ReturnType.String()
		if m.Constructor {
			ret = "-"
		}
		mods := append([]string(nil), m.Modifiers...)
		if m.IsAbstract() && !m.Modifiers.Has("abstract") {
			mods = append(mods, "abstract")
		}
		fmt.Fprintf(sb, "method\t%s\t%s\t%s\t%s\n",
			m.Name,
			ret,
			parametersStr(m.Params),
			joinOrDash(mods),
		)
	}

	for _, n := range c.Nested {
		writeClassLines(sb, n)
	}
}

func parametersStr(params []java.Param) string {
	if len(params) == 0 {
		return "-"
	}
	parts := make([]string, len(params))
	for i, p := range params {
		t := p.Type.String()
		if p.Varargs {
			t += "..."
		}
		parts[i] = t + " " + p.Name
	}
	return strings.Join(parts, ",")
}

func joinOrDash(items []string) string {
	if len(items) == 0 {
		return "-"
	}
	return strings.Join(items, ",")
}
