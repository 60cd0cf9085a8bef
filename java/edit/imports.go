package edit

import (
	"strings"

	"github.com/dhamidi/avhelper/java"
	"github.com/dhamidi/avhelper/java/parser"
)

// Reference returns the text to write for the class qualified inside scope,
// importing it when that makes the short name available. written is the
// name the reference had where it came from; it is kept when it already
// means the same class here. Names that would clash with a declaration or
// another import stay fully qualified.
func (tx *Tx) Reference(qualified, written string, scope *java.Class) string {
	if qualified == "" {
		return written
	}
	if written != "" && !packageQualified(written) && tx.file.Resolve(written, scope) == qualified {
		return written
	}

	pkg, relative := java.SplitQualified(qualified)
	simple := relative
	if i := strings.LastIndexByte(relative, '.'); i >= 0 {
		simple = relative[i+1:]
	}
	if got, ok := tx.file.Declared(simple, scope); ok && got == qualified {
		return simple
	}

	outer, rest := relative, ""
	if i := strings.IndexByte(relative, '.'); i >= 0 {
		outer, rest = relative[:i], relative[i:]
	}
	outerQualified := outer
	if pkg != "" {
		outerQualified = pkg + "." + outer
	}

	if got, ok := tx.file.Declared(outer, scope); ok {
		if got == outerQualified {
			return outer + rest
		}
		return qualified
	}
	if pending, ok := tx.imports[outer]; ok {
		if pending == outerQualified {
			return outer + rest
		}
		return qualified
	}
	if pkg == "" || pkg == tx.file.Package {
		return outer + rest
	}
	for _, wildcard := range tx.file.WildcardPackages() {
		if wildcard == pkg {
			return outer + rest
		}
	}

	tx.addImport(outer, outerQualified)
	return outer + rest
}

// packageQualified reports whether name starts with a package, as in
// "java.util.List".
func packageQualified(name string) bool {
	i := strings.IndexByte(name, '.')
	return i > 0 && name[0] >= 'a' && name[0] <= 'z'
}

// Type renders t for use inside scope, shortening every class reference.
func (tx *Tx) Type(t java.Type, scope *java.Class) string {
	return t.Format(func(ref java.Type) string {
		return tx.Reference(ref.Qualified, ref.Name, scope)
	})
}

// AddImport adds a single-type import unless the file already imports the
// class.
func (tx *Tx) AddImport(qualified string) {
	simple := qualified[strings.LastIndexByte(qualified, '.')+1:]
	if _, ok := tx.file.SingleImport(simple); ok {
		return
	}
	tx.addImport(simple, qualified)
}

func (tx *Tx) addImport(simple, qualified string) {
	if _, ok := tx.imports[simple]; ok {
		return
	}
	tx.imports[simple] = qualified
	tx.added = append(tx.added, qualified)
}

// importEdit inserts the pending imports after the last import, or after the
// package declaration, or at the top of the file.
func (tx *Tx) importEdit() (Edit, bool) {
	if len(tx.added) == 0 {
		return Edit{}, false
	}
	var lines strings.Builder
	for _, name := range tx.added {
		lines.WriteString("import ")
		lines.WriteString(name)
		lines.WriteString(";\n")
	}

	if n := len(tx.file.Imports); n > 0 {
		offset := lineEnd(tx.file.Source, tx.file.Imports[n-1].Node.Span.End.Offset)
		return Edit{Start: offset, End: offset, Text: lines.String()}, true
	}
	for _, child := range tx.file.Root.Children {
		if child.Kind == parser.KindPackageDecl {
			offset := lineEnd(tx.file.Source, child.Span.End.Offset)
			return Edit{Start: offset, End: offset, Text: "\n" + lines.String()}, true
		}
	}
	return Edit{Start: 0, End: 0, Text: lines.String() + "\n"}, true
}

// lineEnd returns the offset just past the newline ending the line that
// contains offset.
func lineEnd(src []byte, offset int) int {
	for offset < len(src) && src[offset] != '\n' {
		offset++
	}
	if offset < len(src) {
		offset++
	}
	return offset
}
