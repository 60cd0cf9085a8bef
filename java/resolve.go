package java

import (
	"strings"
	"unicode"
)

var javaLangTypes = map[string]bool{
	"Object": true, "String": true, "Class": true, "System": true,
	"Throwable": true, "Exception": true, "RuntimeException": true, "Error": true,
	"Integer": true, "Long": true, "Short": true, "Byte": true,
	"Float": true, "Double": true, "Character": true, "Boolean": true,
	"Number": true, "Comparable": true, "CharSequence": true,
	"Iterable": true, "Cloneable": true, "Runnable": true, "Void": true,
	"Thread": true, "StringBuilder": true, "StringBuffer": true,
	"Math": true, "Enum": true, "Record": true,
	"Override": true, "Deprecated": true, "SuppressWarnings": true, "FunctionalInterface": true,
	"SafeVarargs": true,
}

// Resolve returns the qualified name a type name written inside scope refers
// to. scope may be nil for names written outside any class body. Lookup
// order: the scope and its enclosing classes with their nested classes, the
// file's top-level classes, single-type imports, java.lang, and finally the
// file's own package. When the file has wildcard imports a name found by none
// of the declarations could come from either, and Resolve returns "".
func (f *File) Resolve(name string, scope *Class) string {
	if name == "" || isPrimitiveName(name) {
		return ""
	}

	if i := strings.IndexByte(name, '.'); i >= 0 {
		head := name[:i]
		if !startsUpper(head) {
			return name
		}
		if outer := f.Resolve(head, scope); outer != "" {
			return outer + name[i:]
		}
		return ""
	}

	if qualified, ok := f.Declared(name, scope); ok {
		return qualified
	}
	if len(f.WildcardPackages()) > 0 {
		return ""
	}
	return qualify(f.Package, name)
}

// Declared resolves a simple name against what the file itself declares or
// imports by name: classes in scope, top-level classes, single-type imports
// and java.lang.
func (f *File) Declared(name string, scope *Class) (string, bool) {
	for c := scope; c != nil; c = c.Enclosing {
		if c.Name == name {
			return c.Qualified, true
		}
		if n := c.NestedClass(name); n != nil {
			return n.Qualified, true
		}
	}

	for _, c := range f.Classes {
		if c.Name == name {
			return c.Qualified, true
		}
	}

	if imp, ok := f.SingleImport(name); ok {
		return imp.Name, true
	}

	if javaLangTypes[name] {
		return "java.lang." + name, true
	}
	return "", false
}

// SingleImport returns the single-type import declaring name.
func (f *File) SingleImport(name string) (Import, bool) {
	for _, imp := range f.Imports {
		if !imp.Static && imp.SimpleName() == name {
			return imp, true
		}
	}
	return Import{}, false
}

// WildcardPackages returns the packages and classes imported on demand.
func (f *File) WildcardPackages() []string {
	var result []string
	for _, imp := range f.Imports {
		if imp.Wildcard && !imp.Static {
			result = append(result, imp.Name)
		}
	}
	return result
}

// SplitQualified splits a qualified class name into its package and its
// name within the package. The first segment starting with an upper case
// letter is taken as the outermost class.
func SplitQualified(qualified string) (pkg, relative string) {
	parts := strings.Split(qualified, ".")
	for i, part := range parts {
		if startsUpper(part) {
			return strings.Join(parts[:i], "."), strings.Join(parts[i:], ".")
		}
	}
	if len(parts) == 1 {
		return "", qualified
	}
	return strings.Join(parts[:len(parts)-1], "."), parts[len(parts)-1]
}

func startsUpper(s string) bool {
	for _, r := range s {
		return unicode.IsUpper(r)
	}
	return false
}
