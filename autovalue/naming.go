package autovalue

import (
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/dhamidi/avhelper/java"
)

// ImplementationName returns the name of the class AutoValue generates for
// c: AutoValue_ followed by the names of c and its enclosing classes,
// outermost first, joined by underscores.
func ImplementationName(c *java.Class) string {
	return "AutoValue_" + strings.ReplaceAll(c.RelativeName(), ".", "_")
}

// PropertyNames returns the property name of each accessor. With
// StripAccessorPrefixes set and every accessor named getX() or, for
// booleans, isX(), the prefix is dropped, unless two accessors would then
// share a property name.
func PropertyNames(accessors []Accessor, cfg *Config) []string {
	names := make([]string, len(accessors))
	for i, acc := range accessors {
		names[i] = acc.Name
	}
	if !cfg.StripAccessorPrefixes || len(accessors) == 0 {
		return names
	}

	stripped := make([]string, len(accessors))
	seen := make(map[string]bool, len(accessors))
	for i, acc := range accessors {
		rest, ok := trimAccessorPrefix(acc)
		if !ok {
			return names
		}
		stripped[i] = decapitalize(rest)
		if seen[stripped[i]] {
			return names
		}
		seen[stripped[i]] = true
	}
	return stripped
}

func trimAccessorPrefix(acc Accessor) (string, bool) {
	if rest := strings.TrimPrefix(acc.Name, "get"); rest != acc.Name && startsUpper(rest) {
		return rest, true
	}
	if acc.Type.Name == "boolean" && acc.Type.ArrayDepth == 0 {
		if rest := strings.TrimPrefix(acc.Name, "is"); rest != acc.Name && startsUpper(rest) {
			return rest, true
		}
	}
	return "", false
}

// decapitalize lowers the first letter of s unless its first two letters
// are both upper case, so getURL gives URL and getUrl gives url.
func decapitalize(s string) string {
	r, size := utf8.DecodeRuneInString(s)
	if size == 0 {
		return s
	}
	if next, _ := utf8.DecodeRuneInString(s[size:]); unicode.IsUpper(r) && unicode.IsUpper(next) {
		return s
	}
	return string(unicode.ToLower(r)) + s[size:]
}

func capitalize(s string) string {
	r, size := utf8.DecodeRuneInString(s)
	if size == 0 {
		return s
	}
	return string(unicode.ToUpper(r)) + s[size:]
}

func startsUpper(s string) bool {
	r, _ := utf8.DecodeRuneInString(s)
	return unicode.IsUpper(r)
}

// SetterName returns the builder setter for property.
func SetterName(property string, cfg *Config) string {
	if cfg.SetterPrefix {
		return "set" + capitalize(property)
	}
	return property
}
