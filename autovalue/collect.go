package autovalue

import (
	"github.com/dhamidi/avhelper/java"
)

type Nullability int

const (
	Unannotated Nullability = iota
	Nullable
	NonNull
)

func (n Nullability) String() string {
	switch n {
	case Nullable:
		return "nullable"
	case NonNull:
		return "nonnull"
	}
	return "-"
}

var (
	simpleNullable = []string{"Nullable", "CheckForNull"}
	simpleNonNull  = []string{"NonNull", "Nonnull", "NotNull"}
)

// Accessor is an abstract property method of a value class.
type Accessor struct {
	Name string
	// Type is the return type in terms of the class accessors were
	// collected for.
	Type        java.Type
	Nullability Nullability
	// Annotation is the annotation Nullability was derived from.
	Annotation java.Annotation
	// DeclaredIn is the qualified name of the declaring type.
	DeclaredIn string
}

type pending struct {
	t        Type
	bindings map[string]java.Type
}

// Collect returns the accessors of root and its supertypes: abstract methods
// without parameters, in breadth-first order starting at root. When several
// types declare an accessor with the same name the one closest to root wins.
// Each type is visited once even when it is reachable along several paths.
func Collect(root Type, cfg *Config) []Accessor {
	accessors := []Accessor{}
	seen := map[string]bool{}
	visited := map[string]bool{root.QualifiedName(): true}
	queue := []pending{{t: root}}

	for len(queue) > 0 {
		cur := queue[0]
		queue = queue[1:]

		for _, m := range cur.t.Methods() {
			if !m.IsAbstract() || m.IsConstructor() || m.ParameterCount() != 0 {
				continue
			}
			if seen[m.Name()] {
				continue
			}
			seen[m.Name()] = true

			acc := Accessor{
				Name:       m.Name(),
				Type:       m.ReturnType().Substitute(cur.bindings),
				DeclaredIn: cur.t.QualifiedName(),
			}
			acc.Nullability, acc.Annotation = cfg.nullability(m.Annotations())
			accessors = append(accessors, acc)
		}

		for _, super := range cur.t.Supertypes() {
			name := super.Type.QualifiedName()
			if visited[name] {
				continue
			}
			visited[name] = true
			queue = append(queue, pending{
				t:        super.Type,
				bindings: bind(super.Type.TypeParameters(), super.Args, cur.bindings),
			})
		}
	}

	log.Debugf("collected %d accessors for %s", len(accessors), root.QualifiedName())
	return accessors
}

// bind maps the type parameters of a supertype to the arguments it is
// referenced with, expressed through outer. Raw references bind nothing.
func bind(params []string, args []java.Type, outer map[string]java.Type) map[string]java.Type {
	if len(args) == 0 || len(args) != len(params) {
		return nil
	}
	bindings := make(map[string]java.Type, len(params))
	for i, p := range params {
		bindings[p] = args[i].Substitute(outer)
	}
	return bindings
}

// nullability classifies annotations. Nullable wins over non-null.
func (c *Config) nullability(annotations []java.Annotation) (Nullability, java.Annotation) {
	var nonNull *java.Annotation
	for i, a := range annotations {
		if matches(a, c.NullableAnnotations, simpleNullable) {
			return Nullable, a
		}
		if nonNull == nil && matches(a, c.NonNullAnnotations, simpleNonNull) {
			nonNull = &annotations[i]
		}
	}
	if nonNull != nil {
		return NonNull, *nonNull
	}
	return Unannotated, java.Annotation{}
}

func matches(a java.Annotation, qualified, simple []string) bool {
	if a.Qualified != "" && contains(qualified, a.Qualified) {
		return true
	}
	return contains(simple, a.SimpleName())
}
