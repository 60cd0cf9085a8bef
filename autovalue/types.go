package autovalue

import (
	"github.com/dhamidi/avhelper/java"
)

// Type is a class or interface as seen by Collect.
type Type interface {
	QualifiedName() string
	TypeParameters() []string
	// Methods returns the directly declared methods.
	Methods() []Method
	// Supertypes returns the direct supertypes that could be found:
	// interfaces in declaration order, then the superclass.
	Supertypes() []Supertype
}

type Method interface {
	Name() string
	ReturnType() java.Type
	ParameterCount() int
	IsAbstract() bool
	IsConstructor() bool
	Annotations() []java.Annotation
}

// Supertype is a direct supertype together with the type arguments it is
// referenced with.
type Supertype struct {
	Type Type
	Args []java.Type
}

// Lookup finds the class a reference written in a class refers to.
type Lookup interface {
	LookupType(ref java.Type, from *java.Class) *java.Class
}

// Files is a Lookup over a fixed set of parsed files.
type Files []*java.File

func (fs Files) LookupType(ref java.Type, from *java.Class) *java.Class {
	return from.LookupType(ref, func(qualified string) *java.Class {
		for _, f := range fs {
			if c := f.FindClass(qualified); c != nil {
				return c
			}
		}
		return nil
	})
}

// FromClass adapts a parsed class. Supertypes are looked up through lookup;
// a nil lookup only sees classes of c's own file.
func FromClass(c *java.Class, lookup Lookup) Type {
	if lookup == nil {
		lookup = Files{c.File}
	}
	return &sourceType{class: c, lookup: lookup}
}

type sourceType struct {
	class  *java.Class
	lookup Lookup
}

func (t *sourceType) QualifiedName() string {
	return t.class.Qualified
}

func (t *sourceType) TypeParameters() []string {
	return t.class.TypeParameters
}

func (t *sourceType) Methods() []Method {
	methods := make([]Method, len(t.class.Methods))
	for i, m := range t.class.Methods {
		methods[i] = sourceMethod{m}
	}
	return methods
}

func (t *sourceType) Supertypes() []Supertype {
	refs := t.class.Interfaces()
	if super, ok := t.class.Superclass(); ok {
		refs = append(refs[:len(refs):len(refs)], super)
	}

	var result []Supertype
	for _, ref := range refs {
		found := t.lookup.LookupType(ref, t.class)
		if found == nil {
			log.Debugf("%s: supertype %s not found", t.class.Qualified, ref)
			continue
		}
		result = append(result, Supertype{
			Type: &sourceType{class: found, lookup: t.lookup},
			Args: ref.Args,
		})
	}
	return result
}

type sourceMethod struct {
	m *java.Method
}

func (m sourceMethod) Name() string                   { return m.m.Name }
func (m sourceMethod) ReturnType() java.Type          { return m.m.ReturnType }
func (m sourceMethod) ParameterCount() int            { return len(m.m.Params) }
func (m sourceMethod) IsAbstract() bool               { return m.m.IsAbstract() }
func (m sourceMethod) IsConstructor() bool            { return m.m.Constructor }
func (m sourceMethod) Annotations() []java.Annotation { return m.m.Annotations }
