// Package autovalue generates builders and create() factories for
// @AutoValue value classes from their abstract accessor methods.
package autovalue

import (
	"strings"

	"github.com/dhamidi/avhelper/java"
	"github.com/dhamidi/avhelper/java/edit"
	"github.com/pkg/errors"
)

// ErrNotApplicable is returned when there is no @AutoValue class with
// accessors to generate for.
var ErrNotApplicable = errors.New("not applicable")

type Mode int

const (
	ModeBuilder Mode = iota
	ModeCreate
)

func (m Mode) String() string {
	if m == ModeCreate {
		return "create"
	}
	return "builder"
}

// Target is a value class together with its collected accessors.
type Target struct {
	File      *java.File
	Class     *java.Class
	Accessors []Accessor
}

// Find returns the target for the caret at offset: the innermost static or
// top-level class around offset, which must be annotated @AutoValue and
// have at least one accessor.
func Find(f *java.File, offset int, lookup Lookup, cfg *Config) (*Target, error) {
	if f.HasErrors() {
		return nil, errors.Wrapf(java.ErrIncomplete, "%s", f.Path)
	}
	c := f.StaticOrTopLevelClassAt(offset)
	if c == nil {
		return nil, errors.Wrapf(ErrNotApplicable, "%s: no class at offset %d", f.Path, offset)
	}
	return newTarget(f, c, lookup, cfg)
}

// FindNamed returns the target for the class with the given name, either its
// name relative to the package ("Outer.Inner") or its simple name.
func FindNamed(f *java.File, name string, lookup Lookup, cfg *Config) (*Target, error) {
	if f.HasErrors() {
		return nil, errors.Wrapf(java.ErrIncomplete, "%s", f.Path)
	}
	for _, c := range f.AllClasses() {
		if c.RelativeName() == name || c.Qualified == name {
			return newTarget(f, c, lookup, cfg)
		}
	}
	for _, c := range f.AllClasses() {
		if c.Name == name {
			return newTarget(f, c, lookup, cfg)
		}
	}
	return nil, errors.Wrapf(ErrNotApplicable, "%s: no class %s", f.Path, name)
}

func newTarget(f *java.File, c *java.Class, lookup Lookup, cfg *Config) (*Target, error) {
	if !IsAutoValue(c, cfg) {
		return nil, errors.Wrapf(ErrNotApplicable, "%s is not an @AutoValue class", c.Qualified)
	}
	accessors := Collect(FromClass(c, lookup), cfg)
	if len(accessors) == 0 {
		return nil, errors.Wrapf(ErrNotApplicable, "%s has no abstract accessors", c.Qualified)
	}
	return &Target{File: f, Class: c, Accessors: accessors}, nil
}

// IsAutoValue reports whether c can be a value class: a top-level or static
// class annotated with cfg.AutoValue. The annotation may also be written by
// its simple name when its package is imported on demand.
func IsAutoValue(c *java.Class, cfg *Config) bool {
	if c.Kind != java.ClassKindClass || (!c.IsTopLevel() && !c.IsStatic()) {
		return false
	}
	if c.HasAnnotation(cfg.AutoValue) {
		return true
	}
	pkg, simple := java.SplitQualified(cfg.AutoValue)
	if c.File == nil || strings.Contains(simple, ".") {
		return false
	}
	for _, a := range c.Annotations {
		if a.Qualified != "" || a.Name != simple {
			continue
		}
		for _, wildcard := range c.File.WildcardPackages() {
			if wildcard == pkg {
				return true
			}
		}
	}
	return false
}

// Generate records the edits for mode and commits them. Nothing is changed
// when generation fails.
func (t *Target) Generate(mode Mode, cfg *Config) (*edit.Result, error) {
	tx := edit.Begin(t.File)

	var err error
	switch mode {
	case ModeCreate:
		err = GenerateCreate(tx, t.Class, t.Accessors, cfg)
	default:
		err = GenerateBuilder(tx, t.Class, t.Accessors, cfg)
	}
	if err != nil {
		tx.Rollback()
		return nil, errors.Wrapf(err, "generate %s for %s", mode, t.Class.Qualified)
	}

	result, err := tx.Commit()
	if err != nil {
		return nil, errors.Wrapf(err, "generate %s for %s", mode, t.Class.Qualified)
	}
	log.Infof("%s: generated %s for %s (%d edits)", t.File.Path, mode, t.Class.Qualified, len(result.Edits))
	return result, nil
}
