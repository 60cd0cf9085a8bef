package autovalue

import (
	"strings"

	"github.com/dhamidi/avhelper/format"
	"github.com/dhamidi/avhelper/java"
	"github.com/dhamidi/avhelper/java/edit"
)

type generator struct {
	tx     *edit.Tx
	cfg    *Config
	target *java.Class
	props  []string
}

func newGenerator(tx *edit.Tx, target *java.Class, accessors []Accessor, cfg *Config) *generator {
	return &generator{
		tx:     tx,
		cfg:    cfg,
		target: target,
		props:  PropertyNames(accessors, cfg),
	}
}

// GenerateBuilder records the edits creating or updating the builder of
// target: a static builder() factory on target, and a nested builder class
// with one setter per accessor and build(). Builder methods that no longer
// correspond to an accessor are removed.
func GenerateBuilder(tx *edit.Tx, target *java.Class, accessors []Accessor, cfg *Config) error {
	g := newGenerator(tx, target, accessors, cfg)
	builder := target.NestedClass(cfg.BuilderName)
	builderType := cfg.BuilderName + g.typeArguments()

	factory := format.Method{
		Annotations:    []string{g.reference(cfg.NonNull, target)},
		Modifiers:      []string{"public", "static"},
		TypeParameters: target.TypeParameters,
		ReturnType:     builderType,
		Name:           "builder",
		Body: []format.Stmt{
			format.Return{Value: format.New{Type: ImplementationName(target) + "." + cfg.BuilderName + g.diamond()}},
		},
	}
	if err := g.upsert(target, factory, java.Signature("builder", nil), false); err != nil {
		return err
	}

	scope := target
	if builder != nil {
		scope = builder
	}
	nonNull := g.reference(cfg.NonNull, scope)

	type member struct {
		method    format.Method
		signature string
	}
	var members []member
	keep := map[string]bool{"build": true}
	for i, acc := range accessors {
		name := SetterName(g.props[i], cfg)
		keep[name] = true
		members = append(members, member{
			method: format.Method{
				Annotations: []string{nonNull},
				Modifiers:   []string{"public", "abstract"},
				ReturnType:  builderType,
				Name:        name,
				Params:      []format.Param{g.param(acc, g.props[i], scope)},
			},
			signature: java.Signature(name, []java.Type{acc.Type}),
		})
	}
	members = append(members, member{
		method: format.Method{
			Annotations: []string{nonNull},
			Modifiers:   []string{"public", "abstract"},
			ReturnType:  target.Name + g.typeArguments(),
			Name:        "build",
		},
		signature: java.Signature("build", nil),
	})

	if builder == nil {
		class := format.Class{
			Annotations: []string{g.reference(cfg.BuilderAnnotation, target)},
			Modifiers:   []string{"public", "abstract", "static"},
			Name:        builderType,
		}
		for _, m := range members {
			class.Members = append(class.Members, m.method)
		}
		log.Debugf("creating %s.%s", target.Qualified, cfg.BuilderName)
		return tx.InsertMember(target, tx.Render(class, target))
	}

	for _, m := range members {
		if err := g.upsert(builder, m.method, m.signature, true); err != nil {
			return err
		}
	}
	for _, m := range builder.Methods {
		if m.Constructor || keep[m.Name] {
			continue
		}
		log.Debugf("removing %s.%s", builder.Qualified, m.Signature())
		if err := tx.DeleteMethod(m); err != nil {
			return err
		}
	}
	return nil
}

// GenerateCreate records the edits creating or updating the static create()
// factory of target, taking one parameter per accessor.
func GenerateCreate(tx *edit.Tx, target *java.Class, accessors []Accessor, cfg *Config) error {
	g := newGenerator(tx, target, accessors, cfg)
	impl := ImplementationName(target)

	create := format.Method{
		Annotations:    []string{g.reference(cfg.NonNull, target)},
		Modifiers:      []string{"public", "static"},
		TypeParameters: target.TypeParameters,
		ReturnType:     target.Name + g.typeArguments(),
		Name:           "create",
	}
	var types []java.Type
	var args []format.Expr
	for i, acc := range accessors {
		create.Params = append(create.Params, g.param(acc, g.props[i], target))
		types = append(types, acc.Type)
		args = append(args, format.Name(g.props[i]))
	}
	create.Body = []format.Stmt{
		format.Return{Value: format.New{Type: impl + g.diamond(), Args: args}},
	}

	signature := java.Signature("create", types)
	if existing := findBySignature(target, signature); existing == nil {
		if previous := previousCreate(target, impl); previous != nil {
			log.Debugf("replacing %s.%s", target.Qualified, previous.Signature())
			return tx.ReplaceNode(previous.Node, tx.Render(create, target))
		}
	}
	return g.upsert(target, create, signature, false)
}

// previousCreate finds a static create method whose body instantiates impl.
func previousCreate(c *java.Class, impl string) *java.Method {
	for _, m := range c.MethodsNamed("create") {
		if !m.IsStatic() || m.Body == nil {
			continue
		}
		tokens := m.BodyTokens()
		for i := 0; i+1 < len(tokens); i++ {
			if tokens[i].Literal == "new" && tokens[i+1].Literal == impl {
				return m
			}
		}
	}
	return nil
}

// upsert replaces the method of container with the same signature, or
// appends m to container. With byName a single method of the same name but
// a different signature is replaced as well.
func (g *generator) upsert(container *java.Class, m format.Method, signature string, byName bool) error {
	text := g.tx.Render(m, container)
	existing := findBySignature(container, signature)
	if existing == nil && byName {
		var named []*java.Method
		for _, candidate := range container.MethodsNamed(m.Name) {
			if !candidate.Constructor {
				named = append(named, candidate)
			}
		}
		if len(named) == 1 {
			existing = named[0]
		}
	}
	if existing != nil {
		return g.tx.ReplaceNode(existing.Node, text)
	}
	return g.tx.InsertMember(container, text)
}

func findBySignature(c *java.Class, signature string) *java.Method {
	for _, m := range c.Methods {
		if !m.Constructor && m.Signature() == signature {
			return m
		}
	}
	return nil
}

// param builds the parameter for an accessor. The accessor's nullness
// annotation is carried over unless the type is primitive.
func (g *generator) param(acc Accessor, name string, scope *java.Class) format.Param {
	p := format.Param{
		Type: g.tx.Type(acc.Type, scope),
		Name: name,
	}
	if acc.Nullability != Unannotated && !acc.Type.IsPrimitive() {
		p.Annotations = []string{g.tx.Reference(acc.Annotation.Qualified, acc.Annotation.Name, scope)}
	}
	return p
}

func (g *generator) reference(qualified string, scope *java.Class) string {
	return g.tx.Reference(qualified, "", scope)
}

func (g *generator) typeArguments() string {
	if len(g.target.TypeParameters) == 0 {
		return ""
	}
	return "<" + strings.Join(g.target.TypeParameters, ", ") + ">"
}

func (g *generator) diamond() string {
	if len(g.target.TypeParameters) == 0 {
		return ""
	}
	return "<>"
}
