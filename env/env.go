// Package env loads the environment a palette searches in from YAML: nested
// scopes of typed members, instance classes, insertion targets and the
// expected value type.
package env

import (
	"bytes"
	_ "embed"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/dhamidi/palette/model"
	"github.com/dhamidi/palette/search"
	"github.com/tliron/commonlog"
	"gopkg.in/yaml.v3"
)

//go:embed default.yaml
var defaultYAML []byte

var ErrUnknownType = errors.New("unknown type")

var log = commonlog.GetLogger("palette.env")

type Environment struct {
	// Scopes are listed outermost first; each is the parent of the next.
	Scopes  []*model.MemberScope
	Classes map[string]*model.Class
	Targets []model.Target
	Expect  model.Type
}

// Search returns the view of e a search session works with.
func (e *Environment) Search() search.Environment {
	var scopes []model.Scope
	if n := len(e.Scopes); n > 0 {
		scopes = []model.Scope{e.Scopes[n-1]}
	}
	return search.Environment{
		Scopes:  scopes,
		Targets: e.Targets,
		Expect:  e.Expect,
	}
}

// Members lists every visible member, innermost scope first, without the
// ones shadowed by an inner scope.
func (e *Environment) Members() []*model.Member {
	var members []*model.Member
	seen := make(map[string]bool)
	for i := len(e.Scopes) - 1; i >= 0; i-- {
		for _, m := range e.Scopes[i].Members() {
			if seen[m.Name] {
				continue
			}
			seen[m.Name] = true
			members = append(members, m)
		}
	}
	return members
}

// Type resolves a primitive or class name.
func (e *Environment) Type(name string) (model.Type, error) {
	b := &builder{classes: e.Classes}
	return b.typeOf(name)
}

func Load(path string) (*Environment, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open environment: %w", err)
	}
	defer f.Close()

	e, err := Parse(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	log.Infof("loaded %d scopes and %d classes from %s", len(e.Scopes), len(e.Classes), path)
	return e, nil
}

// Default returns the built-in environment.
func Default() (*Environment, error) {
	return Parse(bytes.NewReader(defaultYAML))
}

func Parse(r io.Reader) (*Environment, error) {
	var doc document
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&doc); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("decode environment: %w", err)
	}

	b := &builder{classes: make(map[string]*model.Class)}
	return b.build(&doc)
}

type document struct {
	Classes []classDoc  `yaml:"classes"`
	Scopes  []scopeDoc  `yaml:"scopes"`
	Targets []targetDoc `yaml:"targets"`
	Expect  string      `yaml:"expect"`
}

type classDoc struct {
	Name    string      `yaml:"name"`
	Super   string      `yaml:"super"`
	Members []memberDoc `yaml:"members"`
}

type scopeDoc struct {
	Members []memberDoc `yaml:"members"`
}

type memberDoc struct {
	Name        string        `yaml:"name"`
	Type        string        `yaml:"type"`
	Doc         string        `yaml:"doc"`
	Function    *signatureDoc `yaml:"function"`
	Constructor *signatureDoc `yaml:"constructor"`
	Members     []memberDoc   `yaml:"members"`
}

type signatureDoc struct {
	Params          []paramDoc          `yaml:"params"`
	Returns         string              `yaml:"returns"`
	Autocompletions []autocompletionDoc `yaml:"autocompletions"`
}

type paramDoc struct {
	Name     string `yaml:"name"`
	Type     string `yaml:"type"`
	Optional bool   `yaml:"optional"`
}

type autocompletionDoc struct {
	Args  []yaml.Node `yaml:"args"`
	Score float64     `yaml:"score"`
}

type targetDoc struct {
	Name   string `yaml:"name"`
	Offset int    `yaml:"offset"`
	Length int    `yaml:"length"`
	Expect string `yaml:"expect"`
}

type builder struct {
	classes map[string]*model.Class
}

func (b *builder) build(doc *document) (*Environment, error) {
	// Classes are declared before anything refers to them, so members may
	// name any class regardless of order.
	for _, c := range doc.Classes {
		if _, ok := b.classes[c.Name]; ok {
			return nil, fmt.Errorf("class %s declared twice", c.Name)
		}
		b.classes[c.Name] = model.NewClass(c.Name, nil)
	}
	docs := make(map[string]classDoc)
	for _, c := range doc.Classes {
		docs[c.Name] = c
	}
	defined := make(map[string]bool)
	for _, c := range doc.Classes {
		if err := b.defineClass(c.Name, docs, defined, nil); err != nil {
			return nil, err
		}
	}

	e := &Environment{Classes: b.classes}
	var parent model.Scope
	for i, s := range doc.Scopes {
		members, err := b.members(s.Members)
		if err != nil {
			return nil, fmt.Errorf("scope %d: %w", i, err)
		}
		scope := model.NewScope(parent, members...)
		e.Scopes = append(e.Scopes, scope)
		parent = scope
	}

	for _, t := range doc.Targets {
		expect, err := b.optionalType(t.Expect)
		if err != nil {
			return nil, fmt.Errorf("target %s: %w", t.Name, err)
		}
		e.Targets = append(e.Targets, model.Target{Name: t.Name, Offset: t.Offset, Length: t.Length, Expect: expect})
	}

	expect, err := b.optionalType(doc.Expect)
	if err != nil {
		return nil, fmt.Errorf("expect: %w", err)
	}
	e.Expect = expect
	return e, nil
}

// defineClass attaches the members of class name after those of its
// superclasses, so inherited members are visible through the scope chain.
func (b *builder) defineClass(name string, docs map[string]classDoc, defined map[string]bool, path []string) error {
	if defined[name] {
		return nil
	}
	for _, p := range path {
		if p == name {
			return fmt.Errorf("class %s inherits from itself", name)
		}
	}

	c := docs[name]
	class := b.classes[name]
	var parent model.Scope
	if c.Super != "" {
		super, ok := b.classes[c.Super]
		if !ok {
			return fmt.Errorf("class %s: super %q: %w", name, c.Super, ErrUnknownType)
		}
		if err := b.defineClass(c.Super, docs, defined, append(path, name)); err != nil {
			return err
		}
		class.Super = super
		parent = super.Members()
	}

	members, err := b.members(c.Members)
	if err != nil {
		return fmt.Errorf("class %s: %w", name, err)
	}
	class.SetMembers(model.NewScope(parent, members...))
	defined[name] = true
	return nil
}

func (b *builder) members(docs []memberDoc) ([]*model.Member, error) {
	var members []*model.Member
	for _, d := range docs {
		m, err := b.member(d)
		if err != nil {
			return nil, fmt.Errorf("member %s: %w", d.Name, err)
		}
		members = append(members, m)
	}
	return members, nil
}

func (b *builder) member(d memberDoc) (*model.Member, error) {
	if d.Name == "" {
		return nil, errors.New("missing name")
	}
	m := &model.Member{Name: d.Name, Doc: d.Doc}

	var statics []*model.Member
	if len(d.Members) > 0 {
		var err error
		if statics, err = b.members(d.Members); err != nil {
			return nil, err
		}
	}

	switch {
	case d.Function != nil || d.Constructor != nil:
		sigDoc := d.Function
		if d.Constructor != nil {
			sigDoc = d.Constructor
		}
		sig, err := b.signature(sigDoc)
		if err != nil {
			return nil, err
		}
		fn := &model.Function{Name: d.Name, Sig: sig, Constructor: d.Constructor != nil}
		if fn.Constructor && sig.Returns == nil {
			if class, ok := b.classes[d.Name]; ok {
				sig.Returns = class
			}
		}
		if len(statics) > 0 {
			fn.Statics = model.NewScope(nil, statics...)
		}
		m.Type = fn
	case len(statics) > 0:
		m.Type = &model.Namespace{Name: d.Name, Scope: model.NewScope(nil, statics...)}
	default:
		t, err := b.typeOf(d.Type)
		if err != nil {
			return nil, err
		}
		m.Type = t
	}
	return m, nil
}

func (b *builder) signature(d *signatureDoc) (*model.Signature, error) {
	sig := &model.Signature{}
	for _, p := range d.Params {
		t := model.Type(model.Any)
		if p.Type != "" {
			var err error
			if t, err = b.typeOf(p.Type); err != nil {
				return nil, fmt.Errorf("param %s: %w", p.Name, err)
			}
		}
		sig.Params = append(sig.Params, model.Param{Name: p.Name, Type: t, Optional: p.Optional})
	}

	returns, err := b.optionalType(d.Returns)
	if err != nil {
		return nil, fmt.Errorf("returns: %w", err)
	}
	sig.Returns = returns

	for _, ac := range d.Autocompletions {
		var args []model.Expr
		for i := range ac.Args {
			arg, err := literal(&ac.Args[i])
			if err != nil {
				return nil, err
			}
			args = append(args, arg)
		}
		sig.Autocompletions = append(sig.Autocompletions, model.Autocompletion{Args: args, Score: ac.Score})
	}
	return sig, nil
}

func (b *builder) typeOf(name string) (model.Type, error) {
	switch p := model.Primitive(name); p {
	case model.Number, model.String, model.Boolean, model.Any, model.Void:
		return p, nil
	}
	if class, ok := b.classes[name]; ok {
		return class, nil
	}
	return nil, fmt.Errorf("%w %q", ErrUnknownType, name)
}

func (b *builder) optionalType(name string) (model.Type, error) {
	if name == "" {
		return nil, nil
	}
	return b.typeOf(name)
}

// literal converts a YAML scalar into the literal expression it spells.
func literal(n *yaml.Node) (model.Expr, error) {
	if n.Kind != yaml.ScalarNode {
		return nil, fmt.Errorf("line %d: autocompletion arguments must be scalars", n.Line)
	}
	switch n.ShortTag() {
	case "!!int", "!!float":
		lit, err := model.NewNumber(n.Value)
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", n.Line, err)
		}
		return lit, nil
	case "!!str":
		return model.NewString(n.Value, '"'), nil
	}
	return nil, fmt.Errorf("line %d: unsupported autocompletion argument %s", n.Line, n.Value)
}
