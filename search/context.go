package search

import (
	"slices"
	"strings"

	"github.com/dhamidi/palette/model"
	"github.com/tliron/commonlog"
)

var log = commonlog.GetLogger("palette.search")

// Constraint narrows what a sub-parse may produce. The zero value accepts
// every typed expression.
type Constraint struct {
	// Type is the expected value type; nil accepts any.
	Type model.Type

	// Value and Expr further restrict accepted value types and expressions.
	Value func(model.Type) bool
	Expr  func(model.Expr) bool

	// Parsers replaces the registry as the list of delegates.
	Parsers []Parser

	// Signature is the call shape an argument list is parsed against.
	Signature *model.Signature

	// Terminators end bare-word matches.
	Terminators string
}

func (c Constraint) AcceptsType(t model.Type) bool {
	if t == nil {
		return c.Type == nil && c.Value == nil
	}
	if c.Type != nil && !c.Type.IsAssignableFrom(t) {
		return false
	}
	if c.Value != nil && !c.Value(t) {
		return false
	}
	return true
}

func (c Constraint) Accepts(e model.Expr) bool {
	if e == nil || !c.AcceptsType(e.Type()) {
		return false
	}
	return c.Expr == nil || c.Expr(e)
}

func (c Constraint) Terminates(r rune) bool {
	return strings.ContainsRune(c.Terminators, r)
}

// StackItem records one delegation step: parser began matching at Start.
type StackItem struct {
	Parser Parser
	Start  int
}

// Context is the read-only environment of one parse step.
type Context struct {
	text       string
	scopes     []model.Scope
	constraint Constraint
	stack      []StackItem
	registry   *Registry
	log        commonlog.Logger

	// violations is shared by every context derived from the same root.
	violations *int
}

func NewContext(text string, registry *Registry, env Environment) *Context {
	return &Context{
		text:       text,
		scopes:     env.Scopes,
		constraint: Constraint{Type: env.Expect},
		registry:   registry,
		log:        log,
		violations: new(int),
	}
}

func (c *Context) Text() string {
	return c.text
}

func (c *Context) rest(start int) string {
	if start < 0 || start > len(c.text) {
		return ""
	}
	return c.text[start:]
}

func (c *Context) Scopes() []model.Scope {
	return c.scopes
}

// ScopeChain lists every visible scope, innermost first.
func (c *Context) ScopeChain() []model.Scope {
	return model.Chain(c.scopes...)
}

func (c *Context) Constraint() Constraint {
	return c.constraint
}

func (c *Context) Stack() []StackItem {
	return c.stack
}

func (c *Context) Registry() *Registry {
	return c.registry
}

func (c *Context) Logger() commonlog.Logger {
	return c.log
}

// Violations reports how many parsers were resumed from a continuation they
// could not accept while parsing this text. Any count above zero is a driver
// bug.
func (c *Context) Violations() int {
	if c.violations == nil {
		return 0
	}
	return *c.violations
}

func (c *Context) violation() {
	if c.violations != nil {
		*c.violations++
	}
}

func (c *Context) onStack(p Parser, start int) bool {
	for _, item := range c.stack {
		if item.Parser == p && item.Start == start {
			return true
		}
	}
	return false
}

func (c *Context) enter(p Parser, start int) *Context {
	sub := *c
	sub.stack = append(slices.Clip(c.stack), StackItem{Parser: p, Start: start})
	return &sub
}

func (c *Context) narrow(constraint Constraint) *Context {
	sub := *c
	sub.constraint = constraint
	return &sub
}

// rebase returns a context over c's text with another delegation path.
func (c *Context) rebase(stack []StackItem, constraint Constraint) *Context {
	sub := *c
	sub.stack = stack
	sub.constraint = constraint
	return &sub
}

// Terminal wraps a finished candidate produced by p as a parse that cannot
// continue. It yields nothing when the constraint rejects expr.
func (c *Context) Terminal(p Parser, start, end int, expr model.Expr, score float64) []*PendingParse {
	if !c.constraint.Accepts(expr) {
		return nil
	}
	return []*PendingParse{{
		Parser:     p,
		Input:      c.text,
		InputStart: start,
		InputEnd:   end,
		Score:      score,
		Expression: expr,
	}}
}
