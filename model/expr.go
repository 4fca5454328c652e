package model

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/cockroachdb/apd/v3"
)

type ExprKind int

const (
	KindNumber ExprKind = iota
	KindString
	KindReference
	KindAccess
	KindCall
	KindConstruction
	KindArguments
)

var exprKindNames = map[ExprKind]string{
	KindNumber:       "Number",
	KindString:       "String",
	KindReference:    "Reference",
	KindAccess:       "Access",
	KindCall:         "Call",
	KindConstruction: "Construction",
	KindArguments:    "Arguments",
}

func (k ExprKind) String() string {
	if name, ok := exprKindNames[k]; ok {
		return name
	}
	return "Unknown"
}

// Expr is a materialized expression node. String returns its code form.
type Expr interface {
	Kind() ExprKind
	Type() Type
	String() string
}

type NumberLiteral struct {
	Value *apd.Decimal
}

// NewNumber parses the textual form of a numeric literal. A leading '+', a
// bare leading '.', and a trailing '.' are accepted.
func NewNumber(code string) (*NumberLiteral, error) {
	text := strings.TrimPrefix(code, "+")
	neg := strings.HasPrefix(text, "-")
	text = strings.TrimPrefix(text, "-")
	switch strings.ToLower(text) {
	case "infinity":
		return &NumberLiteral{Value: &apd.Decimal{Form: apd.Infinite, Negative: neg}}, nil
	case "nan":
		return &NumberLiteral{Value: &apd.Decimal{Form: apd.NaN}}, nil
	}
	if strings.HasPrefix(text, ".") {
		text = "0" + text
	}
	text = strings.TrimSuffix(text, ".")
	if neg {
		text = "-" + text
	}
	d, _, err := apd.NewFromString(text)
	if err != nil {
		return nil, fmt.Errorf("number literal %q: %w", code, err)
	}
	return &NumberLiteral{Value: d}, nil
}

func (n *NumberLiteral) Kind() ExprKind { return KindNumber }
func (n *NumberLiteral) Type() Type     { return Number }

func (n *NumberLiteral) String() string {
	return n.Value.Text('f')
}

type StringLiteral struct {
	Value string
	Quote rune
}

// NewString builds a string literal. A zero quote marks a bare word typed
// without quotes; it renders double-quoted.
func NewString(value string, quote rune) *StringLiteral {
	return &StringLiteral{Value: value, Quote: quote}
}

func (s *StringLiteral) Kind() ExprKind { return KindString }
func (s *StringLiteral) Type() Type     { return String }

func (s *StringLiteral) String() string {
	if s.Quote == 0 || s.Quote == '"' {
		return strconv.Quote(s.Value)
	}
	var sb strings.Builder
	sb.WriteRune(s.Quote)
	for _, r := range s.Value {
		switch r {
		case s.Quote, '\\':
			sb.WriteByte('\\')
			sb.WriteRune(r)
		case '\n':
			sb.WriteString(`\n`)
		case '\t':
			sb.WriteString(`\t`)
		case '\r':
			sb.WriteString(`\r`)
		default:
			sb.WriteRune(r)
		}
	}
	sb.WriteRune(s.Quote)
	return sb.String()
}

type Reference struct {
	Member *Member
}

func NewReference(m *Member) *Reference {
	return &Reference{Member: m}
}

func (r *Reference) Kind() ExprKind { return KindReference }
func (r *Reference) Type() Type     { return r.Member.Type }
func (r *Reference) String() string { return r.Member.Name }

type Access struct {
	Base   Expr
	Member *Member
}

func NewAccess(base Expr, m *Member) *Access {
	return &Access{Base: base, Member: m}
}

func (a *Access) Kind() ExprKind { return KindAccess }
func (a *Access) Type() Type     { return a.Member.Type }
func (a *Access) String() string { return a.Base.String() + "." + a.Member.Name }

type Arguments struct {
	Args []Expr
}

func NewArguments(args ...Expr) *Arguments {
	return &Arguments{Args: args}
}

func (a *Arguments) Kind() ExprKind { return KindArguments }
func (a *Arguments) Type() Type     { return nil }

func (a *Arguments) String() string {
	parts := make([]string, len(a.Args))
	for i, arg := range a.Args {
		parts[i] = arg.String()
	}
	return "(" + strings.Join(parts, ", ") + ")"
}

type Call struct {
	Callee Expr
	Args   *Arguments
}

func NewCall(callee Expr, args *Arguments) *Call {
	return &Call{Callee: callee, Args: args}
}

func (c *Call) Kind() ExprKind { return KindCall }
func (c *Call) Type() Type     { return ResultType(c.Callee.Type()) }
func (c *Call) String() string { return c.Callee.String() + c.Args.String() }

type Construction struct {
	Constructor Expr
	Args        *Arguments
}

func NewConstruction(ctor Expr, args *Arguments) *Construction {
	return &Construction{Constructor: ctor, Args: args}
}

func (c *Construction) Kind() ExprKind { return KindConstruction }
func (c *Construction) Type() Type     { return ResultType(c.Constructor.Type()) }

func (c *Construction) String() string {
	return "new " + c.Constructor.String() + c.Args.String()
}
