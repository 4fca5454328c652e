package model

import (
	"errors"
	"testing"

	"github.com/cockroachdb/apd/v3"
)

func TestMembersByPrefix(t *testing.T) {
	s := NewScope(nil,
		&Member{Name: "parseInt", Type: Number},
		&Member{Name: "ParseFloat", Type: Number},
		&Member{Name: "print", Type: Void},
		&Member{Name: "Math", Type: Any},
	)

	tests := []struct {
		prefix string
		want   []string
	}{
		{"p", []string{"ParseFloat", "parseInt", "print"}},
		{"PARSE", []string{"ParseFloat", "parseInt"}},
		{"parsei", []string{"parseInt"}},
		{"m", []string{"Math"}},
		{"x", nil},
		{"", []string{"Math", "ParseFloat", "parseInt", "print"}},
	}

	for _, tt := range tests {
		t.Run(tt.prefix, func(t *testing.T) {
			got := s.MembersByPrefix(tt.prefix)
			if len(got) != len(tt.want) {
				t.Fatalf("MembersByPrefix(%q) = %d members, want %d", tt.prefix, len(got), len(tt.want))
			}
			for i, m := range got {
				if m.Name != tt.want[i] {
					t.Errorf("member %d = %q, want %q", i, m.Name, tt.want[i])
				}
			}
		})
	}
}

func TestChainDedupsSharedParents(t *testing.T) {
	global := NewScope(nil)
	module := NewScope(global)
	fn := NewScope(module)
	block := NewScope(fn)

	chain := Chain(block, fn)
	if len(chain) != 4 {
		t.Fatalf("Chain = %d scopes, want 4", len(chain))
	}
	if chain[0] != Scope(block) || chain[3] != Scope(global) {
		t.Errorf("Chain order = %v, want innermost first", chain)
	}
}

func TestClassAssignability(t *testing.T) {
	base := NewClass("Shape", nil)
	circle := NewClass("Circle", base)
	other := NewClass("Date", nil)

	if !base.IsAssignableFrom(circle) {
		t.Errorf("Shape should accept Circle")
	}
	if circle.IsAssignableFrom(base) {
		t.Errorf("Circle should not accept Shape")
	}
	if base.IsAssignableFrom(other) {
		t.Errorf("Shape should not accept Date")
	}
	if !Any.IsAssignableFrom(circle) {
		t.Errorf("any should accept Circle")
	}
	if Number.IsAssignableFrom(String) {
		t.Errorf("number should not accept string")
	}
}

func TestNewNumber(t *testing.T) {
	tests := []struct {
		code string
		want string
	}{
		{"123", "123"},
		{".123", "0.123"},
		{"-.5", "-0.5"},
		{"+7", "7"},
		{"12.", "12"},
		{"1.50", "1.50"},
		{"Infinity", "Infinity"},
		{"-infinity", "-Infinity"},
		{"nan", "NaN"},
	}

	for _, tt := range tests {
		t.Run(tt.code, func(t *testing.T) {
			n, err := NewNumber(tt.code)
			if err != nil {
				t.Fatalf("NewNumber(%q) error: %v", tt.code, err)
			}
			if got := n.String(); got != tt.want {
				t.Errorf("String() = %q, want %q", got, tt.want)
			}
		})
	}

	n, err := NewNumber(".123")
	if err != nil {
		t.Fatal(err)
	}
	if n.Value.Cmp(apd.New(123, -3)) != 0 {
		t.Errorf("Value = %s, want 0.123", n.Value)
	}
}

func TestStringLiteralCode(t *testing.T) {
	tests := []struct {
		lit  *StringLiteral
		want string
	}{
		{NewString("abc", '\''), `'abc'`},
		{NewString("who'd", '\''), `'who\'d'`},
		{NewString("a\nb", '"'), `"a\nb"`},
		{NewString("abc def", 0), `"abc def"`},
	}
	for _, tt := range tests {
		if got := tt.lit.String(); got != tt.want {
			t.Errorf("String() = %s, want %s", got, tt.want)
		}
	}
}

func TestNewEdit(t *testing.T) {
	num, _ := NewNumber("42")
	target := Target{Name: "width", Offset: 8, Length: 3, Expect: Number}

	edit, err := NewEdit(target, num)
	if err != nil {
		t.Fatalf("NewEdit error: %v", err)
	}
	got, err := edit.Apply("width = ???;")
	if err != nil {
		t.Fatalf("Apply error: %v", err)
	}
	if got != "width = 42;" {
		t.Errorf("Apply = %q, want %q", got, "width = 42;")
	}

	_, err = NewEdit(target, NewString("x", '"'))
	if !errors.Is(err, ErrTypeMismatch) {
		t.Errorf("NewEdit(string into number) error = %v, want ErrTypeMismatch", err)
	}
}

func TestCallType(t *testing.T) {
	date := NewClass("Date", nil)
	ctor := &Function{Name: "Date", Constructor: true, Sig: &Signature{Returns: date}}
	parse := &Function{Name: "parseInt", Sig: &Signature{
		Params:  []Param{{Name: "s", Type: String}, {Name: "radix", Type: Number, Optional: true}},
		Returns: Number,
	}}

	c := NewConstruction(NewReference(&Member{Name: "Date", Type: ctor}), NewArguments())
	if c.Type() != Type(date) {
		t.Errorf("Construction type = %v, want Date", c.Type())
	}
	if c.String() != "new Date()" {
		t.Errorf("Construction code = %q", c.String())
	}

	call := NewCall(NewReference(&Member{Name: "parseInt", Type: parse}), NewArguments(NewString("10", '"')))
	if call.Type() != Type(Number) {
		t.Errorf("Call type = %v, want number", call.Type())
	}
	if call.String() != `parseInt("10")` {
		t.Errorf("Call code = %q", call.String())
	}
	if parse.Sig.Required() != 1 {
		t.Errorf("Required = %d, want 1", parse.Sig.Required())
	}
}
