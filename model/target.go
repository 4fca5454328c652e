package model

import (
	"errors"
	"fmt"
)

var ErrTypeMismatch = errors.New("type mismatch")

// Target is a located insertion point in a document together with the
// type of value the slot expects. A nil Expect accepts any typed value.
type Target struct {
	Name   string
	Offset int
	Length int
	Expect Type
}

func (t Target) Accepts(e Expr) bool {
	if e == nil || e.Type() == nil {
		return false
	}
	if t.Expect == nil {
		return true
	}
	return t.Expect.IsAssignableFrom(e.Type())
}

type Edit struct {
	Target Target
	Expr   Expr
	Text   string
}

func NewEdit(t Target, e Expr) (*Edit, error) {
	if !t.Accepts(e) {
		want := "value"
		if t.Expect != nil {
			want = t.Expect.String()
		}
		return nil, fmt.Errorf("insert %s into %s: %w (want %s)", e, t.Name, ErrTypeMismatch, want)
	}
	return &Edit{Target: t, Expr: e, Text: e.String()}, nil
}

// Apply splices the edit into src.
func (e *Edit) Apply(src string) (string, error) {
	start, end := e.Target.Offset, e.Target.Offset+e.Target.Length
	if start < 0 || end > len(src) || start > end {
		return "", fmt.Errorf("apply edit to %s: range [%d,%d) outside document of length %d", e.Target.Name, start, end, len(src))
	}
	return src[:start] + e.Text + src[end:], nil
}
