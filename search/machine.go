package search

import (
	"fmt"
	"unicode/utf8"

	"github.com/dhamidi/palette/model"
)

// Transition is the outcome of feeding one rune to a machine state.
type Transition[S any] struct {
	// Next holds the states reached by consuming the rune.
	Next []S

	// Stop ends the state before the rune; its candidate, if any, is
	// reported as a finished parse.
	Stop bool

	// Handoff holds parses produced by delegating from the rune's offset.
	Handoff []*PendingParse
}

// Offer is an extra candidate a live state proposes when the input ends.
type Offer struct {
	Expr  model.Expr
	Score float64
}

// Machine runs a character-level state machine over the input. Fresh and
// resumed parses go through the same loop, so resuming a state on appended
// text yields exactly what a fresh parse yields at those offsets.
//
// States must be immutable values.
type Machine[S any] struct {
	Parser Parser

	Init func(ctx *Context, start int) []S
	Step func(ctx *Context, start int, s S, r rune, at int) Transition[S]

	// Finish returns the candidate s represents, or nil.
	Finish func(ctx *Context, s S) (model.Expr, float64)

	// Open reports whether more input can extend s.
	Open func(s S) bool

	Offers func(ctx *Context, s S) []Offer
}

func (m *Machine[S]) Attempt(ctx *Context, start int, previous *PendingParse) ([]*PendingParse, error) {
	if previous == nil {
		return m.Continue(ctx, start, start, m.Init(ctx, start)...), nil
	}
	if err := CheckContinuation(ctx, start, previous); err != nil {
		return nil, err
	}
	s, ok := previous.State.(S)
	if !ok {
		return nil, fmt.Errorf("%w: %s cannot resume state %T", ErrMalformedContinuation, m.Parser.Name(), previous.State)
	}
	return m.Continue(ctx, start, previous.InputEnd, s), nil
}

// Continue runs the states in live from offset from to the end of the input.
func (m *Machine[S]) Continue(ctx *Context, start, from int, live ...S) []*PendingParse {
	text := ctx.Text()
	var out []*PendingParse

	at := from
	for at < len(text) && len(live) > 0 {
		r, size := utf8.DecodeRuneInString(text[at:])
		var next []S
		for _, s := range live {
			t := m.Step(ctx, start, s, r, at)
			if t.Stop {
				if expr, score := m.Finish(ctx, s); expr != nil {
					out = append(out, ctx.Terminal(m.Parser, start, at, expr, score)...)
				}
			}
			out = append(out, t.Handoff...)
			next = append(next, t.Next...)
		}
		live = next
		at += size
	}

	for _, s := range live {
		expr, score := m.Finish(ctx, s)
		if expr != nil && !ctx.constraint.Accepts(expr) {
			expr = nil
		}
		out = append(out, &PendingParse{
			Parser:      m.Parser,
			Input:       text,
			InputStart:  start,
			InputEnd:    len(text),
			Score:       score,
			MayContinue: m.Open(s),
			Expression:  expr,
			State:       s,
		})
		if m.Offers == nil {
			continue
		}
		for _, o := range m.Offers(ctx, s) {
			out = append(out, eager(ctx.Terminal(m.Parser, start, len(text), o.Expr, o.Score))...)
		}
	}
	return out
}
