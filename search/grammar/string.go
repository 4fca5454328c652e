package grammar

import (
	"strings"
	"unicode"

	"github.com/dhamidi/palette/model"
	"github.com/dhamidi/palette/search"
)

type stringStage int

const (
	stringEmpty stringStage = iota
	stringQuoted
	stringEscape
	stringClosed
	stringBare
	stringBreak
)

const quotes = "\"'`"

var escapes = map[rune]rune{
	'n': '\n',
	't': '\t',
	'r': '\r',
	'0': 0,
	'b': '\b',
	'f': '\f',
	'v': '\v',
}

type stringState struct {
	stage stringStage
	quote rune
	value string

	// pending is whitespace seen after a bare word, kept out of value until
	// another word follows.
	pending string
}

// String matches quoted string literals and, when bare words are enabled,
// unquoted runs of words.
type String struct {
	bareWords bool
	m         search.Machine[stringState]
}

func NewString(bareWords bool) *String {
	s := &String{bareWords: bareWords}
	s.m = search.Machine[stringState]{
		Parser: s,
		Init:   s.init,
		Step:   s.step,
		Finish: s.finish,
		Open:   s.open,
	}
	return s
}

func (p *String) Name() string {
	return "string"
}

func (p *String) AttemptParse(ctx *search.Context, start int, previous *search.PendingParse) ([]*search.PendingParse, error) {
	return p.m.Attempt(ctx, start, previous)
}

func (p *String) init(ctx *search.Context, start int) []stringState {
	if !ctx.Constraint().AcceptsType(model.String) {
		return nil
	}
	return []stringState{{stage: stringEmpty}}
}

func (p *String) step(ctx *search.Context, start int, s stringState, r rune, at int) search.Transition[stringState] {
	terminates := ctx.Constraint().Terminates(r) || strings.ContainsRune(quotes, r)

	switch s.stage {
	case stringEmpty:
		switch {
		case strings.ContainsRune(quotes, r):
			return next(stringState{stage: stringQuoted, quote: r})
		case !p.bareWords || terminates || unicode.IsSpace(r):
			return search.Transition[stringState]{}
		}
		return next(stringState{stage: stringBare, value: string(r)})
	case stringQuoted:
		switch r {
		case '\\':
			s.stage = stringEscape
			return next(s)
		case s.quote:
			s.stage = stringClosed
			return next(s)
		}
		s.value += string(r)
		return next(s)
	case stringEscape:
		if e, ok := escapes[r]; ok {
			r = e
		}
		s.stage = stringQuoted
		s.value += string(r)
		return next(s)
	case stringClosed:
		return stop[stringState]()
	case stringBare:
		switch {
		case terminates:
			return stop[stringState]()
		case unicode.IsSpace(r):
			s.stage = stringBreak
			s.pending = string(r)
			return search.Transition[stringState]{Stop: true, Next: []stringState{s}}
		}
		s.value += string(r)
		return next(s)
	case stringBreak:
		switch {
		case terminates:
			return stop[stringState]()
		case unicode.IsSpace(r):
			s.pending += string(r)
			return next(s)
		}
		s.stage = stringBare
		s.value += s.pending + string(r)
		s.pending = ""
		return next(s)
	}
	return search.Transition[stringState]{}
}

func (p *String) finish(ctx *search.Context, s stringState) (model.Expr, float64) {
	switch s.stage {
	case stringQuoted, stringEscape:
		return model.NewString(s.value, s.quote), ScoreOpenString
	case stringClosed:
		return model.NewString(s.value, s.quote), ScoreExact
	case stringBare, stringBreak:
		return model.NewString(s.value, 0), ScoreBare
	}
	return nil, 0
}

func (p *String) open(s stringState) bool {
	return s.stage != stringClosed
}
