package grammar

import (
	"slices"
	"unicode"

	"github.com/dhamidi/palette/model"
	"github.com/dhamidi/palette/search"
)

type argsStage int

const (
	argsOpen argsStage = iota
	argsWaitValue
	argsAfterValue
	argsClosed
)

type argument struct {
	expr  model.Expr
	score float64
}

type argsState struct {
	stage argsStage
	sig   *model.Signature
	args  []argument
}

// Arguments matches a parenthesized argument list against the signature in
// the constraint. Each argument is parsed by delegating to the value
// parsers with the parameter type as constraint. It is a helper: composite
// grammars name it explicitly.
type Arguments struct {
	m search.Machine[argsState]
}

func NewArguments() *Arguments {
	a := &Arguments{}
	a.m = search.Machine[argsState]{
		Parser: a,
		Init:   a.init,
		Step:   a.step,
		Finish: a.finish,
		Open:   a.open,
		Offers: a.offers,
	}
	return a
}

func (a *Arguments) Name() string {
	return "arguments"
}

func (a *Arguments) AttemptParse(ctx *search.Context, start int, previous *search.PendingParse) ([]*search.PendingParse, error) {
	return a.m.Attempt(ctx, start, previous)
}

func (a *Arguments) init(ctx *search.Context, start int) []argsState {
	return []argsState{{stage: argsOpen, sig: ctx.Constraint().Signature}}
}

func (a *Arguments) step(ctx *search.Context, start int, s argsState, r rune, at int) search.Transition[argsState] {
	switch s.stage {
	case argsOpen:
		switch {
		case unicode.IsSpace(r):
			return next(s)
		case r == '(':
			s.stage = argsWaitValue
			return next(s)
		}
	case argsWaitValue:
		switch {
		case unicode.IsSpace(r):
			return next(s)
		case r == ')' && len(s.args) == 0:
			s.stage = argsClosed
			return next(s)
		}
		param, ok := s.sig.Param(len(s.args))
		if !ok {
			return search.Transition[argsState]{}
		}
		constraint := search.Constraint{Type: param.Type, Terminators: ",)"}
		return search.Transition[argsState]{Handoff: ctx.Delegate(constraint, at, a.onValue(start, s))}
	case argsAfterValue:
		switch {
		case unicode.IsSpace(r):
			return next(s)
		case r == ',':
			s.stage = argsWaitValue
			return next(s)
		case r == ')':
			s.stage = argsClosed
			return next(s)
		}
	case argsClosed:
		return stop[argsState]()
	}
	return search.Transition[argsState]{}
}

// onValue resumes the list after an argument value ends.
func (a *Arguments) onValue(start int, s argsState) search.OnSuccess {
	return func(ctx *search.Context, value *search.PendingParse) []*search.PendingParse {
		s.stage = argsAfterValue
		s.args = append(slices.Clip(s.args), argument{expr: value.Expression, score: value.Score})
		return a.m.Continue(ctx, start, value.InputEnd, s)
	}
}

func (a *Arguments) finish(ctx *search.Context, s argsState) (model.Expr, float64) {
	if s.stage != argsClosed {
		return nil, 0
	}
	return s.list(nil), s.score(nil)
}

func (a *Arguments) open(s argsState) bool {
	return s.stage != argsClosed
}

// offers completes an unclosed list: as typed, and with the rest of every
// documented example that has more arguments than were typed.
func (a *Arguments) offers(ctx *search.Context, s argsState) []search.Offer {
	if s.stage == argsClosed {
		return nil
	}
	offers := []search.Offer{{Expr: s.list(nil), Score: s.score(nil) * 0.9}}
	if s.sig == nil {
		return offers
	}
	for _, ac := range s.sig.Autocompletions {
		if len(ac.Args) <= len(s.args) {
			continue
		}
		rest := ac.Args[len(s.args):]
		offers = append(offers, search.Offer{Expr: s.list(rest), Score: s.score(&ac)})
	}
	return offers
}

func (s argsState) list(rest []model.Expr) *model.Arguments {
	exprs := make([]model.Expr, 0, len(s.args)+len(rest))
	for _, arg := range s.args {
		exprs = append(exprs, arg.expr)
	}
	return model.NewArguments(append(exprs, rest...)...)
}

// score averages the typed arguments, with an autocompletion counting as
// one more part. Lists shorter than the required parameters lose score in
// proportion to what is missing.
func (s argsState) score(ac *model.Autocompletion) float64 {
	n := len(s.args)
	total := 0.0
	for _, arg := range s.args {
		total += arg.score
	}
	if ac != nil {
		acScore := ac.Score
		if acScore == 0 {
			acScore = ScoreBare
		}
		total += acScore
		n++
		if len(s.args) == 0 {
			return acScore
		}
		return total / float64(n)
	}
	if n == 0 {
		total, n = ScoreExact, 1
	}
	score := total / float64(n)
	if required := s.sig.Required(); len(s.args) < required {
		score *= float64(len(s.args)+1) / float64(required+1)
	}
	return score
}
