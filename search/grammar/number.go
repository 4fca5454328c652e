package grammar

import (
	"unicode"

	"github.com/dhamidi/palette/model"
	"github.com/dhamidi/palette/search"
)

type numberStage int

const (
	numberEmpty numberStage = iota
	numberSign
	numberZero
	numberPoint
	numberInteger
	numberFloat
	numberInfinity
	numberNaN
)

const (
	infinityWord = "infinity"
	nanWord      = "nan"
)

type numberState struct {
	stage   numberStage
	sign    string
	code    string
	matched int
}

// Number matches numeric literals: integers, decimals with an optional
// leading sign, and optionally Infinity and NaN. Exponents are not
// recognized.
type Number struct {
	specials bool
	m        search.Machine[numberState]
}

func NewNumber(specials bool) *Number {
	n := &Number{specials: specials}
	n.m = search.Machine[numberState]{
		Parser: n,
		Init:   n.init,
		Step:   n.step,
		Finish: n.finish,
		Open:   n.open,
	}
	return n
}

func (n *Number) Name() string {
	return "number"
}

func (n *Number) AttemptParse(ctx *search.Context, start int, previous *search.PendingParse) ([]*search.PendingParse, error) {
	return n.m.Attempt(ctx, start, previous)
}

func (n *Number) init(ctx *search.Context, start int) []numberState {
	if !ctx.Constraint().AcceptsType(model.Number) {
		return nil
	}
	return []numberState{{stage: numberEmpty}}
}

func (n *Number) step(ctx *search.Context, start int, s numberState, r rune, at int) search.Transition[numberState] {
	switch s.stage {
	case numberEmpty:
		if r == '+' || r == '-' {
			return next(numberState{stage: numberSign, sign: string(r)})
		}
		return n.stepUnsigned(s, r)
	case numberSign:
		return n.stepUnsigned(s, r)
	case numberZero:
		if r == '.' {
			return next(s.extend(numberFloat, r))
		}
		return stop[numberState]()
	case numberInteger:
		switch {
		case isDigit(r):
			return next(s.extend(numberInteger, r))
		case r == '.':
			return next(s.extend(numberFloat, r))
		}
		return stop[numberState]()
	case numberPoint:
		if isDigit(r) {
			return next(s.extend(numberFloat, r))
		}
	case numberFloat:
		if isDigit(r) {
			return next(s.extend(numberFloat, r))
		}
		return stop[numberState]()
	case numberInfinity:
		return stepWord(s, infinityWord, r)
	case numberNaN:
		return stepWord(s, nanWord, r)
	}
	return search.Transition[numberState]{}
}

// stepUnsigned handles the first rune after an optional sign.
func (n *Number) stepUnsigned(s numberState, r rune) search.Transition[numberState] {
	switch {
	case r == '0':
		return next(s.extend(numberZero, r))
	case isDigit(r):
		return next(s.extend(numberInteger, r))
	case r == '.':
		return next(s.extend(numberPoint, r))
	case n.specials && unicode.ToLower(r) == rune(infinityWord[0]):
		return next(numberState{stage: numberInfinity, sign: s.sign, matched: 1})
	case n.specials && s.stage == numberEmpty && unicode.ToLower(r) == rune(nanWord[0]):
		return next(numberState{stage: numberNaN, matched: 1})
	}
	return search.Transition[numberState]{}
}

// stepWord advances a partially matched Infinity or NaN. A letter or digit
// that breaks the word discards the match; any other rune ends it.
func stepWord(s numberState, word string, r rune) search.Transition[numberState] {
	if s.matched < len(word) && unicode.ToLower(r) == rune(word[s.matched]) {
		s.matched++
		return next(s)
	}
	if s.matched < len(word) && isAlnum(r) {
		return search.Transition[numberState]{}
	}
	return stop[numberState]()
}

func (n *Number) finish(ctx *search.Context, s numberState) (model.Expr, float64) {
	var code string
	score := ScoreExact
	switch s.stage {
	case numberZero, numberInteger, numberFloat:
		code = s.sign + s.code
	case numberInfinity:
		code = s.sign + "Infinity"
		score = ramp(s.matched, len(infinityWord))
	case numberNaN:
		code = "NaN"
		score = ramp(s.matched, len(nanWord))
	default:
		return nil, 0
	}
	lit, err := model.NewNumber(code)
	if err != nil {
		ctx.Logger().Debugf("number %q: %v", code, err)
		return nil, 0
	}
	return lit, score
}

func (n *Number) open(s numberState) bool {
	switch s.stage {
	case numberInfinity:
		return s.matched < len(infinityWord)
	case numberNaN:
		return s.matched < len(nanWord)
	}
	return true
}

func (s numberState) extend(stage numberStage, r rune) numberState {
	s.stage = stage
	s.code += string(r)
	return s
}

func isDigit(r rune) bool {
	return r >= '0' && r <= '9'
}

func next[S any](states ...S) search.Transition[S] {
	return search.Transition[S]{Next: states}
}

func stop[S any]() search.Transition[S] {
	return search.Transition[S]{Stop: true}
}
