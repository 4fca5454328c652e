package grammar

import (
	"unicode"

	"github.com/dhamidi/palette/model"
	"github.com/dhamidi/palette/search"
)

const newKeyword = "new"

type newState struct {
	matched int
	spaced  bool
}

// New matches constructor invocation: the keyword new, whitespace, a
// constructor value and its argument list. While the keyword is being typed
// it offers complete constructions for every visible constructor.
type New struct {
	args search.Parser
	m    search.Machine[newState]
}

func NewNew(args search.Parser) *New {
	n := &New{args: args}
	n.m = search.Machine[newState]{
		Parser: n,
		Init:   n.init,
		Step:   n.step,
		Finish: n.finish,
		Open:   n.open,
		Offers: n.offers,
	}
	return n
}

func (n *New) Name() string {
	return "new"
}

func (n *New) AttemptParse(ctx *search.Context, start int, previous *search.PendingParse) ([]*search.PendingParse, error) {
	return n.m.Attempt(ctx, start, previous)
}

func (n *New) init(ctx *search.Context, start int) []newState {
	return []newState{{}}
}

func (n *New) step(ctx *search.Context, start int, s newState, r rune, at int) search.Transition[newState] {
	switch {
	case s.matched < len(newKeyword):
		if unicode.ToLower(r) == rune(newKeyword[s.matched]) {
			s.matched++
			return next(s)
		}
	case unicode.IsSpace(r):
		s.spaced = true
		return next(s)
	case s.spaced:
		return search.Transition[newState]{
			Handoff: ctx.Delegate(search.Constraint{Value: isConstructor}, at, n.onConstructor(start)),
		}
	}
	return search.Transition[newState]{}
}

func (n *New) onConstructor(start int) search.OnSuccess {
	return func(ctx *search.Context, ctor *search.PendingParse) []*search.PendingParse {
		constraint := search.Constraint{
			Parsers:   []search.Parser{n.args},
			Signature: ctor.Expression.Type().Signature(),
		}
		return ctx.Delegate(constraint, ctor.InputEnd, func(ctx *search.Context, args *search.PendingParse) []*search.PendingParse {
			list, ok := args.Expression.(*model.Arguments)
			if !ok {
				return nil
			}
			expr := model.NewConstruction(ctor.Expression, list)
			return ctx.Terminal(n, start, args.InputEnd, expr, (ctor.Score+args.Score)/2)
		})
	}
}

func (n *New) finish(ctx *search.Context, s newState) (model.Expr, float64) {
	return nil, 0
}

func (n *New) open(s newState) bool {
	return true
}

// offers proposes a construction for every visible constructor while only
// the keyword has been typed, scaled by how much of it is there.
func (n *New) offers(ctx *search.Context, s newState) []search.Offer {
	if s.matched == 0 {
		return nil
	}
	progress := float64(s.matched) / float64(len(newKeyword))

	var offers []search.Offer
	seen := make(map[string]bool)
	for _, scope := range ctx.ScopeChain() {
		for _, m := range scope.MembersByPrefix("") {
			if seen[m.Name] || m.Type == nil || !m.Type.IsConstructor() {
				continue
			}
			seen[m.Name] = true
			ref := model.NewReference(m)
			sig := m.Type.Signature()
			if sig.Required() == 0 {
				offers = append(offers, search.Offer{
					Expr:  model.NewConstruction(ref, model.NewArguments()),
					Score: progress * ScoreOpenString,
				})
			}
			if sig == nil {
				continue
			}
			for _, ac := range sig.Autocompletions {
				score := ac.Score
				if score == 0 {
					score = ScoreBare
				}
				offers = append(offers, search.Offer{
					Expr:  model.NewConstruction(ref, model.NewArguments(ac.Args...)),
					Score: progress * score,
				})
			}
		}
	}
	return offers
}
