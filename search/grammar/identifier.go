package grammar

import (
	"strings"

	"github.com/dhamidi/palette/model"
	"github.com/dhamidi/palette/search"
)

type identStage int

const (
	identEmpty identStage = iota
	identPending
	identDot
)

type identState struct {
	stage identStage

	member *model.Member
	folded string
	cursor int

	// base is the expression whose member is being accessed; nil for names
	// resolved in the visible scopes.
	base      model.Expr
	baseScore float64
	members   model.Scope
}

// Identifier resolves names against the visible scopes and follows member
// access through '.'. Each typed rune narrows the set of matching members;
// names in inner scopes shadow equal names further out.
type Identifier struct {
	m search.Machine[identState]
}

func NewIdentifier() *Identifier {
	id := &Identifier{}
	id.m = search.Machine[identState]{
		Parser: id,
		Init:   id.init,
		Step:   id.step,
		Finish: id.finish,
		Open:   id.open,
	}
	return id
}

func (id *Identifier) Name() string {
	return "identifier"
}

func (id *Identifier) AttemptParse(ctx *search.Context, start int, previous *search.PendingParse) ([]*search.PendingParse, error) {
	return id.m.Attempt(ctx, start, previous)
}

func (id *Identifier) init(ctx *search.Context, start int) []identState {
	return []identState{{stage: identEmpty}}
}

func (id *Identifier) step(ctx *search.Context, start int, s identState, r rune, at int) search.Transition[identState] {
	switch s.stage {
	case identEmpty:
		if !isIdentStart(r) {
			return search.Transition[identState]{}
		}
		return next(matching(ctx.ScopeChain(), r, nil, 0)...)
	case identDot:
		if !isIdentStart(r) {
			return search.Transition[identState]{}
		}
		return next(matching(model.Chain(s.members), r, s.base, s.baseScore)...)
	case identPending:
		if s.complete() {
			if r == '.' && hasMembers(s.member) {
				expr, score := s.candidate()
				return next(identState{
					stage:     identDot,
					base:      expr,
					baseScore: score,
					members:   s.member.Type.Members(),
				})
			}
			return stop[identState]()
		}
		if f := model.Fold(string(r)); strings.HasPrefix(s.folded[s.cursor:], f) {
			s.cursor += len(f)
			return next(s)
		}
		if isIdentPart(r) {
			return search.Transition[identState]{}
		}
		return stop[identState]()
	}
	return search.Transition[identState]{}
}

// matching returns a pending state for every member of scopes whose name
// starts with r, skipping names already seen in an earlier scope.
func matching(scopes []model.Scope, r rune, base model.Expr, baseScore float64) []identState {
	var states []identState
	seen := make(map[string]bool)
	for _, scope := range scopes {
		for _, m := range scope.MembersByPrefix(string(r)) {
			if seen[m.Name] {
				continue
			}
			seen[m.Name] = true
			s := identState{
				stage:     identPending,
				member:    m,
				folded:    model.Fold(m.Name),
				base:      base,
				baseScore: baseScore,
			}
			s.cursor = len(model.Fold(string(r)))
			states = append(states, s)
		}
	}
	return states
}

func (id *Identifier) finish(ctx *search.Context, s identState) (model.Expr, float64) {
	if s.stage != identPending {
		return nil, 0
	}
	return s.candidate()
}

func (id *Identifier) open(s identState) bool {
	if s.stage == identPending && s.complete() {
		return hasMembers(s.member)
	}
	return true
}

func (s identState) complete() bool {
	return s.cursor >= len(s.folded)
}

func (s identState) candidate() (model.Expr, float64) {
	score := 1 + (ScoreExact-1)*float64(s.cursor)/float64(len(s.folded))
	if s.base == nil {
		return model.NewReference(s.member), score
	}
	return model.NewAccess(s.base, s.member), (s.baseScore + score) / 2
}

func hasMembers(m *model.Member) bool {
	return m.Type != nil && m.Type.Members() != nil
}
