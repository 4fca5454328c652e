package search

import (
	"errors"
	"fmt"

	"github.com/dhamidi/palette/model"
)

var ErrMalformedContinuation = errors.New("malformed continuation")

type Parser interface {
	Name() string

	// AttemptParse matches ctx.Text() from start to its end. With a nil
	// previous it starts fresh; otherwise it resumes previous, which must
	// have been returned by this parser for a prefix of ctx.Text().
	// Input that does not match yields no parses and no error.
	AttemptParse(ctx *Context, start int, previous *PendingParse) ([]*PendingParse, error)
}

// PendingParse is one parser's progress over Input[InputStart:InputEnd].
// It is never modified after it is returned.
type PendingParse struct {
	Parser      Parser
	Input       string
	InputStart  int
	InputEnd    int
	Score       float64
	MayContinue bool
	Expression  model.Expr

	// Eager marks a completion proposed at the end of the input. Nothing
	// continues from an eager parse.
	Eager bool

	// State is owned by Parser.
	State any
}

func (p *PendingParse) Text() string {
	return p.Input[p.InputStart:p.InputEnd]
}

func (p *PendingParse) CandidateExpression() model.Expr {
	return p.Expression
}

// CandidateSnippet returns the suggestion for a parse that accounts for the
// whole input, or nil.
func (p *PendingParse) CandidateSnippet() *Candidate {
	if p.Expression == nil || p.InputEnd != len(p.Input) || p.Expression.Type() == nil {
		return nil
	}
	return &Candidate{
		Expr:   p.Expression,
		Score:  p.Score,
		Parser: p.Parser.Name(),
	}
}

func (p *PendingParse) String() string {
	expr := "-"
	if p.Expression != nil {
		expr = p.Expression.String()
	}
	return fmt.Sprintf("%s[%d:%d] %q score=%.3f continue=%v expr=%s",
		p.Parser.Name(), p.InputStart, p.InputEnd, p.Text(), p.Score, p.MayContinue, expr)
}

// CheckContinuation verifies that previous describes a prefix of ctx.Text()
// starting at start.
func CheckContinuation(ctx *Context, start int, previous *PendingParse) error {
	text := ctx.Text()
	switch {
	case previous.InputStart != start:
		return fmt.Errorf("%w: %s started at %d, resumed at %d", ErrMalformedContinuation, previous.Parser.Name(), previous.InputStart, start)
	case previous.InputEnd < previous.InputStart:
		return fmt.Errorf("%w: %s ends at %d before its start %d", ErrMalformedContinuation, previous.Parser.Name(), previous.InputEnd, previous.InputStart)
	case previous.InputEnd > len(text) || previous.InputEnd > len(previous.Input):
		return fmt.Errorf("%w: %s ends at %d past the input", ErrMalformedContinuation, previous.Parser.Name(), previous.InputEnd)
	case previous.Input[start:previous.InputEnd] != text[start:previous.InputEnd]:
		return fmt.Errorf("%w: %s consumed %q, input has %q", ErrMalformedContinuation, previous.Parser.Name(), previous.Text(), text[start:previous.InputEnd])
	}
	return nil
}

// Run starts p at start, or resumes previous, with p recorded on the
// delegation path. Errors and panics in p yield no parses; a malformed
// continuation is also counted in ctx.Violations.
func Run(ctx *Context, p Parser, start int, previous *PendingParse) []*PendingParse {
	return attempt(ctx.enter(p, start), p, start, previous)
}

// attempt runs p and converts its failures into an empty result.
func attempt(ctx *Context, p Parser, start int, previous *PendingParse) (out []*PendingParse) {
	defer func() {
		if r := recover(); r != nil {
			ctx.log.Errorf("parser %s panicked on %q: %v", p.Name(), ctx.rest(start), r)
			out = nil
		}
	}()

	out, err := p.AttemptParse(ctx, start, previous)
	if errors.Is(err, ErrMalformedContinuation) {
		ctx.violation()
		ctx.log.Errorf("parser %s was resumed from a bad continuation on %q: %v", p.Name(), ctx.rest(start), err)
		return nil
	}
	if err != nil {
		ctx.log.Warningf("parser %s failed on %q: %v", p.Name(), ctx.rest(start), err)
		return nil
	}
	return out
}
