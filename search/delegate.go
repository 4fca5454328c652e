package search

import (
	"fmt"
	"slices"
)

// OnSuccess receives, in the delegating parser's context, each candidate a
// delegate produces. It returns the delegating parser's own parses.
type OnSuccess func(ctx *Context, result *PendingParse) []*PendingParse

// Delegate hands the input from start to every parser the constraint allows
// (the registry's value parsers by default), skipping any parser already
// matching at start on the current delegation path. Results are returned in
// delegate order.
func (c *Context) Delegate(constraint Constraint, start int, onSuccess OnSuccess) []*PendingParse {
	delegates := constraint.Parsers
	if len(delegates) == 0 && c.registry != nil {
		delegates = c.registry.Values()
	}

	var out []*PendingParse
	for _, p := range delegates {
		if c.onStack(p, start) {
			continue
		}
		d := &delegation{
			delegate:         p,
			start:            start,
			parentStack:      c.stack,
			parentConstraint: c.constraint,
			constraint:       constraint,
			onSuccess:        onSuccess,
		}
		out = append(out, d.run(c)...)
	}
	return out
}

// delegation is the state of a placeholder parse standing in for a
// delegate's progress.
type delegation struct {
	delegate         Parser
	start            int
	parentStack      []StackItem
	parentConstraint Constraint
	constraint       Constraint
	onSuccess        OnSuccess

	// inner is the delegate's own continuation; nil until it has run.
	inner *PendingParse
}

func (d *delegation) run(ctx *Context) []*PendingParse {
	parent := ctx.rebase(d.parentStack, d.parentConstraint)
	sub := parent.enter(d.delegate, d.start).narrow(d.constraint)

	var out []*PendingParse
	for _, r := range d.resume(sub) {
		if r.Expression != nil && d.constraint.Accepts(r.Expression) {
			results := d.onSuccess(parent, r)
			// A result that may still grow is only final for this input.
			if r.Eager || r.MayContinue {
				results = eager(results)
			}
			out = append(out, results...)
		}
		if r.MayContinue {
			out = append(out, d.wrap(r))
		}
	}
	return out
}

// resume runs the delegate, or continues from inner. A placeholder the
// delegate returned for one of its own delegations resumes on its own at its
// own start; what it yields are the delegate's parses.
func (d *delegation) resume(ctx *Context) []*PendingParse {
	if d.inner != nil && d.inner.Parser == delegator {
		return attempt(ctx, delegator, d.inner.InputStart, d.inner)
	}
	return attempt(ctx, d.delegate, d.start, d.inner)
}

func (d *delegation) wrap(r *PendingParse) *PendingParse {
	next := *d
	next.inner = r
	return &PendingParse{
		Parser:      delegator,
		Input:       r.Input,
		InputStart:  d.start,
		InputEnd:    r.InputEnd,
		Score:       r.Score,
		MayContinue: true,
		State:       &next,
	}
}

// eager keeps the finished candidates among parses derived from an eager
// parse, marked eager themselves.
func eager(parses []*PendingParse) []*PendingParse {
	var out []*PendingParse
	for _, p := range parses {
		if p.MayContinue || p.Expression == nil {
			continue
		}
		q := *p
		q.Eager = true
		out = append(out, &q)
	}
	return out
}

type delegateParser struct{}

var delegator Parser = delegateParser{}

func (delegateParser) Name() string { return "delegate" }

func (delegateParser) AttemptParse(ctx *Context, start int, previous *PendingParse) ([]*PendingParse, error) {
	if previous == nil {
		return nil, fmt.Errorf("%w: delegate placeholders are created by Context.Delegate", ErrMalformedContinuation)
	}
	d, ok := previous.State.(*delegation)
	if !ok {
		return nil, fmt.Errorf("%w: delegate cannot resume state %T", ErrMalformedContinuation, previous.State)
	}
	if err := CheckContinuation(ctx, start, previous); err != nil {
		return nil, err
	}
	return d.run(ctx), nil
}

// Path returns the delegation path that leads to p, outermost first.
func Path(p *PendingParse) []StackItem {
	d, ok := p.State.(*delegation)
	if !ok {
		return nil
	}
	return append(slices.Clone(d.parentStack), StackItem{Parser: d.delegate, Start: d.start})
}
