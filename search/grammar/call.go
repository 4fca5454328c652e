package grammar

import (
	"fmt"

	"github.com/dhamidi/palette/model"
	"github.com/dhamidi/palette/search"
)

// Call matches a function value followed by its argument list. It keeps no
// state of its own: everything it tracks lives in delegation placeholders.
type Call struct {
	args search.Parser
}

func NewCall(args search.Parser) *Call {
	return &Call{args: args}
}

func (c *Call) Name() string {
	return "call"
}

func (c *Call) AttemptParse(ctx *search.Context, start int, previous *search.PendingParse) ([]*search.PendingParse, error) {
	if previous != nil {
		return nil, fmt.Errorf("%w: call has no continuation of its own", search.ErrMalformedContinuation)
	}
	return ctx.Delegate(search.Constraint{Value: isFunction}, start, c.onCallee(start)), nil
}

func (c *Call) onCallee(start int) search.OnSuccess {
	return func(ctx *search.Context, callee *search.PendingParse) []*search.PendingParse {
		constraint := search.Constraint{
			Parsers:   []search.Parser{c.args},
			Signature: callee.Expression.Type().Signature(),
		}
		return ctx.Delegate(constraint, callee.InputEnd, func(ctx *search.Context, args *search.PendingParse) []*search.PendingParse {
			list, ok := args.Expression.(*model.Arguments)
			if !ok {
				return nil
			}
			call := model.NewCall(callee.Expression, list)
			return ctx.Terminal(c, start, args.InputEnd, call, (callee.Score+args.Score)/2)
		})
	}
}
