package search

import (
	"fmt"

	"github.com/dhamidi/palette/model"
)

// Candidate is a ranked, insertable suggestion.
type Candidate struct {
	ID      int
	Expr    model.Expr
	Score   float64
	Parser  string
	Targets []model.Target
}

func (c *Candidate) Code() string {
	return c.Expr.String()
}

func (c *Candidate) TypeName() string {
	if t := c.Expr.Type(); t != nil {
		return t.String()
	}
	return ""
}

// BuildEdit attempts to place the candidate at t.
func (c *Candidate) BuildEdit(t model.Target) (*model.Edit, error) {
	return model.NewEdit(t, c.Expr)
}

func (c *Candidate) Render() string {
	return fmt.Sprintf("%s : %s", c.Code(), c.TypeName())
}
