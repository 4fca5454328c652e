// Package format renders ranked candidates for terminals and tools.
package format

import (
	"encoding"
	"fmt"
	"io"

	"github.com/dhamidi/palette/search"
)

type Encoder interface {
	encoding.TextMarshaler
	Encode(candidates []*search.Candidate) error
}

// New returns the encoder registered under name.
func New(name string, w io.Writer) (Encoder, error) {
	switch name {
	case "text", "":
		return NewTextEncoder(w), nil
	case "json":
		return NewJSONEncoder(w), nil
	case "line":
		return NewLineEncoder(w), nil
	}
	return nil, fmt.Errorf("unknown format %q (want text, json or line)", name)
}

func kind(c *search.Candidate) string {
	return c.Expr.Kind().String()
}

func targetNames(c *search.Candidate) []string {
	var names []string
	for _, t := range c.Targets {
		names = append(names, t.Name)
	}
	return names
}
