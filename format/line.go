package format

import (
	"fmt"
	"io"
	"strings"

	"github.com/dhamidi/palette/search"
)

// LineEncoder writes one tab separated record per candidate, for use with
// cut, awk and friends.
type LineEncoder struct {
	w          io.Writer
	candidates []*search.Candidate
}

func NewLineEncoder(w io.Writer) *LineEncoder {
	return &LineEncoder{w: w}
}

func (e *LineEncoder) Encode(candidates []*search.Candidate) error {
	e.candidates = candidates
	text, err := e.MarshalText()
	if err != nil {
		return err
	}
	_, err = e.w.Write(text)
	return err
}

func (e *LineEncoder) MarshalText() ([]byte, error) {
	var sb strings.Builder
	for _, c := range e.candidates {
		fmt.Fprintf(&sb, "%d\t%s\t%s\t%s\t%.3f\t%s\t%s\n",
			c.ID,
			c.Code(),
			c.TypeName(),
			kind(c),
			c.Score,
			c.Parser,
			strings.Join(targetNames(c), ","),
		)
	}
	return []byte(sb.String()), nil
}
