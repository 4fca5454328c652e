package format

import (
	"encoding/json"
	"io"

	"github.com/dhamidi/palette/search"
)

type JSONEncoder struct {
	w          io.Writer
	candidates []*search.Candidate
}

func NewJSONEncoder(w io.Writer) *JSONEncoder {
	return &JSONEncoder{w: w}
}

func (e *JSONEncoder) Encode(candidates []*search.Candidate) error {
	e.candidates = candidates
	text, err := e.MarshalText()
	if err != nil {
		return err
	}
	_, err = e.w.Write(append(text, '\n'))
	return err
}

func (e *JSONEncoder) MarshalText() ([]byte, error) {
	return json.MarshalIndent(Candidates(e.candidates), "", "  ")
}

// Candidate is the wire form of a search.Candidate.
type Candidate struct {
	ID      int      `json:"id"`
	Code    string   `json:"code"`
	Type    string   `json:"type,omitempty"`
	Kind    string   `json:"kind"`
	Score   float64  `json:"score"`
	Parser  string   `json:"parser"`
	Targets []string `json:"targets,omitempty"`
}

// Candidates converts candidates to their wire form, preserving rank order.
func Candidates(candidates []*search.Candidate) []Candidate {
	result := make([]Candidate, len(candidates))
	for i, c := range candidates {
		result[i] = Candidate{
			ID:      c.ID,
			Code:    c.Code(),
			Type:    c.TypeName(),
			Kind:    kind(c),
			Score:   c.Score,
			Parser:  c.Parser,
			Targets: targetNames(c),
		}
	}
	return result
}
