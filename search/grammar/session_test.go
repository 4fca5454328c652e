package grammar

import (
	"fmt"
	"testing"

	"github.com/dhamidi/palette/env"
	"github.com/dhamidi/palette/search"
	"github.com/google/go-cmp/cmp"
)

// TestTypingArgumentsMatchesSearch types calls and constructions with
// arguments one character at a time against the built-in environment.
func TestTypingArgumentsMatchesSearch(t *testing.T) {
	e, err := env.Default()
	if err != nil {
		t.Fatal(err)
	}
	reg := NewRegistry(DefaultOptions())
	se := e.Search()

	render := func(cs []*search.Candidate) []string {
		var out []string
		for _, c := range cs {
			out = append(out, fmt.Sprintf("%s %.3f %s", c.Code(), c.Score, c.Parser))
		}
		return out
	}

	tests := []struct {
		text string
		want string
	}{
		{"Math.max(1, 2)", "Math.max(1, 2)"},
		{"new Date(0)", "new Date(0)"},
		{"parseInt('7')", "parseInt('7')"},
		{"new Point(1, 2)", "new Point(1, 2)"},
		{"Math.abs(Math.PI)", "Math.abs(Math.PI)"},
		{"parseInt(\"42\", 10)", "parseInt(\"42\", 10)"},
	}

	for _, tt := range tests {
		t.Run(tt.text, func(t *testing.T) {
			s := search.NewSession(reg, se, search.WithMaxResults(0))
			for i := 1; i < len(tt.text); i++ {
				s.Update(tt.text[:i])
			}
			typed := s.Update(tt.text)
			fresh := search.Search(tt.text, reg, se, search.WithMaxResults(0))

			if diff := cmp.Diff(render(fresh), render(typed)); diff != "" {
				t.Errorf("typed differs from search (-search +typed):\n%s", diff)
			}
			if !contains(codes(typed), tt.want) {
				t.Errorf("typed candidates = %v, missing %s", codes(typed), tt.want)
			}
			if n := s.Violations(); n != 0 {
				t.Errorf("Violations() = %d, want 0", n)
			}
		})
	}
}
