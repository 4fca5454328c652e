package grammar

import (
	"testing"

	"github.com/dhamidi/palette/model"
)

func TestNew(t *testing.T) {
	p := NewNew(NewArguments())

	tests := []struct {
		text string
		want string
	}{
		{"new Date()", "new Date()"},
		{"NEW  Date (0)", "new Date(0)"},
		{"new D", "new Date()"},
		{"n", "new Date(0)"},
	}

	for _, tt := range tests {
		t.Run(tt.text, func(t *testing.T) {
			got := final(run(p, tt.text))
			c, ok := got[tt.want]
			if !ok {
				t.Fatalf("parse %q = %v, missing %s", tt.text, got, tt.want)
			}
			if c.Expression.Type() != model.Type(dateClass) {
				t.Errorf("%s has type %s, want Date", tt.want, c.Expression.Type())
			}
		})
	}
}

func TestNewRejects(t *testing.T) {
	p := NewNew(NewArguments())
	for _, text := range []string{"newDate()", "new foo()", "new 1", "nex"} {
		if got := final(run(p, text)); len(got) != 0 {
			t.Errorf("parse %q = %v, want nothing", text, got)
		}
	}
}

func TestNewScoresKeywordProgress(t *testing.T) {
	p := NewNew(NewArguments())
	short := final(run(p, "n"))["new Date()"]
	long := final(run(p, "new"))["new Date()"]
	if short == nil || long == nil {
		t.Fatalf("missing eager constructions: n=%v new=%v", short, long)
	}
	if short.Score >= long.Score {
		t.Errorf("score after n = %v, after new = %v, want it to grow", short.Score, long.Score)
	}
}
