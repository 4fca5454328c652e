package grammar

import (
	"math"
	"testing"

	"github.com/dhamidi/palette/search"
)

type parseWant struct {
	end   int
	expr  string
	score float64
	open  bool
}

func checkParses(t *testing.T, text string, got []*search.PendingParse, want []parseWant) {
	t.Helper()
	if len(got) != len(want) {
		t.Fatalf("parse %q = %v, want %d parses", text, got, len(want))
	}
	for i, w := range want {
		p := got[i]
		expr := ""
		if p.Expression != nil {
			expr = p.Expression.String()
		}
		if p.InputEnd != w.end {
			t.Errorf("parse %d of %q ends at %d, want %d", i, text, p.InputEnd, w.end)
		}
		if expr != w.expr {
			t.Errorf("parse %d of %q = %q, want %q", i, text, expr, w.expr)
		}
		if w.expr != "" && math.Abs(p.Score-w.score) > 1e-9 {
			t.Errorf("parse %d of %q scored %v, want %v", i, text, p.Score, w.score)
		}
		if p.MayContinue != w.open {
			t.Errorf("parse %d of %q MayContinue = %v, want %v", i, text, p.MayContinue, w.open)
		}
	}
}

func TestNumber(t *testing.T) {
	tests := []struct {
		text string
		want []parseWant
	}{
		{"123", []parseWant{{3, "123", 3, true}}},
		{".123", []parseWant{{4, "0.123", 3, true}}},
		{"-0.5", []parseWant{{4, "-0.5", 3, true}}},
		{"123.", []parseWant{{4, "123", 3, true}}},
		{"+", []parseWant{{1, "", 0, true}}},
		{"+ ", nil},
		{".", []parseWant{{1, "", 0, true}}},
		{"..", nil},
		{"05", []parseWant{{1, "0", 3, false}}},
		{"1e5", []parseWant{{1, "1", 3, false}}},
		{"12 ", []parseWant{{2, "12", 3, false}}},
		{"1.2.3", []parseWant{{3, "1.2", 3, false}}},
		{"I", []parseWant{{1, "Infinity", 1, true}}},
		{"-Inf", []parseWant{{4, "-Infinity", 1 + 2*2.0/7, true}}},
		{"infinity", []parseWant{{8, "Infinity", 3, false}}},
		{"Inx", nil},
		{"Inf)", []parseWant{{3, "Infinity", 1 + 2*2.0/7, false}}},
		{"nan", []parseWant{{3, "NaN", 3, false}}},
		{"-n", nil},
		{"x", nil},
	}

	p := NewNumber(true)
	for _, tt := range tests {
		t.Run(tt.text, func(t *testing.T) {
			checkParses(t, tt.text, run(p, tt.text), tt.want)
		})
	}
}

func TestNumberWithoutSpecials(t *testing.T) {
	p := NewNumber(false)
	for _, text := range []string{"I", "nan", "-Infinity"} {
		if got := run(p, text); len(got) != 0 {
			t.Errorf("parse %q = %v, want nothing", text, got)
		}
	}
}
