package grammar

import "testing"

func TestString(t *testing.T) {
	tests := []struct {
		text string
		want []parseWant
	}{
		{`'abc'`, []parseWant{{5, `'abc'`, ScoreExact, false}}},
		{`'abc`, []parseWant{{4, `'abc'`, ScoreOpenString, true}}},
		{`'who\'d'`, []parseWant{{8, `'who\'d'`, ScoreExact, false}}},
		{`"a\tb"`, []parseWant{{6, `"a\tb"`, ScoreExact, false}}},
		{`'a\qb'`, []parseWant{{6, `'aqb'`, ScoreExact, false}}},
		{"`x`", []parseWant{{3, "`x`", ScoreExact, false}}},
		{`'ab' x`, []parseWant{{4, `'ab'`, ScoreExact, false}}},
		{`abc def`, []parseWant{
			{3, `"abc"`, ScoreBare, false},
			{7, `"abc def"`, ScoreBare, true},
		}},
		{`abc `, []parseWant{
			{3, `"abc"`, ScoreBare, false},
			{4, `"abc"`, ScoreBare, true},
		}},
		{`ab'c`, []parseWant{{2, `"ab"`, ScoreBare, false}}},
		{` abc`, nil},
	}

	p := NewString(true)
	for _, tt := range tests {
		t.Run(tt.text, func(t *testing.T) {
			checkParses(t, tt.text, run(p, tt.text), tt.want)
		})
	}
}

func TestStringWithoutBareWords(t *testing.T) {
	p := NewString(false)
	if got := run(p, "abc"); len(got) != 0 {
		t.Errorf("parse abc = %v, want nothing", got)
	}
	checkParses(t, `'x'`, run(p, `'x'`), []parseWant{{3, `'x'`, ScoreExact, false}})
}
