// Package grammar holds the parsers a palette searches with: numeric and
// string literals, identifiers resolved against scopes, and the composite
// call and constructor grammars built on delegation.
package grammar

import (
	"unicode"

	"github.com/dhamidi/palette/model"
	"github.com/dhamidi/palette/search"
)

const (
	ScoreExact      = 3.0
	ScoreOpenString = 2.0
	ScoreBare       = 1.0
)

type Options struct {
	// Specials enables Infinity and NaN number literals.
	Specials bool

	// BareWords lets unquoted words stand for strings.
	BareWords bool
}

func DefaultOptions() Options {
	return Options{Specials: true, BareWords: true}
}

// NewRegistry returns the value parsers in delegation order, with the
// argument list grammar registered as a helper.
func NewRegistry(opts Options) *search.Registry {
	args := NewArguments()
	r := search.NewRegistry(
		NewNumber(opts.Specials),
		NewString(opts.BareWords),
		NewIdentifier(),
		NewCall(args),
		NewNew(args),
	)
	r.AddHelper(args)
	return r
}

// ramp rises linearly from 1 for one matched rune to ScoreExact when all
// total runes are matched.
func ramp(matched, total int) float64 {
	if total <= 1 {
		return ScoreExact
	}
	return 1 + (ScoreExact-1)*float64(matched-1)/float64(total-1)
}

func isIdentStart(r rune) bool {
	return unicode.IsLetter(r) || r == '_' || r == '$'
}

func isIdentPart(r rune) bool {
	return isIdentStart(r) || unicode.IsDigit(r)
}

func isAlnum(r rune) bool {
	return unicode.IsLetter(r) || unicode.IsDigit(r)
}

func isFunction(t model.Type) bool {
	return t.IsFunction()
}

func isConstructor(t model.Type) bool {
	return t.IsConstructor()
}
