package model

import "strings"

type Param struct {
	Name     string
	Type     Type
	Optional bool
}

func (p Param) String() string {
	var sb strings.Builder
	sb.WriteString(p.Name)
	if p.Optional {
		sb.WriteString("?")
	}
	if p.Type != nil {
		sb.WriteString(": ")
		sb.WriteString(p.Type.String())
	}
	return sb.String()
}

// Autocompletion is a documented example argument list for a signature.
type Autocompletion struct {
	Args  []Expr
	Score float64
}

type Signature struct {
	Params          []Param
	Returns         Type
	Autocompletions []Autocompletion
}

func (s *Signature) Required() int {
	if s == nil {
		return 0
	}
	n := 0
	for _, p := range s.Params {
		if !p.Optional {
			n++
		}
	}
	return n
}

// Param returns the i-th declared parameter. A nil signature accepts any
// argument in any position.
func (s *Signature) Param(i int) (Param, bool) {
	if s == nil {
		return Param{Type: Any}, true
	}
	if i < 0 || i >= len(s.Params) {
		return Param{}, false
	}
	return s.Params[i], true
}

func (s *Signature) String() string {
	if s == nil {
		return "(...)"
	}
	var params []string
	for _, p := range s.Params {
		params = append(params, p.String())
	}
	result := "(" + strings.Join(params, ", ") + ")"
	if s.Returns != nil {
		result += " => " + s.Returns.String()
	}
	return result
}
