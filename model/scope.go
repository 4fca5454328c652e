package model

import (
	"sort"
	"strings"

	"golang.org/x/text/cases"
)

type Member struct {
	Name string
	Type Type
	Doc  string
}

type Scope interface {
	// MembersByPrefix returns the members whose name starts with prefix,
	// compared case-insensitively.
	MembersByPrefix(prefix string) []*Member
	Parent() Scope
}

type MemberScope struct {
	parent  Scope
	members []*Member
	folded  []string
}

func NewScope(parent Scope, members ...*Member) *MemberScope {
	s := &MemberScope{parent: parent}
	s.Add(members...)
	return s
}

func (s *MemberScope) Add(members ...*Member) {
	caser := cases.Fold()
	for _, m := range members {
		s.members = append(s.members, m)
		s.folded = append(s.folded, caser.String(m.Name))
	}
	sort.Sort(byFoldedName{s})
}

func (s *MemberScope) Parent() Scope {
	return s.parent
}

func (s *MemberScope) Members() []*Member {
	return s.members
}

func (s *MemberScope) Lookup(name string) *Member {
	for _, m := range s.members {
		if m.Name == name {
			return m
		}
	}
	return nil
}

func (s *MemberScope) MembersByPrefix(prefix string) []*Member {
	prefix = Fold(prefix)
	i := sort.SearchStrings(s.folded, prefix)
	var result []*Member
	for ; i < len(s.folded) && strings.HasPrefix(s.folded[i], prefix); i++ {
		result = append(result, s.members[i])
	}
	return result
}

type byFoldedName struct{ s *MemberScope }

func (b byFoldedName) Len() int { return len(b.s.members) }

func (b byFoldedName) Less(i, j int) bool {
	if b.s.folded[i] != b.s.folded[j] {
		return b.s.folded[i] < b.s.folded[j]
	}
	return b.s.members[i].Name < b.s.members[j].Name
}

func (b byFoldedName) Swap(i, j int) {
	b.s.members[i], b.s.members[j] = b.s.members[j], b.s.members[i]
	b.s.folded[i], b.s.folded[j] = b.s.folded[j], b.s.folded[i]
}

// Fold returns the case-folded form of s used for all name comparisons.
func Fold(s string) string {
	return cases.Fold().String(s)
}

// Chain lists scopes and all of their parents, innermost first. A scope
// reachable from more than one starting point is listed once.
func Chain(scopes ...Scope) []Scope {
	var chain []Scope
	seen := make(map[Scope]bool)
	for _, s := range scopes {
		for ; s != nil; s = s.Parent() {
			if seen[s] {
				break
			}
			seen[s] = true
			chain = append(chain, s)
		}
	}
	return chain
}
