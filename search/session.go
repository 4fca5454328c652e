package search

import (
	"sort"
	"strings"

	"github.com/dhamidi/palette/model"
	"github.com/tliron/commonlog"
)

const DefaultMaxResults = 20

// Environment is what the document exposes at the point of search.
type Environment struct {
	// Scopes are searched innermost first, each followed by its parents.
	Scopes []model.Scope

	// Targets are the insertion points candidates are matched against.
	Targets []model.Target

	// Expect restricts candidates to values of this type.
	Expect model.Type
}

type Option func(*Session)

func WithMaxResults(n int) Option {
	return func(s *Session) {
		s.maxResults = n
	}
}

func WithLogger(l commonlog.Logger) Option {
	return func(s *Session) {
		s.log = l
	}
}

// Session owns the live generation of one search box. It is not safe for
// concurrent use.
type Session struct {
	registry   *Registry
	env        Environment
	maxResults int
	log        commonlog.Logger

	started    bool
	text       string
	generation []*PendingParse
	candidates []*Candidate
	nextID     int
	violations int
}

func NewSession(registry *Registry, env Environment, opts ...Option) *Session {
	s := &Session{
		registry:   registry,
		env:        env,
		maxResults: DefaultMaxResults,
		log:        log,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Search ranks the candidates for text from a cold start.
func Search(text string, registry *Registry, env Environment, opts ...Option) []*Candidate {
	return NewSession(registry, env, opts...).Update(text)
}

func (s *Session) Text() string {
	return s.text
}

// Violations counts the malformed continuations met over the session's
// lifetime. It stays zero unless the engine itself is broken.
func (s *Session) Violations() int {
	return s.violations
}

// Generation returns the parses that will be resumed if the next update
// appends to the current text.
func (s *Session) Generation() []*PendingParse {
	return s.generation
}

func (s *Session) Reset() {
	s.started = false
	s.text = ""
	s.generation = nil
	s.candidates = nil
}

// Update re-derives the candidates for text. When text extends the previous
// text only the parses that may continue are resumed.
func (s *Session) Update(text string) []*Candidate {
	if s.started && text == s.text {
		return s.candidates
	}

	ctx := NewContext(text, s.registry, s.env)
	ctx.log = s.log

	var parses []*PendingParse
	if s.started && strings.HasPrefix(text, s.text) {
		for _, p := range s.generation {
			parses = append(parses, Run(ctx, p.Parser, p.InputStart, p)...)
		}
	} else {
		for _, p := range s.registry.Values() {
			parses = append(parses, Run(ctx, p, 0, nil)...)
		}
	}

	if n := ctx.Violations(); n > 0 {
		s.violations += n
		s.log.Errorf("search %q: %d malformed continuations", text, n)
	}

	s.started = true
	s.text = text
	s.generation = s.generation[:0:0]
	for _, p := range parses {
		if p.MayContinue {
			s.generation = append(s.generation, p)
		}
	}
	s.candidates = s.rank(parses)
	s.log.Debugf("search %q: %d live parses, %d candidates", text, len(s.generation), len(s.candidates))
	return s.candidates
}

func (s *Session) rank(parses []*PendingParse) []*Candidate {
	best := make(map[string]*Candidate)
	var ranked []*Candidate
	for _, p := range parses {
		c := p.CandidateSnippet()
		if c == nil {
			continue
		}
		key := c.Code()
		if prev, ok := best[key]; ok {
			if c.Score > prev.Score || (c.Score == prev.Score && c.Parser < prev.Parser) {
				prev.Score = c.Score
				prev.Parser = c.Parser
				prev.Expr = c.Expr
			}
			continue
		}
		best[key] = c
		ranked = append(ranked, c)
	}

	sort.Slice(ranked, func(i, j int) bool {
		if ranked[i].Score != ranked[j].Score {
			return ranked[i].Score > ranked[j].Score
		}
		return ranked[i].Code() < ranked[j].Code()
	})
	if s.maxResults > 0 && len(ranked) > s.maxResults {
		ranked = ranked[:s.maxResults]
	}

	for _, c := range ranked {
		s.nextID++
		c.ID = s.nextID
		for _, t := range s.env.Targets {
			if t.Accepts(c.Expr) {
				c.Targets = append(c.Targets, t)
			}
		}
	}
	return ranked
}
