package search

// Registry holds the parsers a session starts from. Value parsers are also
// the default delegates; helpers are reachable only by name or by an
// explicit constraint.
type Registry struct {
	values  []Parser
	helpers []Parser
	named   map[string]Parser
}

func NewRegistry(values ...Parser) *Registry {
	r := &Registry{named: make(map[string]Parser)}
	for _, p := range values {
		r.Add(p)
	}
	return r
}

func (r *Registry) Add(p Parser) {
	r.values = append(r.values, p)
	r.named[p.Name()] = p
}

func (r *Registry) AddHelper(p Parser) {
	r.helpers = append(r.helpers, p)
	r.named[p.Name()] = p
}

func (r *Registry) Values() []Parser {
	return r.values
}

func (r *Registry) Lookup(name string) Parser {
	return r.named[name]
}
