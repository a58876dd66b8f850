package metrics

// Registry is an ordered collection of parsers. Lines are dispatched to
// every parser in registration order, and each parser accumulates its own
// series independently.
type Registry struct {
	parsers []Parser
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{
		parsers: make([]Parser, 0),
	}
}

// Register appends a parser. Names are not deduplicated: if two parsers
// produce a series with the same name, the later registration's series
// replaces the earlier one's entry when series are merged by AllSeries.
func (r *Registry) Register(p Parser) {
	r.parsers = append(r.parsers, p)
}

// Dispatch feeds the line to every registered parser and collects the
// results in registration order. Lines matching no parser return an
// empty slice.
func (r *Registry) Dispatch(line string) []*Result {
	results := make([]*Result, 0)
	for _, p := range r.parsers {
		if result := p.Parse(line); result != nil {
			results = append(results, result)
		}
	}
	return results
}

// AllSeries merges every parser's series into one mapping. On a name
// collision the later-registered parser's series wins outright; entries
// are replaced, never appended.
func (r *Registry) AllSeries() map[string][]float64 {
	merged := make(map[string][]float64)
	for _, p := range r.parsers {
		for name, values := range p.Series() {
			merged[name] = values
		}
	}
	return merged
}

// Collisions returns series names claimed by more than one parser, in
// first-seen order. Used by config validation to surface the
// last-registered-wins merge ambiguity before it silently drops data.
func (r *Registry) Collisions() []string {
	seen := make(map[string]int)
	var collisions []string
	for _, p := range r.parsers {
		for name := range p.Series() {
			seen[name]++
			if seen[name] == 2 {
				collisions = append(collisions, name)
			}
		}
	}
	return collisions
}

// Len returns the number of registered parsers.
func (r *Registry) Len() int {
	return len(r.parsers)
}
