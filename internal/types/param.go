package types

import "iter"

// Params is an insertion-ordered mapping from placeholder name to bound value.
// The zero value is ready to use.
type Params struct {
	values map[string]any
	names  []string
}

// NewParams creates an empty Params with room for n entries.
func NewParams(n int) *Params {
	return &Params{
		names:  make([]string, 0, n),
		values: make(map[string]any, n),
	}
}

// Add appends a placeholder binding. Re-adding a name replaces its value
// and keeps its original position.
func (p *Params) Add(name string, value any) {
	if p.values == nil {
		p.values = make(map[string]any)
	}
	if _, ok := p.values[name]; !ok {
		p.names = append(p.names, name)
	}
	p.values[name] = value
}

// Len returns the number of bindings.
func (p *Params) Len() int {
	if p == nil {
		return 0
	}
	return len(p.names)
}

// Get returns the value bound to name.
func (p *Params) Get(name string) (any, bool) {
	if p == nil {
		return nil, false
	}
	v, ok := p.values[name]
	return v, ok
}

// Names returns the placeholder names in emission order.
func (p *Params) Names() []string {
	if p == nil {
		return nil
	}
	out := make([]string, len(p.names))
	copy(out, p.names)
	return out
}

// Values returns the bound values in emission order.
func (p *Params) Values() []any {
	if p == nil {
		return nil
	}
	out := make([]any, len(p.names))
	for i, name := range p.names {
		out[i] = p.values[name]
	}
	return out
}

// All iterates the bindings in emission order.
func (p *Params) All() iter.Seq2[string, any] {
	return func(yield func(string, any) bool) {
		if p == nil {
			return
		}
		for _, name := range p.names {
			if !yield(name, p.values[name]) {
				return
			}
		}
	}
}

// Map returns an unordered copy, convenient for named-parameter APIs.
func (p *Params) Map() map[string]any {
	out := make(map[string]any, p.Len())
	for name, v := range p.All() {
		out[name] = v
	}
	return out
}
