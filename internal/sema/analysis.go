package sema

import "strings"

// Derived analyses over the finished model. These consume the model; they
// are not part of it.

// UnusedBindings returns bindings with zero read references, in declaration
// order. Writes alone do not count as use. Names starting with a dot are
// conventionally intentional ("ignored") and excluded here; rule-level
// config can exclude more.
func (m *Model) UnusedBindings() []*Binding {
	var out []*Binding
	for i := 1; i < len(m.Bindings); i++ {
		b := &m.Bindings[i]
		if strings.HasPrefix(m.Name(b.Name), ".") {
			continue
		}
		if m.hasRead(b) {
			continue
		}
		out = append(out, b)
	}
	return out
}

func (m *Model) hasRead(b *Binding) bool {
	for _, refID := range b.Refs {
		if m.Refs[refID].Kind == RefRead {
			return true
		}
	}
	return false
}

// UnresolvedRefs returns references that matched neither a binding in any
// enclosing scope nor the globals set, in source order.
func (m *Model) UnresolvedRefs() []*Reference {
	var out []*Reference
	for i := 1; i < len(m.Refs); i++ {
		r := &m.Refs[i]
		if r.Binding == NoBinding && !r.Global {
			out = append(out, r)
		}
	}
	return out
}
