package sema

import (
	"fmt"

	"fortio.org/safecast"

	"rlint/internal/source"
)

// Scope is one lexical region. Scopes form a single rooted tree; a scope's
// span is contained in its parent's. Names maps a name to every binding
// declared with it in this scope, in declaration order; new references
// resolve to the most recent one, earlier ones are retained for diagnostics.
type Scope struct {
	ID       ScopeID
	Parent   ScopeID
	Span     source.Span
	Names    map[source.StringID][]BindingID
	Bindings []BindingID
	Children []ScopeID
}

// Binding is a named declaration owned by a scope.
type Binding struct {
	ID    BindingID
	Scope ScopeID
	Name  source.StringID
	Span  source.Span
	Refs  []RefID
}

// Reference is a single use of a name. It links to at most one binding;
// Global marks names satisfied by the configured globals set, and a
// reference with neither is unresolved (a candidate undefined finding, not
// an error: it may name an object defined in an unparsed collaborator file).
type Reference struct {
	ID      RefID
	Name    source.StringID
	Span    source.Span
	Kind    RefKind
	Binding BindingID
	Global  bool
	Scope   ScopeID
}

// Model is the resolved scope/binding/reference graph for one file.
// Bindings and references link to each other by id only; both are owned by
// the model's arenas.
type Model struct {
	Interner *source.Interner
	Root     ScopeID
	Scopes   []Scope
	Bindings []Binding
	Refs     []Reference
}

// Scope returns the scope record for id.
func (m *Model) Scope(id ScopeID) *Scope { return &m.Scopes[id] }

// Binding returns the binding record for id.
func (m *Model) Binding(id BindingID) *Binding { return &m.Bindings[id] }

// Ref returns the reference record for id.
func (m *Model) Ref(id RefID) *Reference { return &m.Refs[id] }

// Name resolves an interned name back to its text.
func (m *Model) Name(id source.StringID) string { return m.Interner.MustLookup(id) }

// builder assembles the model from the ordered event stream.
type builder struct {
	model   *Model
	globals map[source.StringID]struct{}
	stack   []ScopeID
	// pending unresolved references per open scope, retried when the scope
	// closes and its binding set is complete (hoisted definitions).
	pending map[ScopeID][]RefID
}

// BuildModel consumes the event sequence in order and produces the resolved
// model. globals are injected as always-resolved names before the walk, so
// references to builtins never show up as unresolved.
func BuildModel(events []Event, interner *source.Interner, globals map[source.StringID]struct{}) *Model {
	bld := &builder{
		model: &Model{
			Interner: interner,
			Scopes:   make([]Scope, 1, 8),  // slot 0: sentinel
			Bindings: make([]Binding, 1, 16),
			Refs:     make([]Reference, 1, 32),
		},
		globals: globals,
		pending: make(map[ScopeID][]RefID),
	}

	for _, ev := range events {
		switch ev.Kind {
		case EvOpenScope:
			bld.openScope(ev.Span)
		case EvCloseScope:
			bld.closeScope()
		case EvDeclareBinding:
			bld.declare(ev.Name, ev.Span)
		case EvReference:
			bld.reference(ev.Name, ev.Span, ev.RefKind)
		}
	}
	return bld.model
}

func (b *builder) openScope(span source.Span) {
	parent := NoScope
	if len(b.stack) > 0 {
		parent = b.stack[len(b.stack)-1]
	}
	id := ScopeID(b.nextIndex(len(b.model.Scopes)))
	b.model.Scopes = append(b.model.Scopes, Scope{
		ID:     id,
		Parent: parent,
		Span:   span,
		Names:  make(map[source.StringID][]BindingID),
	})
	if parent != NoScope {
		ps := b.model.Scope(parent)
		ps.Children = append(ps.Children, id)
	} else {
		b.model.Root = id
	}
	b.stack = append(b.stack, id)
}

// closeScope pops the innermost scope and finalizes it: unresolved
// references recorded inside retry against the now-complete binding set and
// migrate to the parent when still unmatched.
func (b *builder) closeScope() {
	if len(b.stack) == 0 {
		return
	}
	id := b.stack[len(b.stack)-1]
	b.stack = b.stack[:len(b.stack)-1]

	scope := b.model.Scope(id)
	for _, refID := range b.pending[id] {
		ref := b.model.Ref(refID)
		if bindings, ok := scope.Names[ref.Name]; ok {
			b.bind(refID, bindings[len(bindings)-1])
			continue
		}
		if len(b.stack) > 0 {
			parent := b.stack[len(b.stack)-1]
			b.pending[parent] = append(b.pending[parent], refID)
		}
	}
	delete(b.pending, id)
}

func (b *builder) declare(name source.StringID, span source.Span) {
	if len(b.stack) == 0 {
		return
	}
	scopeID := b.stack[len(b.stack)-1]
	scope := b.model.Scope(scopeID)

	id := BindingID(b.nextIndex(len(b.model.Bindings)))
	b.model.Bindings = append(b.model.Bindings, Binding{
		ID:    id,
		Scope: scopeID,
		Name:  name,
		Span:  span,
	})
	scope.Names[name] = append(scope.Names[name], id)
	scope.Bindings = append(scope.Bindings, id)
}

// reference records a use of name and resolves it immediately against the
// scope chain, innermost first: lexical shadowing falls out of the walk
// order. Unresolved names check the globals set, then park on the innermost
// scope for the close-time retry.
func (b *builder) reference(name source.StringID, span source.Span, kind RefKind) {
	if len(b.stack) == 0 {
		return
	}
	current := b.stack[len(b.stack)-1]

	id := RefID(b.nextIndex(len(b.model.Refs)))
	b.model.Refs = append(b.model.Refs, Reference{
		ID:    id,
		Name:  name,
		Span:  span,
		Kind:  kind,
		Scope: current,
	})

	for i := len(b.stack) - 1; i >= 0; i-- {
		scope := b.model.Scope(b.stack[i])
		if bindings, ok := scope.Names[name]; ok {
			b.bind(id, bindings[len(bindings)-1])
			return
		}
	}

	if _, ok := b.globals[name]; ok {
		b.model.Ref(id).Global = true
		return
	}

	b.pending[current] = append(b.pending[current], id)
}

func (b *builder) bind(refID RefID, bindingID BindingID) {
	b.model.Ref(refID).Binding = bindingID
	binding := b.model.Binding(bindingID)
	binding.Refs = append(binding.Refs, refID)
}

func (b *builder) nextIndex(length int) uint32 {
	idx, err := safecast.Conv[uint32](length)
	if err != nil {
		panic(fmt.Errorf("model arena overflow: %w", err))
	}
	return idx
}
