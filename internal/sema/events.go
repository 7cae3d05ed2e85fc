package sema

import (
	"rlint/internal/source"
	"rlint/internal/syntax"
	"rlint/internal/token"
)

// EventKind enumerates the semantic events extracted from a tree walk.
type EventKind uint8

const (
	EvOpenScope EventKind = iota
	EvCloseScope
	EvDeclareBinding
	EvReference
)

// RefKind distinguishes reads from writes.
type RefKind uint8

const (
	RefRead RefKind = iota
	RefWrite
)

func (k RefKind) String() string {
	if k == RefWrite {
		return "write"
	}
	return "read"
}

// Event is one step of the semantic event stream. Extracting events first
// and assembling the model second decouples traversal order from scope
// assembly: closing a scope needs every binding declared anywhere inside it,
// including ones lexically after a reference.
type Event struct {
	Kind    EventKind
	Name    source.StringID // DeclareBinding, Reference
	Span    source.Span
	RefKind RefKind // Reference only
}

// extractor walks the syntax tree and emits events in source order.
type extractor struct {
	tree     *syntax.Tree
	interner *source.Interner
	events   []Event
}

// ExtractEvents produces the ordered event stream for tree. The root scope
// is opened before the walk and closed explicitly afterwards, since the
// top-level node does not trigger a close on its own.
func ExtractEvents(tree *syntax.Tree, interner *source.Interner) []Event {
	x := &extractor{
		tree:     tree,
		interner: interner,
		events:   make([]Event, 0, tree.Len()),
	}

	rootSpan := tree.Get(tree.Root).Span
	x.emit(Event{Kind: EvOpenScope, Span: rootSpan})
	for _, child := range tree.ChildrenOf(tree.Root) {
		x.walk(child)
	}
	x.emit(Event{Kind: EvCloseScope, Span: rootSpan})
	return x.events
}

func (x *extractor) emit(ev Event) {
	x.events = append(x.events, ev)
}

func (x *extractor) intern(id syntax.NodeID) source.StringID {
	return x.interner.Intern(x.tree.Get(id).Tok.Text)
}

func (x *extractor) walk(id syntax.NodeID) {
	if id == syntax.NoNode {
		return
	}
	n := x.tree.Get(id)

	switch n.Kind {
	case syntax.KindIdent:
		x.emit(Event{Kind: EvReference, Name: x.intern(id), Span: n.Span, RefKind: RefRead})

	case syntax.KindBinary:
		x.walkBinary(id, n)

	case syntax.KindUnary:
		if n.Tok.Kind == token.Tilde {
			// Formula operands name data columns, not variables in scope.
			return
		}
		x.walkChildren(id)

	case syntax.KindFunction:
		x.walkFunction(id, n)

	case syntax.KindFor:
		// for (v in seq) body: v is a binding in the enclosing scope.
		children := n.Children
		if len(children) == 3 {
			loopVar := x.tree.Get(children[0])
			if loopVar.Kind == syntax.KindIdent {
				x.emit(Event{Kind: EvDeclareBinding, Name: x.intern(children[0]), Span: loopVar.Span})
			}
			x.walk(children[1])
			x.walk(children[2])
			return
		}
		x.walkChildren(id)

	case syntax.KindMember:
		// x$field: only the subject is a variable reference.
		x.walk(x.tree.Child(id, 0))

	case syntax.KindNamespace:
		// pkg::name references nothing in file scope.
		return

	case syntax.KindArg:
		x.walkArg(id, n)

	default:
		x.walkChildren(id)
	}
}

func (x *extractor) walkChildren(id syntax.NodeID) {
	for _, child := range x.tree.ChildrenOf(id) {
		x.walk(child)
	}
}

func (x *extractor) walkBinary(id syntax.NodeID, n *syntax.Node) {
	children := n.Children
	if len(children) != 2 {
		x.walkChildren(id)
		return
	}
	lhs, rhs := children[0], children[1]

	switch n.Tok.Kind {
	case token.Arrow, token.Eq:
		x.walkAssignTarget(lhs, false)
		x.walk(rhs)
	case token.SuperArrow:
		x.walkAssignTarget(lhs, true)
		x.walk(rhs)
	case token.RightArrow:
		x.walk(lhs)
		x.walkAssignTarget(rhs, false)
	case token.RightSuper:
		x.walk(lhs)
		x.walkAssignTarget(rhs, true)
	case token.Tilde:
		// Formula: see KindUnary.
	default:
		x.walk(lhs)
		x.walk(rhs)
	}
}

// walkAssignTarget handles the destination of an assignment. A plain
// identifier declares a binding (or, for super-assignment, writes through to
// an enclosing one); any subscripted form both reads and writes its base.
func (x *extractor) walkAssignTarget(id syntax.NodeID, super bool) {
	n := x.tree.Get(id)
	switch n.Kind {
	case syntax.KindIdent:
		if super {
			x.emit(Event{Kind: EvReference, Name: x.intern(id), Span: n.Span, RefKind: RefWrite})
			return
		}
		x.emit(Event{Kind: EvDeclareBinding, Name: x.intern(id), Span: n.Span})

	case syntax.KindIndex, syntax.KindMember:
		// x[i] <- v, x$f <- v: the base is written in place, subscripts are
		// ordinary reads.
		base := x.tree.Child(id, 0)
		if baseNode := x.tree.Get(base); baseNode.Kind == syntax.KindIdent {
			x.emit(Event{Kind: EvReference, Name: x.intern(base), Span: baseNode.Span, RefKind: RefWrite})
		} else {
			x.walk(base)
		}
		for _, child := range n.Children[1:] {
			if n.Kind == syntax.KindIndex {
				x.walk(child)
			}
		}

	case syntax.KindString:
		// "name" <- value declares like an identifier would.
		x.emit(Event{Kind: EvDeclareBinding, Name: x.interner.Intern(unquote(n.Tok.Text)), Span: n.Span})

	case syntax.KindCall:
		// Replacement function target: names(x) <- v. The call's subject is
		// written, everything else is read.
		for i, child := range n.Children {
			if i == 1 {
				x.walkAssignTarget(child, super)
				continue
			}
			if i > 1 {
				x.walk(child)
			}
		}

	default:
		x.walk(id)
	}
}

func (x *extractor) walkFunction(id syntax.NodeID, n *syntax.Node) {
	x.emit(Event{Kind: EvOpenScope, Span: n.Span})

	// Declare all formals first: a default may reference a later parameter.
	children := n.Children
	for _, child := range children {
		p := x.tree.Get(child)
		if p.Kind != syntax.KindParam {
			continue
		}
		x.emit(Event{Kind: EvDeclareBinding, Name: x.intern(x.tree.Child(child, 0)), Span: p.Tok.Span})
	}
	for _, child := range children {
		p := x.tree.Get(child)
		if p.Kind == syntax.KindParam {
			// Default value, when present.
			if def := x.tree.Child(child, 1); def != syntax.NoNode {
				x.walk(def)
			}
			continue
		}
		x.walk(child) // body
	}

	x.emit(Event{Kind: EvCloseScope, Span: n.Span})
}

func (x *extractor) walkArg(id syntax.NodeID, n *syntax.Node) {
	if n.Tok.Kind == token.Eq {
		// Named argument: the name is not a variable reference.
		for _, child := range n.Children[1:] {
			x.walk(child)
		}
		return
	}
	x.walkChildren(id)
}

func unquote(s string) string {
	if len(s) >= 2 {
		return s[1 : len(s)-1]
	}
	return s
}
