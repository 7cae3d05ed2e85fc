package syntax

import (
	"fmt"

	"fortio.org/safecast"

	"rlint/internal/source"
	"rlint/internal/token"
)

// Builder assembles a Tree bottom-up during parsing. Node spans are derived
// from the defining token and widened over children as they attach.
type Builder struct {
	file     source.FileID
	nodes    []Node
	comments []token.Trivia
	errs     int
}

func NewBuilder(file source.FileID) *Builder {
	return &Builder{
		file:  file,
		nodes: make([]Node, 1, 64), // slot 0: invalid sentinel
	}
}

// Leaf adds a childless node for tok.
func (b *Builder) Leaf(kind NodeKind, tok token.Token) NodeID {
	return b.add(Node{
		Kind: kind,
		Span: tok.Span,
		Full: tok.FullSpan(),
		Tok:  tok,
	})
}

// Node adds an interior node. tok is the defining token (operator, keyword,
// or opening delimiter); children become owned by the new node and must not
// already have a parent.
func (b *Builder) Node(kind NodeKind, tok token.Token, children ...NodeID) NodeID {
	n := Node{
		Kind: kind,
		Span: tok.Span,
		Full: tok.FullSpan(),
		Tok:  tok,
	}
	id := b.add(n)
	for _, child := range children {
		b.Attach(id, child)
	}
	return id
}

// Attach appends child to parent and widens the parent's spans.
func (b *Builder) Attach(parent, child NodeID) {
	if child == NoNode {
		return
	}
	p := &b.nodes[parent]
	c := &b.nodes[child]
	c.Parent = parent
	p.Children = append(p.Children, child)
	p.Span = p.Span.Cover(c.Span)
	p.Full = p.Full.Cover(c.Full)
}

// CoverSpan widens a node's trimmed span, used for closing delimiters.
func (b *Builder) CoverSpan(id NodeID, sp source.Span) {
	n := &b.nodes[id]
	n.Span = n.Span.Cover(sp)
	n.Full = n.Full.Cover(sp)
}

// AddComments records comment trivia encountered on a token.
func (b *Builder) AddComments(trivia []token.Trivia) {
	for _, tr := range trivia {
		if tr.Kind == token.TriviaComment {
			b.comments = append(b.comments, tr)
		}
	}
}

// CountError bumps the error-node counter.
func (b *Builder) CountError() {
	b.errs++
}

// Build finalizes the tree with the given root.
func (b *Builder) Build(root NodeID) *Tree {
	return &Tree{
		File:     b.file,
		Root:     root,
		nodes:    b.nodes,
		comments: b.comments,
		errs:     b.errs,
	}
}

func (b *Builder) add(n Node) NodeID {
	idx, err := safecast.Conv[uint32](len(b.nodes))
	if err != nil {
		panic(fmt.Errorf("node count overflow: %w", err))
	}
	b.nodes = append(b.nodes, n)
	return NodeID(idx)
}

// Get exposes a node during construction; the parser uses it to inspect
// children it has already built.
func (b *Builder) Get(id NodeID) *Node {
	return &b.nodes[id]
}
