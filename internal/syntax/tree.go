package syntax

import (
	"sort"

	"rlint/internal/source"
	"rlint/internal/token"
)

// NodeID indexes a node in its Tree's arena. NoNode (0) is the absent value;
// slot 0 of every arena holds an invalid sentinel.
type NodeID uint32

const NoNode NodeID = 0

// Node is one element of the immutable syntax tree. Span is the trimmed
// range of the node's own tokens; Full additionally covers the leading
// trivia of its first token, which is what comment-preservation checks use.
type Node struct {
	Kind     NodeKind
	Span     source.Span
	Full     source.Span
	Parent   NodeID
	Children []NodeID
	Tok      token.Token // leaf token, or the operator of Binary/Unary
}

// Tree is the lossless parse result for a single file. Nodes are addressed
// by NodeID and never mutated after Build returns.
type Tree struct {
	File     source.FileID
	Root     NodeID
	nodes    []Node
	comments []token.Trivia // every comment in the file, in source order
	errs     int
}

// Get returns the node for id. The returned pointer must be treated as
// read-only; the tree is shared between rules.
func (t *Tree) Get(id NodeID) *Node {
	return &t.nodes[id]
}

// Kind returns the node kind, KindInvalid for NoNode.
func (t *Tree) Kind(id NodeID) NodeKind {
	if id == NoNode {
		return KindInvalid
	}
	return t.nodes[id].Kind
}

// ParentOf returns the parent id, NoNode for the root.
func (t *Tree) ParentOf(id NodeID) NodeID {
	return t.nodes[id].Parent
}

// ChildrenOf returns the node's children in source order.
func (t *Tree) ChildrenOf(id NodeID) []NodeID {
	return t.nodes[id].Children
}

// Child returns the i-th child, or NoNode when out of range.
func (t *Tree) Child(id NodeID, i int) NodeID {
	ch := t.nodes[id].Children
	if i < 0 || i >= len(ch) {
		return NoNode
	}
	return ch[i]
}

// Len returns the number of nodes, the sentinel included.
func (t *Tree) Len() int {
	return len(t.nodes)
}

// ErrorCount returns how many error nodes the parser produced.
func (t *Tree) ErrorCount() int {
	return t.errs
}

// Comments returns every comment in the file in source order.
func (t *Tree) Comments() []token.Trivia {
	return t.comments
}

// HasCommentIn reports whether any comment overlaps span.
func (t *Tree) HasCommentIn(span source.Span) bool {
	// Comments are sorted by start; find the first ending after span.Start.
	idx := sort.Search(len(t.comments), func(i int) bool {
		return t.comments[i].Span.End > span.Start
	})
	for ; idx < len(t.comments); idx++ {
		c := t.comments[idx].Span
		if c.Start >= span.End {
			break
		}
		if span.Overlaps(c) {
			return true
		}
	}
	return false
}

// Walk traverses the subtree at id in source order, calling enter before a
// node's children and leave after them. A false return from enter prunes
// the subtree.
func (t *Tree) Walk(id NodeID, enter func(NodeID) bool, leave func(NodeID)) {
	if id == NoNode {
		return
	}
	if enter != nil && !enter(id) {
		return
	}
	for _, child := range t.nodes[id].Children {
		t.Walk(child, enter, leave)
	}
	if leave != nil {
		leave(id)
	}
}

// Text returns the source text of the node's trimmed span.
func (t *Tree) Text(fs *source.FileSet, id NodeID) string {
	return string(fs.Text(t.nodes[id].Span))
}
