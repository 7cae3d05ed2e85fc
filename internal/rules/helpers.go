package rules

import (
	"rlint/internal/diag"
	"rlint/internal/source"
	"rlint/internal/syntax"
	"rlint/internal/token"
)

// calleeName returns the function name of a call through a plain identifier,
// or "" for computed callees like f()() or pkg::fn().
func calleeName(rctx *Context, call syntax.NodeID) string {
	callee := rctx.Tree.Child(call, 0)
	if callee == syntax.NoNode {
		return ""
	}
	if n := rctx.Tree.Get(callee); n.Kind == syntax.KindIdent {
		return n.Tok.Text
	}
	return ""
}

// callArgs returns the call's argument nodes (children after the callee).
func callArgs(rctx *Context, call syntax.NodeID) []syntax.NodeID {
	children := rctx.Tree.ChildrenOf(call)
	if len(children) == 0 {
		return nil
	}
	return children[1:]
}

// argName returns the name of a named argument, or "".
func argName(rctx *Context, arg syntax.NodeID) string {
	n := rctx.Tree.Get(arg)
	if n.Kind != syntax.KindArg || n.Tok.Kind != token.Eq {
		return ""
	}
	name := rctx.Tree.Child(arg, 0)
	if name == syntax.NoNode {
		return ""
	}
	return rctx.Tree.Get(name).Tok.Text
}

// argValue returns the value expression of an argument, NoNode when absent.
func argValue(rctx *Context, arg syntax.NodeID) syntax.NodeID {
	n := rctx.Tree.Get(arg)
	if n.Kind != syntax.KindArg {
		return syntax.NoNode
	}
	children := n.Children
	if n.Tok.Kind == token.Eq {
		if len(children) < 2 {
			return syntax.NoNode
		}
		return children[1]
	}
	if len(children) == 0 {
		return syntax.NoNode
	}
	return children[0]
}

// singleArg returns the value of the call's only argument, or NoNode when
// the call does not have exactly one.
func singleArg(rctx *Context, call syntax.NodeID) syntax.NodeID {
	args := callArgs(rctx, call)
	if len(args) != 1 {
		return syntax.NoNode
	}
	return argValue(rctx, args[0])
}

// fixFor builds a fix replacing span with newText, marking Skip when the
// surrounding range still contains a comment that a blind splice would drop.
func fixFor(rctx *Context, node syntax.NodeID, title string, span source.Span, newText string, applicability diag.Applicability) diag.Fix {
	full := rctx.Tree.Get(node).Full
	return diag.Fix{
		Title:         title,
		Span:          span,
		NewText:       newText,
		Skip:          rctx.Tree.HasCommentIn(full.Cover(span)),
		Applicability: applicability,
	}
}

// isStringNode reports whether id is a string literal, returning its quoted
// source text.
func isStringNode(rctx *Context, id syntax.NodeID) (string, bool) {
	if id == syntax.NoNode {
		return "", false
	}
	n := rctx.Tree.Get(id)
	if n.Kind != syntax.KindString {
		return "", false
	}
	return n.Tok.Text, true
}

// isNumberText reports whether id is a number literal with exactly text.
func isNumberText(rctx *Context, id syntax.NodeID, text string) bool {
	if id == syntax.NoNode {
		return false
	}
	n := rctx.Tree.Get(id)
	return n.Kind == syntax.KindNumber && n.Tok.Text == text
}

// simpleCallOf reports whether id is a call of one of the named functions
// with exactly one argument, returning the name and argument.
func simpleCallOf(rctx *Context, id syntax.NodeID, names ...string) (string, syntax.NodeID, bool) {
	if id == syntax.NoNode {
		return "", syntax.NoNode, false
	}
	if rctx.Tree.Get(id).Kind != syntax.KindCall {
		return "", syntax.NoNode, false
	}
	name := calleeName(rctx, id)
	for _, want := range names {
		if name == want {
			arg := singleArg(rctx, id)
			if arg == syntax.NoNode {
				return "", syntax.NoNode, false
			}
			return name, arg, true
		}
	}
	return "", syntax.NoNode, false
}
