package rules

import (
	"fmt"

	"rlint/internal/diag"
	"rlint/internal/syntax"
	"rlint/internal/token"
)

// comparisonOperand splits an ==/!= comparison into the literal side and the
// other side, where isLit identifies the literal. Returns NoNode when the
// node is not such a comparison.
func comparisonOperand(rctx *Context, id syntax.NodeID, lit token.Kind) (other syntax.NodeID, negated bool) {
	node := rctx.Tree.Get(id)
	if node.Tok.Kind != token.EqEq && node.Tok.Kind != token.BangEq {
		return syntax.NoNode, false
	}
	lhs, rhs := rctx.Tree.Child(id, 0), rctx.Tree.Child(id, 1)
	if lhs == syntax.NoNode || rhs == syntax.NoNode {
		return syntax.NoNode, false
	}
	negated = node.Tok.Kind == token.BangEq
	if isLiteralLeaf(rctx, rhs, lit) {
		return lhs, negated
	}
	if isLiteralLeaf(rctx, lhs, lit) {
		return rhs, negated
	}
	return syntax.NoNode, false
}

func isLiteralLeaf(rctx *Context, id syntax.NodeID, lit token.Kind) bool {
	n := rctx.Tree.Get(id)
	return (n.Kind == syntax.KindNull || n.Kind == syntax.KindNA) && n.Tok.Kind == lit
}

// checkNullComparison flags x == NULL and x != NULL. Comparing against NULL
// yields logical(0), so the condition is never TRUE; is.null() is what the
// author meant.
func checkNullComparison(rctx *Context, id syntax.NodeID) (*diag.Diagnostic, error) {
	other, negated := comparisonOperand(rctx, id, token.KwNull)
	if other == syntax.NoNode {
		return nil, nil
	}
	node := rctx.Tree.Get(id)

	call := fmt.Sprintf("is.null(%s)", rctx.Text(other))
	if negated {
		call = "!" + call
	}
	d := diag.NewWarning(diag.LintNullComparison, node.Span,
		fmt.Sprintf("comparison with NULL always has length zero; use %s", call)).
		WithFix(fixFor(rctx, id, "use is.null()", node.Span, call, diag.FixSafe))
	return &d, nil
}

// checkEqualsNA flags x == NA and x != NA, which always evaluate to NA.
func checkEqualsNA(rctx *Context, id syntax.NodeID) (*diag.Diagnostic, error) {
	other, negated := comparisonOperand(rctx, id, token.KwNA)
	if other == syntax.NoNode {
		return nil, nil
	}
	node := rctx.Tree.Get(id)

	call := fmt.Sprintf("is.na(%s)", rctx.Text(other))
	if negated {
		call = "!" + call
	}
	d := diag.NewWarning(diag.LintEqualsNA, node.Span,
		fmt.Sprintf("comparison with NA is always NA; use %s", call)).
		WithFix(fixFor(rctx, id, "use is.na()", node.Span, call, diag.FixSafe))
	return &d, nil
}
