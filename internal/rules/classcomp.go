package rules

import (
	"fmt"

	"rlint/internal/diag"
	"rlint/internal/syntax"
	"rlint/internal/token"
)

// checkClassComparison flags class(x) == "name". class() can return more
// than one element, so == comparisons break on multi-class objects;
// inherits() is the robust form. The fix is unsafe: for a multi-class x the
// two expressions genuinely differ.
func checkClassComparison(rctx *Context, id syntax.NodeID) (*diag.Diagnostic, error) {
	node := rctx.Tree.Get(id)
	if node.Tok.Kind != token.EqEq {
		return nil, nil
	}
	lhs, rhs := rctx.Tree.Child(id, 0), rctx.Tree.Child(id, 1)

	call, lit := lhs, rhs
	if _, _, ok := simpleCallOf(rctx, call, "class"); !ok {
		call, lit = rhs, lhs
	}
	_, subject, ok := simpleCallOf(rctx, call, "class")
	if !ok {
		return nil, nil
	}
	quoted, ok := isStringNode(rctx, lit)
	if !ok {
		return nil, nil
	}

	replacement := fmt.Sprintf("inherits(%s, %s)", rctx.Text(subject), quoted)
	d := diag.NewWarning(diag.LintClassComparison, node.Span,
		fmt.Sprintf("comparing class() with == fails for multi-class objects; use %s", replacement)).
		WithFix(fixFor(rctx, id, "use inherits()", node.Span, replacement, diag.FixUnsafe))
	return &d, nil
}
