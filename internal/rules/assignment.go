package rules

import (
	"fmt"

	"rlint/internal/diag"
	"rlint/internal/syntax"
	"rlint/internal/token"
)

// checkAssignmentOp enforces a single assignment style. In "arrow" style
// (the default) `=` at statement level and the right-assign arrows are
// flagged; in "equals" style `<-` is flagged instead. Named call arguments
// are parsed as Arg nodes, not Binary, so they never reach this check.
func checkAssignmentOp(rctx *Context, id syntax.NodeID) (*diag.Diagnostic, error) {
	node := rctx.Tree.Get(id)
	style := rctx.Options.AssignmentStyle
	if style == "" {
		style = "arrow"
	}

	switch node.Tok.Kind {
	case token.Eq:
		if style != "arrow" {
			return nil, nil
		}
		d := diag.NewWarning(diag.LintAssignmentOp, node.Tok.Span,
			"use <-, not =, for assignment").
			WithFix(fixFor(rctx, id, "replace = with <-", node.Tok.Span, "<-", diag.FixSafe))
		return &d, nil

	case token.Arrow:
		if style != "equals" {
			return nil, nil
		}
		d := diag.NewWarning(diag.LintAssignmentOp, node.Tok.Span,
			"use =, not <-, for assignment").
			WithFix(fixFor(rctx, id, "replace <- with =", node.Tok.Span, "=", diag.FixSafe))
		return &d, nil

	case token.RightArrow, token.RightSuper:
		if style != "arrow" {
			return nil, nil
		}
		lhs, rhs := rctx.Tree.Child(id, 0), rctx.Tree.Child(id, 1)
		if lhs == syntax.NoNode || rhs == syntax.NoNode {
			return nil, nil
		}
		op := "<-"
		if node.Tok.Kind == token.RightSuper {
			op = "<<-"
		}
		// The fix rewrites the whole expression, so the whole expression is
		// what gets reported.
		d := diag.NewWarning(diag.LintAssignmentOp, node.Span,
			fmt.Sprintf("use left assignment (%s), not %s", op, node.Tok.Text)).
			WithFix(fixFor(rctx, id, "rewrite as left assignment", node.Span,
				fmt.Sprintf("%s %s %s", rctx.Text(rhs), op, rctx.Text(lhs)), diag.FixSafe))
		return &d, nil
	}
	return nil, nil
}
