package rules

import (
	"rlint/internal/diag"
	"rlint/internal/source"
	"rlint/internal/syntax"
	"rlint/internal/token"
)

// checkWhileTrue rewrites while (TRUE) body as repeat body. The fix replaces
// everything from the while keyword up to the body, so the body keeps its
// exact source form.
func checkWhileTrue(rctx *Context, id syntax.NodeID) (*diag.Diagnostic, error) {
	cond := rctx.Tree.Child(id, 0)
	body := rctx.Tree.Child(id, 1)
	if cond == syntax.NoNode || body == syntax.NoNode {
		return nil, nil
	}
	if rctx.Tree.Get(cond).Tok.Kind != token.KwTrue {
		return nil, nil
	}

	node := rctx.Tree.Get(id)
	head := source.Span{
		File:  node.Span.File,
		Start: node.Span.Start,
		End:   rctx.Tree.Get(body).Span.Start,
	}
	d := diag.NewWarning(diag.LintWhileTrue, node.Span,
		"while (TRUE) is repeat").
		WithFix(fixFor(rctx, id, "use repeat", head, "repeat ", diag.FixSafe))
	return &d, nil
}
