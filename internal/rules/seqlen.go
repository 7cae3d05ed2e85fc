package rules

import (
	"fmt"

	"rlint/internal/diag"
	"rlint/internal/syntax"
	"rlint/internal/token"
)

// checkSeqLen flags 1:length(x), 1:nrow(x) and 1:ncol(x). When x is empty
// the colon form counts down (1, 0) instead of producing an empty sequence;
// seq_len() handles the zero case. Unsafe because the rewrite changes the
// (usually buggy) empty-input behavior.
func checkSeqLen(rctx *Context, id syntax.NodeID) (*diag.Diagnostic, error) {
	node := rctx.Tree.Get(id)
	if node.Tok.Kind != token.Colon {
		return nil, nil
	}
	if !isNumberText(rctx, rctx.Tree.Child(id, 0), "1") {
		return nil, nil
	}
	name, _, ok := simpleCallOf(rctx, rctx.Tree.Child(id, 1), "length", "nrow", "ncol")
	if !ok {
		return nil, nil
	}

	upper := rctx.Text(rctx.Tree.Child(id, 1))
	replacement := fmt.Sprintf("seq_len(%s)", upper)
	d := diag.NewWarning(diag.LintSeqLen, node.Span,
		fmt.Sprintf("1:%s(...) counts down when the input is empty; use %s", name, replacement)).
		WithFix(fixFor(rctx, id, "use seq_len()", node.Span, replacement, diag.FixUnsafe))
	return &d, nil
}
