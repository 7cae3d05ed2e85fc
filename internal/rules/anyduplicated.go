package rules

import (
	"fmt"

	"rlint/internal/diag"
	"rlint/internal/syntax"
)

// checkAnyDuplicated flags any(duplicated(x)). anyDuplicated() short-circuits
// at the first duplicate and allocates nothing, where duplicated() always
// materializes a full logical vector.
func checkAnyDuplicated(rctx *Context, id syntax.NodeID) (*diag.Diagnostic, error) {
	if calleeName(rctx, id) != "any" {
		return nil, nil
	}
	inner := singleArg(rctx, id)
	_, dupArg, ok := simpleCallOf(rctx, inner, "duplicated")
	if !ok {
		return nil, nil
	}

	node := rctx.Tree.Get(id)
	replacement := fmt.Sprintf("anyDuplicated(%s) > 0", rctx.Text(dupArg))
	d := diag.NewWarning(diag.LintAnyDuplicated, node.Span,
		fmt.Sprintf("any(duplicated(...)) scans the whole input; use %s", replacement)).
		WithFix(fixFor(rctx, id, "use anyDuplicated()", node.Span, replacement, diag.FixSafe))
	return &d, nil
}
