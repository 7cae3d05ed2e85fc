package rules

import (
	"fmt"

	"rlint/internal/diag"
	"rlint/internal/syntax"
)

// checkDuplicateArguments flags a call passing the same argument name twice.
// R raises "formal argument matched by multiple actual arguments" at run
// time for closures, but list(), c() and ... absorbers accept duplicates
// silently, so this stays a lint and carries no fix.
func checkDuplicateArguments(rctx *Context, id syntax.NodeID) (*diag.Diagnostic, error) {
	var seen map[string]struct{}
	for _, arg := range callArgs(rctx, id) {
		name := argName(rctx, arg)
		if name == "" || name == "..." {
			continue
		}
		if seen == nil {
			seen = make(map[string]struct{})
		}
		if _, dup := seen[name]; dup {
			d := diag.NewWarning(diag.LintDuplicateArguments, rctx.Tree.Get(arg).Span,
				fmt.Sprintf("argument %q passed more than once", name))
			return &d, nil
		}
		seen[name] = struct{}{}
	}
	return nil, nil
}
