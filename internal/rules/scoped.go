package rules

import (
	"fmt"

	"rlint/internal/diag"
)

// checkUnusedBindings reports bindings with no read reference anywhere.
// Dot-prefixed names are already excluded by the model; the rule-level
// exclude list from config handles the rest (setup hooks, knitr params).
func checkUnusedBindings(rctx *Context) ([]diag.Diagnostic, error) {
	if rctx.Model == nil {
		return nil, nil
	}
	excluded := make(map[string]struct{}, len(rctx.Options.UnusedExclude))
	for _, name := range rctx.Options.UnusedExclude {
		excluded[name] = struct{}{}
	}

	var out []diag.Diagnostic
	for _, b := range rctx.Model.UnusedBindings() {
		name := rctx.Model.Name(b.Name)
		if _, skip := excluded[name]; skip {
			continue
		}
		out = append(out, diag.NewWarning(diag.LintUnusedBinding, b.Span,
			fmt.Sprintf("%s is assigned but never used", name)))
	}
	return out, nil
}

// checkUndefinedVariables reports references that resolved to no binding and
// no configured global. These are candidates, not certainties: the name may
// live in a source()d collaborator file, which is why the finding stays a
// warning and why config `globals` exists.
func checkUndefinedVariables(rctx *Context) ([]diag.Diagnostic, error) {
	if rctx.Model == nil {
		return nil, nil
	}
	var out []diag.Diagnostic
	for _, r := range rctx.Model.UnresolvedRefs() {
		out = append(out, diag.NewWarning(diag.LintUndefinedVariable, r.Span,
			fmt.Sprintf("no visible binding for %s", rctx.Model.Name(r.Name))))
	}
	return out, nil
}
