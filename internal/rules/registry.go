package rules

import (
	"rlint/internal/diag"
	"rlint/internal/sema"
	"rlint/internal/source"
	"rlint/internal/syntax"
)

// Context carries everything a rule may consult. Rules must not mutate the
// tree or the model.
type Context struct {
	FS      *source.FileSet
	Tree    *syntax.Tree
	Model   *sema.Model
	Options Options
}

// Options holds per-rule configuration resolved from project config.
type Options struct {
	// AssignmentStyle is "arrow" (prefer <-) or "equals" (prefer =).
	AssignmentStyle string
	// UnusedExclude lists binding names never reported as unused.
	UnusedExclude []string
}

// Text returns the source text of a node's trimmed span.
func (c *Context) Text(id syntax.NodeID) string {
	return string(c.FS.Text(c.Tree.Get(id).Span))
}

// CheckFunc inspects one node and returns zero or one finding. A non-nil
// error is fatal for the file's check pass; rules validate node shape
// defensively and return (nil, nil) for shapes they merely do not expect.
type CheckFunc func(rctx *Context, id syntax.NodeID) (*diag.Diagnostic, error)

// ModelCheckFunc runs once per file over the finished semantic model.
type ModelCheckFunc func(rctx *Context) ([]diag.Diagnostic, error)

// Rule is a node-local check dispatched by node kind.
type Rule struct {
	Code  diag.Code
	Name  string
	Kinds []syntax.NodeKind
	Check CheckFunc
}

// ModelRule is a scope-sensitive check over the semantic model.
type ModelRule struct {
	Code  diag.Code
	Name  string
	Check ModelCheckFunc
}

// All returns every node-local rule in registration order. The order is
// load-bearing: within one node it decides rule-discovery order, which the
// patch engine uses as a tie-break.
func All() []Rule {
	return []Rule{
		{Code: diag.LintAssignmentOp, Name: "assignment_op", Kinds: []syntax.NodeKind{syntax.KindBinary}, Check: checkAssignmentOp},
		{Code: diag.LintNullComparison, Name: "null_comparison", Kinds: []syntax.NodeKind{syntax.KindBinary}, Check: checkNullComparison},
		{Code: diag.LintEqualsNA, Name: "equals_na", Kinds: []syntax.NodeKind{syntax.KindBinary}, Check: checkEqualsNA},
		{Code: diag.LintClassComparison, Name: "class_comparison", Kinds: []syntax.NodeKind{syntax.KindBinary}, Check: checkClassComparison},
		{Code: diag.LintSeqLen, Name: "seq_len", Kinds: []syntax.NodeKind{syntax.KindBinary}, Check: checkSeqLen},
		{Code: diag.LintAnyDuplicated, Name: "any_duplicated", Kinds: []syntax.NodeKind{syntax.KindCall}, Check: checkAnyDuplicated},
		{Code: diag.LintDuplicateArguments, Name: "duplicate_arguments", Kinds: []syntax.NodeKind{syntax.KindCall}, Check: checkDuplicateArguments},
		{Code: diag.LintWhileTrue, Name: "while_true", Kinds: []syntax.NodeKind{syntax.KindWhile}, Check: checkWhileTrue},
	}
}

// ModelRules returns the scope-sensitive rules.
func ModelRules() []ModelRule {
	return []ModelRule{
		{Code: diag.LintUnusedBinding, Name: "unused_binding", Check: checkUnusedBindings},
		{Code: diag.LintUndefinedVariable, Name: "undefined_variable", Check: checkUndefinedVariables},
	}
}

// ByKind builds the static node-kind dispatch table.
func ByKind(all []Rule) map[syntax.NodeKind][]Rule {
	out := make(map[syntax.NodeKind][]Rule)
	for _, r := range all {
		for _, k := range r.Kinds {
			out[k] = append(out[k], r)
		}
	}
	return out
}

// Names returns every known rule name, node-local and model rules alike.
func Names() []string {
	var out []string
	for _, r := range All() {
		out = append(out, r.Name)
	}
	for _, r := range ModelRules() {
		out = append(out, r.Name)
	}
	return out
}
