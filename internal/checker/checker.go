package checker

import (
	"fmt"

	"rlint/internal/diag"
	"rlint/internal/rules"
	"rlint/internal/suppress"
	"rlint/internal/syntax"
)

// Checker dispatches the enabled rules over one parsed file: node-local
// rules in a single tree walk through a static kind table, model rules once
// after it. A Checker is immutable after New and safe to share across files.
type Checker struct {
	byKind     map[syntax.NodeKind][]rules.Rule
	modelRules []rules.ModelRule
}

// New builds a checker limited to the enabled rule names; nil enables every
// rule. Unknown names in the set are ignored here, config validates them.
func New(enabled map[string]bool) *Checker {
	var kept []rules.Rule
	for _, r := range rules.All() {
		if enabled == nil || enabled[r.Name] {
			kept = append(kept, r)
		}
	}
	c := &Checker{byKind: rules.ByKind(kept)}
	for _, r := range rules.ModelRules() {
		if enabled == nil || enabled[r.Name] {
			c.modelRules = append(c.modelRules, r)
		}
	}
	return c
}

// Run checks one file into bag. Findings a nolint directive covers are
// dropped before they reach the bag. A rule returning an error aborts the
// whole pass: a panicking or failing rule means the results cannot be
// trusted, not that one finding is missing.
func (c *Checker) Run(rctx *rules.Context, sup *suppress.Index, bag *diag.Bag) error {
	var failure error
	rctx.Tree.Walk(rctx.Tree.Root, func(id syntax.NodeID) bool {
		if failure != nil {
			return false
		}
		for _, rule := range c.byKind[rctx.Tree.Kind(id)] {
			d, err := rule.Check(rctx, id)
			if err != nil {
				failure = fmt.Errorf("rule %s: %w", rule.Name, err)
				return false
			}
			if d == nil || sup.ShouldSkip(d.Primary, rule.Name) {
				continue
			}
			bag.Add(*d)
		}
		return true
	}, nil)
	if failure != nil {
		return failure
	}

	for _, rule := range c.modelRules {
		ds, err := rule.Check(rctx)
		if err != nil {
			return fmt.Errorf("rule %s: %w", rule.Name, err)
		}
		for _, d := range ds {
			if sup.ShouldSkip(d.Primary, rule.Name) {
				continue
			}
			bag.Add(d)
		}
	}
	return nil
}
