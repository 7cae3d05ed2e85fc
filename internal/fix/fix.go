package fix

import (
	"sort"

	"rlint/internal/diag"
)

// Result of one patch pass over a single file.
type Result struct {
	Text     []byte
	Applied  []diag.Diagnostic
	Deferred []diag.Diagnostic // overlapped an earlier fix in this pass
	Skipped  []diag.Diagnostic // Skip flag, or unsafe without opt-in
	Changed  bool
}

// ApplyPass applies every applicable fix in diags to src in one
// left-to-right splice. Fix spans are in the coordinates of src.
//
// Fixes apply in ascending span start order; equal starts fall back to
// discovery order, so the rule that found the site first wins. A fix whose
// span starts before the end of the last applied one would splice into text
// that no longer exists; it is deferred, and the caller's re-lint of the
// rewritten text rediscovers it with fresh coordinates.
func ApplyPass(src []byte, diags []diag.Diagnostic, allowUnsafe bool) Result {
	type cand struct {
		d     diag.Diagnostic
		order int
	}
	var res Result
	var cands []cand
	for i, d := range diags {
		if d.Fix == nil {
			continue
		}
		if d.Fix.Skip || (d.Fix.Applicability == diag.FixUnsafe && !allowUnsafe) {
			res.Skipped = append(res.Skipped, d)
			continue
		}
		cands = append(cands, cand{d: d, order: i})
	}
	sort.SliceStable(cands, func(i, j int) bool {
		a, b := cands[i].d.Fix.Span, cands[j].d.Fix.Span
		if a.Start != b.Start {
			return a.Start < b.Start
		}
		return cands[i].order < cands[j].order
	})

	out := make([]byte, 0, len(src))
	var cursor uint32
	for _, c := range cands {
		sp := c.d.Fix.Span
		if sp.Start < cursor {
			res.Deferred = append(res.Deferred, c.d)
			continue
		}
		out = append(out, src[cursor:sp.Start]...)
		out = append(out, c.d.Fix.NewText...)
		cursor = sp.End
		res.Applied = append(res.Applied, c.d)
	}
	out = append(out, src[cursor:]...)
	res.Text = out
	res.Changed = len(res.Applied) > 0
	return res
}
