package fix

import "rlint/internal/diag"

// MaxPasses bounds the fix loop. Convergence normally takes two or three
// passes (one to apply, one to confirm nothing new appeared); the cap only
// guards against a rule whose fix re-introduces its own trigger.
const MaxPasses = 8

// Lint re-analyzes text and returns its diagnostics, fixes included. The
// driver supplies this as a fresh parse-and-check of the rewritten source.
type Lint func(text []byte) ([]diag.Diagnostic, error)

// Summary describes a completed fix loop for one file.
type Summary struct {
	Text     []byte
	Passes   int
	Applied  int
	LimitHit bool
}

// Run drives ApplyPass to a fixed point: lint, patch, re-lint the rewritten
// text, until a pass applies nothing. Deferred fixes need no bookkeeping
// across passes because the re-lint rediscovers them at their new offsets.
func Run(src []byte, lint Lint, allowUnsafe bool) (Summary, error) {
	sum := Summary{Text: src}
	for sum.Passes < MaxPasses {
		diags, err := lint(sum.Text)
		if err != nil {
			return sum, err
		}
		res := ApplyPass(sum.Text, diags, allowUnsafe)
		sum.Passes++
		if !res.Changed {
			return sum, nil
		}
		sum.Text = res.Text
		sum.Applied += len(res.Applied)
	}
	sum.LimitHit = true
	return sum, nil
}
