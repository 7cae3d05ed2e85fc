package rules_test

import (
	"strings"
	"testing"

	"rlint/internal/checker"
	"rlint/internal/diag"
	"rlint/internal/fix"
	"rlint/internal/parser"
	"rlint/internal/rules"
	"rlint/internal/sema"
	"rlint/internal/source"
	"rlint/internal/suppress"
)

// run lints src with every rule enabled and returns the sorted findings.
func run(t *testing.T, src string, opts rules.Options) (*diag.Bag, *source.FileSet) {
	t.Helper()
	fs := source.NewFileSet()
	id := fs.AddVirtual("test.R", []byte(src))
	bag := diag.NewBag(100)

	tree := parser.ParseFile(fs.Get(id), parser.Options{Reporter: diag.BagReporter{Bag: bag}})
	if bag.HasErrors() {
		t.Fatalf("parse errors in %q: %s", src, bag.Items()[0].Message)
	}

	interner := source.NewInterner()
	events := sema.ExtractEvents(tree, interner)
	model := sema.BuildModel(events, interner, sema.DefaultGlobals(interner, nil))

	rctx := &rules.Context{FS: fs, Tree: tree, Model: model, Options: opts}
	sup := suppress.BuildIndex(fs, id, tree.Comments())
	if err := checker.New(nil).Run(rctx, sup, bag); err != nil {
		t.Fatalf("check failed: %v", err)
	}
	bag.Sort()
	bag.Dedup()
	return bag, fs
}

// codesOf extracts the lint rule names of every finding.
func codesOf(bag *diag.Bag) []string {
	var out []string
	for _, d := range bag.Items() {
		if d.Code.IsLint() {
			out = append(out, d.Code.String())
		}
	}
	return out
}

// fixedText applies every applicable fix once and returns the result.
func fixedText(t *testing.T, src string, allowUnsafe bool) string {
	t.Helper()
	bag, _ := run(t, src, rules.Options{})
	res := fix.ApplyPass([]byte(src), bag.Items(), allowUnsafe)
	return string(res.Text)
}

func TestRuleFindings(t *testing.T) {
	tests := []struct {
		name string
		src  string
		want []string
	}{
		{"equals assignment", "x = 1\nprint(x)", []string{"assignment_op"}},
		{"arrow is fine", "x <- 1\nprint(x)", nil},
		{"right assign", "1 -> x\nprint(x)", []string{"assignment_op"}},
		{"null comparison", "f <- function(x) x == NULL\nf(1)", []string{"null_comparison"}},
		{"null comparison flipped", "f <- function(x) NULL != x\nf(1)", []string{"null_comparison"}},
		{"equals na", "f <- function(x) x == NA\nf(1)", []string{"equals_na"}},
		{"class comparison", `f <- function(x) class(x) == "lm"`+"\nf(1)", []string{"class_comparison"}},
		{"inherits is fine", `f <- function(x) inherits(x, "lm")`+"\nf(1)", nil},
		{"seq len", "f <- function(x) 1:length(x)\nf(1)", []string{"seq_len"}},
		{"seq len nrow", "f <- function(x) 1:nrow(x)\nf(1)", []string{"seq_len"}},
		{"plain range is fine", "f <- function(x) 2:length(x)\nf(1)", nil},
		{"any duplicated", "f <- function(x) any(duplicated(x))\nf(1)", []string{"any_duplicated"}},
		{"any alone is fine", "f <- function(x) any(x)\nf(1)", nil},
		{"while true", "while (TRUE) print(1)", []string{"while_true"}},
		{"while cond is fine", "x <- TRUE\nwhile (x) print(x)", nil},
		{"duplicate arguments", "list(a = 1, a = 2)", []string{"duplicate_arguments"}},
		{"repeated dots are fine", "paste(... = 1, ... = 2)", nil},
		{"unused binding", "x <- 1", []string{"unused_binding"}},
		{"undefined variable", "print(zzz)", []string{"undefined_variable"}},
	}
	for _, tt := range tests {
		bag, _ := run(t, tt.src, rules.Options{})
		got := codesOf(bag)
		if len(got) != len(tt.want) {
			t.Errorf("%s: findings = %v, want %v", tt.name, got, tt.want)
			continue
		}
		for i := range got {
			if got[i] != tt.want[i] {
				t.Errorf("%s: findings = %v, want %v", tt.name, got, tt.want)
				break
			}
		}
	}
}

func TestSafeFixes(t *testing.T) {
	tests := []struct {
		name string
		src  string
		want string
	}{
		{"equals to arrow", "x = 1\nprint(x)", "x <- 1\nprint(x)"},
		{"right assign flipped", "1 + 2 -> x\nprint(x)", "x <- 1 + 2\nprint(x)"},
		{"right super flipped", "1 ->> x\nprint(x)", "x <<- 1\nprint(x)"},
		{"null comparison", "f <- function(x) x == NULL\nf(1)", "f <- function(x) is.null(x)\nf(1)"},
		{"negated null comparison", "f <- function(x) x != NULL\nf(1)", "f <- function(x) !is.null(x)\nf(1)"},
		{"equals na", "f <- function(x) x == NA\nf(1)", "f <- function(x) is.na(x)\nf(1)"},
		{"any duplicated", "f <- function(x) any(duplicated(x))\nf(1)", "f <- function(x) anyDuplicated(x) > 0\nf(1)"},
		{"while true to repeat", "while (TRUE) { print(1) }", "repeat { print(1) }"},
	}
	for _, tt := range tests {
		if got := fixedText(t, tt.src, false); got != tt.want {
			t.Errorf("%s:\n  got  %q\n  want %q", tt.name, got, tt.want)
		}
	}
}

func TestUnsafeFixesGated(t *testing.T) {
	src := `f <- function(x) class(x) == "lm"` + "\nf(1)"

	if got := fixedText(t, src, false); got != src {
		t.Errorf("without opt-in the unsafe fix must not apply, got %q", got)
	}
	want := `f <- function(x) inherits(x, "lm")` + "\nf(1)"
	if got := fixedText(t, src, true); got != want {
		t.Errorf("with opt-in:\n  got  %q\n  want %q", got, want)
	}
}

func TestSeqLenFix(t *testing.T) {
	src := "f <- function(x) 1:length(x)\nf(1)"
	want := "f <- function(x) seq_len(length(x))\nf(1)"
	if got := fixedText(t, src, true); got != want {
		t.Errorf("got %q, want %q", got, want)
	}
}

func TestCommentBlocksFix(t *testing.T) {
	// The comparison spans a comment, so the fix is reported but skipped.
	src := "f <- function(x) x ==\n  # why is this here\n  NULL\nf(1)"
	bag, _ := run(t, src, rules.Options{})

	var found *diag.Diagnostic
	for i, d := range bag.Items() {
		if d.Code == diag.LintNullComparison {
			found = &bag.Items()[i]
		}
	}
	if found == nil {
		t.Fatal("null_comparison should still be reported")
	}
	if found.Fix == nil || !found.Fix.Skip {
		t.Fatal("the fix should carry Skip for the enclosed comment")
	}

	res := fix.ApplyPass([]byte(src), bag.Items(), true)
	if strings.Contains(string(res.Text), "is.null") {
		t.Error("a skipped fix must not be applied")
	}
	if len(res.Skipped) == 0 {
		t.Error("the skipped fix should be accounted for")
	}
}

func TestAssignmentStyleEquals(t *testing.T) {
	opts := rules.Options{AssignmentStyle: "equals"}

	bag, _ := run(t, "x <- 1\nprint(x)", opts)
	if got := codesOf(bag); len(got) != 1 || got[0] != "assignment_op" {
		t.Fatalf("findings = %v, want [assignment_op]", got)
	}
	bag, _ = run(t, "x = 1\nprint(x)", opts)
	if got := codesOf(bag); got != nil {
		t.Errorf("equals style accepts =, got %v", got)
	}
}

func TestUnusedExcludeOption(t *testing.T) {
	opts := rules.Options{UnusedExclude: []string{"setup"}}
	bag, _ := run(t, "setup <- 1", opts)
	if got := codesOf(bag); got != nil {
		t.Errorf("excluded name still reported: %v", got)
	}
}

func TestSuppressionFiltersFindings(t *testing.T) {
	bag, _ := run(t, "x = 1 # nolint: assignment_op\nprint(x)", rules.Options{})
	if got := codesOf(bag); got != nil {
		t.Errorf("suppressed finding leaked: %v", got)
	}
}

func TestNamedArgumentIsNotAssignment(t *testing.T) {
	bag, _ := run(t, "print(x = 1)", rules.Options{})
	for _, code := range codesOf(bag) {
		if code == "assignment_op" {
			t.Fatal("a named call argument is not an assignment")
		}
	}
}

func TestFixSpanWithinReported(t *testing.T) {
	// A fix may only rewrite text inside the range its diagnostic reports.
	sources := []string{
		"x = 1\nprint(x)",
		"1 + 2 -> x\nprint(x)",
		"1 ->> x\nprint(x)",
		"f <- function(x) x == NULL\nf(1)",
		"f <- function(x) x == NA\nf(1)",
		"f <- function(x) class(x) == \"lm\"\nf(1)",
		"f <- function(x) 1:length(x)\nf(1)",
		"f <- function(x) any(duplicated(x))\nf(1)",
		"while (TRUE) print(1)",
	}
	for _, src := range sources {
		bag, _ := run(t, src, rules.Options{})
		for _, d := range bag.Items() {
			if d.Fix == nil {
				continue
			}
			if !d.Primary.Contains(d.Fix.Span) {
				t.Errorf("%q: fix span %v escapes reported span %v", src, d.Fix.Span, d.Primary)
			}
		}
	}
}

func TestFindingsAreWarnings(t *testing.T) {
	bag, _ := run(t, "x = 1", rules.Options{})
	for _, d := range bag.Items() {
		if d.Code.IsLint() && d.Severity != diag.SevWarning {
			t.Errorf("%s severity = %s, want warning", d.Code, d.Severity)
		}
	}
	if bag.HasErrors() {
		t.Error("lint findings alone must not count as errors")
	}
}
