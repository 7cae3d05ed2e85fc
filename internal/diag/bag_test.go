package diag

import (
	"testing"

	"rlint/internal/source"
)

func warnAt(code Code, start, end uint32) Diagnostic {
	return Diagnostic{
		Severity: SevWarning,
		Code:     code,
		Message:  "m",
		Primary:  source.Span{File: 1, Start: start, End: end},
	}
}

func TestBagLimit(t *testing.T) {
	bag := NewBag(2)
	if !bag.Add(warnAt(LintAssignmentOp, 0, 1)) || !bag.Add(warnAt(LintAssignmentOp, 2, 3)) {
		t.Fatal("adds under the limit must succeed")
	}
	if bag.Add(warnAt(LintAssignmentOp, 4, 5)) {
		t.Error("add over the limit must be dropped")
	}
	if bag.Len() != 2 {
		t.Errorf("len = %d, want 2", bag.Len())
	}
}

func TestBagSortOrder(t *testing.T) {
	bag := NewBag(10)
	bag.Add(warnAt(LintNullComparison, 5, 8))
	bag.Add(warnAt(LintAssignmentOp, 0, 3))
	err := warnAt(LintAssignmentOp, 5, 8)
	err.Severity = SevError
	bag.Add(err)

	bag.Sort()

	items := bag.Items()
	if items[0].Primary.Start != 0 {
		t.Errorf("first = %+v, want the earliest span", items[0])
	}
	// Same span: higher severity sorts first.
	if items[1].Severity != SevError || items[2].Severity != SevWarning {
		t.Errorf("severity tiebreak: %v then %v", items[1].Severity, items[2].Severity)
	}
}

func TestBagDedup(t *testing.T) {
	bag := NewBag(10)
	bag.Add(warnAt(LintAssignmentOp, 0, 1))
	bag.Add(warnAt(LintAssignmentOp, 0, 1))
	bag.Add(warnAt(LintNullComparison, 0, 1)) // different code survives

	bag.Dedup()
	if bag.Len() != 2 {
		t.Errorf("len = %d, want 2 after dedup", bag.Len())
	}
}

func TestBagMergeGrowsLimit(t *testing.T) {
	a := NewBag(1)
	a.Add(warnAt(LintAssignmentOp, 0, 1))
	b := NewBag(1)
	b.Add(warnAt(LintNullComparison, 2, 3))

	a.Merge(b)
	if a.Len() != 2 {
		t.Fatalf("len = %d, want 2: merge must not drop past a's own limit", a.Len())
	}
}

func TestBagFlags(t *testing.T) {
	bag := NewBag(10)
	bag.Add(warnAt(LintAssignmentOp, 0, 1))
	if bag.HasErrors() {
		t.Error("warnings are not errors")
	}
	if !bag.HasLint() {
		t.Error("lint codes must set HasLint")
	}

	bag.Add(NewError(IOLoadFileError, source.Span{}, "boom"))
	if !bag.HasErrors() {
		t.Error("error severity must set HasErrors")
	}
}
