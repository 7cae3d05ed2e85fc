package suppress

import (
	"testing"

	"rlint/internal/diag"
	"rlint/internal/parser"
	"rlint/internal/source"
	"rlint/internal/token"
)

func buildIndex(t *testing.T, src string) (*Index, *source.FileSet, source.FileID) {
	t.Helper()
	fs := source.NewFileSet()
	id := fs.AddVirtual("test.R", []byte(src))
	bag := diag.NewBag(100)
	tree := parser.ParseFile(fs.Get(id), parser.Options{Reporter: diag.BagReporter{Bag: bag}})
	return BuildIndex(fs, id, tree.Comments()), fs, id
}

// lineSpan returns a zero-width span at the start of the 1-based line.
func lineSpan(t *testing.T, src string, fileID source.FileID, line int) source.Span {
	t.Helper()
	off := uint32(0)
	for l := 1; l < line; l++ {
		for int(off) < len(src) && src[off] != '\n' {
			off++
		}
		if int(off) >= len(src) {
			t.Fatalf("line %d beyond input", line)
		}
		off++
	}
	return source.Span{File: fileID, Start: off, End: off}
}

func TestOtherRevisionCommentsIgnored(t *testing.T) {
	// The fix loop keeps every revision of a path in one FileSet; a
	// directive from an old revision must not leak into the current one.
	fs := source.NewFileSet()
	old := fs.AddVirtual("test.R", []byte("x = 1 # nolint\n"))
	cur := fs.AddVirtual("test.R", []byte("x = 1\n"))

	bag := diag.NewBag(100)
	oldTree := parser.ParseFile(fs.Get(old), parser.Options{Reporter: diag.BagReporter{Bag: bag}})
	curTree := parser.ParseFile(fs.Get(cur), parser.Options{Reporter: diag.BagReporter{Bag: bag}})

	comments := append(append([]token.Trivia{}, oldTree.Comments()...), curTree.Comments()...)
	ix := BuildIndex(fs, cur, comments)

	if ix.ShouldSkip(source.Span{File: cur, Start: 0, End: 0}, "assignment_op") {
		t.Error("directive from another revision must not suppress findings")
	}
	if len(ix.lines) != 0 {
		t.Errorf("line directives = %d, want none for the current revision", len(ix.lines))
	}
}

func TestLineDirective(t *testing.T) {
	src := "x = 1 # nolint\ny = 2\n"
	ix, _, id := buildIndex(t, src)

	if !ix.ShouldSkip(lineSpan(t, src, id, 1), "assignment_op") {
		t.Error("line 1 should be suppressed for every rule")
	}
	if ix.ShouldSkip(lineSpan(t, src, id, 2), "assignment_op") {
		t.Error("line 2 should not be suppressed")
	}
}

func TestNamedLineDirective(t *testing.T) {
	src := "x = NULL == y # nolint: assignment_op\n"
	ix, _, id := buildIndex(t, src)

	sp := lineSpan(t, src, id, 1)
	if !ix.ShouldSkip(sp, "assignment_op") {
		t.Error("assignment_op should be suppressed")
	}
	if ix.ShouldSkip(sp, "null_comparison") {
		t.Error("null_comparison should not be suppressed")
	}
}

func TestMultipleNames(t *testing.T) {
	src := "x = NULL == y # nolint: assignment_op, null_comparison\n"
	ix, _, id := buildIndex(t, src)

	sp := lineSpan(t, src, id, 1)
	for _, rule := range []string{"assignment_op", "null_comparison"} {
		if !ix.ShouldSkip(sp, rule) {
			t.Errorf("%s should be suppressed", rule)
		}
	}
	if ix.ShouldSkip(sp, "equals_na") {
		t.Error("equals_na should not be suppressed")
	}
}

func TestBlockDirective(t *testing.T) {
	src := "# nolint start\nx = 1\ny = 2\n# nolint end\nz = 3\n"
	ix, _, id := buildIndex(t, src)

	for line := 2; line <= 3; line++ {
		if !ix.ShouldSkip(lineSpan(t, src, id, line), "assignment_op") {
			t.Errorf("line %d inside the block should be suppressed", line)
		}
	}
	if ix.ShouldSkip(lineSpan(t, src, id, 5), "assignment_op") {
		t.Error("line 5 after the block should not be suppressed")
	}
}

func TestNamedBlockDirective(t *testing.T) {
	src := "# nolint start: assignment_op\nx = NULL == y\n# nolint end\n"
	ix, _, id := buildIndex(t, src)

	sp := lineSpan(t, src, id, 2)
	if !ix.ShouldSkip(sp, "assignment_op") {
		t.Error("assignment_op should be suppressed inside the block")
	}
	if ix.ShouldSkip(sp, "null_comparison") {
		t.Error("null_comparison should not be suppressed")
	}
}

func TestUnclosedBlockRunsToEOF(t *testing.T) {
	src := "# nolint start\nx = 1\ny = 2\n"
	ix, _, id := buildIndex(t, src)

	if !ix.ShouldSkip(lineSpan(t, src, id, 3), "assignment_op") {
		t.Error("an unclosed block suppresses to end of file")
	}
}

func TestOrdinaryCommentIsNotADirective(t *testing.T) {
	src := "x = 1 # no lint issues here, honest\n"
	ix, _, id := buildIndex(t, src)

	if ix.ShouldSkip(lineSpan(t, src, id, 1), "assignment_op") {
		t.Error("a comment merely containing words is not a directive")
	}
}

func TestNilIndex(t *testing.T) {
	var ix *Index
	if ix.ShouldSkip(source.Span{}, "assignment_op") {
		t.Error("nil index suppresses nothing")
	}
}
