package parser

import (
	"fmt"
	"strings"
	"testing"

	"rlint/internal/diag"
	"rlint/internal/source"
	"rlint/internal/syntax"
)

func parse(t *testing.T, src string) (*syntax.Tree, *source.FileSet, *diag.Bag) {
	t.Helper()
	fs := source.NewFileSet()
	id := fs.AddVirtual("test.R", []byte(src))
	bag := diag.NewBag(100)
	tree := ParseFile(fs.Get(id), Options{Reporter: diag.BagReporter{Bag: bag}})
	return tree, fs, bag
}

// sexpr renders a subtree as a compact s-expression for shape assertions.
func sexpr(tree *syntax.Tree, id syntax.NodeID) string {
	n := tree.Get(id)
	if len(n.Children) == 0 {
		switch n.Kind {
		case syntax.KindIdent, syntax.KindNumber, syntax.KindString,
			syntax.KindBool, syntax.KindNull, syntax.KindNA:
			return fmt.Sprintf("(%s %s)", n.Kind, n.Tok.Text)
		}
		return fmt.Sprintf("(%s)", n.Kind)
	}
	parts := make([]string, 0, len(n.Children)+1)
	label := n.Kind.String()
	switch n.Kind {
	case syntax.KindBinary, syntax.KindUnary:
		label += " " + n.Tok.Kind.String()
	}
	parts = append(parts, label)
	for _, child := range n.Children {
		parts = append(parts, sexpr(tree, child))
	}
	return "(" + strings.Join(parts, " ") + ")"
}

// first returns the first top-level expression of the parse.
func first(t *testing.T, tree *syntax.Tree) syntax.NodeID {
	t.Helper()
	children := tree.ChildrenOf(tree.Root)
	if len(children) == 0 {
		t.Fatal("empty parse")
	}
	return children[0]
}

func TestExpressionShapes(t *testing.T) {
	tests := []struct {
		src  string
		want string
	}{
		{"x <- 1", "(Binary <- (Ident x) (Number 1))"},
		{"x = 1", "(Binary = (Ident x) (Number 1))"},
		{"1 -> x", "(Binary -> (Number 1) (Ident x))"},
		{"a + b * c", "(Binary + (Ident a) (Binary * (Ident b) (Ident c)))"},
		{"(a + b) * c", "(Binary * (Paren (Binary + (Ident a) (Ident b))) (Ident c))"},
		{"a == NULL", "(Binary == (Ident a) (Null NULL))"},
		{"!is.na(x)", "(Unary ! (Call (Ident is.na) (Arg (Ident x))))"},
		{"-x^2", "(Unary - (Binary ^ (Ident x) (Number 2)))"},
		{"2^3^4", "(Binary ^ (Number 2) (Binary ^ (Number 3) (Number 4)))"},
		{"a <- b <- 1", "(Binary <- (Ident a) (Binary <- (Ident b) (Number 1)))"},
		{"1:length(x)", "(Binary : (Number 1) (Call (Ident length) (Arg (Ident x))))"},
		{"x %in% y", "(Binary Special (Ident x) (Ident y))"},
		{"x$a", "(Member (Ident x) (Ident a))"},
		{"pkg::fn", "(Namespace (Ident pkg) (Ident fn))"},
		{"x[1]", "(Index (Ident x) (Arg (Number 1)))"},
		{"x[[1]]", "(Index (Ident x) (Arg (Number 1)))"},
		{"x[, 1]", "(Index (Ident x) (Arg) (Arg (Number 1)))"},
		{"f(a, b = 2)", "(Call (Ident f) (Arg (Ident a)) (Arg (Ident b) (Number 2)))"},
		{"f()", "(Call (Ident f))"},
		{"f()(1)", "(Call (Call (Ident f)) (Arg (Number 1)))"},
		{"x |> f()", "(Binary |> (Ident x) (Call (Ident f)))"},
		{"while (TRUE) { }", "(While (Bool TRUE) (Block))"},
		{"repeat x", "(Repeat (Ident x))"},
		{"for (i in 1:3) print(i)", "(For (Ident i) (Binary : (Number 1) (Number 3)) (Call (Ident print) (Arg (Ident i))))"},
		{"if (a) b else c", "(If (Ident a) (Ident b) (Ident c))"},
		{"if (a) b", "(If (Ident a) (Ident b))"},
		{"function(a, b = 1) a + b", "(Function (Param (Ident a)) (Param (Ident b) (Number 1)) (Binary + (Ident a) (Ident b)))"},
		{`\(x) x`, "(Function (Param (Ident x)) (Ident x))"},
		{"~ x + y", "(Unary ~ (Binary + (Ident x) (Ident y)))"},
		{"y ~ x", "(Binary ~ (Ident y) (Ident x))"},
	}

	for _, tt := range tests {
		tree, _, bag := parse(t, tt.src)
		if bag.HasErrors() {
			t.Errorf("%q: unexpected parse errors: %s", tt.src, bag.Items()[0].Message)
			continue
		}
		got := sexpr(tree, first(t, tree))
		if got != tt.want {
			t.Errorf("%q:\n  got  %s\n  want %s", tt.src, got, tt.want)
		}
	}
}

func TestNewlineTerminatesStatement(t *testing.T) {
	// A newline before the operator ends the first statement; the + becomes a
	// unary sign on the next one.
	tree, _, _ := parse(t, "x\n+ y")
	children := tree.ChildrenOf(tree.Root)
	if len(children) != 2 {
		t.Fatalf("got %d statements, want 2", len(children))
	}
	if got := sexpr(tree, children[0]); got != "(Ident x)" {
		t.Errorf("first statement = %s", got)
	}
	if got := sexpr(tree, children[1]); got != "(Unary + (Ident y))" {
		t.Errorf("second statement = %s", got)
	}
}

func TestNewlineInsideParensContinues(t *testing.T) {
	tree, _, bag := parse(t, "f(a,\n  b)")
	if bag.HasErrors() {
		t.Fatalf("unexpected errors: %s", bag.Items()[0].Message)
	}
	want := "(Call (Ident f) (Arg (Ident a)) (Arg (Ident b)))"
	if got := sexpr(tree, first(t, tree)); got != want {
		t.Errorf("got %s, want %s", got, want)
	}
}

func TestSemicolonSeparatesStatements(t *testing.T) {
	tree, _, _ := parse(t, "a; b; c")
	if got := len(tree.ChildrenOf(tree.Root)); got != 3 {
		t.Errorf("got %d statements, want 3", got)
	}
}

func TestErrorRecovery(t *testing.T) {
	tree, _, bag := parse(t, "x <- )\ny <- 1")
	if !bag.HasErrors() {
		t.Fatal("expected a syntax error")
	}
	if tree.ErrorCount() == 0 {
		t.Error("expected at least one error node")
	}
	// The statement after the bad one still parses.
	children := tree.ChildrenOf(tree.Root)
	last := sexpr(tree, children[len(children)-1])
	if last != "(Binary <- (Ident y) (Number 1))" {
		t.Errorf("recovery statement = %s", last)
	}
}

func TestUnclosedParen(t *testing.T) {
	_, _, bag := parse(t, "f(a, b")
	if !bag.HasErrors() {
		t.Fatal("expected an error for the unclosed call")
	}
	found := false
	for _, d := range bag.Items() {
		if d.Code == diag.SynUnclosedParen {
			found = true
		}
	}
	if !found {
		t.Error("missing syn_unclosed_paren diagnostic")
	}
}

func TestCommentsRetained(t *testing.T) {
	tree, _, _ := parse(t, "# top\nx <- 1 # trailing ... no: next line\n# bottom\n")
	comments := tree.Comments()
	if len(comments) != 3 {
		t.Fatalf("got %d comments, want 3", len(comments))
	}
	if comments[0].Text != "# top" {
		t.Errorf("first comment = %q", comments[0].Text)
	}
}

func TestHasCommentIn(t *testing.T) {
	src := "x <- 1\n# note\ny <- 2"
	tree, fs, _ := parse(t, src)

	commentStart := uint32(strings.Index(src, "# note"))
	fileID := fs.Get(0).ID
	covering := source.Span{File: fileID, Start: 0, End: uint32(len(src))}
	if !tree.HasCommentIn(covering) {
		t.Error("whole-file span should contain the comment")
	}
	before := source.Span{File: fileID, Start: 0, End: commentStart}
	if tree.HasCommentIn(before) {
		t.Error("span before the comment should not contain it")
	}
}

func TestSpanCoversWholeNode(t *testing.T) {
	src := "f(a, b)"
	tree, _, _ := parse(t, src)
	call := first(t, tree)
	sp := tree.Get(call).Span
	if sp.Start != 0 || sp.End != uint32(len(src)) {
		t.Errorf("call span = [%d,%d), want [0,%d)", sp.Start, sp.End, len(src))
	}
}

func TestStrayClosersEachReport(t *testing.T) {
	// Recovery must not let one error node swallow the rest of the file:
	// every stray closer is its own error.
	_, _, bag := parse(t, ") ) )")

	n := 0
	for _, d := range bag.Items() {
		if d.Code == diag.SynExpectExpression {
			n++
		}
	}
	if n != 3 {
		t.Errorf("stray ')' diagnostics = %d, want one per token", n)
	}
}

func TestMaxErrors(t *testing.T) {
	src := strings.Repeat(") ", 10)
	fs := source.NewFileSet()
	id := fs.AddVirtual("test.R", []byte(src))
	bag := diag.NewBag(100)
	ParseFile(fs.Get(id), Options{Reporter: diag.BagReporter{Bag: bag}, MaxErrors: 3})

	sawMute := false
	for _, d := range bag.Items() {
		if d.Code == diag.SynTooManyErrors {
			sawMute = true
		}
	}
	if !sawMute {
		t.Error("expected syn_too_many_errors after the cap")
	}
	if bag.Len() > 5 {
		t.Errorf("got %d diagnostics after muting, want at most 5", bag.Len())
	}
}
