package lexer

import (
	"testing"

	"rlint/internal/diag"
	"rlint/internal/source"
	"rlint/internal/token"
)

func lexAll(t *testing.T, src string) ([]token.Token, *diag.Bag) {
	t.Helper()
	fs := source.NewFileSet()
	id := fs.AddVirtual("test.R", []byte(src))
	bag := diag.NewBag(100)
	lx := New(fs.Get(id), Options{Reporter: BagReporter{Bag: bag}})
	return lx.Tokens(), bag
}

func kinds(tokens []token.Token) []token.Kind {
	out := make([]token.Kind, 0, len(tokens))
	for _, tok := range tokens {
		out = append(out, tok.Kind)
	}
	return out
}

func TestTokenKinds(t *testing.T) {
	tests := []struct {
		src  string
		want []token.Kind
	}{
		{"x <- 1", []token.Kind{token.Ident, token.Arrow, token.NumberLit, token.EOF}},
		{"x <<- 1", []token.Kind{token.Ident, token.SuperArrow, token.NumberLit, token.EOF}},
		{"1 -> x", []token.Kind{token.NumberLit, token.RightArrow, token.Ident, token.EOF}},
		{"1 ->> x", []token.Kind{token.NumberLit, token.RightSuper, token.Ident, token.EOF}},
		{"a == b", []token.Kind{token.Ident, token.EqEq, token.Ident, token.EOF}},
		{"a != b", []token.Kind{token.Ident, token.BangEq, token.Ident, token.EOF}},
		{"a <= b", []token.Kind{token.Ident, token.LtEq, token.Ident, token.EOF}},
		{"a < b", []token.Kind{token.Ident, token.Lt, token.Ident, token.EOF}},
		{"x %in% y", []token.Kind{token.Ident, token.Special, token.Ident, token.EOF}},
		{"x %% y", []token.Kind{token.Ident, token.Special, token.Ident, token.EOF}},
		{"x |> f()", []token.Kind{token.Ident, token.NativePipe, token.Ident, token.LParen, token.RParen, token.EOF}},
		{"a || b", []token.Kind{token.Ident, token.PipePipe, token.Ident, token.EOF}},
		{"pkg::fn", []token.Kind{token.Ident, token.ColonColon, token.Ident, token.EOF}},
		{"pkg:::fn", []token.Kind{token.Ident, token.TripleColon, token.Ident, token.EOF}},
		{"1:10", []token.Kind{token.NumberLit, token.Colon, token.NumberLit, token.EOF}},
		{"x$y@z", []token.Kind{token.Ident, token.Dollar, token.Ident, token.At, token.Ident, token.EOF}},
		{`\(x) x`, []token.Kind{token.Backslash, token.LParen, token.Ident, token.RParen, token.Ident, token.EOF}},
		{"if (TRUE) NULL else NA", []token.Kind{token.KwIf, token.LParen, token.KwTrue, token.RParen, token.KwNull, token.KwElse, token.KwNA, token.EOF}},
		{"while (x) repeat break", []token.Kind{token.KwWhile, token.LParen, token.Ident, token.RParen, token.KwRepeat, token.KwBreak, token.EOF}},
		{"for (i in s) next", []token.Kind{token.KwFor, token.LParen, token.Ident, token.KwIn, token.Ident, token.RParen, token.KwNext, token.EOF}},
	}

	for _, tt := range tests {
		tokens, bag := lexAll(t, tt.src)
		if bag.Len() != 0 {
			t.Errorf("%q: unexpected diagnostics: %d", tt.src, bag.Len())
		}
		got := kinds(tokens)
		if len(got) != len(tt.want) {
			t.Errorf("%q: got %d tokens %v, want %d", tt.src, len(got), got, len(tt.want))
			continue
		}
		for i := range got {
			if got[i] != tt.want[i] {
				t.Errorf("%q: token %d = %s, want %s", tt.src, i, got[i], tt.want[i])
			}
		}
	}
}

func TestNumbers(t *testing.T) {
	tests := []struct {
		src  string
		text string
	}{
		{"42", "42"},
		{"3.14", "3.14"},
		{".5", ".5"},
		{"1e10", "1e10"},
		{"2.5e-3", "2.5e-3"},
		{"0x1F", "0x1F"},
		{"10L", "10L"},
		{"2i", "2i"},
	}
	for _, tt := range tests {
		tokens, bag := lexAll(t, tt.src)
		if bag.Len() != 0 {
			t.Errorf("%q: unexpected diagnostics", tt.src)
		}
		if tokens[0].Kind != token.NumberLit {
			t.Errorf("%q: kind = %s, want Number", tt.src, tokens[0].Kind)
		}
		if tokens[0].Text != tt.text {
			t.Errorf("%q: text = %q, want %q", tt.src, tokens[0].Text, tt.text)
		}
	}
}

func TestStrings(t *testing.T) {
	tests := []string{
		`"hello"`,
		`'single'`,
		`"with \"escape\""`,
		`"tab\there"`,
	}
	for _, src := range tests {
		tokens, bag := lexAll(t, src)
		if bag.Len() != 0 {
			t.Errorf("%q: unexpected diagnostics", src)
		}
		if tokens[0].Kind != token.StringLit {
			t.Errorf("%q: kind = %s, want String", src, tokens[0].Kind)
		}
		if tokens[0].Text != src {
			t.Errorf("%q: text = %q", src, tokens[0].Text)
		}
	}
}

func TestUnterminatedString(t *testing.T) {
	_, bag := lexAll(t, `x <- "oops`)
	if !bag.HasErrors() {
		t.Fatal("expected an error diagnostic for the unterminated string")
	}
	if bag.Items()[0].Code != diag.LexUnterminatedString {
		t.Errorf("code = %s, want lex_unterminated_string", bag.Items()[0].Code)
	}
}

func TestBacktickIdent(t *testing.T) {
	tokens, bag := lexAll(t, "`my name` <- 1")
	if bag.Len() != 0 {
		t.Fatalf("unexpected diagnostics: %d", bag.Len())
	}
	if tokens[0].Kind != token.Ident || tokens[0].Text != "my name" {
		t.Errorf("got %s %q, want Ident \"my name\"", tokens[0].Kind, tokens[0].Text)
	}
}

func TestLeadingTrivia(t *testing.T) {
	tokens, _ := lexAll(t, "x\n# a comment\ny")
	if len(tokens) != 3 {
		t.Fatalf("got %d tokens, want 3", len(tokens))
	}
	y := tokens[1]
	if y.Text != "y" {
		t.Fatalf("second token = %q, want y", y.Text)
	}
	if !y.NewlineBefore() {
		t.Error("y should have a newline in its leading trivia")
	}
	comments := y.LeadingComments()
	if len(comments) != 1 || comments[0].Text != "# a comment" {
		t.Errorf("leading comments = %v, want one %q", comments, "# a comment")
	}
}

func TestSpansAreHalfOpen(t *testing.T) {
	tokens, _ := lexAll(t, "abc <- 1")
	if tokens[0].Span.Start != 0 || tokens[0].Span.End != 3 {
		t.Errorf("ident span = %v, want [0,3)", tokens[0].Span)
	}
	if tokens[1].Span.Start != 4 || tokens[1].Span.End != 6 {
		t.Errorf("arrow span = %v, want [4,6)", tokens[1].Span)
	}
}

func TestEOFAfterEOF(t *testing.T) {
	fs := source.NewFileSet()
	id := fs.AddVirtual("test.R", []byte("x"))
	lx := New(fs.Get(id), Options{})
	lx.Next() // x
	for i := 0; i < 3; i++ {
		if tok := lx.Next(); tok.Kind != token.EOF {
			t.Fatalf("call %d after end: kind = %s, want EOF", i, tok.Kind)
		}
	}
}
