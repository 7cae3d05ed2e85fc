package token

import (
	"rlint/internal/source"
)

// Token represents a single source token with its location and leading trivia.
type Token struct {
	Kind    Kind
	Span    source.Span
	Text    string
	Leading []Trivia
}

// IsLiteral reports whether the token is a literal or reserved constant.
func (t Token) IsLiteral() bool {
	switch t.Kind {
	case NumberLit, StringLit, KwTrue, KwFalse, KwNull, KwNA, KwInf, KwNaN:
		return true
	default:
		return false
	}
}

// IsIdent reports whether the token is an identifier.
func (t Token) IsIdent() bool { return t.Kind == Ident }

// NewlineBefore reports whether any leading trivia contains a newline.
// R terminates complete expressions at line ends, so the parser consults
// this instead of a dedicated newline token.
func (t Token) NewlineBefore() bool {
	for _, tr := range t.Leading {
		if tr.Kind == TriviaNewline {
			return true
		}
	}
	return false
}

// LeadingComments returns the comment trivia preceding the token.
func (t Token) LeadingComments() []Trivia {
	var out []Trivia
	for _, tr := range t.Leading {
		if tr.Kind == TriviaComment {
			out = append(out, tr)
		}
	}
	return out
}

// FullSpan returns the token span widened to include its leading trivia.
func (t Token) FullSpan() source.Span {
	sp := t.Span
	if len(t.Leading) > 0 {
		sp.Start = t.Leading[0].Span.Start
	}
	return sp
}
