package token

import (
	"rlint/internal/source"
)

// TriviaKind classifies non-semantic source text attached to tokens.
type TriviaKind uint8

const (
	TriviaSpace   TriviaKind = iota // runs of spaces and tabs
	TriviaNewline                   // runs of newlines
	TriviaComment                   // # to end of line
)

func (k TriviaKind) String() string {
	switch k {
	case TriviaSpace:
		return "space"
	case TriviaNewline:
		return "newline"
	case TriviaComment:
		return "comment"
	default:
		return "invalid"
	}
}

// Trivia is a single piece of whitespace or comment preserved by the lexer.
type Trivia struct {
	Kind TriviaKind
	Span source.Span
	Text string
}
