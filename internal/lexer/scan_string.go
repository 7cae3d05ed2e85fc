package lexer

import (
	"rlint/internal/diag"
	"rlint/internal/token"
)

// scanString scans single- or double-quoted strings with backslash escapes.
// Token.Text keeps the quotes; rules compare raw literal text, not decoded
// values. An unterminated string is reported and closed at EOF.
func (lx *Lexer) scanString() token.Token {
	start := lx.cursor.Mark()
	quote := lx.cursor.Bump()

	for !lx.cursor.EOF() {
		b := lx.cursor.Bump()
		if b == '\\' {
			// Consume the escaped byte, whatever it is.
			lx.cursor.Bump()
			continue
		}
		if b == quote {
			sp := lx.cursor.SpanFrom(start)
			return token.Token{Kind: token.StringLit, Span: sp, Text: lx.text(sp)}
		}
	}

	sp := lx.cursor.SpanFrom(start)
	lx.report(diag.LexUnterminatedString, sp, "unterminated string literal")
	return token.Token{Kind: token.StringLit, Span: sp, Text: lx.text(sp)}
}
