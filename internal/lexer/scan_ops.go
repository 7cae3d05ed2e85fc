package lexer

import (
	"rlint/internal/diag"
	"rlint/internal/token"
)

// scanSpecial scans %...% operators (%%, %/%, %in%, %*%, user-defined).
func (lx *Lexer) scanSpecial() token.Token {
	start := lx.cursor.Mark()
	lx.cursor.Bump() // leading %

	for !lx.cursor.EOF() && lx.cursor.Peek() != '%' && lx.cursor.Peek() != '\n' {
		lx.cursor.Bump()
	}

	if !lx.cursor.Eat('%') {
		sp := lx.cursor.SpanFrom(start)
		lx.report(diag.LexUnterminatedSpecial, sp, "unterminated %...% operator")
		return token.Token{Kind: token.Special, Span: sp, Text: lx.text(sp)}
	}
	sp := lx.cursor.SpanFrom(start)
	return token.Token{Kind: token.Special, Span: sp, Text: lx.text(sp)}
}

// scanOperatorOrPunct scans every remaining operator and punctuation token.
func (lx *Lexer) scanOperatorOrPunct() token.Token {
	start := lx.cursor.Mark()
	b := lx.cursor.Bump()

	kind := token.Unknown
	switch b {
	case '<':
		switch {
		case lx.cursor.Eat('-'):
			kind = token.Arrow
		case lx.cursor.Eat('='):
			kind = token.LtEq
		case lx.cursor.Peek() == '<':
			// "<<-" or plain "<" followed by "<".
			if _, b1, ok := lx.cursor.Peek2(); ok && b1 == '-' {
				lx.cursor.Bump()
				lx.cursor.Bump()
				kind = token.SuperArrow
			} else {
				kind = token.Lt
			}
		default:
			kind = token.Lt
		}
	case '>':
		if lx.cursor.Eat('=') {
			kind = token.GtEq
		} else {
			kind = token.Gt
		}
	case '-':
		if lx.cursor.Eat('>') {
			if lx.cursor.Eat('>') {
				kind = token.RightSuper
			} else {
				kind = token.RightArrow
			}
		} else {
			kind = token.Minus
		}
	case '=':
		if lx.cursor.Eat('=') {
			kind = token.EqEq
		} else {
			kind = token.Eq
		}
	case '!':
		if lx.cursor.Eat('=') {
			kind = token.BangEq
		} else {
			kind = token.Bang
		}
	case '&':
		if lx.cursor.Eat('&') {
			kind = token.AmpAmp
		} else {
			kind = token.Amp
		}
	case '|':
		switch {
		case lx.cursor.Eat('|'):
			kind = token.PipePipe
		case lx.cursor.Eat('>'):
			kind = token.NativePipe
		default:
			kind = token.Pipe
		}
	case ':':
		if lx.cursor.Eat(':') {
			if lx.cursor.Eat(':') {
				kind = token.TripleColon
			} else {
				kind = token.ColonColon
			}
		} else {
			kind = token.Colon
		}
	case '+':
		kind = token.Plus
	case '*':
		kind = token.Star
	case '/':
		kind = token.Slash
	case '^':
		kind = token.Caret
	case '~':
		kind = token.Tilde
	case '?':
		kind = token.Question
	case '$':
		kind = token.Dollar
	case '@':
		kind = token.At
	case ',':
		kind = token.Comma
	case ';':
		kind = token.Semicolon
	case '(':
		kind = token.LParen
	case ')':
		kind = token.RParen
	case '{':
		kind = token.LBrace
	case '}':
		kind = token.RBrace
	case '[':
		kind = token.LBracket
	case ']':
		kind = token.RBracket
	case '\\':
		kind = token.Backslash
	}

	sp := lx.cursor.SpanFrom(start)
	if kind == token.Unknown {
		lx.report(diag.LexUnknownChar, sp, "unexpected character "+lx.text(sp))
	}
	return token.Token{Kind: kind, Span: sp, Text: lx.text(sp)}
}
