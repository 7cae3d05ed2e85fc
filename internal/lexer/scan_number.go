package lexer

import (
	"rlint/internal/diag"
	"rlint/internal/token"
)

func isHex(b byte) bool {
	return isDec(b) || (b >= 'a' && b <= 'f') || (b >= 'A' && b <= 'F')
}

// scanNumber scans R numeric literals: decimal, hex (0x), exponents, and the
// L (integer) / i (complex) suffixes. Malformed exponents are reported but
// still produce a NumberLit token so parsing can continue.
func (lx *Lexer) scanNumber() token.Token {
	start := lx.cursor.Mark()

	if b0, b1, ok := lx.cursor.Peek2(); ok && b0 == '0' && (b1 == 'x' || b1 == 'X') {
		lx.cursor.Bump()
		lx.cursor.Bump()
		digits := 0
		for isHex(lx.cursor.Peek()) {
			lx.cursor.Bump()
			digits++
		}
		sp := lx.cursor.SpanFrom(start)
		if digits == 0 {
			lx.report(diag.LexBadNumber, sp, "hexadecimal literal without digits")
		}
		lx.cursor.Eat('L')
		sp = lx.cursor.SpanFrom(start)
		return token.Token{Kind: token.NumberLit, Span: sp, Text: lx.text(sp)}
	}

	for isDec(lx.cursor.Peek()) {
		lx.cursor.Bump()
	}
	if lx.cursor.Peek() == '.' {
		lx.cursor.Bump()
		for isDec(lx.cursor.Peek()) {
			lx.cursor.Bump()
		}
	}
	if b := lx.cursor.Peek(); b == 'e' || b == 'E' {
		lx.cursor.Bump()
		if b2 := lx.cursor.Peek(); b2 == '+' || b2 == '-' {
			lx.cursor.Bump()
		}
		digits := 0
		for isDec(lx.cursor.Peek()) {
			lx.cursor.Bump()
			digits++
		}
		if digits == 0 {
			lx.report(diag.LexBadNumber, lx.cursor.SpanFrom(start), "exponent without digits")
		}
	}

	// Integer or complex suffix.
	if b := lx.cursor.Peek(); b == 'L' || b == 'i' {
		lx.cursor.Bump()
	}

	sp := lx.cursor.SpanFrom(start)
	return token.Token{Kind: token.NumberLit, Span: sp, Text: lx.text(sp)}
}
