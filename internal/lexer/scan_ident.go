package lexer

import (
	"unicode"

	"golang.org/x/text/unicode/norm"

	"rlint/internal/diag"
	"rlint/internal/token"
)

const utf8RuneSelf = 0x80

func isIdentStartByte(b byte) bool {
	return b == '.' || b == '_' ||
		(b >= 'a' && b <= 'z') || (b >= 'A' && b <= 'Z')
}

func isIdentContinueByte(b byte) bool {
	return isIdentStartByte(b) || isDec(b)
}

func isDec(b byte) bool {
	return b >= '0' && b <= '9'
}

// scanIdentOrKeyword scans an identifier or reserved word. Token.Text is the
// exact source slice for ASCII names; Unicode names are NFC-normalized so
// visually identical identifiers resolve to the same binding.
func (lx *Lexer) scanIdentOrKeyword() token.Token {
	start := lx.cursor.Mark()

	r, sz := lx.cursor.PeekRune()
	if sz == 0 {
		return token.Token{Kind: token.Unknown, Span: lx.cursor.SpanFrom(start)}
	}

	unicodeName := false
	if r < utf8RuneSelf {
		if !isIdentStartByte(byte(r)) {
			return lx.scanOperatorOrPunct()
		}
		lx.cursor.Bump()
	} else {
		if !unicode.IsLetter(r) {
			lx.cursor.BumpRune()
			sp := lx.cursor.SpanFrom(start)
			lx.report(diag.LexUnknownChar, sp, "unexpected character "+lx.text(sp))
			return token.Token{Kind: token.Unknown, Span: sp, Text: lx.text(sp)}
		}
		unicodeName = true
		lx.cursor.BumpRune()
	}

	for {
		r2, sz2 := lx.cursor.PeekRune()
		if sz2 == 0 {
			break
		}
		if r2 < utf8RuneSelf {
			if !isIdentContinueByte(byte(r2)) {
				break
			}
			lx.cursor.Bump()
			continue
		}
		if !unicode.IsLetter(r2) && !unicode.IsDigit(r2) {
			break
		}
		unicodeName = true
		lx.cursor.BumpRune()
	}

	sp := lx.cursor.SpanFrom(start)
	text := lx.text(sp)
	if unicodeName {
		text = norm.NFC.String(text)
	}

	if kind := token.LookupKeyword(text); kind != token.Ident {
		return token.Token{Kind: kind, Span: sp, Text: text}
	}
	return token.Token{Kind: token.Ident, Span: sp, Text: text}
}

// scanBacktickIdent scans `quoted name`; Text carries the inner content.
func (lx *Lexer) scanBacktickIdent() token.Token {
	start := lx.cursor.Mark()
	lx.cursor.Bump() // opening backtick

	for !lx.cursor.EOF() && lx.cursor.Peek() != '`' && lx.cursor.Peek() != '\n' {
		lx.cursor.Bump()
	}

	sp := lx.cursor.SpanFrom(start)
	if !lx.cursor.Eat('`') {
		lx.report(diag.LexUnterminatedString, sp, "unterminated backquoted name")
		return token.Token{Kind: token.Ident, Span: sp, Text: lx.text(sp)[1:]}
	}
	sp = lx.cursor.SpanFrom(start)
	inner := lx.file.Content[sp.Start+1 : sp.End-1]
	return token.Token{Kind: token.Ident, Span: sp, Text: norm.NFC.String(string(inner))}
}
