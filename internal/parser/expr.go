package parser

import (
	"rlint/internal/diag"
	"rlint/internal/syntax"
	"rlint/internal/token"
)

// Binding powers, highest binds tightest. Values mirror R's operator
// precedence table (?Syntax).
const (
	bpAssign     = 10  // <- <<- = (right-assoc)
	bpRightAssign = 15 // -> ->>
	bpTilde      = 20
	bpOr         = 30 // | ||
	bpAnd        = 40 // & &&
	bpNot        = 50 // unary !
	bpCompare    = 60 // == != < > <= >=
	bpPipe       = 65 // |>
	bpAdd        = 70
	bpMul        = 80
	bpSpecial    = 90 // %...%
	bpRange      = 100 // :
	bpUnarySign  = 110 // unary + -
	bpPower      = 120 // ^ (right-assoc)
	bpPostfix    = 130 // calls, indexing
	bpMember     = 140 // $ @ :: :::
)

// parseExpr parses an expression whose operators all bind at least minBP.
func (p *Parser) parseExpr(minBP int) syntax.NodeID {
	lhs := p.parsePrimary()

	for {
		op := p.tok

		// A newline before an operator terminates the statement unless we
		// are inside parentheses or brackets.
		if p.groupDepth == 0 && op.NewlineBefore() {
			return lhs
		}

		switch op.Kind {
		case token.LParen:
			if bpPostfix < minBP {
				return lhs
			}
			lhs = p.parseCall(lhs, op)
			continue
		case token.LBracket:
			if bpPostfix < minBP {
				return lhs
			}
			lhs = p.parseIndex(lhs, op)
			continue
		case token.Dollar, token.At:
			if bpMember < minBP {
				return lhs
			}
			lhs = p.parseMember(lhs, op, syntax.KindMember)
			continue
		case token.ColonColon, token.TripleColon:
			if bpMember < minBP {
				return lhs
			}
			lhs = p.parseMember(lhs, op, syntax.KindNamespace)
			continue
		}

		bp, rightAssoc, ok := infixBP(op.Kind)
		if !ok || bp < minBP {
			return lhs
		}

		p.advance()
		nextMin := bp + 1
		if rightAssoc {
			nextMin = bp
		}
		rhs := p.parseExpr(nextMin)
		lhs = p.b.Node(syntax.KindBinary, op, lhs, rhs)
	}
}

func infixBP(k token.Kind) (bp int, rightAssoc, ok bool) {
	switch k {
	case token.Arrow, token.SuperArrow, token.Eq:
		return bpAssign, true, true
	case token.RightArrow, token.RightSuper:
		return bpRightAssign, false, true
	case token.Tilde:
		return bpTilde, false, true
	case token.Pipe, token.PipePipe:
		return bpOr, false, true
	case token.Amp, token.AmpAmp:
		return bpAnd, false, true
	case token.EqEq, token.BangEq, token.Lt, token.LtEq, token.Gt, token.GtEq:
		return bpCompare, false, true
	case token.NativePipe:
		return bpPipe, false, true
	case token.Plus, token.Minus:
		return bpAdd, false, true
	case token.Star, token.Slash:
		return bpMul, false, true
	case token.Special:
		return bpSpecial, false, true
	case token.Colon:
		return bpRange, false, true
	case token.Caret:
		return bpPower, true, true
	default:
		return 0, false, false
	}
}

func (p *Parser) parsePrimary() syntax.NodeID {
	tok := p.tok
	switch tok.Kind {
	case token.Ident:
		p.advance()
		return p.b.Leaf(syntax.KindIdent, tok)
	case token.NumberLit, token.KwInf, token.KwNaN:
		p.advance()
		return p.b.Leaf(syntax.KindNumber, tok)
	case token.StringLit:
		p.advance()
		return p.b.Leaf(syntax.KindString, tok)
	case token.KwTrue, token.KwFalse:
		p.advance()
		return p.b.Leaf(syntax.KindBool, tok)
	case token.KwNull:
		p.advance()
		return p.b.Leaf(syntax.KindNull, tok)
	case token.KwNA:
		p.advance()
		return p.b.Leaf(syntax.KindNA, tok)
	case token.KwBreak:
		p.advance()
		return p.b.Leaf(syntax.KindBreak, tok)
	case token.KwNext:
		p.advance()
		return p.b.Leaf(syntax.KindNext, tok)

	case token.Minus, token.Plus, token.Bang, token.Tilde, token.Question:
		p.advance()
		bp := bpUnarySign
		if tok.Kind == token.Bang {
			bp = bpNot
		} else if tok.Kind == token.Tilde || tok.Kind == token.Question {
			bp = bpTilde
		}
		operand := p.parseExpr(bp)
		return p.b.Node(syntax.KindUnary, tok, operand)

	case token.LParen:
		p.advance()
		p.groupDepth++
		inner := p.parseExpr(0)
		p.groupDepth--
		node := p.b.Node(syntax.KindParen, tok, inner)
		if end, ok := p.expect(token.RParen, diag.SynUnclosedParen, "expected ')'"); ok {
			p.b.CoverSpan(node, end.Span)
		}
		return node

	case token.LBrace:
		return p.parseBlock(tok)

	case token.KwIf:
		return p.parseIf(tok)
	case token.KwFor:
		return p.parseFor(tok)
	case token.KwWhile:
		return p.parseWhile(tok)
	case token.KwRepeat:
		p.advance()
		body := p.parseExpr(0)
		return p.b.Node(syntax.KindRepeat, tok, body)
	case token.KwFunction, token.Backslash:
		return p.parseFunction(tok)
	}

	p.report(diag.SynExpectExpression, tok.Span, "expected expression, found "+tok.Kind.String())
	return p.errorNode()
}

func (p *Parser) parseBlock(open token.Token) syntax.NodeID {
	p.advance()
	node := p.b.Node(syntax.KindBlock, open)
	for !p.at(token.RBrace) && !p.at(token.EOF) {
		if p.tok.Kind == token.Semicolon {
			p.advance()
			continue
		}
		p.b.Attach(node, p.parseExpr(0))
	}
	if end, ok := p.expect(token.RBrace, diag.SynUnclosedBrace, "expected '}'"); ok {
		p.b.CoverSpan(node, end.Span)
	}
	return node
}

func (p *Parser) parseIf(kw token.Token) syntax.NodeID {
	p.advance()
	p.expect(token.LParen, diag.SynUnexpectedToken, "expected '(' after 'if'")
	p.groupDepth++
	cond := p.parseExpr(0)
	p.groupDepth--
	p.expect(token.RParen, diag.SynUnclosedParen, "expected ')' after if condition")
	then := p.parseExpr(0)
	node := p.b.Node(syntax.KindIf, kw, cond, then)
	if _, ok := p.eat(token.KwElse); ok {
		alt := p.parseExpr(0)
		p.b.Attach(node, alt)
	}
	return node
}

func (p *Parser) parseFor(kw token.Token) syntax.NodeID {
	p.advance()
	p.expect(token.LParen, diag.SynUnexpectedToken, "expected '(' after 'for'")
	p.groupDepth++
	varTok, ok := p.expect(token.Ident, diag.SynExpectIdentifier, "expected loop variable")
	var loopVar syntax.NodeID
	if ok {
		loopVar = p.b.Leaf(syntax.KindIdent, varTok)
	} else {
		loopVar = p.errorNode()
	}
	p.expect(token.KwIn, diag.SynForMissingIn, "expected 'in' in for loop")
	seq := p.parseExpr(0)
	p.groupDepth--
	p.expect(token.RParen, diag.SynUnclosedParen, "expected ')' after for header")
	body := p.parseExpr(0)
	return p.b.Node(syntax.KindFor, kw, loopVar, seq, body)
}

func (p *Parser) parseWhile(kw token.Token) syntax.NodeID {
	p.advance()
	p.expect(token.LParen, diag.SynUnexpectedToken, "expected '(' after 'while'")
	p.groupDepth++
	cond := p.parseExpr(0)
	p.groupDepth--
	p.expect(token.RParen, diag.SynUnclosedParen, "expected ')' after while condition")
	body := p.parseExpr(0)
	return p.b.Node(syntax.KindWhile, kw, cond, body)
}

// parseFunction handles both `function(a, b) body` and the `\(a) body`
// lambda shorthand. Children: params first, body last.
func (p *Parser) parseFunction(kw token.Token) syntax.NodeID {
	p.advance()
	node := p.b.Node(syntax.KindFunction, kw)
	p.expect(token.LParen, diag.SynUnexpectedToken, "expected '(' after 'function'")
	p.groupDepth++
	for !p.at(token.RParen) && !p.at(token.EOF) {
		param := p.parseParam()
		p.b.Attach(node, param)
		if _, ok := p.eat(token.Comma); !ok {
			break
		}
	}
	p.groupDepth--
	if end, ok := p.expect(token.RParen, diag.SynUnclosedParen, "expected ')' after parameters"); ok {
		p.b.CoverSpan(node, end.Span)
	}
	body := p.parseExpr(0)
	p.b.Attach(node, body)
	return node
}

func (p *Parser) parseParam() syntax.NodeID {
	nameTok := p.tok
	if nameTok.Kind != token.Ident {
		p.report(diag.SynExpectIdentifier, nameTok.Span, "expected parameter name")
		return p.errorNode()
	}
	p.advance()
	param := p.b.Node(syntax.KindParam, nameTok, p.b.Leaf(syntax.KindIdent, nameTok))
	if _, ok := p.eat(token.Eq); ok {
		def := p.parseExpr(bpAssign + 1)
		p.b.Attach(param, def)
	}
	return param
}

// parseCall parses callee(args). Children: callee, then KindArg nodes.
func (p *Parser) parseCall(callee syntax.NodeID, open token.Token) syntax.NodeID {
	p.advance()
	node := p.b.Node(syntax.KindCall, open)
	p.b.Attach(node, callee)
	p.groupDepth++
	p.parseArgs(node, token.RParen)
	p.groupDepth--
	if end, ok := p.expect(token.RParen, diag.SynUnclosedParen, "expected ')' after arguments"); ok {
		p.b.CoverSpan(node, end.Span)
	}
	return node
}

// parseIndex parses x[i] and x[[i]]. Children: subject, then KindArg nodes.
func (p *Parser) parseIndex(subject syntax.NodeID, open token.Token) syntax.NodeID {
	p.advance()
	double := false
	if p.at(token.LBracket) && open.Span.End == p.tok.Span.Start {
		// "[[", lexed as two adjacent brackets
		double = true
		p.advance()
	}
	node := p.b.Node(syntax.KindIndex, open)
	p.b.Attach(node, subject)
	p.groupDepth++
	p.parseArgs(node, token.RBracket)
	p.groupDepth--
	if end, ok := p.expect(token.RBracket, diag.SynUnclosedBracket, "expected ']'"); ok {
		p.b.CoverSpan(node, end.Span)
	}
	if double {
		if end, ok := p.expect(token.RBracket, diag.SynUnclosedBracket, "expected ']]'"); ok {
			p.b.CoverSpan(node, end.Span)
		}
	}
	return node
}

// parseArgs parses a comma-separated argument list up to close. Empty
// arguments (as in x[, 1]) produce argument nodes with no children.
func (p *Parser) parseArgs(call syntax.NodeID, close token.Kind) {
	for !p.at(close) && !p.at(token.EOF) {
		arg := p.parseArg(close)
		p.b.Attach(call, arg)
		if _, ok := p.eat(token.Comma); !ok {
			break
		}
	}
}

func (p *Parser) parseArg(close token.Kind) syntax.NodeID {
	tok := p.tok

	// Empty slot: x[, 1] or f(, 2).
	if tok.Kind == token.Comma || tok.Kind == close {
		return p.b.Node(syntax.KindArg, token.Token{Kind: token.EOF, Span: tok.Span})
	}

	// Named argument: name = value, where name is an identifier or string.
	if tok.Kind == token.Ident || tok.Kind == token.StringLit {
		if next := p.lx.Peek(); next.Kind == token.Eq {
			nameNode := p.b.Leaf(syntax.KindIdent, tok)
			p.advance() // name
			eqTok := p.tok
			p.advance() // =
			arg := p.b.Node(syntax.KindArg, eqTok, nameNode)
			if !p.at(token.Comma) && !p.at(close) {
				p.b.Attach(arg, p.parseExpr(bpAssign+1))
			}
			return arg
		}
	}

	expr := p.parseExpr(bpAssign + 1)
	arg := p.b.Node(syntax.KindArg, token.Token{Kind: token.EOF, Span: p.b.Get(expr).Span})
	p.b.Attach(arg, expr)
	return arg
}

// parseMember parses x$name, x@name, pkg::name.
func (p *Parser) parseMember(subject syntax.NodeID, op token.Token, kind syntax.NodeKind) syntax.NodeID {
	p.advance()
	nameTok := p.tok
	var name syntax.NodeID
	switch nameTok.Kind {
	case token.Ident:
		p.advance()
		name = p.b.Leaf(syntax.KindIdent, nameTok)
	case token.StringLit:
		p.advance()
		name = p.b.Leaf(syntax.KindString, nameTok)
	default:
		p.report(diag.SynExpectIdentifier, nameTok.Span, "expected name after "+op.Kind.String())
		name = p.errorNode()
	}
	return p.b.Node(kind, op, subject, name)
}
