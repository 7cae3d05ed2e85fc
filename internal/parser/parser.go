package parser

import (
	"rlint/internal/diag"
	"rlint/internal/lexer"
	"rlint/internal/source"
	"rlint/internal/syntax"
	"rlint/internal/token"
)

// Options configures a parse.
type Options struct {
	Reporter  diag.Reporter
	MaxErrors uint // 0: unlimited
}

// Parser is a tolerant recursive-descent parser for R. It never aborts on
// malformed input; unparsable stretches become error nodes and the tree
// stays lossless around them.
type Parser struct {
	file    *source.File
	lx      *lexer.Lexer
	b       *syntax.Builder
	opts    Options
	tok     token.Token
	errs    uint
	muted   bool
	// groupDepth tracks enclosing (), [] where newlines do not terminate
	// expressions. At depth zero a newline before an operator ends the
	// statement, matching R's line-oriented grammar.
	groupDepth int
}

// New creates a parser over file. The lexer is owned by the parser.
func New(file *source.File, opts Options) *Parser {
	p := &Parser{
		file: file,
		lx:   lexer.New(file, lexer.Options{Reporter: lexerReporter{opts.Reporter}}),
		b:    syntax.NewBuilder(file.ID),
		opts: opts,
	}
	p.advance()
	return p
}

// ParseFile parses the whole file and returns the finished tree.
func ParseFile(file *source.File, opts Options) *syntax.Tree {
	p := New(file, opts)
	return p.parseSource()
}

func (p *Parser) parseSource() *syntax.Tree {
	rootTok := token.Token{Kind: token.EOF, Span: source.Span{File: p.file.ID}}
	root := p.b.Node(syntax.KindSource, rootTok)

	for p.tok.Kind != token.EOF {
		if p.tok.Kind == token.Semicolon {
			p.advance()
			continue
		}
		expr := p.parseExpr(0)
		p.b.Attach(root, expr)
	}
	// The EOF token may still carry trailing comments.
	p.b.AddComments(p.tok.Leading)
	p.b.CoverSpan(root, source.Span{File: p.file.ID, Start: 0, End: uint32(len(p.file.Content))}) //nolint:gosec // bounded by uint32 file size

	return p.b.Build(root)
}

func (p *Parser) advance() {
	p.tok = p.lx.Next()
	p.b.AddComments(p.tok.Leading)
}

// at reports whether the current token has the given kind.
func (p *Parser) at(k token.Kind) bool {
	return p.tok.Kind == k
}

// eat consumes the current token when it matches k.
func (p *Parser) eat(k token.Kind) (token.Token, bool) {
	if p.tok.Kind != k {
		return p.tok, false
	}
	t := p.tok
	p.advance()
	return t, true
}

// expect consumes k or reports code at the current token.
func (p *Parser) expect(k token.Kind, code diag.Code, msg string) (token.Token, bool) {
	if t, ok := p.eat(k); ok {
		return t, true
	}
	p.report(code, p.tok.Span, msg)
	return p.tok, false
}

func (p *Parser) report(code diag.Code, sp source.Span, msg string) {
	if p.muted {
		return
	}
	p.errs++
	if p.opts.MaxErrors > 0 && p.errs > p.opts.MaxErrors {
		p.muted = true
		if p.opts.Reporter != nil {
			p.opts.Reporter.Report(diag.NewError(diag.SynTooManyErrors, sp, "too many syntax errors; suppressing the rest"))
		}
		return
	}
	if p.opts.Reporter != nil {
		p.opts.Reporter.Report(diag.NewError(code, sp, msg))
	}
}

// errorNode consumes the current token into an error node and resynchronizes
// at a statement boundary.
func (p *Parser) errorNode() syntax.NodeID {
	id := p.b.Leaf(syntax.KindError, p.tok)
	p.b.CountError()
	if p.tok.Kind != token.EOF {
		p.advance()
	}
	p.sync()
	return id
}

// sync skips ahead to the next plausible statement start. Closers always
// stop the skip: inside a group the enclosing construct consumes them, and a
// stray closer at top level gets its own error node instead of swallowing
// the rest of the file.
func (p *Parser) sync() {
	for {
		switch p.tok.Kind {
		case token.EOF, token.Semicolon, token.RBrace, token.RParen, token.RBracket:
			return
		}
		if p.groupDepth == 0 && p.tok.NewlineBefore() {
			return
		}
		if p.groupDepth > 0 && p.tok.Kind == token.Comma {
			return
		}
		p.advance()
	}
}

// lexerReporter forwards lexical errors into the shared diag reporter.
type lexerReporter struct {
	r diag.Reporter
}

func (lr lexerReporter) Report(code diag.Code, span source.Span, msg string) {
	if lr.r == nil {
		return
	}
	lr.r.Report(diag.NewError(code, span, msg))
}
