package lexer

import (
	"rlint/internal/diag"
	"rlint/internal/source"
)

// Reporter is a thin interface so the lexer does not depend on how
// diagnostics are collected; the adapter below wires it to a diag.Bag.
type Reporter interface {
	Report(code diag.Code, span source.Span, msg string)
}

type Options struct {
	Reporter Reporter // nil: lexical errors are ignored but lexing continues
}

func (lx *Lexer) report(code diag.Code, sp source.Span, msg string) {
	if lx.opts.Reporter != nil {
		lx.opts.Reporter.Report(code, sp, msg)
	}
}

// BagReporter adapts a diag.Bag to the lexer Reporter contract.
type BagReporter struct{ Bag *diag.Bag }

func (r BagReporter) Report(code diag.Code, span source.Span, msg string) {
	if r.Bag == nil {
		return
	}
	r.Bag.Add(diag.NewError(code, span, msg))
}
